package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	type vars struct{ version, commit, date string }
	tests := []struct {
		name string
		have vars
		info debug.BuildInfo
		want vars
	}{
		{
			name: "go install",
			have: vars{"dev", "none", "unknown"},
			info: debug.BuildInfo{
				Main: debug.Module{Version: "v0.3.1"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
				},
			},
			want: vars{"v0.3.1", "abc123", "2026-01-02T03:04:05Z"},
		},
		{
			name: "ldflags win",
			have: vars{"v1.0.0", "deadbeef", "yesterday"},
			info: debug.BuildInfo{
				Main:     debug.Module{Version: "v0.3.1"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
			},
			want: vars{"v1.0.0", "deadbeef", "yesterday"},
		},
		{
			name: "devel checkout",
			have: vars{"dev", "none", "unknown"},
			info: debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want: vars{"dev", "none", "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, Date = tt.have.version, tt.have.commit, tt.have.date
			fill(&tt.info)
			if got := (vars{Version, Commit, Date}); got != tt.want {
				t.Errorf("fill() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version ") {
		t.Errorf("Template() = %q, want cobra name placeholder", got)
	}
	if got := String(); !strings.Contains(got, "commit: "+Commit) {
		t.Errorf("String() = %q, want commit line", got)
	}
}
