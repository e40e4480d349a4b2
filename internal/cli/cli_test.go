package cli

import (
	"bytes"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gracetower/pkg/config"
	"github.com/matzehuels/gracetower/pkg/errors"
	"github.com/matzehuels/gracetower/pkg/pipeline"
	"github.com/matzehuels/gracetower/pkg/solver"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var got []string
	for _, sub := range root.Commands() {
		got = append(got, sub.Name())
	}
	sort.Strings(got)

	want := []string{"cache", "completion", "config", "heuristic", "model", "render", "serve", "solve"}
	for _, name := range want {
		i := sort.SearchStrings(got, name)
		if i == len(got) || got[i] != name {
			t.Errorf("RootCommand() missing subcommand %q, have %v", name, got)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("GetLevel() = %v, want %v", got, log.DebugLevel)
	}
}

func TestSolverFlagsApply(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(config.Config) bool
		wantErr errors.Code
	}{
		{
			name:  "unset flags keep file values",
			args:  nil,
			check: func(c config.Config) bool { return c.Solver.Backend == config.SolverHighs && c.Solver.WarmStart },
		},
		{
			name:  "backend",
			args:  []string{"--backend", "pb"},
			check: func(c config.Config) bool { return c.Solver.Backend == config.SolverPB },
		},
		{
			name:  "time limit",
			args:  []string{"--time-limit", "30s"},
			check: func(c config.Config) bool { return c.Solver.TimeLimit.Std() == 30*time.Second },
		},
		{
			name:  "no warm start",
			args:  []string{"--no-warm-start"},
			check: func(c config.Config) bool { return !c.Solver.WarmStart },
		},
		{
			name:    "unknown backend",
			args:    []string{"--backend", "cplex"},
			wantErr: errors.ErrCodeInvalidBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sf solverFlags
			cmd := &cobra.Command{Use: "test"}
			sf.register(cmd)
			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatalf("Parse() error: %v", err)
			}

			cfg := config.Default()
			err := sf.apply(cmd, &cfg)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("apply() error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("apply() error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("apply(%v) produced %+v", tt.args, cfg.Solver)
			}
		})
	}
}

func TestFormatColoring(t *testing.T) {
	tests := []struct {
		colors []int
		limit  int
		want   string
	}{
		{nil, 5, ""},
		{[]int{2, 1, 3, 2}, 0, "1:2 2:1 3:3 4:2"},
		{[]int{2, 1, 3, 2}, 2, "1:2 2:1 …"},
		{[]int{1}, 1, "1:1"},
	}
	for _, tt := range tests {
		if got := formatColoring(tt.colors, tt.limit); got != tt.want {
			t.Errorf("formatColoring(%v, %d) = %q, want %q", tt.colors, tt.limit, got, tt.want)
		}
	}
}

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status string
		want   lipgloss.Color
	}{
		{string(solver.StatusOptimal), colorGreen},
		{pipeline.StatusHeuristic, colorGreen},
		{string(solver.StatusFeasibleTimeout), colorYellow},
		{string(solver.StatusInfeasible), colorRed},
		{string(solver.StatusError), colorRed},
		{"", colorGray},
	}
	for _, tt := range tests {
		if got := statusColor(tt.status); got != tt.want {
			t.Errorf("statusColor(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestFormatMillis(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "-"},
		{1234, "1.234s"},
		{15, "15ms"},
	}
	for _, tt := range tests {
		if got := formatMillis(tt.ms); got != tt.want {
			t.Errorf("formatMillis(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := New(io.Discard, LogInfo).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("completion %s output does not mention %q", shell, appName)
			}
		})
	}
}

func TestCompletionCommandRejectsUnknownShell(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("completion tcsh: want error")
	}
}

func TestExportsMPS(t *testing.T) {
	tests := []struct {
		output string
		want   bool
	}{
		{"petersen.mps", true},
		{"out/PETERSEN.MPS", true},
		{"petersen.lp", false},
		{"-", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := exportsMPS(tt.output); got != tt.want {
			t.Errorf("exportsMPS(%q) = %v, want %v", tt.output, got, tt.want)
		}
	}
}
