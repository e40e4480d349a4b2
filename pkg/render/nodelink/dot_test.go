package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/gracetower/pkg/coloring"
	"github.com/matzehuels/gracetower/pkg/graph"
	"github.com/matzehuels/gracetower/pkg/render"
)

func path4() *graph.Graph {
	return graph.MustNew(4, graph.Edge{U: 1, V: 2}, graph.Edge{U: 2, V: 3}, graph.Edge{U: 3, V: 4})
}

func TestToDOT(t *testing.T) {
	g := path4()
	c := coloring.Coloring{2, 1, 3, 2}

	tests := []struct {
		name    string
		opts    Options
		want    []string
		notWant []string
	}{
		{
			name: "plain",
			want: []string{
				"graph G {",
				`1 [label="1:2", fillcolor="` + render.DefaultPalette.Fill(2) + `"];`,
				`3 [label="3:3"`,
				"  1 -- 2;",
				"  3 -- 4;",
			},
			notWant: []string{"->", "label=\"1\"]", "labelloc"},
		},
		{
			name: "edge labels",
			opts: Options{EdgeLabels: true},
			want: []string{
				`1 -- 2 [label="1"];`,
				`2 -- 3 [label="2"];`,
				`3 -- 4 [label="1"];`,
			},
		},
		{
			name: "title and palette",
			opts: Options{Title: "P4", Palette: render.Palette{"#111111"}},
			want: []string{`label="P4";`, "labelloc=t;", `fillcolor="#111111"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(g, c, tt.opts)
			for _, w := range tt.want {
				if !strings.Contains(dot, w) {
					t.Errorf("ToDOT() missing %q in:\n%s", w, dot)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(dot, w) {
					t.Errorf("ToDOT() unexpectedly contains %q", w)
				}
			}
			if !strings.HasSuffix(dot, "}\n") {
				t.Errorf("ToDOT() not closed")
			}
		})
	}
}

func TestToDOTUncolored(t *testing.T) {
	dot := ToDOT(path4(), nil, Options{EdgeLabels: true})
	if !strings.Contains(dot, `1 [label="1", fillcolor="#ffffff"];`) {
		t.Errorf("ToDOT(nil) vertex line wrong:\n%s", dot)
	}
	if strings.Contains(dot, "[label=\"0\"]") {
		t.Errorf("ToDOT(nil) should not label edges")
	}
}

func TestToDOTOriginalIDs(t *testing.T) {
	g := graph.Normalize([]graph.Pair{{U: 10, V: 20}})
	dot := ToDOT(g, coloring.Coloring{1, 2}, Options{OriginalIDs: true})
	if !strings.Contains(dot, `1 [label="10:1"`) || !strings.Contains(dot, `2 [label="20:2"`) {
		t.Errorf("ToDOT(OriginalIDs) labels wrong:\n%s", dot)
	}
}

func TestRenderDOTPassthrough(t *testing.T) {
	dot := ToDOT(path4(), nil, Options{})
	got, err := Render(t.Context(), dot, render.FormatDOT)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(got) != dot {
		t.Errorf("Render(dot) changed the source")
	}
	if _, err := Render(t.Context(), dot, render.Format("pdf")); err == nil {
		t.Errorf("Render(pdf) error = nil, want error")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "rewrites root",
			in:   `<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`,
		},
		{
			name: "no viewBox",
			in:   `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "zero size",
			in:   `<svg viewBox="0 0 0 10"></svg>`,
			want: `<svg viewBox="0 0 0 10"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("normalizeViewBox() = %s, want %s", got, tt.want)
			}
		})
	}
}
