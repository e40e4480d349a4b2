// Package solvertest checks [solver.Solver] implementations against graphs
// with known graceful chromatic numbers.
package solvertest

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/gracetower/pkg/coloring"
	"github.com/matzehuels/gracetower/pkg/graph"
	"github.com/matzehuels/gracetower/pkg/model"
	"github.com/matzehuels/gracetower/pkg/solver"
)

// Case is a graph with its known optimum.
type Case struct {
	Name    string
	Graph   *graph.Graph
	Optimum int
}

// Cases returns the reference graphs. Every optimum is small enough for an
// exhaustive search to confirm by hand.
func Cases() []Case {
	e := func(u, v int) graph.Edge { return graph.Edge{U: u, V: v} }
	return []Case{
		{"single vertex", graph.MustNew(1), 1},
		{"K2", graph.MustNew(2, e(1, 2)), 2},
		{"P3", graph.MustNew(3, e(1, 2), e(2, 3)), 3},
		{"P3 plus isolated vertex", graph.MustNew(4, e(1, 2), e(2, 3)), 3},
		{"P4", graph.MustNew(4, e(1, 2), e(2, 3), e(3, 4)), 3},
		{"K1,3", graph.MustNew(4, e(1, 2), e(1, 3), e(1, 4)), 4},
		{"K3", graph.MustNew(3, e(1, 2), e(2, 3), e(1, 3)), 4},
		{"two triangles", graph.Normalize([]graph.Pair{{U: 1, V: 2}, {U: 2, V: 3}, {U: 3, V: 1}, {U: 7, V: 8}, {U: 8, V: 9}, {U: 9, V: 7}}), 4},
	}
}

// Run solves every case with s, warm-started from the greedy heuristic, and
// checks the status, the span and the decoded coloring.
func Run(t *testing.T, s solver.Solver) {
	t.Helper()
	for _, tc := range Cases() {
		t.Run(tc.Name, func(t *testing.T) {
			warm, err := coloring.Greedy(tc.Graph, coloring.Options{})
			if err != nil {
				t.Fatalf("Greedy() error: %v", err)
			}
			m, err := model.Build(tc.Graph, model.Options{WarmStart: warm})
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			Check(t, s, m, tc, warm.Span())
		})
	}
}

// Check solves m and validates the result against tc. heuristic is the
// greedy span the optimum may not exceed.
func Check(t *testing.T, s solver.Solver, m *model.Model, tc Case, heuristic int) {
	t.Helper()
	res, err := s.Solve(context.Background(), m, time.Minute)
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if res.Status != solver.StatusOptimal {
		t.Fatalf("Solve() status = %s, want %s", res.Status, solver.StatusOptimal)
	}
	if res.Backend != s.Name() {
		t.Errorf("Backend = %q, want %q", res.Backend, s.Name())
	}
	if res.Span() != tc.Optimum {
		t.Errorf("Span() = %d, want %d", res.Span(), tc.Optimum)
	}

	c, err := res.Coloring(m)
	if err != nil {
		t.Fatalf("Coloring() error: %v", err)
	}
	if err := coloring.Verify(tc.Graph, c); err != nil {
		t.Errorf("decoded coloring %v: %v", c, err)
	}
	if c.Span() != tc.Optimum {
		t.Errorf("decoded span = %d, want %d", c.Span(), tc.Optimum)
	}
	if heuristic > 0 && tc.Optimum > heuristic {
		t.Errorf("optimum %d above heuristic span %d", tc.Optimum, heuristic)
	}
}
