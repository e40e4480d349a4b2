package coloring

import (
	"io"

	"github.com/bits-and-blooms/bitset"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gracetower/pkg/errors"
	"github.com/matzehuels/gracetower/pkg/graph"
)

// Options configures [Greedy].
type Options struct {
	// Logger receives per-round debug output. Nil discards it.
	Logger *log.Logger
}

// Greedy returns a graceful coloring of g built round by round as described
// in the package documentation. Isolated vertices receive color 1.
//
// A graph without vertices is rejected with a DEGENERATE_GRAPH error.
// Greedy does not modify g and may run concurrently on the same graph.
func Greedy(g *graph.Graph, opts Options) (Coloring, error) {
	n := g.Order()
	if n == 0 {
		return nil, errors.New(errors.ErrCodeDegenerateGraph, "graph has no vertices")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := newScratch(g)
	for c := 1; s.remaining > 0; c++ {
		packed, colored := s.round(c)
		logger.Debug("greedy round", "color", c, "packing", packed, "colored", colored, "remaining", s.remaining)
	}
	logger.Debug("greedy done", "vertices", n, "span", s.colors.Span())
	return s.colors, nil
}

// scratch holds the per-run state. Bit i stands for vertex i+graph.Base.
type scratch struct {
	g         *graph.Graph
	colors    Coloring
	uncolored *bitset.BitSet
	blocked   *bitset.BitSet
	remaining int
}

func newScratch(g *graph.Graph) *scratch {
	n := uint(g.Order())
	s := &scratch{
		g:         g,
		colors:    make(Coloring, n),
		uncolored: bitset.New(n),
		blocked:   bitset.New(n),
		remaining: int(n),
	}
	for i := range n {
		s.uncolored.Set(i)
	}
	return s
}

// round builds the packing for color c and colors its safe members. It
// returns the packing size and the number of vertices colored.
func (s *scratch) round(c int) (packed, colored int) {
	s.blocked.ClearAll()
	for i, ok := s.uncolored.NextSet(0); ok; i, ok = s.uncolored.NextSet(i + 1) {
		if s.blocked.Test(i) {
			continue
		}
		w := int(i) + graph.Base
		s.block(w)
		packed++
		if !s.safe(w, c) {
			continue
		}
		s.colors[i] = c
		s.uncolored.Clear(i)
		s.remaining--
		colored++
	}
	return packed, colored
}

// block marks every vertex within distance two of w.
func (s *scratch) block(w int) {
	s.blocked.Set(uint(w - graph.Base))
	for _, z := range s.g.Neighbors(w) {
		s.blocked.Set(uint(z - graph.Base))
		for _, y := range s.g.Neighbors(z) {
			s.blocked.Set(uint(y - graph.Base))
		}
	}
}

// safe reports whether giving w color c keeps every label at w's colored
// neighbors distinct.
func (s *scratch) safe(w, c int) bool {
	for _, z := range s.g.Neighbors(w) {
		cz := s.colors.Color(z)
		if cz == 0 {
			continue
		}
		for _, y := range s.g.Neighbors(z) {
			if y == w {
				continue
			}
			if cy := s.colors.Color(y); cy != 0 && c == 2*cz-cy {
				return false
			}
		}
	}
	return true
}
