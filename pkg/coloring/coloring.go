package coloring

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/gracetower/pkg/graph"
)

var (
	// ErrIncomplete is returned by [Verify] when a vertex has no color or the
	// coloring length does not match the graph order.
	ErrIncomplete = errors.New("incomplete coloring")

	// ErrAdjacentConflict is returned by [Verify] when an edge joins two
	// vertices of the same color.
	ErrAdjacentConflict = errors.New("adjacent vertices share a color")

	// ErrLabelConflict is returned by [Verify] when two edges at a vertex carry
	// the same label.
	ErrLabelConflict = errors.New("edges at a vertex share a label")
)

// Coloring maps vertex v to its color at index v-graph.Base. Zero means
// uncolored.
type Coloring []int

// Color returns the color of v, or 0 if v is out of range or uncolored.
func (c Coloring) Color(v int) int {
	i := v - graph.Base
	if i < 0 || i >= len(c) {
		return 0
	}
	return c[i]
}

// Span returns the largest color, or 0 for an empty coloring.
func (c Coloring) Span() int {
	if len(c) == 0 {
		return 0
	}
	return slices.Max(c)
}

// Label returns the induced label |color(u) - color(v)| of edge e.
func (c Coloring) Label(e graph.Edge) int {
	d := c.Color(e.U) - c.Color(e.V)
	if d < 0 {
		return -d
	}
	return d
}

// String formats the coloring as "v:color" pairs, e.g. "1:1 2:2 3:4".
func (c Coloring) String() string {
	var b strings.Builder
	for i, col := range c {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(i + graph.Base))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(col))
	}
	return b.String()
}

// Span returns the span of c. It is shorthand for c.Span.
func Span(c Coloring) int { return c.Span() }

// Verify reports whether c is a complete graceful coloring of g. The returned
// error wraps [ErrIncomplete], [ErrAdjacentConflict] or [ErrLabelConflict] and
// names the offending vertices.
func Verify(g *graph.Graph, c Coloring) error {
	if len(c) != g.Order() {
		return fmt.Errorf("%w: %d colors for %d vertices", ErrIncomplete, len(c), g.Order())
	}
	for _, v := range g.Vertices() {
		if c.Color(v) < 1 {
			return fmt.Errorf("%w: vertex %d", ErrIncomplete, v)
		}
	}
	for _, e := range g.Edges() {
		if c.Color(e.U) == c.Color(e.V) {
			return fmt.Errorf("%w: %d-%d both %d", ErrAdjacentConflict, e.U, e.V, c.Color(e.U))
		}
	}

	seen := make(map[int]int)
	for _, v := range g.Vertices() {
		clear(seen)
		for _, u := range g.Neighbors(v) {
			l := c.Label(graph.Edge{U: u, V: v})
			if w, dup := seen[l]; dup {
				return fmt.Errorf("%w: %d-%d and %d-%d both %d", ErrLabelConflict, w, v, u, v, l)
			}
			seen[l] = u
		}
	}
	return nil
}
