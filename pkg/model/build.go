package model

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gracetower/pkg/coloring"
	"github.com/matzehuels/gracetower/pkg/errors"
	"github.com/matzehuels/gracetower/pkg/graph"
)

// Options configures [Build].
type Options struct {
	// WarmStart is a graceful coloring of the graph, typically from
	// [coloring.Greedy]. When set, the model carries a complete feasible
	// assignment derived from it.
	WarmStart coloring.Coloring

	// Logger receives debug output about model size. Nil discards it.
	Logger *log.Logger
}

// Build constructs the graceful coloring model of g.
//
// Graphs without vertices are rejected with DEGENERATE_GRAPH. A warm start
// whose length differs from the graph order, or that is not graceful, is
// rejected with INVALID_INPUT.
func Build(g *graph.Graph, opts Options) (*Model, error) {
	n := g.Order()
	if n == 0 {
		return nil, errors.New(errors.ErrCodeDegenerateGraph, "graph has no vertices")
	}
	if opts.WarmStart != nil {
		if err := coloring.Verify(g, opts.WarmStart); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "warm start")
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	delta := g.MaxDegree()
	b := &builder{
		m: &Model{
			maxDegree: delta,
			bigM1:     2*delta*delta - delta + 1,
			bigM2:     4*delta*delta - 2*delta,
			index:     make(map[string]int),
			colorVars: make([]int, n),
		},
	}
	m := b.m
	m1 := float64(m.bigM1)
	m2 := float64(m.bigM2)

	for _, v := range g.Vertices() {
		m.colorVars[v-graph.Base] = b.addVar(fmt.Sprintf("x_%d", v), Integer, 1, math.Inf(1), FamilyColor, v)
	}
	m.spanVar = b.addVar("z", Integer, 1, m1, FamilySpan)

	for _, v := range g.Vertices() {
		b.addRow(fmt.Sprintf("span_%d", v), LessEqual, 0, FamilyColor,
			Term{m.ColorVar(v), 1}, Term{m.spanVar, -1})
	}

	for _, e := range g.Edges() {
		b.disequality(fmt.Sprintf("b_%d_%d", e.U, e.V), e.U, e.V, m1, FamilyAdjacent)
	}
	for _, p := range distanceTwoPairs(g) {
		b.disequality(fmt.Sprintf("c_%d_%d", p.U, p.V), p.U, p.V, m1, FamilyDistance)
	}
	for _, j := range g.Vertices() {
		nbrs := g.Neighbors(j)
		for a, i := range nbrs {
			for _, k := range nbrs[a+1:] {
				b.label(i, j, k, m2)
			}
		}
	}

	if ws := opts.WarmStart; ws != nil {
		if ws.Span() > m.bigM1 {
			logger.Warn("warm start exceeds span bound, ignoring", "span", ws.Span(), "big_m1", m.bigM1)
		} else {
			m.warm = warmStart(m, ws)
		}
	}

	logger.Debug("model built",
		"vertices", n,
		"max_degree", delta,
		"big_m1", m.bigM1,
		"big_m2", m.bigM2,
		"variables", len(m.vars),
		"constraints", len(m.cons))
	return m, nil
}

type builder struct {
	m *Model
}

func (b *builder) addVar(name string, kind VarKind, lower, upper float64, fam Family, refs ...int) int {
	i := len(b.m.vars)
	b.m.vars = append(b.m.vars, Var{Name: name, Kind: kind, Lower: lower, Upper: upper, Family: fam, Refs: refs})
	b.m.index[name] = i
	return i
}

func (b *builder) addRow(name string, sense Sense, rhs float64, fam Family, terms ...Term) {
	b.m.cons = append(b.m.cons, Constraint{Name: name, Terms: terms, Sense: sense, RHS: rhs, Family: fam})
}

// disequality adds binary s and the rows forcing x_i != x_j:
//
//	x_i - x_j - M*s >= 1 - M
//	x_j - x_i + M*s >= 1
func (b *builder) disequality(name string, i, j int, bigM float64, fam Family) {
	xi, xj := b.m.ColorVar(i), b.m.ColorVar(j)
	s := b.addVar(name, Binary, 0, 1, fam, i, j)
	b.addRow(name+"_lo", GreaterEqual, 1-bigM, fam, Term{xi, 1}, Term{xj, -1}, Term{s, -bigM})
	b.addRow(name+"_hi", GreaterEqual, 1, fam, Term{xj, 1}, Term{xi, -1}, Term{s, bigM})
}

// label adds d_i_j_k and the rows forcing x_i + x_k != 2x_j, which is
// |x_i - x_j| != |x_k - x_j| once x_i != x_k.
func (b *builder) label(i, j, k int, bigM float64) {
	name := fmt.Sprintf("d_%d_%d_%d", i, j, k)
	xi, xj, xk := b.m.ColorVar(i), b.m.ColorVar(j), b.m.ColorVar(k)
	d := b.addVar(name, Binary, 0, 1, FamilyLabel, i, j, k)
	b.addRow(name+"_lo", GreaterEqual, 1-bigM, FamilyLabel,
		Term{xi, 1}, Term{xk, 1}, Term{xj, -2}, Term{d, -bigM})
	b.addRow(name+"_hi", GreaterEqual, 1, FamilyLabel,
		Term{xj, 2}, Term{xi, -1}, Term{xk, -1}, Term{d, bigM})
}

// distanceTwoPairs returns the non-adjacent pairs i<j with a common neighbor,
// sorted by (i, j).
func distanceTwoPairs(g *graph.Graph) []graph.Edge {
	var pairs []graph.Edge
	seen := make(map[int]bool)
	for _, i := range g.Vertices() {
		clear(seen)
		for _, z := range g.Neighbors(i) {
			for _, j := range g.Neighbors(z) {
				if j <= i || seen[j] || g.Adjacent(i, j) {
					continue
				}
				seen[j] = true
				pairs = append(pairs, graph.Edge{U: i, V: j})
			}
		}
	}
	slices.SortFunc(pairs, func(a, b graph.Edge) int {
		return cmp.Or(cmp.Compare(a.U, b.U), cmp.Compare(a.V, b.V))
	})
	return pairs
}

// warmStart extends a graceful coloring to every variable: x_v and z from
// the coloring, each binary on the side its disequality already holds.
func warmStart(m *Model, c coloring.Coloring) []float64 {
	vals := make([]float64, len(m.vars))
	for i, col := range c {
		vals[m.colorVars[i]] = float64(col)
	}
	vals[m.spanVar] = float64(c.Span())

	for idx, v := range m.vars {
		switch v.Family {
		case FamilyAdjacent, FamilyDistance:
			if c.Color(v.Refs[0]) > c.Color(v.Refs[1]) {
				vals[idx] = 1
			}
		case FamilyLabel:
			i, j, k := v.Refs[0], v.Refs[1], v.Refs[2]
			if c.Color(i)+c.Color(k) > 2*c.Color(j) {
				vals[idx] = 1
			}
		}
	}
	return vals
}
