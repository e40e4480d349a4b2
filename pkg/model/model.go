package model

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/gracetower/pkg/graph"
)

// VarKind is the domain of a decision variable.
type VarKind int

const (
	// Integer variables take integral values within their bounds.
	Integer VarKind = iota
	// Binary variables take 0 or 1.
	Binary
)

// String returns "integer" or "binary".
func (k VarKind) String() string {
	if k == Binary {
		return "binary"
	}
	return "integer"
}

// Family groups variables and constraints by the graph structure they come
// from.
type Family string

const (
	FamilyColor    Family = "color"    // x_v and its span bound
	FamilySpan     Family = "span"     // z
	FamilyAdjacent Family = "adjacent" // b_i_j and its disequality
	FamilyDistance Family = "distance" // c_i_j and its disequality
	FamilyLabel    Family = "label"    // d_i_j_k and its disequality
)

// Var is a decision variable.
type Var struct {
	Name   string
	Kind   VarKind
	Lower  float64
	Upper  float64 // math.Inf(1) when unbounded
	Family Family
	Refs   []int // graph vertices the variable is defined over, in name order
}

// Term is a coefficient applied to the variable at index Var.
type Term struct {
	Var  int
	Coef float64
}

// Sense is the comparison of a constraint row.
type Sense int

const (
	LessEqual Sense = iota
	GreaterEqual
)

// String returns "<=" or ">=".
func (s Sense) String() string {
	if s == GreaterEqual {
		return ">="
	}
	return "<="
}

// Constraint is the linear row sum(Terms) Sense RHS.
type Constraint struct {
	Name   string
	Terms  []Term
	Sense  Sense
	RHS    float64
	Family Family
}

// Model is a minimization problem over integer and binary variables.
type Model struct {
	maxDegree int
	bigM1     int
	bigM2     int

	vars      []Var
	cons      []Constraint
	index     map[string]int
	colorVars []int // colorVars[v-graph.Base] is the index of x_v
	spanVar   int
	warm      []float64
}

// MaxDegree returns Δ of the source graph.
func (m *Model) MaxDegree() int { return m.maxDegree }

// BigM1 returns 2Δ² - Δ + 1, the big-M of vertex disequalities and the upper
// bound of the span.
func (m *Model) BigM1() int { return m.bigM1 }

// BigM2 returns 4Δ² - 2Δ, the big-M of label disequalities.
func (m *Model) BigM2() int { return m.bigM2 }

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of constraint rows.
func (m *Model) NumConstraints() int { return len(m.cons) }

// Var returns the variable at index i.
func (m *Model) Var(i int) Var { return m.vars[i] }

// Vars returns a copy of all variables in index order.
func (m *Model) Vars() []Var { return slices.Clone(m.vars) }

// Constraints returns a copy of all rows. Term slices are shared and must
// not be modified.
func (m *Model) Constraints() []Constraint { return slices.Clone(m.cons) }

// Lookup returns the index of the variable with the given name.
func (m *Model) Lookup(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// ColorVar returns the index of x_v.
func (m *Model) ColorVar(v int) int { return m.colorVars[v-graph.Base] }

// SpanVar returns the index of z. The objective is to minimize it.
func (m *Model) SpanVar() int { return m.spanVar }

// Vertices returns the number of x_v variables.
func (m *Model) Vertices() int { return len(m.colorVars) }

// WarmStart returns a copy of the warm-start assignment indexed like
// [Model.Vars], or nil if the model was built without one.
func (m *Model) WarmStart() []float64 { return slices.Clone(m.warm) }

// WarmSpan returns the span of the warm start, or 0 without one.
func (m *Model) WarmSpan() int {
	if m.warm == nil {
		return 0
	}
	return int(m.warm[m.spanVar])
}

// Check evaluates values, indexed like [Model.Vars], against every bound,
// integrality requirement and constraint. It returns the first violation.
func (m *Model) Check(values []float64) error {
	if len(values) != len(m.vars) {
		return fmt.Errorf("got %d values for %d variables", len(values), len(m.vars))
	}
	for i, v := range m.vars {
		x := values[i]
		if x < v.Lower || x > v.Upper {
			return fmt.Errorf("%s = %g outside [%g, %g]", v.Name, x, v.Lower, v.Upper)
		}
		if x != math.Trunc(x) {
			return fmt.Errorf("%s = %g not integral", v.Name, x)
		}
	}
	for _, c := range m.cons {
		var lhs float64
		for _, t := range c.Terms {
			lhs += t.Coef * values[t.Var]
		}
		if (c.Sense == LessEqual && lhs > c.RHS) || (c.Sense == GreaterEqual && lhs < c.RHS) {
			return fmt.Errorf("%s: %g %s %g violated", c.Name, lhs, c.Sense, c.RHS)
		}
	}
	return nil
}
