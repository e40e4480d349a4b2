package model

import (
	"fmt"
	"math"

	"github.com/matzehuels/gracetower/pkg/coloring"
	"github.com/matzehuels/gracetower/pkg/errors"
)

// Decode maps solver values, keyed by variable name, back to a coloring.
// Values are rounded to the nearest integer. A missing or non-positive x_v is
// a SOLVER_FAILED error.
func (m *Model) Decode(values map[string]float64) (coloring.Coloring, error) {
	c := make(coloring.Coloring, len(m.colorVars))
	for i, idx := range m.colorVars {
		name := m.vars[idx].Name
		x, ok := values[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeSolverFailed, "solution has no value for %s", name)
		}
		col := int(math.Round(x))
		if col < 1 {
			return nil, errors.New(errors.ErrCodeSolverFailed, "%s = %g is not a color", name, x)
		}
		c[i] = col
	}
	return c, nil
}

// Values converts an assignment indexed like [Model.Vars] to a map keyed by
// variable name.
func (m *Model) Values(assignment []float64) (map[string]float64, error) {
	if len(assignment) != len(m.vars) {
		return nil, fmt.Errorf("got %d values for %d variables", len(assignment), len(m.vars))
	}
	out := make(map[string]float64, len(m.vars))
	for i, v := range m.vars {
		out[v.Name] = assignment[i]
	}
	return out, nil
}
