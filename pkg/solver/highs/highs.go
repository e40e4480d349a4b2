// Package highs solves graceful coloring models with the HiGHS MIP engine.
package highs

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/bartolsthoorn/gohighs/highs"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gracetower/pkg/errors"
	"github.com/matzehuels/gracetower/pkg/model"
	"github.com/matzehuels/gracetower/pkg/solver"
)

// Name is the backend identifier used in configuration and results.
const Name = "highs"

// Options configures the HiGHS backend.
type Options struct {
	// Threads caps the engine's worker threads. Zero lets HiGHS decide.
	Threads int

	// Output enables the engine's own log on stdout.
	Output bool

	Logger *log.Logger
}

// Solver runs models through HiGHS. Every call builds a fresh engine
// instance, so a Solver is safe for concurrent use.
type Solver struct {
	opts   Options
	logger *log.Logger
}

// New returns a HiGHS-backed solver.
func New(opts Options) *Solver {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Solver{opts: opts, logger: logger}
}

// Name returns "highs".
func (s *Solver) Name() string { return Name }

// Solve passes m to HiGHS and maps the engine status onto [solver.Status].
//
// HiGHS has no warm-start entry in this binding; a model built with a warm
// start instead has the span variable capped at the warm-start span, which
// keeps the heuristic coloring feasible while pruning everything worse.
func (s *Solver) Solve(ctx context.Context, m *model.Model, timeLimit time.Duration) (*solver.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hm := translate(m)

	engine, err := load(m, hm)
	if err != nil {
		return &solver.Result{Status: solver.StatusError, Backend: Name},
			errors.Wrap(errors.ErrCodeSolverFailed, err, "highs")
	}
	defer engine.Close()
	if err := s.configure(engine, solver.EffectiveLimit(ctx, timeLimit)); err != nil {
		return &solver.Result{Status: solver.StatusError, Backend: Name},
			errors.Wrap(errors.ErrCodeSolverFailed, err, "highs options")
	}

	s.logger.Debug("highs solve", "variables", m.NumVars(), "constraints", m.NumConstraints(), "limit", timeLimit)
	start := time.Now()
	sol, err := engine.Run()
	elapsed := time.Since(start)
	if err != nil {
		return &solver.Result{Status: solver.StatusError, Elapsed: elapsed, Backend: Name},
			errors.Wrap(errors.ErrCodeSolverFailed, err, "highs")
	}
	primal, err := engine.GetIntInfo("primal_solution_status")
	if err != nil {
		primal = solutionStatusNone
	}
	s.logger.Debug("highs done", "status", sol.Status, "primal", primal, "objective", sol.Objective, "elapsed", elapsed)

	res := &solver.Result{Elapsed: elapsed, Backend: Name, Objective: sol.Objective}
	if sol.IsInfeasible() {
		res.Status = solver.StatusInfeasible
		return res, solver.NoIncumbent(Name, sol.Status.String())
	}
	values, ok := incumbent(m, hm, sol, primal)
	if !ok {
		res.Status = solver.StatusError
		return res, solver.NoIncumbent(Name, "no primal solution ("+sol.Status.String()+")")
	}
	if sol.IsOptimal() {
		res.Status = solver.StatusOptimal
	} else {
		res.Status = solver.StatusFeasibleTimeout
	}

	res.Values, err = m.Values(values)
	if err != nil {
		return res, errors.Wrap(errors.ErrCodeInternal, err, "highs")
	}
	return res, nil
}

// WriteModel exports m through HiGHS to path. The engine picks the format
// from the extension, so ".mps" writes MPS and ".lp" writes CPLEX LP.
// Columns and rows carry the engine's positional names.
func WriteModel(m *model.Model, path string) error {
	engine, err := load(m, translate(m))
	if err != nil {
		return errors.Wrap(errors.ErrCodeSolverFailed, err, "highs")
	}
	defer engine.Close()
	if err := engine.SetBoolOption("output_flag", false); err != nil {
		return errors.Wrap(errors.ErrCodeSolverFailed, err, "highs options")
	}
	if err := engine.WriteModel(path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// Values of the engine's "primal_solution_status" info.
const (
	solutionStatusNone     = 0
	solutionStatusFeasible = 2
)

// intTol is the integrality slack allowed on engine values before rounding.
const intTol = 1e-6

// incumbent returns the rounded column values of sol when the engine reports
// a feasible primal solution and the rounded values satisfy hm's bounds and
// every constraint of m. A time-limited run with no incumbent leaves zero or
// infinite placeholders behind, which this rejects.
func incumbent(m *model.Model, hm *highs.Model, sol *highs.Solution, primal int) ([]float64, bool) {
	n := m.NumVars()
	if primal != solutionStatusFeasible || !sol.HasSolution() || len(sol.ColValues) < n {
		return nil, false
	}
	if math.IsNaN(sol.Objective) || math.IsInf(sol.Objective, 0) {
		return nil, false
	}
	values := make([]float64, n)
	for i, v := range sol.ColValues[:n] {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v-math.Round(v)) > intTol {
			return nil, false
		}
		values[i] = math.Round(v)
		if values[i] < hm.ColLower[i] || values[i] > hm.ColUpper[i] {
			return nil, false
		}
	}
	if err := m.Check(values); err != nil {
		return nil, false
	}
	return values, true
}

// configure applies the backend options and the time limit to engine.
func (s *Solver) configure(engine *highs.Solver, limit time.Duration) error {
	if err := engine.SetBoolOption("output_flag", s.opts.Output); err != nil {
		return err
	}
	if limit > 0 {
		if err := engine.SetFloatOption("time_limit", limit.Seconds()); err != nil {
			return err
		}
	}
	if s.opts.Threads > 0 {
		if err := engine.SetIntOption("threads", s.opts.Threads); err != nil {
			return err
		}
	}
	return nil
}

// load creates an engine holding hm. The constraint matrix is passed row-wise
// in the order of m's constraints.
func load(m *model.Model, hm *highs.Model) (*highs.Solver, error) {
	cons := m.Constraints()
	starts := make([]int, 0, len(cons))
	var index []int
	var value []float64
	for _, c := range cons {
		starts = append(starts, len(index))
		for _, t := range c.Terms {
			index = append(index, t.Var)
			value = append(value, t.Coef)
		}
	}

	engine, err := highs.NewSolver()
	if err != nil {
		return nil, err
	}
	err = engine.PassModel(
		m.NumVars(), len(cons),
		hm.ColCosts, hm.ColLower, hm.ColUpper,
		hm.RowLower, hm.RowUpper,
		starts, index, value,
		hm.VarTypes,
		false, 0,
	)
	if err != nil {
		engine.Close()
		return nil, err
	}
	return engine, nil
}

// translate copies m into the binding's column/row form.
func translate(m *model.Model) *highs.Model {
	n := m.NumVars()
	hm := &highs.Model{
		ColCosts: make([]float64, n),
		ColLower: make([]float64, n),
		ColUpper: make([]float64, n),
		VarTypes: make([]highs.VariableType, n),
	}
	for i, v := range m.Vars() {
		hm.ColLower[i] = v.Lower
		hm.ColUpper[i] = v.Upper
		hm.VarTypes[i] = highs.Integer
	}
	z := m.SpanVar()
	hm.ColCosts[z] = 1
	if span := m.WarmSpan(); span > 0 {
		hm.ColUpper[z] = float64(span)
	}

	for _, c := range m.Constraints() {
		cols := make([]int, len(c.Terms))
		vals := make([]float64, len(c.Terms))
		for i, t := range c.Terms {
			cols[i], vals[i] = t.Var, t.Coef
		}
		if c.Sense == model.LessEqual {
			hm.AddSparseRow(highs.NegInf(), cols, vals, c.RHS)
		} else {
			hm.AddSparseRow(c.RHS, cols, vals, highs.Inf())
		}
	}
	return hm
}
