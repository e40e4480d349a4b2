// Package pb solves graceful coloring models with gophersat, a pure-Go
// pseudo-boolean optimizer.
//
// Every model variable with domain [L, U] becomes U-L boolean literals
// y_1..y_{U-L} ordered by y_{k+1} -> y_k, so that x = L + sum(y). Linear rows
// then become weighted pseudo-boolean constraints over those literals, and
// the cost function counts the literals of the span variable.
//
// The encoding needs finite bounds. Color variables are capped at the span
// bound: BigM1, or the warm-start span when the model carries one. The model
// therefore stays small only for graphs of low maximum degree; use the highs
// backend for anything larger.
package pb

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	gophersat "github.com/crillab/gophersat/solver"

	"github.com/matzehuels/gracetower/pkg/model"
	"github.com/matzehuels/gracetower/pkg/solver"
)

// Name is the backend identifier used in configuration and results.
const Name = "pb"

// Options configures the pseudo-boolean backend.
type Options struct {
	Logger *log.Logger
}

// Solver runs models through gophersat. Each call encodes and solves its
// own problem, so a Solver is safe for concurrent use.
type Solver struct {
	logger *log.Logger
}

// New returns a pseudo-boolean solver.
func New(opts Options) *Solver {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Solver{logger: logger}
}

// Name returns "pb".
func (s *Solver) Name() string { return Name }

// Solve encodes m and minimizes its span. Intermediate solutions are
// collected as they improve; when timeLimit expires the best one so far is
// returned as [solver.StatusFeasibleTimeout]. gophersat cannot be
// interrupted, so an expired search keeps running in the background until
// it finishes on its own.
func (s *Solver) Solve(ctx context.Context, m *model.Model, timeLimit time.Duration) (*solver.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	enc := encode(m)
	s.logger.Debug("pb encoded", "literals", enc.literals, "constraints", len(enc.constrs))

	start := time.Now()
	if enc.literals == 0 {
		return s.fixed(m, enc, start)
	}
	pb := gophersat.ParsePBConstrs(enc.constrs)
	pb.SetCostFunc(enc.cost, enc.weights)
	gs := gophersat.New(pb)

	results := make(chan gophersat.Result)
	go gs.Optimal(results, nil)

	var expired <-chan time.Time
	if limit := solver.EffectiveLimit(ctx, timeLimit); limit > 0 {
		timer := time.NewTimer(limit)
		defer timer.Stop()
		expired = timer.C
	}

	var best *gophersat.Result
	status := solver.StatusOptimal
loop:
	for {
		select {
		case r, ok := <-results:
			if !ok {
				break loop
			}
			if r.Status == gophersat.Unsat {
				res := &solver.Result{Status: solver.StatusInfeasible, Elapsed: time.Since(start), Backend: Name}
				return res, solver.NoIncumbent(Name, "unsatisfiable")
			}
			if r.Status == gophersat.Sat {
				best = &r
				s.logger.Debug("pb incumbent", "span", enc.lowerZ+r.Weight, "elapsed", time.Since(start))
			}
		case <-expired:
			go drain(results)
			status = solver.StatusFeasibleTimeout
			break loop
		case <-ctx.Done():
			go drain(results)
			return nil, ctx.Err()
		}
	}

	res := &solver.Result{Status: status, Elapsed: time.Since(start), Backend: Name}
	if best == nil {
		res.Status = solver.StatusError
		return res, solver.NoIncumbent(Name, "time limit reached before the first solution")
	}
	values, err := m.Values(enc.decode(best.Model))
	if err != nil {
		return res, err
	}
	res.Values = values
	res.Objective = values[m.Var(m.SpanVar()).Name]
	return res, nil
}

// fixed handles models whose bounds leave a single candidate assignment.
func (s *Solver) fixed(m *model.Model, enc *encoding, start time.Time) (*solver.Result, error) {
	vals := enc.decode(nil)
	if err := m.Check(vals); err != nil {
		res := &solver.Result{Status: solver.StatusInfeasible, Elapsed: time.Since(start), Backend: Name}
		return res, solver.NoIncumbent(Name, err.Error())
	}
	values, err := m.Values(vals)
	if err != nil {
		return nil, err
	}
	return &solver.Result{
		Values:    values,
		Objective: vals[m.SpanVar()],
		Elapsed:   time.Since(start),
		Status:    solver.StatusOptimal,
		Backend:   Name,
	}, nil
}

func drain(results <-chan gophersat.Result) {
	for range results {
	}
}

// encoding is the unary translation of one model.
type encoding struct {
	lower    []int   // lower bound per model variable
	lits     [][]int // order literals per model variable, y_1 first
	constrs  []gophersat.PBConstr
	cost     []gophersat.Lit
	weights  []int // one unit per cost literal
	lowerZ   int
	literals int
}

func encode(m *model.Model) *encoding {
	vars := m.Vars()
	bound := m.BigM1()
	if span := m.WarmSpan(); span > 0 {
		bound = span
	}
	enc := &encoding{
		lower: make([]int, len(vars)),
		lits:  make([][]int, len(vars)),
	}

	next := 1
	for i, v := range vars {
		lo := int(v.Lower)
		hi := bound
		if !math.IsInf(v.Upper, 1) && int(v.Upper) < hi {
			hi = int(v.Upper)
		}
		enc.lower[i] = lo
		for k := lo; k < hi; k++ {
			enc.lits[i] = append(enc.lits[i], next)
			next++
		}
		ys := enc.lits[i]
		for k := 1; k < len(ys); k++ {
			enc.constrs = append(enc.constrs, gophersat.PropClause(-ys[k], ys[k-1]))
		}
	}
	enc.literals = next - 1

	for _, c := range m.Constraints() {
		sign := 1
		if c.Sense == model.LessEqual {
			sign = -1
		}
		rhs := sign * int(c.RHS)
		var lits, weights []int
		for _, t := range c.Terms {
			coef := sign * int(t.Coef)
			rhs -= coef * enc.lower[t.Var]
			for _, y := range enc.lits[t.Var] {
				lits = append(lits, y)
				weights = append(weights, coef)
			}
		}
		enc.constrs = append(enc.constrs, gophersat.GtEq(lits, weights, rhs))
	}

	z := m.SpanVar()
	enc.lowerZ = enc.lower[z]
	for _, y := range enc.lits[z] {
		enc.cost = append(enc.cost, gophersat.IntToLit(int32(y)))
		enc.weights = append(enc.weights, 1)
	}
	return enc
}

// decode reads each variable back as its lower bound plus its true literals.
func (e *encoding) decode(bits []bool) []float64 {
	out := make([]float64, len(e.lits))
	for i, ys := range e.lits {
		val := e.lower[i]
		for _, y := range ys {
			if y-1 < len(bits) && bits[y-1] {
				val++
			}
		}
		out[i] = float64(val)
	}
	return out
}
