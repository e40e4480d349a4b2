// Package solver defines the boundary between a built [model.Model] and the
// optimization engines that solve it.
//
// A [Solver] takes a model and a time limit and returns the best assignment
// it found together with a [Status]. Engines live in subpackages:
//
//   - [github.com/matzehuels/gracetower/pkg/solver/highs]: the HiGHS MIP
//     engine through cgo.
//   - [github.com/matzehuels/gracetower/pkg/solver/pb]: a pure-Go
//     pseudo-boolean optimizer.
//
// Reaching the time limit with an incumbent is not an error: the result has
// status [StatusFeasibleTimeout]. Finishing without any incumbent is a
// SOLVER_FAILED error.
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/gracetower/pkg/coloring"
	"github.com/matzehuels/gracetower/pkg/errors"
	"github.com/matzehuels/gracetower/pkg/model"
)

// Solver solves graceful coloring models.
//
// Implementations must be safe for concurrent use: the batch driver solves
// independent models in parallel on one Solver.
type Solver interface {
	// Name identifies the backend, e.g. "highs".
	Name() string

	// Solve minimizes the model's span within timeLimit. A timeLimit of zero
	// means no limit beyond ctx. When the engine ends without an incumbent
	// the error is SOLVER_FAILED and the result, if non-nil, still reports
	// the status and elapsed time.
	Solve(ctx context.Context, m *model.Model, timeLimit time.Duration) (*Result, error)
}

// Status is the outcome of a solve.
type Status string

const (
	StatusOptimal         Status = "optimal"
	StatusFeasibleTimeout Status = "feasible-timeout"
	StatusInfeasible      Status = "infeasible"
	StatusError           Status = "error"
)

// HasSolution reports whether a result with this status carries values.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasibleTimeout
}

// ParseStatus converts the string form back to a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusOptimal, StatusFeasibleTimeout, StatusInfeasible, StatusError:
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Result is the outcome of [Solver.Solve].
type Result struct {
	Values    map[string]float64 `json:"values,omitempty"`
	Objective float64            `json:"objective"`
	Elapsed   time.Duration      `json:"elapsed"`
	Status    Status             `json:"status"`
	Backend   string             `json:"backend"`
}

// EffectiveLimit returns the tighter of timeLimit and the time left before
// ctx's deadline. Zero means unlimited.
func EffectiveLimit(ctx context.Context, timeLimit time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return timeLimit
	}
	left := time.Until(deadline)
	if left <= 0 {
		left = time.Millisecond
	}
	if timeLimit <= 0 || left < timeLimit {
		return left
	}
	return timeLimit
}

// Span returns the objective rounded to the nearest color.
func (r *Result) Span() int {
	return int(r.Objective + 0.5)
}

// Coloring decodes the result through m and verifies it against the
// model's constraints. Results without a solution are SOLVER_FAILED errors.
func (r *Result) Coloring(m *model.Model) (coloring.Coloring, error) {
	if !r.Status.HasSolution() {
		return nil, errors.New(errors.ErrCodeSolverFailed, "%s: no solution (%s)", r.Backend, r.Status)
	}
	return m.Decode(r.Values)
}

// NoIncumbent builds the SOLVER_FAILED error for a backend that stopped
// without any feasible assignment.
func NoIncumbent(backend string, reason string) error {
	return errors.New(errors.ErrCodeSolverFailed, "%s: no incumbent: %s", backend, reason)
}
