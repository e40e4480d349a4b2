package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gracetower/pkg/errors"
	"github.com/matzehuels/gracetower/pkg/solver"
	"github.com/matzehuels/gracetower/pkg/solver/highs"
	"github.com/matzehuels/gracetower/pkg/solver/pb"
)

// Backends lists the solver backends by name.
var Backends = []string{highs.Name, pb.Name}

// SolverOptions configures NewSolver.
type SolverOptions struct {
	// Threads is passed to backends that run multi-threaded.
	Threads int

	// Output enables the backend's own console log.
	Output bool

	Logger *log.Logger
}

// NewSolver constructs the backend registered under name.
func NewSolver(name string, opts SolverOptions) (solver.Solver, error) {
	switch name {
	case highs.Name:
		return highs.New(highs.Options{Threads: opts.Threads, Output: opts.Output, Logger: opts.Logger}), nil
	case pb.Name:
		return pb.New(pb.Options{Logger: opts.Logger}), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidBackend, "unknown solver backend %q (want highs or pb)", name)
}
