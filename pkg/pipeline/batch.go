package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	gio "github.com/matzehuels/gracetower/pkg/io"
	"github.com/matzehuels/gracetower/pkg/solver"
)

// Batch executes every input with at most jobs runs in flight and returns
// one record per input, in input order. Jobs below 1 means one per CPU.
//
// A failing input does not stop the others: its record carries the error
// and Batch returns a *BatchError after all inputs finished. Cancelling ctx
// stops the batch and returns ctx's error.
func (r *Runner) Batch(ctx context.Context, inputs []Input, opts Options, jobs int) ([]gio.Record, error) {
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	records := make([]gio.Record, len(inputs))
	failures := make([]error, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.Execute(gctx, in, opts)
			switch {
			case res != nil:
				records[i] = res.Record
			default:
				records[i] = gio.Record{Graph: in.Name, Status: string(solver.StatusError)}
			}
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				records[i].Error = err.Error()
				failures[i] = err
				opts.Logger.Error("graph failed", "graph", in.Name, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return records, err
	}

	var be *BatchError
	for i, err := range failures {
		if err == nil {
			continue
		}
		if be == nil {
			be = &BatchError{Total: len(inputs)}
		}
		be.Failed = append(be.Failed, inputs[i].Name)
		be.Errs = append(be.Errs, err)
	}
	if be != nil {
		return records, be
	}
	return records, nil
}

// BatchError reports the inputs of a batch that failed.
type BatchError struct {
	Total  int
	Failed []string
	Errs   []error
}

func (e *BatchError) Error() string {
	if len(e.Failed) == 1 {
		return e.Failed[0] + ": " + e.Errs[0].Error()
	}
	return fmt.Sprintf("%d of %d graphs failed (first: %s: %v)",
		len(e.Failed), e.Total, e.Failed[0], e.Errs[0])
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error { return e.Errs }
