package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gracetower/pkg/archive"
	"github.com/matzehuels/gracetower/pkg/cache"
	"github.com/matzehuels/gracetower/pkg/coloring"
	"github.com/matzehuels/gracetower/pkg/errors"
	"github.com/matzehuels/gracetower/pkg/graph"
	gio "github.com/matzehuels/gracetower/pkg/io"
	"github.com/matzehuels/gracetower/pkg/model"
	"github.com/matzehuels/gracetower/pkg/observability"
	"github.com/matzehuels/gracetower/pkg/solver"
)

// Runner executes runs against a solver with caching and archiving.
//
// A Runner holds no per-run state, so one Runner serves any number of
// goroutines with different options.
type Runner struct {
	Solver  solver.Solver
	Cache   cache.Cache
	Keyer   cache.Keyer
	Archive archive.Archive
	Logger  *log.Logger
}

// RunnerConfig lists the collaborators of a Runner. Nil fields get no-op
// defaults; a nil Solver restricts the runner to heuristic-only runs.
type RunnerConfig struct {
	Solver  solver.Solver
	Cache   cache.Cache
	Keyer   cache.Keyer
	Archive archive.Archive
	Logger  *log.Logger
}

// NewRunner creates a runner, substituting defaults for nil collaborators.
func NewRunner(cfg RunnerConfig) *Runner {
	r := &Runner{
		Solver:  cfg.Solver,
		Cache:   cfg.Cache,
		Keyer:   cfg.Keyer,
		Archive: cfg.Archive,
		Logger:  cfg.Logger,
	}
	if r.Cache == nil {
		r.Cache = cache.NewNullCache()
	}
	if r.Keyer == nil {
		r.Keyer = cache.NewDefaultKeyer()
	}
	if r.Archive == nil {
		r.Archive = archive.NullArchive{}
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	return r
}

// Execute runs the full pipeline on one input.
//
// Errors before the solve stage return a nil Result. A solver failure
// returns both the Result, whose record carries the status and message,
// and the error.
func (r *Runner) Execute(ctx context.Context, in Input, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if !opts.HeuristicOnly && r.Solver == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no solver configured")
	}
	start := time.Now()

	g := in.Canonical()
	if g.Order() == 0 {
		return nil, errors.New(errors.ErrCodeDegenerateGraph, "%s: graph has no vertices", in.Name)
	}
	data, err := graph.MarshalStructure(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash %s", in.Name)
	}

	result := &Result{
		Graph:     g,
		GraphHash: cache.Hash(data),
	}
	result.Record = newRecord(in.Name, result.GraphHash, g)

	// Stage 1: Heuristic
	hStart := time.Now()
	h, hit, err := r.heuristic(ctx, g, in.Name, result.GraphHash, opts.Logger)
	if err != nil {
		return nil, err
	}
	result.Heuristic = h
	result.Coloring = h
	result.Stats.HeuristicTime = time.Since(hStart)
	result.CacheInfo.HeuristicHit = hit
	result.Record.HeuristicSpan = h.Span()

	opts.Logger.Debug("heuristic coloring",
		"graph", in.Name,
		"span", h.Span(),
		"cached", hit,
		"duration", result.Stats.HeuristicTime)

	if opts.HeuristicOnly {
		result.Record.Status = StatusHeuristic
		result.Record.Coloring = []int(h)
		result.Stats.Total = time.Since(start)
		r.archive(ctx, result.Record)
		return result, nil
	}

	// Cached solve
	key := r.Keyer.ResultKey(result.GraphHash, opts.ResultKeyOpts(r.Solver.Name()))
	if !opts.Refresh {
		if rec, ok := r.cachedRecord(ctx, key, g); ok {
			rec.RunID = result.Record.RunID
			rec.Graph = in.Name
			rec.CreatedAt = result.Record.CreatedAt
			result.Record = rec
			result.Coloring = coloring.Coloring(rec.Coloring)
			result.CacheInfo.ResultHit = true
			result.Stats.Total = time.Since(start)
			opts.Logger.Info("solved graph (cached)", "graph", in.Name, "span", rec.SolvedSpan, "status", rec.Status)
			r.archive(ctx, result.Record)
			return result, nil
		}
	}

	// Stage 2: Build
	bStart := time.Now()
	buildOpts := model.Options{Logger: opts.Logger}
	if !opts.NoWarmStart {
		buildOpts.WarmStart = h
	}
	observability.Solve().OnBuildStart(ctx, in.Name, g.Order())
	m, err := model.Build(g, buildOpts)
	result.Stats.BuildTime = time.Since(bStart)
	if err != nil {
		observability.Solve().OnBuildComplete(ctx, in.Name, 0, 0, result.Stats.BuildTime, err)
		return nil, err
	}
	result.Model = m.Stats()
	observability.Solve().OnBuildComplete(ctx, in.Name, m.NumVars(), m.NumConstraints(), result.Stats.BuildTime, nil)

	opts.Logger.Debug("built model",
		"graph", in.Name,
		"variables", m.NumVars(),
		"constraints", m.NumConstraints(),
		"big_m", m.BigM1(),
		"duration", result.Stats.BuildTime)

	// Stage 3: Solve
	c, err := r.solve(ctx, m, g, in.Name, opts, result)
	result.Stats.Total = time.Since(start)
	if err != nil {
		result.Record.Error = err.Error()
		r.archive(ctx, result.Record)
		return result, err
	}
	result.Coloring = c
	result.Record.Coloring = []int(c)
	result.Record.SolvedSpan = c.Span()

	opts.Logger.Info("solved graph",
		"graph", in.Name,
		"heuristic", result.Record.HeuristicSpan,
		"span", result.Record.SolvedSpan,
		"status", result.Record.Status,
		"duration", result.Stats.SolveTime)

	if data, err := json.Marshal(result.Record); err == nil {
		if err := r.Cache.Set(ctx, key, data, opts.ResultTTL); err != nil {
			r.Logger.Warn("cache write failed", "graph", in.Name, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "result", len(data))
		}
	}
	r.archive(ctx, result.Record)
	return result, nil
}

// heuristic returns the greedy coloring of g, from the cache when possible.
// Cached colorings are verified before use.
func (r *Runner) heuristic(ctx context.Context, g *graph.Graph, name, hash string, logger *log.Logger) (coloring.Coloring, bool, error) {
	key := r.Keyer.HeuristicKey(hash)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var c coloring.Coloring
		if json.Unmarshal(data, &c) == nil && coloring.Verify(g, c) == nil {
			observability.Cache().OnCacheHit(ctx, "heuristic")
			return c, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "heuristic")

	observability.Solve().OnHeuristicStart(ctx, name, g.Order())
	start := time.Now()
	c, err := coloring.Greedy(g, coloring.Options{Logger: logger})
	observability.Solve().OnHeuristicComplete(ctx, name, c.Span(), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(c); err == nil {
		if r.Cache.Set(ctx, key, data, HeuristicTTL) == nil {
			observability.Cache().OnCacheSet(ctx, "heuristic", len(data))
		}
	}
	return c, false, nil
}

// cachedRecord loads a solved record and checks its coloring against g.
func (r *Runner) cachedRecord(ctx context.Context, key string, g *graph.Graph) (gio.Record, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "result")
		return gio.Record{}, false
	}
	var rec gio.Record
	if err := json.Unmarshal(data, &rec); err != nil || coloring.Verify(g, rec.Coloring) != nil {
		observability.Cache().OnCacheMiss(ctx, "result")
		return gio.Record{}, false
	}
	observability.Cache().OnCacheHit(ctx, "result")
	return rec, true
}

// solve runs the solver and decodes its answer, filling the solver fields
// of result.Record on every path.
func (r *Runner) solve(ctx context.Context, m *model.Model, g *graph.Graph, name string, opts Options, result *Result) (coloring.Coloring, error) {
	backend := r.Solver.Name()
	result.Record.Backend = backend

	observability.Solve().OnSolveStart(ctx, backend, m.NumVars(), m.NumConstraints())
	start := time.Now()
	res, err := r.Solver.Solve(ctx, m, opts.TimeLimit)
	result.Stats.SolveTime = time.Since(start)
	result.Record.TimeMS = result.Stats.SolveTime.Milliseconds()

	status := solver.StatusError
	if res != nil {
		status = res.Status
	}
	result.Record.Status = string(status)

	if err != nil {
		observability.Solve().OnSolveComplete(ctx, backend, string(status), 0, result.Stats.SolveTime, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	c, err := res.Coloring(m)
	if err == nil {
		if verr := coloring.Verify(g, c); verr != nil {
			err = errors.Wrap(errors.ErrCodeSolverFailed, verr, "%s: decoded coloring of %s", backend, name)
		}
	}
	if err != nil {
		result.Record.Status = string(solver.StatusError)
		observability.Solve().OnSolveComplete(ctx, backend, string(solver.StatusError), 0, result.Stats.SolveTime, err)
		return nil, err
	}
	observability.Solve().OnSolveComplete(ctx, backend, string(status), c.Span(), result.Stats.SolveTime, nil)
	return c, nil
}

func (r *Runner) archive(ctx context.Context, rec gio.Record) {
	if err := r.Archive.Save(ctx, rec); err != nil {
		r.Logger.Warn("archive write failed", "graph", rec.Graph, "error", err)
	}
}

// Close releases the cache and the archive.
func (r *Runner) Close(ctx context.Context) error {
	cerr := r.Cache.Close()
	if err := r.Archive.Close(ctx); err != nil {
		return err
	}
	return cerr
}

func newRecord(name, hash string, g *graph.Graph) gio.Record {
	return gio.Record{
		RunID:      uuid.NewString(),
		Graph:      name,
		Hash:       hash,
		Vertices:   g.Order(),
		Edges:      g.Size(),
		Density:    g.Density(),
		MaxDegree:  g.MaxDegree(),
		MinDegree:  g.MinDegree(),
		Components: len(g.Components()),
		CreatedAt:  time.Now().UTC(),
	}
}
