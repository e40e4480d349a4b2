// Package pipeline runs the complete graceful coloring workflow.
//
// One run takes a raw edge list through five stages:
//
//  1. Normalize: canonical graph on 1..n
//  2. Heuristic: greedy graceful coloring, an upper bound on the span
//  3. Build: the integer program, warm-started from the heuristic
//  4. Solve: the configured backend within the time limit
//  5. Record: one [io.Record] with the statistics and both spans
//
// CLI, batch driver and HTTP API all go through [Runner], so caching,
// hooks and the archive behave the same everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(pipeline.RunnerConfig{Solver: s, Cache: c})
//	res, err := runner.Execute(ctx, pipeline.Input{Name: "p4", Pairs: pairs}, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Record.SolvedSpan)
//
// Batches of inputs run on a bounded worker pool:
//
//	records, err := runner.Batch(ctx, inputs, opts, jobs)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gracetower/pkg/cache"
	"github.com/matzehuels/gracetower/pkg/coloring"
	"github.com/matzehuels/gracetower/pkg/errors"
	"github.com/matzehuels/gracetower/pkg/graph"
	gio "github.com/matzehuels/gracetower/pkg/io"
	"github.com/matzehuels/gracetower/pkg/model"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultTimeLimit bounds a single solve.
	DefaultTimeLimit = 5 * time.Minute

	// DefaultResultTTL is how long solved records stay cached.
	DefaultResultTTL = 7 * 24 * time.Hour

	// HeuristicTTL is the lifetime of cached greedy colorings. The
	// heuristic is deterministic, so entries never go stale.
	HeuristicTTL = 30 * 24 * time.Hour
)

// Record statuses written when no solver ran.
const (
	// StatusHeuristic marks a run that stopped after the greedy stage.
	StatusHeuristic = "heuristic"
)

// =============================================================================
// Options
// =============================================================================

// Options configures one run.
type Options struct {
	// TimeLimit bounds the solver. Zero selects DefaultTimeLimit.
	TimeLimit time.Duration `json:"time_limit,omitempty"`

	// NoWarmStart builds the model without the heuristic coloring.
	NoWarmStart bool `json:"no_warm_start,omitempty"`

	// HeuristicOnly skips model building and solving.
	HeuristicOnly bool `json:"heuristic_only,omitempty"`

	// Refresh ignores cached results but still stores fresh ones.
	Refresh bool `json:"refresh,omitempty"`

	// ResultTTL overrides DefaultResultTTL.
	ResultTTL time.Duration `json:"-"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.TimeLimit == 0 {
		o.TimeLimit = DefaultTimeLimit
	}
	if err := errors.ValidateTimeLimit(o.TimeLimit); err != nil {
		return err
	}
	if o.ResultTTL == 0 {
		o.ResultTTL = DefaultResultTTL
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	o.validated = true
	return nil
}

// ResultKeyOpts returns the cache key options for a solve with backend.
func (o *Options) ResultKeyOpts(backend string) cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Backend:   backend,
		TimeLimit: o.TimeLimit,
		WarmStart: !o.NoWarmStart,
	}
}

// =============================================================================
// Input and Result
// =============================================================================

// Input is a named raw edge list.
type Input struct {
	Name  string
	Pairs []graph.Pair

	// Graph, when set, is used as is and Pairs is ignored. JSON graph
	// documents load this way, keeping any isolated vertices they declare.
	Graph *graph.Graph
}

// Canonical returns the input's graph, normalizing Pairs when no Graph is
// set.
func (in Input) Canonical() *graph.Graph {
	if in.Graph != nil {
		return in.Graph
	}
	return graph.Normalize(in.Pairs)
}

// Result contains the outputs of a run.
type Result struct {
	// Graph is the canonical graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the graph's JSON form.
	GraphHash string

	// Heuristic is the greedy coloring.
	Heuristic coloring.Coloring

	// Coloring is the best coloring found: the solver's when it produced
	// one, the heuristic's otherwise.
	Coloring coloring.Coloring

	// Model statistics; zero when the model was not built.
	Model model.Stats

	// Record is the row written to CSV, the archive and API responses.
	Record gio.Record

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains per-stage timings.
type Stats struct {
	HeuristicTime time.Duration
	BuildTime     time.Duration
	SolveTime     time.Duration
	Total         time.Duration
}

// CacheInfo tracks which stages were served from the cache.
type CacheInfo struct {
	HeuristicHit bool
	ResultHit    bool
}

// String summarizes the result for log lines.
func (r *Result) String() string {
	return fmt.Sprintf("%s: heuristic %d, solved %d (%s)",
		r.Record.Graph, r.Record.HeuristicSpan, r.Record.SolvedSpan, r.Record.Status)
}
