// Package pkg holds the gracetower libraries.
//
// # Overview
//
// Gracetower bounds and computes the graceful chromatic number of an
// undirected graph: the fewest colors such that adjacent vertices differ and
// edges sharing an endpoint carry distinct labels |c(u) - c(v)|.
//
//  1. [graph] - canonical graphs built from raw edge lists
//  2. [coloring] - greedy graceful coloring and verification
//  3. [model] - the integer program for the exact value
//  4. [solver] - MIP backends (HiGHS, pseudo-boolean)
//  5. [pipeline] - orchestration (normalize → heuristic → model → solve)
//  6. [cache], [archive] - result reuse and long-term storage
//  7. [render], [api] - drawings and the HTTP service
//
// # Data Flow
//
//	edge list
//	    ↓
//	[graph] package (normalize, relabel to 1..n)
//	    ↓
//	[coloring] package (upper bound, warm start)
//	    ↓
//	[model] package → [solver] package
//	    ↓
//	CSV / JSON record, SVG drawing
//
// # Quick Start
//
//	g := graph.Normalize(pairs)
//	warm, _ := coloring.Greedy(g, coloring.Options{})
//	m, _ := model.Build(g, model.Options{WarmStart: warm})
//	res, _ := highs.New(highs.Options{}).Solve(ctx, m, time.Minute)
//	best, _ := m.Decode(res.Values)
//
// [graph]: github.com/matzehuels/gracetower/pkg/graph
// [coloring]: github.com/matzehuels/gracetower/pkg/coloring
// [model]: github.com/matzehuels/gracetower/pkg/model
// [solver]: github.com/matzehuels/gracetower/pkg/solver
// [pipeline]: github.com/matzehuels/gracetower/pkg/pipeline
// [cache]: github.com/matzehuels/gracetower/pkg/cache
// [archive]: github.com/matzehuels/gracetower/pkg/archive
// [render]: github.com/matzehuels/gracetower/pkg/render
// [api]: github.com/matzehuels/gracetower/pkg/api
package pkg
