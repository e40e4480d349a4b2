// Package graph provides the canonical undirected simple graph used by every
// other gracetower package, the normalizer that builds it from raw edge
// records, and its JSON wire format.
//
// # Canonical Form
//
// A [Graph] has vertices 1..n ([Base] is 1), no self-loops and no duplicate
// edges. Neighbor lists are sorted ascending, and [Graph.Edges] is sorted
// lexicographically with U < V. A Graph is immutable once built, so it can be
// shared by the heuristic, the model builder and concurrent batch workers
// without synchronization.
//
// # Normalization
//
// [Normalize] turns arbitrary vertex-pair records into a canonical Graph:
//
//	g := graph.Normalize([]graph.Pair{{10, 20}, {20, 10}, {20, 20}, {20, 35}})
//	g.Order()         // 3
//	g.Size()          // 2
//	g.OriginalID(1)   // 10
//
// Self-loops are dropped, duplicates are merged irrespective of orientation,
// and the distinct original ids are dense-ranked in ascending order. The
// result depends only on the set of edges, never on record order.
//
// # Serialization
//
// Graphs round-trip through a small JSON format used by the result cache and
// the HTTP API:
//
//	{
//	  "vertices": 4,
//	  "edges": [[1, 2], [2, 3], [3, 4]],
//	  "ids": [7, 8, 9, 12]
//	}
package graph
