package graph

import (
	"slices"
)

// Pair is a raw edge record as read from input: two vertex identifiers that
// may be arbitrary, non-contiguous, repeated or equal.
type Pair struct {
	U, V int
}

// Normalize builds the canonical graph for a sequence of raw records.
//
// Self-loops are discarded and duplicate edges merged irrespective of endpoint
// order. The distinct identifiers that appear in a retained edge are sorted
// and dense-ranked: the smallest becomes vertex 1, the next vertex 2, and so
// on. An identifier that only appears in self-loops does not become a vertex.
//
// The result depends only on the set of retained edges, so any permutation of
// the same records yields an identical graph. Normalizing [Graph.Pairs] of a
// canonical graph without isolated vertices returns an equal graph.
func Normalize(pairs []Pair) *Graph {
	ids := make([]int, 0, 2*len(pairs))
	kept := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if p.U == p.V {
			continue
		}
		kept = append(kept, p)
		ids = append(ids, p.U, p.V)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	rank := make(map[int]int, len(ids))
	for i, id := range ids {
		rank[id] = Base + i
	}

	edges := make([]Edge, len(kept))
	for i, p := range kept {
		edges[i] = orient(Edge{U: rank[p.U], V: rank[p.V]})
	}
	return build(len(ids), edges, slices.Clip(ids))
}
