// Package coloring computes and checks graceful vertex colorings.
//
// A coloring assigns every vertex of a [graph.Graph] a positive integer. It is
// graceful when adjacent vertices differ and, for every vertex, the labels
// |color(u) - color(v)| of its incident edges are pairwise distinct. The span
// of a coloring is its largest color; the graceful chromatic number is the
// smallest span any graceful coloring achieves.
//
// [Greedy] produces a graceful coloring in one pass over the graph. Its span
// is an upper bound on the graceful chromatic number and serves as the warm
// start for the exact model in package model. [Verify] checks any coloring
// independently of how it was produced.
//
// # Greedy Rounds
//
// Greedy assigns colors 1, 2, 3, ... in rounds. In round c it walks the
// uncolored vertices in ascending index order and builds a packing: a set of
// vertices pairwise at distance three or more, where each accepted vertex
// rules out everything within distance two of it. A packing vertex w then
// receives c unless some colored neighbor z of w has another colored neighbor
// y with c == 2*color(z) - color(y), which would repeat the label of edge
// z-y on edge z-w. Unsafe vertices wait for a later round.
//
// The iteration order is part of the contract: the same graph always yields
// the same coloring.
package coloring
