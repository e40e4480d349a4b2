// Package io reads raw edge lists and writes result tables.
//
// # Edge Lists
//
// An edge list is plain text with one edge per line: two integer vertex
// identifiers separated by whitespace.
//
//	% KONECT-style header
//	# comments start with '#' or '%'
//	1 2
//	2 3
//	10 3
//
// Identifiers need not be contiguous or positive; the graph normalizer
// dense-ranks them. Self-loops and duplicate edges are accepted here and
// removed during normalization. Any other line (blank, a single field, three
// fields, a non-integer token) is a MALFORMED_INPUT error naming the line.
//
// # Result Tables
//
// [WriteCSV] writes one [Record] per input graph under the fixed header
//
//	graph,vertices,edges,density,max_degree,min_degree,heuristic_span,solved_span,time_ms,status
//
// Records also carry fields that only appear in JSON and in the archive,
// such as the solver backend and the coloring itself.
package io
