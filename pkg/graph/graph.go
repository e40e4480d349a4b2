package graph

import (
	"errors"
	"fmt"
	"slices"
)

// Base is the index of the first vertex. Vertices of a graph of order n are
// Base, Base+1, ..., Base+n-1.
const Base = 1

var (
	// ErrVertexOutOfRange is returned by [New] when an edge endpoint is not in 1..n.
	ErrVertexOutOfRange = errors.New("vertex out of range")

	// ErrSelfLoop is returned by [New] when an edge joins a vertex to itself.
	// [Normalize] drops loops instead.
	ErrSelfLoop = errors.New("self-loop")

	// ErrNegativeOrder is returned by [New] for n < 0.
	ErrNegativeOrder = errors.New("negative vertex count")
)

// Edge is an undirected canonical edge with U < V.
type Edge struct {
	U, V int
}

// Graph is an immutable undirected simple graph over vertices 1..n.
//
// The zero value is the empty graph. Build graphs with [New] or [Normalize].
type Graph struct {
	n     int
	adj   [][]int // adj[v-Base] sorted ascending
	edges []Edge  // sorted by (U, V)
	ids   []int   // original identifiers, ids[v-Base]; nil if none
}

// New builds a canonical graph with n vertices from the given edges. Edge
// orientation is ignored and duplicates are merged. Endpoints outside 1..n
// yield ErrVertexOutOfRange; loops yield ErrSelfLoop.
//
// Unlike [Normalize], New keeps isolated vertices: every vertex in 1..n exists
// whether or not an edge touches it.
func New(n int, edges []Edge) (*Graph, error) {
	if n < 0 {
		return nil, ErrNegativeOrder
	}
	canon := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e.U < Base || e.U >= Base+n || e.V < Base || e.V >= Base+n {
			return nil, fmt.Errorf("edge %d-%d: %w", e.U, e.V, ErrVertexOutOfRange)
		}
		if e.U == e.V {
			return nil, fmt.Errorf("edge %d-%d: %w", e.U, e.V, ErrSelfLoop)
		}
		canon = append(canon, orient(e))
	}
	return build(n, canon, nil), nil
}

// MustNew is like [New] but panics on error. Intended for tests and fixtures.
func MustNew(n int, edges ...Edge) *Graph {
	g, err := New(n, edges)
	if err != nil {
		panic(err)
	}
	return g
}

func orient(e Edge) Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}
	return e
}

// build assumes canon is oriented, loop-free and in range.
func build(n int, canon []Edge, ids []int) *Graph {
	slices.SortFunc(canon, compareEdges)
	canon = slices.Compact(canon)

	adj := make([][]int, n)
	for _, e := range canon {
		adj[e.U-Base] = append(adj[e.U-Base], e.V)
		adj[e.V-Base] = append(adj[e.V-Base], e.U)
	}
	for i := range adj {
		slices.Sort(adj[i])
	}
	return &Graph{n: n, adj: adj, edges: canon, ids: ids}
}

func compareEdges(a, b Edge) int {
	if a.U != b.U {
		return a.U - b.U
	}
	return a.V - b.V
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return g.n }

// Size returns the number of edges.
func (g *Graph) Size() int { return len(g.edges) }

// Vertices returns the vertices in ascending order.
func (g *Graph) Vertices() []int {
	vs := make([]int, g.n)
	for i := range vs {
		vs[i] = Base + i
	}
	return vs
}

// Has reports whether v is a vertex of g.
func (g *Graph) Has(v int) bool { return v >= Base && v < Base+g.n }

// Neighbors returns the sorted neighbors of v. The slice is shared with the
// graph and must not be modified.
func (g *Graph) Neighbors(v int) []int {
	if !g.Has(v) {
		return nil
	}
	return g.adj[v-Base]
}

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int { return len(g.Neighbors(v)) }

// Adjacent reports whether u and v share an edge.
func (g *Graph) Adjacent(u, v int) bool {
	_, ok := slices.BinarySearch(g.Neighbors(u), v)
	return ok
}

// Edges returns a copy of the canonical edge list, sorted by (U, V).
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// MaxDegree returns the largest vertex degree, or 0 for the empty graph.
func (g *Graph) MaxDegree() int {
	best := 0
	for _, nb := range g.adj {
		best = max(best, len(nb))
	}
	return best
}

// MinDegree returns the smallest vertex degree, or 0 for the empty graph.
func (g *Graph) MinDegree() int {
	if g.n == 0 {
		return 0
	}
	best := len(g.adj[0])
	for _, nb := range g.adj[1:] {
		best = min(best, len(nb))
	}
	return best
}

// Density returns 2|E| / (|V|(|V|-1)), or 0 for graphs with fewer than two vertices.
func (g *Graph) Density() float64 {
	if g.n < 2 {
		return 0
	}
	return 2 * float64(len(g.edges)) / (float64(g.n) * float64(g.n-1))
}

// OriginalID returns the identifier v had in the raw input, or v itself when
// the graph was not built by [Normalize].
func (g *Graph) OriginalID(v int) int {
	if g.ids == nil || !g.Has(v) {
		return v
	}
	return g.ids[v-Base]
}

// OriginalIDs returns a copy of the original identifiers indexed by v-Base,
// or nil when the graph was not normalized from raw records.
func (g *Graph) OriginalIDs() []int { return slices.Clone(g.ids) }

// Pairs returns the edges as raw records over the canonical vertex ids.
// Normalizing the result reproduces g when g has no isolated vertices.
func (g *Graph) Pairs() []Pair {
	ps := make([]Pair, len(g.edges))
	for i, e := range g.edges {
		ps[i] = Pair{U: e.U, V: e.V}
	}
	return ps
}

// Without returns the subgraph induced by removing v, with the remaining
// vertices relabeled to stay contiguous. Original identifiers follow their
// vertices.
func (g *Graph) Without(v int) *Graph {
	if !g.Has(v) {
		return g
	}
	shift := func(u int) int {
		if u > v {
			return u - 1
		}
		return u
	}
	var edges []Edge
	for _, e := range g.edges {
		if e.U == v || e.V == v {
			continue
		}
		edges = append(edges, Edge{U: shift(e.U), V: shift(e.V)})
	}
	var ids []int
	if g.ids != nil {
		ids = slices.Delete(slices.Clone(g.ids), v-Base, v-Base+1)
	}
	return build(g.n-1, edges, ids)
}

// Components returns the connected components, each sorted ascending, ordered
// by their smallest vertex.
func (g *Graph) Components() [][]int {
	seen := make([]bool, g.n)
	var comps [][]int
	for s := range g.n {
		if seen[s] {
			continue
		}
		seen[s] = true
		comp := []int{s + Base}
		for i := 0; i < len(comp); i++ {
			for _, w := range g.adj[comp[i]-Base] {
				if !seen[w-Base] {
					seen[w-Base] = true
					comp = append(comp, w)
				}
			}
		}
		slices.Sort(comp)
		comps = append(comps, comp)
	}
	return comps
}

// Equal reports whether g and h have the same vertices and edges. Original
// identifiers are not compared.
func (g *Graph) Equal(h *Graph) bool {
	if g == nil || h == nil {
		return g == h
	}
	return g.n == h.n && slices.Equal(g.edges, h.edges)
}

// String returns a short summary such as "graph(4 vertices, 3 edges)".
func (g *Graph) String() string {
	return fmt.Sprintf("graph(%d vertices, %d edges)", g.n, len(g.edges))
}
