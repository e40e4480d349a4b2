package graph

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		edges     []Edge
		wantErr   error
		wantOrder int
		wantSize  int
	}{
		{"empty", 0, nil, nil, 0, 0},
		{"isolated vertices", 3, nil, nil, 3, 0},
		{"path", 4, []Edge{{1, 2}, {2, 3}, {3, 4}}, nil, 4, 3},
		{"duplicates merged", 2, []Edge{{1, 2}, {2, 1}, {1, 2}}, nil, 2, 1},
		{"out of range", 2, []Edge{{1, 3}}, ErrVertexOutOfRange, 0, 0},
		{"zero vertex", 2, []Edge{{0, 1}}, ErrVertexOutOfRange, 0, 0},
		{"loop", 2, []Edge{{2, 2}}, ErrSelfLoop, 0, 0},
		{"negative order", -1, nil, ErrNegativeOrder, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.n, tt.edges)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if g.Order() != tt.wantOrder {
				t.Errorf("Order() = %d, want %d", g.Order(), tt.wantOrder)
			}
			if g.Size() != tt.wantSize {
				t.Errorf("Size() = %d, want %d", g.Size(), tt.wantSize)
			}
		})
	}
}

func TestAdjacencySymmetric(t *testing.T) {
	g := MustNew(5, Edge{1, 2}, Edge{4, 2}, Edge{3, 5}, Edge{1, 5})

	for _, u := range g.Vertices() {
		for _, v := range g.Neighbors(u) {
			if v == u {
				t.Errorf("vertex %d is its own neighbor", u)
			}
			if !g.Adjacent(v, u) {
				t.Errorf("Adjacent(%d, %d) = false, want true", v, u)
			}
		}
		if !slices.IsSorted(g.Neighbors(u)) {
			t.Errorf("Neighbors(%d) = %v, want sorted", u, g.Neighbors(u))
		}
	}

	if got := g.Neighbors(2); !slices.Equal(got, []int{1, 4}) {
		t.Errorf("Neighbors(2) = %v, want [1 4]", got)
	}
	if g.Neighbors(9) != nil {
		t.Error("Neighbors of unknown vertex should be nil")
	}
}

func TestDegreeStats(t *testing.T) {
	star := MustNew(5, Edge{1, 2}, Edge{1, 3}, Edge{1, 4})

	if got := star.MaxDegree(); got != 3 {
		t.Errorf("MaxDegree() = %d, want 3", got)
	}
	if got := star.MinDegree(); got != 0 {
		t.Errorf("MinDegree() = %d, want 0 (vertex 5 is isolated)", got)
	}
	if got := star.Degree(1); got != 3 {
		t.Errorf("Degree(1) = %d, want 3", got)
	}

	var empty Graph
	if empty.MaxDegree() != 0 || empty.MinDegree() != 0 {
		t.Error("empty graph degrees should be 0")
	}
}

func TestDensity(t *testing.T) {
	tests := []struct {
		name string
		g    *Graph
		want float64
	}{
		{"single vertex", MustNew(1), 0},
		{"K3", MustNew(3, Edge{1, 2}, Edge{2, 3}, Edge{1, 3}), 1},
		{"P4", MustNew(4, Edge{1, 2}, Edge{2, 3}, Edge{3, 4}), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.Density(); got != tt.want {
				t.Errorf("Density() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComponents(t *testing.T) {
	g := MustNew(7, Edge{1, 2}, Edge{2, 3}, Edge{1, 3}, Edge{4, 6}, Edge{5, 6}, Edge{4, 5})

	got := g.Components()
	want := [][]int{{1, 2, 3}, {4, 5, 6}, {7}}
	if len(got) != len(want) {
		t.Fatalf("Components() = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("component %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWithout(t *testing.T) {
	g := Normalize([]Pair{{10, 20}, {20, 30}, {30, 40}, {50, 50}})
	h := g.Without(2)

	if h.Order() != 3 {
		t.Fatalf("Order() = %d, want 3", h.Order())
	}
	if h.Size() != 1 {
		t.Errorf("Size() = %d, want 1", h.Size())
	}
	if !h.Adjacent(2, 3) {
		t.Error("30-40 should survive as 2-3")
	}
	if got := h.OriginalIDs(); !slices.Equal(got, []int{10, 30, 40}) {
		t.Errorf("OriginalIDs() = %v, want [10 30 40]", got)
	}
	if g.Without(99) != g {
		t.Error("Without(unknown) should return the same graph")
	}
}

func TestMarshalGraphRoundTrip(t *testing.T) {
	g := Normalize([]Pair{{7, 8}, {8, 9}, {9, 12}})

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph() error: %v", err)
	}
	again, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph() error: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("MarshalGraph should be deterministic")
	}

	back, err := ReadGraph(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadGraph() error: %v", err)
	}
	if !back.Equal(g) {
		t.Errorf("round trip = %v, want %v", back, g)
	}
	if got := back.OriginalID(4); got != 12 {
		t.Errorf("OriginalID(4) = %d, want 12", got)
	}
}

func TestMarshalStructureIgnoresLabels(t *testing.T) {
	a := Normalize([]Pair{{1, 2}, {2, 3}})
	b := Normalize([]Pair{{30, 20}, {20, 10}})

	da, err := MarshalStructure(a)
	if err != nil {
		t.Fatalf("MarshalStructure() error: %v", err)
	}
	db, err := MarshalStructure(b)
	if err != nil {
		t.Fatalf("MarshalStructure() error: %v", err)
	}
	if !bytes.Equal(da, db) {
		t.Errorf("MarshalStructure() = %s and %s, want equal", da, db)
	}

	full, _ := MarshalGraph(b)
	if bytes.Equal(full, db) {
		t.Error("MarshalGraph should keep original ids")
	}
}

func TestGraphFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.json")
	g := MustNew(3, Edge{1, 2})

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile() error: %v", err)
	}
	back, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile() error: %v", err)
	}
	if !back.Equal(g) {
		t.Errorf("ReadGraphFile() = %v, want %v", back, g)
	}

	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestFromDocumentRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{"ids length", Document{Vertices: 2, Edges: [][2]int{{1, 2}}, IDs: []int{1}}},
		{"endpoint", Document{Vertices: 2, Edges: [][2]int{{1, 3}}}},
		{"loop", Document{Vertices: 2, Edges: [][2]int{{2, 2}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromDocument(tt.doc); err == nil {
				t.Error("FromDocument() should fail")
			}
		})
	}
}
