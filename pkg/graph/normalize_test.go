package graph

import (
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	g := Normalize([]Pair{{30, 10}, {10, 30}, {10, 10}, {30, 55}, {55, 30}, {99, 99}})

	if g.Order() != 3 {
		t.Errorf("Order() = %d, want 3", g.Order())
	}
	if g.Size() != 2 {
		t.Errorf("Size() = %d, want 2", g.Size())
	}
	if got := g.OriginalIDs(); !slices.Equal(got, []int{10, 30, 55}) {
		t.Errorf("OriginalIDs() = %v, want [10 30 55]", got)
	}
	want := []Edge{{1, 2}, {2, 3}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	tests := []struct {
		name  string
		pairs []Pair
	}{
		{"nil", nil},
		{"only loops", []Pair{{1, 1}, {4, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Normalize(tt.pairs)
			if g.Order() != 0 || g.Size() != 0 {
				t.Errorf("Normalize() = %v, want empty graph", g)
			}
		})
	}
}

func TestNormalizePermutationInvariant(t *testing.T) {
	base := []Pair{{5, 9}, {9, 2}, {2, 5}, {7, 2}, {7, 7}, {9, 5}}
	want := Normalize(base)

	perms := [][]int{
		{5, 4, 3, 2, 1, 0},
		{1, 3, 5, 0, 2, 4},
		{2, 0, 1, 4, 5, 3},
	}
	for _, perm := range perms {
		shuffled := make([]Pair, len(base))
		for i, j := range perm {
			shuffled[i] = base[j]
		}
		got := Normalize(shuffled)
		if !got.Equal(want) {
			t.Errorf("Normalize(%v) = %v, want %v", shuffled, got.Edges(), want.Edges())
		}
		if !slices.Equal(got.OriginalIDs(), want.OriginalIDs()) {
			t.Errorf("OriginalIDs() = %v, want %v", got.OriginalIDs(), want.OriginalIDs())
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	canonical := MustNew(5, Edge{1, 2}, Edge{2, 3}, Edge{3, 4}, Edge{4, 5}, Edge{1, 5})

	again := Normalize(canonical.Pairs())
	if !again.Equal(canonical) {
		t.Errorf("Normalize(Pairs()) = %v, want %v", again.Edges(), canonical.Edges())
	}
	for _, v := range again.Vertices() {
		if again.OriginalID(v) != v {
			t.Errorf("OriginalID(%d) = %d, want identity", v, again.OriginalID(v))
		}
	}

	twice := Normalize(again.Pairs())
	if !twice.Equal(again) {
		t.Error("normalization should be idempotent")
	}
}

func TestNormalizeDisjointTriangles(t *testing.T) {
	g := Normalize([]Pair{{100, 101}, {101, 102}, {102, 100}, {7, 8}, {8, 9}, {9, 7}})

	comps := g.Components()
	if len(comps) != 2 {
		t.Fatalf("Components() = %v, want two triangles", comps)
	}
	if !slices.Equal(comps[0], []int{1, 2, 3}) || !slices.Equal(comps[1], []int{4, 5, 6}) {
		t.Errorf("Components() = %v, want [[1 2 3] [4 5 6]]", comps)
	}
	if got := g.OriginalIDs(); !slices.Equal(got, []int{7, 8, 9, 100, 101, 102}) {
		t.Errorf("OriginalIDs() = %v", got)
	}
}
