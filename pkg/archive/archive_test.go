package archive

import (
	"context"
	"testing"

	"github.com/matzehuels/gracetower/pkg/io"
)

func TestMemoryArchive(t *testing.T) {
	ctx := context.Background()
	a := NewMemoryArchive()
	defer a.Close(ctx)

	for _, rec := range []io.Record{
		{Graph: "p4", Hash: "h1", SolvedSpan: 3},
		{Graph: "k13", Hash: "h2", SolvedSpan: 4},
		{Graph: "p4-again", Hash: "h1", SolvedSpan: 3},
	} {
		if err := a.Save(ctx, rec); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}

	recent, err := a.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(recent) != 2 || recent[0].Graph != "p4-again" || recent[1].Graph != "k13" {
		t.Errorf("Recent(2) = %+v, want p4-again then k13", recent)
	}

	all, _ := a.Recent(ctx, 0)
	if len(all) != 3 {
		t.Errorf("Recent(0) = %d records, want 3", len(all))
	}

	byHash, err := a.ByHash(ctx, "h1")
	if err != nil {
		t.Fatalf("ByHash() error: %v", err)
	}
	if len(byHash) != 2 || byHash[0].Graph != "p4-again" {
		t.Errorf("ByHash(h1) = %+v, want two records newest first", byHash)
	}
	if none, _ := a.ByHash(ctx, "h9"); len(none) != 0 {
		t.Errorf("ByHash(h9) = %+v, want none", none)
	}
}

func TestNullArchive(t *testing.T) {
	ctx := context.Background()
	var a Archive = NullArchive{}

	if err := a.Save(ctx, io.Record{Graph: "g"}); err != nil {
		t.Errorf("Save() error: %v", err)
	}
	if recs, err := a.Recent(ctx, 10); err != nil || len(recs) != 0 {
		t.Errorf("Recent() = %v, %v, want empty", recs, err)
	}
}
