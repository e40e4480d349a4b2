// Package archive keeps a permanent history of result records.
//
// The cache forgets; the archive does not. Every record the pipeline
// produces can be appended to an [Archive] so that spans computed over many
// runs (and their timings) stay queryable by graph hash.
package archive

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/gracetower/pkg/io"
)

// Archive stores result records.
type Archive interface {
	// Save appends rec.
	Save(ctx context.Context, rec io.Record) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]io.Record, error)

	// ByHash returns every record of the graph with the given hash, newest
	// first.
	ByHash(ctx context.Context, hash string) ([]io.Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NullArchive discards records.
type NullArchive struct{}

func (NullArchive) Save(context.Context, io.Record) error { return nil }
func (NullArchive) Recent(context.Context, int) ([]io.Record, error) { return nil, nil }
func (NullArchive) ByHash(context.Context, string) ([]io.Record, error) { return nil, nil }
func (NullArchive) Close(context.Context) error { return nil }

// MemoryArchive keeps records in process memory. The API server uses it when
// no database is configured.
type MemoryArchive struct {
	mu      sync.RWMutex
	records []io.Record
}

// NewMemoryArchive returns an empty in-memory archive.
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{}
}

func (a *MemoryArchive) Save(_ context.Context, rec io.Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, rec)
	return nil
}

func (a *MemoryArchive) Recent(_ context.Context, limit int) ([]io.Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := slices.Clone(a.records)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (a *MemoryArchive) ByHash(_ context.Context, hash string) ([]io.Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var out []io.Record
	for i := len(a.records) - 1; i >= 0; i-- {
		if a.records[i].Hash == hash {
			out = append(out, a.records[i])
		}
	}
	return out, nil
}

func (a *MemoryArchive) Close(context.Context) error { return nil }

var (
	_ Archive = NullArchive{}
	_ Archive = (*MemoryArchive)(nil)
)
