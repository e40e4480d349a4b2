package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

var (
	errTransient = errors.New("connection refused")
	errPermanent = errors.New("wrong password")
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get() = %q, %v, want miss", data, hit)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "result:abc"); hit {
		t.Error("Get() on empty cache should miss")
	}

	if err := c.Set(ctx, "result:abc", []byte(`{"span":4}`), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, hit, err := c.Get(ctx, "result:abc")
	if err != nil || !hit {
		t.Fatalf("Get() = %v, %v, want hit", hit, err)
	}
	if string(data) != `{"span":4}` {
		t.Errorf("Get() = %q, want %q", data, `{"span":4}`)
	}

	if err := c.Delete(ctx, "result:abc"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "result:abc"); hit {
		t.Error("Get() after Delete() should miss")
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get() = %v, %v, want silent miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s) error: %v", k, err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, hit, _ := c.Get(ctx, k); hit {
			t.Errorf("Get(%s) after Clear() should miss", k)
		}
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("Clear() should keep the root: %v", err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://not-redis"); err == nil {
		t.Error("NewRedisCache() with a non-redis URL should fail")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash()) = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := ResultKeyOpts{Backend: "highs", TimeLimit: time.Minute, WarmStart: true}
	k1 := k.ResultKey("g1", base)
	if !strings.HasPrefix(k1, "result:") {
		t.Errorf("ResultKey() = %q, want result: prefix", k1)
	}
	if k1 != k.ResultKey("g1", base) {
		t.Error("ResultKey should be deterministic")
	}

	variants := []ResultKeyOpts{
		{Backend: "pb", TimeLimit: time.Minute, WarmStart: true},
		{Backend: "highs", TimeLimit: time.Hour, WarmStart: true},
		{Backend: "highs", TimeLimit: time.Minute},
	}
	for _, v := range variants {
		if k.ResultKey("g1", v) == k1 {
			t.Errorf("ResultKey(%+v) should differ from %+v", v, base)
		}
	}
	if k.ResultKey("g2", base) == k1 {
		t.Error("different graphs should have different keys")
	}

	if got := k.HeuristicKey("g1"); got != "heuristic:g1" {
		t.Errorf("HeuristicKey() = %q, want %q", got, "heuristic:g1")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "v1.0.0")

	if got := scoped.HeuristicKey("g"); got != "v1.0.0:heuristic:g" {
		t.Errorf("HeuristicKey() = %q", got)
	}
	if got := NewScopedKeyer(nil, ""); got != NewDefaultKeyer() {
		t.Errorf("NewScopedKeyer(nil, \"\") = %v, want the default keyer", got)
	}
	want := "v1.0.0:" + NewDefaultKeyer().ResultKey("g", ResultKeyOpts{})
	if got := scoped.ResultKey("g", ResultKeyOpts{}); got != want {
		t.Errorf("ResultKey() = %q, want %q", got, want)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errTransient)
	if !IsRetryable(err) {
		t.Error("IsRetryable should be true for wrapped errors")
	}
	if err.Error() != errTransient.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), errTransient.Error())
	}
	if !errors.Is(err, errTransient) {
		t.Error("Retryable should unwrap to its cause")
	}
	if IsRetryable(errPermanent) {
		t.Error("IsRetryable should be false for plain errors")
	}
}

func TestBackoffDo(t *testing.T) {
	ctx := context.Background()
	b := Backoff{Attempts: 3, Delay: time.Millisecond}

	tests := []struct {
		name      string
		failures  int
		err       error
		wantErr   error
		wantCalls int
	}{
		{"first try", 0, nil, nil, 1},
		{"permanent", 5, errPermanent, errPermanent, 1},
		{"transient then ok", 1, Retryable(errTransient), nil, 2},
		{"transient exhausted", 5, Retryable(errTransient), errTransient, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Do(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if tt.wantErr == nil && err != nil {
				t.Errorf("Do() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Do() = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestBackoffDoContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Backoff{Attempts: 3, Delay: time.Minute}.Do(ctx, func() error {
		return Retryable(errTransient)
	})
	if err != context.Canceled {
		t.Errorf("Do() = %v, want context.Canceled", err)
	}
}
