package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/gracetower/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[solver]
backend = "pb"
time_limit = "90s"

[batch]
jobs = 3

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Solver.Backend != SolverPB {
		t.Errorf("Solver.Backend = %q, want %q", cfg.Solver.Backend, SolverPB)
	}
	if cfg.Solver.TimeLimit.Std() != 90*time.Second {
		t.Errorf("Solver.TimeLimit = %v, want 90s", cfg.Solver.TimeLimit.Std())
	}
	if cfg.Batch.Jobs != 3 {
		t.Errorf("Batch.Jobs = %d, want 3", cfg.Batch.Jobs)
	}
	if cfg.Cache.Backend != CacheRedis {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, CacheRedis)
	}
	// Untouched sections keep their defaults.
	if cfg.Server.Addr != Default().Server.Addr {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
	if !cfg.Solver.WarmStart {
		t.Error("Solver.WarmStart should default to true")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", "[solver\n", errors.ErrCodeInvalidConfig},
		{"unknown key", "[solver]\nengine = \"cplex\"\n", errors.ErrCodeInvalidConfig},
		{"bad duration", "[solver]\ntime_limit = \"soon\"\n", errors.ErrCodeInvalidConfig},
		{"bad backend", "[solver]\nbackend = \"cplex\"\n", errors.ErrCodeInvalidBackend},
		{"redis without url", "[cache]\nbackend = \"redis\"\n", errors.ErrCodeInvalidConfig},
		{"mongo without uri", "[archive]\nbackend = \"mongo\"\n", errors.ErrCodeInvalidConfig},
		{"zero jobs", "[batch]\njobs = 0\n", errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Solver.Backend != Default().Solver.Backend {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}

	_, err = Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	got, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	if want := "/custom/config/gracetower/config.toml"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Solver.Backend = SolverPB
	cfg.Batch.Jobs = 2

	var buf bytes.Buffer
	if err := cfg.Write(&buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	back, err := Load(writeConfig(t, buf.String()))
	if err != nil {
		t.Fatalf("Load() error: %v\n%s", err, buf.String())
	}
	if back != cfg {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}
}
