// Package config loads gracetower settings from TOML.
//
// Settings resolve in three layers: built-in defaults, then the config file,
// then command-line flags. The file lives at $XDG_CONFIG_HOME/gracetower/
// config.toml (falling back to ~/.config/gracetower/config.toml) unless a
// path is given explicitly.
//
//	[solver]
//	backend = "highs"
//	time_limit = "5m"
//
//	[batch]
//	jobs = 4
//	output = "results.csv"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "168h"
//
//	[archive]
//	backend = "mongo"
//	uri = "mongodb://localhost:27017"
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gracetower/pkg/errors"
)

const (
	appName  = "gracetower"
	fileName = "config.toml"
)

// Backend names accepted in configuration.
const (
	SolverHighs = "highs"
	SolverPB    = "pb"

	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"

	ArchiveMongo = "mongo"
	ArchiveNone  = "none"
)

// Duration is a time.Duration written as a Go duration string ("90s", "5m").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the complete set of settings.
type Config struct {
	Solver  Solver  `toml:"solver"`
	Batch   Batch   `toml:"batch"`
	Cache   Cache   `toml:"cache"`
	Archive Archive `toml:"archive"`
	Server  Server  `toml:"server"`
}

// Solver selects and tunes the exact solver.
type Solver struct {
	Backend   string   `toml:"backend"`
	TimeLimit Duration `toml:"time_limit"`
	Threads   int      `toml:"threads"`
	WarmStart bool     `toml:"warm_start"`
}

// Batch controls multi-file runs.
type Batch struct {
	Jobs   int    `toml:"jobs"`
	Output string `toml:"output"`
}

// Cache selects where solved results are memoized.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// Archive selects where result records are stored permanently.
type Archive struct {
	Backend    string `toml:"backend"`
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Solver: Solver{
			Backend:   SolverHighs,
			TimeLimit: Duration(5 * time.Minute),
			WarmStart: true,
		},
		Batch: Batch{
			Jobs:   runtime.NumCPU(),
			Output: "results.csv",
		},
		Cache: Cache{
			Backend: CacheFile,
			TTL:     Duration(7 * 24 * time.Hour),
		},
		Archive: Archive{
			Backend:    ArchiveNone,
			Database:   appName,
			Collection: "results",
		},
		Server: Server{
			Addr:         ":8080",
			MaxBodyBytes: 8 << 20,
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the config file at path over the defaults. An empty path means
// [Path]; a missing file at the default location yields the defaults, while
// a missing explicit path is a FILE_NOT_FOUND error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %s", path, undecoded[0])
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges and backend names.
func (c Config) Validate() error {
	switch c.Solver.Backend {
	case SolverHighs, SolverPB:
	default:
		return errors.New(errors.ErrCodeInvalidBackend, "solver backend %q (want %s or %s)", c.Solver.Backend, SolverHighs, SolverPB)
	}
	if err := errors.ValidateTimeLimit(c.Solver.TimeLimit.Std()); err != nil {
		return err
	}
	if c.Solver.Threads < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "solver threads must not be negative")
	}
	if c.Batch.Jobs < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "batch jobs must be at least 1")
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis needs redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidBackend, "cache backend %q", c.Cache.Backend)
	}
	switch c.Archive.Backend {
	case ArchiveNone:
	case ArchiveMongo:
		if c.Archive.URI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "archive backend mongo needs uri")
		}
	default:
		return errors.New(errors.ErrCodeInvalidBackend, "archive backend %q", c.Archive.Backend)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server max_body_bytes must be positive")
	}
	return nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
