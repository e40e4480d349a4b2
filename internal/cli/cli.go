// Package cli implements the gracetower command-line interface.
//
// # Commands
//
//   - solve: heuristic plus exact solve of one or more edge-list files,
//     written to a CSV table
//   - heuristic: greedy colorings only
//   - model: export the integer program in CPLEX LP format
//   - render: draw a colored graph as SVG, PNG or DOT
//   - serve: run the HTTP API
//   - cache, config, completion: housekeeping
//
// # Configuration
//
// Settings come from the TOML file given by --config, or the default
// location reported by "gracetower config path". Command-line flags
// override the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels in the command context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gracetower/pkg/archive"
	"github.com/matzehuels/gracetower/pkg/buildinfo"
	"github.com/matzehuels/gracetower/pkg/cache"
	"github.com/matzehuels/gracetower/pkg/config"
	"github.com/matzehuels/gracetower/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "gracetower"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag; empty means the default location.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Gracetower computes graceful chromatic numbers",
		Long: `Gracetower bounds and computes the graceful chromatic number of undirected graphs:
the fewest colors such that adjacent vertices differ and edges sharing a vertex
get distinct labels |c(u) - c(v)|. A greedy heuristic gives an upper bound that
warm-starts an exact integer-programming solve.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+defaultConfigPath()+")")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.heuristicCommand())
	root.AddCommand(c.modelCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration selected by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

func defaultConfigPath() string {
	p, err := config.Path()
	if err != nil {
		return "none"
	}
	return p
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner wires the solver, cache and archive selected by cfg into a
// pipeline runner. The caller must Close the runner.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	s, err := pipeline.NewSolver(cfg.Solver.Backend, pipeline.SolverOptions{
		Threads: cfg.Solver.Threads,
		Logger:  c.Logger,
	})
	if err != nil {
		return nil, err
	}

	ch, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}

	arch, err := newArchive(ctx, cfg)
	if err != nil {
		ch.Close()
		return nil, err
	}

	return pipeline.NewRunner(pipeline.RunnerConfig{
		Solver:  s,
		Cache:   ch,
		Keyer:   releaseKeyer(),
		Archive: arch,
		Logger:  c.Logger,
	}), nil
}

// releaseKeyer scopes cache keys by release. Development builds share one
// unscoped namespace.
func releaseKeyer() cache.Keyer {
	if buildinfo.Version == "dev" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, buildinfo.Version)
}

// newCache opens the configured cache. A file cache whose directory cannot
// be determined or created degrades to no caching.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case config.CacheFile:
		dir, err := cacheDir(cfg)
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
	return cache.NewNullCache(), nil
}

func newArchive(ctx context.Context, cfg config.Config) (archive.Archive, error) {
	if cfg.Archive.Backend != config.ArchiveMongo {
		return archive.NullArchive{}, nil
	}
	ma, err := archive.NewMongoArchive(ctx, archive.MongoConfig{
		URI:            cfg.Archive.URI,
		Database:       cfg.Archive.Database,
		Collection:     cfg.Archive.Collection,
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return ma, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns cfg's cache directory, or the XDG default
// (~/.cache/gracetower/).
func cacheDir(cfg config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
