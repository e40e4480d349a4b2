package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gracetower/pkg/config"
)

// solverFlags are the flags shared by commands that run the pipeline.
// Flags the user did not set leave the config file values alone.
type solverFlags struct {
	backend     string
	timeLimit   time.Duration
	threads     int
	noWarmStart bool
	noCache     bool
	refresh     bool
}

func (f *solverFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.backend, "backend", config.SolverHighs, "solver backend: highs or pb")
	cmd.Flags().DurationVar(&f.timeLimit, "time-limit", 5*time.Minute, "time limit per graph")
	cmd.Flags().IntVar(&f.threads, "threads", 0, "solver threads (0 = backend default)")
	cmd.Flags().BoolVar(&f.noWarmStart, "no-warm-start", false, "do not seed the solver with the heuristic coloring")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results but store fresh ones")
}

// apply copies the explicitly set flags onto cfg and revalidates it.
func (f *solverFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("backend") {
		cfg.Solver.Backend = f.backend
	}
	if cmd.Flags().Changed("time-limit") {
		cfg.Solver.TimeLimit = config.Duration(f.timeLimit)
	}
	if cmd.Flags().Changed("threads") {
		cfg.Solver.Threads = f.threads
	}
	if f.noWarmStart {
		cfg.Solver.WarmStart = false
	}
	return cfg.Validate()
}
