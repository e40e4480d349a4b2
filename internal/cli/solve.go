package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gracetower/pkg/errors"
	gio "github.com/matzehuels/gracetower/pkg/io"
	"github.com/matzehuels/gracetower/pkg/pipeline"
)

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		sf     solverFlags
		jobs   int
		output string
	)

	cmd := &cobra.Command{
		Use:   "solve <file|dir>...",
		Short: "Compute graceful chromatic numbers of edge-list files",
		Long: `Solve reads each edge-list file (directories contribute all their files),
computes a greedy graceful coloring and then the exact optimum within the time
limit, and writes one CSV row per graph.

Edge-list files hold one "u v" pair of integers per line; lines starting with
# or % are comments.`,
		Example: `  gracetower solve graphs/petersen.txt
  gracetower solve graphs/ --jobs 4 --time-limit 30s -o results.csv
  gracetower solve big.txt --backend pb --no-warm-start`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := sf.apply(cmd, &cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("jobs") {
				cfg.Batch.Jobs = jobs
			}
			if cmd.Flags().Changed("output") {
				cfg.Batch.Output = output
			}
			if err := errors.ValidatePath(cfg.Batch.Output); err != nil {
				return err
			}

			files, err := pipeline.ExpandPaths(args)
			if err != nil {
				return err
			}
			inputs, err := pipeline.LoadFiles(files)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			runner, err := c.newRunner(ctx, cfg, sf.noCache)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)

			opts := pipeline.Options{
				TimeLimit:   cfg.Solver.TimeLimit.Std(),
				NoWarmStart: !cfg.Solver.WarmStart,
				Refresh:     sf.refresh,
				ResultTTL:   cfg.Cache.TTL.Std(),
				Logger:      logger,
			}

			prog := newProgress(logger)
			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Solving %d graph(s) with %s", len(inputs), cfg.Solver.Backend))
			spinner.Start()
			records, batchErr := runner.Batch(ctx, inputs, opts, cfg.Batch.Jobs)
			spinner.Stop()
			if spinner.Cancelled() {
				return ctx.Err()
			}

			if err := gio.ExportCSV(records, cfg.Batch.Output); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Solved %d graph(s)", len(records)))

			printRecords(records)
			printSuccess("Wrote %d record(s)", len(records))
			printFile(cfg.Batch.Output)
			return batchErr
		},
	}

	sf.register(cmd)
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "graphs solved in parallel (default: number of CPUs)")
	cmd.Flags().StringVarP(&output, "output", "o", "results.csv", "output CSV file")

	return cmd
}

// printRecords prints a summary table of solved records.
func printRecords(records []gio.Record) {
	rows := make([][]string, len(records))
	for i, r := range records {
		solved := "-"
		if r.SolvedSpan > 0 {
			solved = strconv.Itoa(r.SolvedSpan)
		}
		heuristic := "-"
		if r.HeuristicSpan > 0 {
			heuristic = strconv.Itoa(r.HeuristicSpan)
		}
		rows[i] = []string{
			r.Graph,
			strconv.Itoa(r.Vertices),
			strconv.Itoa(r.Edges),
			strconv.Itoa(r.MaxDegree),
			heuristic,
			solved,
			formatMillis(r.TimeMS),
			r.Status,
		}
	}
	printTable([]string{"graph", "n", "m", "Δ", "greedy", "span", "time", "status"}, rows, 7)
}
