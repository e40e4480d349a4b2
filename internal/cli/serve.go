package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gracetower/pkg/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		sf   solverFlags
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solve API over HTTP",
		Long: `Serve starts an HTTP server exposing the solver:

  POST /v1/solve            edge-list body, returns the result record
  POST /v1/render           edge-list body, returns the colored drawing
  GET  /v1/results          recent results
  GET  /v1/results/{hash}   results of one graph
  GET  /healthz             liveness

The configured time limit is also the maximum a request may ask for.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := sf.apply(cmd, &cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cfg, sf.noCache)
			if err != nil {
				return err
			}
			defer runner.Close(context.WithoutCancel(ctx))

			srv := api.New(api.Config{
				Runner:       runner,
				TimeLimit:    cfg.Solver.TimeLimit.Std(),
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
				Logger:       loggerFromContext(ctx),
			})
			printInfo("Serving on %s (backend %s)", cfg.Server.Addr, cfg.Solver.Backend)
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	sf.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
