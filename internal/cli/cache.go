package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gracetower/pkg/cache"
	"github.com/matzehuels/gracetower/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached colorings and results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.CacheNone {
				printInfo("Cache is disabled")
				return nil
			}

			ctx := cmd.Context()
			ch, err := c.newCache(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer ch.Close()

			clearer, ok := ch.(cache.Clearer)
			if !ok {
				printInfo("Cache is empty")
				return nil
			}
			if err := clearer.Clear(ctx); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared %s cache", cfg.Cache.Backend)
			printDetail("Location: %s", cacheLocation(cfg))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Println(cacheLocation(cfg))
			return nil
		},
	}
}

// cacheLocation describes where cfg's cache lives: a directory, a Redis
// URL or "none".
func cacheLocation(cfg config.Config) string {
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		return cfg.Cache.RedisURL
	case config.CacheFile:
		dir, err := cacheDir(cfg)
		if err != nil {
			return "none"
		}
		return dir
	}
	return "none"
}
