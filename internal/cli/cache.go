package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bacoords/woo-dev-blog-tools/pkg/cache"
)

// cacheCommand groups the file cache maintenance subcommands. Redis entries
// expire through their TTL and are not managed here.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the pull request response cache",
		Long: `Manage the file cache of pull request descriptions. The cache is only used when
cache.backend = "file" is set in woo-release.toml.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached pull request descriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			n, err := clearFileCache(dir)
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("Directory: %s", dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(stdout, dir)
			if backend := c.cfg.Cache.Backend; backend != "file" {
				loggerFromContext(cmd.Context()).Info("file cache not in use", "backend", backend)
			}
			return nil
		},
	})

	return cmd
}

// clearFileCache empties the file cache in dir. A missing directory counts
// as an empty cache.
func clearFileCache(dir string) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return 0, err
	}
	n, err := fc.Clear()
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	return n, nil
}
