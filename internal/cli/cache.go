package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/delvemap/delvemap/pkg/cache"
)

// cacheCommand groups the cache maintenance subcommands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render artifact cache",
		Long: `Manage the local cache of layout positions and rendered artifacts.

Entries are keyed by graph content, so a cleared cache only costs the next
render a recomputation; nothing is lost.`,
	}

	cmd.AddCommand(c.cacheClearCommand(), c.cachePathCommand())

	return cmd
}

// cacheClearCommand wipes the local artifact cache and reports what went.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached layouts and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("resolve cache dir: %w", err)
			}

			// Measure before clearing so the report can say what was freed.
			entries, bytes := measureCache(dir)
			if entries == 0 {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			if err := fc.Clear(); err != nil {
				return err
			}

			printSuccess("Cleared %d cached entries (%s)", entries, formatBytes(bytes))
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand prints where the cache lives, for scripting and manual
// inspection.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("resolve cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// measureCache counts cache entries and their total size. Walk errors are
// ignored; the result is advisory.
func measureCache(dir string) (entries int, bytes int64) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		entries++
		if info, err := d.Info(); err == nil {
			bytes += info.Size()
		}
		return nil
	})
	return entries, bytes
}

// formatBytes renders a byte count in a compact human unit.
func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
