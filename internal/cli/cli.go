// Package cli implements the delvemap command-line interface.
//
// This package provides commands for generating dungeon layouts, validating
// and inspecting saved dungeon graphs, rendering them as map artifacts, and
// running the HTTP service. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Build a seeded random dungeon and write its graph JSON
//   - validate: Run the connectivity gate on a saved dungeon
//   - stats: Print the statistics block of a saved dungeon
//   - path: Query shortest distances between rooms
//   - render: Produce SVG, PNG, DOT, JSON, or minimap artifacts
//   - explore: Browse rooms interactively in the terminal
//   - serve: Run the HTTP service
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/delvemap/delvemap/pkg/buildinfo"
	"github.com/delvemap/delvemap/pkg/cache"
	"github.com/delvemap/delvemap/pkg/pipeline"
)

// =============================================================================
// Shared Names
// =============================================================================

// appName names the binary, the cache subdirectory, and the config
// directory.
const appName = "delvemap"

// Log levels re-exported so main.go does not import charmbracelet/log.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Shared Command State
// =============================================================================

// CLI carries the state shared by every command: the logger and the
// persistent flag values.
type CLI struct {
	Logger *log.Logger

	verbose    bool
	configPath string
}

// New creates a CLI writing logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel adjusts the logger's level after construction.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. The --verbose flag raises the log level, and the logger is
// attached to the command context so every command can retrieve it with
// loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Delvemap generates and maps dungeon room layouts",
		Long:         `Delvemap is a tool for procedural dungeon maps: it generates room-connectivity graphs, validates that every room stays reachable, and renders the result as map artifacts or serves it over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(log.DebugLevel)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: XDG config dir)")

	root.AddCommand(
		c.generateCommand(),
		c.validateCommand(),
		c.statsCommand(),
		c.pathCommand(),
		c.renderCommand(),
		c.exploreCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)

	return root
}

// =============================================================================
// Pipeline Wiring
// =============================================================================

// newRunner builds a pipeline runner backed by the local file cache, or no
// cache at all when the user asked for --no-cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cch, nil, c.Logger), nil
}

// newCache degrades to the null cache when no cache directory can be
// resolved; rendering without a cache beats not rendering.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir resolves the per-user cache directory, honoring XDG_CACHE_HOME
// on every platform before falling back to ~/.cache.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats splits a comma-separated --formats value, trimming spaces
// and dropping empty parts. An empty flag defaults to SVG.
func parseFormats(s string) []string {
	var formats []string
	for _, part := range strings.Split(s, ",") {
		if f := strings.TrimSpace(part); f != "" {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return []string{pipeline.FormatSVG}
	}
	return formats
}
