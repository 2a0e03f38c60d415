package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/delvemap/delvemap/internal/server"
	"github.com/delvemap/delvemap/pkg/cache"
	"github.com/delvemap/delvemap/pkg/config"
	apperrors "github.com/delvemap/delvemap/pkg/errors"
	"github.com/delvemap/delvemap/pkg/pipeline"
	"github.com/delvemap/delvemap/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dungeon HTTP service",
		Long: `Start the HTTP service for generating, storing, and rendering dungeons.

Settings come from ` + config.FileName + ` (see --config), with flags taking
precedence. Without a config file the service runs with an in-memory store
and a file cache.

Examples:
  delvemap serve
  delvemap serve --addr :9090
  delvemap serve --config ./delvemap.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServe wires the configured cache, store, and pipeline into the HTTP
// server and blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	cch, err := serveCache(ctx, cfg)
	if err != nil {
		return err
	}

	st, err := serveStore(ctx, cfg)
	if err != nil {
		return err
	}
	st = store.Instrument(st)
	defer st.Close()

	// Server keys are scoped so a Redis shared with CLI runs keeps the two
	// surfaces' entries apart.
	keyer := cache.NewScopedKeyer(nil, "server:")
	runner := pipeline.NewRunner(cch, keyer, c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:        cfg.Server.Addr,
		Width:       cfg.Render.Width,
		Height:      cfg.Render.Height,
		MinimapSize: cfg.Render.MinimapSize,
	}, st, runner, c.Logger)

	c.Logger.Info("starting server",
		"addr", cfg.Server.Addr, "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
	return srv.ListenAndServe(ctx)
}

// serveCache builds the cache backend named in the config.
func serveCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil
	case config.CacheBackendRedis:
		// A Redis that is still starting up reports Retryable failures;
		// back off instead of refusing to serve.
		var rc cache.Cache
		err := cache.RetryWithBackoff(ctx, func() error {
			c, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Cache.RedisAddr})
			if err != nil {
				return err
			}
			rc = c
			return nil
		})
		return rc, err
	case config.CacheBackendFile:
		dir := cfg.Cache.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfig,
			"unknown cache backend %q", cfg.Cache.Backend)
	}
}

// serveStore builds the store backend named in the config.
func serveStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      cfg.Store.URI,
			Database: cfg.Store.Database,
		})
	default:
		return store.NewMemoryStore(), nil
	}
}
