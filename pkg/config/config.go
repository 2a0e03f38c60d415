// Package config loads delvemap's TOML configuration file.
//
// The file lives at the XDG config location by default
// (~/.config/delvemap/delvemap.toml) and can be overridden with an explicit
// path or the DELVEMAP_CONFIG environment variable. A missing file at the
// default location is not an error; the zero value of every setting maps to
// a sensible default, so an empty file and no file behave the same.
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg.Server.Addr, ...)
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/delvemap/delvemap/pkg/dungeon/gen"
	apperrors "github.com/delvemap/delvemap/pkg/errors"
)

// FileName is the config file name looked up in the XDG config directory.
const FileName = "delvemap.toml"

// EnvConfigPath overrides the config file location when Load is called with
// an empty path. It affects the path only, never individual settings.
const EnvConfigPath = "DELVEMAP_CONFIG"

// Cache backend names accepted in [cache] backend.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Store backend names accepted in [store] backend.
const (
	StoreBackendMemory = "memory"
	StoreBackendMongo  = "mongo"
)

// Defaults applied by Load for settings the file omits.
const (
	DefaultAddr        = ":8080"
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
	DefaultMinimapSize = 256
)

// Config is the full delvemap configuration.
type Config struct {
	Server   Server   `toml:"server"`
	Cache    Cache    `toml:"cache"`
	Store    Store    `toml:"store"`
	Render   Render   `toml:"render"`
	Generate Generate `toml:"generate"`
}

// Server configures the HTTP service.
type Server struct {
	Addr string `toml:"addr"` // listen address (default ":8080")
}

// Cache selects and configures the artifact cache backend.
type Cache struct {
	Backend   string `toml:"backend"`    // file, redis, or none (default file)
	Dir       string `toml:"dir"`        // file backend directory (default XDG cache dir)
	RedisAddr string `toml:"redis_addr"` // redis backend host:port
}

// Store selects and configures the snapshot store backend.
type Store struct {
	Backend  string `toml:"backend"`  // memory or mongo (default memory)
	URI      string `toml:"uri"`      // mongodb:// connection string
	Database string `toml:"database"` // mongo database name
}

// Render holds default artifact dimensions.
type Render struct {
	Width       float64 `toml:"width"`        // frame width in points (default 800)
	Height      float64 `toml:"height"`       // frame height in points (default 600)
	MinimapSize int     `toml:"minimap_size"` // minimap edge length (default 256)
}

// Generate holds default generator settings. A zero seed derives the seed
// from the clock, so it is left untouched here.
type Generate struct {
	Rooms      int   `toml:"rooms"`
	ExtraLoops int   `toml:"extra_loops"`
	Seed       int64 `toml:"seed"`
}

// Default returns a configuration with every setting at its default.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// DefaultPath returns the standard config file location using the XDG
// convention (~/.config/delvemap/delvemap.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "delvemap", FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "delvemap", FileName), nil
}

// Load reads the configuration. An empty path falls back to DELVEMAP_CONFIG
// and then the XDG location. A missing file is an error only when the path
// was requested explicitly (argument or environment); a missing file at the
// fallback location yields defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvConfigPath); env != "" {
			path = env
			explicit = true
		}
	}
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			// No home directory; run on defaults.
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyDefaults fills zero-valued settings. Explicit zeroes in the file mean
// "use the default", matching the generator's option semantics.
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheBackendFile
	}
	if c.Store.Backend == "" {
		c.Store.Backend = StoreBackendMemory
	}
	if c.Render.Width <= 0 {
		c.Render.Width = DefaultWidth
	}
	if c.Render.Height <= 0 {
		c.Render.Height = DefaultHeight
	}
	if c.Render.MinimapSize <= 0 {
		c.Render.MinimapSize = DefaultMinimapSize
	}
	if c.Generate.Rooms == 0 {
		c.Generate.Rooms = gen.DefaultRooms
	}
	if c.Generate.ExtraLoops == 0 {
		c.Generate.ExtraLoops = gen.DefaultExtraLoops
	}
}

// Validate checks backend names and cross-field requirements.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"unknown cache backend %q (must be file, redis, or none)", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreBackendMemory:
	case StoreBackendMongo:
		if c.Store.URI == "" {
			return apperrors.New(apperrors.ErrCodeInvalidConfig,
				"store backend mongo requires a uri")
		}
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"unknown store backend %q (must be memory or mongo)", c.Store.Backend)
	}
	if c.Generate.Rooms < 0 || c.Generate.ExtraLoops < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"generate counts must not be negative")
	}
	if c.Generate.Rooms > gen.MaxRooms {
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"generate rooms must not exceed %d", gen.MaxRooms)
	}
	return nil
}

// GenOptions converts the [generate] section into generator options.
func (c *Config) GenOptions() gen.Options {
	return gen.Options{
		Rooms:      c.Generate.Rooms,
		ExtraLoops: c.Generate.ExtraLoops,
		Seed:       c.Generate.Seed,
	}
}
