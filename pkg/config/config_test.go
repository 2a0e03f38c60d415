package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/delvemap/delvemap/pkg/dungeon/gen"
	apperrors "github.com/delvemap/delvemap/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, CacheBackendFile)
	}
	if cfg.Store.Backend != StoreBackendMemory {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, StoreBackendMemory)
	}
	if cfg.Render.Width != DefaultWidth || cfg.Render.Height != DefaultHeight {
		t.Errorf("Render = %vx%v, want %vx%v",
			cfg.Render.Width, cfg.Render.Height, DefaultWidth, DefaultHeight)
	}
	if cfg.Render.MinimapSize != DefaultMinimapSize {
		t.Errorf("Render.MinimapSize = %d, want %d", cfg.Render.MinimapSize, DefaultMinimapSize)
	}
	if cfg.Generate.Rooms != gen.DefaultRooms {
		t.Errorf("Generate.Rooms = %d, want %d", cfg.Generate.Rooms, gen.DefaultRooms)
	}
	if cfg.Generate.Seed != 0 {
		t.Errorf("Generate.Seed = %d, want 0", cfg.Generate.Seed)
	}
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `
[server]
addr = "127.0.0.1:9999"

[cache]
backend = "redis"
redis_addr = "redis:6379"

[store]
backend = "mongo"
uri = "mongodb://localhost:27017"
database = "dungeons_test"

[render]
width = 1024.0
height = 768.0
minimap_size = 128

[generate]
rooms = 24
extra_loops = 4
seed = 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != CacheBackendRedis || cfg.Cache.RedisAddr != "redis:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Store.Backend != StoreBackendMongo || cfg.Store.Database != "dungeons_test" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Render.Width != 1024 || cfg.Render.Height != 768 || cfg.Render.MinimapSize != 128 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Generate.Rooms != 24 || cfg.Generate.ExtraLoops != 4 || cfg.Generate.Seed != 7 {
		t.Errorf("Generate = %+v", cfg.Generate)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("[server]\naddr = \":7777\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":7777" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":7777")
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("Cache.Backend = %q, want default %q", cfg.Cache.Backend, CacheBackendFile)
	}
	if cfg.Render.Width != DefaultWidth {
		t.Errorf("Render.Width = %v, want default %v", cfg.Render.Width, DefaultWidth)
	}
}

func TestLoadMissingFallbackYieldsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvConfigPath, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
}

func TestLoadMissingExplicitPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want code %s", err, apperrors.ErrCodeFileNotFound)
	}
}

func TestLoadMissingEnvPathErrors(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "missing.toml"))

	_, err := Load("")
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want code %s", err, apperrors.ErrCodeFileNotFound)
	}
}

func TestLoadEnvOverridePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \":6060\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":6060" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":6060")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("[server\naddr ="), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want code %s", err, apperrors.ErrCodeInvalidConfig)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"redis cache", func(c *Config) { c.Cache.Backend = CacheBackendRedis }, false},
		{"none cache", func(c *Config) { c.Cache.Backend = CacheBackendNone }, false},
		{"unknown cache backend", func(c *Config) { c.Cache.Backend = "memcached" }, true},
		{"mongo with uri", func(c *Config) {
			c.Store.Backend = StoreBackendMongo
			c.Store.URI = "mongodb://localhost:27017"
		}, false},
		{"mongo without uri", func(c *Config) { c.Store.Backend = StoreBackendMongo }, true},
		{"unknown store backend", func(c *Config) { c.Store.Backend = "postgres" }, true},
		{"negative rooms", func(c *Config) { c.Generate.Rooms = -1 }, true},
		{"too many rooms", func(c *Config) { c.Generate.Rooms = gen.MaxRooms + 1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() code = %s, want %s", apperrors.GetCode(err), apperrors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	want := filepath.Join("/tmp/xdg", "delvemap", FileName)
	if path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestGenOptions(t *testing.T) {
	cfg := Default()
	cfg.Generate.Rooms = 30
	cfg.Generate.Seed = 99

	opts := cfg.GenOptions()
	if opts.Rooms != 30 || opts.Seed != 99 {
		t.Errorf("GenOptions() = %+v", opts)
	}
	if opts.ExtraLoops != gen.DefaultExtraLoops {
		t.Errorf("ExtraLoops = %d, want %d", opts.ExtraLoops, gen.DefaultExtraLoops)
	}
}
