// Package config loads geodraw's TOML configuration file.
//
//	[render]
//	width = 480
//	formats = ["svg", "png"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "72h"
//
//	[server]
//	addr = ":8080"
//
// Paths may reference environment variables ($HOME, ${XDG_CACHE_HOME}).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/geodraw/pkg/cache"
	"github.com/matzehuels/geodraw/pkg/pipeline"
)

// Config is the whole configuration file.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds defaults for every render.
type RenderConfig struct {
	Width             float64  `toml:"width"`
	Height            float64  `toml:"height"`
	Padding           float64  `toml:"padding"`
	FontSize          float64  `toml:"font_size"`
	LineHeight        float64  `toml:"line_height"`
	Scale             float64  `toml:"scale"`
	Background        string   `toml:"background"`
	ScreenCoordinates bool     `toml:"screen_coordinates"`
	EmbedFont         bool     `toml:"embed_font"`
	Formats           []string `toml:"formats"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend       string        `toml:"backend"` // file, redis, mongo or none
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
	TTL           time.Duration `toml:"ttl"`
}

// ServerConfig configures `geodraw serve`.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	// RenderTimeout bounds a single render request.
	RenderTimeout time.Duration `toml:"render_timeout"`
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Width:   pipeline.DefaultWidth,
			Height:  pipeline.DefaultHeight,
			Scale:   pipeline.DefaultScale,
			Formats: []string{pipeline.FormatSVG},
		},
		Cache: CacheConfig{
			Backend:   cache.BackendFile,
			Dir:       defaultCacheDir(),
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
			TTL:       pipeline.DefaultTTL,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			ReadTimeout:   10 * time.Second,
			WriteTimeout:  30 * time.Second,
			RenderTimeout: 20 * time.Second,
			MaxBodyBytes:  1 << 20,
		},
	}
}

// Load reads path over [Default]. Keys the file sets but Config does not
// know are an error, so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Cache.Dir = os.ExpandEnv(cfg.Cache.Dir)
	cfg.Cache.MongoURI = os.ExpandEnv(cfg.Cache.MongoURI)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path if it is set, otherwise the default config file
// if it exists, otherwise [Default].
func LoadOrDefault(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	if p := DefaultPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// Validate checks values the decoder cannot.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return fmt.Errorf("cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	return pipeline.ValidateFormats(c.Render.Formats)
}

// PipelineOptions converts the render section into pipeline options.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Formats:           append([]string(nil), c.Render.Formats...),
		Width:             c.Render.Width,
		Height:            c.Render.Height,
		Padding:           c.Render.Padding,
		FontSize:          c.Render.FontSize,
		LineHeight:        c.Render.LineHeight,
		Scale:             c.Render.Scale,
		Background:        c.Render.Background,
		ScreenCoordinates: c.Render.ScreenCoordinates,
		EmbedFont:         c.Render.EmbedFont,
	}
}

// CacheOptions converts the cache section into backend options.
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisOptions{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
		Mongo: cache.MongoOptions{
			URI:      c.Cache.MongoURI,
			Database: c.Cache.MongoDatabase,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/geodraw/config.toml (or the
// platform equivalent), or "" when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "geodraw", "config.toml")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "geodraw")
	}
	return filepath.Join(dir, "geodraw")
}
