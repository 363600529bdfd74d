package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Cache.Backend != "file" || cfg.Cache.Dir == "" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("GEODRAW_TEST_ROOT", "/srv/geodraw")
	path := writeConfig(t, `
[render]
width = 640
formats = ["svg", "json"]

[cache]
backend = "redis"
dir = "$GEODRAW_TEST_ROOT/cache"
ttl = "36h"

[server]
addr = ":9000"
read_timeout = "3s"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Render.Width != 640 {
		t.Errorf("Render.Width = %v, want 640", cfg.Render.Width)
	}
	if cfg.Render.Height != Default().Render.Height {
		t.Errorf("Render.Height = %v, want the default", cfg.Render.Height)
	}
	if cfg.Cache.Dir != "/srv/geodraw/cache" {
		t.Errorf("Cache.Dir = %q, want expanded path", cfg.Cache.Dir)
	}
	if cfg.Cache.TTL != 36*time.Hour {
		t.Errorf("Cache.TTL = %v, want 36h", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.WriteTimeout != Default().Server.WriteTimeout {
		t.Error("unset server key lost its default")
	}

	opts := cfg.PipelineOptions()
	if opts.Width != 640 || len(opts.Formats) != 2 {
		t.Errorf("PipelineOptions() = %+v", opts)
	}
	if co := cfg.CacheOptions(); co.Backend != "redis" || co.Redis.Addr != "localhost:6379" {
		t.Errorf("CacheOptions() = %+v", co)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "[render]\nwidht = 3\n", "unknown keys: render.widht"},
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n", "unknown backend"},
		{"bad format", "[render]\nformats = [\"gif\"]\n", "invalid format"},
		{"bad duration", "[cache]\nttl = \"soon\"\n", "soon"},
		{"syntax", "[render\n", "config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Width != Default().Render.Width {
		t.Error("missing default file should give Default()")
	}

	if _, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("explicit missing path should fail")
	}
}
