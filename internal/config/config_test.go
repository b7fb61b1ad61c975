package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string, interface{}) error { return nil }

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "usersearch.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "nope.toml"), noEnv)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "https://api.github.com/search/users", cfg.Upstream.SearchURL)
	assert.Equal(t, "application/vnd.github+json", cfg.Upstream.Headers["Accept"])
	assert.Equal(t, 30, cfg.App.PageSize)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
[upstream]
search_url = "http://localhost:9999/search/users"
timeout = "3s"

[api]
port = 6000

[log]
level = "debug"
`)

	cfg, err := load(path, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/search/users", cfg.Upstream.SearchURL)
	assert.Equal(t, "https://api.github.com/users", cfg.Upstream.UserURL, "untouched keys keep defaults")
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout.Duration)
	assert.Equal(t, 6000, cfg.API.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, `
[api]
port = 6000
`)
	t.Setenv("USERSEARCH_API_PORT", "7000")
	t.Setenv("USERSEARCH_UPSTREAM_USER_URL", "http://localhost:9999/users")
	t.Setenv("USERSEARCH_APP_PAGE_SIZE", "50")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.API.Port)
	assert.Equal(t, "http://localhost:9999/users", cfg.Upstream.UserURL)
	assert.Equal(t, 50, cfg.App.PageSize)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeFile(t, `[api`)

	_, err := load(path, noEnv)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"relative search url", func(c *Config) { c.Upstream.SearchURL = "/search/users" }, true},
		{"empty user url", func(c *Config) { c.Upstream.UserURL = "" }, true},
		{"port out of range", func(c *Config) { c.API.Port = 70000 }, true},
		{"zero app port", func(c *Config) { c.App.Port = 0 }, true},
		{"page size above GitHub maximum", func(c *Config) { c.App.PageSize = 101 }, true},
		{"negative timeout", func(c *Config) { c.Upstream.Timeout = Duration{-time.Second} }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"upper-case log level", func(c *Config) { c.Log.Level = "WARN" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLogConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, LogConfig{Level: tt.level}.SlogLevel())
		})
	}
}
