// Package config loads the process-wide configuration once at startup.
//
// Sources, lowest precedence first:
//  1. Defaults (Default)
//  2. A TOML file, if it exists
//  3. Environment variables with the USERSEARCH_ prefix,
//     e.g. USERSEARCH_UPSTREAM_SEARCH_URL, USERSEARCH_API_PORT
//
// The result is validated and then passed around by value; nothing mutates it
// after Load returns.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "USERSEARCH"

type Config struct {
	Upstream UpstreamConfig `toml:"upstream" envconfig:"UPSTREAM"`
	API      APIConfig      `toml:"api"      envconfig:"API"`
	App      AppConfig      `toml:"app"      envconfig:"APP"`
	Log      LogConfig      `toml:"log"      envconfig:"LOG"`
}

// UpstreamConfig describes the third-party API being proxied.
type UpstreamConfig struct {
	SearchURL string            `toml:"search_url" envconfig:"SEARCH_URL"`
	UserURL   string            `toml:"user_url"   envconfig:"USER_URL"`
	Headers   map[string]string `toml:"headers"    envconfig:"HEADERS"`
	Timeout   Duration          `toml:"timeout"    envconfig:"TIMEOUT"`
}

// APIConfig configures the mid-tier HTTP API.
type APIConfig struct {
	Port int `toml:"port" envconfig:"PORT"`
}

// AppConfig configures the UI-facing tier.
type AppConfig struct {
	Port int `toml:"port" envconfig:"PORT"`
	// APIURL is the base URL of the mid-tier API the app calls.
	APIURL   string `toml:"api_url"   envconfig:"API_URL"`
	PageSize int    `toml:"page_size" envconfig:"PAGE_SIZE"`
}

type LogConfig struct {
	Level string `toml:"level" envconfig:"LEVEL"`
}

// SlogLevel converts Level to a slog.Level, falling back to info.
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Duration lets durations be written as "10s" in TOML and in the environment.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Upstream: UpstreamConfig{
			SearchURL: "https://api.github.com/search/users",
			UserURL:   "https://api.github.com/users",
			Headers: map[string]string{
				"Accept":               "application/vnd.github+json",
				"X-GitHub-Api-Version": "2022-11-28",
				"User-Agent":           "usersearch",
			},
			Timeout: Duration{10 * time.Second},
		},
		API: APIConfig{Port: 5188},
		App: AppConfig{
			Port:     8080,
			APIURL:   "http://localhost:5188",
			PageSize: 30,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path (a missing file is not an error), applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	return load(path, envconfig.Process)
}

// load takes the env processor as a parameter so tests can run without
// touching the real environment.
func load(path string, processEnv func(prefix string, spec interface{}) error) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults only
		case err != nil:
			return Config{}, fmt.Errorf("reading config file: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("unmarshaling config: %w", err)
			}
		}
	}

	if err := processEnv(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("processing environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	for name, raw := range map[string]string{
		"upstream.search_url": c.Upstream.SearchURL,
		"upstream.user_url":   c.Upstream.UserURL,
		"app.api_url":         c.App.APIURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s %q", name, raw)
		}
	}

	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("invalid api.port %d", c.API.Port)
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid app.port %d", c.App.Port)
	}
	if c.App.PageSize <= 0 || c.App.PageSize > 100 {
		return fmt.Errorf("invalid app.page_size %d: must be between 1 and 100", c.App.PageSize)
	}
	if c.Upstream.Timeout.Duration < 0 {
		return fmt.Errorf("invalid upstream.timeout %s", c.Upstream.Timeout)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	return nil
}
