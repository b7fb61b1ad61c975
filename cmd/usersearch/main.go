// Package main is the entry point for usersearch.
//
// One binary, four commands:
//
//	usersearch api     → mid-tier HTTP API in front of GitHub
//	usersearch app     → user-facing HTTP app in front of the API
//	usersearch search  → one search from the terminal
//	usersearch user    → one user's details from the terminal
//
// main only reads configuration, builds the logger and hands off to a
// command. All actual logic lives in internal/.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sakif/usersearch/internal/config"
)

func main() {
	app := &cli.Command{
		Name:  "usersearch",
		Usage: "Search GitHub users through a small proxy",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: "usersearch.toml",
			},
		},
		Commands: []*cli.Command{
			apiCommand(),
			appCommand(),
			searchCommand(),
			userCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration named by --config and builds a logger
// writing to w. --debug wins over log.level.
func setup(c *cli.Command, w io.Writer) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Log.SlogLevel()
	if c.Bool("debug") {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	return cfg, logger, nil
}
