package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sakif/usersearch/internal/apiclient"
	"github.com/sakif/usersearch/internal/config"
	"github.com/sakif/usersearch/internal/gateway"
	"github.com/sakif/usersearch/internal/server"
	"github.com/sakif/usersearch/internal/service"
)

func apiCommand() *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Serve the mid-tier search API",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides api.port)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, logger, err := setup(c, os.Stdout)
			if err != nil {
				return err
			}
			port := cfg.API.Port
			if c.IsSet("port") {
				port = c.Int("port")
			}

			svc := newSearchService(cfg, logger)
			logger.Info("upstream configured",
				slog.String("searchUrl", cfg.Upstream.SearchURL),
				slog.String("userUrl", cfg.Upstream.UserURL),
				slog.Duration("timeout", cfg.Upstream.Timeout.Duration),
			)

			return server.NewAPI(server.Config{Port: port}, svc, logger).Start(ctx)
		},
	}
}

func appCommand() *cli.Command {
	return &cli.Command{
		Name:  "app",
		Usage: "Serve the user-facing search app",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides app.port)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, logger, err := setup(c, os.Stdout)
			if err != nil {
				return err
			}
			port := cfg.App.Port
			if c.IsSet("port") {
				port = c.Int("port")
			}

			client := apiclient.New(cfg.App.APIURL, cfg.Upstream.Timeout.Duration, logger)
			logger.Info("api configured", slog.String("apiUrl", cfg.App.APIURL))

			return server.NewApp(server.Config{Port: port}, client, cfg.App.PageSize, logger).Start(ctx)
		},
	}
}

func newSearchService(cfg config.Config, logger *slog.Logger) *service.SearchService {
	return service.NewSearchService(
		gateway.NewRestyClient(cfg.Upstream.Timeout.Duration, logger),
		service.Upstream{
			SearchURL: cfg.Upstream.SearchURL,
			UserURL:   cfg.Upstream.UserURL,
			Headers:   cfg.Upstream.Headers,
		},
		logger,
	)
}
