package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/allisson/storefront/cmd/app/commands"
	"github.com/allisson/storefront/internal/app"
	"github.com/allisson/storefront/internal/config"
	"github.com/allisson/storefront/internal/database"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the admin gateway and the metrics server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Create the session table for the postgres and mysql session stores",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				logger := container.Logger()
				if _, err := database.MigrationDir(cfg.SessionStoreDriver); err != nil {
					logger.Info("session store needs no migrations",
						slog.String("driver", cfg.SessionStoreDriver),
					)
					return nil
				}

				return commands.RunMigrations(logger, cfg.SessionStoreDriver, cfg.DBConnectionString)
			},
		},
	}
}
