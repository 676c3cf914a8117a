package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/gymbuddy/cmd/app/commands"
	"github.com/allisson/gymbuddy/internal/app"
	"github.com/allisson/gymbuddy/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "down",
					Value: false,
					Usage: "Revert every applied migration instead of applying pending ones",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				db, err := container.DB()
				if err != nil {
					return err
				}

				return commands.RunMigrations(container.Logger(), db, cfg.DBDriver, cmd.Bool("down"))
			},
		},
	}
}
