package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/gymbuddy/cmd/app/commands"
	"github.com/allisson/gymbuddy/internal/app"
	"github.com/allisson/gymbuddy/internal/config"
)

func getAccountCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "hash-password",
			Usage: "Hash a password, optionally as a FALLBACK_ACCOUNTS entry",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "username",
					Aliases: []string{"u"},
					Usage:   "Print a username:hash fallback account entry",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Password to hash (read from stdin when omitted)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				hasher, err := container.PasswordHasher()
				if err != nil {
					return err
				}

				return commands.RunHashPassword(
					hasher,
					commands.DefaultIO(),
					cmd.String("username"),
					cmd.String("password"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "create-user",
			Usage: "Register a member account directly in the credential store",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Unique username",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Unique email address",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Account password (read from stdin when omitted)",
				},
				&cli.StringFlag{
					Name:  "first-name",
					Usage: "First name",
				},
				&cli.StringFlag{
					Name:  "last-name",
					Usage: "Last name",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateUser(
					ctx,
					userUseCase,
					container.Logger(),
					commands.DefaultIO(),
					commands.CreateUserOptions{
						Username:  cmd.String("username"),
						Email:     cmd.String("email"),
						Password:  cmd.String("password"),
						FirstName: cmd.String("first-name"),
						LastName:  cmd.String("last-name"),
						Format:    cmd.String("format"),
					},
				)
			},
		},
	}
}
