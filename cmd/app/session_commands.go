package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/storefront/cmd/app/commands"
	"github.com/allisson/storefront/internal/app"
	"github.com/allisson/storefront/internal/config"
)

func getSessionCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "login",
			Usage: "Log in and store the session",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Account email",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Account password (omit to be prompted)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				authUseCase, err := container.AuthUseCase()
				if err != nil {
					return err
				}

				return commands.RunLogin(
					ctx,
					authUseCase,
					container.Logger(),
					cmd.String("email"),
					cmd.String("password"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "register",
			Usage: "Create an account and store the session",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Display name",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Account email",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Account password (omit to be prompted)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				authUseCase, err := container.AuthUseCase()
				if err != nil {
					return err
				}

				return commands.RunRegister(
					ctx,
					authUseCase,
					container.Logger(),
					cmd.String("name"),
					cmd.String("email"),
					cmd.String("password"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "logout",
			Usage: "Forget the stored session",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				authUseCase, err := container.AuthUseCase()
				if err != nil {
					return err
				}

				return commands.RunLogout(
					ctx,
					authUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "session",
			Usage: "Show whether a session is stored",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				authUseCase, err := container.AuthUseCase()
				if err != nil {
					return err
				}

				return commands.RunSession(
					ctx,
					authUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
