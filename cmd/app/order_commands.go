package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/storefront/cmd/app/commands"
	"github.com/allisson/storefront/internal/app"
	"github.com/allisson/storefront/internal/config"
	orderUseCase "github.com/allisson/storefront/internal/order/usecase"
)

// withOrderUseCase builds a container, hands its order use case to run and shuts it down.
func withOrderUseCase(
	ctx context.Context,
	run func(uc orderUseCase.OrderUseCase, container *app.Container) error,
) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	uc, err := container.OrderUseCase()
	if err != nil {
		return err
	}
	return run(uc, container)
}

// orderIDArg returns the first positional argument.
func orderIDArg(cmd *cli.Command) (string, error) {
	id := cmd.Args().First()
	if id == "" {
		return "", fmt.Errorf("order id is required")
	}
	return id, nil
}

func getOrderCommands() *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "Inspect orders and move them through their status machine",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List orders",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "offset",
						Value: 0,
						Usage: "Number of orders to skip",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"l"},
						Value:   50,
						Usage:   "Maximum number of orders to return (1-100)",
					},
					&cli.StringFlag{
						Name:    "status",
						Aliases: []string{"s"},
						Usage:   "Only list orders in this status",
					},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withOrderUseCase(ctx, func(uc orderUseCase.OrderUseCase, container *app.Container) error {
						return commands.RunListOrders(
							ctx,
							uc,
							container.Logger(),
							commands.DefaultIO().Writer,
							int(cmd.Int("offset")),
							int(cmd.Int("limit")),
							cmd.String("status"),
							cmd.String("format"),
						)
					})
				},
			},
			{
				Name:      "get",
				Usage:     "Show one order",
				ArgsUsage: "<order-id>",
				Flags:     []cli.Flag{formatFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := orderIDArg(cmd)
					if err != nil {
						return err
					}
					return withOrderUseCase(ctx, func(uc orderUseCase.OrderUseCase, container *app.Container) error {
						return commands.RunGetOrder(
							ctx, uc, container.Logger(), commands.DefaultIO().Writer, id, cmd.String("format"),
						)
					})
				},
			},
			{
				Name:      "transitions",
				Usage:     "Show the statuses an order may move to",
				ArgsUsage: "<order-id>",
				Flags:     []cli.Flag{formatFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := orderIDArg(cmd)
					if err != nil {
						return err
					}
					return withOrderUseCase(ctx, func(uc orderUseCase.OrderUseCase, container *app.Container) error {
						return commands.RunOrderTransitions(
							ctx, uc, container.Logger(), commands.DefaultIO().Writer, id, cmd.String("format"),
						)
					})
				},
			},
			{
				Name:      "set-status",
				Usage:     "Move an order to a new status",
				ArgsUsage: "<order-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "status",
						Aliases:  []string{"s"},
						Required: true,
						Usage:    "Target status (PENDING, CONFIRMED, SHIPPING, COMPLETED, CANCELLED)",
					},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := orderIDArg(cmd)
					if err != nil {
						return err
					}
					return withOrderUseCase(ctx, func(uc orderUseCase.OrderUseCase, container *app.Container) error {
						return commands.RunSetOrderStatus(
							ctx,
							uc,
							container.Logger(),
							commands.DefaultIO().Writer,
							id,
							cmd.String("status"),
							cmd.String("format"),
						)
					})
				},
			},
		},
	}
}
