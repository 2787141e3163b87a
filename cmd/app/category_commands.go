package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/familyvault/cmd/app/commands"
	"github.com/allisson/familyvault/internal/app"
	"github.com/allisson/familyvault/internal/config"
)

func getCategoryCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "seed-categories",
			Usage: "Insert the system category set, skipping names that already exist",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				seeder, err := container.CategorySeeder()
				if err != nil {
					return err
				}

				return commands.RunSeedCategories(
					ctx,
					seeder,
					container.Logger(),
					commands.DefaultIO().Writer,
				)
			},
		},
	}
}
