package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/tokenvault/cmd/app/commands"
	"github.com/allisson/tokenvault/internal/app"
	"github.com/allisson/tokenvault/internal/config"
	cryptoService "github.com/allisson/tokenvault/internal/crypto/service"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-master-key",
			Usage: "Generate a new master key for tenant key derivation",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "reference",
					Aliases: []string{"r"},
					Value:   "",
					Usage:   "Master key reference (e.g., prod-master-key-2026)",
				},
				&cli.StringFlag{
					Name:    "provider",
					Aliases: []string{"p"},
					Value:   "env",
					Usage:   "Key storage mode: 'env' or 'kms'",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Usage: "KMS key URI used to wrap the key (required with --provider=kms)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateMasterKey(
					ctx,
					cryptoService.NewKMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("reference"),
					cmd.String("provider"),
					cmd.String("kms-key-uri"),
				)
			},
		},
	}
}
