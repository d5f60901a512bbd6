package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/tokenvault/cmd/app/commands"
	"github.com/allisson/tokenvault/internal/app"
	"github.com/allisson/tokenvault/internal/config"
)

func getTenantCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-tenant",
			Usage: "Register a new tenant and print its API credential",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Tenant identifier (immutable, e.g., acme-corp)",
				},
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable tenant name",
				},
				&cli.BoolFlag{
					Name:  "admin",
					Value: false,
					Usage: "Grant the tenant admin access to the management API",
				},
				&cli.StringFlag{
					Name:    "algorithm",
					Aliases: []string{"alg"},
					Usage:   "AEAD algorithm: aes-gcm or chacha20-poly1305 (omit for default)",
				},
				&cli.StringFlag{
					Name:  "rotation-policy",
					Usage: "Key rotation policy (e.g., 90d, none; omit for default)",
				},
				&cli.StringFlag{
					Name:  "master-key-reference",
					Usage: "Master key reference from MASTER_KEYS (omit for default)",
				},
				&cli.StringFlag{
					Name:    "compliance",
					Aliases: []string{"c"},
					Usage:   `JSON compliance defaults (e.g., '{"pci_scope":true}')`,
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

				tenantUseCase, err := container.TenantUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateTenant(
					ctx,
					tenantUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.String("name"),
					cmd.Bool("admin"),
					cmd.String("algorithm"),
					cmd.String("rotation-policy"),
					cmd.String("master-key-reference"),
					cmd.String("compliance"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "update-tenant",
			Usage: "Update a tenant's name, encryption settings, or compliance defaults, or rotate its credential",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Tenant identifier",
				},
				&cli.StringFlag{
					Name:    "name",
					Aliases: []string{"n"},
					Usage:   "New tenant name (omit to keep current)",
				},
				&cli.StringFlag{
					Name:    "algorithm",
					Aliases: []string{"alg"},
					Usage:   "New AEAD algorithm for future tokens (omit to keep current)",
				},
				&cli.StringFlag{
					Name:  "rotation-policy",
					Usage: "New key rotation policy (omit to keep current)",
				},
				&cli.StringFlag{
					Name:    "compliance",
					Aliases: []string{"c"},
					Usage:   "New JSON compliance defaults (omit to keep current)",
				},
				&cli.BoolFlag{
					Name:  "rotate-credential",
					Value: false,
					Usage: "Replace the tenant's API credential and print the new one once",
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

				tenantUseCase, err := container.TenantUseCase()
				if err != nil {
					return err
				}

				return commands.RunUpdateTenant(
					ctx,
					tenantUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.String("name"),
					cmd.String("algorithm"),
					cmd.String("rotation-policy"),
					cmd.String("compliance"),
					cmd.Bool("rotate-credential"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "deactivate-tenant",
			Usage: "Soft delete a tenant, preserving its records and audit history",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Tenant identifier",
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

				tenantUseCase, err := container.TenantUseCase()
				if err != nil {
					return err
				}

				return commands.RunDeactivateTenant(
					ctx,
					tenantUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "list-tenants",
			Usage: "List active tenants ordered by ID",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "offset",
					Value: 0,
					Usage: "Number of tenants to skip",
				},
				&cli.IntFlag{
					Name:  "limit",
					Value: 50,
					Usage: "Maximum number of tenants to return",
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

				tenantUseCase, err := container.TenantUseCase()
				if err != nil {
					return err
				}

				return commands.RunListTenants(
					ctx,
					tenantUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("offset")),
					int(cmd.Int("limit")),
					cmd.String("format"),
				)
			},
		},
	}
}
