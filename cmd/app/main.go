package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/wunjo/internal"
	pkgconfig "github.com/starford/wunjo/pkg/config"
)

func runMode(mode string) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		configPath := cmd.String("config")

		cfg := internal.NewDefaultConfig()
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}

		opts := []internal.Option{
			internal.WithConfig(cfg),
			internal.WithMode(mode),
		}

		if err := internal.Run(ctx, opts...); err != nil {
			return fmt.Errorf("app run error: %w", err)
		}

		return nil
	}
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:  "wunjo",
		Usage: "Sync a Markdown vault of games, scenarios, events and day plans to Postgres and object storage",
		Commands: []*cli.Command{
			{
				Name:   "sync",
				Usage:  "Run one synchronization pass and exit",
				Action: runMode(internal.ModeSync),
				Flags:  []cli.Flag{configFlag},
			},
			{
				Name:   "watch",
				Usage:  "Sync continuously as vault files change",
				Action: runMode(internal.ModeWatch),
				Flags:  []cli.Flag{configFlag},
			},
			{
				Name:   "serve",
				Usage:  "Watch the vault and serve the synced tables over HTTP",
				Action: runMode(internal.ModeServe),
				Flags:  []cli.Flag{configFlag},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
