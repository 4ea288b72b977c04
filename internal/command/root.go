// Package command contains the CLI command constructors.
package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hongminglow/catalog-be/internal/config"
	"github.com/hongminglow/catalog-be/internal/logging"
)

type envKey struct{}

// env is the configuration and logger shared by every sub-command.
type env struct {
	cfg config.Config
	log zerolog.Logger
}

func envFrom(ctx context.Context) env {
	e, _ := ctx.Value(envKey{}).(env)
	return e
}

// Root instantiates the root command, with all sub-commands bound. Running it
// without a sub-command serves HTTP.
func Root() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:          "catalog-be [command] [flags]",
		Short:        "Catalog backend with JWT authentication",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cmd.OutOrStdout()})
			log.Debug().Str("storage", cfg.StorageDriver).Str("api_prefix", cfg.APIPrefix).Msg("configuration loaded")
			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, env{cfg: cfg, log: log}))
			return nil
		},
		RunE: runServe,
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	cmd.AddCommand(
		serveCommand(),
		migrateCommand(),
	)
	return cmd
}
