package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hongminglow/catalog-be/internal/config"
	"github.com/hongminglow/catalog-be/internal/storage/postgres"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "apply, roll back, or inspect database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFrom(cmd.Context())
			if e.cfg.StorageDriver != config.DriverPostgres {
				return errors.New("migrations require STORAGE_DRIVER=postgres")
			}
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			store, err := postgres.NewStore(cmd.Context(), e.cfg.DatabaseURL, e.log)
			if err != nil {
				return fmt.Errorf("init database: %w", err)
			}
			defer store.Close()
			return store.Migrate(cmd.Context(), direction)
		},
	}
}
