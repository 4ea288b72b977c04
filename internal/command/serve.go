package command

import (
	"context"
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hongminglow/catalog-be/internal/auth"
	"github.com/hongminglow/catalog-be/internal/config"
	"github.com/hongminglow/catalog-be/internal/server"
	"github.com/hongminglow/catalog-be/internal/storage"
	"github.com/hongminglow/catalog-be/internal/storage/memory"
	"github.com/hongminglow/catalog-be/internal/storage/postgres"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	e := envFrom(cmd.Context())
	if err := e.cfg.RequireSigningKey(); err != nil {
		return err
	}
	tokens, err := auth.NewTokenManager(e.cfg.TokenConfig())
	if err != nil {
		return fmt.Errorf("init token manager: %w", err)
	}

	store, err := openStore(cmd.Context(), e)
	if err != nil {
		return err
	}
	defer store.Close()

	srv, err := server.New(e.cfg, store, tokens, auth.NewBcryptHasher(e.cfg.BcryptCost), e.log)
	if err != nil {
		return err
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(cmd.Context(), "tcp", e.cfg.HTTPAddress())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", e.cfg.HTTPAddress(), err)
	}

	grp, ctx := errgroup.WithContext(cmd.Context())
	grp.Go(func() error {
		return srv.Serve(listener)
	})
	grp.Go(func() error {
		<-ctx.Done()
		e.log.Info().Dur("timeout", e.cfg.ShutdownTimeout).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return grp.Wait()
}

// openStore opens the configured storage driver and, for Postgres, applies
// pending migrations when AUTO_MIGRATE is set.
func openStore(ctx context.Context, e env) (storage.Store, error) {
	switch e.cfg.StorageDriver {
	case config.DriverMemory:
		e.log.Warn().Msg("using in-memory storage; data is lost on exit")
		return memory.NewStore(), nil
	default:
		store, err := postgres.NewStore(ctx, e.cfg.DatabaseURL, e.log)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		if e.cfg.AutoMigrate {
			if err := store.Migrate(ctx, "up"); err != nil {
				store.Close()
				return nil, err
			}
		}
		return store, nil
	}
}
