package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/hongminglow/catalog-be/internal/auth"
	"github.com/hongminglow/catalog-be/internal/catalog"
	"github.com/hongminglow/catalog-be/internal/config"
	"github.com/hongminglow/catalog-be/internal/http/handlers"
	"github.com/hongminglow/catalog-be/internal/middleware"
	"github.com/hongminglow/catalog-be/internal/storage"
	"github.com/hongminglow/catalog-be/internal/validation"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
	log   zerolog.Logger
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, tokens *auth.TokenManager, hasher auth.PasswordHasher, log zerolog.Logger) (*Server, error) {
	authService, err := auth.NewService(store, hasher, tokens)
	if err != nil {
		return nil, fmt.Errorf("init auth service: %w", err)
	}
	validate := validation.New(cfg.PhoneRegion)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(authService, validate).Register(mux)
	handlers.NewProfileHandler(store).Register(mux)
	handlers.NewCatalogHandler(catalog.NewService(store), validate).Register(mux)

	var routed http.Handler = middleware.NewGate(tokens, cfg.PublicPaths).Wrap(mux)
	if cfg.APIPrefix != "" {
		routed = http.StripPrefix(cfg.APIPrefix, routed)
	}

	handler := middleware.Chain(routed,
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestLogger(log),
		middleware.Recover,
	)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          newErrorLog(log),
	}

	return &Server{inner: httpServer, log: log}, nil
}

// Handler exposes the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Serve accepts connections on l until the server is shut down. A clean
// shutdown returns nil.
func (s *Server) Serve(l net.Listener) error {
	s.log.Info().Str("address", l.Addr().String()).Msg("http server listening")
	if err := s.inner.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
