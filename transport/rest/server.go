package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/config"
)

// NewRouter mounts the browser client, the probes and the websocket route.
func NewRouter(logger *slog.Logger, wsPath string, ws http.Handler, lobbies lobbyCounter) *http.ServeMux {
	logger = logger.With("component", "rest")

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", templ.Handler(indexPage(wsPath)))
	mux.HandleFunc("GET /ping", pingHandler)
	mux.HandleFunc("GET /healthz", healthHandler(logger, lobbies))
	mux.Handle("GET "+wsPath, ws)

	return mux
}

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

func NewServer(logger *slog.Logger, conf config.HTTP, handler http.Handler) *Server {
	return &Server{
		logger: logger.With("component", "http-server"),
		srv: &http.Server{
			Addr:         conf.Addr(),
			Handler:      handler,
			ReadTimeout:  conf.ReadTimeout,
			WriteTimeout: conf.WriteTimeout,
			IdleTimeout:  conf.IdleTimeout,
		},
	}
}

// Start blocks until the server fails or is shut down.
func (that *Server) Start() error {
	that.logger.Info("Starting HTTP server", "addr", that.srv.Addr)

	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// RegisterOnShutdown runs f when Shutdown is called. Hijacked websocket
// connections are not closed by Shutdown itself.
func (that *Server) RegisterOnShutdown(f func()) {
	that.srv.RegisterOnShutdown(f)
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
