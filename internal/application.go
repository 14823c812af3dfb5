package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/config"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/repository"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-lobby/transport/rest"
	"github.com/rocketscienceinc/tictactoe-lobby/transport/websocket"
)

// Handler is the whole HTTP surface of the lobby server.
type Handler struct {
	http.Handler

	hub *websocket.Hub
}

// NewHandler wires the lobby registry, the manager and both transports.
func NewHandler(logger *slog.Logger, conf *config.Config) *Handler {
	registry := repository.NewLobbyRegistry(pkg.NewLobbyCodeGenerator())
	hub := websocket.NewHub(logger)
	lobbyManager := usecase.NewLobbyManager(logger, registry, hub)

	wsServer := websocket.New(logger, lobbyManager, hub, websocket.Options{
		MaxMessageSize: conf.WebSocket.MaxMessageSize,
		WriteWait:      conf.WebSocket.WriteWait,
		PongWait:       conf.WebSocket.PongWait,
		MaxPending:     conf.WebSocket.MaxPending,
		CheckOrigin:    conf.WebSocket.CheckOrigin,
	})

	return &Handler{
		Handler: rest.NewRouter(logger, conf.WebSocket.Path, wsServer, lobbyManager),
		hub:     hub,
	}
}

// CloseConnections closes every open websocket.
func (that *Handler) CloseConnections() {
	that.hub.CloseAll()
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	handler := NewHandler(logger, conf)

	server := rest.NewServer(logger, conf.HTTP, handler)
	server.RegisterOnShutdown(handler.CloseConnections)

	httpErrCh := make(chan error, 1)
	go func() {
		if httpErr := server.Start(); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), conf.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}
