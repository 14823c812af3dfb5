package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/pkg"
)

type lobbyManager interface {
	CreateLobby(handle string) string
	JoinLobby(handle, code string) error
	MakeMove(handle, code string, cell int) error
	RestartGame(code string) error
	Disconnect(handle string)
}

// Options tune a single connection.
type Options struct {
	MaxMessageSize int64
	WriteWait      time.Duration
	PongWait       time.Duration
	MaxPending     int
	// CheckOrigin enforces a same-origin handshake when true.
	CheckOrigin bool
}

func (that Options) pingPeriod() time.Duration {
	return that.PongWait * 9 / 10
}

type Server struct {
	logger   *slog.Logger
	manager  lobbyManager
	hub      *Hub
	upgrader websocket.Upgrader
	opts     Options

	handlers map[string]func(handle string, message *Message) error
}

func New(logger *slog.Logger, manager lobbyManager, hub *Hub, opts Options) *Server {
	server := &Server{
		logger:  logger.With("component", "ws-server"),
		manager: manager,
		hub:     hub,
		opts:    opts,

		handlers: make(map[string]func(string, *Message) error),
	}

	if !opts.CheckOrigin {
		server.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}

	server.handlers[actionCreateLobby] = server.handleCreateLobby
	server.handlers[actionJoinLobby] = server.handleJoinLobby
	server.handlers[actionMakeMove] = server.handleMakeMove
	server.handlers[actionRestartGame] = server.handleRestartGame

	return server
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Warn("failed to upgrade connection", "error", err)
		return
	}

	handle := pkg.GenerateConnectionID()
	c := newClient(that.logger, handle, conn, that.opts)

	that.hub.register(c)
	c.enqueue(entity.Event{Action: entity.EventConnected, Payload: entity.ConnectedPayload{ID: handle}})

	log.Info("WebSocket connection established", "playerID", handle)

	go c.writePump()

	c.readPump(func(data []byte) {
		that.handleMessage(handle, data)
	})

	that.hub.unregister(handle)
	that.manager.Disconnect(handle)
	c.close()

	log.Info("WebSocket connection closed", "playerID", handle)
}

// handleMessage - processes one message from the client. Bad input is logged and dropped.
func (that *Server) handleMessage(handle string, data []byte) {
	log := that.logger.With("method", "handleMessage", "playerID", handle)

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		log.Debug("failed to unmarshal message", "error", err)
		return
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Debug("error processing message", "action", message.Action, "error", apperror.ErrUnknownAction)
		return
	}

	if err := handler(handle, &message); err != nil {
		log.Debug("message rejected", "action", message.Action, "error", err)
	}
}

func decodePayload(message *Message, dst any) error {
	if len(message.Payload) == 0 {
		return fmt.Errorf("%s: %w", message.Action, apperror.ErrInvalidPayload)
	}

	if err := json.Unmarshal(message.Payload, dst); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	return nil
}
