package usecase

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

const (
	msgLobbyNotFound = "Lobby not found!"
	msgLobbyFull     = "This lobby is already full!"
)

type lobbyRegistry interface {
	Create(creator string) *entity.Lobby
	Get(code string) (*entity.Lobby, error)
	RemoveIfEmpty(code string) bool
	RemovePlayer(handle string) (string, bool)
	Len() int
}

type notifier interface {
	Send(handle string, event entity.Event)
}

// LobbyManager applies inbound lobby events one at a time and emits the
// resulting outbound events. Every method holds the same lock, so the
// registry and all lobbies only ever see one event handler at a time.
type LobbyManager struct {
	logger *slog.Logger

	mu       sync.Mutex
	registry lobbyRegistry
	notifier notifier
}

func NewLobbyManager(logger *slog.Logger, registry lobbyRegistry, notifier notifier) *LobbyManager {
	return &LobbyManager{
		logger:   logger.With("component", "lobby-manager"),
		registry: registry,
		notifier: notifier,
	}
}

// CreateLobby opens a new lobby with handle seated as X and returns its code.
func (that *LobbyManager) CreateLobby(handle string) string {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.leaveCurrentLobby(handle)

	lobby := that.registry.Create(handle)
	that.notifier.Send(handle, entity.Event{Action: entity.EventLobbyCreated, Payload: lobby.Code})

	that.logger.Info("lobby created", "lobbyCode", lobby.Code, "playerID", handle)

	return lobby.Code
}

// JoinLobby seats handle in the lobby with the given code and starts the game.
func (that *LobbyManager) JoinLobby(handle, code string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "JoinLobby", "lobbyCode", code, "playerID", handle)

	lobby, err := that.registry.Get(code)
	if err != nil {
		that.sendError(handle, msgLobbyNotFound)
		return fmt.Errorf("failed to join lobby: %w", err)
	}

	if lobby.IsFull() {
		that.sendError(handle, msgLobbyFull)
		return fmt.Errorf("failed to join lobby %s: %w", code, apperror.ErrLobbyFull)
	}

	if lobby.Has(handle) {
		log.Debug("player is already seated in lobby")
		return apperror.ErrAlreadyInLobby
	}

	that.leaveCurrentLobby(handle)

	mark, err := lobby.Join(handle)
	if err != nil {
		return fmt.Errorf("failed to join lobby %s: %w", code, err)
	}

	that.broadcast(lobby, entity.Event{Action: entity.EventGameStart, Payload: lobby.GameStart()})

	log.Info("player joined lobby", "mark", mark)

	return nil
}

// MakeMove applies a move and broadcasts the new round state. Illegal moves
// are returned for logging only; nobody is notified about them.
func (that *LobbyManager) MakeMove(handle, code string, cell int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	lobby, err := that.registry.Get(code)
	if err != nil {
		return fmt.Errorf("failed to make move: %w", err)
	}

	winningLine, err := lobby.MakeMove(handle, cell)
	if err != nil {
		return fmt.Errorf("failed to make move in lobby %s: %w", code, err)
	}

	that.broadcast(lobby, entity.Event{Action: entity.EventUpdateState, Payload: lobby.State(winningLine)})

	if !lobby.IsActive {
		that.logger.Info("round finished", "lobbyCode", code, "status", lobby.Status(), "winner", lobby.Winner)
	}

	return nil
}

// RestartGame starts a fresh round in the lobby whatever state it is in.
func (that *LobbyManager) RestartGame(code string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	lobby, err := that.registry.Get(code)
	if err != nil {
		return fmt.Errorf("failed to restart game: %w", err)
	}

	lobby.Restart()

	that.broadcast(lobby, entity.Event{Action: entity.EventUpdateState, Payload: lobby.State(nil)})
	that.broadcast(lobby, entity.Event{Action: entity.EventRestart})

	that.logger.Info("game restarted", "lobbyCode", code)

	return nil
}

// Disconnect releases the seat of a closed connection.
func (that *LobbyManager) Disconnect(handle string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.leaveCurrentLobby(handle)
}

// LobbyCount returns the number of live lobbies.
func (that *LobbyManager) LobbyCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.registry.Len()
}

// leaveCurrentLobby unseats handle, destroys the lobby if it is now empty
// and tells the remaining player otherwise. Callers hold the lock.
func (that *LobbyManager) leaveCurrentLobby(handle string) {
	log := that.logger.With("method", "leaveCurrentLobby", "playerID", handle)

	code, ok := that.registry.RemovePlayer(handle)
	if !ok {
		return
	}

	if that.registry.RemoveIfEmpty(code) {
		log.Info("lobby closed because it is empty", "lobbyCode", code)
		return
	}

	lobby, err := that.registry.Get(code)
	if err != nil {
		log.Error("failed to find lobby after player left", "lobbyCode", code, "error", err)
		return
	}

	that.broadcast(lobby, entity.Event{Action: entity.EventOpponentLeft})

	log.Info("player left lobby", "lobbyCode", code)
}

func (that *LobbyManager) broadcast(lobby *entity.Lobby, event entity.Event) {
	for _, handle := range lobby.Handles() {
		that.notifier.Send(handle, event)
	}
}

func (that *LobbyManager) sendError(handle, message string) {
	that.notifier.Send(handle, entity.Event{Action: entity.EventError, Payload: message})
}
