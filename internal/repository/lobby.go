package repository

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

type codeGenerator interface {
	Generate() string
}

// LobbyRegistry is the in-memory owner of every live lobby.
// It is not safe for concurrent use; the lobby manager serialises access.
type LobbyRegistry struct {
	generator codeGenerator
	lobbies   map[string]*entity.Lobby
}

func NewLobbyRegistry(generator codeGenerator) *LobbyRegistry {
	return &LobbyRegistry{
		generator: generator,
		lobbies:   make(map[string]*entity.Lobby),
	}
}

// GenerateCode draws codes until one is not held by a live lobby.
func (that *LobbyRegistry) GenerateCode() string {
	for {
		code := that.generator.Generate()
		if _, taken := that.lobbies[code]; !taken {
			return code
		}
	}
}

// Create registers a new lobby with creator seated as X.
func (that *LobbyRegistry) Create(creator string) *entity.Lobby {
	lobby := entity.NewLobby(that.GenerateCode(), creator)
	that.lobbies[lobby.Code] = lobby

	return lobby
}

func (that *LobbyRegistry) Get(code string) (*entity.Lobby, error) {
	lobby, ok := that.lobbies[code]
	if !ok {
		return nil, fmt.Errorf("%w: code %s", apperror.ErrLobbyNotFound, code)
	}

	return lobby, nil
}

// RemoveIfEmpty deletes the lobby once nobody is seated and reports whether it did.
func (that *LobbyRegistry) RemoveIfEmpty(code string) bool {
	lobby, ok := that.lobbies[code]
	if !ok || !lobby.IsEmpty() {
		return false
	}

	delete(that.lobbies, code)

	return true
}

// RemovePlayer unseats handle from the lobby it sits in and returns that lobby's code.
func (that *LobbyRegistry) RemovePlayer(handle string) (string, bool) {
	for code, lobby := range that.lobbies {
		if lobby.RemovePlayer(handle) {
			return code, true
		}
	}

	return "", false
}

func (that *LobbyRegistry) Len() int {
	return len(that.lobbies)
}
