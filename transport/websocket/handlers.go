package websocket

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
)

func (that *Server) handleCreateLobby(handle string, _ *Message) error {
	that.manager.CreateLobby(handle)

	return nil
}

func (that *Server) handleJoinLobby(handle string, msg *Message) error {
	var code string
	if err := decodePayload(msg, &code); err != nil {
		return err
	}

	if err := that.manager.JoinLobby(handle, normalizeCode(code)); err != nil {
		return fmt.Errorf("failed to join lobby: %w", err)
	}

	return nil
}

func (that *Server) handleMakeMove(handle string, msg *Message) error {
	var move MovePayload
	if err := decodePayload(msg, &move); err != nil {
		return err
	}

	if move.Index == nil {
		return fmt.Errorf("missing index: %w", apperror.ErrInvalidPayload)
	}

	if err := that.manager.MakeMove(handle, normalizeCode(move.LobbyCode), *move.Index); err != nil {
		return fmt.Errorf("failed to make move: %w", err)
	}

	return nil
}

func (that *Server) handleRestartGame(_ string, msg *Message) error {
	var code string
	if err := decodePayload(msg, &code); err != nil {
		return err
	}

	if err := that.manager.RestartGame(normalizeCode(code)); err != nil {
		return fmt.Errorf("failed to restart game: %w", err)
	}

	return nil
}
