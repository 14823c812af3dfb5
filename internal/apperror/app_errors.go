package apperror

import "errors"

var (
	ErrLobbyNotFound  = errors.New("lobby not found")
	ErrLobbyFull      = errors.New("lobby is already full")
	ErrAlreadyInLobby = errors.New("player is already in this lobby")

	ErrIllegalMove    = errors.New("illegal move")
	ErrCellOutOfRange = errors.New("cell index is out of range")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrRoundFinished  = errors.New("round is already finished")

	ErrInvalidPayload = errors.New("invalid message payload")
	ErrUnknownAction  = errors.New("unknown message action")
)
