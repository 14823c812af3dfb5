package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
)

const (
	StatusWaiting = "waiting"
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDrawn   = "drawn"

	MaxLobbySeats = 2
)

// Lobby is one two-seat game session addressed by a shareable code.
type Lobby struct {
	Code          string
	Players       map[string]Mark
	Board         Board
	CurrentPlayer Mark
	IsActive      bool
	Winner        Mark
}

func NewLobby(code, creator string) *Lobby {
	return &Lobby{
		Code:          code,
		Players:       map[string]Mark{creator: PlayerX},
		Board:         Board{},
		CurrentPlayer: PlayerX,
		IsActive:      true,
		Winner:        EmptyCell,
	}
}

func (that *Lobby) IsFull() bool {
	return len(that.Players) >= MaxLobbySeats
}

func (that *Lobby) IsEmpty() bool {
	return len(that.Players) == 0
}

func (that *Lobby) Has(handle string) bool {
	_, ok := that.Players[handle]
	return ok
}

// Join seats the second player. A full lobby is reported as full even to
// one of its own players. The joiner gets O unless the X seat was vacated by
// a disconnect, so the lobby never holds two equal marks.
func (that *Lobby) Join(handle string) (Mark, error) {
	if that.IsFull() {
		return EmptyCell, fmt.Errorf("%w: %d players", apperror.ErrLobbyFull, len(that.Players))
	}

	if that.Has(handle) {
		return EmptyCell, apperror.ErrAlreadyInLobby
	}

	mark := PlayerO
	if !that.seated(PlayerX) {
		mark = PlayerX
	}

	that.Players[handle] = mark

	return mark, nil
}

func (that *Lobby) seated(mark Mark) bool {
	for _, m := range that.Players {
		if m == mark {
			return true
		}
	}

	return false
}

// RemovePlayer frees the seat held by handle and reports whether it was seated.
func (that *Lobby) RemovePlayer(handle string) bool {
	if !that.Has(handle) {
		return false
	}

	delete(that.Players, handle)

	return true
}

// MakeMove places the mover's mark on cell. The returned line is non-nil
// only when the move wins the round. Any rejection wraps ErrIllegalMove and
// leaves the lobby untouched.
func (that *Lobby) MakeMove(handle string, cell int) ([]int, error) {
	if err := that.validateMove(handle, cell); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, err)
	}

	that.Board[cell] = that.CurrentPlayer

	if line, ok := CheckWinner(that.Board); ok {
		that.Winner = that.CurrentPlayer
		that.IsActive = false

		return line[:], nil
	}

	if that.Board.IsFull() {
		that.IsActive = false
		return nil, nil
	}

	that.CurrentPlayer = that.CurrentPlayer.Opponent()

	return nil, nil
}

func (that *Lobby) validateMove(handle string, cell int) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOutOfRange, cell)
	}

	if !that.IsActive {
		return apperror.ErrRoundFinished
	}

	mark, ok := that.Players[handle]
	if !ok || mark != that.CurrentPlayer {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// Restart clears the round whatever state it is in. Seats are kept.
func (that *Lobby) Restart() {
	that.Board = Board{}
	that.CurrentPlayer = PlayerX
	that.IsActive = true
	that.Winner = EmptyCell
}

// Status names the state machine position of the current round.
func (that *Lobby) Status() string {
	switch {
	case that.Winner != EmptyCell:
		return StatusWon
	case !that.IsActive:
		return StatusDrawn
	case len(that.Players) < MaxLobbySeats:
		return StatusWaiting
	default:
		return StatusOngoing
	}
}

// Handles returns the seated handles, X first.
func (that *Lobby) Handles() []string {
	handles := make([]string, 0, len(that.Players))
	for _, mark := range []Mark{PlayerX, PlayerO} {
		for handle, m := range that.Players {
			if m == mark {
				handles = append(handles, handle)
			}
		}
	}

	return handles
}
