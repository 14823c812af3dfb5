package entity

// Outbound event names.
const (
	EventConnected    = "connected"
	EventLobbyCreated = "lobbyCreated"
	EventError        = "error"
	EventGameStart    = "gameStart"
	EventUpdateState  = "updateState"
	EventRestart      = "restart"
	EventOpponentLeft = "opponentLeft"
)

// Event is one message addressed to a single connection.
type Event struct {
	Action  string
	Payload any
}

type ConnectedPayload struct {
	ID string `json:"id"`
}

type GameStartPayload struct {
	LobbyCode     string          `json:"lobbyCode"`
	Players       map[string]Mark `json:"players"`
	Board         Board           `json:"board"`
	CurrentPlayer Mark            `json:"currentPlayer"`
}

type StatePayload struct {
	Board         Board `json:"board"`
	CurrentPlayer Mark  `json:"currentPlayer"`
	IsActive      bool  `json:"isActive"`
	Winner        *Mark `json:"winner"`
	WinningLine   []int `json:"winningLine"`
}

// GameStart snapshots the lobby for the gameStart event.
func (that *Lobby) GameStart() GameStartPayload {
	players := make(map[string]Mark, len(that.Players))
	for handle, mark := range that.Players {
		players[handle] = mark
	}

	return GameStartPayload{
		LobbyCode:     that.Code,
		Players:       players,
		Board:         that.Board,
		CurrentPlayer: that.CurrentPlayer,
	}
}

// State snapshots the round for the updateState event.
func (that *Lobby) State(winningLine []int) StatePayload {
	state := StatePayload{
		Board:         that.Board,
		CurrentPlayer: that.CurrentPlayer,
		IsActive:      that.IsActive,
		WinningLine:   winningLine,
	}

	if that.Winner != EmptyCell {
		winner := that.Winner
		state.Winner = &winner
	}

	return state
}
