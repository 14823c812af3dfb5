package application_test

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-lobby/testing/suite"
)

type gameStart struct {
	LobbyCode     string            `json:"lobbyCode"`
	Players       map[string]string `json:"players"`
	Board         []string          `json:"board"`
	CurrentPlayer string            `json:"currentPlayer"`
}

type state struct {
	Board         []string `json:"board"`
	CurrentPlayer string   `json:"currentPlayer"`
	IsActive      bool     `json:"isActive"`
	Winner        *string  `json:"winner"`
	WinningLine   []int    `json:"winningLine"`
}

type move struct {
	LobbyCode string `json:"lobbyCode"`
	Index     int    `json:"index"`
}

// startGame opens a lobby with host and seats guest, consuming the setup events.
func startGame(t *testing.T, host, guest *suite.Client) string {
	t.Helper()

	var code string
	host.Send("createLobby", nil)
	host.Expect("lobbyCreated", &code)
	require.Regexp(t, `^[A-Z0-9]{6}$`, code)

	guest.Send("joinLobby", code)

	var hostView, guestView gameStart
	host.Expect("gameStart", &hostView)
	guest.Expect("gameStart", &guestView)
	require.Equal(t, hostView, guestView)

	return code
}

func TestLobbyFlow(t *testing.T) {
	t.Run("Two players meet and play to a win", func(t *testing.T) {
		// Given: two connected players
		ctx, s := suite.New(t)
		host := s.Dial(ctx)
		guest := s.Dial(ctx)

		// When: the host creates a lobby and the guest joins it
		var code string
		host.Send("createLobby", nil)
		host.Expect("lobbyCreated", &code)
		guest.Send("joinLobby", code)

		// Then: both see the same start with host as X and guest as O
		var start gameStart
		host.Expect("gameStart", &start)
		guest.Expect("gameStart", nil)
		assert.Equal(t, code, start.LobbyCode)
		assert.Equal(t, map[string]string{host.ID: "X", guest.ID: "O"}, start.Players)
		assert.Equal(t, make([]string, 9), start.Board)
		assert.Equal(t, "X", start.CurrentPlayer)

		// When: X takes the top row while O plays the middle
		players := []*suite.Client{host, guest}
		var last state
		for i, cell := range []int{0, 4, 1, 3, 2} {
			players[i%2].Send("makeMove", move{LobbyCode: code, Index: cell})
			host.Expect("updateState", &last)
			guest.Expect("updateState", nil)
		}

		// Then: the final update names X and the winning line
		require.NotNil(t, last.Winner)
		assert.Equal(t, "X", *last.Winner)
		assert.Equal(t, []int{0, 1, 2}, last.WinningLine)
		assert.False(t, last.IsActive)

		// When: anyone restarts
		guest.Send("restartGame", code)

		// Then: both get a fresh board followed by restart
		var fresh state
		host.Expect("updateState", &fresh)
		host.Expect("restart", nil)
		guest.Expect("updateState", nil)
		guest.Expect("restart", nil)
		assert.Equal(t, make([]string, 9), fresh.Board)
		assert.True(t, fresh.IsActive)
		assert.Nil(t, fresh.Winner)
	})

	t.Run("Join codes are matched case-insensitively", func(t *testing.T) {
		ctx, s := suite.New(t)
		host := s.Dial(ctx)
		guest := s.Dial(ctx)

		var code string
		host.Send("createLobby", nil)
		host.Expect("lobbyCreated", &code)

		guest.Send("joinLobby", "  "+strings.ToLower(code)+" ")

		host.Expect("gameStart", nil)
		guest.Expect("gameStart", nil)
	})

	t.Run("Unknown code and full lobby are reported to the joiner", func(t *testing.T) {
		ctx, s := suite.New(t)
		host := s.Dial(ctx)
		guest := s.Dial(ctx)
		late := s.Dial(ctx)
		code := startGame(t, host, guest)

		var message string
		late.Send("joinLobby", "ZZZZZZ")
		late.Expect("error", &message)
		assert.Equal(t, "Lobby not found!", message)

		late.Send("joinLobby", code)
		late.Expect("error", &message)
		assert.Equal(t, "This lobby is already full!", message)
	})

	t.Run("Illegal moves are ignored without a reply", func(t *testing.T) {
		// Given: a started game
		ctx, s := suite.New(t)
		host := s.Dial(ctx)
		guest := s.Dial(ctx)
		code := startGame(t, host, guest)

		// When: O moves out of turn, junk arrives, then X plays a legal move
		guest.Send("makeMove", move{LobbyCode: code, Index: 0})
		guest.SendRaw("{broken")
		host.Send("makeMove", move{LobbyCode: code, Index: 9})
		host.Send("makeMove", move{LobbyCode: code, Index: 8})

		// Then: the very next event is the legal update
		var update state
		guest.Expect("updateState", &update)
		assert.Equal(t, "X", update.Board[8])
		assert.Empty(t, update.Board[0])
		assert.Equal(t, "O", update.CurrentPlayer)
	})

	t.Run("Disconnect tells the opponent and frees the seat", func(t *testing.T) {
		// Given: a started game
		ctx, s := suite.New(t)
		host := s.Dial(ctx)
		guest := s.Dial(ctx)
		code := startGame(t, host, guest)

		// When: the guest drops
		guest.Close()

		// Then: the host is told and a newcomer can take the seat
		host.Expect("opponentLeft", nil)

		newcomer := s.Dial(ctx)
		newcomer.Send("joinLobby", code)

		var start gameStart
		newcomer.Expect("gameStart", &start)
		host.Expect("gameStart", nil)
		assert.Equal(t, map[string]string{host.ID: "X", newcomer.ID: "O"}, start.Players)
	})
}

func TestProbes(t *testing.T) {
	ctx, s := suite.New(t)
	host := s.Dial(ctx)
	host.Send("createLobby", nil)
	host.Expect("lobbyCreated", nil)

	t.Run("Ping answers pong", func(t *testing.T) {
		resp, err := http.Get(s.Server.URL + "/ping")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "pong", string(body))
	})

	t.Run("Health counts live lobbies", func(t *testing.T) {
		resp, err := http.Get(s.Server.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()

		var health struct {
			Status  string `json:"status"`
			Lobbies int    `json:"lobbies"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
		assert.Equal(t, "ok", health.Status)
		assert.Equal(t, 1, health.Lobbies)
	})
}
