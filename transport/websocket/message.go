package websocket

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

// Inbound actions.
const (
	actionCreateLobby = "createLobby"
	actionJoinLobby   = "joinLobby"
	actionMakeMove    = "makeMove"
	actionRestartGame = "restartGame"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type MovePayload struct {
	LobbyCode string `json:"lobbyCode"`
	Index     *int   `json:"index"`
}

func newMessage(event entity.Event) (*Message, error) {
	msg := &Message{Action: event.Action}

	if event.Payload == nil {
		return msg, nil
	}

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", event.Action, err)
	}

	msg.Payload = payload

	return msg, nil
}

// normalizeCode turns what a person typed into a registry key.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
