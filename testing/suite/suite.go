package suite

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	app "github.com/rocketscienceinc/tictactoe-lobby/internal"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/config"
)

const (
	maxWaitDuration = 30 * time.Second
	readTimeout     = 5 * time.Second
)

// Suite runs one lobby server on a loopback port for a test.
type Suite struct {
	*testing.T
	Logger *slog.Logger
	Config *config.Config

	Server *httptest.Server
}

// Message is a decoded server event.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	conf, err := config.Load("")
	require.NoError(t, err)

	handler := app.NewHandler(logger, conf)
	server := httptest.NewServer(handler)

	t.Cleanup(func() {
		handler.CloseConnections()
		server.Close()
	})

	return ctx, &Suite{
		T:      t,
		Logger: logger,
		Config: conf,
		Server: server,
	}
}

// Client is a websocket player connected to the suite server.
type Client struct {
	t    *testing.T
	conn *websocket.Conn

	// ID is the handle the server announced in the connected event.
	ID string
}

// Dial connects a new player and consumes its connected event.
func (that *Suite) Dial(ctx context.Context) *Client {
	that.Helper()

	url := "ws" + strings.TrimPrefix(that.Server.URL, "http") + that.Config.WebSocket.Path

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	require.NoError(that.T, err)
	_ = resp.Body.Close()

	that.Cleanup(func() { _ = conn.Close() })

	client := &Client{t: that.T, conn: conn}

	var connected struct {
		ID string `json:"id"`
	}
	client.Expect("connected", &connected)
	require.NotEmpty(that.T, connected.ID)
	client.ID = connected.ID

	return client
}

// Send writes one message. A nil payload is left out.
func (that *Client) Send(action string, payload any) {
	that.t.Helper()

	msg := map[string]any{"action": action}
	if payload != nil {
		msg["payload"] = payload
	}

	require.NoError(that.t, that.conn.WriteJSON(msg))
}

// SendRaw writes data as a text frame untouched.
func (that *Client) SendRaw(data string) {
	that.t.Helper()

	require.NoError(that.t, that.conn.WriteMessage(websocket.TextMessage, []byte(data)))
}

// Read returns the next event.
func (that *Client) Read() Message {
	that.t.Helper()

	require.NoError(that.t, that.conn.SetReadDeadline(time.Now().Add(readTimeout)))

	var msg Message
	require.NoError(that.t, that.conn.ReadJSON(&msg))

	return msg
}

// Expect reads the next event, requires its action and decodes the payload
// into dst when dst is not nil.
func (that *Client) Expect(action string, dst any) {
	that.t.Helper()

	msg := that.Read()
	require.Equal(that.t, action, msg.Action, "payload: %s", msg.Payload)

	if dst != nil {
		require.NoError(that.t, json.Unmarshal(msg.Payload, dst))
	}
}

// Close drops the connection without a close handshake.
func (that *Client) Close() {
	_ = that.conn.Close()
}
