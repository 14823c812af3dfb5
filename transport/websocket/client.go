package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/eapache/queue"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

// client is one browser connection. Events are queued by enqueue and written
// by writePump, so producers never wait on the network.
type client struct {
	id     string
	conn   *websocket.Conn
	logger *slog.Logger
	opts   Options

	mu      sync.Mutex
	pending *queue.Queue
	closed  bool

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(logger *slog.Logger, id string, conn *websocket.Conn, opts Options) *client {
	return &client{
		id:      id,
		conn:    conn,
		logger:  logger.With("component", "ws-client", "playerID", id),
		opts:    opts,
		pending: queue.New(),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// enqueue reports false when the event was dropped. A client that falls
// more than MaxPending events behind is closed.
func (that *client) enqueue(event entity.Event) bool {
	that.mu.Lock()

	if that.closed {
		that.mu.Unlock()
		return false
	}

	if that.pending.Length() >= that.opts.MaxPending {
		that.mu.Unlock()
		that.logger.Warn("outbound queue overflow, closing connection", "pending", that.opts.MaxPending)
		that.close()

		return false
	}

	that.pending.Add(event)
	that.mu.Unlock()

	select {
	case that.wake <- struct{}{}:
	default:
	}

	return true
}

func (that *client) next() (entity.Event, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.pending.Length() == 0 {
		return entity.Event{}, false
	}

	event, _ := that.pending.Remove().(entity.Event)

	return event, true
}

func (that *client) close() {
	that.closeOnce.Do(func() {
		that.mu.Lock()
		that.closed = true
		that.mu.Unlock()

		close(that.done)
	})
}

// writePump owns every write on the connection and closes it on exit.
func (that *client) writePump() {
	log := that.logger.With("method", "writePump")

	ticker := time.NewTicker(that.opts.pingPeriod())
	defer func() {
		ticker.Stop()
		that.close()
		_ = that.conn.Close()
	}()

	for {
		select {
		case <-that.done:
			_ = that.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(that.opts.WriteWait),
			)
			return

		case <-that.wake:
			if err := that.flush(); err != nil {
				log.Warn("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			if err := that.conn.SetWriteDeadline(time.Now().Add(that.opts.WriteWait)); err != nil {
				return
			}

			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}

func (that *client) flush() error {
	for {
		event, ok := that.next()
		if !ok {
			return nil
		}

		msg, err := newMessage(event)
		if err != nil {
			that.logger.Error("dropping outbound event", "action", event.Action, "error", err)
			continue
		}

		if err = that.conn.SetWriteDeadline(time.Now().Add(that.opts.WriteWait)); err != nil {
			return err
		}

		if err = that.conn.WriteJSON(msg); err != nil {
			return err
		}
	}
}

// readPump hands every text frame to handle until the connection fails.
func (that *client) readPump(handle func(data []byte)) {
	log := that.logger.With("method", "readPump")

	that.conn.SetReadLimit(that.opts.MaxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(that.opts.PongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(that.opts.PongWait))
	})

	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Info("connection closed unexpectedly", "error", err)
			}

			return
		}

		_ = that.conn.SetReadDeadline(time.Now().Add(that.opts.PongWait))

		handle(data)
	}
}
