package presence

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dshills/cursorcast/internal/logging"
)

// Sentinel errors for the websocket feed client.
var (
	// ErrClientClosed is returned when sending on a closed client.
	ErrClientClosed = errors.New("presence: client closed")
)

// cursor update message on the wire. Field names follow the collab
// server's cursor channel payload.
type cursorMessage struct {
	Type           string `json:"type"`
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	CursorPosition int    `json:"cursor_position"`
	SelectionStart int    `json:"selection_start"`
	SelectionEnd   int    `json:"selection_end"`
	Timestamp      string `json:"timestamp"`
}

const msgTypeCursorUpdate = "cursor_update"

// WSConfig configures a websocket feed client.
type WSConfig struct {
	// URL is the websocket endpoint of the collab server.
	URL string

	// HandshakeTimeout bounds the dial. Zero means the dialer default.
	HandshakeTimeout time.Duration

	// ReadLimit bounds incoming message size in bytes. Zero means no limit.
	ReadLimit int64
}

// WSClient consumes cursor updates from a collab server over a websocket
// and publishes them into a Feed. Messages of other types are ignored.
type WSClient struct {
	conn   *websocket.Conn
	feed   *Feed
	logger *logging.Logger

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// DialFeed connects to the given endpoint and starts delivering cursor
// updates into the feed until the connection drops or Close is called.
func DialFeed(cfg WSConfig, feed *Feed, logger *logging.Logger) (*WSClient, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	dialer := websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout}
	conn, _, err := dialer.Dial(cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing presence feed %s: %w", cfg.URL, err)
	}
	if cfg.ReadLimit > 0 {
		conn.SetReadLimit(cfg.ReadLimit)
	}

	c := &WSClient{
		conn:   conn,
		feed:   feed,
		logger: logger.WithField("session", feed.SessionID()),
		done:   make(chan struct{}),
	}
	go c.readPump()
	return c, nil
}

// Send publishes the local user's cursor sample to the server.
func (c *WSClient) Send(sample CursorSample) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}

	msg := cursorMessage{
		Type:           msgTypeCursorUpdate,
		UserID:         sample.UserID,
		Username:       sample.Username,
		CursorPosition: sample.Offset,
		SelectionStart: sample.SelectionStart,
		SelectionEnd:   sample.SelectionEnd,
		Timestamp:      sample.Timestamp.UTC().Format(time.RFC3339Nano),
	}
	return c.conn.WriteJSON(msg)
}

// Close shuts the client down and closes the connection.
func (c *WSClient) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	err := c.conn.Close()
	<-c.done
	return err
}

// Done is closed when the read loop has exited.
func (c *WSClient) Done() <-chan struct{} {
	return c.done
}

func (c *WSClient) readPump() {
	defer close(c.done)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()
			if !closed {
				c.logger.Warnf("presence feed read failed: %v", err)
			}
			return
		}

		sample, ok := decodeCursorMessage(data)
		if !ok {
			continue
		}
		c.feed.Publish(sample)
	}
}

// decodeCursorMessage parses a wire message into a sample. Non-cursor
// messages and malformed payloads report ok=false.
func decodeCursorMessage(data []byte) (CursorSample, bool) {
	var msg cursorMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return CursorSample{}, false
	}
	if msg.Type != msgTypeCursorUpdate || msg.UserID == "" {
		return CursorSample{}, false
	}

	ts, err := time.Parse(time.RFC3339Nano, msg.Timestamp)
	if err != nil {
		ts = time.Time{}
	}

	return CursorSample{
		UserID:         msg.UserID,
		Username:       msg.Username,
		Offset:         msg.CursorPosition,
		SelectionStart: msg.SelectionStart,
		SelectionEnd:   msg.SelectionEnd,
		Timestamp:      ts,
	}, true
}
