package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a frame to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// StreamCommand is what a client sends to open or release a feed. A view
// subscribes on mount and unsubscribes on unmount.
type StreamCommand struct {
	Action     string `json:"action"` // "subscribe" or "unsubscribe"
	Collection string `json:"collection"`
	Status     string `json:"status,omitempty"`
}

// StreamClient is one authenticated WebSocket connection. Each of its feed
// subscriptions runs in its own goroutine and delivers frames through the
// send channel; closing the connection cancels all of them exactly once.
type StreamClient struct {
	conn    *websocket.Conn
	feed    *Feed
	ownerID string
	log     *zap.Logger

	send chan Frame
	done chan struct{}

	mu        sync.Mutex
	subs      map[string]context.CancelFunc
	closeOnce sync.Once
}

func NewStreamClient(conn *websocket.Conn, feed *Feed, ownerID string, log *zap.Logger) *StreamClient {
	return &StreamClient{
		conn:    conn,
		feed:    feed,
		ownerID: ownerID,
		log:     log,
		send:    make(chan Frame, 16),
		done:    make(chan struct{}),
		subs:    make(map[string]context.CancelFunc),
	}
}

func subKey(collection, status string) string {
	return collection + "|" + status
}

// Subscribe opens one feed per (collection, status) tuple. A duplicate
// subscribe for an already-open tuple is ignored.
func (c *StreamClient) Subscribe(collection, status string) {
	key := subKey(collection, status)

	c.mu.Lock()
	if _, exists := c.subs[key]; exists {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.subs[key] = cancel
	c.mu.Unlock()

	go c.feed.Run(ctx, collection, c.ownerID, status, c.deliver)
}

// Unsubscribe releases the feed for the tuple, if open.
func (c *StreamClient) Unsubscribe(collection, status string) {
	key := subKey(collection, status)

	c.mu.Lock()
	cancel, exists := c.subs[key]
	if exists {
		delete(c.subs, key)
	}
	c.mu.Unlock()

	if exists {
		cancel()
	}
}

// Close cancels every open subscription before the send loop is torn down.
func (c *StreamClient) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		for key, cancel := range c.subs {
			cancel()
			delete(c.subs, key)
		}
		c.mu.Unlock()
		close(c.done)
	})
}

func (c *StreamClient) deliver(frame Frame) {
	select {
	case c.send <- frame:
	case <-c.done:
	}
}

// ReadPump consumes subscribe/unsubscribe commands until the peer goes away.
func (c *StreamClient) ReadPump() {
	defer func() {
		c.Close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket read failed", zap.String("owner", c.ownerID), zap.Error(err))
			}
			break
		}

		var cmd StreamCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			c.log.Warn("invalid stream command", zap.Error(err))
			continue
		}

		switch cmd.Action {
		case "subscribe":
			c.Subscribe(cmd.Collection, cmd.Status)
		case "unsubscribe":
			c.Unsubscribe(cmd.Collection, cmd.Status)
		}
	}
}

// WritePump marshals frames to the peer and keeps the connection alive with
// pings.
func (c *StreamClient) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(frame); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
