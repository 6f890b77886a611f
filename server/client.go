package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// WebSocket timeout constants following Gorilla best practices
// See: https://github.com/gorilla/websocket/blob/master/examples/chat/client.go
const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = 54 * time.Second

	// Maximum message size allowed from peer (1MB for patch documents)
	maxMessageSize = 1024 * 1024
)

// Client represents one editor WebSocket connection
type Client struct {
	server    *BatonServer
	conn      *websocket.Conn
	send      chan *ResultMessage
	id        string
	limiter   *rate.Limiter // nil = unlimited
	closeOnce sync.Once     // Prevents double-close panics
}

// close shuts the client's send channel exactly once
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// readPump handles reading messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.server.unregister <- c
		c.conn.Close()
	}()

	// Configure connection limits and timeouts per Gorilla best practices
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	c.server.logger.Debugw("read pump started", "client_id", c.id)

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			c.handleReadError(err)
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			c.server.logger.Warnw("JSON unmarshal error",
				"error", err.Error(),
				"client_id", c.id,
			)
			continue
		}

		c.routeMessage(&msg)
	}
}

// handleReadError logs unexpected WebSocket read errors.
// Expected closure codes (going away, abnormal, no status) are silently ignored.
func (c *Client) handleReadError(err error) {
	if websocket.IsUnexpectedCloseError(err,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure,
		websocket.CloseNoStatusReceived,
	) {
		c.server.logger.Warnw("WebSocket read error",
			"error", err.Error(),
			"client_id", c.id,
		)
	}
}

// routeMessage dispatches incoming WebSocket messages to appropriate handlers
func (c *Client) routeMessage(msg *ClientMessage) {
	switch msg.Type {
	case "compile":
		c.handleCompile(msg)
	case "ping":
		// Just update deadline, handled by pong handler
	default:
		c.server.logger.Debugw("unknown message type",
			"type", msg.Type,
			"client_id", c.id,
		)
	}
}

// handleCompile compiles a patch document and replies with the result.
// Each request runs against a fresh generation context, so sessions never
// leak compiler state between patches.
func (c *Client) handleCompile(msg *ClientMessage) {
	reply := &ResultMessage{
		Type:      "result",
		RequestID: msg.RequestID,
		Timestamp: time.Now().Unix(),
	}

	if c.limiter != nil && !c.limiter.Allow() {
		reply.Error = &ErrorBody{
			Code:    "rate_limited",
			Message: "compile rate limit exceeded, slow down",
		}
		c.reply(reply)
		return
	}

	result, errBody := c.server.compileDocument(msg.Document, msg.Save)
	reply.Result = result
	reply.Error = errBody
	c.reply(reply)
}

// reply queues a message for the write pump, dropping it if the client
// cannot keep up.
func (c *Client) reply(msg *ResultMessage) {
	select {
	case c.send <- msg:
	default:
		c.server.logger.Warnw("client send channel full, dropping reply",
			"client_id", c.id,
			"request_id", msg.RequestID,
		)
	}
}

// writePump writes compile results to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	c.server.logger.Debugw("write pump started", "client_id", c.id)

	for {
		select {
		case <-c.server.ctx.Done():
			c.server.logger.Debugw("write pump stopping due to server shutdown", "client_id", c.id)
			return
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(msg); err != nil {
				c.server.logger.Warnw("result write error",
					"error", err.Error(),
					"client_id", c.id,
				)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
