// Package server manages individual WebSocket clients, handling read/write
// pumps, rate limiting, and event dispatch for each connection.
package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Tyrowin/roomchat/internal/apperrors"
	"github.com/Tyrowin/roomchat/internal/wire"
	"github.com/gorilla/websocket"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second

	msgRateLimited  = "Too many events, slow down"
	msgMalformed    = "Malformed request"
	msgUnknownEvent = "Unknown event"
)

// ConnectionHandler receives the decoded events of one connection.
type ConnectionHandler interface {
	Join(username, room string) error
	SendMessage(text string) error
	SendLocation(latitude, longitude float64) error
	Disconnect()
}

// Client represents a WebSocket client connection in the chat system.
type Client struct {
	id             string
	conn           *websocket.Conn
	send           chan []byte
	hub            *Hub
	handler        ConnectionHandler
	addr           string
	closed         bool
	maxMessageSize int64
	rateLimiter    *rateLimiter
	rateLimit      RateLimitConfig
	log            *slog.Logger
}

// NewClient creates a Client for an upgraded connection. Events read from
// conn are passed to handler; frames queued for id are written back.
func NewClient(conn *websocket.Conn, hub *Hub, handler ConnectionHandler, id, addr string, cfg *Config, log *slog.Logger) *Client {
	maxSize := int64(cfg.MaxMessageSize)
	if conn != nil {
		conn.SetReadLimit(maxSize)
	}
	rateLimit := cfg.RateLimit()

	return &Client{
		id:             id,
		conn:           conn,
		send:           make(chan []byte, cfg.SendBufferSize),
		hub:            hub,
		handler:        handler,
		addr:           addr,
		maxMessageSize: maxSize,
		rateLimiter:    newRateLimiter(rateLimit),
		rateLimit:      rateLimit,
		log:            log.With("conn_id", id, "addr", addr),
	}
}

// ID returns the connection id.
func (c *Client) ID() string {
	return c.id
}

func (c *Client) setupReadConnection() {
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.Error("Error setting initial read deadline", "error", err)
	}
	c.conn.SetPongHandler(func(string) error {
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.Error("Error setting read deadline in pong handler", "error", err)
		}
		return nil
	})
}

// logReadError records why the read loop is ending.
func (c *Client) logReadError(err error) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		c.log.Warn("Frame exceeded maximum size", "max_bytes", c.maxMessageSize)
	case websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure):
		c.log.Info("Client disconnected", "reason", err)
	case errors.Is(err, io.EOF) || isExpectedCloseError(err):
		c.log.Info("Client connection closed", "reason", err)
	case websocket.IsUnexpectedCloseError(err,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure,
		websocket.CloseMessageTooBig):
		c.log.Warn("Unexpected WebSocket close", "error", err)
	default:
		c.log.Error("WebSocket read error", "error", err)
	}
}

// checkRateLimit reports whether the client is still within its event budget.
func (c *Client) checkRateLimit() bool {
	if c.rateLimiter != nil && !c.rateLimiter.allow() {
		c.log.Warn("Rate limit exceeded; rejecting event",
			"burst", c.rateLimit.Burst, "interval", c.rateLimit.RefillInterval)
		return false
	}
	return true
}

// processFrame decodes one inbound frame, runs it through the handler and
// acknowledges the outcome when the client asked for it.
func (c *Client) processFrame(raw []byte) {
	req, err := wire.DecodeRequest(raw)
	if err != nil {
		c.log.Warn("Invalid frame", "error", err)
		c.acknowledge(req.ID, apperrors.Validation(msgMalformed))
		return
	}

	if !c.checkRateLimit() {
		c.acknowledge(req.ID, apperrors.Policy(msgRateLimited))
		return
	}

	c.acknowledge(req.ID, c.dispatch(req))
}

func (c *Client) dispatch(req wire.Request) error {
	switch req.Event {
	case wire.EventJoin:
		var p wire.JoinPayload
		if err := req.DecodeData(&p); err != nil {
			c.log.Debug("Bad join payload", "error", err)
			return apperrors.Validation(msgMalformed)
		}
		return c.handler.Join(p.Username, p.Room)

	case wire.EventSendMessage:
		var p wire.MessagePayload
		if err := req.DecodeData(&p); err != nil {
			c.log.Debug("Bad message payload", "error", err)
			return apperrors.Validation(msgMalformed)
		}
		return c.handler.SendMessage(p.Text)

	case wire.EventSendLocation:
		var p wire.LocationPayload
		if err := req.DecodeData(&p); err != nil {
			c.log.Debug("Bad location payload", "error", err)
			return apperrors.Validation(msgMalformed)
		}
		return c.handler.SendLocation(p.Latitude, p.Longitude)

	default:
		return apperrors.Validation(fmt.Sprintf("%s %q", msgUnknownEvent, req.Event))
	}
}

// acknowledge queues the ack for id on this connection. Id zero means the
// client did not ask for one.
func (c *Client) acknowledge(id uint64, result error) {
	if id == 0 {
		return
	}

	frame, err := wire.EncodeAck(id, result)
	if err != nil {
		c.log.Error("Failed to encode acknowledgement", "id", id, "error", err)
		return
	}

	if !c.hub.Deliver(c.id, frame) {
		c.log.Warn("Acknowledgement dropped", "id", id)
	}
}

func (c *Client) readPump() {
	defer func() {
		c.handler.Disconnect()
		c.hub.unregisterClient(c)
		if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
			c.log.Error("Error closing connection in readPump", "error", err)
		}
	}()

	c.setupReadConnection()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.logReadError(err)
			return
		}

		c.processFrame(raw)
	}
}

// writePump is the connection's only writer. Each queued frame becomes one
// WebSocket text message.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConnection()
	}()

	for c.processWriteEvent(ticker) {
	}
}

// processWriteEvent waits for the next write event and returns false when the
// pump should stop.
func (c *Client) processWriteEvent(ticker *time.Ticker) bool {
	select {
	case frame, ok := <-c.send:
		return c.handleFrame(frame, ok)
	case <-ticker.C:
		return c.handlePing()
	case <-c.hub.ctx.Done():
		return false
	}
}

func (c *Client) closeConnection() {
	if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
		c.log.Error("Error closing connection in writePump", "error", err)
	}
}

// handleFrame writes an outgoing frame and returns false if the connection should be closed.
func (c *Client) handleFrame(frame []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.log.Error("Error setting write deadline", "error", err)
		return false
	}

	if !ok {
		return c.writeCloseMessage()
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		if !isExpectedCloseError(err) {
			c.log.Error("Error writing frame", "error", err)
		}
		return false
	}
	return true
}

func (c *Client) writeCloseMessage() bool {
	if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil && !isExpectedCloseError(err) {
		c.log.Error("Error writing close message", "error", err)
	}
	return false
}

// handlePing sends a ping message to keep the connection alive.
func (c *Client) handlePing() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.log.Error("Error setting write deadline for ping", "error", err)
		return false
	}
	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.log.Error("Error writing ping message", "error", err)
		return false
	}
	return true
}
