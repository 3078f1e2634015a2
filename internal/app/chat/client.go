/*
Package chat contains the core logic for the in-memory message fan-out hub.

This file defines the Client struct, representing one active WebSocket connection.
It manages the connection's lifecycle, the message communication loops (ReadPump
and WritePump), and the outbound send queue the hub fans out into.
*/
package chat

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ssirawiitch/Socket-Programming/internal/pkg/errs"
	"github.com/ssirawiitch/Socket-Programming/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a message sent by the client.
	maxMessageSize = 8192

	// maximum allowed size (in bytes) for chat message content.
	MaxContentBytes = 5000

	// sendQueueSize is the capacity of the per-client outbound queue.
	sendQueueSize = 256

	// inbound event budget per connection; one client may not flood the hub.
	inboundEventRate  = 10
	inboundEventBurst = 20
)

var (
	errSendQueueFull = errors.New("client send queue full")
	errClientClosed  = errors.New("client connection closed")
)

// sessionState tracks the per-connection state machine. Transitions happen on
// the connection's read goroutine, except the terminal transition, which
// disconnect may take from another goroutine during hub shutdown.
type sessionState int

const (
	stateHandshaking sessionState = iota
	stateActive
	stateClosed
)

// Client struct represents one active WebSocket connection.
type Client struct {
	// the hub coordinating all shared chat state.
	hub *Hub

	// underlying WebSocket connection object. Nil only in tests that bypass the transport.
	conn *websocket.Conn

	// session state machine position; see Dispatch. Guarded by sendMu, because
	// hub shutdown may close the connection concurrently with its read loop.
	state sessionState

	// a buffered channel used to queue serialized events waiting to be sent to the client.
	send chan []byte

	// limiter caps the client's inbound event rate.
	limiter *rate.Limiter

	// sendMu guards closed and the close of the send channel, so fan-out never
	// writes to a closed channel.
	sendMu sync.Mutex
	closed bool

	// closeOnce ensures the disconnect sequence runs at most once.
	closeOnce sync.Once

	// structured logger with client context.
	logger zerolog.Logger
}

// NewClient constructs and returns a new Client instance.
func NewClient(hub *Hub, wsConn *websocket.Conn, remoteAddr string) *Client {
	clientLogger := logx.Logger().With().
		Str("component", "Client").
		Str("remote_addr", remoteAddr).
		Logger()

	return &Client{
		hub:     hub,
		conn:    wsConn,
		state:   stateHandshaking,
		send:    make(chan []byte, sendQueueSize),
		limiter: rate.NewLimiter(rate.Limit(inboundEventRate), inboundEventBurst),
		logger:  clientLogger,
	}
}

// ReadPump reads events from the WebSocket connection and dispatches them to the
// hub. It handles heartbeats (Pong) and performs disconnect cleanup when the
// connection closes for any reason.
func (c *Client) ReadPump() {
	defer c.disconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		if !c.limiter.Allow() {
			c.SendError(errs.NewError(errs.ErrRateLimitExceeded))
			continue
		}

		ev, err := DecodeInbound(raw)
		if err != nil {
			c.logger.Warn().Err(err).
				Bytes("message_bytes", raw).
				Msg("Client sent invalid JSON")
			continue
		}

		if !c.hub.Dispatch(c, ev) {
			break
		}
	}
}

// disconnect runs the full transport-level disconnect sequence exactly once:
// the hub removes the connection from every store and broadcasts the updated
// roster and leave notice, then the send queue is closed. WritePump drains any
// events still queued (such as a fatal handshake error) and closes the
// underlying connection on its way out.
func (c *Client) disconnect() {
	c.closeOnce.Do(func() {
		c.setState(stateClosed)
		c.logger.Info().Msg("Client connection cleanup starting.")

		c.hub.dropClient(c)
		c.closeSend()
	})
}

// sessionState returns the current state machine position.
func (c *Client) sessionState() sessionState {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	return c.state
}

// setState moves the state machine to s.
func (c *Client) setState(s sessionState) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	c.state = s
}

// closeSend marks the client closed for fan-out and closes the send queue.
// Messages already queued are still drained by WritePump before it exits.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// enqueue places one serialized event on the client's send queue. It fails
// rather than blocks when the queue is full, so a slow peer never stalls the hub.
func (c *Client) enqueue(payload []byte) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return errClientClosed
	}

	select {
	case c.send <- payload:
		return nil
	default:
		return errSendQueueFull
	}
}

// WritePump writes queued events from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !c.writeQueuedMessage(message, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage writes one queued event to the WebSocket.
// Returns true if the WritePump loop should continue, false if it should terminate.
func (c *Client) writeQueuedMessage(message []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends a periodic WebSocket Ping to maintain the heartbeat.
// Returns false if the WritePump loop should terminate due to write failure.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

// sendEvent marshals the event and attempts to queue it for this client only.
func (c *Client) sendEvent(event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		c.logger.Error().Err(err).Msg("Error marshaling event for client")
		return err
	}

	if err := c.enqueue(payload); err != nil {
		c.logger.Warn().Err(err).Int("queue_len", len(c.send)).Msg("Dropping event for client")
		return err
	}
	return nil
}

// SendError queues an error event scoped to this client.
func (c *Client) SendError(err error) {
	var code int
	var message string

	var customErr *errs.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
	} else {
		code = errs.ErrUnknown
		message = "Internal server error"
		c.logger.Error().Err(err).Msg("Sending generic error for unexpected failure")
	}

	c.sendEvent(ErrorEvent{
		Type:    OutError,
		Code:    code,
		Message: message,
	})
}
