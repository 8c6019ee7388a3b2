package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"blendin/internal/app"
	"blendin/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents a WebSocket client connection. A connection starts
// unattached; create_room or join_room binds it to a room session.
type Client struct {
	conn     *websocket.Conn
	registry *app.Registry
	connID   string
	send     chan []byte
	done     chan struct{}
	logger   *slog.Logger

	mu      sync.Mutex
	session *app.RoomSession
	closed  bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, registry *app.Registry, connID string, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		registry: registry,
		connID:   connID,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// ConnID implements app.ClientConnection
func (c *Client) ConnID() string {
	return c.connID
}

// Send implements app.ClientConnection
func (c *Client) Send(ev *domain.GameEvent) error {
	data, err := json.Marshal(FromEvent(ev))
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped", "connID", c.connID)
		return nil
	}
}

// Close implements app.ClientConnection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// currentSession returns the room session this connection is attached to
func (c *Client) currentSession() *app.RoomSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// attach binds the connection to a room session
func (c *Client) attach(session *app.RoomSession) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		if session := c.currentSession(); session != nil {
			session.Disconnect(c.connID)
		}
		c.Close()
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
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
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

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError("Invalid message format.")
		return
	}

	switch msg.Type {
	case MsgCreateRoom:
		c.handleCreateRoom(msg.Payload)
	case MsgJoinRoom:
		c.handleJoinRoom(msg.Payload)
	case MsgStartGame:
		c.withSession(func(s *app.RoomSession) error { return s.StartGame(c.connID) })
	case MsgCancelStart:
		c.withSession(func(s *app.RoomSession) error { return s.CancelStart(c.connID) })
	case MsgChooseSubject:
		var p ChooseSubjectPayload
		if json.Unmarshal(msg.Payload, &p) != nil {
			return
		}
		c.withSession(func(s *app.RoomSession) error {
			s.ChooseSubject(c.connID, p.Subject)
			return nil
		})
	case MsgDoneTalking:
		c.withSession(func(s *app.RoomSession) error {
			s.DoneTalking(c.connID)
			return nil
		})
	case MsgVoteFor:
		var p VoteForPayload
		if json.Unmarshal(msg.Payload, &p) != nil {
			return
		}
		c.withSession(func(s *app.RoomSession) error {
			s.VoteFor(c.connID, p.Target)
			return nil
		})
	case MsgGoAroundAgain:
		c.withSession(func(s *app.RoomSession) error {
			s.GoAroundAgain(c.connID)
			return nil
		})
	case MsgPing:
		c.sendRaw(NewServerMessage(MsgPong, nil))
	default:
		c.sendError("Unknown message type.")
	}
}

// handleCreateRoom handles a create_room message
func (c *Client) handleCreateRoom(payload json.RawMessage) {
	if c.currentSession() != nil {
		return // already in a room
	}

	var p CreateRoomPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.sendError("Invalid message format.")
		return
	}

	session, err := c.registry.CreateRoom(c, p.Name)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	c.attach(session)
}

// handleJoinRoom handles a join_room message
func (c *Client) handleJoinRoom(payload json.RawMessage) {
	if c.currentSession() != nil {
		return
	}

	var p JoinRoomPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.sendError("Invalid message format.")
		return
	}

	session, err := c.registry.JoinRoom(c, p.Name, p.Code)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	c.attach(session)
}

// withSession routes an action to the attached room session; an unattached
// connection's actions are silently dropped
func (c *Client) withSession(fn func(*app.RoomSession) error) {
	session := c.currentSession()
	if session == nil {
		return
	}
	if err := fn(session); err != nil {
		c.sendError(err.Error())
	}
}

// sendError sends a user-facing validation error to this client
func (c *Client) sendError(message string) {
	c.sendRaw(NewServerMessage(MessageType(domain.EventError), domain.ErrorPayload{Message: message}))
}

// sendRaw marshals and queues a server message
func (c *Client) sendRaw(msg *ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
