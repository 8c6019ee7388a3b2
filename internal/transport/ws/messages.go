package ws

import (
	"encoding/json"
	"time"

	"blendin/internal/domain"
)

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgCreateRoom    MessageType = "create_room"
	MsgJoinRoom      MessageType = "join_room"
	MsgStartGame     MessageType = "start_game"
	MsgCancelStart   MessageType = "cancel_start"
	MsgChooseSubject MessageType = "choose_subject"
	MsgDoneTalking   MessageType = "done_talking"
	MsgVoteFor       MessageType = "vote_for"
	MsgGoAroundAgain MessageType = "go_around_again"
	MsgPing          MessageType = "ping"
)

// Server → Client message types mirror domain.EventType, plus pong
const MsgPong MessageType = "pong"

// ClientMessage represents a message from client to server. The payload is
// left raw and decoded into the typed per-message struct at the boundary.
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   any         `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload any) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// FromEvent wraps a game event for the wire
func FromEvent(ev *domain.GameEvent) *ServerMessage {
	return NewServerMessage(MessageType(ev.Type), ev.Payload)
}

// Client message payloads

// CreateRoomPayload is the payload for create_room
type CreateRoomPayload struct {
	Name string `json:"name"`
}

// JoinRoomPayload is the payload for join_room
type JoinRoomPayload struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// ChooseSubjectPayload is the payload for choose_subject
type ChooseSubjectPayload struct {
	Subject string `json:"subject"`
}

// VoteForPayload is the payload for vote_for
type VoteForPayload struct {
	Target string `json:"target"`
}
