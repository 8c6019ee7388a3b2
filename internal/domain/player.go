package domain

import (
	"math/rand"
	"strings"
	"time"
)

// MaxNameLength is the longest allowed display name
const MaxNameLength = 20

// Player represents a player in a room. The connection ID is a routing
// detail that changes on reconnect; the name is the stable identity for
// all game logic.
type Player struct {
	ConnID    string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	IsHost    bool      `json:"isHost"`
	Score     int       `json:"score"`
	Connected bool      `json:"connected"`
	JoinedAt  time.Time `json:"joinedAt"`

	// Per-vote-round flags, cleared each vote round
	HasVotedThisRound bool `json:"hasVotedThisRound"`
	ClickedGoAgain    bool `json:"-"`
}

// NewPlayer creates a connected player with the given routing ID and name
func NewPlayer(connID, name, color string) *Player {
	return &Player{
		ConnID:    connID,
		Name:      name,
		Color:     color,
		Connected: true,
		JoinedAt:  time.Now(),
	}
}

// ResetVoteFlags clears the per-vote-round flags
func (p *Player) ResetVoteFlags() {
	p.HasVotedThisRound = false
	p.ClickedGoAgain = false
}

// Reconnect attaches a new connection ID and marks the player connected
func (p *Player) Reconnect(connID string) {
	p.ConnID = connID
	p.Connected = true
}

// Disconnect marks the player as disconnected; the record survives so that
// score and role assignments remain stable through transient drops
func (p *Player) Disconnect() {
	p.Connected = false
}

// PlayerInfo is a safe roster view of player data
type PlayerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ToInfo converts a Player to PlayerInfo
func (p *Player) ToInfo() PlayerInfo {
	return PlayerInfo{
		ID:    p.ConnID,
		Name:  p.Name,
		Color: p.Color,
	}
}

// SanitizeName uppercases the input, strips everything that is not an ASCII
// letter and truncates to MaxNameLength. An empty result means the name is
// invalid.
func SanitizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
		if b.Len() == MaxNameLength {
			break
		}
	}
	return b.String()
}

// SanitizeCode normalizes a room code the same way, truncated to CodeLength
func SanitizeCode(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
		if b.Len() == CodeLength {
			break
		}
	}
	return b.String()
}

// Colors is the fixed palette players are assigned from
var Colors = []string{
	"#ff3b3b", "#4a90e2", "#50e3c2", "#f5a623", "#9013fe",
	"#b8e986", "#f8e71c", "#7ed321", "#d0021b", "#8b572a",
	"#bd10e0", "#417505", "#f6a", "#0bd", "#ff7f50",
	"#1abc9c", "#e74c3c", "#3498db", "#9b59b6", "#e67e22",
}

// PickColor returns the first palette color not in use; once the palette is
// exhausted it falls back to a random entry
func PickColor(used map[string]bool, rng *rand.Rand) string {
	for _, c := range Colors {
		if !used[c] {
			return c
		}
	}
	return Colors[rng.Intn(len(Colors))]
}
