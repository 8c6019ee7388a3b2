package domain

import "time"

const (
	// CodeLength is the number of letters in a room code
	CodeLength = 4

	// MinPlayersToStart is the minimum roster size to start a game
	MinPlayersToStart = 3

	// MaxPlayers is the room capacity
	MaxPlayers = 20
)

// Room holds the ordered roster for one party. Players are kept in join
// order; that order is the tiebreak for scoreboard and winner.
type Room struct {
	Code      string    `json:"code"`
	Players   []*Player `json:"players"`
	HostID    string    `json:"hostId"` // connection ID of the host, "" if none connected
	Started   bool      `json:"started"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewRoom creates an empty room with the given code
func NewRoom(code string) *Room {
	return &Room{
		Code:      code,
		Players:   make([]*Player, 0, MaxPlayers),
		CreatedAt: time.Now(),
	}
}

// AddPlayer appends a player to the roster. The first player becomes host.
func (r *Room) AddPlayer(p *Player) {
	if len(r.Players) == 0 {
		p.IsHost = true
		r.HostID = p.ConnID
	}
	r.Players = append(r.Players, p)
}

// PlayerByName returns the player with the given name, or nil
func (r *Room) PlayerByName(name string) *Player {
	for _, p := range r.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// PlayerByConn returns the player with the given connection ID, or nil
func (r *Room) PlayerByConn(connID string) *Player {
	for _, p := range r.Players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

// ConnectedPlayers returns the connected players in roster order
func (r *Room) ConnectedPlayers() []*Player {
	out := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Connected {
			out = append(out, p)
		}
	}
	return out
}

// ConnectedNames returns the names of connected players in roster order
func (r *Room) ConnectedNames() []string {
	names := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Connected {
			names = append(names, p.Name)
		}
	}
	return names
}

// HasConnected reports whether any player is still connected. A room with
// no connected players is destroyed by the registry.
func (r *Room) HasConnected() bool {
	for _, p := range r.Players {
		if p.Connected {
			return true
		}
	}
	return false
}

// UsedColors returns the set of colors currently assigned in the room
func (r *Room) UsedColors() map[string]bool {
	used := make(map[string]bool, len(r.Players))
	for _, p := range r.Players {
		used[p.Color] = true
	}
	return used
}

// ReassignHost moves the host flag to the first connected player in roster
// order. If nobody is connected the room is left host-less.
func (r *Room) ReassignHost() {
	r.HostID = ""
	for _, p := range r.Players {
		p.IsHost = false
	}
	for _, p := range r.Players {
		if p.Connected {
			p.IsHost = true
			r.HostID = p.ConnID
			return
		}
	}
}

// IsHost checks if the given connection belongs to the host
func (r *Room) IsHost(connID string) bool {
	return r.HostID != "" && r.HostID == connID
}

// RosterInfo returns the roster as safe PlayerInfo values
func (r *Room) RosterInfo() []PlayerInfo {
	infos := make([]PlayerInfo, 0, len(r.Players))
	for _, p := range r.Players {
		infos = append(infos, p.ToInfo())
	}
	return infos
}
