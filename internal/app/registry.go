package app

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"blendin/internal/config"
	"blendin/internal/domain"
)

// Registry owns all live rooms. It hands out unique 4-letter codes,
// resolves joins, and drops rooms the moment their last connected player
// leaves. A code is never reused while its room is live; the ~450k code
// space makes rejection sampling terminate quickly in practice.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]*RoomSession
	catalog *PromptCatalog
	cfg     config.GameConfig
	logger  *slog.Logger
	rng     *rand.Rand // code generation only, guarded by mu
}

// NewRegistry creates an empty room registry
func NewRegistry(cfg config.GameConfig, catalog *PromptCatalog, logger *slog.Logger) *Registry {
	return &Registry{
		rooms:   make(map[string]*RoomSession),
		catalog: catalog,
		cfg:     cfg,
		logger:  logger,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateRoom creates a room with the requesting client as sole player and
// host. The raw name is sanitized to uppercase letters; an empty result is
// rejected.
func (r *Registry) CreateRoom(client ClientConnection, rawName string) (*RoomSession, error) {
	name := domain.SanitizeName(rawName)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	r.mu.Lock()
	code := r.generateCode()
	session := newRoomSession(code, r.cfg, r.catalog,
		rand.New(rand.NewSource(r.rng.Int63())), r.logger, r.Remove)
	r.rooms[code] = session
	r.mu.Unlock()

	session.addCreator(client, name)
	r.logger.Info("room created", "roomCode", code, "host", name)
	return session, nil
}

// JoinRoom resolves a join request against the named room: reconnection,
// fresh join, or a specific rejection
func (r *Registry) JoinRoom(client ClientConnection, rawName, rawCode string) (*RoomSession, error) {
	name := domain.SanitizeName(rawName)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	session, ok := r.Get(domain.SanitizeCode(rawCode))
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if err := session.Join(client, name); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns the room session for a code
func (r *Registry) Get(code string) (*RoomSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.rooms[code]
	return session, ok
}

// Remove drops a room from the registry. Called by a session once it has
// no connected players left.
func (r *Registry) Remove(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, code)
}

// RoomCount returns the number of live rooms
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// PlayerCount returns the total connected players across all rooms
func (r *Registry) PlayerCount() int {
	r.mu.RLock()
	sessions := make([]*RoomSession, 0, len(r.rooms))
	for _, s := range r.rooms {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	total := 0
	for _, s := range sessions {
		total += s.ConnectedCount()
	}
	return total
}

// Close shuts down every room, telling clients the server is going away
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := make([]*RoomSession, 0, len(r.rooms))
	for _, s := range r.rooms {
		sessions = append(sessions, s)
	}
	r.rooms = make(map[string]*RoomSession)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close("Server shutting down.")
	}
}

// generateCode samples 4-letter codes until one is unused. Caller holds mu.
func (r *Registry) generateCode() string {
	for {
		b := make([]byte, domain.CodeLength)
		for i := range b {
			b[i] = byte('A' + r.rng.Intn(26))
		}
		code := string(b)
		if _, exists := r.rooms[code]; !exists {
			return code
		}
	}
}
