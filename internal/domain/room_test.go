package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"uppercases", "alice", "ALICE"},
		{"strips non-letters", "john doe!", "JOHNDOE"},
		{"strips digits", "player123", "PLAYER"},
		{"truncates", "abcdefghijklmnopqrstuvwxyz", "ABCDEFGHIJKLMNOPQRST"},
		{"only junk", "123 !?", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SanitizeName(tt.input))
		})
	}
}

func TestSanitizeCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ABCD", SanitizeCode("abcd"))
	assert.Equal(t, "ABCD", SanitizeCode("ab-cd-ef"))
	assert.Equal(t, "AB", SanitizeCode("a b"))
	assert.Equal(t, "", SanitizeCode("1234"))
}

func TestAddPlayerFirstBecomesHost(t *testing.T) {
	t.Parallel()

	r := NewRoom("ABCD")
	a := NewPlayer("c1", "ALICE", "#fff")
	b := NewPlayer("c2", "BOB", "#000")
	r.AddPlayer(a)
	r.AddPlayer(b)

	assert.True(t, a.IsHost)
	assert.False(t, b.IsHost)
	assert.Equal(t, "c1", r.HostID)
	assert.True(t, r.IsHost("c1"))
	assert.False(t, r.IsHost("c2"))
}

func TestReassignHostSkipsDisconnected(t *testing.T) {
	t.Parallel()

	r := NewRoom("ABCD")
	a := NewPlayer("c1", "ALICE", "#fff")
	b := NewPlayer("c2", "BOB", "#000")
	c := NewPlayer("c3", "CAROL", "#f00")
	r.AddPlayer(a)
	r.AddPlayer(b)
	r.AddPlayer(c)

	a.Disconnect()
	b.Disconnect()
	r.ReassignHost()

	assert.False(t, a.IsHost)
	assert.False(t, b.IsHost)
	assert.True(t, c.IsHost)
	assert.Equal(t, "c3", r.HostID)
}

func TestReassignHostLeavesRoomHostless(t *testing.T) {
	t.Parallel()

	r := NewRoom("ABCD")
	a := NewPlayer("c1", "ALICE", "#fff")
	r.AddPlayer(a)
	a.Disconnect()
	r.ReassignHost()

	assert.Empty(t, r.HostID)
	assert.False(t, r.IsHost("c1"))
	assert.False(t, r.HasConnected())
}

func TestConnectedViews(t *testing.T) {
	t.Parallel()

	r := NewRoom("ABCD")
	a := NewPlayer("c1", "ALICE", "#fff")
	b := NewPlayer("c2", "BOB", "#000")
	r.AddPlayer(a)
	r.AddPlayer(b)
	b.Disconnect()

	assert.Equal(t, []string{"ALICE"}, r.ConnectedNames())
	require.Len(t, r.ConnectedPlayers(), 1)
	assert.True(t, r.HasConnected())
	require.NotNil(t, r.PlayerByName("BOB"))
	assert.Nil(t, r.PlayerByName("CAROL"))
	require.NotNil(t, r.PlayerByConn("c2"))
	assert.Nil(t, r.PlayerByConn("c9"))
}

func TestReconnectRebindsConnID(t *testing.T) {
	t.Parallel()

	p := NewPlayer("c1", "ALICE", "#fff")
	p.Disconnect()
	assert.False(t, p.Connected)

	p.Reconnect("c2")
	assert.True(t, p.Connected)
	assert.Equal(t, "c2", p.ConnID)
}

func TestPickColorPrefersUnused(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	used := map[string]bool{Colors[0]: true, Colors[1]: true}
	assert.Equal(t, Colors[2], PickColor(used, rng))

	// Exhausted palette still yields a palette color
	all := make(map[string]bool, len(Colors))
	for _, c := range Colors {
		all[c] = true
	}
	assert.Contains(t, Colors, PickColor(all, rng))
}
