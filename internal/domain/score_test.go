package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsForVote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		vote     *Vote
		imposter string
		want     int
	}{
		{"no vote", nil, "BOB", 0},
		{"wrong target", &Vote{Voter: "ALICE", Target: "CAROL", Round: 1}, "BOB", 0},
		{"correct round 1", &Vote{Voter: "ALICE", Target: "BOB", Round: 1}, "BOB", 900},
		{"correct round 2", &Vote{Voter: "ALICE", Target: "BOB", Round: 2}, "BOB", 600},
		{"correct round 3", &Vote{Voter: "ALICE", Target: "BOB", Round: 3}, "BOB", 300},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PointsForVote(tt.vote, tt.imposter))
		})
	}
}

func TestImposterPoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		nonImposters int
		correct      int
		want         int
	}{
		{"nobody guessed", 4, 0, 900},
		{"one of four guessed", 4, 1, 675},
		{"all of four guessed", 4, 4, 0},
		{"one of two guessed", 2, 1, 450},
		{"both of two guessed", 2, 2, 0},
		{"share does not divide evenly", 7, 7, 4},
		{"no non-imposters", 0, 0, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ImposterPoints(tt.nonImposters, tt.correct))
		})
	}
}

func TestCalculateAwards(t *testing.T) {
	t.Parallel()

	players := []*Player{
		NewPlayer("c1", "ALICE", "#fff"),
		NewPlayer("c2", "BOB", "#000"),
		NewPlayer("c3", "CAROL", "#f00"),
		NewPlayer("c4", "DAVE", "#0f0"),
	}

	g := NewGame(rand.New(rand.NewSource(7)))
	g.StartRound([]string{"ALICE", "BOB", "CAROL", "DAVE"})
	g.ImposterName = "DAVE"

	// ALICE nails it in vote round 1, BOB misses then corrects in round 2,
	// CAROL never votes. Only first votes count.
	g.VoteRound = 1
	g.RecordVote("ALICE", "DAVE")
	g.RecordVote("BOB", "CAROL")
	g.VoteRound = 2
	g.RecordVote("BOB", "DAVE")

	awards, correct := CalculateAwards(g, players)
	require.Len(t, awards, 3)
	assert.Equal(t, 1, correct)

	assert.Equal(t, PlayerAward{Player: "ALICE", VotedFor: "DAVE", Points: 900}, awards[0])
	assert.Equal(t, PlayerAward{Player: "BOB", VotedFor: "CAROL", Points: 0}, awards[1])
	assert.Equal(t, PlayerAward{Player: "CAROL", Points: 0}, awards[2])

	assert.Equal(t, 675, ImposterPoints(3, correct))
}

func TestScoreboardStableOnTies(t *testing.T) {
	t.Parallel()

	a := NewPlayer("c1", "ALICE", "#fff")
	b := NewPlayer("c2", "BOB", "#000")
	c := NewPlayer("c3", "CAROL", "#f00")
	a.Score = 600
	b.Score = 900
	c.Score = 600

	rows := Scoreboard([]*Player{a, b, c})
	require.Len(t, rows, 3)
	assert.Equal(t, ScoreRow{Name: "BOB", Score: 900, Place: 1}, rows[0])
	assert.Equal(t, ScoreRow{Name: "ALICE", Score: 600, Place: 2}, rows[1])
	assert.Equal(t, ScoreRow{Name: "CAROL", Score: 600, Place: 3}, rows[2])
}

func TestWinnerTiebreaksByRosterOrder(t *testing.T) {
	t.Parallel()

	a := NewPlayer("c1", "ALICE", "#fff")
	b := NewPlayer("c2", "BOB", "#000")
	a.Score = 900
	b.Score = 900

	w := Winner([]*Player{a, b})
	require.NotNil(t, w)
	assert.Equal(t, "ALICE", w.Name)

	assert.Nil(t, Winner(nil))
}
