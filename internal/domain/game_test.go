package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame() *Game {
	return NewGame(rand.New(rand.NewSource(42)))
}

func TestStartRoundAssignsRoles(t *testing.T) {
	t.Parallel()

	names := []string{"ALICE", "BOB", "CAROL"}
	g := newTestGame()
	g.StartRound(names)

	assert.Equal(t, PhaseChoose, g.Phase)
	assert.Contains(t, names, g.ImposterName)
	assert.Contains(t, names, g.ChooserName)
	assert.Empty(t, g.Subject)
	assert.Empty(t, g.TalkOrder)
	assert.Zero(t, g.VoteRound)
	assert.Empty(t, g.Votes)
}

func TestStartRoundDrawsRolesWithReplacement(t *testing.T) {
	t.Parallel()

	// Imposter and chooser are drawn independently; over many draws from a
	// two-player pool both coinciding and differing must occur.
	g := newTestGame()
	names := []string{"ALICE", "BOB"}
	same, different := false, false
	for i := 0; i < 200 && !(same && different); i++ {
		g.StartRound(names)
		if g.ImposterName == g.ChooserName {
			same = true
		} else {
			different = true
		}
	}
	assert.True(t, same, "roles never coincided")
	assert.True(t, different, "roles always coincided")
}

func TestSetSubjectBuildsTalkOrder(t *testing.T) {
	t.Parallel()

	names := []string{"ALICE", "BOB", "CAROL", "DAVE"}
	prompts := []string{"p1", "p2", "p3"}

	g := newTestGame()
	g.StartRound(names)
	g.SetSubject("Sports", prompts, names)

	assert.Equal(t, PhaseTalk, g.Phase)
	assert.Equal(t, "Sports", g.Subject)
	assert.Contains(t, prompts, g.Prompt)
	assert.Zero(t, g.TalkIndex)

	// Talk order is a permutation of the connected names
	require.Len(t, g.TalkOrder, len(names))
	assert.ElementsMatch(t, names, g.TalkOrder)
}

func TestSetSubjectFallsBackOnEmptyPromptList(t *testing.T) {
	t.Parallel()

	names := []string{"ALICE", "BOB", "CAROL"}
	g := newTestGame()
	g.StartRound(names)
	g.SetSubject("Music", nil, names)

	assert.Equal(t, FallbackPrompt, g.Prompt)
}

func TestAdvanceTalkEntersVoteAfterLastSpeaker(t *testing.T) {
	t.Parallel()

	names := []string{"ALICE", "BOB", "CAROL"}
	g := newTestGame()
	g.StartRound(names)
	g.SetSubject("Music", []string{"p"}, names)

	assert.Equal(t, g.TalkOrder[0], g.CurrentSpeaker())
	assert.False(t, g.AdvanceTalk())
	assert.Equal(t, g.TalkOrder[1], g.CurrentSpeaker())
	assert.False(t, g.AdvanceTalk())
	assert.True(t, g.AdvanceTalk())

	assert.Equal(t, PhaseVote, g.Phase)
	assert.Equal(t, 1, g.VoteRound)
	assert.Empty(t, g.CurrentSpeaker())
}

func TestReturnToTalkKeepsOrderAndPrompt(t *testing.T) {
	t.Parallel()

	names := []string{"ALICE", "BOB", "CAROL"}
	g := newTestGame()
	g.StartRound(names)
	g.SetSubject("Music", []string{"p"}, names)

	order := append([]string(nil), g.TalkOrder...)
	prompt := g.Prompt
	for !g.AdvanceTalk() {
	}

	g.ReturnToTalk()

	assert.Equal(t, PhaseTalk, g.Phase)
	assert.Zero(t, g.TalkIndex)
	assert.Equal(t, order, g.TalkOrder)
	assert.Equal(t, prompt, g.Prompt)
	assert.Equal(t, 1, g.VoteRound, "a go-around does not rewind the vote round")
}

func TestFirstVoteOfIgnoresLaterVotes(t *testing.T) {
	t.Parallel()

	g := newTestGame()
	g.StartRound([]string{"ALICE", "BOB", "CAROL"})
	g.VoteRound = 1
	g.RecordVote("ALICE", "BOB")
	g.VoteRound = 2
	g.RecordVote("ALICE", "CAROL")

	v := g.FirstVoteOf("ALICE")
	require.NotNil(t, v)
	assert.Equal(t, "BOB", v.Target)
	assert.Equal(t, 1, v.Round)

	assert.Nil(t, g.FirstVoteOf("BOB"))
	assert.Len(t, g.Votes, 2)
}

func TestAllNonImpostersVotedAndActioned(t *testing.T) {
	t.Parallel()

	players := []*Player{
		NewPlayer("c1", "ALICE", "#fff"),
		NewPlayer("c2", "BOB", "#000"),
		NewPlayer("c3", "CAROL", "#f00"),
	}
	g := newTestGame()
	g.StartRound([]string{"ALICE", "BOB", "CAROL"})
	g.ImposterName = "CAROL"

	assert.False(t, g.AllNonImpostersVoted(players))
	assert.False(t, g.AllNonImpostersActioned(players))

	players[0].HasVotedThisRound = true
	players[1].ClickedGoAgain = true
	assert.False(t, g.AllNonImpostersVoted(players))
	assert.True(t, g.AllNonImpostersActioned(players))

	players[1].HasVotedThisRound = true
	assert.True(t, g.AllNonImpostersVoted(players))
}

func TestCanGoAround(t *testing.T) {
	t.Parallel()

	g := newTestGame()
	g.VoteRound = 1
	assert.True(t, g.CanGoAround())
	g.VoteRound = 2
	assert.True(t, g.CanGoAround())
	g.VoteRound = 3
	assert.False(t, g.CanGoAround())
}

func TestPhaseTransitions(t *testing.T) {
	t.Parallel()

	assert.True(t, PhaseChoose.CanTransitionTo(PhaseTalk))
	assert.True(t, PhaseTalk.CanTransitionTo(PhaseVote))
	assert.True(t, PhaseVote.CanTransitionTo(PhaseTalk))
	assert.True(t, PhaseVote.CanTransitionTo(PhaseScore))
	assert.True(t, PhaseScore.CanTransitionTo(PhaseChoose))
	assert.False(t, PhaseChoose.CanTransitionTo(PhaseVote))
	assert.False(t, PhaseScore.CanTransitionTo(PhaseVote))
}
