package domain

import "math/rand"

const (
	// MaxRounds is the number of game rounds before the game ends
	MaxRounds = 3

	// MaxVoteRounds caps the vote/go-around cycles within one round
	MaxVoteRounds = 3

	// FallbackPrompt is used when a subject has an empty prompt list
	FallbackPrompt = "Mystery Prompt"
)

// Game is the phase state machine for one room's active game. It is pure
// state: all randomness goes through the injected rng, and serialization of
// concurrent events is the session's job.
type Game struct {
	Round        int      `json:"round"`
	Phase        Phase    `json:"phase"`
	ChooserName  string   `json:"chooser"`
	ImposterName string   `json:"imposter"`
	Subject      string   `json:"subject"`
	Prompt       string   `json:"-"`
	TalkOrder    []string `json:"talkOrder"`
	TalkIndex    int      `json:"talkIndex"`
	VoteRound    int      `json:"voteRound"`
	Votes        []Vote   `json:"votes"`

	rng *rand.Rand
}

// NewGame creates a game at round 1 with the given random source
func NewGame(rng *rand.Rand) *Game {
	return &Game{Round: 1, rng: rng}
}

// StartRound resets round state and designates imposter and chooser.
// Both are drawn uniformly and independently from the connected players,
// so the same player may hold both roles.
func (g *Game) StartRound(connectedNames []string) {
	g.ImposterName = connectedNames[g.rng.Intn(len(connectedNames))]
	g.ChooserName = connectedNames[g.rng.Intn(len(connectedNames))]
	g.Phase = PhaseChoose
	g.Subject = ""
	g.Prompt = ""
	g.TalkOrder = nil
	g.TalkIndex = 0
	g.VoteRound = 0
	g.Votes = nil
}

// SetSubject fixes the round's subject and prompt and builds the talk
// order from the players connected right now: a uniform shuffle, then a
// rotation to a uniform random offset. The order is fixed for the rest of
// the round regardless of later disconnects.
func (g *Game) SetSubject(subject string, prompts []string, connectedNames []string) {
	g.Subject = subject
	if len(prompts) > 0 {
		g.Prompt = prompts[g.rng.Intn(len(prompts))]
	} else {
		g.Prompt = FallbackPrompt
	}

	order := make([]string, len(connectedNames))
	copy(order, connectedNames)
	g.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	start := g.rng.Intn(len(order))
	rotated := make([]string, 0, len(order))
	rotated = append(rotated, order[start:]...)
	rotated = append(rotated, order[:start]...)

	g.TalkOrder = rotated
	g.TalkIndex = 0
	g.Phase = PhaseTalk
}

// CurrentSpeaker returns the name of the player whose turn it is, or ""
// once the order is exhausted
func (g *Game) CurrentSpeaker() string {
	if g.TalkIndex >= len(g.TalkOrder) {
		return ""
	}
	return g.TalkOrder[g.TalkIndex]
}

// AdvanceTalk moves to the next speaker. When the order is exhausted the
// game enters the vote phase and the vote round counter increments; the
// return value reports that transition.
func (g *Game) AdvanceTalk() bool {
	g.TalkIndex++
	if g.TalkIndex >= len(g.TalkOrder) {
		g.Phase = PhaseVote
		g.VoteRound++
		return true
	}
	return false
}

// ReturnToTalk loops back to a fresh discussion pass: same talk order,
// same prompt, speaker reset to the front
func (g *Game) ReturnToTalk() {
	g.Phase = PhaseTalk
	g.TalkIndex = 0
}

// EnterScore moves the round into its terminal score phase
func (g *Game) EnterScore() {
	g.Phase = PhaseScore
}

// NextRound advances the round counter once a score phase completes
func (g *Game) NextRound() {
	g.Round++
}

// RecordVote appends a vote for the current vote round. Callers enforce
// the one-vote-per-round rule via the player's HasVotedThisRound flag.
func (g *Game) RecordVote(voter, target string) {
	g.Votes = append(g.Votes, Vote{Voter: voter, Target: target, Round: g.VoteRound})
}

// FirstVoteOf returns the first-ever vote the named player cast in this
// game round, or nil. Later votes are recorded but never change scoring.
func (g *Game) FirstVoteOf(name string) *Vote {
	for i := range g.Votes {
		if g.Votes[i].Voter == name {
			return &g.Votes[i]
		}
	}
	return nil
}

// AllNonImpostersVoted reports whether every non-imposter on the roster
// has voted this round
func (g *Game) AllNonImpostersVoted(players []*Player) bool {
	for _, p := range players {
		if p.Name == g.ImposterName {
			continue
		}
		if !p.HasVotedThisRound {
			return false
		}
	}
	return true
}

// AllNonImpostersActioned reports whether every non-imposter has either
// voted or asked to go around again this round
func (g *Game) AllNonImpostersActioned(players []*Player) bool {
	for _, p := range players {
		if p.Name == g.ImposterName {
			continue
		}
		if !p.HasVotedThisRound && !p.ClickedGoAgain {
			return false
		}
	}
	return true
}

// CanGoAround reports whether the go-around option is still available;
// in the final vote round everyone must vote
func (g *Game) CanGoAround() bool {
	return g.VoteRound < MaxVoteRounds
}
