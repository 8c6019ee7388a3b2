package domain

// Phase represents the current phase of an active game round
type Phase string

const (
	PhaseChoose Phase = "choose" // Chooser picks a subject (10s, then auto-pick)
	PhaseTalk   Phase = "talk"   // Players speak in talk order, one turn at a time
	PhaseVote   Phase = "vote"   // Non-imposters vote or ask to go around again
	PhaseScore  Phase = "score"  // Reveal, award points, scoreboard
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseChoose: {PhaseTalk},
		PhaseTalk:   {PhaseTalk, PhaseVote},
		PhaseVote:   {PhaseTalk, PhaseScore}, // back to talk on a go-around
		PhaseScore:  {PhaseChoose},           // next round
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}
