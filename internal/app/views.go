package app

import "blendin/internal/domain"

// Talk and vote instructions, phrased for the player they go to
const (
	msgImposterTalk = "You are the imposter, blend in."
	msgSpeakerTalk  = "Say something related to the prompt"
	msgImposterVote = "Look like you're voting"
	msgAlreadyVoted = "You already voted, please wait"
)

// phaseViewFor renders the event the given player should currently see.
// It is pure with respect to game state, so the same rendering serves both
// live phase broadcasts and reconnection resync. Returns nil when there is
// no game.
func (s *RoomSession) phaseViewFor(p *domain.Player) *domain.GameEvent {
	g := s.game
	if g == nil {
		return nil
	}

	switch g.Phase {
	case domain.PhaseChoose:
		return domain.NewEvent(domain.EventPhaseChoose, domain.PhaseChoosePayload{
			Chooser:  g.ChooserName,
			Subjects: s.catalog.Subjects(),
		})

	case domain.PhaseTalk:
		speaker := g.CurrentSpeaker()
		isImposter := p.Name == g.ImposterName
		var prompt *string
		if !isImposter {
			prompt = &g.Prompt
		}
		if p.Name == speaker {
			message := msgSpeakerTalk
			if isImposter {
				message = msgImposterTalk
			}
			return domain.NewEvent(domain.EventPhaseTalkYou, domain.TalkYouPayload{
				Message: message,
				Prompt:  prompt,
				You:     p.Name,
			})
		}
		return domain.NewEvent(domain.EventPhaseTalkOther, domain.TalkOtherPayload{
			Speaker:        speaker,
			Prompt:         prompt,
			YouAreImposter: isImposter,
		})

	case domain.PhaseVote:
		if p.Name == g.ImposterName {
			return domain.NewEvent(domain.EventPhaseVoteImposter, domain.VoteNoticePayload{Message: msgImposterVote})
		}
		if p.HasVotedThisRound {
			return domain.NewEvent(domain.EventPhaseVoteAlready, domain.VoteNoticePayload{Message: msgAlreadyVoted})
		}
		candidates := make([]string, 0, len(s.room.Players))
		for _, pl := range s.room.Players {
			candidates = append(candidates, pl.Name)
		}
		return domain.NewEvent(domain.EventPhaseVote, domain.VotePayload{
			Candidates:  candidates,
			VoteRound:   g.VoteRound,
			CanGoAround: g.CanGoAround(),
		})

	case domain.PhaseScore:
		return domain.NewEvent(domain.EventPhaseScoreReveal, domain.ScoreRevealPayload{Imposter: g.ImposterName})
	}

	return nil
}

// resyncPhaseLocked routes a reconnecting player into the current phase:
// their phase view plus the remaining timer seconds, if a countdown runs
func (s *RoomSession) resyncPhaseLocked(p *domain.Player) {
	s.sendToLocked(p.ConnID, s.phaseViewFor(p))

	if left := s.timer.SecondsLeft(); left > 0 && s.game != nil {
		s.sendToLocked(p.ConnID, domain.NewEvent(domain.EventPhaseTimer, domain.PhaseTimerPayload{
			Phase:       s.game.Phase,
			SecondsLeft: left,
		}))
	}
}
