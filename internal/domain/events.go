package domain

// EventType tags a server-to-client message
type EventType string

const (
	EventRoomCreated        EventType = "room_created"
	EventRoomJoined         EventType = "room_joined"
	EventPlayersUpdate      EventType = "players_update"
	EventCountdown          EventType = "countdown"
	EventCountdownCanceled  EventType = "countdown_canceled"
	EventPhaseChoose        EventType = "phase_choose"
	EventPhaseChosen        EventType = "phase_chosen"
	EventPhaseTalkYou       EventType = "phase_talk_you"
	EventPhaseTalkOther     EventType = "phase_talk_other"
	EventPhaseVote          EventType = "phase_vote"
	EventPhaseVoteImposter  EventType = "phase_vote_imposter"
	EventPhaseVoteAlready   EventType = "phase_vote_already"
	EventPhaseVoteWaiting   EventType = "phase_vote_waiting"
	EventVoteUpdate         EventType = "vote_update"
	EventPhaseScoreReveal   EventType = "phase_score_reveal"
	EventPhaseScorePlayer   EventType = "phase_score_player"
	EventPhaseScoreImposter EventType = "phase_score_imposter"
	EventPhaseScoreboard    EventType = "phase_scoreboard"
	EventGameEnded          EventType = "game_ended"
	EventPhaseTimer         EventType = "phase_timer"
	EventGameState          EventType = "game_state"
	EventError              EventType = "error_message"
	EventRoomClosed         EventType = "room_closed"
)

// GameEvent is one message destined for a room or a single player
type GameEvent struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// NewEvent creates a new game event
func NewEvent(eventType EventType, payload any) *GameEvent {
	return &GameEvent{Type: eventType, Payload: payload}
}

// Payload types for the different events

// RoomWelcomePayload is sent to a player on room_created / room_joined
type RoomWelcomePayload struct {
	Code    string       `json:"code"`
	Players []PlayerInfo `json:"players"`
	HostID  string       `json:"hostId"`
	YouName string       `json:"youName"`
}

// PlayersUpdatePayload is the roster snapshot broadcast on any roster change
type PlayersUpdatePayload struct {
	Players []*Player `json:"players"`
	HostID  string    `json:"hostId"`
}

// CountdownPayload carries the remaining start-countdown seconds
type CountdownPayload struct {
	Count int `json:"count"`
}

// PhaseChoosePayload is broadcast when a round enters the choose phase
type PhaseChoosePayload struct {
	Chooser  string   `json:"chooser"`
	Subjects []string `json:"subjects"`
}

// PhaseChosenPayload is broadcast once the round's subject is fixed
type PhaseChosenPayload struct {
	Subject string `json:"subject"`
	Chooser string `json:"promptChooser"`
}

// TalkYouPayload is the current speaker's view. Prompt is nil for the
// imposter, who only gets the blend-in instruction.
type TalkYouPayload struct {
	Message string  `json:"message"`
	Prompt  *string `json:"prompt"`
	You     string  `json:"you"`
}

// TalkOtherPayload is every non-speaker's view of a talk turn. Prompt is
// nil when the viewer is the imposter.
type TalkOtherPayload struct {
	Speaker        string  `json:"speaker"`
	Prompt         *string `json:"prompt"`
	YouAreImposter bool    `json:"youAreImposter"`
}

// VotePayload is sent to non-imposters who have not voted yet this round
type VotePayload struct {
	Candidates  []string `json:"candidates"`
	VoteRound   int      `json:"voteRound"`
	CanGoAround bool     `json:"canGoAround"`
}

// VoteNoticePayload carries the waiting/feign-voting instructions
type VoteNoticePayload struct {
	Message string `json:"message"`
}

// VoteUpdatePayload is broadcast after each recorded vote
type VoteUpdatePayload struct {
	Votes   []Vote `json:"votes"`
	VotedBy string `json:"votedBy"`
}

// ScoreRevealPayload unmasks the imposter at the start of the score phase
type ScoreRevealPayload struct {
	Imposter string `json:"imposter"`
}

// ScorePlayerPayload is one staggered per-player scoring reveal
type ScorePlayerPayload struct {
	Player   string  `json:"player"`
	VotedFor *string `json:"votedFor"`
	Points   int     `json:"points"`
}

// ScoreImposterPayload is the imposter's scoring reveal
type ScoreImposterPayload struct {
	Imposter     string `json:"imposter"`
	CorrectVotes int    `json:"correctVotes"`
	Points       int    `json:"points"`
}

// ScoreboardPayload carries the ranked cumulative scores
type ScoreboardPayload struct {
	Scoreboard []ScoreRow `json:"scoreboard"`
}

// GameEndedPayload is broadcast after round 3's score phase
type GameEndedPayload struct {
	Scoreboard []ScoreRow `json:"scoreboard"`
	Winner     *ScoreRow  `json:"winner"`
}

// PhaseTimerPayload carries the active countdown's remaining seconds
type PhaseTimerPayload struct {
	Phase       Phase `json:"phase"`
	SecondsLeft int   `json:"secondsLeft"`
}

// ErrorPayload is a user-facing validation error
type ErrorPayload struct {
	Message string `json:"message"`
}

// RoomClosedPayload tells clients their room is gone
type RoomClosedPayload struct {
	Message string `json:"message"`
}
