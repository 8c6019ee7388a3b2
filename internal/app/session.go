package app

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"blendin/internal/config"
	"blendin/internal/domain"
)

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(event *domain.GameEvent) error
	ConnID() string
	Close() error
}

// RoomSession drives one room: roster changes, the lobby start countdown
// and the choose/talk/vote/score state machine. A single mutex serializes
// every event (player action or timer expiry) for the room, so at most one
// phase transition is committed per triggering event; rooms are fully
// isolated from each other.
type RoomSession struct {
	mu      sync.Mutex
	room    *domain.Room
	game    *domain.Game
	clients map[string]ClientConnection // connID -> client
	closed  bool

	timer     *PhaseTimer // choose / talk / vote countdown
	countdown *PhaseTimer // lobby start countdown

	catalog *PromptCatalog
	cfg     config.GameConfig
	logger  *slog.Logger
	rng     *rand.Rand
	onEmpty func(code string)
}

// newRoomSession wires up a session for a freshly created room
func newRoomSession(code string, cfg config.GameConfig, catalog *PromptCatalog, rng *rand.Rand, logger *slog.Logger, onEmpty func(string)) *RoomSession {
	return &RoomSession{
		room:      domain.NewRoom(code),
		clients:   make(map[string]ClientConnection),
		timer:     NewPhaseTimer(cfg.TimerTick),
		countdown: NewPhaseTimer(cfg.TimerTick),
		catalog:   catalog,
		cfg:       cfg,
		logger:    logger,
		rng:       rng,
		onEmpty:   onEmpty,
	}
}

// Code returns the room code
func (s *RoomSession) Code() string {
	return s.room.Code
}

// PlayerCount returns the roster size, connected or not
func (s *RoomSession) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.room.Players)
}

// ConnectedCount returns the number of connected players
func (s *RoomSession) ConnectedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.room.ConnectedPlayers())
}

// Started reports whether a game is running
func (s *RoomSession) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.Started
}

// CanJoin reports whether a fresh player could join right now
func (s *RoomSession) CanJoin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.room.Started && len(s.room.Players) < domain.MaxPlayers
}

// addCreator seats the room's first player. Called by the registry while
// the room is not yet visible to anyone else.
func (s *RoomSession) addCreator(client ClientConnection, name string) *domain.Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.NewPlayer(client.ConnID(), name, domain.PickColor(s.room.UsedColors(), s.rng))
	s.room.AddPlayer(p)
	s.clients[client.ConnID()] = client

	s.sendToLocked(p.ConnID, domain.NewEvent(domain.EventRoomCreated, domain.RoomWelcomePayload{
		Code:    s.room.Code,
		Players: s.room.RosterInfo(),
		HostID:  s.room.HostID,
		YouName: p.Name,
	}))
	s.broadcastRosterLocked()
	return p
}

// Join admits a player: a reconnection when a disconnected player with the
// same name exists (always allowed, even mid-game), otherwise a fresh join
// subject to capacity, name uniqueness and the game not having started.
func (s *RoomSession) Join(client ClientConnection, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.room.PlayerByName(name)
	if existing != nil && !existing.Connected {
		s.reconnectLocked(client, existing)
		return nil
	}

	if s.room.Started {
		if existing == nil {
			return domain.ErrGameAlreadyStarted
		}
		return domain.ErrNameTaken
	}
	if len(s.room.Players) >= domain.MaxPlayers {
		return domain.ErrRoomFull
	}
	if existing != nil {
		return domain.ErrNameTaken
	}

	p := domain.NewPlayer(client.ConnID(), name, domain.PickColor(s.room.UsedColors(), s.rng))
	s.room.AddPlayer(p)
	s.clients[client.ConnID()] = client

	s.sendToLocked(p.ConnID, domain.NewEvent(domain.EventRoomJoined, domain.RoomWelcomePayload{
		Code:    s.room.Code,
		Players: s.room.RosterInfo(),
		HostID:  s.room.HostID,
		YouName: p.Name,
	}))
	s.broadcastRosterLocked()
	return nil
}

// reconnectLocked rebinds a disconnected player record to a new connection
// and resyncs them into whatever is currently happening
func (s *RoomSession) reconnectLocked(client ClientConnection, p *domain.Player) {
	p.Reconnect(client.ConnID())
	s.clients[client.ConnID()] = client

	// Restore the host seat if everyone had dropped and the old host is back
	if s.room.HostID == "" && p.IsHost {
		s.room.HostID = p.ConnID
	}

	s.sendToLocked(p.ConnID, domain.NewEvent(domain.EventRoomJoined, domain.RoomWelcomePayload{
		Code:    s.room.Code,
		Players: s.room.RosterInfo(),
		HostID:  s.room.HostID,
		YouName: p.Name,
	}))
	s.broadcastRosterLocked()

	if s.game != nil {
		s.sendToLocked(p.ConnID, domain.NewEvent(domain.EventGameState, s.game))
		s.resyncPhaseLocked(p)
	}

	s.logger.Info("player reconnected", "roomCode", s.room.Code, "player", p.Name)
}

// Disconnect marks the owning player as disconnected. The player record
// survives so score and talk order stay stable; the room is destroyed only
// once no connected player remains.
func (s *RoomSession) Disconnect(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.clients, connID)

	p := s.room.PlayerByConn(connID)
	if p == nil {
		return
	}
	p.Disconnect()

	if s.room.HostID == connID {
		s.room.ReassignHost()
	}
	s.broadcastRosterLocked()

	if !s.room.HasConnected() {
		s.teardownLocked()
	}
}

// teardownLocked removes the room once it is empty. Timers are stopped, but
// any in-flight expiry or reveal callback still re-checks the closed flag
// before touching state.
func (s *RoomSession) teardownLocked() {
	s.closed = true
	s.timer.Stop()
	s.countdown.Stop()
	if s.onEmpty != nil {
		s.onEmpty(s.room.Code)
	}
	s.logger.Info("room destroyed", "roomCode", s.room.Code)
}

// StartGame begins the lobby countdown (host only, needs 3+ players)
func (s *RoomSession) StartGame(connID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.room.Started {
		return nil
	}
	if !s.room.IsHost(connID) {
		return domain.ErrNotHost
	}
	if len(s.room.Players) < domain.MinPlayersToStart {
		return domain.ErrNotEnoughPlayers
	}
	if s.countdown.Running() {
		return nil // already counting
	}

	s.broadcastLocked(domain.NewEvent(domain.EventCountdown, domain.CountdownPayload{Count: s.cfg.CountdownSeconds}))
	s.countdown.Start(s.cfg.CountdownSeconds,
		func(gen, left int) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.closed || !s.countdown.IsCurrent(gen) {
				return
			}
			s.broadcastLocked(domain.NewEvent(domain.EventCountdown, domain.CountdownPayload{Count: left}))
		},
		func(gen int) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.closed || !s.countdown.IsCurrent(gen) || s.room.Started {
				return
			}
			s.room.Started = true
			s.game = domain.NewGame(s.rng)
			s.logger.Info("game started", "roomCode", s.room.Code, "players", len(s.room.Players))
			s.startRoundLocked()
		})
	return nil
}

// CancelStart aborts a running lobby countdown (host only)
func (s *RoomSession) CancelStart(connID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	if !s.room.IsHost(connID) {
		return domain.ErrNotHost
	}
	if s.countdown.Running() {
		s.countdown.Stop()
		s.broadcastLocked(domain.NewEvent(domain.EventCountdownCanceled, nil))
	}
	return nil
}

// startRoundLocked designates this round's roles and enters the choose phase
func (s *RoomSession) startRoundLocked() {
	names := s.room.ConnectedNames()
	if len(names) == 0 {
		return
	}
	s.game.StartRound(names)
	for _, p := range s.room.Players {
		p.ResetVoteFlags()
	}

	s.broadcastLocked(domain.NewEvent(domain.EventPhaseChoose, domain.PhaseChoosePayload{
		Chooser:  s.game.ChooserName,
		Subjects: s.catalog.Subjects(),
	}))

	g := s.game
	s.startPhaseTimerLocked(func() {
		// Nothing chosen in time: auto-pick a subject for the chooser
		if s.game == g && g.Phase == domain.PhaseChoose && g.Subject == "" {
			s.setSubjectLocked(s.catalog.RandomSubject(s.rng))
		}
	})
}

// ChooseSubject handles the chooser's pick. Out-of-turn or unknown-subject
// requests are silently ignored.
func (s *RoomSession) ChooseSubject(connID, subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.game == nil || s.game.Phase != domain.PhaseChoose {
		return
	}
	p := s.room.PlayerByConn(connID)
	if p == nil || p.Name != s.game.ChooserName {
		return
	}
	if !s.catalog.Has(subject) {
		return
	}
	s.setSubjectLocked(subject)
}

// setSubjectLocked fixes subject/prompt/talk order and enters the talk phase
func (s *RoomSession) setSubjectLocked(subject string) {
	s.timer.Stop()
	s.game.SetSubject(subject, s.catalog.Prompts(subject), s.room.ConnectedNames())

	s.broadcastLocked(domain.NewEvent(domain.EventPhaseChosen, domain.PhaseChosenPayload{
		Subject: subject,
		Chooser: s.game.ChooserName,
	}))
	s.emitTalkStateLocked()
}

// emitTalkStateLocked starts the speaker's turn timer and sends every
// player their role-dependent view of the turn
func (s *RoomSession) emitTalkStateLocked() {
	g := s.game
	s.startPhaseTimerLocked(func() {
		if s.game == g && g.Phase == domain.PhaseTalk {
			s.advanceTalkLocked()
		}
	})
	for _, p := range s.room.Players {
		s.sendToLocked(p.ConnID, s.phaseViewFor(p))
	}
}

// DoneTalking advances the turn, but only for the current speaker
func (s *RoomSession) DoneTalking(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.game == nil || s.game.Phase != domain.PhaseTalk {
		return
	}
	p := s.room.PlayerByConn(connID)
	if p == nil || p.Name != s.game.CurrentSpeaker() {
		return
	}
	s.advanceTalkLocked()
}

// advanceTalkLocked moves to the next speaker or into the vote phase
func (s *RoomSession) advanceTalkLocked() {
	if s.game.AdvanceTalk() {
		// New vote round: everyone gets a fresh vote
		for _, p := range s.room.Players {
			p.ResetVoteFlags()
		}
		s.emitVoteStateLocked()
		return
	}
	s.emitTalkStateLocked()
}

// emitVoteStateLocked starts the vote countdown and sends each player
// their vote view
func (s *RoomSession) emitVoteStateLocked() {
	g := s.game
	s.startPhaseTimerLocked(func() {
		if s.game != g || g.Phase != domain.PhaseVote {
			return
		}
		if g.CanGoAround() && !g.AllNonImpostersVoted(s.room.Players) {
			s.goAroundLocked()
			return
		}
		// Final round or everyone voted: non-voters simply scored no vote
		s.startScorePhaseLocked()
	})
	for _, p := range s.room.Players {
		s.sendToLocked(p.ConnID, s.phaseViewFor(p))
	}
}

// VoteFor records a suspect nomination. The imposter's votes, double votes
// and unknown targets are silent no-ops.
func (s *RoomSession) VoteFor(connID, targetName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.game == nil || s.game.Phase != domain.PhaseVote {
		return
	}
	voter := s.room.PlayerByConn(connID)
	if voter == nil || voter.Name == s.game.ImposterName {
		return
	}
	if voter.HasVotedThisRound {
		return
	}
	target := s.room.PlayerByName(domain.SanitizeName(targetName))
	if target == nil {
		return
	}

	s.game.RecordVote(voter.Name, target.Name)
	voter.HasVotedThisRound = true
	s.sendToLocked(voter.ConnID, domain.NewEvent(domain.EventPhaseVoteAlready, domain.VoteNoticePayload{
		Message: "You voted, waiting on others.",
	}))
	s.broadcastLocked(domain.NewEvent(domain.EventVoteUpdate, domain.VoteUpdatePayload{
		Votes:   s.game.Votes,
		VotedBy: voter.Name,
	}))
	s.checkVoteProgressLocked()
}

// GoAroundAgain lets a non-imposter ask for another discussion pass
// instead of voting. Unavailable in the final vote round.
func (s *RoomSession) GoAroundAgain(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.game == nil || s.game.Phase != domain.PhaseVote || !s.game.CanGoAround() {
		return
	}
	p := s.room.PlayerByConn(connID)
	if p == nil || p.Name == s.game.ImposterName {
		return
	}
	if !p.HasVotedThisRound {
		p.ClickedGoAgain = true
		s.sendToLocked(p.ConnID, domain.NewEvent(domain.EventPhaseVoteWaiting, domain.VoteNoticePayload{
			Message: "Waiting on others.",
		}))
	}
	if s.game.AllNonImpostersActioned(s.room.Players) {
		s.goAroundLocked()
	}
}

// checkVoteProgressLocked resolves the vote round after each recorded vote
func (s *RoomSession) checkVoteProgressLocked() {
	g := s.game
	if g.AllNonImpostersVoted(s.room.Players) {
		s.timer.Stop()
		s.startScorePhaseLocked()
		return
	}
	if g.AllNonImpostersActioned(s.room.Players) && g.CanGoAround() {
		s.timer.Stop()
		s.goAroundLocked()
		return
	}
	if !g.CanGoAround() {
		// Final vote round: keep pushing the vote view at the holdouts
		s.emitVoteStateLocked()
	}
}

// goAroundLocked consumes the go-around: back to talk with the same order
// and prompt for a fresh discussion pass
func (s *RoomSession) goAroundLocked() {
	for _, p := range s.room.Players {
		p.ClickedGoAgain = false
	}
	s.game.ReturnToTalk()
	s.emitTalkStateLocked()
}

// startScorePhaseLocked reveals the imposter and schedules the staggered
// per-player reveals, the imposter's result, the scoreboard, and finally
// the next round or the end of the game
func (s *RoomSession) startScorePhaseLocked() {
	s.timer.Stop()
	g := s.game
	g.EnterScore()

	s.broadcastLocked(domain.NewEvent(domain.EventPhaseScoreReveal, domain.ScoreRevealPayload{
		Imposter: g.ImposterName,
	}))

	awards, correct := domain.CalculateAwards(g, s.room.Players)

	for _, a := range awards {
		award := a
		rosterIdx := s.rosterIndexLocked(award.Player)
		s.schedule(s.cfg.RevealDelay+time.Duration(rosterIdx)*s.cfg.RevealInterval, func() {
			if s.game != g || g.Phase != domain.PhaseScore {
				return
			}
			var votedFor *string
			if award.VotedFor != "" {
				votedFor = &award.VotedFor
			}
			if p := s.room.PlayerByName(award.Player); p != nil {
				p.Score += award.Points
			}
			s.broadcastLocked(domain.NewEvent(domain.EventPhaseScorePlayer, domain.ScorePlayerPayload{
				Player:   award.Player,
				VotedFor: votedFor,
				Points:   award.Points,
			}))
		})
	}

	imposterPts := domain.ImposterPoints(len(s.room.Players)-1, correct)
	afterPlayers := s.cfg.RevealDelay + time.Duration(len(s.room.Players))*s.cfg.RevealInterval
	s.schedule(afterPlayers, func() {
		if s.game != g || g.Phase != domain.PhaseScore {
			return
		}
		if p := s.room.PlayerByName(g.ImposterName); p != nil {
			p.Score += imposterPts
		}
		s.broadcastLocked(domain.NewEvent(domain.EventPhaseScoreImposter, domain.ScoreImposterPayload{
			Imposter:     g.ImposterName,
			CorrectVotes: correct,
			Points:       imposterPts,
		}))
	})

	s.schedule(afterPlayers+s.cfg.ScoreboardDelay, func() {
		if s.game != g || g.Phase != domain.PhaseScore {
			return
		}
		s.broadcastLocked(domain.NewEvent(domain.EventPhaseScoreboard, domain.ScoreboardPayload{
			Scoreboard: domain.Scoreboard(s.room.Players),
		}))
	})

	s.schedule(afterPlayers+s.cfg.ScoreboardDelay+s.cfg.NextRoundDelay, func() {
		if s.game != g || g.Phase != domain.PhaseScore {
			return
		}
		if g.Round < domain.MaxRounds {
			g.NextRound()
			s.startRoundLocked()
			return
		}
		s.endGameLocked()
	})
}

// endGameLocked reveals the final standings and returns the room to the
// lobby. Scores are kept as-is for a possible next game.
func (s *RoomSession) endGameLocked() {
	rows := domain.Scoreboard(s.room.Players)
	var winner *domain.ScoreRow
	if w := domain.Winner(s.room.Players); w != nil {
		winner = &domain.ScoreRow{Name: w.Name, Score: w.Score}
	}
	s.broadcastLocked(domain.NewEvent(domain.EventGameEnded, domain.GameEndedPayload{
		Scoreboard: rows,
		Winner:     winner,
	}))

	s.room.Started = false
	s.game = nil
	for _, p := range s.room.Players {
		p.ResetVoteFlags()
	}
	s.logger.Info("game ended", "roomCode", s.room.Code)
}

// Close tears the session down on server shutdown
func (s *RoomSession) Close(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.timer.Stop()
	s.countdown.Stop()
	s.broadcastLocked(domain.NewEvent(domain.EventRoomClosed, domain.RoomClosedPayload{Message: message}))
	for _, client := range s.clients {
		client.Close()
	}
	s.clients = make(map[string]ClientConnection)
}

// startPhaseTimerLocked broadcasts the initial remaining time and arms the
// phase countdown. The expiry handler runs under the session lock only if
// the timer generation is still live; it must also re-check the phase it
// was scheduled for, since a player action may have advanced the game.
func (s *RoomSession) startPhaseTimerLocked(onExpire func()) {
	seconds := s.cfg.PhaseSeconds
	phase := s.game.Phase
	s.broadcastLocked(domain.NewEvent(domain.EventPhaseTimer, domain.PhaseTimerPayload{
		Phase:       phase,
		SecondsLeft: seconds,
	}))
	s.timer.Start(seconds,
		func(gen, left int) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.closed || !s.timer.IsCurrent(gen) || s.game == nil {
				return
			}
			s.broadcastLocked(domain.NewEvent(domain.EventPhaseTimer, domain.PhaseTimerPayload{
				Phase:       s.game.Phase,
				SecondsLeft: left,
			}))
		},
		func(gen int) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.closed || !s.timer.IsCurrent(gen) || s.game == nil {
				return
			}
			onExpire()
		})
}

// schedule runs fn under the session lock after the delay, unless the
// session has been torn down in the meantime
func (s *RoomSession) schedule(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		fn()
	})
}

// rosterIndexLocked returns the player's position in join order
func (s *RoomSession) rosterIndexLocked(name string) int {
	for i, p := range s.room.Players {
		if p.Name == name {
			return i
		}
	}
	return 0
}

// broadcastRosterLocked pushes a roster snapshot to the whole room
func (s *RoomSession) broadcastRosterLocked() {
	s.broadcastLocked(domain.NewEvent(domain.EventPlayersUpdate, domain.PlayersUpdatePayload{
		Players: s.room.Players,
		HostID:  s.room.HostID,
	}))
}

// broadcastLocked sends an event to every connected client in the room
func (s *RoomSession) broadcastLocked(ev *domain.GameEvent) {
	for connID, client := range s.clients {
		if err := client.Send(ev); err != nil {
			s.logger.Debug("failed to send to client", "connID", connID, "error", err)
		}
	}
}

// sendToLocked sends an event to one connection, silently skipping
// disconnected players
func (s *RoomSession) sendToLocked(connID string, ev *domain.GameEvent) {
	if ev == nil {
		return
	}
	client, ok := s.clients[connID]
	if !ok {
		return
	}
	if err := client.Send(ev); err != nil {
		s.logger.Debug("failed to send to client", "connID", connID, "error", err)
	}
}
