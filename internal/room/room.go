package room

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"onionornot/internal/common/clock"
	"onionornot/internal/models"
)

const (
	// solutionDuration is how long the solution stage lasts before the
	// round moves on without waiting for skips
	solutionDuration = 30 * time.Second

	// pointsPerCorrectAnswer is the base award for a correct answer
	pointsPerCorrectAnswer = 10

	// minorityBonus is the extra award when the correct answerers are
	// strictly fewer than half of the players
	minorityBonus = 5

	mailboxSize = 1024
)

// QuestionBank is the read-only question oracle a room consults. The
// in-memory bank implements it; tests substitute a fake.
type QuestionBank interface {
	Get(id models.QuestionID) (models.QuestionRecord, bool)
	SampleExcluding(minScore *int64, exclude map[models.QuestionID]struct{}) (models.QuestionID, error)
}

// Config holds configuration for a room
type Config struct {
	// InviteCode is the code the room was created under
	InviteCode models.InviteCode

	// GameConfig holds the resolved lobby parameters
	GameConfig models.GameConfiguration

	// Bank is the question oracle
	Bank QuestionBank

	// Clock supplies the time for deadline checks
	Clock clock.Clock

	// Logger is the parent logger; the room tags it with its invite code
	Logger zerolog.Logger

	// OnClose is called from the room's own loop when the last player
	// leaves, before the loop stops
	OnClose func(models.InviteCode)
}

// Room is the per-lobby actor. A single goroutine owns the game state and
// applies mailbox events one at a time, so the transition logic needs no
// locks.
type Room struct {
	inviteCode models.InviteCode
	game       *models.Game
	bank       QuestionBank
	clock      clock.Clock
	logger     zerolog.Logger
	onClose    func(models.InviteCode)

	mailbox chan Event
	done    chan struct{}

	// replyTo holds each registered connection's outbound channel. Only
	// the room goroutine touches it.
	replyTo map[models.PlayerID]chan<- Outbound
}

// New creates a room in the lobby phase with no players. The caller must
// start the event loop with Run and then send the creator's
// RegisterEvent.
func New(cfg *Config) (*Room, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Bank == nil {
		return nil, errors.New("question bank cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}
	if cfg.OnClose == nil {
		return nil, errors.New("on-close callback cannot be nil")
	}

	return &Room{
		inviteCode: cfg.InviteCode,
		game:       models.NewGame(cfg.GameConfig),
		bank:       cfg.Bank,
		clock:      cfg.Clock,
		logger:     cfg.Logger.With().Str("invite_code", string(cfg.InviteCode)).Logger(),
		onClose:    cfg.OnClose,
		mailbox:    make(chan Event, mailboxSize),
		done:       make(chan struct{}),
		replyTo:    make(map[models.PlayerID]chan<- Outbound),
	}, nil
}

// InviteCode returns the code the room was created under.
func (r *Room) InviteCode() models.InviteCode {
	return r.inviteCode
}

// Send delivers an event to the room's mailbox. It returns false once the
// room has terminated.
func (r *Room) Send(ev Event) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.mailbox <- ev:
		return true
	case <-r.done:
		return false
	}
}

// Done is closed when the room's loop has stopped.
func (r *Room) Done() <-chan struct{} {
	return r.done
}

// Run consumes the mailbox until the last player disconnects. It must run
// in its own goroutine; all state mutation happens here.
func (r *Room) Run() {
	defer close(r.done)
	for {
		if exit := r.handleEvent(<-r.mailbox); exit {
			r.onClose(r.inviteCode)
			r.logger.Info().Msg("room closed")
			return
		}
	}
}

func (r *Room) handleEvent(ev Event) (exit bool) {
	switch ev := ev.(type) {
	case RegisterEvent:
		r.handleRegister(ev)
	case DisconnectEvent:
		return r.handleDisconnect(ev)
	case ActionEvent:
		r.handleAction(ev)
	case TickEvent:
		if r.runTransitionCheck() {
			r.broadcast()
		}
	}
	return false
}

func (r *Room) handleRegister(ev RegisterEvent) {
	name, err := models.NewPlayerName(ev.Name)
	if err != nil {
		// Validated at the HTTP boundary; reaching this is a client bug.
		r.logger.Warn().Str("player_id", string(ev.PlayerID)).Msg("register with empty name dropped")
		return
	}

	for i := range r.game.Players {
		if r.game.Players[i].Name == name && r.game.Players[i].ID != ev.PlayerID {
			r.send(ev.ReplyTo, Outbound{Kind: OutboundPlayerNameAlreadyInUse})
			return
		}
	}

	// Re-registration with the same id replaces the old entry.
	r.removePlayer(ev.PlayerID)

	playType := models.PlayTypePlayer
	if ev.JustWatch {
		playType = models.PlayTypeWatcher
	}
	r.game.Players = append(r.game.Players, models.Player{
		ID:       ev.PlayerID,
		Name:     name,
		PlayType: playType,
	})
	r.replyTo[ev.PlayerID] = ev.ReplyTo

	ack := OutboundLobbyJoined
	if ev.Role == RoleCreator {
		ack = OutboundLobbyCreated
	}
	r.send(ev.ReplyTo, Outbound{Kind: ack, Game: r.game.Clone()})
	r.broadcast()

	r.logger.Info().
		Str("player_id", string(ev.PlayerID)).
		Str("player_name", string(name)).
		Bool("just_watch", ev.JustWatch).
		Msg("player registered")
}

func (r *Room) handleDisconnect(ev DisconnectEvent) (exit bool) {
	if !r.removePlayer(ev.PlayerID) {
		return false
	}
	delete(r.replyTo, ev.PlayerID)

	r.logger.Info().Str("player_id", string(ev.PlayerID)).Msg("player disconnected")

	if len(r.game.Players) == 0 {
		return true
	}

	// Losing a player can complete a quorum, so re-check immediately
	// instead of waiting for the next tick.
	r.runTransitionCheck()
	r.broadcast()
	return false
}

func (r *Room) handleAction(ev ActionEvent) {
	switch ev.Kind {
	case ActionRequestFullUpdate:
		r.send(ev.ReplyTo, Outbound{Kind: OutboundGameFullUpdate, Game: r.game.Clone()})

	case ActionStartGame:
		if r.game.State.Phase != models.PhaseInLobby {
			r.logOutOfPhase(ev)
			return
		}
		if r.startRound() {
			r.broadcast()
		}

	case ActionChooseAnswer:
		r.handleChooseAnswer(ev)

	case ActionRequestSkip:
		playing := r.game.State.Playing
		if playing == nil || playing.Stage != models.StageSolution {
			r.logOutOfPhase(ev)
			return
		}
		if !r.isPlaying(ev.PlayerID) {
			return
		}
		playing.SkipRequests[ev.PlayerID] = struct{}{}
		r.runTransitionCheck()
		r.broadcast()

	case ActionRequestPlayAgain:
		aftermath := r.game.State.Aftermath
		if aftermath == nil {
			r.logOutOfPhase(ev)
			return
		}
		if !r.isPlaying(ev.PlayerID) {
			return
		}
		aftermath.RestartRequests[ev.PlayerID] = struct{}{}
		r.runTransitionCheck()
		r.broadcast()
	}
}

func (r *Room) handleChooseAnswer(ev ActionEvent) {
	playing := r.game.State.Playing
	if playing == nil || playing.Stage != models.StageQuestion {
		r.logOutOfPhase(ev)
		return
	}
	if playing.Deadline != nil && !r.clock.Now().Before(*playing.Deadline) {
		r.send(ev.ReplyTo, Outbound{Kind: OutboundAnswerNotInTimeLimit})
		return
	}
	if !r.isPlaying(ev.PlayerID) {
		return
	}
	if !ev.Answer.Valid() {
		r.logger.Warn().Str("player_id", string(ev.PlayerID)).Msg("invalid answer dropped")
		return
	}

	playing.Answers[ev.PlayerID] = ev.Answer
	r.runTransitionCheck()
	r.broadcast()
}

// isPlaying reports whether the id belongs to a registered non-watcher.
// Actions from watchers and unknown ids are silently ignored, which keeps
// the answer, skip and restart sets subsets of non-watcher ids.
func (r *Room) isPlaying(id models.PlayerID) bool {
	player := r.game.PlayerByID(id)
	return player != nil && !player.IsWatcher()
}

func (r *Room) removePlayer(id models.PlayerID) bool {
	for i := range r.game.Players {
		if r.game.Players[i].ID == id {
			r.game.Players = append(r.game.Players[:i], r.game.Players[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Room) logOutOfPhase(ev ActionEvent) {
	// Expected race between the network and the state machine, not an
	// error the client needs to see.
	r.logger.Debug().
		Str("player_id", string(ev.PlayerID)).
		Str("action", string(ev.Kind)).
		Str("phase", string(r.game.State.Phase)).
		Msg("action ignored: wrong phase")
}

func (r *Room) send(ch chan<- Outbound, out Outbound) {
	if ch == nil {
		return
	}
	select {
	case ch <- out:
	default:
		r.logger.Warn().Msg("outbound message dropped: slow consumer")
	}
}

// broadcast sends a full-update with a fresh clone to every registered
// connection, in roster order.
func (r *Room) broadcast() {
	out := Outbound{Kind: OutboundGameFullUpdate, Game: r.game.Clone()}
	for i := range r.game.Players {
		r.send(r.replyTo[r.game.Players[i].ID], out)
	}
}
