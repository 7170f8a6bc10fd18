package models

import (
	"time"
)

// GamePhase represents the top-level state of a game
type GamePhase string

const (
	// PhaseInLobby indicates players are gathering and no round has started
	PhaseInLobby GamePhase = "in_lobby"

	// PhasePlaying indicates a round is in progress
	PhasePlaying GamePhase = "playing"

	// PhaseAftermath indicates the round is over and standings are shown
	PhaseAftermath GamePhase = "aftermath"
)

// PlayingStage is the sub-state of an in-progress round
type PlayingStage string

const (
	// StageQuestion indicates players are answering the current question
	StageQuestion PlayingStage = "question"

	// StageSolution indicates the answer is revealed and players may skip
	// ahead
	StageSolution PlayingStage = "solution"
)

// GameConfiguration holds the immutable parameters a lobby was created
// with.
type GameConfiguration struct {
	// CountOfQuestions is the number of questions per round. It is
	// resolved to a concrete value at room creation.
	CountOfQuestions uint64

	// MinimumScore, when set, restricts sampling to posts with at least
	// this score
	MinimumScore *int64

	// MaximumAnswerTime, when set, limits how many seconds players have
	// per question; nil means untimed
	MaximumAnswerTime *uint64
}

// PlayingState is the mutable state of an in-progress round.
type PlayingState struct {
	// PreviousQuestions lists finished questions in play order
	PreviousQuestions []QuestionRound

	// CurrentQuestion is the question being played
	CurrentQuestion AnsweredQuestion

	// Stage is whether the question is open or its solution is shown
	Stage PlayingStage

	// Deadline is when the current stage times out; nil only for untimed
	// question stages
	Deadline *time.Time

	// Answers maps players to their pick for the current question. During
	// the solution stage this is the frozen result of the question stage.
	Answers map[PlayerID]Answer

	// SkipRequests holds players who asked to move on from the solution
	SkipRequests map[PlayerID]struct{}
}

// AftermathState is the terminal state of a finished round.
type AftermathState struct {
	// RankedPlayers is the point-in-time standing captured at round end;
	// watchers are never included
	RankedPlayers []RankedPlayer

	// RestartRequests holds players who voted to play another round
	RestartRequests map[PlayerID]struct{}
}

// GameState is the room's primary state machine value. Exactly one phase
// payload is non-nil, matching Phase.
type GameState struct {
	Phase     GamePhase
	Playing   *PlayingState
	Aftermath *AftermathState
}

// Game is the aggregate a room owns: configuration, state machine and
// roster.
type Game struct {
	Configuration GameConfiguration
	State         GameState
	Players       []Player
}

// NewGame returns a game in the lobby phase with no players.
func NewGame(cfg GameConfiguration) *Game {
	return &Game{
		Configuration: cfg,
		State:         GameState{Phase: PhaseInLobby},
	}
}

// PlayerByID returns the roster entry for the id, or nil.
func (g *Game) PlayerByID(id PlayerID) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// CountPlaying returns the number of non-watcher participants.
func (g *Game) CountPlaying() int {
	count := 0
	for i := range g.Players {
		if !g.Players[i].IsWatcher() {
			count++
		}
	}
	return count
}

// Clone returns a deep copy. Broadcasts carry clones so connection tasks
// never alias the room's live state.
func (g *Game) Clone() *Game {
	cloned := &Game{
		Configuration: g.Configuration,
		State:         GameState{Phase: g.State.Phase},
		Players:       make([]Player, len(g.Players)),
	}
	copy(cloned.Players, g.Players)

	if g.State.Playing != nil {
		playing := &PlayingState{
			PreviousQuestions: make([]QuestionRound, len(g.State.Playing.PreviousQuestions)),
			CurrentQuestion:   g.State.Playing.CurrentQuestion,
			Stage:             g.State.Playing.Stage,
			Answers:           cloneAnswerMap(g.State.Playing.Answers),
			SkipRequests:      clonePlayerSet(g.State.Playing.SkipRequests),
		}
		for i, round := range g.State.Playing.PreviousQuestions {
			playing.PreviousQuestions[i] = QuestionRound{
				Question: round.Question,
				Answers:  cloneAnswerMap(round.Answers),
			}
		}
		if g.State.Playing.Deadline != nil {
			deadline := *g.State.Playing.Deadline
			playing.Deadline = &deadline
		}
		cloned.State.Playing = playing
	}

	if g.State.Aftermath != nil {
		aftermath := &AftermathState{
			RankedPlayers:   make([]RankedPlayer, len(g.State.Aftermath.RankedPlayers)),
			RestartRequests: clonePlayerSet(g.State.Aftermath.RestartRequests),
		}
		copy(aftermath.RankedPlayers, g.State.Aftermath.RankedPlayers)
		cloned.State.Aftermath = aftermath
	}

	return cloned
}

func cloneAnswerMap(answers map[PlayerID]Answer) map[PlayerID]Answer {
	if answers == nil {
		return nil
	}
	cloned := make(map[PlayerID]Answer, len(answers))
	for id, answer := range answers {
		cloned[id] = answer
	}
	return cloned
}

func clonePlayerSet(set map[PlayerID]struct{}) map[PlayerID]struct{} {
	if set == nil {
		return nil
	}
	cloned := make(map[PlayerID]struct{}, len(set))
	for id := range set {
		cloned[id] = struct{}{}
	}
	return cloned
}
