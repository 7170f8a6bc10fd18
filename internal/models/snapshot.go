package models

import (
	"sort"
	"time"
)

// GameSnapshot is the complete, self-contained view of a game sent to one
// player. Every broadcast carries a full snapshot, never a delta.
type GameSnapshot struct {
	InviteCode    InviteCode            `json:"invite_code"`
	Configuration ConfigurationSnapshot `json:"configuration"`
	GameState     GameStateSnapshot     `json:"game_state"`
	Players       []PlayerSnapshot      `json:"players"`
	ThisPlayerID  PlayerID              `json:"this_player_id"`
}

// ConfigurationSnapshot is the wire form of a game's configuration.
type ConfigurationSnapshot struct {
	CountOfQuestions  uint64  `json:"count_of_questions"`
	MinimumScore      *int64  `json:"minimum_score_per_question,omitempty"`
	MaximumAnswerTime *uint64 `json:"maximum_answer_time_per_question,omitempty"`
}

// PlayerSnapshot is the wire form of one roster entry.
type PlayerSnapshot struct {
	ID       PlayerID   `json:"id"`
	Name     PlayerName `json:"name"`
	PlayType PlayType   `json:"play_type"`
	Points   uint16     `json:"points"`
}

// QuestionSnapshot is the player-facing part of a question. It carries no
// label; the ground truth travels separately and only once the solution
// stage is reached.
type QuestionSnapshot struct {
	Title           string  `json:"title"`
	URL             string  `json:"url"`
	PreviewImageURL *string `json:"preview_image_url,omitempty"`
}

// GameStateSnapshot is the wire form of the state machine. Exactly one of
// the payload fields is set, matching Phase.
type GameStateSnapshot struct {
	Phase     GamePhase          `json:"phase"`
	Playing   *PlayingSnapshot   `json:"playing,omitempty"`
	Aftermath *AftermathSnapshot `json:"aftermath,omitempty"`
}

// PlayingSnapshot is the wire form of an in-progress round as seen by one
// player. During the question stage other players' picks are hidden: only
// the ids of players who have answered plus the receiver's own pick are
// included. The full answer map and the correct label appear in the
// solution stage.
type PlayingSnapshot struct {
	QuestionNumber  uint64              `json:"question_number"`
	CurrentQuestion QuestionSnapshot    `json:"current_question"`
	Stage           PlayingStage        `json:"stage"`
	Deadline        *time.Time          `json:"deadline,omitempty"`
	AnsweredBy      []PlayerID          `json:"answered_by,omitempty"`
	OwnAnswer       *Answer             `json:"own_answer,omitempty"`
	CorrectAnswer   *Answer             `json:"correct_answer,omitempty"`
	Answers         map[PlayerID]Answer `json:"answers,omitempty"`
	SkipRequests    []PlayerID          `json:"skip_requests,omitempty"`
}

// AftermathSnapshot is the wire form of a finished round.
type AftermathSnapshot struct {
	RankedPlayers   []RankedPlayer `json:"ranked_players"`
	RestartRequests []PlayerID     `json:"restart_requests"`
}

// Snapshot renders the game for the given receiving player, resolving
// question ids through src.
func (g *Game) Snapshot(code InviteCode, this PlayerID, src QuestionSource) *GameSnapshot {
	snapshot := &GameSnapshot{
		InviteCode: code,
		Configuration: ConfigurationSnapshot{
			CountOfQuestions:  g.Configuration.CountOfQuestions,
			MinimumScore:      g.Configuration.MinimumScore,
			MaximumAnswerTime: g.Configuration.MaximumAnswerTime,
		},
		GameState:    GameStateSnapshot{Phase: g.State.Phase},
		Players:      make([]PlayerSnapshot, len(g.Players)),
		ThisPlayerID: this,
	}

	for i := range g.Players {
		snapshot.Players[i] = PlayerSnapshot{
			ID:       g.Players[i].ID,
			Name:     g.Players[i].Name,
			PlayType: g.Players[i].PlayType,
			Points:   g.Players[i].Points,
		}
	}

	if g.State.Playing != nil {
		snapshot.GameState.Playing = g.State.Playing.snapshot(this, src)
	}

	if g.State.Aftermath != nil {
		snapshot.GameState.Aftermath = &AftermathSnapshot{
			RankedPlayers:   append([]RankedPlayer(nil), g.State.Aftermath.RankedPlayers...),
			RestartRequests: sortedPlayerIDs(g.State.Aftermath.RestartRequests),
		}
	}

	return snapshot
}

func (p *PlayingState) snapshot(this PlayerID, src QuestionSource) *PlayingSnapshot {
	playing := &PlayingSnapshot{
		QuestionNumber:  uint64(len(p.PreviousQuestions)) + 1,
		CurrentQuestion: questionSnapshot(p.CurrentQuestion.QuestionID, src),
		Stage:           p.Stage,
	}
	if p.Deadline != nil {
		deadline := *p.Deadline
		playing.Deadline = &deadline
	}

	switch p.Stage {
	case StageQuestion:
		playing.AnsweredBy = sortedAnswerKeys(p.Answers)
		if answer, ok := p.Answers[this]; ok {
			playing.OwnAnswer = &answer
		}
	case StageSolution:
		correct := p.CurrentQuestion.Answer
		playing.CorrectAnswer = &correct
		playing.Answers = cloneAnswerMap(p.Answers)
		playing.SkipRequests = sortedPlayerIDs(p.SkipRequests)
	}

	return playing
}

func questionSnapshot(id QuestionID, src QuestionSource) QuestionSnapshot {
	record, ok := src.Get(id)
	if !ok {
		// Should not happen: the id was sampled from the same bank.
		return QuestionSnapshot{}
	}
	return QuestionSnapshot{
		Title:           record.Title,
		URL:             record.URL,
		PreviewImageURL: record.PreviewImageURL,
	}
}

func sortedAnswerKeys(answers map[PlayerID]Answer) []PlayerID {
	ids := make([]PlayerID, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedPlayerIDs(set map[PlayerID]struct{}) []PlayerID {
	ids := make([]PlayerID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
