package room

import (
	"time"

	"onionornot/internal/models"
)

// runTransitionCheck re-runs whichever completion check applies to the
// current phase. It returns true when a transition fired.
func (r *Room) runTransitionCheck() bool {
	switch {
	case r.game.State.Playing != nil && r.game.State.Playing.Stage == models.StageQuestion:
		return r.checkQuestionCompletion()
	case r.game.State.Playing != nil && r.game.State.Playing.Stage == models.StageSolution:
		return r.checkSolutionCompletion()
	case r.game.State.Aftermath != nil:
		return r.checkRestartQuorum()
	default:
		return false
	}
}

// startRound samples a first question and enters the question stage,
// discarding any previous round. Used by StartGame and by the restart
// quorum.
func (r *Room) startRound() bool {
	question, ok := r.drawQuestion(nil)
	if !ok {
		return false
	}

	r.game.State = models.GameState{
		Phase: models.PhasePlaying,
		Playing: &models.PlayingState{
			PreviousQuestions: []models.QuestionRound{},
			CurrentQuestion:   question,
			Stage:             models.StageQuestion,
			Deadline:          r.questionDeadline(),
			Answers:           make(map[models.PlayerID]models.Answer),
		},
	}
	return true
}

// drawQuestion samples a question outside the exclusion set and resolves
// its ground truth once. Sampler exhaustion should be unreachable because
// the question count is bounded by the qualifying set at room creation,
// so it is logged loudly.
func (r *Room) drawQuestion(exclude map[models.QuestionID]struct{}) (models.AnsweredQuestion, bool) {
	id, err := r.bank.SampleExcluding(r.game.Configuration.MinimumScore, exclude)
	if err != nil {
		r.logger.Error().Err(err).Msg("question sampling failed; qualifying set exhausted")
		return models.AnsweredQuestion{}, false
	}
	record, ok := r.bank.Get(id)
	if !ok {
		r.logger.Error().Str("question_id", string(id)).Msg("sampled question missing from bank")
		return models.AnsweredQuestion{}, false
	}
	return models.AnsweredQuestion{QuestionID: id, Answer: record.Answer}, true
}

func (r *Room) questionDeadline() *time.Time {
	if r.game.Configuration.MaximumAnswerTime == nil {
		return nil
	}
	deadline := r.clock.Now().Add(time.Duration(*r.game.Configuration.MaximumAnswerTime) * time.Second)
	return &deadline
}

// checkQuestionCompletion fires the question->solution transition when
// there is no one left to wait for: no players at all, every player has
// answered, or the deadline has passed.
func (r *Room) checkQuestionCompletion() bool {
	playing := r.game.State.Playing
	playerCount := r.game.CountPlaying()

	allAnswered := true
	for i := range r.game.Players {
		if r.game.Players[i].IsWatcher() {
			continue
		}
		if _, ok := playing.Answers[r.game.Players[i].ID]; !ok {
			allAnswered = false
			break
		}
	}

	deadlinePassed := playing.Deadline != nil && !r.clock.Now().Before(*playing.Deadline)

	if playerCount != 0 && !allAnswered && !deadlinePassed {
		return false
	}

	r.scoreAnswers()

	solutionDeadline := r.clock.Now().Add(solutionDuration)
	playing.Stage = models.StageSolution
	playing.Deadline = &solutionDeadline
	playing.SkipRequests = make(map[models.PlayerID]struct{})
	return true
}

// scoreAnswers awards points for the current question: +10 per correct
// answer, +5 more each when the correct answerers are strictly fewer than
// half of the players. A tie at exactly half gets no bonus.
func (r *Room) scoreAnswers() {
	playing := r.game.State.Playing
	truth := playing.CurrentQuestion.Answer

	correct := 0
	for i := range r.game.Players {
		if r.game.Players[i].IsWatcher() {
			continue
		}
		if playing.Answers[r.game.Players[i].ID] == truth {
			correct++
		}
	}

	minority := correct*2 < r.game.CountPlaying()

	for i := range r.game.Players {
		player := &r.game.Players[i]
		if player.IsWatcher() {
			continue
		}
		if playing.Answers[player.ID] == truth {
			player.Points += pointsPerCorrectAnswer
			if minority {
				player.Points += minorityBonus
			}
		}
	}
}

// checkSolutionCompletion fires the solution->next transition when every
// player has skipped or the solution deadline has passed, moving to the
// next question or into the aftermath.
func (r *Room) checkSolutionCompletion() bool {
	playing := r.game.State.Playing

	allSkipped := true
	for i := range r.game.Players {
		if r.game.Players[i].IsWatcher() {
			continue
		}
		if _, ok := playing.SkipRequests[r.game.Players[i].ID]; !ok {
			allSkipped = false
			break
		}
	}

	deadlinePassed := playing.Deadline != nil && !r.clock.Now().Before(*playing.Deadline)

	if !allSkipped && !deadlinePassed {
		return false
	}

	playing.PreviousQuestions = append(playing.PreviousQuestions, models.QuestionRound{
		Question: playing.CurrentQuestion,
		Answers:  playing.Answers,
	})

	if uint64(len(playing.PreviousQuestions)) < r.game.Configuration.CountOfQuestions {
		exclude := make(map[models.QuestionID]struct{}, len(playing.PreviousQuestions))
		for i := range playing.PreviousQuestions {
			exclude[playing.PreviousQuestions[i].Question.QuestionID] = struct{}{}
		}
		if question, ok := r.drawQuestion(exclude); ok {
			playing.CurrentQuestion = question
			playing.Stage = models.StageQuestion
			playing.Deadline = r.questionDeadline()
			playing.Answers = make(map[models.PlayerID]models.Answer)
			playing.SkipRequests = nil
			return true
		}
		// Sampling failed mid-round; end the round early rather than
		// wedging the room.
	}

	r.game.State = models.GameState{
		Phase: models.PhaseAftermath,
		Aftermath: &models.AftermathState{
			RankedPlayers:   models.RankPlayers(r.game.Players),
			RestartRequests: make(map[models.PlayerID]struct{}),
		},
	}
	return true
}

// checkRestartQuorum starts a fresh round once at least half of the
// players have requested one (ties round in favor of restarting).
func (r *Room) checkRestartQuorum() bool {
	aftermath := r.game.State.Aftermath
	playerCount := r.game.CountPlaying()
	if playerCount == 0 {
		return false
	}

	requests := 0
	for i := range r.game.Players {
		if r.game.Players[i].IsWatcher() {
			continue
		}
		if _, ok := aftermath.RestartRequests[r.game.Players[i].ID]; ok {
			requests++
		}
	}

	if requests*2 < playerCount {
		return false
	}

	// Reset scores for the new round before discarding the aftermath.
	for i := range r.game.Players {
		r.game.Players[i].Points = 0
	}

	return r.startRound()
}
