package models

// QuestionID is the process-scoped identifier of one question in the
// loaded dataset. Ids are assigned when the dataset is loaded and are not
// stable across restarts.
type QuestionID string

// QuestionRecord is the game-facing view of one dataset entry.
type QuestionRecord struct {
	// Title is the headline shown to players
	Title string

	// URL links to the original post
	URL string

	// PreviewImageURL links to a preview image, when the post has one
	PreviewImageURL *string

	// Score is the vote score the post had when it was scraped
	Score int64

	// Answer is the ground-truth label of the headline
	Answer Answer
}

// AnsweredQuestion pairs a question with its ground-truth label, resolved
// once when the question is drawn so later lookups during the round are
// deterministic.
type AnsweredQuestion struct {
	// QuestionID identifies the question in the bank
	QuestionID QuestionID

	// Answer is the cached ground-truth label
	Answer Answer
}

// QuestionRound is one finished question together with the answers the
// players gave to it.
type QuestionRound struct {
	// Question is the question that was asked
	Question AnsweredQuestion

	// Answers maps each answering player to their pick
	Answers map[PlayerID]Answer
}

// QuestionSource resolves question ids to their records. The in-memory
// bank implements it; tests substitute a fake.
type QuestionSource interface {
	Get(id QuestionID) (QuestionRecord, bool)
}
