package models

// Answer is a player's classification of a headline: either it was
// published by the satirical newspaper, or it is a real news story.
type Answer string

const (
	// AnswerTheOnion marks a headline as satire
	AnswerTheOnion Answer = "the_onion"

	// AnswerNotTheOnion marks a headline as real news
	AnswerNotTheOnion Answer = "not_the_onion"
)

// Valid reports whether the answer is one of the two known variants.
func (a Answer) Valid() bool {
	return a == AnswerTheOnion || a == AnswerNotTheOnion
}
