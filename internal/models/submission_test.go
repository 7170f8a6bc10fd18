package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionRecord_Answer(t *testing.T) {
	satire := SubmissionRecord{Subreddit: "TheOnion"}
	assert.Equal(t, AnswerTheOnion, satire.Answer())

	real := SubmissionRecord{Subreddit: "nottheonion"}
	assert.Equal(t, AnswerNotTheOnion, real.Answer())
}

func TestSubmissionRecord_QuestionRecord(t *testing.T) {
	preview := "https://example.com/preview.jpg"
	record := SubmissionRecord{
		Subreddit:       "theonion",
		Title:           "Local Man Does Thing",
		URL:             "https://example.com/post",
		Score:           1234,
		PreviewImageURL: &preview,
	}

	question := record.QuestionRecord()

	assert.Equal(t, "Local Man Does Thing", question.Title)
	assert.Equal(t, "https://example.com/post", question.URL)
	assert.Equal(t, int64(1234), question.Score)
	assert.Equal(t, AnswerTheOnion, question.Answer)
	assert.Equal(t, &preview, question.PreviewImageURL)
}
