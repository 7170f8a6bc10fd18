package models

import "strings"

// satireSubreddit is the subreddit whose posts are labeled as satire;
// everything else in the dataset is real news.
const satireSubreddit = "theonion"

// SubmissionRecord is one scraped reddit post as stored in the dataset.
// The json tags define the dataset format shared between the gatherer and
// the server.
type SubmissionRecord struct {
	Subreddit       string  `json:"subreddit"`
	SubredditID     string  `json:"subreddit_id"`
	ID              string  `json:"id"`
	Permalink       string  `json:"permalink"`
	Created         uint64  `json:"created"`
	CreatedUTC      uint64  `json:"created_utc"`
	URL             string  `json:"url"`
	Title           string  `json:"title"`
	Score           int64   `json:"score"`
	Downs           uint64  `json:"downs"`
	Ups             uint64  `json:"ups"`
	Over18          bool    `json:"over_18"`
	Thumbnail       string  `json:"thumbnail"`
	PreviewImageURL *string `json:"preview_image_url"`
}

// Answer derives the ground-truth label from the subreddit the post was
// scraped from.
func (s *SubmissionRecord) Answer() Answer {
	if strings.EqualFold(s.Subreddit, satireSubreddit) {
		return AnswerTheOnion
	}
	return AnswerNotTheOnion
}

// QuestionRecord converts the submission into its game-facing form.
func (s *SubmissionRecord) QuestionRecord() QuestionRecord {
	return QuestionRecord{
		Title:           s.Title,
		URL:             s.URL,
		PreviewImageURL: s.PreviewImageURL,
		Score:           s.Score,
		Answer:          s.Answer(),
	}
}
