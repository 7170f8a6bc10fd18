package questions

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"onionornot/internal/models"
)

type BankTestSuite struct {
	suite.Suite
	bank *Bank
}

func (s *BankTestSuite) SetupTest() {
	bank, err := New(&Config{
		Records: []models.SubmissionRecord{
			{ID: "r1", Subreddit: "theonion", Title: "Satire One", Score: 100},
			{ID: "r2", Subreddit: "nottheonion", Title: "Real One", Score: 500},
			{ID: "r3", Subreddit: "theonion", Title: "Satire Two", Score: 100},
		},
		Seed: 42,
	})
	s.Require().NoError(err)
	s.bank = bank
}

func TestBankTestSuite(t *testing.T) {
	suite.Run(t, new(BankTestSuite))
}

func (s *BankTestSuite) TestNew_RequiresConfig() {
	_, err := New(nil)
	s.Error(err)
}

func (s *BankTestSuite) TestSize() {
	s.Equal(3, s.bank.Size())
}

func (s *BankTestSuite) TestGet() {
	id, err := s.bank.SampleExcluding(nil, nil)
	s.Require().NoError(err)

	record, ok := s.bank.Get(id)
	s.True(ok)
	s.NotEmpty(record.Title)

	_, ok = s.bank.Get("missing")
	s.False(ok)
}

func (s *BankTestSuite) TestSampleExcluding_SkipsExcluded() {
	exclude := make(map[models.QuestionID]struct{})

	// Excluding every drawn id must eventually exhaust the bank.
	for i := 0; i < s.bank.Size(); i++ {
		id, err := s.bank.SampleExcluding(nil, exclude)
		s.Require().NoError(err)
		_, seen := exclude[id]
		s.False(seen)
		exclude[id] = struct{}{}
	}

	_, err := s.bank.SampleExcluding(nil, exclude)
	s.ErrorIs(err, ErrNoQuestionAvailable)
}

func (s *BankTestSuite) TestSampleExcluding_RespectsScoreFloor() {
	minScore := int64(200)

	for i := 0; i < 10; i++ {
		id, err := s.bank.SampleExcluding(&minScore, nil)
		s.Require().NoError(err)
		record, ok := s.bank.Get(id)
		s.Require().True(ok)
		s.Equal("Real One", record.Title)
	}
}

func (s *BankTestSuite) TestSampleExcluding_FloorAboveEverything() {
	minScore := int64(1000)
	_, err := s.bank.SampleExcluding(&minScore, nil)
	s.ErrorIs(err, ErrNoQuestionAvailable)
}

func (s *BankTestSuite) TestCountMeetingThreshold() {
	s.Equal(3, s.bank.CountMeetingThreshold(nil))

	minScore := int64(100)
	s.Equal(3, s.bank.CountMeetingThreshold(&minScore))

	minScore = 101
	s.Equal(1, s.bank.CountMeetingThreshold(&minScore))

	minScore = 501
	s.Equal(0, s.bank.CountMeetingThreshold(&minScore))
}

func (s *BankTestSuite) TestScoreHistogram() {
	histogram := s.bank.ScoreHistogram()
	s.Equal(2, histogram[100])
	s.Equal(1, histogram[500])
}
