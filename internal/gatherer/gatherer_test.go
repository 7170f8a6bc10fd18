package gatherer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"onionornot/internal/repositories/submission"
	"onionornot/internal/repositories/submission/mocks"
)

type GathererTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockRepo *mocks.MockRepository
	ctx      context.Context
}

func (s *GathererTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = mocks.NewMockRepository(s.mockCtrl)
	s.ctx = context.Background()
}

func (s *GathererTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestGathererTestSuite(t *testing.T) {
	suite.Run(t, new(GathererTestSuite))
}

func (s *GathererTestSuite) newGatherer(baseURL string) *Gatherer {
	svc, err := New(&Config{
		Repository:      s.mockRepo,
		BaseURL:         baseURL,
		AmountPerFetch:  2,
		RequestInterval: time.Millisecond,
		Logger:          zerolog.Nop(),
	})
	s.Require().NoError(err)
	return svc
}

func listingPage(after string, titles ...string) string {
	children := ""
	for i, title := range titles {
		if i > 0 {
			children += ","
		}
		children += fmt.Sprintf(`{"data":{
			"subreddit":"theonion",
			"id":"id-%s",
			"permalink":"/r/theonion/%s",
			"created":1700000000,
			"created_utc":1700000000,
			"url":"https://example.com/%s",
			"title":"%s",
			"score":100,
			"ups":120,
			"downs":20,
			"over_18":false,
			"thumbnail":"default",
			"preview":{"images":[{"source":{"url":"https://example.com/%s.jpg"}}]}
		}}`, title, title, title, title, title)
	}
	afterJSON := "null"
	if after != "" {
		afterJSON = fmt.Sprintf("%q", after)
	}
	return fmt.Sprintf(`{"data":{"after":%s,"children":[%s]}}`, afterJSON, children)
}

func (s *GathererTestSuite) TestGather_WalksPages() {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		s.Equal("/r/theonion/hot.json", r.URL.Path)
		s.Equal("2", r.URL.Query().Get("limit"))
		s.Equal("GLOBAL", r.URL.Query().Get("g"))

		switch r.URL.Query().Get("after") {
		case "":
			fmt.Fprint(w, listingPage("t3_anchor", "first", "second"))
		case "t3_anchor":
			fmt.Fprint(w, listingPage("", "third"))
		default:
			s.FailNow("unexpected after parameter")
		}
	}))
	defer server.Close()

	var saved *submission.SaveSubmissionsInput
	s.mockRepo.EXPECT().
		SaveSubmissions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *submission.SaveSubmissionsInput) error {
			saved = input
			return nil
		})

	output, err := s.newGatherer(server.URL).Gather(s.ctx, &GatherInput{
		Subreddit: "theonion",
		Feed:      FeedHot,
		Count:     3,
	})

	s.Require().NoError(err)
	s.Equal(3, output.Collected)
	s.Equal(2, requests)
	s.Require().NotNil(saved)
	s.Require().Len(saved.Submissions, 3)
	s.Equal("id-first", saved.Submissions[0].ID)
	s.Equal("theonion", saved.Submissions[0].Subreddit)
	s.Equal(int64(100), saved.Submissions[0].Score)
	s.Require().NotNil(saved.Submissions[0].PreviewImageURL)
	s.Equal("https://example.com/first.jpg", *saved.Submissions[0].PreviewImageURL)
}

func (s *GathererTestSuite) TestGather_TruncatesToCount() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingPage("", "first", "second"))
	}))
	defer server.Close()

	s.mockRepo.EXPECT().
		SaveSubmissions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *submission.SaveSubmissionsInput) error {
			s.Len(input.Submissions, 1)
			return nil
		})

	output, err := s.newGatherer(server.URL).Gather(s.ctx, &GatherInput{
		Subreddit: "theonion",
		Feed:      FeedHot,
		Count:     1,
	})

	s.Require().NoError(err)
	s.Equal(1, output.Collected)
}

func (s *GathererTestSuite) TestGather_StopsAtFeedEnd() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingPage("", "only"))
	}))
	defer server.Close()

	s.mockRepo.EXPECT().SaveSubmissions(gomock.Any(), gomock.Any()).Return(nil)

	output, err := s.newGatherer(server.URL).Gather(s.ctx, &GatherInput{
		Subreddit: "theonion",
		Feed:      FeedHot,
		Count:     50,
	})

	s.Require().NoError(err)
	s.Equal(1, output.Collected)
}

func (s *GathererTestSuite) TestGather_EmptyListing() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"after":null,"children":[]}}`)
	}))
	defer server.Close()

	_, err := s.newGatherer(server.URL).Gather(s.ctx, &GatherInput{
		Subreddit: "theonion",
		Feed:      FeedHot,
		Count:     10,
	})

	s.ErrorIs(err, ErrSubredditEmpty)
}

func (s *GathererTestSuite) TestGather_NonOKStatus() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := s.newGatherer(server.URL).Gather(s.ctx, &GatherInput{
		Subreddit: "theonion",
		Feed:      FeedHot,
		Count:     10,
	})

	s.Error(err)
}

func (s *GathererTestSuite) TestGather_ValidatesInput() {
	svc := s.newGatherer("http://unused.invalid")

	_, err := svc.Gather(s.ctx, &GatherInput{Feed: FeedHot, Count: 1})
	s.Error(err)

	_, err = svc.Gather(s.ctx, &GatherInput{Subreddit: "theonion", Feed: "weird", Count: 1})
	s.Error(err)

	_, err = svc.Gather(s.ctx, &GatherInput{Subreddit: "theonion", Feed: FeedHot, Count: 0})
	s.Error(err)
}
