// Package gatherer collects submissions from reddit's public listing API
// and persists them into the dataset store the game server reads from.
package gatherer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"onionornot/internal/models"
	"onionornot/internal/repositories/submission"
)

// FeedType selects which subreddit listing to walk
type FeedType string

const (
	FeedBest          FeedType = "best"
	FeedHot           FeedType = "hot"
	FeedNew           FeedType = "new"
	FeedRising        FeedType = "rising"
	FeedTop           FeedType = "top"
	FeedControversial FeedType = "controversial"
)

// Valid reports whether the feed type is one reddit serves.
func (f FeedType) Valid() bool {
	switch f {
	case FeedBest, FeedHot, FeedNew, FeedRising, FeedTop, FeedControversial:
		return true
	}
	return false
}

// feedParameters returns the extra query parameters a feed needs: hot is
// pinned to the global region, top and controversial to the all-time
// window.
func (f FeedType) feedParameters() string {
	switch f {
	case FeedHot:
		return "&g=GLOBAL"
	case FeedTop, FeedControversial:
		return "&t=all"
	default:
		return ""
	}
}

const (
	defaultBaseURL         = "https://www.reddit.com"
	defaultAmountPerFetch  = 100
	defaultRequestInterval = time.Second
)

// ErrSubredditEmpty is returned when the listing yields no submissions at
// all
var ErrSubredditEmpty = errors.New("subreddit listing is empty")

// Config holds configuration for the gatherer
type Config struct {
	// HTTPClient performs the listing requests; defaults to a client with
	// a 30 second timeout
	HTTPClient *http.Client

	// Repository receives the gathered submissions
	Repository submission.Repository

	// BaseURL overrides the reddit endpoint, used by tests
	BaseURL string

	// AmountPerFetch is the page size requested per listing call
	AmountPerFetch int

	// RequestInterval is the pause between listing calls
	RequestInterval time.Duration

	// Logger for fetch progress
	Logger zerolog.Logger
}

// Gatherer walks a subreddit listing page by page and stores what it
// finds.
type Gatherer struct {
	client          *http.Client
	repository      submission.Repository
	baseURL         string
	amountPerFetch  int
	requestInterval time.Duration
	logger          zerolog.Logger
}

// New creates a new gatherer
func New(cfg *Config) (*Gatherer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Repository == nil {
		return nil, errors.New("repository cannot be nil")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	amount := cfg.AmountPerFetch
	if amount <= 0 {
		amount = defaultAmountPerFetch
	}

	interval := cfg.RequestInterval
	if interval <= 0 {
		interval = defaultRequestInterval
	}

	return &Gatherer{
		client:          client,
		repository:      cfg.Repository,
		baseURL:         baseURL,
		amountPerFetch:  amount,
		requestInterval: interval,
		logger:          cfg.Logger,
	}, nil
}

// GatherInput names the subreddit and feed to walk and how many
// submissions to collect.
type GatherInput struct {
	Subreddit string
	Feed      FeedType
	Count     int
}

// GatherOutput reports how many submissions were stored.
type GatherOutput struct {
	Collected int
}

// Gather walks the listing until Count submissions were collected or the
// feed ends, then persists the batch.
func (g *Gatherer) Gather(ctx context.Context, input *GatherInput) (*GatherOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.Subreddit == "" {
		return nil, errors.New("subreddit cannot be empty")
	}
	if !input.Feed.Valid() {
		return nil, fmt.Errorf("unknown feed type %q", input.Feed)
	}
	if input.Count < 1 {
		return nil, errors.New("count must be positive")
	}

	var collected []models.SubmissionRecord
	var after string

	for len(collected) < input.Count {
		page, nextAfter, err := g.fetchPage(ctx, input, after)
		if err != nil {
			return nil, err
		}
		collected = append(collected, page...)

		if nextAfter == "" || len(page) == 0 {
			break
		}
		after = nextAfter

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.requestInterval):
		}
	}

	if len(collected) == 0 {
		return nil, ErrSubredditEmpty
	}
	if len(collected) > input.Count {
		collected = collected[:input.Count]
	}

	if err := g.repository.SaveSubmissions(ctx, &submission.SaveSubmissionsInput{
		Submissions: collected,
	}); err != nil {
		return nil, fmt.Errorf("failed to save submissions: %w", err)
	}

	g.logger.Info().
		Str("subreddit", input.Subreddit).
		Str("feed", string(input.Feed)).
		Int("collected", len(collected)).
		Msg("gathering finished")

	return &GatherOutput{Collected: len(collected)}, nil
}

// listingResponse mirrors the parts of reddit's listing JSON the gatherer
// needs.
type listingResponse struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data submissionData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type submissionData struct {
	Subreddit   string  `json:"subreddit"`
	SubredditID string  `json:"subreddit_id"`
	ID          string  `json:"id"`
	Permalink   string  `json:"permalink"`
	Created     float64 `json:"created"`
	CreatedUTC  float64 `json:"created_utc"`
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Score       int64   `json:"score"`
	Downs       uint64  `json:"downs"`
	Ups         uint64  `json:"ups"`
	Over18      bool    `json:"over_18"`
	Thumbnail   string  `json:"thumbnail"`
	Preview     *struct {
		Images []struct {
			Source struct {
				URL string `json:"url"`
			} `json:"source"`
		} `json:"images"`
	} `json:"preview"`
}

func (g *Gatherer) fetchPage(ctx context.Context, input *GatherInput, after string) ([]models.SubmissionRecord, string, error) {
	url := fmt.Sprintf("%s/r/%s/%s.json?limit=%d&raw_json=1%s",
		g.baseURL, input.Subreddit, input.Feed, g.amountPerFetch, input.Feed.feedParameters())
	if after != "" {
		url += "&after=" + after
	}

	g.logger.Debug().Str("url", url).Msg("fetching listing page")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetching %s returned status %d", url, resp.StatusCode)
	}

	var listing listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, "", fmt.Errorf("failed to decode listing for %s: %w", url, err)
	}

	records := make([]models.SubmissionRecord, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		records = append(records, child.Data.record())
	}

	return records, listing.Data.After, nil
}

func (d *submissionData) record() models.SubmissionRecord {
	record := models.SubmissionRecord{
		Subreddit:   d.Subreddit,
		SubredditID: d.SubredditID,
		ID:          d.ID,
		Permalink:   d.Permalink,
		Created:     uint64(d.Created),
		CreatedUTC:  uint64(d.CreatedUTC),
		URL:         d.URL,
		Title:       d.Title,
		Score:       d.Score,
		Downs:       d.Downs,
		Ups:         d.Ups,
		Over18:      d.Over18,
		Thumbnail:   d.Thumbnail,
	}
	if d.Preview != nil && len(d.Preview.Images) > 0 {
		url := d.Preview.Images[0].Source.URL
		record.PreviewImageURL = &url
	}
	return record
}
