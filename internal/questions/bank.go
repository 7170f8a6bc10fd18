package questions

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"onionornot/internal/models"
)

// ErrNoQuestionAvailable is returned when no question meets the score
// floor outside the exclusion set
var ErrNoQuestionAvailable = errors.New("no question available")

// Config holds configuration for the question bank
type Config struct {
	// Records is the loaded dataset
	Records []models.SubmissionRecord

	// Optional seed for testing
	Seed int64
}

// Bank is the process-wide question oracle. It is built once at startup
// and immutable afterwards, so rooms read it concurrently without
// synchronization. Only the sampler's random source is guarded.
type Bank struct {
	records map[models.QuestionID]models.QuestionRecord
	ids     []models.QuestionID

	mu     sync.Mutex
	random *rand.Rand
}

// New builds a bank from the dataset, assigning a fresh question id to
// every record.
func New(cfg *Config) (*Bank, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	var seed int64
	if cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	bank := &Bank{
		records: make(map[models.QuestionID]models.QuestionRecord, len(cfg.Records)),
		ids:     make([]models.QuestionID, 0, len(cfg.Records)),
		random:  rand.New(rand.NewSource(seed)),
	}

	for i := range cfg.Records {
		id := models.QuestionID(uuid.New().String())
		bank.records[id] = cfg.Records[i].QuestionRecord()
		bank.ids = append(bank.ids, id)
	}

	return bank, nil
}

// Size returns the number of loaded questions.
func (b *Bank) Size() int {
	return len(b.ids)
}

// Get returns the record for the id.
func (b *Bank) Get(id models.QuestionID) (models.QuestionRecord, bool) {
	record, ok := b.records[id]
	return record, ok
}

// SampleExcluding draws a question uniformly among records meeting the
// score floor and not in the exclusion set.
func (b *Bank) SampleExcluding(minScore *int64, exclude map[models.QuestionID]struct{}) (models.QuestionID, error) {
	candidates := make([]models.QuestionID, 0, len(b.ids))
	for _, id := range b.ids {
		if _, excluded := exclude[id]; excluded {
			continue
		}
		if minScore != nil && b.records[id].Score < *minScore {
			continue
		}
		candidates = append(candidates, id)
	}

	if len(candidates) == 0 {
		return "", ErrNoQuestionAvailable
	}

	b.mu.Lock()
	index := b.random.Intn(len(candidates))
	b.mu.Unlock()

	return candidates[index], nil
}

// CountMeetingThreshold returns how many questions meet the score floor.
func (b *Bank) CountMeetingThreshold(minScore *int64) int {
	if minScore == nil {
		return len(b.ids)
	}
	count := 0
	for _, id := range b.ids {
		if b.records[id].Score >= *minScore {
			count++
		}
	}
	return count
}

// ScoreHistogram returns the count of questions per post score. Used by
// the lobby creation form to preview how many questions qualify.
func (b *Bank) ScoreHistogram() map[int64]int {
	histogram := make(map[int64]int)
	for _, record := range b.records {
		histogram[record.Score]++
	}
	return histogram
}
