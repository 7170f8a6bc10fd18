package registry

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"onionornot/internal/common/clock"
	"onionornot/internal/models"
	"onionornot/internal/questions"
	"onionornot/internal/room"
)

const (
	// tickInterval is how often every live room receives a tick; it
	// bounds the worst-case latency of deadline enforcement
	tickInterval = 300 * time.Millisecond

	// generationAttempts bounds the search for a free invite code
	generationAttempts = 100
)

// ErrNoFreeInviteCode is returned when no unused invite code was found
// within the attempt budget
var ErrNoFreeInviteCode = errors.New("no free invite code found")

// Config holds configuration for the registry
type Config struct {
	// Bank is handed to every room
	Bank *questions.Bank

	// Clock is handed to every room; defaults to the system clock
	Clock clock.Clock

	// Logger is the parent logger for rooms
	Logger zerolog.Logger

	// Optional seed for testing
	Seed int64
}

// Registry is the directory of live rooms by invite code. Creation and
// removal are serialized by a single mutex; a room's internal state is
// only ever reached through its mailbox.
type Registry struct {
	bank   *questions.Bank
	clock  clock.Clock
	logger zerolog.Logger

	mu            sync.Mutex
	rooms         map[models.InviteCode]*room.Room
	previousCodes []models.InviteCode
	random        *rand.Rand
}

// New creates an empty registry
func New(cfg *Config) (*Registry, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Bank == nil {
		return nil, errors.New("question bank cannot be nil")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	var seed int64
	if cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Registry{
		bank:   cfg.Bank,
		clock:  clk,
		logger: cfg.Logger,
		rooms:  make(map[models.InviteCode]*room.Room),
		random: rand.New(rand.NewSource(seed)),
	}, nil
}

// CreateRoom allocates a fresh invite code, resolves the question count
// against the qualifying set, spawns the room's event loop and ticker and
// returns the handle. The room starts in the lobby phase with no players;
// the caller still has to send the creator's RegisterEvent.
func (r *Registry) CreateRoom(countOfQuestions *uint64, minScore *int64, maxAnswerTime *uint64) (models.InviteCode, *room.Room, error) {
	qualifying := uint64(r.bank.CountMeetingThreshold(minScore))
	count := qualifying
	if countOfQuestions != nil && *countOfQuestions < qualifying {
		count = *countOfQuestions
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	code, err := r.generateCodeLocked()
	if err != nil {
		return "", nil, err
	}

	newRoom, err := room.New(&room.Config{
		InviteCode: code,
		GameConfig: models.GameConfiguration{
			CountOfQuestions:  count,
			MinimumScore:      minScore,
			MaximumAnswerTime: maxAnswerTime,
		},
		Bank:    r.bank,
		Clock:   r.clock,
		Logger:  r.logger,
		OnClose: r.Remove,
	})
	if err != nil {
		return "", nil, err
	}

	r.rooms[code] = newRoom
	go newRoom.Run()
	go runTicker(newRoom)

	r.logger.Info().Str("invite_code", string(code)).Msg("room created")
	return code, newRoom, nil
}

// Lookup returns the room registered under the code, case-insensitively.
func (r *Registry) Lookup(code models.InviteCode) (*room.Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found, ok := r.rooms[models.NormalizeInviteCode(string(code))]
	return found, ok
}

// Remove unregisters the code and retires it into the recent-history
// window. Called by a room's own loop when it self-terminates.
func (r *Registry) Remove(code models.InviteCode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[code]; !ok {
		return
	}
	delete(r.rooms, code)
	r.previousCodes = append(r.previousCodes, code)
	r.trimHistoryLocked()

	r.logger.Info().Str("invite_code", string(code)).Msg("room removed")
}

// Count returns the number of live rooms.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

// generateCodeLocked draws codes of four distinct letters until one is
// neither live nor in the recent-history window.
func (r *Registry) generateCodeLocked() (models.InviteCode, error) {
	for attempt := 0; attempt < generationAttempts; attempt++ {
		code := r.randomCodeLocked()
		if _, live := r.rooms[code]; live {
			continue
		}
		if r.inHistoryLocked(code) {
			continue
		}
		return code, nil
	}
	return "", ErrNoFreeInviteCode
}

func (r *Registry) randomCodeLocked() models.InviteCode {
	indices := r.random.Perm(len(models.InviteCodeAlphabet))
	code := make([]byte, models.InviteCodeLength)
	for i := 0; i < models.InviteCodeLength; i++ {
		code[i] = models.InviteCodeAlphabet[indices[i]]
	}
	return models.InviteCode(code)
}

func (r *Registry) inHistoryLocked(code models.InviteCode) bool {
	for _, previous := range r.previousCodes {
		if previous == code {
			return true
		}
	}
	return false
}

// trimHistoryLocked bounds the recent-history window to roughly 0.1% of
// the address space (clamped to [64, 1024]); once exceeded, the oldest
// tenth is dropped so retired codes become reusable.
func (r *Registry) trimHistoryLocked() {
	threshold := models.PossibleInviteCodeCombinations / 1000
	if threshold < 64 {
		threshold = 64
	}
	if threshold > 1024 {
		threshold = 1024
	}

	if len(r.previousCodes) <= threshold {
		return
	}
	drop := len(r.previousCodes) / 10
	r.previousCodes = append([]models.InviteCode(nil), r.previousCodes[drop:]...)
}

// runTicker feeds periodic ticks into the room until its loop stops.
func runTicker(target *room.Room) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-target.Done():
			return
		case <-ticker.C:
			target.Send(room.TickEvent{})
		}
	}
}
