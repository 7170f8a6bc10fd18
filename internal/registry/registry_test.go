package registry

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"onionornot/internal/models"
	"onionornot/internal/questions"
	"onionornot/internal/room"
)

type RegistryTestSuite struct {
	suite.Suite
	registry *Registry
}

func (s *RegistryTestSuite) SetupTest() {
	bank, err := questions.New(&questions.Config{
		Records: []models.SubmissionRecord{
			{ID: "r1", Subreddit: "theonion", Title: "Satire One", Score: 100},
			{ID: "r2", Subreddit: "nottheonion", Title: "Real One", Score: 500},
		},
		Seed: 42,
	})
	s.Require().NoError(err)

	reg, err := New(&Config{
		Bank:   bank,
		Logger: zerolog.Nop(),
		Seed:   42,
	})
	s.Require().NoError(err)
	s.registry = reg
}

func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

// closeRoom registers and immediately disconnects a player so the room's
// loop terminates.
func (s *RegistryTestSuite) closeRoom(target *room.Room) {
	replyTo := make(chan room.Outbound, 8)
	s.Require().True(target.Send(room.RegisterEvent{
		PlayerID: "closer",
		ReplyTo:  replyTo,
		Name:     "Closer",
		Role:     room.RoleCreator,
	}))
	s.Require().True(target.Send(room.DisconnectEvent{PlayerID: "closer"}))

	select {
	case <-target.Done():
	case <-time.After(time.Second):
		s.FailNow("room did not terminate")
	}
}

func (s *RegistryTestSuite) TestCreateRoom_CodesAreDistinctLetters() {
	seen := make(map[models.InviteCode]struct{})

	for i := 0; i < 20; i++ {
		code, created, err := s.registry.CreateRoom(nil, nil, nil)
		s.Require().NoError(err)
		s.Require().NotNil(created)

		s.Len(string(code), models.InviteCodeLength)
		letters := make(map[byte]struct{})
		for j := 0; j < len(code); j++ {
			s.Contains(models.InviteCodeAlphabet, string(code[j]))
			letters[code[j]] = struct{}{}
		}
		s.Len(letters, models.InviteCodeLength)

		_, duplicate := seen[code]
		s.False(duplicate)
		seen[code] = struct{}{}
	}

	s.Equal(20, s.registry.Count())

	for code := range seen {
		found, ok := s.registry.Lookup(code)
		s.Require().True(ok)
		s.closeRoom(found)
	}
}

func (s *RegistryTestSuite) TestLookup_IsCaseInsensitive() {
	code, created, err := s.registry.CreateRoom(nil, nil, nil)
	s.Require().NoError(err)
	defer s.closeRoom(created)

	lower := models.InviteCode([]byte{code[0] | 0x20, code[1] | 0x20, code[2] | 0x20, code[3] | 0x20})
	found, ok := s.registry.Lookup(lower)
	s.True(ok)
	s.Equal(created, found)
}

func (s *RegistryTestSuite) TestLookup_UnknownCode() {
	_, ok := s.registry.Lookup("ZZZZ")
	s.False(ok)
}

func (s *RegistryTestSuite) TestRemove_RetiresCodeAfterRoomCloses() {
	code, created, err := s.registry.CreateRoom(nil, nil, nil)
	s.Require().NoError(err)
	s.Require().Equal(1, s.registry.Count())

	s.closeRoom(created)

	// The room's loop calls Remove before Done is closed.
	_, ok := s.registry.Lookup(code)
	s.False(ok)
	s.Equal(0, s.registry.Count())
	s.Contains(s.registry.previousCodes, code)
}

func (s *RegistryTestSuite) TestRemove_UnknownCodeIgnored() {
	s.registry.Remove("ZZZZ")
	s.Empty(s.registry.previousCodes)
}

func (s *RegistryTestSuite) TestTrimHistory_DropsOldestTenth() {
	threshold := models.PossibleInviteCodeCombinations / 1000

	s.registry.mu.Lock()
	for i := 0; i <= threshold; i++ {
		s.registry.previousCodes = append(s.registry.previousCodes, models.InviteCode(string(rune('A'+i%26)))+"XXX")
	}
	oldest := s.registry.previousCodes[0]
	s.registry.trimHistoryLocked()
	trimmed := len(s.registry.previousCodes)
	first := s.registry.previousCodes[0]
	s.registry.mu.Unlock()

	s.Equal(threshold+1-(threshold+1)/10, trimmed)
	s.NotEqual(oldest, first)
}
