package models

import (
	"errors"
	"strings"
)

// ErrEmptyPlayerName is returned when a player name is empty after trimming
var ErrEmptyPlayerName = errors.New("player name is empty")

// PlayerID is a process-unique identifier generated fresh for every
// connection; it carries no identity across reconnects.
type PlayerID string

// PlayerName is a display name, trimmed and guaranteed non-empty.
type PlayerName string

// NewPlayerName trims the raw name and rejects it if nothing remains.
func NewPlayerName(raw string) (PlayerName, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyPlayerName
	}
	return PlayerName(trimmed), nil
}

// PlayType distinguishes scoring players from watchers
type PlayType string

const (
	// PlayTypePlayer indicates a participant who answers questions and
	// accrues points
	PlayTypePlayer PlayType = "player"

	// PlayTypeWatcher indicates a participant who only observes; watchers
	// never score and are excluded from every quorum
	PlayTypeWatcher PlayType = "watcher"
)

// Player is one participant of a game
type Player struct {
	// ID is the connection-scoped identifier of the participant
	ID PlayerID

	// Name is the display name chosen at registration
	Name PlayerName

	// PlayType is whether the participant plays or watches
	PlayType PlayType

	// Points is the accumulated score; always zero for watchers
	Points uint16
}

// IsWatcher reports whether the participant only observes the game.
func (p *Player) IsWatcher() bool {
	return p.PlayType == PlayTypeWatcher
}
