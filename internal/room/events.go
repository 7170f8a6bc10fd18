package room

import "onionornot/internal/models"

// Role tags a registration with how the connection was opened. It only
// selects which acknowledgment the registrant gets back.
type Role string

const (
	// RoleCreator marks the registration of the connection that created
	// the lobby
	RoleCreator Role = "creator"

	// RoleJoiner marks the registration of a connection that joined via
	// invite code
	RoleJoiner Role = "joiner"
)

// ActionKind identifies a client action forwarded into the room
type ActionKind string

const (
	ActionRequestFullUpdate ActionKind = "request_full_update"
	ActionStartGame         ActionKind = "start_game"
	ActionChooseAnswer      ActionKind = "choose_answer"
	ActionRequestSkip       ActionKind = "request_skip"
	ActionRequestPlayAgain  ActionKind = "request_play_again"
)

// Event is one item of a room's mailbox. Events are applied fully, one at
// a time, in arrival order.
type Event interface {
	isEvent()
}

// RegisterEvent registers or re-registers a player.
type RegisterEvent struct {
	PlayerID  models.PlayerID
	ReplyTo   chan<- Outbound
	Name      string
	JustWatch bool
	Role      Role
}

// DisconnectEvent removes a player after their socket closed.
type DisconnectEvent struct {
	PlayerID models.PlayerID
}

// ActionEvent carries a decoded in-game client action.
type ActionEvent struct {
	PlayerID models.PlayerID
	ReplyTo  chan<- Outbound
	Kind     ActionKind

	// Answer is set only for ActionChooseAnswer
	Answer models.Answer
}

// TickEvent is the periodic wake-up that drives time-based transitions
// even when no player sends anything.
type TickEvent struct{}

func (RegisterEvent) isEvent()   {}
func (DisconnectEvent) isEvent() {}
func (ActionEvent) isEvent()     {}
func (TickEvent) isEvent()       {}
