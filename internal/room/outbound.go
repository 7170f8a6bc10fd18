package room

import "onionornot/internal/models"

// OutboundKind identifies a message leaving the room
type OutboundKind string

const (
	// OutboundLobbyCreated acknowledges the creator's registration
	OutboundLobbyCreated OutboundKind = "lobby_created"

	// OutboundLobbyJoined acknowledges a joiner's registration
	OutboundLobbyJoined OutboundKind = "lobby_joined"

	// OutboundGameFullUpdate carries the game after a state change
	OutboundGameFullUpdate OutboundKind = "game_full_update"

	// OutboundAnswerNotInTimeLimit rejects an answer that arrived after
	// the question deadline
	OutboundAnswerNotInTimeLimit OutboundKind = "answer_not_in_time_limit"

	// OutboundPlayerNameAlreadyInUse rejects a registration whose name is
	// taken
	OutboundPlayerNameAlreadyInUse OutboundKind = "player_name_already_in_use"
)

// Outbound is a message from a room to connection tasks. Game is a deep
// clone of the room's state; each connection renders its own per-player
// snapshot from it. The error signals carry no game.
type Outbound struct {
	Kind OutboundKind
	Game *models.Game
}
