// Package protocol defines the websocket wire contract: a JSON envelope
// tagging every frame with a message type. Snapshots are always complete,
// so clients never have to reason about deltas.
package protocol

import (
	"encoding/json"
	"fmt"

	"onionornot/internal/models"
)

// Client message types
const (
	ClientCreateLobby       = "create_lobby"
	ClientJoinLobby         = "join_lobby"
	ClientRequestFullUpdate = "request_full_update"
	ClientStartGame         = "start_game"
	ClientChooseAnswer      = "choose_answer"
	ClientRequestSkip       = "request_skip"
	ClientRequestPlayAgain  = "request_play_again"
)

// Server message types
const (
	ServerLobbyCreated           = "lobby_created"
	ServerLobbyJoined            = "lobby_joined"
	ServerGameFullUpdate         = "game_full_update"
	ServerAnswerNotInTimeLimit   = "answer_not_in_time_limit"
	ServerPlayerNameAlreadyInUse = "player_name_already_in_use"
)

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// CreateLobbyData carries the lobby parameters of a create request.
type CreateLobbyData struct {
	PlayerName        string  `json:"player_name"`
	JustWatch         bool    `json:"just_watch"`
	CountOfQuestions  *uint64 `json:"count_of_questions,omitempty"`
	MinimumScore      *int64  `json:"minimum_score_per_question,omitempty"`
	MaximumAnswerTime *uint64 `json:"maximum_answer_time_per_question,omitempty"`
}

// JoinLobbyData carries the parameters of a join request. The invite code
// may instead travel in the connection URL; when both are present the
// payload wins.
type JoinLobbyData struct {
	PlayerName string `json:"player_name"`
	InviteCode string `json:"invite_code"`
	JustWatch  bool   `json:"just_watch"`
}

// ChooseAnswerData carries a player's pick for the current question.
type ChooseAnswerData struct {
	Answer models.Answer `json:"answer"`
}

// ClientMessage is a decoded client frame. Exactly the payload field
// matching Type is set.
type ClientMessage struct {
	Type         string
	CreateLobby  *CreateLobbyData
	JoinLobby    *JoinLobbyData
	ChooseAnswer *ChooseAnswerData
}

// ServerMessage is a server frame before encoding. Game is set for the
// snapshot-carrying types and nil for the error signals.
type ServerMessage struct {
	Type string
	Game *models.GameSnapshot
}

// DecodeClientMessage parses one client frame. Unknown types and
// malformed payloads are errors; they terminate the offending connection
// but never reach the room.
func DecodeClientMessage(data []byte) (*ClientMessage, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode client message envelope: %w", err)
	}

	msg := &ClientMessage{Type: env.Type}

	switch env.Type {
	case ClientCreateLobby:
		msg.CreateLobby = &CreateLobbyData{}
		if err := json.Unmarshal(env.Data, msg.CreateLobby); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", env.Type, err)
		}
	case ClientJoinLobby:
		msg.JoinLobby = &JoinLobbyData{}
		if err := json.Unmarshal(env.Data, msg.JoinLobby); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", env.Type, err)
		}
	case ClientChooseAnswer:
		msg.ChooseAnswer = &ChooseAnswerData{}
		if err := json.Unmarshal(env.Data, msg.ChooseAnswer); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", env.Type, err)
		}
	case ClientRequestFullUpdate, ClientStartGame, ClientRequestSkip, ClientRequestPlayAgain:
		// No payload.
	default:
		return nil, fmt.Errorf("unknown client message type %q", env.Type)
	}

	return msg, nil
}

// EncodeClientMessage renders a client frame. Primarily used by tests and
// client tooling.
func EncodeClientMessage(msg *ClientMessage) ([]byte, error) {
	env := envelope{Type: msg.Type}

	var payload any
	switch msg.Type {
	case ClientCreateLobby:
		payload = msg.CreateLobby
	case ClientJoinLobby:
		payload = msg.JoinLobby
	case ClientChooseAnswer:
		payload = msg.ChooseAnswer
	case ClientRequestFullUpdate, ClientStartGame, ClientRequestSkip, ClientRequestPlayAgain:
	default:
		return nil, fmt.Errorf("unknown client message type %q", msg.Type)
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", msg.Type, err)
		}
		env.Data = data
	}

	return json.Marshal(env)
}

// EncodeServerMessage renders a server frame.
func EncodeServerMessage(msg *ServerMessage) ([]byte, error) {
	env := envelope{Type: msg.Type}

	switch msg.Type {
	case ServerLobbyCreated, ServerLobbyJoined, ServerGameFullUpdate:
		data, err := json.Marshal(msg.Game)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", msg.Type, err)
		}
		env.Data = data
	case ServerAnswerNotInTimeLimit, ServerPlayerNameAlreadyInUse:
		// No payload.
	default:
		return nil, fmt.Errorf("unknown server message type %q", msg.Type)
	}

	return json.Marshal(env)
}

// DecodeServerMessage parses one server frame. Used by tests and client
// tooling.
func DecodeServerMessage(data []byte) (*ServerMessage, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode server message envelope: %w", err)
	}

	msg := &ServerMessage{Type: env.Type}

	switch env.Type {
	case ServerLobbyCreated, ServerLobbyJoined, ServerGameFullUpdate:
		msg.Game = &models.GameSnapshot{}
		if err := json.Unmarshal(env.Data, msg.Game); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", env.Type, err)
		}
	case ServerAnswerNotInTimeLimit, ServerPlayerNameAlreadyInUse:
		// No payload.
	default:
		return nil, fmt.Errorf("unknown server message type %q", env.Type)
	}

	return msg, nil
}
