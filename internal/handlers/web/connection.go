package web

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"onionornot/internal/models"
	"onionornot/internal/protocol"
	"onionornot/internal/room"
)

const (
	// outboundBuffer bounds how far a slow socket may fall behind before
	// the room starts dropping its updates
	outboundBuffer = 64

	writeWait        = 10 * time.Second
	firstMessageWait = 30 * time.Second
	maxMessageSize   = 4096
)

type connectionConfig struct {
	socket     *websocket.Conn
	room       *room.Room
	inviteCode models.InviteCode
	playerID   models.PlayerID
	bank       models.QuestionSource
	logger     zerolog.Logger
}

// connection bridges one websocket to a room: the read pump decodes client
// frames into mailbox events, the write pump renders room output into
// per-player snapshot frames. The two pumps are the only goroutines that
// touch the socket.
type connection struct {
	socket     *websocket.Conn
	room       *room.Room
	inviteCode models.InviteCode
	playerID   models.PlayerID
	bank       models.QuestionSource
	logger     zerolog.Logger

	outbound chan room.Outbound

	// closed is closed by the read pump on exit so the write pump stops
	// even while the room keeps running for other players
	closed chan struct{}
}

func newConnection(cfg *connectionConfig) *connection {
	return &connection{
		socket:     cfg.socket,
		room:       cfg.room,
		inviteCode: cfg.inviteCode,
		playerID:   cfg.playerID,
		bank:       cfg.bank,
		logger: cfg.logger.With().
			Str("invite_code", string(cfg.inviteCode)).
			Str("player_id", string(cfg.playerID)).
			Logger(),
		outbound: make(chan room.Outbound, outboundBuffer),
		closed:   make(chan struct{}),
	}
}

// readPump consumes client frames until the socket closes or a frame fails
// to decode, then tells the room the player is gone. Gorilla answers pings
// with pongs on its own during ReadMessage, so keep-alives need no extra
// handling here.
func (c *connection) readPump() {
	defer func() {
		c.room.Send(room.DisconnectEvent{PlayerID: c.playerID})
		close(c.closed)
		c.socket.Close()
	}()

	c.socket.SetReadLimit(maxMessageSize)

	for {
		_, data, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug().Err(err).Msg("websocket closed unexpectedly")
			}
			return
		}

		msg, err := protocol.DecodeClientMessage(data)
		if err != nil {
			// A malformed frame ends this connection; the room and the
			// other players are unaffected.
			c.logger.Warn().Err(err).Msg("dropping connection: bad client frame")
			return
		}

		if !c.dispatch(msg) {
			return
		}
	}
}

// dispatch forwards one decoded frame into the room. It returns false once
// the room has terminated.
func (c *connection) dispatch(msg *protocol.ClientMessage) bool {
	event := room.ActionEvent{
		PlayerID: c.playerID,
		ReplyTo:  c.outbound,
	}

	switch msg.Type {
	case protocol.ClientCreateLobby, protocol.ClientJoinLobby:
		// The connection is already bound to a room.
		c.logger.Debug().Str("type", msg.Type).Msg("ignoring repeated lobby request")
		return true
	case protocol.ClientRequestFullUpdate:
		event.Kind = room.ActionRequestFullUpdate
	case protocol.ClientStartGame:
		event.Kind = room.ActionStartGame
	case protocol.ClientChooseAnswer:
		event.Kind = room.ActionChooseAnswer
		event.Answer = msg.ChooseAnswer.Answer
	case protocol.ClientRequestSkip:
		event.Kind = room.ActionRequestSkip
	case protocol.ClientRequestPlayAgain:
		event.Kind = room.ActionRequestPlayAgain
	default:
		return true
	}

	return c.room.Send(event)
}

// writePump renders room output for this player and writes it to the
// socket until the read pump or the room stops.
func (c *connection) writePump() {
	for {
		select {
		case <-c.closed:
			return
		case <-c.room.Done():
			c.socket.Close()
			return
		case out := <-c.outbound:
			if !c.write(out) {
				c.socket.Close()
				return
			}
		}
	}
}

func (c *connection) write(out room.Outbound) bool {
	msg := &protocol.ServerMessage{}

	switch out.Kind {
	case room.OutboundLobbyCreated:
		msg.Type = protocol.ServerLobbyCreated
	case room.OutboundLobbyJoined:
		msg.Type = protocol.ServerLobbyJoined
	case room.OutboundGameFullUpdate:
		msg.Type = protocol.ServerGameFullUpdate
	case room.OutboundAnswerNotInTimeLimit:
		msg.Type = protocol.ServerAnswerNotInTimeLimit
	case room.OutboundPlayerNameAlreadyInUse:
		msg.Type = protocol.ServerPlayerNameAlreadyInUse
	default:
		c.logger.Error().Str("kind", string(out.Kind)).Msg("unknown outbound kind")
		return true
	}

	if out.Game != nil {
		msg.Game = out.Game.Snapshot(c.inviteCode, c.playerID, c.bank)
	}

	data, err := protocol.EncodeServerMessage(msg)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to encode server frame")
		return true
	}

	if err := c.socket.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return false
	}
	if err := c.socket.WriteMessage(websocket.TextMessage, data); err != nil {
		c.logger.Debug().Err(err).Msg("write failed, closing connection")
		return false
	}
	return true
}

// closeWithReason sends a close frame with a human-readable reason before
// dropping a connection that never made it into a room.
func closeWithReason(conn *websocket.Conn, reason string) {
	deadline := time.Now().Add(writeWait)
	message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	_ = conn.WriteControl(websocket.CloseMessage, message, deadline)
	conn.Close()
}

func firstMessageDeadline() time.Time {
	return time.Now().Add(firstMessageWait)
}

func noDeadline() time.Time {
	return time.Time{}
}
