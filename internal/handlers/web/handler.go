package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"onionornot/internal/common/identity"
	"onionornot/internal/models"
	"onionornot/internal/protocol"
	"onionornot/internal/questions"
	"onionornot/internal/registry"
	"onionornot/internal/room"
)

// Config holds configuration for the web handler
type Config struct {
	// Registry is the lobby directory
	Registry *registry.Registry

	// Bank resolves question ids when rendering snapshots
	Bank *questions.Bank

	// IDs generates per-connection player ids
	IDs identity.Generator

	// Logger for connection lifecycle events
	Logger zerolog.Logger
}

// Handler serves the websocket game endpoints and the dataset histogram.
type Handler struct {
	registry *registry.Registry
	bank     *questions.Bank
	ids      identity.Generator
	logger   zerolog.Logger
	upgrader websocket.Upgrader
}

// New creates a new web handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Registry == nil {
		return nil, errors.New("registry cannot be nil")
	}
	if cfg.Bank == nil {
		return nil, errors.New("question bank cannot be nil")
	}
	if cfg.IDs == nil {
		return nil, errors.New("id generator cannot be nil")
	}

	return &Handler{
		registry: cfg.Registry,
		bank:     cfg.Bank,
		ids:      cfg.IDs,
		logger:   cfg.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The game is joined by shareable invite codes from arbitrary
			// origins; there is no cookie-based session to protect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}, nil
}

// RegisterRoutes attaches the handler's routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/distribution", h.Distribution)
	router.GET("/api/game/create", h.CreateLobby)
	router.GET("/api/game/join/:invite_code", h.JoinLobby)
}

// Distribution returns the question bank's score histogram, used by the
// lobby creation form to preview how many questions qualify.
func (h *Handler) Distribution(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"count_of_questions": h.bank.Size(),
		"score_histogram":    h.bank.ScoreHistogram(),
	})
}

// CreateLobby upgrades the connection, creates a room and registers the
// caller as its creator. Lobby parameters come from the query string or,
// when absent, from a first create_lobby message.
func (h *Handler) CreateLobby(c *gin.Context) {
	params := createParams{
		playerName:        c.Query("player_name"),
		justWatch:         c.Query("just_watch") == "true",
		countOfQuestions:  parseOptionalUint(c.Query("count_of_questions")),
		minimumScore:      parseOptionalInt(c.Query("minimum_score_per_question")),
		maximumAnswerTime: parseOptionalUint(c.Query("maximum_answer_time_per_question")),
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("ip", c.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	if params.playerName == "" {
		msg, err := readFirstMessage(conn)
		if err != nil || msg.CreateLobby == nil {
			closeWithReason(conn, "expected create_lobby message")
			return
		}
		params.playerName = msg.CreateLobby.PlayerName
		params.justWatch = msg.CreateLobby.JustWatch
		params.countOfQuestions = msg.CreateLobby.CountOfQuestions
		params.minimumScore = msg.CreateLobby.MinimumScore
		params.maximumAnswerTime = msg.CreateLobby.MaximumAnswerTime
	}

	name, err := models.NewPlayerName(params.playerName)
	if err != nil {
		closeWithReason(conn, "player name must not be empty")
		return
	}

	code, gameRoom, err := h.registry.CreateRoom(params.countOfQuestions, params.minimumScore, params.maximumAnswerTime)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create room")
		closeWithReason(conn, "could not create lobby, try again")
		return
	}

	h.attach(conn, gameRoom, code, string(name), params.justWatch, room.RoleCreator)
}

// JoinLobby upgrades the connection and registers the caller in the room
// behind the invite code. The code and parameters come from the URL or
// from a first join_lobby message.
func (h *Handler) JoinLobby(c *gin.Context) {
	rawCode := c.Param("invite_code")
	playerName := c.Query("player_name")
	justWatch := c.Query("just_watch") == "true"

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("ip", c.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	if playerName == "" {
		msg, err := readFirstMessage(conn)
		if err != nil || msg.JoinLobby == nil {
			closeWithReason(conn, "expected join_lobby message")
			return
		}
		playerName = msg.JoinLobby.PlayerName
		justWatch = msg.JoinLobby.JustWatch
		if msg.JoinLobby.InviteCode != "" {
			rawCode = msg.JoinLobby.InviteCode
		}
	}

	name, err := models.NewPlayerName(playerName)
	if err != nil {
		closeWithReason(conn, "player name must not be empty")
		return
	}

	code := models.NormalizeInviteCode(rawCode)
	gameRoom, ok := h.registry.Lookup(code)
	if !ok {
		closeWithReason(conn, "unknown invite code")
		return
	}

	h.attach(conn, gameRoom, code, string(name), justWatch, room.RoleJoiner)
}

// attach wires a fresh connection adapter to the room and registers the
// player.
func (h *Handler) attach(conn *websocket.Conn, gameRoom *room.Room, code models.InviteCode, name string, justWatch bool, role room.Role) {
	playerID := h.ids.NewPlayerID()

	adapter := newConnection(&connectionConfig{
		socket:     conn,
		room:       gameRoom,
		inviteCode: code,
		playerID:   playerID,
		bank:       h.bank,
		logger:     h.logger,
	})

	if !gameRoom.Send(room.RegisterEvent{
		PlayerID:  playerID,
		ReplyTo:   adapter.outbound,
		Name:      name,
		JustWatch: justWatch,
		Role:      role,
	}) {
		// The room terminated between lookup and registration.
		closeWithReason(conn, "lobby no longer exists")
		return
	}

	go adapter.writePump()
	go adapter.readPump()
}

type createParams struct {
	playerName        string
	justWatch         bool
	countOfQuestions  *uint64
	minimumScore      *int64
	maximumAnswerTime *uint64
}

func parseOptionalUint(raw string) *uint64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &value
}

func parseOptionalInt(raw string) *int64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &value
}

// readFirstMessage waits briefly for the opening create_lobby/join_lobby
// frame of connections that did not pass parameters in the URL.
func readFirstMessage(conn *websocket.Conn) (*protocol.ClientMessage, error) {
	if err := conn.SetReadDeadline(firstMessageDeadline()); err != nil {
		return nil, err
	}
	defer conn.SetReadDeadline(noDeadline())

	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return protocol.DecodeClientMessage(data)
}
