// Package api exposes the HTTP surface: auth, profiles, history, blocking,
// game flows and health. The realtime core is reached only through the
// services and the broadcaster.
package api

import (
	"log/slog"
	"strconv"

	"github.com/labstack/echo/v4"

	"chat-arena/errors"
	"chat-arena/observability"
	"chat-arena/repositories"
	"chat-arena/services"
)

type Handler struct {
	log      *slog.Logger
	auth     services.IAuthService
	games    services.IGameService
	users    repositories.IUserRepository
	messages repositories.IMessageRepository
	blocks   repositories.IBlockRepository
	monitor  *observability.Monitor
}

func NewHandler(
	log *slog.Logger,
	auth services.IAuthService,
	games services.IGameService,
	users repositories.IUserRepository,
	messages repositories.IMessageRepository,
	blocks repositories.IBlockRepository,
	monitor *observability.Monitor,
) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		games:    games,
		users:    users,
		messages: messages,
		blocks:   blocks,
		monitor:  monitor,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/register", h.Register)
	e.POST("/api/login", h.Login)

	e.GET("/api/users", h.ListUsers)
	e.GET("/api/users/:id", h.GetUser)
	e.PUT("/api/users/:id", h.UpdateProfile)

	e.POST("/api/block", h.BlockUser)
	e.POST("/api/unblock", h.UnblockUser)
	e.GET("/api/blocked/:userID", h.ListBlockedUsers)

	e.GET("/api/messages/:userID/:otherUserID", h.GetConversation)

	e.POST("/api/game-invite", h.SendGameInvite)
	e.POST("/api/game-invite/respond", h.RespondGameInvite)
	e.POST("/api/tournament", h.CreateTournament)
	e.POST("/api/tournament/:id/notify", h.NotifyTournamentMatch)

	e.GET("/api/health", h.Health)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) respondError(c echo.Context, err error, message string) error {
	status := errors.MapToHTTPStatus(err)
	if status >= 500 {
		h.log.Error(message, "err", err)
	}
	return c.JSON(status, errorResponse{Error: message})
}

func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
