package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"chat-arena/domain"
)

type gameInviteRequest struct {
	SenderID   int64 `json:"senderId"`
	ReceiverID int64 `json:"receiverId"`
}

func (h *Handler) SendGameInvite(c echo.Context) error {
	var req gameInviteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	inviteID, err := h.games.SendInvite(c.Request().Context(), req.SenderID, req.ReceiverID)
	if err != nil {
		return h.respondError(c, err, "cannot send invitation to this user")
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "inviteId": inviteID})
}

type inviteResponseRequest struct {
	InviteID int64  `json:"inviteId"`
	Status   string `json:"status"`
}

func (h *Handler) RespondGameInvite(c echo.Context) error {
	var req inviteResponseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	status := domain.InviteStatus(req.Status)
	if status != domain.InviteAccepted && status != domain.InviteDeclined {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "status must be accepted or declined"})
	}

	if err := h.games.RespondInvite(c.Request().Context(), req.InviteID, status); err != nil {
		return h.respondError(c, err, "failed to respond to invitation")
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

type tournamentRequest struct {
	Name         string  `json:"name"`
	Participants []int64 `json:"participants"`
}

func (h *Handler) CreateTournament(c echo.Context) error {
	var req tournamentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if req.Name == "" || len(req.Participants) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "name and participants are required"})
	}

	tournamentID, err := h.games.CreateTournament(c.Request().Context(), req.Name, req.Participants)
	if err != nil {
		return h.respondError(c, err, "failed to create tournament")
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "tournamentId": tournamentID})
}

type matchNotifyRequest struct {
	Player1ID int64 `json:"player1Id"`
	Player2ID int64 `json:"player2Id"`
	Round     int   `json:"round"`
}

func (h *Handler) NotifyTournamentMatch(c echo.Context) error {
	tournamentID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid tournament id"})
	}

	var req matchNotifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if err := h.games.NotifyMatch(c.Request().Context(), tournamentID,
		req.Player1ID, req.Player2ID, req.Round); err != nil {
		return h.respondError(c, err, "tournament not found")
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
