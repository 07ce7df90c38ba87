package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"chat-arena/domain"
)

type userSummary struct {
	ID       int64         `json:"id"`
	Username string        `json:"username"`
	Status   domain.Status `json:"status"`
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.users.GetAllUsers(c.Request().Context())
	if err != nil {
		return h.respondError(c, err, "failed to fetch users")
	}

	summaries := lo.Map(users, func(u domain.User, _ int) userSummary {
		return userSummary{ID: u.ID, Username: u.Username, Status: u.Status}
	})
	return c.JSON(http.StatusOK, summaries)
}

func (h *Handler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid user id"})
	}

	user, err := h.users.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return h.respondError(c, err, "user not found")
	}
	return c.JSON(http.StatusOK, user.Public())
}

type profileUpdateRequest struct {
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid user id"})
	}

	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if err := h.users.UpdateUserProfile(c.Request().Context(), id, req.Bio, req.Avatar); err != nil {
		return h.respondError(c, err, "failed to update profile")
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

type blockRequest struct {
	BlockerID int64 `json:"blockerId"`
	BlockedID int64 `json:"blockedId"`
}

func (h *Handler) BlockUser(c echo.Context) error {
	var req blockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if err := h.blocks.Block(c.Request().Context(), req.BlockerID, req.BlockedID); err != nil {
		return h.respondError(c, err, "failed to block user")
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) UnblockUser(c echo.Context) error {
	var req blockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if err := h.blocks.Unblock(c.Request().Context(), req.BlockerID, req.BlockedID); err != nil {
		return h.respondError(c, err, "failed to unblock user")
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) ListBlockedUsers(c echo.Context) error {
	userID, err := pathID(c, "userID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid user id"})
	}

	users, err := h.blocks.GetBlockedUsers(c.Request().Context(), userID)
	if err != nil {
		return h.respondError(c, err, "failed to fetch blocked users")
	}

	summaries := lo.Map(users, func(u domain.User, _ int) userSummary {
		return userSummary{ID: u.ID, Username: u.Username, Status: u.Status}
	})
	return c.JSON(http.StatusOK, summaries)
}
