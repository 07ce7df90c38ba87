package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func (h *Handler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	result, err := h.auth.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return h.respondError(c, err, "registration failed")
	}

	return c.JSON(http.StatusOK, authResponse{
		ID:       result.UserID,
		Username: result.Username,
		Token:    result.Token,
	})
}

func (h *Handler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	result, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return h.respondError(c, err, "invalid credentials")
	}

	return c.JSON(http.StatusOK, authResponse{
		ID:       result.UserID,
		Username: result.Username,
		Token:    result.Token,
	})
}
