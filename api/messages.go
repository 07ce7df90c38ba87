package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"chat-arena/domain"
)

type conversationMessage struct {
	ID             int64     `json:"id"`
	SenderID       int64     `json:"senderId"`
	ReceiverID     int64     `json:"receiverId"`
	Content        string    `json:"content"`
	Language       string    `json:"language,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	SenderUsername string    `json:"senderUsername"`
}

// GetConversation returns the full two-way history between two users,
// oldest first. Offline recipients rely on this to catch up on messages
// that were only delivered as a sender-side confirmation.
func (h *Handler) GetConversation(c echo.Context) error {
	userID, err := pathID(c, "userID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid user id"})
	}
	otherUserID, err := pathID(c, "otherUserID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid user id"})
	}

	history, err := h.messages.GetConversation(c.Request().Context(), userID, otherUserID)
	if err != nil {
		return h.respondError(c, err, "failed to fetch messages")
	}

	rows := lo.Map(history, func(m domain.ConversationMessage, _ int) conversationMessage {
		return conversationMessage{
			ID:             m.ID,
			SenderID:       m.SenderID,
			ReceiverID:     m.ReceiverID,
			Content:        m.Content,
			Language:       m.Language,
			CreatedAt:      m.CreatedAt,
			SenderUsername: m.SenderUsername,
		}
	})
	return c.JSON(http.StatusOK, rows)
}
