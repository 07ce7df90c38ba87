package realtime

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

type FrameType string

const (
	FrameAuth             FrameType = "auth"
	FrameMessage          FrameType = "message"
	FrameTyping           FrameType = "typing"
	FrameError            FrameType = "error"
	FrameMessageConfirmed FrameType = "message_confirmed"

	FrameGameInvitation         FrameType = "game_invitation"
	FrameGameInvitationResponse FrameType = "game_invitation_response"
	FrameTournamentMatch        FrameType = "tournament_match"
)

// UserID unmarshals from either a JSON number or a numeric string, so that
// every id is canonical before it reaches the registry or the store.
type UserID int64

func (u *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("user id must be numeric: %w", err)
	}
	*u = UserID(n)
	return nil
}

// Envelope is one parsed client frame. Type discriminates which of the
// optional fields are meaningful.
type Envelope struct {
	Type       FrameType `json:"type"`
	UserID     *UserID   `json:"userId,omitempty"`
	ReceiverID *UserID   `json:"receiverId,omitempty"`
	Content    string    `json:"content,omitempty"`
	TempID     string    `json:"tempId,omitempty"`
	IsTyping   bool      `json:"isTyping,omitempty"`
}

// MessageFrame is pushed to the recipient of a delivered message.
type MessageFrame struct {
	Type           FrameType `json:"type"`
	ID             int64     `json:"id"`
	SenderID       int64     `json:"senderId"`
	ReceiverID     int64     `json:"receiverId"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	SenderUsername string    `json:"senderUsername,omitempty"`
}

// ConfirmedFrame echoes the client's correlation token together with the
// stored message fields, back to the sender only.
type ConfirmedFrame struct {
	Type       FrameType `json:"type"`
	TempID     string    `json:"tempId"`
	ID         int64     `json:"id"`
	SenderID   int64     `json:"senderId"`
	ReceiverID int64     `json:"receiverId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type TypingFrame struct {
	Type     FrameType `json:"type"`
	SenderID int64     `json:"senderId"`
	IsTyping bool      `json:"isTyping"`
}

type ErrorFrame struct {
	Type    FrameType `json:"type"`
	Message string    `json:"message"`
}

// GameInvitationFrame notifies the invited player.
type GameInvitationFrame struct {
	Type           FrameType `json:"type"`
	InviteID       int64     `json:"inviteId"`
	SenderID       int64     `json:"senderId"`
	SenderUsername string    `json:"senderUsername"`
}

// InviteResponseFrame notifies the original sender of the receiver's decision.
type InviteResponseFrame struct {
	Type       FrameType `json:"type"`
	InviteID   int64     `json:"inviteId"`
	Status     string    `json:"status"`
	OpponentID int64     `json:"opponentId"`
}

// TournamentMatchFrame tells a player who they face in the next round.
type TournamentMatchFrame struct {
	Type           FrameType `json:"type"`
	TournamentID   int64     `json:"tournamentId"`
	TournamentName string    `json:"tournamentName"`
	Round          int       `json:"round"`
	OpponentID     int64     `json:"opponentId"`
}
