package domain

import "time"

type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteDeclined InviteStatus = "declined"
)

type GameInvitation struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Status     InviteStatus
	CreatedAt  time.Time
}

type Tournament struct {
	ID           int64
	Name         string
	Status       string
	CurrentRound int
	CreatedAt    time.Time
}

// TournamentParticipant seeds a player into a bracket position.
type TournamentParticipant struct {
	ID           int64
	TournamentID int64
	UserID       int64
	Position     int
}
