package domain

import "time"

// Status is the best-effort presence flag stored alongside the user row.
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Bio          string
	Avatar       string
	Status       Status
	CreatedAt    time.Time
}

// PublicUser is the profile shape exposed over the API, without the password hash.
type PublicUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
