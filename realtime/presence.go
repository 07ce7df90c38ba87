package realtime

import (
	"context"
	"log/slog"

	"chat-arena/domain"
	"chat-arena/repositories"
)

// Presence is the single component allowed to mutate the stored
// online/offline flag. Updates are best effort: a failed write leaves the
// flag stale, it never fails the session operation that triggered it.
type Presence struct {
	log   *slog.Logger
	users repositories.IUserRepository
}

func NewPresence(log *slog.Logger, users repositories.IUserRepository) *Presence {
	return &Presence{log: log, users: users}
}

func (p *Presence) MarkOnline(ctx context.Context, userID int64) {
	if err := p.users.UpdateUserStatus(ctx, userID, domain.StatusOnline); err != nil {
		p.log.Error("failed to mark user online", "user_id", userID, "err", err)
	}
}

func (p *Presence) MarkOffline(ctx context.Context, userID int64) {
	if err := p.users.UpdateUserStatus(ctx, userID, domain.StatusOffline); err != nil {
		p.log.Error("failed to mark user offline", "user_id", userID, "err", err)
	}
}
