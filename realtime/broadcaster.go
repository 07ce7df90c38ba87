package realtime

import (
	"encoding/json"
	"log/slog"
)

// Broadcaster pushes out-of-band events (game invites, tournament pairings)
// to a user's live connection. Delivery is fire-and-forget: an offline user
// simply misses the event and re-derives it from stored state later.
type Broadcaster struct {
	log      *slog.Logger
	registry *Registry
}

func NewBroadcaster(log *slog.Logger, registry *Registry) *Broadcaster {
	return &Broadcaster{log: log, registry: registry}
}

// Push serializes payload and sends it to userID's connection if one is
// live. It never returns an error: not-connected is a silent no-op, and a
// failed send is only logged.
func (b *Broadcaster) Push(userID int64, payload any) {
	conn, ok := b.registry.Lookup(userID)
	if !ok {
		b.log.Debug("push skipped, user not connected", "user_id", userID)
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		b.log.Error("failed to serialize push payload", "user_id", userID, "err", err)
		return
	}

	if err := conn.Send(data); err != nil {
		b.log.Warn("failed to push event", "user_id", userID, "err", err)
	}
}
