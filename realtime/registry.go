package realtime

import "sync"

// Registry maps a user id to its single live connection. It is the only
// shared mutable state of the delivery core; every transport goroutine goes
// through the mutex so concurrent auth and close events for the same user
// cannot race.
type Registry struct {
	mu       sync.RWMutex
	sessions map[int64]Conn
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[int64]Conn)}
}

// Register binds userID to conn, unconditionally superseding any prior
// mapping (last register wins). The displaced connection is returned so the
// caller can close it; nil when there was none or it is the same connection.
func (r *Registry) Register(userID int64, conn Conn) Conn {
	r.mu.Lock()
	defer r.mu.Unlock()

	prior := r.sessions[userID]
	r.sessions[userID] = conn
	if prior != nil && prior != conn {
		return prior
	}
	return nil
}

// Lookup returns the live connection for userID, if any.
func (r *Registry) Lookup(userID int64) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.sessions[userID]
	return conn, ok
}

// ResolveSender finds the user currently bound to conn by scanning the
// entries. Linear in active sessions, which is fine for a direct-message
// service; a reverse index would only pay off at broadcast scale.
func (r *Registry) ResolveSender(conn Conn) (int64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for userID, candidate := range r.sessions {
		if candidate == conn {
			return userID, true
		}
	}
	return 0, false
}

// Unregister removes the entry owning conn and reports which user it was.
// A stale handle that has already been superseded does not match any entry,
// so a belated close can never evict a newer session.
func (r *Registry) Unregister(conn Conn) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for userID, candidate := range r.sessions {
		if candidate == conn {
			delete(r.sessions, userID)
			return userID, true
		}
	}
	return 0, false
}

// Count reports active sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
