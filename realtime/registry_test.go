package realtime

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeConn records every payload passed to Send. It stands in for a real
// transport connection in registry and router tests.
type fakeConn struct {
	mu     sync.Mutex
	sent   [][]byte
	closed bool

	sendErr error
}

func (f *fakeConn) Send(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, data)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) frames(t *testing.T) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]map[string]any, 0, len(f.sent))
	for _, raw := range f.sent {
		var frame map[string]any
		require.NoError(t, json.Unmarshal(raw, &frame))
		out = append(out, frame)
	}
	return out
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestRegistry_Register_Single_User(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	conn := &fakeConn{}

	// Given no user is connected
	req.Zero(registry.Count())

	// When a user registers
	displaced := registry.Register(7, conn)

	// Then the connection is retrievable and nothing was displaced
	req.Nil(displaced)
	req.Equal(1, registry.Count())

	got, ok := registry.Lookup(7)
	req.True(ok)
	req.Same(conn, got.(*fakeConn))
}

func TestRegistry_Register_Last_Wins(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	first := &fakeConn{}
	second := &fakeConn{}

	// Given a user already connected on one device
	registry.Register(7, first)

	// When the same user registers on a second device
	displaced := registry.Register(7, second)

	// Then the new connection owns the entry and the old one is returned
	req.Same(first, displaced.(*fakeConn))
	req.Equal(1, registry.Count())

	got, ok := registry.Lookup(7)
	req.True(ok)
	req.Same(second, got.(*fakeConn))
}

func TestRegistry_Register_Same_Conn_Twice(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	conn := &fakeConn{}

	// Given a registered connection
	registry.Register(7, conn)

	// When the exact same connection re-authenticates
	displaced := registry.Register(7, conn)

	// Then nothing is displaced
	req.Nil(displaced)
	req.Equal(1, registry.Count())
}

func TestRegistry_ResolveSender(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	conn := &fakeConn{}
	stranger := &fakeConn{}

	registry.Register(7, conn)

	// When resolving a registered connection
	userID, ok := registry.ResolveSender(conn)

	// Then its owner comes back
	req.True(ok)
	req.Equal(int64(7), userID)

	// And an unknown connection resolves to nothing
	_, ok = registry.ResolveSender(stranger)
	req.False(ok)
}

func TestRegistry_Unregister_Removes_Entry(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	conn := &fakeConn{}

	// Given a registered connection
	registry.Register(7, conn)

	// When it unregisters
	userID, ok := registry.Unregister(conn)

	// Then the entry is gone and the owner reported
	req.True(ok)
	req.Equal(int64(7), userID)
	req.Zero(registry.Count())

	_, ok = registry.Lookup(7)
	req.False(ok)
	_, ok = registry.ResolveSender(conn)
	req.False(ok)
}

func TestRegistry_Unregister_Stale_Handle_Is_Noop(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	old := &fakeConn{}
	current := &fakeConn{}

	// Given a session that was superseded by a newer connection
	registry.Register(7, old)
	registry.Register(7, current)

	// When the superseded handle closes late
	_, ok := registry.Unregister(old)

	// Then it matches nothing and the live session survives
	req.False(ok)
	req.Equal(1, registry.Count())

	got, ok := registry.Lookup(7)
	req.True(ok)
	req.Same(current, got.(*fakeConn))
}
