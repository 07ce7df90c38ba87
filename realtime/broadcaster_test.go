package realtime

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBroadcaster_Push_To_Connected_User(t *testing.T) {
	req := require.New(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := NewRegistry()
	broadcaster := NewBroadcaster(log, registry)
	conn := &fakeConn{}

	// Given a connected user
	registry.Register(7, conn)

	// When an event is pushed to them
	broadcaster.Push(7, GameInvitationFrame{
		Type:           FrameGameInvitation,
		InviteID:       3,
		SenderID:       9,
		SenderUsername: "alice",
	})

	// Then the serialized frame reaches the connection
	frames := conn.frames(t)
	req.Len(frames, 1)
	req.Equal("game_invitation", frames[0]["type"])
	req.EqualValues(3, frames[0]["inviteId"])
	req.Equal("alice", frames[0]["senderUsername"])
}

func TestBroadcaster_Push_To_Disconnected_User_Is_Silent(t *testing.T) {
	req := require.New(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := NewRegistry()
	broadcaster := NewBroadcaster(log, registry)

	// When pushing to a user with no live connection
	broadcaster.Push(42, TypingFrame{Type: FrameTyping, SenderID: 1})

	// Then nothing happens, no panic, no error surfaced
	req.Zero(registry.Count())
}

func TestBroadcaster_Push_Send_Failure_Is_Contained(t *testing.T) {
	req := require.New(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := NewRegistry()
	broadcaster := NewBroadcaster(log, registry)
	conn := &fakeConn{sendErr: errors.New("buffer full")}

	registry.Register(7, conn)

	// When the connection refuses the payload
	broadcaster.Push(7, TypingFrame{Type: FrameTyping, SenderID: 1})

	// Then the session entry survives; the transport owns teardown
	req.Equal(1, registry.Count())
}
