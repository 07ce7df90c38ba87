package realtime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-arena/domain"
	"chat-arena/mocks"
)

type routerFixture struct {
	router   *Router
	registry *Registry
	users    *mocks.MockIUserRepository
	messages *mocks.MockIMessageRepository
	blocks   *mocks.MockIBlockRepository
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := mocks.NewMockIUserRepository(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)
	blocks := mocks.NewMockIBlockRepository(ctrl)

	registry := NewRegistry()
	presence := NewPresence(log, users)

	return routerFixture{
		router:   NewRouter(log, registry, presence, messages, blocks, nil),
		registry: registry,
		users:    users,
		messages: messages,
		blocks:   blocks,
	}
}

func TestRouter_Auth_Registers_And_Marks_Online(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	conn := &fakeConn{}

	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOnline).Return(nil)

	// When an auth frame arrives
	fx.router.HandleFrame(context.Background(), conn, []byte(`{"type":"auth","userId":7}`))

	// Then the connection is bound and no frame goes back
	userID, ok := fx.registry.ResolveSender(conn)
	req.True(ok)
	req.Equal(int64(7), userID)
	req.Empty(conn.frames(t))
}

func TestRouter_Auth_Accepts_String_UserID(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	conn := &fakeConn{}

	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOnline).Return(nil)

	// When the client sends the id as a quoted string
	fx.router.HandleFrame(context.Background(), conn, []byte(`{"type":"auth","userId":"7"}`))

	// Then it still binds under the numeric id
	_, ok := fx.registry.Lookup(7)
	req.True(ok)
}

func TestRouter_Auth_Missing_UserID(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	conn := &fakeConn{}

	// When an auth frame arrives without an id
	fx.router.HandleFrame(context.Background(), conn, []byte(`{"type":"auth"}`))

	// Then an error frame comes back and nothing is registered
	frames := conn.frames(t)
	req.Len(frames, 1)
	req.Equal("error", frames[0]["type"])
	req.Equal("userId is required", frames[0]["message"])
	req.Zero(fx.registry.Count())
}

func TestRouter_Auth_Supersedes_Prior_Session(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	first := &fakeConn{}
	second := &fakeConn{}

	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOnline).Return(nil).Times(2)

	// Given a user connected on one device
	fx.router.HandleFrame(context.Background(), first, []byte(`{"type":"auth","userId":7}`))

	// When the same user authenticates on a second device
	fx.router.HandleFrame(context.Background(), second, []byte(`{"type":"auth","userId":7}`))

	// Then the old handle is closed and the new one owns the session
	req.True(first.isClosed())
	got, ok := fx.registry.Lookup(7)
	req.True(ok)
	req.Same(second, got.(*fakeConn))
}

func TestRouter_Auth_Identity_Switch_Releases_Old_Entry(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	conn := &fakeConn{}

	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOnline).Return(nil)
	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOffline).Return(nil)
	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(8), domain.StatusOnline).Return(nil)
	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(8), domain.StatusOffline).Return(nil)

	// Given a connection authenticated as one user
	fx.router.HandleFrame(context.Background(), conn, []byte(`{"type":"auth","userId":7}`))

	// When it re-authenticates as a different user
	fx.router.HandleFrame(context.Background(), conn, []byte(`{"type":"auth","userId":8}`))

	// Then only the new identity is bound and the old user went offline
	req.Equal(1, fx.registry.Count())
	_, ok := fx.registry.Lookup(7)
	req.False(ok)
	got, ok := fx.registry.Lookup(8)
	req.True(ok)
	req.Same(conn, got.(*fakeConn))

	// And closing leaves no dangling entry behind
	fx.router.HandleClose(context.Background(), conn)
	req.Zero(fx.registry.Count())
}

func TestRouter_Message_Requires_Auth(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	conn := &fakeConn{}

	// When a message frame arrives before any auth
	fx.router.HandleFrame(context.Background(), conn, []byte(`{"type":"message","receiverId":9,"content":"hi"}`))

	// Then it is rejected without touching the store
	frames := conn.frames(t)
	req.Len(frames, 1)
	req.Equal("Authentication required", frames[0]["message"])
}

func TestRouter_Message_Delivered_And_Confirmed(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	sender := &fakeConn{}
	receiver := &fakeConn{}
	now := time.Now().UTC().Truncate(time.Millisecond)

	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), gomock.Any(), domain.StatusOnline).Return(nil).Times(2)
	fx.blocks.EXPECT().IsBlocked(gomock.Any(), int64(9), int64(7)).Return(false, nil)
	fx.blocks.EXPECT().IsBlocked(gomock.Any(), int64(7), int64(9)).Return(false, nil)
	fx.messages.EXPECT().CreateMessage(gomock.Any(), int64(7), int64(9), "hi", gomock.Any()).Return(int64(42), nil)
	fx.messages.EXPECT().GetMessageByID(gomock.Any(), int64(42)).Return(domain.Message{
		ID: 42, SenderID: 7, ReceiverID: 9, Content: "hi", CreatedAt: now,
	}, nil)

	// Given both users are connected
	fx.router.HandleFrame(context.Background(), sender, []byte(`{"type":"auth","userId":7}`))
	fx.router.HandleFrame(context.Background(), receiver, []byte(`{"type":"auth","userId":9}`))

	// When the sender sends a message with a correlation token
	fx.router.HandleFrame(context.Background(), sender, []byte(`{"type":"message","receiverId":9,"content":"hi","tempId":"t1"}`))

	// Then the receiver gets the stored message
	recvFrames := receiver.frames(t)
	req.Len(recvFrames, 1)
	req.Equal("message", recvFrames[0]["type"])
	req.EqualValues(42, recvFrames[0]["id"])
	req.EqualValues(7, recvFrames[0]["senderId"])
	req.Equal("hi", recvFrames[0]["content"])

	// And the sender gets a confirmation echoing the token
	sendFrames := sender.frames(t)
	req.Len(sendFrames, 1)
	req.Equal("message_confirmed", sendFrames[0]["type"])
	req.Equal("t1", sendFrames[0]["tempId"])
	req.EqualValues(42, sendFrames[0]["id"])
}

func TestRouter_Message_To_Offline_Recipient_Still_Confirmed(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	sender := &fakeConn{}
	now := time.Now().UTC()

	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOnline).Return(nil)
	fx.blocks.EXPECT().IsBlocked(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
	fx.messages.EXPECT().CreateMessage(gomock.Any(), int64(7), int64(9), "hi", gomock.Any()).Return(int64(43), nil)
	fx.messages.EXPECT().GetMessageByID(gomock.Any(), int64(43)).Return(domain.Message{
		ID: 43, SenderID: 7, ReceiverID: 9, Content: "hi", CreatedAt: now,
	}, nil)

	// Given only the sender is connected
	fx.router.HandleFrame(context.Background(), sender, []byte(`{"type":"auth","userId":7}`))

	// When a message targets the offline user
	fx.router.HandleFrame(context.Background(), sender, []byte(`{"type":"message","receiverId":9,"content":"hi","tempId":"t2"}`))

	// Then the sender is still confirmed; the recipient catches up from history
	frames := sender.frames(t)
	req.Len(frames, 1)
	req.Equal("message_confirmed", frames[0]["type"])
	req.Equal("t2", frames[0]["tempId"])
}

func TestRouter_Message_Blocked_Either_Direction(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	sender := &fakeConn{}

	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOnline).Return(nil)
	fx.blocks.EXPECT().IsBlocked(gomock.Any(), int64(9), int64(7)).Return(true, nil)

	fx.router.HandleFrame(context.Background(), sender, []byte(`{"type":"auth","userId":7}`))

	// When the recipient has blocked the sender
	fx.router.HandleFrame(context.Background(), sender, []byte(`{"type":"message","receiverId":9,"content":"hi"}`))

	// Then nothing is stored and the sender sees a single error frame
	frames := sender.frames(t)
	req.Len(frames, 1)
	req.Equal("error", frames[0]["type"])
	req.Equal("Cannot send message to this user", frames[0]["message"])
}

func TestRouter_Message_Store_Failure_Drops_Silently(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	sender := &fakeConn{}

	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOnline).Return(nil)
	fx.blocks.EXPECT().IsBlocked(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
	fx.messages.EXPECT().CreateMessage(gomock.Any(), int64(7), int64(9), "hi", gomock.Any()).
		Return(int64(0), errors.New("disk full"))

	fx.router.HandleFrame(context.Background(), sender, []byte(`{"type":"auth","userId":7}`))

	// When the insert fails
	fx.router.HandleFrame(context.Background(), sender, []byte(`{"type":"message","receiverId":9,"content":"hi","tempId":"t3"}`))

	// Then no confirmation and no error frame leak back
	req.Empty(sender.frames(t))
}

func TestRouter_Message_Missing_Fields(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	sender := &fakeConn{}

	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOnline).Return(nil)
	fx.router.HandleFrame(context.Background(), sender, []byte(`{"type":"auth","userId":7}`))

	// When the frame lacks content
	fx.router.HandleFrame(context.Background(), sender, []byte(`{"type":"message","receiverId":9}`))

	// Then it is rejected before any store access
	frames := sender.frames(t)
	req.Len(frames, 1)
	req.Equal("receiverId and content are required", frames[0]["message"])
}

func TestRouter_Typing_Forwarded_When_Online(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	sender := &fakeConn{}
	receiver := &fakeConn{}

	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), gomock.Any(), domain.StatusOnline).Return(nil).Times(2)
	fx.router.HandleFrame(context.Background(), sender, []byte(`{"type":"auth","userId":7}`))
	fx.router.HandleFrame(context.Background(), receiver, []byte(`{"type":"auth","userId":9}`))

	// When a typing indicator targets a live user
	fx.router.HandleFrame(context.Background(), sender, []byte(`{"type":"typing","receiverId":9,"isTyping":true}`))

	// Then it is relayed with the resolved sender id
	frames := receiver.frames(t)
	req.Len(frames, 1)
	req.Equal("typing", frames[0]["type"])
	req.EqualValues(7, frames[0]["senderId"])
	req.Equal(true, frames[0]["isTyping"])
}

func TestRouter_Typing_To_Offline_Is_Dropped(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	sender := &fakeConn{}

	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOnline).Return(nil)
	fx.router.HandleFrame(context.Background(), sender, []byte(`{"type":"auth","userId":7}`))

	// When a typing indicator targets an offline user
	fx.router.HandleFrame(context.Background(), sender, []byte(`{"type":"typing","receiverId":9,"isTyping":true}`))

	// Then nothing comes back, not even an error
	req.Empty(sender.frames(t))
}

func TestRouter_Malformed_Frame(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	conn := &fakeConn{}

	// When the payload is not JSON
	fx.router.HandleFrame(context.Background(), conn, []byte(`{not json`))

	// Then only an error frame goes back
	frames := conn.frames(t)
	req.Len(frames, 1)
	req.Equal("Invalid frame", frames[0]["message"])
}

func TestRouter_Unknown_Frame_Type(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	conn := &fakeConn{}

	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOnline).Return(nil)
	fx.router.HandleFrame(context.Background(), conn, []byte(`{"type":"auth","userId":7}`))

	// When an authenticated client sends an unknown type
	fx.router.HandleFrame(context.Background(), conn, []byte(`{"type":"dance"}`))

	// Then it gets an error frame and stays connected
	frames := conn.frames(t)
	req.Len(frames, 1)
	req.Equal("Invalid frame", frames[0]["message"])
	req.Equal(1, fx.registry.Count())
}

func TestRouter_Close_Marks_Offline(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	conn := &fakeConn{}

	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOnline).Return(nil)
	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOffline).Return(nil)

	fx.router.HandleFrame(context.Background(), conn, []byte(`{"type":"auth","userId":7}`))

	// When the transport reports the connection closed
	fx.router.HandleClose(context.Background(), conn)

	// Then the session is gone
	req.Zero(fx.registry.Count())
}

func TestRouter_Close_Of_Superseded_Handle_Keeps_User_Online(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)
	old := &fakeConn{}
	current := &fakeConn{}

	// Only the two online transitions; no offline transition may happen.
	fx.users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOnline).Return(nil).Times(2)

	fx.router.HandleFrame(context.Background(), old, []byte(`{"type":"auth","userId":7}`))
	fx.router.HandleFrame(context.Background(), current, []byte(`{"type":"auth","userId":7}`))

	// When the stale handle's close event finally fires
	fx.router.HandleClose(context.Background(), old)

	// Then the live session is untouched
	req.Equal(1, fx.registry.Count())
	_, ok := fx.registry.Lookup(7)
	req.True(ok)
}

func TestRouter_Close_Of_Unknown_Conn_Is_Noop(t *testing.T) {
	req := require.New(t)
	fx := newRouterFixture(t)

	// When a never-authenticated connection closes
	fx.router.HandleClose(context.Background(), &fakeConn{})

	// Then nothing happens
	req.Zero(fx.registry.Count())
}
