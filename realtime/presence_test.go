package realtime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.uber.org/mock/gomock"

	"chat-arena/domain"
	"chat-arena/mocks"
)

func TestPresence_MarkOnline(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockIUserRepository(ctrl)
	presence := NewPresence(slog.New(slog.NewTextHandler(io.Discard, nil)), users)

	users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOnline).Return(nil)

	presence.MarkOnline(context.Background(), 7)
}

func TestPresence_MarkOffline_Store_Failure_Is_Swallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockIUserRepository(ctrl)
	presence := NewPresence(slog.New(slog.NewTextHandler(io.Discard, nil)), users)

	users.EXPECT().UpdateUserStatus(gomock.Any(), int64(7), domain.StatusOffline).
		Return(errors.New("db locked"))

	// Best effort: the failure is logged, never propagated
	presence.MarkOffline(context.Background(), 7)
}
