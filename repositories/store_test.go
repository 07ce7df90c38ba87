package repositories

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// openTestStore opens a fresh store in a per-test directory.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "chat.db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_Bootstraps_Schema(t *testing.T) {
	req := require.New(t)
	store := openTestStore(t)

	// The schema is in place: every table answers a count query
	for _, table := range []string{
		"users", "messages", "blocked_users",
		"game_invitations", "tournaments", "tournament_participants",
	} {
		var count int
		err := store.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		req.NoError(err, table)
		req.Zero(count, table)
	}
}

func TestOpen_Rejects_Empty_Path(t *testing.T) {
	_, err := Open("  ", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}

func TestOpen_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(dir, "chat.db")

	first, err := Open(path, log)
	req.NoError(err)
	req.NoError(first.Close())

	// Reopening an existing file must not fail on CREATE TABLE
	second, err := Open(path, log)
	req.NoError(err)
	req.NoError(second.Close())
}
