//go:generate go run go.uber.org/mock/mockgen -source=block.go -destination=../mocks/mock_block_repository.go -package=mocks
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"chat-arena/domain"
)

type IBlockRepository interface {
	IsBlocked(ctx context.Context, blockerID, blockedID int64) (bool, error)
	Block(ctx context.Context, blockerID, blockedID int64) error
	Unblock(ctx context.Context, blockerID, blockedID int64) error
	GetBlockedUsers(ctx context.Context, userID int64) ([]domain.User, error)
}

type BlockRepository struct {
	db *sql.DB
}

func NewBlockRepository(store *Store) *BlockRepository {
	return &BlockRepository{db: store.DB()}
}

// IsBlocked reports whether blockerID has blocked blockedID. The directed
// pair semantics live here; callers decide how many directions to check.
func (r *BlockRepository) IsBlocked(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blocked_users WHERE blocker_id = ? AND blocked_id = ?`,
		blockerID, blockedID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check block: %w", err)
	}
	return count > 0, nil
}

// Block records the directed pair. Re-blocking an already blocked user is a no-op.
func (r *BlockRepository) Block(ctx context.Context, blockerID, blockedID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blocked_users (blocker_id, blocked_id, created_at) VALUES (?, ?, ?)`,
		blockerID, blockedID, toMillis(time.Now()),
	)
	if isUniqueViolation(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("block user: %w", err)
	}
	return nil
}

func (r *BlockRepository) Unblock(ctx context.Context, blockerID, blockedID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM blocked_users WHERE blocker_id = ? AND blocked_id = ?`,
		blockerID, blockedID,
	)
	if err != nil {
		return fmt.Errorf("unblock user: %w", err)
	}
	return nil
}

func (r *BlockRepository) GetBlockedUsers(ctx context.Context, userID int64) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.username, u.password_hash, u.bio, u.avatar, u.status, u.created_at
		 FROM users u
		 JOIN blocked_users b ON u.id = b.blocked_id
		 WHERE b.blocker_id = ?`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list blocked users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
