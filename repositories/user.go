//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"chat-arena/domain"
	"chat-arena/errors"
)

type IUserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByID(ctx context.Context, id int64) (domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	UpdateUserProfile(ctx context.Context, id int64, bio, avatar string) error
	UpdateUserStatus(ctx context.Context, id int64, status domain.Status) error
}

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{db: store.DB()}
}

// CreateUser persists a user and returns its assigned id.
// A taken username surfaces as ErrUserAlreadyExists.
func (r *UserRepository) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, toMillis(time.Now()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, errors.ErrUserAlreadyExists
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return res.LastInsertId()
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, bio, avatar, status, created_at
		 FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, bio, avatar, status, created_at
		 FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *UserRepository) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, password_hash, bio, avatar, status, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
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

func (r *UserRepository) UpdateUserProfile(ctx context.Context, id int64, bio, avatar string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET bio = ?, avatar = ? WHERE id = ?`, bio, avatar, id)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateUserStatus(ctx context.Context, id int64, status domain.Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var user domain.User
	var status string
	var createdAt int64
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash,
		&user.Bio, &user.Avatar, &status, &createdAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return domain.User{}, errors.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("scan user: %w", err)
	}
	user.Status = domain.Status(status)
	user.CreatedAt = fromMillis(createdAt)
	return user, nil
}
