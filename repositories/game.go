//go:generate go run go.uber.org/mock/mockgen -source=game.go -destination=../mocks/mock_game_repository.go -package=mocks
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

type IGameRepository interface {
	CreateInvitation(ctx context.Context, senderID, receiverID int64) (int64, error)
	UpdateInvitationStatus(ctx context.Context, inviteID int64, status domain.InviteStatus) error
	GetInvitation(ctx context.Context, inviteID int64) (domain.GameInvitation, error)
	CreateTournament(ctx context.Context, name string, participants []int64) (int64, error)
	GetTournament(ctx context.Context, id int64) (domain.Tournament, error)
}

type GameRepository struct {
	db *sql.DB
}

func NewGameRepository(store *Store) *GameRepository {
	return &GameRepository{db: store.DB()}
}

func (r *GameRepository) CreateInvitation(ctx context.Context, senderID, receiverID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO game_invitations (sender_id, receiver_id, status, created_at)
		 VALUES (?, ?, ?, ?)`,
		senderID, receiverID, string(domain.InvitePending), toMillis(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("create invitation: %w", err)
	}
	return res.LastInsertId()
}

func (r *GameRepository) UpdateInvitationStatus(ctx context.Context, inviteID int64, status domain.InviteStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE game_invitations SET status = ? WHERE id = ?`, string(status), inviteID)
	if err != nil {
		return fmt.Errorf("update invitation: %w", err)
	}
	return nil
}

func (r *GameRepository) GetInvitation(ctx context.Context, inviteID int64) (domain.GameInvitation, error) {
	var invite domain.GameInvitation
	var status string
	var createdAt int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, sender_id, receiver_id, status, created_at
		 FROM game_invitations WHERE id = ?`, inviteID,
	).Scan(&invite.ID, &invite.SenderID, &invite.ReceiverID, &status, &createdAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return domain.GameInvitation{}, errors.ErrNotFound
	}
	if err != nil {
		return domain.GameInvitation{}, fmt.Errorf("get invitation: %w", err)
	}
	invite.Status = domain.InviteStatus(status)
	invite.CreatedAt = fromMillis(createdAt)
	return invite, nil
}

// CreateTournament inserts the tournament and its seeded participants in one
// transaction so a partial bracket never becomes visible.
func (r *GameRepository) CreateTournament(ctx context.Context, name string, participants []int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tournament tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO tournaments (name, status, created_at) VALUES (?, 'pending', ?)`,
		name, toMillis(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("create tournament: %w", err)
	}
	tournamentID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, userID := range participants {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tournament_participants (tournament_id, user_id, position)
			 VALUES (?, ?, ?)`, tournamentID, userID, i+1); err != nil {
			return 0, fmt.Errorf("seed participant %d: %w", userID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tournament: %w", err)
	}
	return tournamentID, nil
}

func (r *GameRepository) GetTournament(ctx context.Context, id int64) (domain.Tournament, error) {
	var t domain.Tournament
	var createdAt int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, status, current_round, created_at FROM tournaments WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Status, &t.CurrentRound, &createdAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return domain.Tournament{}, errors.ErrNotFound
	}
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	t.CreatedAt = fromMillis(createdAt)
	return t, nil
}
