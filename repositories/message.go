//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
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

type IMessageRepository interface {
	CreateMessage(ctx context.Context, senderID, receiverID int64, content, language string) (int64, error)
	GetMessageByID(ctx context.Context, id int64) (domain.Message, error)
	GetConversation(ctx context.Context, userID, otherUserID int64) ([]domain.ConversationMessage, error)
}

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(store *Store) *MessageRepository {
	return &MessageRepository{db: store.DB()}
}

// CreateMessage persists an accepted message and returns its assigned id.
func (r *MessageRepository) CreateMessage(ctx context.Context, senderID, receiverID int64, content, language string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (sender_id, receiver_id, content, language, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		senderID, receiverID, content, language, toMillis(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("create message: %w", err)
	}
	return res.LastInsertId()
}

func (r *MessageRepository) GetMessageByID(ctx context.Context, id int64) (domain.Message, error) {
	var msg domain.Message
	var createdAt int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, sender_id, receiver_id, content, language, created_at
		 FROM messages WHERE id = ?`, id,
	).Scan(&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content, &msg.Language, &createdAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return domain.Message{}, errors.ErrNotFound
	}
	if err != nil {
		return domain.Message{}, fmt.Errorf("get message: %w", err)
	}
	msg.CreatedAt = fromMillis(createdAt)
	return msg, nil
}

// GetConversation returns the full history between two users in both
// directions, oldest first, with the sender's username joined in.
func (r *MessageRepository) GetConversation(ctx context.Context, userID, otherUserID int64) ([]domain.ConversationMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.sender_id, m.receiver_id, m.content, m.language, m.created_at, u.username
		 FROM messages m
		 JOIN users u ON m.sender_id = u.id
		 WHERE (m.sender_id = ? AND m.receiver_id = ?)
		    OR (m.sender_id = ? AND m.receiver_id = ?)
		 ORDER BY m.created_at ASC, m.id ASC`,
		userID, otherUserID, otherUserID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	defer rows.Close()

	var history []domain.ConversationMessage
	for rows.Next() {
		var msg domain.ConversationMessage
		var createdAt int64
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.ReceiverID,
			&msg.Content, &msg.Language, &createdAt, &msg.SenderUsername); err != nil {
			return nil, fmt.Errorf("scan conversation row: %w", err)
		}
		msg.CreatedAt = fromMillis(createdAt)
		history = append(history, msg)
	}
	return history, rows.Err()
}
