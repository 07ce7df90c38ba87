package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"chat-arena/moderation"
	"chat-arena/repositories"
)

const (
	errAuthRequired        = "Authentication required"
	errCannotSend          = "Cannot send message to this user"
	errInvalidFrame        = "Invalid frame"
	errMissingFields       = "receiverId and content are required"
	errMissingUserID       = "userId is required"
	errMissingTypingTarget = "receiverId is required"
)

// Router drives the per-frame state machine of a transport connection:
// unauthenticated until a valid auth frame, then message and typing relay,
// then cleanup on close. Failures are contained per frame; no incoming frame
// ever tears the connection down from this side.
type Router struct {
	log       *slog.Logger
	registry  *Registry
	presence  *Presence
	messages  repositories.IMessageRepository
	blocks    repositories.IBlockRepository
	moderator *moderation.Moderator
}

// NewRouter wires the delivery core. moderator may be nil, which disables censoring.
func NewRouter(
	log *slog.Logger,
	registry *Registry,
	presence *Presence,
	messages repositories.IMessageRepository,
	blocks repositories.IBlockRepository,
	moderator *moderation.Moderator,
) *Router {
	return &Router{
		log:       log,
		registry:  registry,
		presence:  presence,
		messages:  messages,
		blocks:    blocks,
		moderator: moderator,
	}
}

// HandleFrame processes one raw frame read from conn.
func (r *Router) HandleFrame(ctx context.Context, conn Conn, data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		r.log.Warn("malformed frame", "err", err)
		r.sendError(conn, errInvalidFrame)
		return
	}

	if env.Type == FrameAuth {
		r.handleAuth(ctx, conn, env)
		return
	}

	senderID, ok := r.registry.ResolveSender(conn)
	if !ok {
		r.sendError(conn, errAuthRequired)
		return
	}

	switch env.Type {
	case FrameMessage:
		r.handleMessage(ctx, conn, senderID, env)
	case FrameTyping:
		r.handleTyping(conn, senderID, env)
	default:
		r.log.Warn("unknown frame type", "type", env.Type, "sender_id", senderID)
		r.sendError(conn, errInvalidFrame)
	}
}

// HandleClose runs when the transport reports the connection gone. Only a
// close matching the current session entry flips the user offline; a stale
// superseded handle no-ops here.
func (r *Router) HandleClose(ctx context.Context, conn Conn) {
	userID, ok := r.registry.Unregister(conn)
	if !ok {
		return
	}
	r.log.Info("user disconnected", "user_id", userID)
	r.presence.MarkOffline(ctx, userID)
}

func (r *Router) handleAuth(ctx context.Context, conn Conn, env Envelope) {
	if env.UserID == nil {
		r.sendError(conn, errMissingUserID)
		return
	}
	userID := int64(*env.UserID)

	// A connection re-authenticating as a different user releases its old
	// entry first, so one handle never owns two identities and the old user
	// does not stay online behind a dead mapping.
	if priorID, ok := r.registry.ResolveSender(conn); ok && priorID != userID {
		r.registry.Unregister(conn)
		r.presence.MarkOffline(ctx, priorID)
	}

	displaced := r.registry.Register(userID, conn)
	if displaced != nil {
		// A second device took over; close the superseded handle instead of
		// leaving it as a zombie. Its own close event will no-op in
		// Unregister thanks to the handle identity guard.
		r.log.Info("session superseded", "user_id", userID)
		_ = displaced.Close()
	}

	r.log.Info("user connected", "user_id", userID)
	r.presence.MarkOnline(ctx, userID)
}

func (r *Router) handleMessage(ctx context.Context, conn Conn, senderID int64, env Envelope) {
	if env.ReceiverID == nil || env.Content == "" {
		r.sendError(conn, errMissingFields)
		return
	}
	receiverID := int64(*env.ReceiverID)

	blocked, err := r.isBlockedEitherWay(ctx, senderID, receiverID)
	if err != nil {
		r.log.Error("block check failed, dropping frame", "sender_id", senderID, "err", err)
		return
	}
	if blocked {
		r.sendError(conn, errCannotSend)
		return
	}

	content := env.Content
	if r.moderator != nil {
		censored, found := r.moderator.Censor(content)
		if len(found) > 0 {
			r.log.Info("message censored", "sender_id", senderID, "words", len(found))
		}
		content = censored
	}
	language := moderation.DetectLanguage(content)

	messageID, err := r.messages.CreateMessage(ctx, senderID, receiverID, content, language)
	if err != nil {
		// Infrastructure failure: no confirmation goes back, the client's
		// optimistic entry times out on its own.
		r.log.Error("failed to store message", "sender_id", senderID, "err", err)
		return
	}

	stored, err := r.messages.GetMessageByID(ctx, messageID)
	if err != nil {
		r.log.Error("failed to read back message", "message_id", messageID, "err", err)
		return
	}

	if receiverConn, ok := r.registry.Lookup(receiverID); ok {
		r.push(receiverConn, MessageFrame{
			Type:       FrameMessage,
			ID:         stored.ID,
			SenderID:   senderID,
			ReceiverID: receiverID,
			Content:    stored.Content,
			CreatedAt:  stored.CreatedAt,
		})
	}

	// The confirmation always goes back, whether or not the recipient was
	// live; offline recipients catch up through conversation history.
	r.push(conn, ConfirmedFrame{
		Type:       FrameMessageConfirmed,
		TempID:     env.TempID,
		ID:         stored.ID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    stored.Content,
		CreatedAt:  stored.CreatedAt,
	})
}

func (r *Router) handleTyping(conn Conn, senderID int64, env Envelope) {
	if env.ReceiverID == nil {
		r.sendError(conn, errMissingTypingTarget)
		return
	}

	// Ephemeral: no persistence, no confirmation. An offline recipient
	// simply never sees it.
	receiverConn, ok := r.registry.Lookup(int64(*env.ReceiverID))
	if !ok {
		return
	}
	r.push(receiverConn, TypingFrame{
		Type:     FrameTyping,
		SenderID: senderID,
		IsTyping: env.IsTyping,
	})
}

// isBlockedEitherWay applies the mutual-silence policy: a block in either
// direction forbids the message.
func (r *Router) isBlockedEitherWay(ctx context.Context, senderID, receiverID int64) (bool, error) {
	blocked, err := r.blocks.IsBlocked(ctx, receiverID, senderID)
	if err != nil || blocked {
		return blocked, err
	}
	return r.blocks.IsBlocked(ctx, senderID, receiverID)
}

func (r *Router) push(conn Conn, frame any) {
	data, err := json.Marshal(frame)
	if err != nil {
		r.log.Error("failed to serialize frame", "err", err)
		return
	}
	if err := conn.Send(data); err != nil {
		r.log.Warn("failed to send frame", "err", err)
	}
}

func (r *Router) sendError(conn Conn, message string) {
	r.push(conn, ErrorFrame{Type: FrameError, Message: message})
}
