package services

import (
	"context"

	"chat-arena/domain"
	"chat-arena/errors"
	"chat-arena/realtime"
	"chat-arena/repositories"
)

type IGameService interface {
	SendInvite(ctx context.Context, senderID, receiverID int64) (int64, error)
	RespondInvite(ctx context.Context, inviteID int64, status domain.InviteStatus) error
	CreateTournament(ctx context.Context, name string, participants []int64) (int64, error)
	NotifyMatch(ctx context.Context, tournamentID, player1ID, player2ID int64, round int) error
}

// Notifier is the outward-facing surface of the broadcaster: one-shot,
// at-most-once pushes with no delivery guarantee.
type Notifier interface {
	Push(userID int64, payload any)
}

type GameService struct {
	games    repositories.IGameRepository
	users    repositories.IUserRepository
	blocks   repositories.IBlockRepository
	notifier Notifier
}

func NewGameService(
	games repositories.IGameRepository,
	users repositories.IUserRepository,
	blocks repositories.IBlockRepository,
	notifier Notifier,
) *GameService {
	return &GameService{games: games, users: users, blocks: blocks, notifier: notifier}
}

// SendInvite records the invitation and pushes a live notification to the
// receiver. Blocking is mutual silence, so either direction forbids it.
func (s *GameService) SendInvite(ctx context.Context, senderID, receiverID int64) (int64, error) {
	if blocked, err := s.isBlockedEitherWay(ctx, senderID, receiverID); err != nil {
		return 0, err
	} else if blocked {
		return 0, errors.ErrBlocked
	}

	inviteID, err := s.games.CreateInvitation(ctx, senderID, receiverID)
	if err != nil {
		return 0, err
	}

	sender, err := s.users.GetUserByID(ctx, senderID)
	if err != nil {
		// The invitation exists either way; the push is best effort.
		return inviteID, nil
	}

	s.notifier.Push(receiverID, realtime.GameInvitationFrame{
		Type:           realtime.FrameGameInvitation,
		InviteID:       inviteID,
		SenderID:       senderID,
		SenderUsername: sender.Username,
	})
	return inviteID, nil
}

// RespondInvite updates the invitation and notifies its original sender.
func (s *GameService) RespondInvite(ctx context.Context, inviteID int64, status domain.InviteStatus) error {
	if err := s.games.UpdateInvitationStatus(ctx, inviteID, status); err != nil {
		return err
	}

	invite, err := s.games.GetInvitation(ctx, inviteID)
	if err != nil {
		return err
	}

	s.notifier.Push(invite.SenderID, realtime.InviteResponseFrame{
		Type:       realtime.FrameGameInvitationResponse,
		InviteID:   inviteID,
		Status:     string(status),
		OpponentID: invite.ReceiverID,
	})
	return nil
}

func (s *GameService) CreateTournament(ctx context.Context, name string, participants []int64) (int64, error) {
	return s.games.CreateTournament(ctx, name, participants)
}

// NotifyMatch tells both players about their pairing, each one receiving the
// other as opponent.
func (s *GameService) NotifyMatch(ctx context.Context, tournamentID, player1ID, player2ID int64, round int) error {
	tournament, err := s.games.GetTournament(ctx, tournamentID)
	if err != nil {
		return err
	}

	frame := realtime.TournamentMatchFrame{
		Type:           realtime.FrameTournamentMatch,
		TournamentID:   tournament.ID,
		TournamentName: tournament.Name,
		Round:          round,
	}

	frame.OpponentID = player2ID
	s.notifier.Push(player1ID, frame)

	frame.OpponentID = player1ID
	s.notifier.Push(player2ID, frame)

	return nil
}

func (s *GameService) isBlockedEitherWay(ctx context.Context, senderID, receiverID int64) (bool, error) {
	blocked, err := s.blocks.IsBlocked(ctx, receiverID, senderID)
	if err != nil || blocked {
		return blocked, err
	}
	return s.blocks.IsBlocked(ctx, senderID, receiverID)
}
