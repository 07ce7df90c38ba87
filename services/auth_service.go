package services

import (
	"context"
	"fmt"

	"chat-arena/auth"
	"chat-arena/errors"
	"chat-arena/repositories"
)

type IAuthService interface {
	Register(ctx context.Context, username, password string) (AuthResult, error)
	Login(ctx context.Context, username, password string) (AuthResult, error)
}

// StatusNotifier is the narrow slice of the presence component the auth flow
// needs: marking a user online right after a successful login.
type StatusNotifier interface {
	MarkOnline(ctx context.Context, userID int64)
}

type AuthResult struct {
	UserID   int64
	Username string
	Token    string
}

type AuthService struct {
	users    repositories.IUserRepository
	tokens   *auth.TokenIssuer
	presence StatusNotifier
}

func NewAuthService(users repositories.IUserRepository, tokens *auth.TokenIssuer, presence StatusNotifier) *AuthService {
	return &AuthService{users: users, tokens: tokens, presence: presence}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (AuthResult, error) {
	// Validate business rules before any expensive cryptographic operation.
	if err := auth.ValidateRegister(auth.RegisterRequest{Username: username, Password: password}); err != nil {
		return AuthResult{}, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hashing failed: %w", err)
	}

	userID, err := s.users.CreateUser(ctx, username, hashed)
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.tokens.GenerateToken(userID, username)
	if err != nil {
		return AuthResult{}, errors.ErrTokenGeneration
	}

	return AuthResult{UserID: userID, Username: username, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (AuthResult, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		// Generic error to prevent user enumeration attacks.
		return AuthResult{}, errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return AuthResult{}, errors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return AuthResult{}, errors.ErrTokenGeneration
	}

	s.presence.MarkOnline(ctx, user.ID)

	return AuthResult{UserID: user.ID, Username: user.Username, Token: token}, nil
}
