package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TheDTCStore/dtc-store-mobile/internal/session"
	apperrors "github.com/TheDTCStore/dtc-store-mobile/pkg/errors"
)

// LoginInput holds the credentials for a login request.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the issued session plus the public account view.
type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Account   *session.Account `json:"account"`
}

// AuthService handles login, logout, and profile reads over the static
// account table and the Redis session store.
type AuthService struct {
	accounts *session.Accounts
	sessions *session.Store
	logger   *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(accounts *session.Accounts, sessions *session.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		logger:   logger,
	}
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Username == "" || input.Password == "" {
		return nil, apperrors.InvalidInput("username and password are required")
	}

	acct, ok := s.accounts.Authenticate(input.Username, input.Password)
	if !ok {
		s.logger.WarnContext(ctx, "failed login attempt",
			slog.String("username", input.Username),
		)
		return nil, apperrors.Unauthorized("invalid username or password")
	}

	sess, err := s.sessions.Create(ctx, acct)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", acct.ID),
		slog.String("username", acct.Username),
	)

	return &LoginResult{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		Account:   acct,
	}, nil
}

// Logout revokes the given session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.InvalidInput("token is required")
	}

	if err := s.sessions.Destroy(ctx, token); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// Profile returns the public account view for a user ID.
func (s *AuthService) Profile(ctx context.Context, userID string) (*session.Account, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	acct, ok := s.accounts.Get(userID)
	if !ok {
		return nil, apperrors.NotFound("account", userID)
	}
	return acct, nil
}
