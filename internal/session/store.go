package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/TheDTCStore/dtc-store-mobile/pkg/errors"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/middleware"
)

const sessionKeyPrefix = "session:"

// Session is the server-side record behind an opaque bearer token.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store issues and validates opaque session tokens backed by Redis. Tokens
// are random UUIDs; everything the server knows about a session lives in the
// Redis record, so revocation is a key delete.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store with the given session TTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Create issues a new session token for the account.
func (s *Store) Create(ctx context.Context, acct *Account) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		Token:     uuid.New().String(),
		UserID:    acct.ID,
		Username:  acct.Username,
		Email:     acct.Email,
		Role:      acct.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+sess.Token, data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("redis set session: %w", err)
	}

	return sess, nil
}

// Get returns the session behind a token.
func (s *Store) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.Unauthorized("invalid or expired session")
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &sess, nil
}

// Destroy revokes a session token. Revoking an unknown token is not an error.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

// Validator adapts the store to the auth middleware's TokenValidator.
func (s *Store) Validator() middleware.TokenValidator {
	return func(ctx context.Context, token string) (*middleware.Claims, error) {
		sess, err := s.Get(ctx, token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: sess.UserID,
			Email:  sess.Email,
			Role:   sess.Role,
		}, nil
	}
}
