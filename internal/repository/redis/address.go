package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/TheDTCStore/dtc-store-mobile/internal/domain"
	apperrors "github.com/TheDTCStore/dtc-store-mobile/pkg/errors"
)

const addressKeyPrefix = "addresses:"

// AddressRepository implements repository.AddressRepository using Redis. The
// whole address book is stored as one JSON document per user; entries are few
// and always read together.
type AddressRepository struct {
	client *redis.Client
}

// NewAddressRepository creates a new Redis-backed address repository.
func NewAddressRepository(client *redis.Client) *AddressRepository {
	return &AddressRepository{client: client}
}

// Get retrieves a user's address book from Redis.
func (r *AddressRepository) Get(ctx context.Context, userID string) (*domain.AddressBook, error) {
	data, err := r.client.Get(ctx, addressKeyPrefix+userID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("address book", userID)
		}
		return nil, fmt.Errorf("redis get address book: %w", err)
	}

	var book domain.AddressBook
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("unmarshal address book: %w", err)
	}

	return &book, nil
}

// Save persists a user's address book.
func (r *AddressRepository) Save(ctx context.Context, book *domain.AddressBook) error {
	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("marshal address book: %w", err)
	}

	if err := r.client.Set(ctx, addressKeyPrefix+book.UserID, data, 0).Err(); err != nil {
		return fmt.Errorf("redis save address book: %w", err)
	}

	return nil
}
