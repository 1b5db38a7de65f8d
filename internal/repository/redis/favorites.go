package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const favoritesKeyPrefix = "favorites:"

// FavoritesRepository implements repository.FavoritesRepository using Redis.
// Favorites live in a per-user sorted set scored by the time they were added,
// so listing comes back newest first.
type FavoritesRepository struct {
	client *redis.Client
}

// NewFavoritesRepository creates a new Redis-backed favorites repository.
func NewFavoritesRepository(client *redis.Client) *FavoritesRepository {
	return &FavoritesRepository{client: client}
}

// Add marks a product as a favorite of the user.
func (r *FavoritesRepository) Add(ctx context.Context, userID, productID string) error {
	err := r.client.ZAdd(ctx, favoritesKeyPrefix+userID, redis.Z{
		Score:  float64(time.Now().UnixMilli()),
		Member: productID,
	}).Err()
	if err != nil {
		return fmt.Errorf("redis add favorite: %w", err)
	}
	return nil
}

// Remove unmarks a favorite. Absent entries are a no-op.
func (r *FavoritesRepository) Remove(ctx context.Context, userID, productID string) error {
	if err := r.client.ZRem(ctx, favoritesKeyPrefix+userID, productID).Err(); err != nil {
		return fmt.Errorf("redis remove favorite: %w", err)
	}
	return nil
}

// Contains reports whether the product is a favorite of the user.
func (r *FavoritesRepository) Contains(ctx context.Context, userID, productID string) (bool, error) {
	_, err := r.client.ZScore(ctx, favoritesKeyPrefix+userID, productID).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis check favorite: %w", err)
	}
	return true, nil
}

// List returns the user's favorite product ids, newest first.
func (r *FavoritesRepository) List(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.client.ZRevRange(ctx, favoritesKeyPrefix+userID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list favorites: %w", err)
	}
	return ids, nil
}
