package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/TheDTCStore/dtc-store-mobile/internal/domain"
	apperrors "github.com/TheDTCStore/dtc-store-mobile/pkg/errors"
)

const (
	orderKeyPrefix      = "order:"
	orderIndexKeyPrefix = "orders:user:"
)

// OrderRepository implements repository.OrderRepository using Redis. Orders
// are stored as JSON under their ID; a per-user sorted set scored by creation
// time serves as the listing index.
type OrderRepository struct {
	client *redis.Client
}

// NewOrderRepository creates a new Redis-backed order repository.
func NewOrderRepository(client *redis.Client) *OrderRepository {
	return &OrderRepository{client: client}
}

// Get retrieves an order by ID from Redis.
func (r *OrderRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	data, err := r.client.Get(ctx, orderKeyPrefix+orderID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("order", orderID)
		}
		return nil, fmt.Errorf("redis get order: %w", err)
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}

	return &order, nil
}

// Save persists an order and adds it to the owning user's index.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, orderKeyPrefix+order.ID, data, 0)
	pipe.ZAdd(ctx, orderIndexKeyPrefix+order.UserID, redis.Z{
		Score:  float64(order.CreatedAt.UnixMilli()),
		Member: order.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save order: %w", err)
	}

	return nil
}

// ListByUser returns the user's orders, newest first. Index entries whose
// order record has expired or gone missing are skipped.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	ids, err := r.client.ZRevRange(ctx, orderIndexKeyPrefix+userID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		order, err := r.Get(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		orders = append(orders, *order)
	}

	return orders, nil
}
