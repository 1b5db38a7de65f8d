package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/TheDTCStore/dtc-store-mobile/internal/catalog"
	"github.com/TheDTCStore/dtc-store-mobile/internal/domain"
	"github.com/TheDTCStore/dtc-store-mobile/internal/event"
	"github.com/TheDTCStore/dtc-store-mobile/internal/repository"
	apperrors "github.com/TheDTCStore/dtc-store-mobile/pkg/errors"
)

// MaxItemsPerCart is the maximum number of distinct line items in a cart.
const MaxItemsPerCart = 50

// AddItemInput holds the parameters for adding an item to the cart.
type AddItemInput struct {
	ProductID string            `json:"product_id" validate:"required"`
	Options   map[string]string `json:"options"`
	Quantity  int               `json:"quantity" validate:"required,gte=1"`
}

// UpdateQuantityInput holds the signed quantity adjustment for a line item.
type UpdateQuantityInput struct {
	Delta int `json:"delta" validate:"required"`
}

// QuantityUpdate reports the outcome of a quantity adjustment.
type QuantityUpdate struct {
	Cart        *domain.Cart `json:"cart"`
	NewQuantity int          `json:"new_quantity"`
	Clamped     bool         `json:"clamped"`
}

// CartService implements the business logic for cart operations. Every
// mutation loads the cart, applies the change through the aggregate, and
// persists with optimistic locking.
type CartService struct {
	repo     repository.CartRepository
	catalog  catalog.Repository
	producer *event.Producer
	logger   *slog.Logger
	cartTTL  time.Duration
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, cat catalog.Repository, producer *event.Producer, logger *slog.Logger, cartTTL time.Duration) *CartService {
	return &CartService{
		repo:     repo,
		catalog:  cat,
		producer: producer,
		logger:   logger,
		cartTTL:  cartTTL,
	}
}

// GetCart retrieves the cart for a user. If no cart exists, returns an empty cart.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(userID, s.cartTTL), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem adds a product variant to the user's cart. The product is resolved
// from the catalog so the stored snapshot is always current at insert time.
// An existing entry with the same variant identity merges instead of
// duplicating.
func (s *CartService) AddItem(ctx context.Context, userID string, input AddItemInput) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Quantity <= 0 {
		return nil, apperrors.InvalidInput("quantity must be greater than 0")
	}

	product, err := s.catalog.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	expectedVersion := cart.Version

	if len(cart.Items) >= MaxItemsPerCart {
		if idx := indexOfVariant(cart, product.ID, input.Options); idx < 0 {
			return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d items", MaxItemsPerCart))
		}
	}

	item, err := cart.AddItem(product, domain.SelectedOptions(input.Options), input.Quantity)
	if err != nil {
		return nil, err
	}

	if err := s.saveCart(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}
	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("user_id", userID),
		slog.String("product_id", input.ProductID),
		slog.String("variant_key", item.VariantKey),
		slog.Int("quantity", item.Quantity),
	)

	return cart, nil
}

// UpdateQuantity adjusts a line item's quantity by a signed delta. The result
// reports the effective quantity and whether it was clamped against stock or
// the per-item maximum.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, delta int) (*QuantityUpdate, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if itemID == "" {
		return nil, apperrors.InvalidInput("item id is required")
	}
	if delta == 0 {
		return nil, apperrors.InvalidInput("delta must not be zero")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart for update: %w", err)
	}

	expectedVersion := cart.Version

	newQty, clamped, err := cart.UpdateQuantity(itemID, delta)
	if err != nil {
		return nil, err
	}

	if err := s.saveCart(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}
	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("user_id", userID),
		slog.String("item_id", itemID),
		slog.Int("delta", delta),
		slog.Int("new_quantity", newQty),
		slog.Bool("clamped", clamped),
	)

	return &QuantityUpdate{Cart: cart, NewQuantity: newQty, Clamped: clamped}, nil
}

// ToggleSelection flips the checkout selection flag on a single line item.
func (s *CartService) ToggleSelection(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if itemID == "" {
		return nil, apperrors.InvalidInput("item id is required")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart for toggle: %w", err)
	}

	expectedVersion := cart.Version

	if err := cart.ToggleSelection(itemID); err != nil {
		return nil, err
	}

	if err := s.saveCart(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}
	s.publishCartUpdated(ctx, cart)

	return cart, nil
}

// ToggleSelectAll selects every item unless all are already selected, in
// which case it deselects every item.
func (s *CartService) ToggleSelectAll(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart for toggle all: %w", err)
	}

	expectedVersion := cart.Version
	cart.ToggleSelectAll()

	if err := s.saveCart(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}
	s.publishCartUpdated(ctx, cart)

	return cart, nil
}

// RemoveItem removes a specific line item from the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if itemID == "" {
		return nil, apperrors.InvalidInput("item id is required")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart for remove: %w", err)
	}

	expectedVersion := cart.Version

	if err := cart.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.saveCart(ctx, cart, expectedVersion); err != nil {
		return nil, err
	}
	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("user_id", userID),
		slog.String("item_id", itemID),
	)

	return cart, nil
}

// ClearCart removes the user's cart entirely.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("user_id", userID),
	)

	return nil
}

// getOrCreateCart retrieves the cart for a user, creating an empty one if it
// does not exist.
func (s *CartService) getOrCreateCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(userID, s.cartTTL), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// saveCart persists the cart with optimistic locking, refreshing timestamps.
func (s *CartService) saveCart(ctx context.Context, cart *domain.Cart, expectedVersion int) error {
	now := time.Now().UTC()
	cart.UpdatedAt = now
	cart.ExpiresAt = now.Add(s.cartTTL)

	ok, err := s.repo.SaveIfVersion(ctx, cart, expectedVersion)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	if !ok {
		return apperrors.Conflict("cart was modified concurrently, please retry")
	}
	return nil
}

func (s *CartService) publishCartUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", cart.UserID),
			slog.String("error", err.Error()),
		)
	}
}

func indexOfVariant(cart *domain.Cart, productID string, options map[string]string) int {
	key := domain.VariantKey(productID, domain.SelectedOptions(options))
	for i := range cart.Items {
		if cart.Items[i].VariantKey == key {
			return i
		}
	}
	return -1
}
