package repository

import (
	"context"

	"github.com/TheDTCStore/dtc-store-mobile/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves a cart by its user ID.
	Get(ctx context.Context, userID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart for the user.
	Save(ctx context.Context, cart *domain.Cart) error

	// SaveIfVersion persists a cart only if the stored version still equals
	// expectedVersion, incrementing the version on success. It returns false
	// when another writer got there first.
	SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int) (bool, error)

	// Delete removes a cart from the store by the user ID.
	Delete(ctx context.Context, userID string) error
}

// FavoritesRepository defines the interface for per-user favorite products.
type FavoritesRepository interface {
	// Add marks a product as a favorite of the user.
	Add(ctx context.Context, userID, productID string) error

	// Remove unmarks a favorite. Removing an absent entry is not an error.
	Remove(ctx context.Context, userID, productID string) error

	// Contains reports whether the product is a favorite of the user.
	Contains(ctx context.Context, userID, productID string) (bool, error)

	// List returns the user's favorite product ids, newest first.
	List(ctx context.Context, userID string) ([]string, error)
}

// AddressRepository defines the interface for address book persistence.
type AddressRepository interface {
	// Get retrieves a user's address book.
	Get(ctx context.Context, userID string) (*domain.AddressBook, error)

	// Save persists an address book, overwriting any existing one.
	Save(ctx context.Context, book *domain.AddressBook) error
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Get retrieves an order by its ID.
	Get(ctx context.Context, orderID string) (*domain.Order, error)

	// Save persists an order and indexes it under its user.
	Save(ctx context.Context, order *domain.Order) error

	// ListByUser returns a user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}
