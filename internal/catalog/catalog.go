package catalog

import (
	"context"

	"github.com/TheDTCStore/dtc-store-mobile/internal/domain"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/pagination"
)

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Category string
	Tag      string
}

// Repository supplies read-only catalog records. Products returned are
// immutable snapshots; callers must not mutate them.
type Repository interface {
	// ListProducts returns a page of products matching the filter plus the
	// total match count.
	ListProducts(ctx context.Context, filter ProductFilter, page pagination.Params) ([]domain.Product, int, error)

	// GetProduct returns a single product by id.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)

	// SearchProducts returns a page of products whose name, description, or
	// tags match the query, plus the total match count.
	SearchProducts(ctx context.Context, query string, page pagination.Params) ([]domain.Product, int, error)

	// ListCategories returns all storefront categories.
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// ListBanners returns the promotional banners for the home screen.
	ListBanners(ctx context.Context) ([]domain.Banner, error)
}
