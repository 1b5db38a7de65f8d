package service

import (
	"context"
	"fmt"

	"github.com/TheDTCStore/dtc-store-mobile/internal/catalog"
	"github.com/TheDTCStore/dtc-store-mobile/internal/domain"
	apperrors "github.com/TheDTCStore/dtc-store-mobile/pkg/errors"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/pagination"
)

// CatalogService exposes read-only catalog browsing: listing, detail,
// search, categories, and banners.
type CatalogService struct {
	repo catalog.Repository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo catalog.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListProducts returns a paginated product listing, optionally filtered by
// category or tag.
func (s *CatalogService) ListProducts(ctx context.Context, filter catalog.ProductFilter, page pagination.Params) (*pagination.Result[domain.Product], error) {
	products, total, err := s.repo.ListProducts(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	result := pagination.NewResult(products, total, page)
	return &result, nil
}

// GetProduct returns a single product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	return s.repo.GetProduct(ctx, id)
}

// SearchProducts returns a paginated search over name, description, and tags.
func (s *CatalogService) SearchProducts(ctx context.Context, query string, page pagination.Params) (*pagination.Result[domain.Product], error) {
	products, total, err := s.repo.SearchProducts(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	result := pagination.NewResult(products, total, page)
	return &result, nil
}

// ListCategories returns all storefront categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

// ListBanners returns the home-screen banners.
func (s *CatalogService) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	return s.repo.ListBanners(ctx)
}
