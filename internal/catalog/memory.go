package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/TheDTCStore/dtc-store-mobile/internal/domain"
	apperrors "github.com/TheDTCStore/dtc-store-mobile/pkg/errors"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/pagination"
)

// MemoryRepository serves the static storefront catalog from memory. An
// optional per-call latency simulates upstream catalog fetch time; it is
// context-aware so a caller navigating away cancels the wait.
type MemoryRepository struct {
	products   []domain.Product
	categories []domain.Category
	banners    []domain.Banner
	latency    time.Duration
}

// NewMemoryRepository creates a catalog repository over the given records.
func NewMemoryRepository(products []domain.Product, categories []domain.Category, banners []domain.Banner, latency time.Duration) *MemoryRepository {
	return &MemoryRepository{
		products:   products,
		categories: categories,
		banners:    banners,
		latency:    latency,
	}
}

// NewSeededRepository creates a catalog repository with the built-in
// storefront data.
func NewSeededRepository(latency time.Duration) *MemoryRepository {
	return NewMemoryRepository(SeedProducts(), SeedCategories(), SeedBanners(), latency)
}

// ListProducts returns a page of products matching the filter.
func (r *MemoryRepository) ListProducts(ctx context.Context, filter ProductFilter, page pagination.Params) ([]domain.Product, int, error) {
	if err := r.wait(ctx); err != nil {
		return nil, 0, err
	}

	matched := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Tag != "" && !hasTag(&p, filter.Tag) {
			continue
		}
		matched = append(matched, p)
	}

	return paginate(matched, page), len(matched), nil
}

// GetProduct returns a product by id.
func (r *MemoryRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}

	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, apperrors.NotFound("product", id)
}

// SearchProducts returns products whose name, description, or tags contain
// the query, case-insensitively.
func (r *MemoryRepository) SearchProducts(ctx context.Context, query string, page pagination.Params) ([]domain.Product, int, error) {
	if err := r.wait(ctx); err != nil {
		return nil, 0, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []domain.Product{}, 0, nil
	}

	matched := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			hasTag(&p, needle) {
			matched = append(matched, p)
		}
	}

	return paginate(matched, page), len(matched), nil
}

// ListCategories returns all categories.
func (r *MemoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.categories, nil
}

// ListBanners returns all banners.
func (r *MemoryRepository) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.banners, nil
}

// wait blocks for the configured latency or until the context is done.
func (r *MemoryRepository) wait(ctx context.Context) error {
	if r.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(r.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func hasTag(p *domain.Product, tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func paginate(products []domain.Product, page pagination.Params) []domain.Product {
	if page.PerPage <= 0 {
		return products
	}
	if page.Offset >= len(products) {
		return []domain.Product{}
	}
	end := page.Offset + page.PerPage
	if end > len(products) {
		end = len(products)
	}
	return products[page.Offset:end]
}
