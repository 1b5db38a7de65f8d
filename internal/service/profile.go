package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/TheDTCStore/dtc-store-mobile/internal/catalog"
	"github.com/TheDTCStore/dtc-store-mobile/internal/domain"
	"github.com/TheDTCStore/dtc-store-mobile/internal/repository"
	apperrors "github.com/TheDTCStore/dtc-store-mobile/pkg/errors"
)

// AddressInput holds the parameters for creating or updating a saved address.
type AddressInput struct {
	FullName    string `json:"full_name" validate:"required,max=50"`
	Phone       string `json:"phone" validate:"required,max=20"`
	Province    string `json:"province" validate:"required,max=50"`
	City        string `json:"city" validate:"required,max=50"`
	District    string `json:"district" validate:"required,max=50"`
	AddressLine string `json:"address_line" validate:"required,max=200"`
	Tag         string `json:"tag" validate:"max=20"`
	IsDefault   bool   `json:"is_default"`
}

func (in AddressInput) address() domain.Address {
	return domain.Address{
		FullName:    in.FullName,
		Phone:       in.Phone,
		Province:    in.Province,
		City:        in.City,
		District:    in.District,
		AddressLine: in.AddressLine,
	}
}

// FavoriteToggle reports the outcome of flipping a product's favorite state.
type FavoriteToggle struct {
	ProductID string `json:"product_id"`
	Favorited bool   `json:"favorited"`
}

// ProfileService implements the business logic for a user's favorites and
// saved address book.
type ProfileService struct {
	favorites repository.FavoritesRepository
	addresses repository.AddressRepository
	catalog   catalog.Repository
	logger    *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(favorites repository.FavoritesRepository, addresses repository.AddressRepository, cat catalog.Repository, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		favorites: favorites,
		addresses: addresses,
		catalog:   cat,
		logger:    logger,
	}
}

// --- Favorites ---

// ToggleFavorite flips a product's favorite state for the user. The product
// must exist in the catalog.
func (s *ProfileService) ToggleFavorite(ctx context.Context, userID, productID string) (*FavoriteToggle, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	favorited, err := s.favorites.Contains(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("check favorite: %w", err)
	}

	if favorited {
		err = s.favorites.Remove(ctx, userID, productID)
	} else {
		err = s.favorites.Add(ctx, userID, productID)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}

	s.logger.InfoContext(ctx, "favorite toggled",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
		slog.Bool("favorited", !favorited),
	)

	return &FavoriteToggle{ProductID: productID, Favorited: !favorited}, nil
}

// RemoveFavorite unmarks a favorite regardless of its current state.
func (s *ProfileService) RemoveFavorite(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}

	if err := s.favorites.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// ListFavorites resolves the user's favorites against the catalog, newest
// first. Ids whose product has left the catalog are skipped.
func (s *ProfileService) ListFavorites(ctx context.Context, userID string) ([]domain.Product, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	ids, err := s.favorites.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.catalog.GetProduct(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("resolve favorite: %w", err)
		}
		products = append(products, *product)
	}

	return products, nil
}

// --- Address book ---

// ListAddresses returns the user's saved addresses. A user with no book yet
// gets an empty list.
func (s *ProfileService) ListAddresses(ctx context.Context, userID string) ([]domain.SavedAddress, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	book, err := s.getOrCreateBook(ctx, userID)
	if err != nil {
		return nil, err
	}
	return book.Entries, nil
}

// CreateAddress appends a new saved address. The first entry always becomes
// the default.
func (s *ProfileService) CreateAddress(ctx context.Context, userID string, input AddressInput) (*domain.SavedAddress, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	book, err := s.getOrCreateBook(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry, err := book.Add(input.address(), input.Tag, input.IsDefault)
	if err != nil {
		return nil, err
	}

	if err := s.addresses.Save(ctx, book); err != nil {
		return nil, fmt.Errorf("save address book: %w", err)
	}

	s.logger.InfoContext(ctx, "address created",
		slog.String("user_id", userID),
		slog.String("address_id", entry.ID),
		slog.Bool("is_default", entry.IsDefault),
	)

	return entry, nil
}

// UpdateAddress replaces the fields of an existing saved address. The
// is_default flag is managed through SetDefaultAddress, not here.
func (s *ProfileService) UpdateAddress(ctx context.Context, userID, addressID string, input AddressInput) (*domain.SavedAddress, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if addressID == "" {
		return nil, apperrors.InvalidInput("address id is required")
	}

	book, err := s.addresses.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("address", addressID)
		}
		return nil, fmt.Errorf("get address book: %w", err)
	}

	entry, err := book.Update(addressID, input.address(), input.Tag)
	if err != nil {
		return nil, err
	}

	if err := s.addresses.Save(ctx, book); err != nil {
		return nil, fmt.Errorf("save address book: %w", err)
	}

	return entry, nil
}

// DeleteAddress removes a saved address. Deleting the default promotes the
// oldest remaining entry.
func (s *ProfileService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}
	if addressID == "" {
		return apperrors.InvalidInput("address id is required")
	}

	book, err := s.addresses.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("address", addressID)
		}
		return fmt.Errorf("get address book: %w", err)
	}

	if err := book.Remove(addressID); err != nil {
		return err
	}

	if err := s.addresses.Save(ctx, book); err != nil {
		return fmt.Errorf("save address book: %w", err)
	}

	s.logger.InfoContext(ctx, "address deleted",
		slog.String("user_id", userID),
		slog.String("address_id", addressID),
	)

	return nil
}

// SetDefaultAddress moves the default flag to the given saved address and
// returns the updated book entries.
func (s *ProfileService) SetDefaultAddress(ctx context.Context, userID, addressID string) ([]domain.SavedAddress, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if addressID == "" {
		return nil, apperrors.InvalidInput("address id is required")
	}

	book, err := s.addresses.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("address", addressID)
		}
		return nil, fmt.Errorf("get address book: %w", err)
	}

	if err := book.SetDefault(addressID); err != nil {
		return nil, err
	}

	if err := s.addresses.Save(ctx, book); err != nil {
		return nil, fmt.Errorf("save address book: %w", err)
	}

	return book.Entries, nil
}

// getOrCreateBook retrieves the address book for a user, creating an empty
// one if it does not exist.
func (s *ProfileService) getOrCreateBook(ctx context.Context, userID string) (*domain.AddressBook, error) {
	book, err := s.addresses.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewAddressBook(userID), nil
		}
		return nil, fmt.Errorf("get address book: %w", err)
	}
	return book, nil
}
