package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/TheDTCStore/dtc-store-mobile/pkg/errors"
)

// MaxAddressesPerUser is the upper bound on address book entries.
const MaxAddressesPerUser = 20

// SavedAddress is one entry in a user's address book. The shipping fields are
// embedded so the entry serializes flat, the same shape an order's address
// carries.
type SavedAddress struct {
	ID string `json:"id"`
	Address
	Tag       string    `json:"tag,omitempty"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddressBook is the per-user aggregate of saved shipping addresses. While
// the book is non-empty exactly one entry is the default; all mutations go
// through the aggregate's methods so that invariant holds.
type AddressBook struct {
	UserID    string         `json:"user_id"`
	Entries   []SavedAddress `json:"entries"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewAddressBook creates an empty address book for the given user.
func NewAddressBook(userID string) *AddressBook {
	return &AddressBook{
		UserID:    userID,
		Entries:   []SavedAddress{},
		UpdatedAt: time.Now().UTC(),
	}
}

// Add appends a new entry. The first entry always becomes the default;
// makeDefault moves the default flag to the new entry otherwise.
func (b *AddressBook) Add(addr Address, tag string, makeDefault bool) (*SavedAddress, error) {
	if len(b.Entries) >= MaxAddressesPerUser {
		return nil, apperrors.InvalidInput(fmt.Sprintf("address book cannot hold more than %d entries", MaxAddressesPerUser))
	}

	now := time.Now().UTC()
	entry := SavedAddress{
		ID:        uuid.New().String(),
		Address:   addr,
		Tag:       tag,
		IsDefault: len(b.Entries) == 0 || makeDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if entry.IsDefault {
		b.clearDefault()
	}
	b.Entries = append(b.Entries, entry)
	b.UpdatedAt = now
	return &b.Entries[len(b.Entries)-1], nil
}

// Update replaces the shipping fields and tag of an existing entry.
func (b *AddressBook) Update(id string, addr Address, tag string) (*SavedAddress, error) {
	idx := b.find(id)
	if idx < 0 {
		return nil, apperrors.NotFound("address", id)
	}

	entry := &b.Entries[idx]
	entry.Address = addr
	entry.Tag = tag
	entry.UpdatedAt = time.Now().UTC()
	b.UpdatedAt = entry.UpdatedAt
	return entry, nil
}

// Remove deletes an entry. Removing the default promotes the oldest
// remaining entry so a non-empty book always keeps a default.
func (b *AddressBook) Remove(id string) error {
	idx := b.find(id)
	if idx < 0 {
		return apperrors.NotFound("address", id)
	}

	wasDefault := b.Entries[idx].IsDefault
	b.Entries = append(b.Entries[:idx], b.Entries[idx+1:]...)
	if wasDefault && len(b.Entries) > 0 {
		b.Entries[0].IsDefault = true
	}
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// SetDefault moves the default flag to the given entry.
func (b *AddressBook) SetDefault(id string) error {
	idx := b.find(id)
	if idx < 0 {
		return apperrors.NotFound("address", id)
	}

	b.clearDefault()
	b.Entries[idx].IsDefault = true
	b.Entries[idx].UpdatedAt = time.Now().UTC()
	b.UpdatedAt = b.Entries[idx].UpdatedAt
	return nil
}

// Default returns the current default entry, if any.
func (b *AddressBook) Default() (*SavedAddress, bool) {
	for i := range b.Entries {
		if b.Entries[i].IsDefault {
			return &b.Entries[i], true
		}
	}
	return nil, false
}

func (b *AddressBook) clearDefault() {
	for i := range b.Entries {
		b.Entries[i].IsDefault = false
	}
}

func (b *AddressBook) find(id string) int {
	for i := range b.Entries {
		if b.Entries[i].ID == id {
			return i
		}
	}
	return -1
}
