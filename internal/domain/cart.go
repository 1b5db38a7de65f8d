package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/TheDTCStore/dtc-store-mobile/pkg/errors"
)

// MaxQuantityPerItem is the hard upper bound on a single line item's
// quantity, independent of stock.
const MaxQuantityPerItem = 99

// LineItem is one priced, quantified entry in a cart, identified by product
// plus chosen variant. The product snapshot is carried so that unit price
// and effective stock are derived on read rather than stored, which keeps
// them consistent with the selected options.
type LineItem struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	VariantKey string          `json:"variant_key"`
	Options    SelectedOptions `json:"options,omitempty"`
	Quantity   int             `json:"quantity"`
	Selected   bool            `json:"selected"`
	Product    Product         `json:"product"`
	AddedAt    time.Time       `json:"added_at"`
}

// UnitPrice derives the effective unit price from the product snapshot and
// the selected options. The selection was validated when the item was
// created, so resolution cannot fail for a well-formed item; the base price
// is returned as a fallback for defensive callers.
func (li *LineItem) UnitPrice() int64 {
	price, err := ResolvePrice(&li.Product, li.Options)
	if err != nil {
		return li.Product.Price
	}
	return price
}

// EffectiveStock derives the binding stock ceiling for this item's variant.
func (li *LineItem) EffectiveStock() int {
	stock, err := ResolveStock(&li.Product, li.Options)
	if err != nil {
		return li.Product.Stock
	}
	return stock
}

// MaxQuantity is the inclusive upper bound for this item's quantity.
func (li *LineItem) MaxQuantity() int {
	if stock := li.EffectiveStock(); stock < MaxQuantityPerItem {
		return stock
	}
	return MaxQuantityPerItem
}

// LineTotal is the item's contribution to the cart subtotal.
func (li *LineItem) LineTotal() int64 {
	return li.UnitPrice() * int64(li.Quantity)
}

// OriginalLineTotal is the item's contribution at the product's original
// (pre-discount) unit price.
func (li *LineItem) OriginalLineTotal() int64 {
	return li.Product.OriginalPrice * int64(li.Quantity)
}

// LineSavings is the item's savings contribution, floored at zero so an
// item priced above its original price never produces negative savings.
func (li *LineItem) LineSavings() int64 {
	saving := li.Product.OriginalPrice - li.UnitPrice()
	if saving < 0 {
		return 0
	}
	return saving * int64(li.Quantity)
}

// Cart is the session-owned aggregate of line items. Insertion order is
// preserved for display; all mutations go through the aggregate's methods
// so the no-duplicate-variant invariant holds.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Items     []LineItem `json:"items"`
	Currency  string     `json:"currency"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// NewCart creates an empty cart for the given user.
func NewCart(userID string, ttl time.Duration) *Cart {
	now := time.Now().UTC()
	return &Cart{
		ID:        uuid.New().String(),
		UserID:    userID,
		Items:     []LineItem{},
		Currency:  "CNY",
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// AddItem adds a product with a complete option selection to the cart.
// If an entry with the same variant identity already exists, its quantity is
// incremented (clamped to the item's maximum) instead of inserting a
// duplicate. A brand-new entry whose requested quantity exceeds the variant's
// effective stock or the per-item limit is rejected and the cart is left
// unchanged; the caller must be told rather than silently clamped.
func (c *Cart) AddItem(p *Product, selected SelectedOptions, quantity int) (*LineItem, error) {
	if quantity <= 0 {
		return nil, apperrors.InvalidInput("quantity must be greater than 0")
	}

	// Resolving validates the selection is complete before anything mutates.
	if _, err := ResolvePrice(p, selected); err != nil {
		return nil, err
	}
	stock, err := ResolveStock(p, selected)
	if err != nil {
		return nil, err
	}

	key := VariantKey(p.ID, selected)
	if idx := c.findByKey(key); idx >= 0 {
		item := &c.Items[idx]
		item.Quantity = clampQuantity(item.Quantity+quantity, item.MaxQuantity())
		return item, nil
	}

	if quantity > stock {
		return nil, apperrors.OutOfStock(p.ID, stock)
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity cannot exceed %d per item", MaxQuantityPerItem))
	}

	c.Items = append(c.Items, LineItem{
		ID:         uuid.New().String(),
		ProductID:  p.ID,
		VariantKey: key,
		Options:    cloneOptions(selected),
		Quantity:   quantity,
		Selected:   true,
		Product:    *p,
		AddedAt:    time.Now().UTC(),
	})
	return &c.Items[len(c.Items)-1], nil
}

// UpdateQuantity adjusts a line item's quantity by delta, clamped to the
// inclusive range [1, MaxQuantity]. A delta that would take the quantity
// below 1 floors at 1; removal is always an explicit separate action. The
// returned flag reports whether clamping occurred so the caller can surface
// it to the shopper.
func (c *Cart) UpdateQuantity(itemID string, delta int) (newQuantity int, clamped bool, err error) {
	item, ok := c.FindItem(itemID)
	if !ok {
		return 0, false, apperrors.NotFound("cart item", itemID)
	}

	requested := item.Quantity + delta
	item.Quantity = clampQuantity(requested, item.MaxQuantity())
	return item.Quantity, item.Quantity != requested, nil
}

// ToggleSelection flips the selected flag on a single line item.
func (c *Cart) ToggleSelection(itemID string) error {
	item, ok := c.FindItem(itemID)
	if !ok {
		return apperrors.NotFound("cart item", itemID)
	}
	item.Selected = !item.Selected
	return nil
}

// ToggleSelectAll deselects every item when all are currently selected, and
// selects every item otherwise. A partial selection therefore always
// selects-all on the next toggle.
func (c *Cart) ToggleSelectAll() {
	all := c.AllSelected()
	for i := range c.Items {
		c.Items[i].Selected = !all
	}
}

// AllSelected reports whether every item in the cart is selected.
// An empty cart counts as fully selected.
func (c *Cart) AllSelected() bool {
	for i := range c.Items {
		if !c.Items[i].Selected {
			return false
		}
	}
	return true
}

// RemoveItem deletes a line item unconditionally.
func (c *Cart) RemoveItem(itemID string) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("cart item", itemID)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []LineItem{}
}

// RemoveSelected deletes every selected line item. Used when a checkout is
// submitted and the purchased items leave the cart.
func (c *Cart) RemoveSelected() {
	remaining := c.Items[:0]
	for i := range c.Items {
		if !c.Items[i].Selected {
			remaining = append(remaining, c.Items[i])
		}
	}
	c.Items = remaining
}

// FindItem returns the line item with the given id.
func (c *Cart) FindItem(itemID string) (*LineItem, bool) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// SelectedItems returns the subset of items currently marked for checkout,
// in insertion order.
func (c *Cart) SelectedItems() []LineItem {
	selected := make([]LineItem, 0, len(c.Items))
	for i := range c.Items {
		if c.Items[i].Selected {
			selected = append(selected, c.Items[i])
		}
	}
	return selected
}

// Subtotal sums unit price times quantity over the selected items.
func (c *Cart) Subtotal() int64 {
	var total int64
	for i := range c.Items {
		if c.Items[i].Selected {
			total += c.Items[i].LineTotal()
		}
	}
	return total
}

// OriginalSubtotal sums the original (pre-discount) unit price times
// quantity over the selected items.
func (c *Cart) OriginalSubtotal() int64 {
	var total int64
	for i := range c.Items {
		if c.Items[i].Selected {
			total += c.Items[i].OriginalLineTotal()
		}
	}
	return total
}

// Savings sums the per-item savings contributions over the selected items.
// Each contribution is floored at zero, so the total never goes negative
// even if a product's original price is below its effective price.
func (c *Cart) Savings() int64 {
	var total int64
	for i := range c.Items {
		if c.Items[i].Selected {
			total += c.Items[i].LineSavings()
		}
	}
	return total
}

// ItemCount returns the total number of units across all items.
func (c *Cart) ItemCount() int {
	var count int
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}

// SelectedCount returns the number of selected line items.
func (c *Cart) SelectedCount() int {
	var count int
	for i := range c.Items {
		if c.Items[i].Selected {
			count++
		}
	}
	return count
}

func (c *Cart) findByKey(key string) int {
	for i := range c.Items {
		if c.Items[i].VariantKey == key {
			return i
		}
	}
	return -1
}

func clampQuantity(q, max int) int {
	if max < 1 {
		max = 1
	}
	if q < 1 {
		return 1
	}
	if q > max {
		return max
	}
	return q
}

func cloneOptions(selected SelectedOptions) SelectedOptions {
	if len(selected) == 0 {
		return nil
	}
	cloned := make(SelectedOptions, len(selected))
	for k, v := range selected {
		cloned[k] = v
	}
	return cloned
}
