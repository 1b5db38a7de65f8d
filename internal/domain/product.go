package domain

// Product represents a catalog product. Catalog records are immutable
// snapshots for the duration of a cart operation; nothing in the cart or
// checkout flow mutates them.
type Product struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Slug          string      `json:"slug"`
	Category      string      `json:"category"`
	Description   string      `json:"description"`
	ImageURL      string      `json:"image_url,omitempty"`
	Price         int64       `json:"price"`
	OriginalPrice int64       `json:"original_price"`
	Stock         int         `json:"stock"`
	Rating        float64     `json:"rating"`
	Tags          []string    `json:"tags,omitempty"`
	SpecGroups    []SpecGroup `json:"spec_groups,omitempty"`
}

// SpecGroup is a named group of mutually exclusive options on a product,
// e.g. "volume" with options 500ml/750ml/1L. A shopper picks exactly one
// option per group before the product can be added to the cart.
type SpecGroup struct {
	Name    string       `json:"name"`
	Options []SpecOption `json:"options"`
}

// SpecOption is a single choice within a specification group. PriceDelta is
// relative to the product's base price and may be zero or negative; Stock is
// the stock ceiling for this option alone.
type SpecOption struct {
	Name       string `json:"name"`
	PriceDelta int64  `json:"price_delta"`
	Stock      int    `json:"stock"`
}

// Group returns the specification group with the given name.
func (p *Product) Group(name string) (*SpecGroup, bool) {
	for i := range p.SpecGroups {
		if p.SpecGroups[i].Name == name {
			return &p.SpecGroups[i], true
		}
	}
	return nil, false
}

// Option returns the option with the given name within the group.
func (g *SpecGroup) Option(name string) (*SpecOption, bool) {
	for i := range g.Options {
		if g.Options[i].Name == name {
			return &g.Options[i], true
		}
	}
	return nil, false
}

// Discounted reports whether the product is currently sold below its
// original price.
func (p *Product) Discounted() bool {
	return p.OriginalPrice > p.Price
}

// Category represents a product category shown on the storefront.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}

// Banner is a promotional banner shown on the home screen.
type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}
