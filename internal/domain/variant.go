package domain

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/TheDTCStore/dtc-store-mobile/pkg/errors"
)

// SelectedOptions maps a specification-group name to the chosen option name
// within that group. A complete selection has exactly one entry per group
// defined on the product.
type SelectedOptions map[string]string

// ResolvePrice computes the effective unit price for the given option
// selection: base price plus the price delta of the chosen option in every
// group. Every group defined on the product must have a selection; a product
// with no specification groups resolves to its base price unchanged.
func ResolvePrice(p *Product, selected SelectedOptions) (int64, error) {
	price := p.Price
	for i := range p.SpecGroups {
		group := &p.SpecGroups[i]
		opt, err := chosenOption(p, group, selected)
		if err != nil {
			return 0, err
		}
		price += opt.PriceDelta
	}
	return price, nil
}

// ResolveStock computes the effective available stock for the given option
// selection: the minimum stock ceiling across all selected options. The
// tightest constraint wins, so an option with zero stock makes the whole
// combination unavailable. A product with no specification groups resolves
// to its own stock field.
func ResolveStock(p *Product, selected SelectedOptions) (int, error) {
	if len(p.SpecGroups) == 0 {
		return p.Stock, nil
	}

	stock := -1
	for i := range p.SpecGroups {
		group := &p.SpecGroups[i]
		opt, err := chosenOption(p, group, selected)
		if err != nil {
			return 0, err
		}
		if stock < 0 || opt.Stock < stock {
			stock = opt.Stock
		}
	}
	return stock, nil
}

// VariantKey builds the order-independent identity key for a product plus
// option selection. Two cart entries with the same key are the same line
// item and must be merged, regardless of the map iteration order the
// selection was built in.
func VariantKey(productID string, selected SelectedOptions) string {
	if len(selected) == 0 {
		return productID
	}

	pairs := make([]string, 0, len(selected))
	for group, option := range selected {
		pairs = append(pairs, group+"="+option)
	}
	sort.Strings(pairs)

	return productID + "|" + strings.Join(pairs, ";")
}

func chosenOption(p *Product, group *SpecGroup, selected SelectedOptions) (*SpecOption, error) {
	name, ok := selected[group.Name]
	if !ok {
		return nil, apperrors.InvalidInput(
			fmt.Sprintf("incomplete selection: no option chosen for %q", group.Name))
	}
	opt, ok := group.Option(name)
	if !ok {
		return nil, apperrors.InvalidInput(
			fmt.Sprintf("unknown option %q for group %q on product %s", name, group.Name, p.ID))
	}
	return opt, nil
}
