package domain

import (
	"strings"
	"time"
)

// Coupon rejection reasons. These are normal user-facing outcomes, not
// errors; an invalid coupon never fails the checkout computation.
const (
	CouponReasonInvalidCode   = "invalid code"
	CouponReasonMinimumNotMet = "minimum not met"
	CouponReasonExpired       = "expired"
)

// Coupon discount types.
const (
	CouponTypeFixed      = "fixed"
	CouponTypePercentage = "percentage"
)

// CouponRule describes one redeemable coupon code. Value is a fixed amount
// for fixed-type rules and a percentage (0-100) for percentage-type rules;
// MaxDiscount caps the resolved amount of a percentage rule when positive.
type CouponRule struct {
	Code        string     `json:"code"`
	Type        string     `json:"type"`
	Value       int64      `json:"value"`
	MinSubtotal int64      `json:"min_subtotal"`
	MaxDiscount int64      `json:"max_discount,omitempty"`
	Description string     `json:"description"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// CouponResult is the outcome of validating a code against a subtotal.
// Whatever the rule type, an accepted result always carries a concrete
// fixed discount amount, so the checkout calculator never needs to know how
// the amount was derived. Applying a new code replaces any previous result;
// coupons never stack.
type CouponResult struct {
	Code     string `json:"code"`
	Accepted bool   `json:"accepted"`
	Discount int64  `json:"discount"`
	Reason   string `json:"reason,omitempty"`
}

// CouponBook is a static lookup of coupon rules by code.
type CouponBook struct {
	rules map[string]CouponRule
	now   func() time.Time
}

// NewCouponBook builds a coupon book from the given rules. Codes are matched
// case-insensitively.
func NewCouponBook(rules ...CouponRule) *CouponBook {
	book := &CouponBook{
		rules: make(map[string]CouponRule, len(rules)),
		now:   time.Now,
	}
	for _, rule := range rules {
		book.rules[strings.ToUpper(rule.Code)] = rule
	}
	return book
}

// DefaultCouponBook returns the storefront's built-in coupon rules.
func DefaultCouponBook() *CouponBook {
	expired := time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC)
	return NewCouponBook(
		CouponRule{Code: "SAVE100", Type: CouponTypeFixed, Value: 10000, Description: "100 off any order"},
		CouponRule{Code: "WINE100", Type: CouponTypeFixed, Value: 10000, MinSubtotal: 50000, Description: "100 off orders over 500"},
		CouponRule{Code: "NEWUSER50", Type: CouponTypeFixed, Value: 5000, MinSubtotal: 10000, Description: "New customer: 50 off orders over 100"},
		CouponRule{Code: "WINE15OFF", Type: CouponTypePercentage, Value: 15, MinSubtotal: 20000, MaxDiscount: 30000, Description: "15% off orders over 200"},
		CouponRule{Code: "MEMBER20", Type: CouponTypePercentage, Value: 20, MinSubtotal: 30000, MaxDiscount: 50000, Description: "Member exclusive: 20% off orders over 300"},
		CouponRule{Code: "EXPIRED200", Type: CouponTypeFixed, Value: 20000, MinSubtotal: 100000, Description: "200 off orders over 1000", ExpiresAt: &expired},
	)
}

// Rules returns the rule set in no particular order, for display.
func (b *CouponBook) Rules() []CouponRule {
	rules := make([]CouponRule, 0, len(b.rules))
	for _, rule := range b.rules {
		rules = append(rules, rule)
	}
	return rules
}

// Validate resolves a coupon code against the current subtotal. Unknown
// codes, expired codes, and subtotals below the rule's minimum yield a
// rejection with a reason; everything else yields an accepted result with
// the resolved fixed discount amount.
func (b *CouponBook) Validate(code string, subtotal int64) CouponResult {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	rule, ok := b.rules[normalized]
	if !ok {
		return CouponResult{Code: normalized, Reason: CouponReasonInvalidCode}
	}
	if rule.ExpiresAt != nil && b.now().UTC().After(*rule.ExpiresAt) {
		return CouponResult{Code: normalized, Reason: CouponReasonExpired}
	}
	if subtotal < rule.MinSubtotal {
		return CouponResult{Code: normalized, Reason: CouponReasonMinimumNotMet}
	}

	discount := rule.Value
	if rule.Type == CouponTypePercentage {
		discount = subtotal * rule.Value / 100
		if rule.MaxDiscount > 0 && discount > rule.MaxDiscount {
			discount = rule.MaxDiscount
		}
	}

	return CouponResult{Code: normalized, Accepted: true, Discount: discount}
}
