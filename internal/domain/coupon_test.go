package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponValidate_FixedAccepted(t *testing.T) {
	book := DefaultCouponBook()

	result := book.Validate("SAVE100", 60000)
	assert.True(t, result.Accepted)
	assert.Equal(t, int64(10000), result.Discount)
	assert.Empty(t, result.Reason)
}

func TestCouponValidate_CaseInsensitive(t *testing.T) {
	book := DefaultCouponBook()

	result := book.Validate("  save100 ", 60000)
	assert.True(t, result.Accepted)
	assert.Equal(t, "SAVE100", result.Code)
}

func TestCouponValidate_UnknownCode(t *testing.T) {
	book := DefaultCouponBook()

	result := book.Validate("NOPE", 60000)
	assert.False(t, result.Accepted)
	assert.Zero(t, result.Discount)
	assert.Equal(t, CouponReasonInvalidCode, result.Reason)
}

func TestCouponValidate_MinimumNotMet(t *testing.T) {
	book := DefaultCouponBook()

	result := book.Validate("WINE100", 49999)
	assert.False(t, result.Accepted)
	assert.Equal(t, CouponReasonMinimumNotMet, result.Reason)

	// Exactly at the minimum qualifies.
	result = book.Validate("WINE100", 50000)
	assert.True(t, result.Accepted)
}

func TestCouponValidate_Save100HasNoMinimum(t *testing.T) {
	book := DefaultCouponBook()

	result := book.Validate("SAVE100", 1)
	assert.True(t, result.Accepted)
	assert.Equal(t, int64(10000), result.Discount)
}

func TestCouponValidate_Expired(t *testing.T) {
	book := DefaultCouponBook()

	result := book.Validate("EXPIRED200", 200000)
	assert.False(t, result.Accepted)
	assert.Equal(t, CouponReasonExpired, result.Reason)
}

func TestCouponValidate_PercentageResolvesToFixedAmount(t *testing.T) {
	book := DefaultCouponBook()

	// 15% of 40000 = 6000, under the 30000 cap.
	result := book.Validate("WINE15OFF", 40000)
	require.True(t, result.Accepted)
	assert.Equal(t, int64(6000), result.Discount)
}

func TestCouponValidate_PercentageCappedAtMaxDiscount(t *testing.T) {
	book := DefaultCouponBook()

	// 15% of 400000 = 60000, capped at 30000.
	result := book.Validate("WINE15OFF", 400000)
	require.True(t, result.Accepted)
	assert.Equal(t, int64(30000), result.Discount)
}

func TestCouponValidate_NotYetExpired(t *testing.T) {
	future := time.Now().UTC().Add(24 * time.Hour)
	book := NewCouponBook(CouponRule{
		Code: "FLASH", Type: CouponTypeFixed, Value: 500, MinSubtotal: 0, ExpiresAt: &future,
	})

	result := book.Validate("FLASH", 1000)
	assert.True(t, result.Accepted)
}

func TestCouponBook_Rules(t *testing.T) {
	book := DefaultCouponBook()
	rules := book.Rules()

	require.NotEmpty(t, rules)
	codes := make(map[string]bool, len(rules))
	for _, rule := range rules {
		codes[rule.Code] = true
	}
	assert.True(t, codes["SAVE100"])
	assert.True(t, codes["NEWUSER50"])
}
