package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priced struct {
	price, original int64
	qty             int
}

func pricedItems(t *testing.T, entries ...priced) []LineItem {
	t.Helper()
	cart := NewCart("user-quote", time.Hour)
	for i, e := range entries {
		p := &Product{
			ID:            fmt.Sprintf("p-%d", i),
			Price:         e.price,
			OriginalPrice: e.original,
			Stock:         1000,
		}
		_, err := cart.AddItem(p, nil, e.qty)
		require.NoError(t, err)
	}
	return cart.SelectedItems()
}

func TestComputeQuote_Breakdown(t *testing.T) {
	items := pricedItems(t,
		priced{2899, 3299, 2},
		priced{1899, 2199, 1},
	)

	standard, ok := DeliveryOptionByID(DeliveryStandard)
	require.True(t, ok)

	q := ComputeQuote(items, standard, nil)
	assert.Equal(t, int64(7697), q.Subtotal)
	assert.Equal(t, int64(8797), q.OriginalSubtotal)
	assert.Equal(t, int64(1100), q.Savings)
	assert.Zero(t, q.DeliveryFee)
	assert.Zero(t, q.Discount)
	assert.Equal(t, int64(7697), q.Total)
}

func TestComputeQuote_ExpressFee(t *testing.T) {
	items := pricedItems(t, priced{1000, 1000, 1})

	express, ok := DeliveryOptionByID(DeliveryExpress)
	require.True(t, ok)

	q := ComputeQuote(items, express, nil)
	assert.Equal(t, int64(1500), q.DeliveryFee)
	assert.Equal(t, int64(2500), q.Total)
}

func TestComputeQuote_CouponDiscount(t *testing.T) {
	items := pricedItems(t, priced{150, 150, 1})

	coupon := &CouponResult{Code: "SAVE100", Accepted: true, Discount: 100}
	q := ComputeQuote(items, DeliveryOption{ID: DeliveryStandard}, coupon)
	assert.Equal(t, int64(50), q.Total)
}

func TestComputeQuote_TotalFloorsAtZero(t *testing.T) {
	items := pricedItems(t, priced{50, 50, 1})

	coupon := &CouponResult{Code: "SAVE100", Accepted: true, Discount: 100}
	q := ComputeQuote(items, DeliveryOption{ID: DeliveryStandard}, coupon)
	assert.Equal(t, int64(0), q.Total, "a coupon larger than the payable amount must not go negative")
}

func TestComputeQuote_RejectedCouponIgnored(t *testing.T) {
	items := pricedItems(t, priced{1000, 1000, 1})

	rejected := &CouponResult{Code: "NOPE", Accepted: false, Reason: CouponReasonInvalidCode}
	q := ComputeQuote(items, DeliveryOption{ID: DeliveryStandard}, rejected)
	assert.Zero(t, q.Discount)
	assert.Equal(t, int64(1000), q.Total)
}

func TestComputeQuote_EmptyItems(t *testing.T) {
	q := ComputeQuote(nil, DeliveryOption{ID: DeliveryStandard}, nil)
	assert.Zero(t, q.Subtotal)
	assert.Zero(t, q.Total)
}

func TestComputeQuote_NoSelectionFiltering(t *testing.T) {
	// The calculator prices whatever it is handed, selected flag or not.
	cart := NewCart("user-x", time.Hour)
	item, err := cart.AddItem(&Product{ID: "a", Price: 100, OriginalPrice: 100, Stock: 10}, nil, 1)
	require.NoError(t, err)
	require.NoError(t, cart.ToggleSelection(item.ID))

	q := ComputeQuote(cart.Items, DeliveryOption{ID: DeliveryStandard}, nil)
	assert.Equal(t, int64(100), q.Subtotal)
}

func TestComputeQuote_Save100EndToEnd(t *testing.T) {
	book := DefaultCouponBook()
	standard, _ := DeliveryOptionByID(DeliveryStandard)

	// 150 less the flat 100 leaves 50.
	items := pricedItems(t, priced{15000, 15000, 1})
	coupon := book.Validate("SAVE100", 15000)
	require.True(t, coupon.Accepted)
	q := ComputeQuote(items, standard, &coupon)
	assert.Equal(t, int64(10000), q.Discount)
	assert.Equal(t, int64(5000), q.Total)

	// A 50 subtotal is fully consumed by the coupon.
	items = pricedItems(t, priced{5000, 5000, 1})
	coupon = book.Validate("SAVE100", 5000)
	require.True(t, coupon.Accepted)
	q = ComputeQuote(items, standard, &coupon)
	assert.Zero(t, q.Total)
}

func TestOrder_Lifecycle(t *testing.T) {
	items := pricedItems(t, priced{1000, 1200, 2})

	standard, _ := DeliveryOptionByID(DeliveryStandard)
	order := NewOrder("user-1", items, ComputeQuote(items, standard, nil), standard, PaymentWechat)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, 2, order.ItemCount())

	order.MarkPaid()
	assert.Equal(t, OrderStatusPaid, order.Status)
}
