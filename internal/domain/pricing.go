package domain

// Quote is the derived checkout price breakdown. It is recomputed whenever
// any input changes and never stored across mutations.
type Quote struct {
	Subtotal         int64  `json:"subtotal"`
	OriginalSubtotal int64  `json:"original_subtotal"`
	Savings          int64  `json:"savings"`
	DeliveryFee      int64  `json:"delivery_fee"`
	Discount         int64  `json:"discount"`
	Total            int64  `json:"total"`
	Currency         string `json:"currency"`
}

// ComputeQuote prices the given item set with a delivery option and an
// optional coupon result. The caller passes exactly the set it wants priced
// (normally the selected subset of a cart); no selection filtering happens
// here so the calculator stays independently testable.
//
// Evaluation order is fixed: subtotal, then savings, then delivery fee,
// then coupon discount, then total. The total floors at zero so a coupon
// larger than the payable amount never produces a negative total.
func ComputeQuote(items []LineItem, delivery DeliveryOption, coupon *CouponResult) Quote {
	q := Quote{Currency: "CNY"}

	for i := range items {
		q.Subtotal += items[i].LineTotal()
		q.OriginalSubtotal += items[i].OriginalLineTotal()
		q.Savings += items[i].LineSavings()
	}

	q.DeliveryFee = delivery.Fee

	if coupon != nil && coupon.Accepted {
		q.Discount = coupon.Discount
	}

	q.Total = q.Subtotal + q.DeliveryFee - q.Discount
	if q.Total < 0 {
		q.Total = 0
	}
	return q
}
