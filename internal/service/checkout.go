package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/TheDTCStore/dtc-store-mobile/internal/domain"
	"github.com/TheDTCStore/dtc-store-mobile/internal/event"
	"github.com/TheDTCStore/dtc-store-mobile/internal/repository"
	apperrors "github.com/TheDTCStore/dtc-store-mobile/pkg/errors"
)

// QuoteInput holds the parameters for a checkout preview.
type QuoteInput struct {
	DeliveryID string `json:"delivery_id" validate:"required"`
	CouponCode string `json:"coupon_code"`
}

// QuotePreview is a priced view of the shopper's current selection. Nothing
// is persisted; the breakdown is recomputed on every call.
type QuotePreview struct {
	Items    []domain.LineItem     `json:"items"`
	Delivery domain.DeliveryOption `json:"delivery"`
	Coupon   *domain.CouponResult  `json:"coupon,omitempty"`
	Quote    domain.Quote          `json:"quote"`
}

// SubmitOrderInput holds the parameters for submitting an order.
type SubmitOrderInput struct {
	DeliveryID    string          `json:"delivery_id" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
	CouponCode    string          `json:"coupon_code"`
	Address       *domain.Address `json:"address"`
	Remark        string          `json:"remark"`
}

// CheckoutService prices the shopper's selection and turns it into orders.
type CheckoutService struct {
	carts    repository.CartRepository
	orders   repository.OrderRepository
	coupons  *domain.CouponBook
	producer *event.Producer
	logger   *slog.Logger
	cartTTL  time.Duration
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(carts repository.CartRepository, orders repository.OrderRepository, coupons *domain.CouponBook, producer *event.Producer, logger *slog.Logger, cartTTL time.Duration) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		orders:   orders,
		coupons:  coupons,
		producer: producer,
		logger:   logger,
		cartTTL:  cartTTL,
	}
}

// DeliveryOptions returns the delivery table offered at checkout.
func (s *CheckoutService) DeliveryOptions() []domain.DeliveryOption {
	return domain.DeliveryOptions()
}

// ValidateCoupon checks a coupon code against the user's current selected
// subtotal. Rejection is part of the result, not an error.
func (s *CheckoutService) ValidateCoupon(ctx context.Context, userID, code string) (*domain.CouponResult, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if code == "" {
		return nil, apperrors.InvalidInput("coupon code is required")
	}

	cart, err := s.getCartOrEmpty(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart for coupon: %w", err)
	}

	result := s.coupons.Validate(code, cart.Subtotal())
	return &result, nil
}

// Quote prices the user's current selection with a delivery option and an
// optional coupon. A rejected coupon is carried in the preview with its
// reason; the quote is computed without it.
func (s *CheckoutService) Quote(ctx context.Context, userID string, input QuoteInput) (*QuotePreview, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	delivery, ok := domain.DeliveryOptionByID(input.DeliveryID)
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown delivery option %q", input.DeliveryID))
	}

	cart, err := s.getCartOrEmpty(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart for quote: %w", err)
	}

	items := cart.SelectedItems()

	var coupon *domain.CouponResult
	if input.CouponCode != "" {
		result := s.coupons.Validate(input.CouponCode, cart.Subtotal())
		coupon = &result
	}

	return &QuotePreview{
		Items:    items,
		Delivery: delivery,
		Coupon:   coupon,
		Quote:    domain.ComputeQuote(items, delivery, coupon),
	}, nil
}

// SubmitOrder turns the user's selected items into a pending order. The
// selection must be non-empty, the delivery option and payment method must
// exist, and a supplied coupon must validate; a rejected coupon fails the
// submission so the shopper never silently loses a discount they expected.
// On success the purchased items leave the cart.
func (s *CheckoutService) SubmitOrder(ctx context.Context, userID string, input SubmitOrderInput) (*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	delivery, ok := domain.DeliveryOptionByID(input.DeliveryID)
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown delivery option %q", input.DeliveryID))
	}
	if !domain.ValidPaymentMethod(input.PaymentMethod) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}

	cart, err := s.getCartOrEmpty(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart for submit: %w", err)
	}

	expectedVersion := cart.Version

	items := cart.SelectedItems()
	if len(items) == 0 {
		return nil, apperrors.InvalidInput("no items selected for checkout")
	}

	var coupon *domain.CouponResult
	if input.CouponCode != "" {
		result := s.coupons.Validate(input.CouponCode, cart.Subtotal())
		if !result.Accepted {
			return nil, apperrors.InvalidInput(fmt.Sprintf("coupon rejected: %s", result.Reason))
		}
		coupon = &result
	}

	quote := domain.ComputeQuote(items, delivery, coupon)

	order := domain.NewOrder(userID, items, quote, delivery, input.PaymentMethod)
	if coupon != nil {
		order.CouponCode = coupon.Code
	}
	order.Address = input.Address
	order.Remark = input.Remark

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	// Purchased items leave the cart; unselected items stay behind.
	cart.RemoveSelected()
	now := time.Now().UTC()
	cart.UpdatedAt = now
	cart.ExpiresAt = now.Add(s.cartTTL)

	ok, err = s.carts.SaveIfVersion(ctx, cart, expectedVersion)
	if err != nil {
		return nil, fmt.Errorf("save cart after submit: %w", err)
	}
	if !ok {
		// The order exists either way; a concurrent cart change only means
		// the purchased items may briefly linger.
		s.logger.WarnContext(ctx, "cart changed concurrently during order submit",
			slog.String("user_id", userID),
			slog.String("order_id", order.ID),
		)
	}

	if err := s.producer.PublishOrderSubmitted(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.submitted event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order submitted",
		slog.String("user_id", userID),
		slog.String("order_id", order.ID),
		slog.Int64("total", quote.Total),
		slog.String("payment_method", input.PaymentMethod),
	)

	return order, nil
}

// ConfirmPayment transitions a pending order to paid. Confirming an already
// paid order is a conflict.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := s.getOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.OrderStatusPending {
		return nil, apperrors.Conflict(fmt.Sprintf("order %s is already %s", orderID, order.Status))
	}

	order.MarkPaid()
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save paid order: %w", err)
	}

	if err := s.producer.PublishOrderPaid(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.paid event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order payment confirmed",
		slog.String("user_id", userID),
		slog.String("order_id", order.ID),
	)

	return order, nil
}

// GetOrder returns one of the user's orders.
func (s *CheckoutService) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.getOwnedOrder(ctx, userID, orderID)
}

// ListOrders returns the user's orders, newest first.
func (s *CheckoutService) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// getCartOrEmpty loads the user's cart, substituting a fresh empty cart when
// none exists so checkout reads never fail on a missing key.
func (s *CheckoutService) getCartOrEmpty(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(userID, s.cartTTL), nil
		}
		return nil, err
	}
	return cart, nil
}

// getOwnedOrder loads an order and verifies ownership. Another user's order
// reads as not found so order IDs stay unguessable.
func (s *CheckoutService) getOwnedOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if orderID == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NotFound("order", orderID)
	}
	return order, nil
}
