package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TheDTCStore/dtc-store-mobile/internal/domain"
	"github.com/TheDTCStore/dtc-store-mobile/internal/service"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/httputil"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/middleware"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/validator"
)

// CheckoutHandler handles HTTP requests for quoting, coupons, and orders.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// QuoteRequest is the JSON request body for a checkout preview.
type QuoteRequest struct {
	DeliveryID string `json:"delivery_id" validate:"required"`
	CouponCode string `json:"coupon_code"`
}

// CouponRequest is the JSON request body for validating a coupon code.
type CouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// SubmitOrderRequest is the JSON request body for submitting an order.
type SubmitOrderRequest struct {
	DeliveryID    string          `json:"delivery_id" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
	CouponCode    string          `json:"coupon_code"`
	Address       *domain.Address `json:"address"`
	Remark        string          `json:"remark" validate:"max=500"`
}

// --- Handlers ---

// DeliveryOptions handles GET /api/v1/checkout/delivery-options
func (h *CheckoutHandler) DeliveryOptions(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.DeliveryOptions()})
}

// Quote handles POST /api/v1/checkout/quote
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req QuoteRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	preview, err := h.service.Quote(r.Context(), userID, service.QuoteInput{
		DeliveryID: req.DeliveryID,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: preview})
}

// ValidateCoupon handles POST /api/v1/checkout/coupon
func (h *CheckoutHandler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req CouponRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.service.ValidateCoupon(r.Context(), userID, req.Code)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// SubmitOrder handles POST /api/v1/checkout/submit
func (h *CheckoutHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req SubmitOrderRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.service.SubmitOrder(r.Context(), userID, service.SubmitOrderInput{
		DeliveryID:    req.DeliveryID,
		PaymentMethod: req.PaymentMethod,
		CouponCode:    req.CouponCode,
		Address:       req.Address,
		Remark:        req.Remark,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}

// ListOrders handles GET /api/v1/orders
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	orders, err := h.service.ListOrders(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: orders})
}

// GetOrder handles GET /api/v1/orders/{orderID}
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	orderID := chi.URLParam(r, "orderID")

	order, err := h.service.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// ConfirmPayment handles POST /api/v1/orders/{orderID}/pay
func (h *CheckoutHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	orderID := chi.URLParam(r, "orderID")

	order, err := h.service.ConfirmPayment(r.Context(), userID, orderID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}
