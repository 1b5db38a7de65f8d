package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TheDTCStore/dtc-store-mobile/internal/service"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/httputil"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/middleware"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/validator"
)

// ProfileHandler handles HTTP requests for favorites and the address book.
type ProfileHandler struct {
	service *service.ProfileService
	logger  *slog.Logger
}

// NewProfileHandler creates a new profile HTTP handler.
func NewProfileHandler(svc *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: svc,
		logger:  logger,
	}
}

// AddressRequest is the JSON request body for creating or updating a saved
// address.
type AddressRequest struct {
	FullName    string `json:"full_name" validate:"required,max=50"`
	Phone       string `json:"phone" validate:"required,max=20"`
	Province    string `json:"province" validate:"required,max=50"`
	City        string `json:"city" validate:"required,max=50"`
	District    string `json:"district" validate:"required,max=50"`
	AddressLine string `json:"address_line" validate:"required,max=200"`
	Tag         string `json:"tag" validate:"max=20"`
	IsDefault   bool   `json:"is_default"`
}

func (req AddressRequest) input() service.AddressInput {
	return service.AddressInput{
		FullName:    req.FullName,
		Phone:       req.Phone,
		Province:    req.Province,
		City:        req.City,
		District:    req.District,
		AddressLine: req.AddressLine,
		Tag:         req.Tag,
		IsDefault:   req.IsDefault,
	}
}

// ListFavorites handles GET /api/v1/favorites
func (h *ProfileHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	products, err := h.service.ListFavorites(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// ToggleFavorite handles POST /api/v1/favorites/{productID}/toggle
func (h *ProfileHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	productID := chi.URLParam(r, "productID")

	result, err := h.service.ToggleFavorite(r.Context(), userID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// RemoveFavorite handles DELETE /api/v1/favorites/{productID}
func (h *ProfileHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	productID := chi.URLParam(r, "productID")

	if err := h.service.RemoveFavorite(r.Context(), userID, productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "removed"}})
}

// ListAddresses handles GET /api/v1/addresses
func (h *ProfileHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	entries, err := h.service.ListAddresses(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: entries})
}

// CreateAddress handles POST /api/v1/addresses
func (h *ProfileHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req AddressRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	entry, err := h.service.CreateAddress(r.Context(), userID, req.input())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: entry})
}

// UpdateAddress handles PUT /api/v1/addresses/{addressID}
func (h *ProfileHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	addressID := chi.URLParam(r, "addressID")

	var req AddressRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	entry, err := h.service.UpdateAddress(r.Context(), userID, addressID, req.input())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: entry})
}

// DeleteAddress handles DELETE /api/v1/addresses/{addressID}
func (h *ProfileHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	addressID := chi.URLParam(r, "addressID")

	if err := h.service.DeleteAddress(r.Context(), userID, addressID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// SetDefaultAddress handles POST /api/v1/addresses/{addressID}/default
func (h *ProfileHandler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	addressID := chi.URLParam(r, "addressID")

	entries, err := h.service.SetDefaultAddress(r.Context(), userID, addressID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: entries})
}
