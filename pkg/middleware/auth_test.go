package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okValidator(claims *Claims) TokenValidator {
	return func(ctx context.Context, token string) (*Claims, error) {
		if token != "good-token" {
			return nil, errors.New("unknown token")
		}
		return claims, nil
	}
}

func TestAuth_ValidToken(t *testing.T) {
	var gotUserID string
	handler := Auth(okValidator(&Claims{UserID: "user-1", Role: "customer"}))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID = UserIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", gotUserID)
}

func TestAuth_MissingHeader(t *testing.T) {
	handler := Auth(okValidator(&Claims{UserID: "user-1"}))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing authorization header")
}

func TestAuth_MalformedHeader(t *testing.T) {
	handler := Auth(okValidator(&Claims{UserID: "user-1"}))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	handler := Auth(okValidator(&Claims{UserID: "user-1"}))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired token")
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	allowed := httptest.NewRequest(http.MethodGet, "/", nil)
	allowed = allowed.WithContext(context.WithValue(allowed.Context(), roleKey, "admin"))
	rec := httptest.NewRecorder()
	RequireRole("admin")(next).ServeHTTP(rec, allowed)
	assert.Equal(t, http.StatusOK, rec.Code)

	denied := httptest.NewRequest(http.MethodGet, "/", nil)
	denied = denied.WithContext(context.WithValue(denied.Context(), roleKey, "customer"))
	rec = httptest.NewRecorder()
	RequireRole("admin")(next).ServeHTTP(rec, denied)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
