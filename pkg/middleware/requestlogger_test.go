package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/TheDTCStore/dtc-store-mobile/pkg/logger"
)

// captureRequestLog runs one request through RequestLogger with a handler
// that emits a single log line, and returns that line parsed.
func captureRequestLog(t *testing.T, ctx context.Context, mutate func(*http.Request)) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	base := logger.NewWithWriter("store", "info", &buf)

	handler := RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("cart loaded")
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil).WithContext(ctx)
	if mutate != nil {
		mutate(req)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotZero(t, buf.Len(), "expected the handler to log through the scoped logger")
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestRequestLogger_CorrelationID(t *testing.T) {
	ctx := logger.WithCorrelationID(context.Background(), "corr-test-123")
	out := captureRequestLog(t, ctx, nil)

	assert.Equal(t, "corr-test-123", out["correlation_id"])
	assert.Equal(t, "cart loaded", out["msg"])
}

func TestRequestLogger_UserIDFromAuthContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), userIDKey, "user-001")
	out := captureRequestLog(t, ctx, nil)

	assert.Equal(t, "user-001", out["user_id"])
}

func TestRequestLogger_UserIDFromHeader(t *testing.T) {
	out := captureRequestLog(t, context.Background(), func(r *http.Request) {
		r.Header.Set("X-User-ID", "user-002")
	})

	assert.Equal(t, "user-002", out["user_id"])
}

func TestRequestLogger_AuthBeatsHeader(t *testing.T) {
	ctx := context.WithValue(context.Background(), userIDKey, "user-001")
	out := captureRequestLog(t, ctx, func(r *http.Request) {
		r.Header.Set("X-User-ID", "spoofed")
	})

	assert.Equal(t, "user-001", out["user_id"], "the authenticated identity must win over the header")
}

func TestRequestLogger_TraceFields(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	out := captureRequestLog(t, ctx, nil)

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", out["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", out["span_id"])
}

func TestRequestLogger_AnonymousRequestOmitsUserID(t *testing.T) {
	out := captureRequestLog(t, context.Background(), nil)

	_, ok := out["user_id"]
	assert.False(t, ok, "user_id should be absent on unauthenticated requests")
}
