package middleware

import (
	"log/slog"
	"net/http"

	"github.com/TheDTCStore/dtc-store-mobile/pkg/logger"
)

// RequestLogger returns middleware that derives a request-scoped logger
// carrying correlation_id, user_id, trace_id, and span_id and stores it in
// the request context. Handlers and httputil.WriteError pick it up with
// logger.FromContext, so every log line for one request shares the same
// identifiers.
//
// Mount after RequestLogging (correlation id) and Tracing (span context), and
// after Auth where the route group has it, so the fields are populated.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if userID := resolveUserID(r); userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}

			scoped := logger.WithContext(ctx, base)
			ctx = logger.NewContext(ctx, scoped)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveUserID prefers the authenticated identity over the X-User-ID header;
// the header only matters for internal callers that bypass session auth.
func resolveUserID(r *http.Request) string {
	if userID := UserIDFromContext(r.Context()); userID != "" {
		return userID
	}
	return r.Header.Get("X-User-ID")
}
