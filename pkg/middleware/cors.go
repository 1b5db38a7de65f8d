package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig controls which browser origins may call the storefront API.
type CORSConfig struct {
	// AllowedOrigins lists the origins allowed to call the API, such as
	// "https://shop.thedtcstore.com". A "*" entry allows every origin.
	AllowedOrigins []string

	// AllowedMethods lists the HTTP methods advertised to the browser.
	// Empty means GET, POST, PUT, PATCH, DELETE, OPTIONS.
	AllowedMethods []string

	// AllowedHeaders lists the request headers the browser may send.
	// Empty means Accept, Authorization, Content-Type, X-Correlation-ID,
	// X-User-ID.
	AllowedHeaders []string

	// ExposedHeaders lists response headers scripts may read.
	ExposedHeaders []string

	// MaxAge is the preflight cache lifetime in seconds. Zero means 3600.
	MaxAge int

	// AllowCredentials advertises support for cookies and auth headers.
	AllowCredentials bool

	// Environment gates the wildcard: origins are reflected as "*" only in
	// "development", or when AllowedOrigins itself contains "*".
	Environment string
}

// DefaultCORSConfig returns a wildcard development configuration. Production
// deployments override AllowedOrigins with the storefront domains.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Correlation-ID", "X-User-ID"},
		ExposedHeaders: []string{"X-Correlation-ID", "X-User-ID"},
		MaxAge:         3600,
		Environment:    "development",
	}
}

// corsPolicy is the precomputed form of a CORSConfig: header values joined
// once at construction instead of per request.
type corsPolicy struct {
	wildcard    bool
	origins     map[string]struct{}
	methods     string
	headers     string
	exposed     string
	maxAge      string
	credentials bool
}

func newCORSPolicy(cfg CORSConfig) corsPolicy {
	if len(cfg.AllowedMethods) == 0 {
		cfg.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(cfg.AllowedHeaders) == 0 {
		cfg.AllowedHeaders = []string{"Accept", "Authorization", "Content-Type", "X-Correlation-ID", "X-User-ID"}
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 3600
	}

	p := corsPolicy{
		wildcard:    cfg.Environment == "development",
		origins:     make(map[string]struct{}, len(cfg.AllowedOrigins)),
		methods:     strings.Join(cfg.AllowedMethods, ", "),
		headers:     strings.Join(cfg.AllowedHeaders, ", "),
		exposed:     strings.Join(cfg.ExposedHeaders, ", "),
		maxAge:      strconv.Itoa(cfg.MaxAge),
		credentials: cfg.AllowCredentials,
	}
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			p.wildcard = true
		}
		p.origins[o] = struct{}{}
	}
	return p
}

// apply writes the CORS headers for one request. Exact-origin matches set
// Vary: Origin so caches keep per-origin copies; an unlisted origin gets no
// Allow-Origin header at all and the browser blocks the response.
func (p corsPolicy) apply(w http.ResponseWriter, r *http.Request) {
	if p.wildcard {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	} else if origin := r.Header.Get("Origin"); origin != "" {
		if _, ok := p.origins[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		}
	}

	w.Header().Set("Access-Control-Allow-Methods", p.methods)
	w.Header().Set("Access-Control-Allow-Headers", p.headers)
	if p.exposed != "" {
		w.Header().Set("Access-Control-Expose-Headers", p.exposed)
	}
	w.Header().Set("Access-Control-Max-Age", p.maxAge)

	if p.credentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}

// CORS returns middleware that applies the given cross-origin policy and
// short-circuits preflight OPTIONS requests with 204 No Content.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	policy := newCORSPolicy(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			policy.apply(w, r)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
