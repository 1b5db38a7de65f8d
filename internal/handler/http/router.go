package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TheDTCStore/dtc-store-mobile/internal/service"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/health"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/middleware"
)

// RouterDeps bundles everything the router mounts.
type RouterDeps struct {
	Catalog       *service.CatalogService
	Cart          *service.CartService
	Checkout      *service.CheckoutService
	Auth          *service.AuthService
	Profile       *service.ProfileService
	SessionValid  middleware.TokenValidator
	HealthHandler *health.Handler
	Logger        *slog.Logger
	CORS          middleware.CORSConfig
	PprofCIDRs    []string
}

// NewRouter creates a chi router with all storefront routes registered.
// Catalog browsing and login are public; cart, checkout, orders, favorites,
// and the address book require a valid session token.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(deps.CORS))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("store"))
	r.Use(middleware.Tracing("store"))
	r.Use(middleware.RequestLogger(deps.Logger))

	// Health check endpoints
	r.Get("/health/live", deps.HealthHandler.LivenessHandler())
	r.Get("/health/ready", deps.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, deps.PprofCIDRs, deps.Logger)

	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Logger)
	cartHandler := NewCartHandler(deps.Cart, deps.Logger)
	checkoutHandler := NewCheckoutHandler(deps.Checkout, deps.Logger)
	authHandler := NewAuthHandler(deps.Auth, deps.Logger)
	profileHandler := NewProfileHandler(deps.Profile, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Public catalog browsing.
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/search", catalogHandler.SearchProducts)
		r.Get("/products/{productID}", catalogHandler.GetProduct)
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/banners", catalogHandler.ListBanners)

		r.Post("/auth/login", authHandler.Login)

		// Session-protected routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.SessionValid))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/profile", authHandler.Profile)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/toggle-all", cartHandler.ToggleSelectAll)

				r.Post("/items", cartHandler.AddItem)
				r.Patch("/items/{itemID}/quantity", cartHandler.UpdateQuantity)
				r.Post("/items/{itemID}/toggle", cartHandler.ToggleSelection)
				r.Delete("/items/{itemID}", cartHandler.RemoveItem)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/delivery-options", checkoutHandler.DeliveryOptions)
				r.Post("/quote", checkoutHandler.Quote)
				r.Post("/coupon", checkoutHandler.ValidateCoupon)
				r.Post("/submit", checkoutHandler.SubmitOrder)
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", profileHandler.ListFavorites)
				r.Post("/{productID}/toggle", profileHandler.ToggleFavorite)
				r.Delete("/{productID}", profileHandler.RemoveFavorite)
			})

			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", profileHandler.ListAddresses)
				r.Post("/", profileHandler.CreateAddress)
				r.Put("/{addressID}", profileHandler.UpdateAddress)
				r.Delete("/{addressID}", profileHandler.DeleteAddress)
				r.Post("/{addressID}/default", profileHandler.SetDefaultAddress)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", checkoutHandler.ListOrders)
				r.Get("/{orderID}", checkoutHandler.GetOrder)
				r.Post("/{orderID}/pay", checkoutHandler.ConfirmPayment)
			})
		})
	})

	return r
}
