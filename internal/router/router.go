package router

import (
	"net/http"

	"paper-mart/internal/auth"
	"paper-mart/internal/handler"
	"paper-mart/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
// The id-addressed catalogue routes predate the slug-addressed ones; both
// schemes are served side by side.
func New(
	catalogHandler *handler.CatalogHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	authenticator *auth.Authenticator,
	logger zerolog.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check endpoint (no authentication required)
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Catalogue, numeric-id mode. The fragment route registers first so
	// "products" is never read as a category id.
	r.HandleFunc("/categoria/products", catalogHandler.ProductsFragment).Methods(http.MethodGet)
	r.HandleFunc("/categoria/{categoryId:[0-9]+}", catalogHandler.CategoryPage).Methods(http.MethodGet)

	// Catalogue, slug mode. Same ordering concern: /c/products is the
	// fragment endpoint, not a category slug.
	r.HandleFunc("/c/products", catalogHandler.SlugProductsFragment).Methods(http.MethodGet)
	r.HandleFunc("/c/{categorySlug}", catalogHandler.SlugPage).Methods(http.MethodGet)
	r.HandleFunc("/c/{categorySlug}/{subCategorySlug}", catalogHandler.SlugPage).Methods(http.MethodGet)

	adminOnly := middleware.AdminOnly(authenticator, logger)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	api.Handle("/products", adminOnly(http.HandlerFunc(productHandler.Create))).Methods(http.MethodPost)
	api.HandleFunc("/products/{id:[0-9]+}", productHandler.GetByID).Methods(http.MethodGet)

	api.HandleFunc("/categories", catalogHandler.Categories).Methods(http.MethodGet)
	api.Handle("/categories", adminOnly(http.HandlerFunc(catalogHandler.CreateCategory))).Methods(http.MethodPost)
	api.Handle("/categories/{id:[0-9]+}", adminOnly(http.HandlerFunc(catalogHandler.DeleteCategory))).Methods(http.MethodDelete)

	api.HandleFunc("/cart", cartHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/cart/items", cartHandler.AddItem).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{productId:[0-9]+}/increase", cartHandler.IncreaseItem).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{productId:[0-9]+}", cartHandler.RemoveItem).Methods(http.MethodDelete)

	r.Use(middleware.Metrics)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = r
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
