package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"paper-mart/internal/auth"
	"paper-mart/internal/cart"
	"paper-mart/internal/config"
	"paper-mart/internal/database"
	"paper-mart/internal/handler"
	"paper-mart/internal/repository"
	"paper-mart/internal/router"
	"paper-mart/internal/seed"
	"paper-mart/internal/service"
	"paper-mart/internal/storage"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting paper-mart storefront")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Ensure catalogue tables exist
	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to prepare database schema: %w", err)
	}

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)

	// Seed the default category tree. Seeding is best-effort and never
	// blocks startup.
	seed.New(categoryRepo, logger).Run(ctx)

	// Initialize image storage with S3 and local fallback
	var images storage.ImageStore
	if cfg.Images.S3Enabled {
		images, err = storage.NewS3Store(ctx, cfg.Images.S3Bucket, cfg.Images.S3Region, cfg.Images.S3Prefix, cfg.Images.BaseURL, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 image store, falling back to local file system")
		}
	}
	if images == nil {
		images, err = storage.NewLocalStore(cfg.Images.Dir, cfg.Images.BaseURL, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize image storage: %w", err)
		}
	}

	// Initialize services
	catalogService := service.NewCatalogService(categoryRepo, productRepo, logger)
	productService := service.NewProductService(productRepo, categoryRepo, images, logger)

	// Initialize session carts and admin gate
	carts := cart.NewManager(logger)
	authenticator := auth.NewAuthenticator(cfg.Auth.AdminKey, cfg.Auth.JWTSecret, logger)

	// Initialize HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	cartHandler := handler.NewCartHandler(carts, productService, logger)

	// Initialize router
	mux := router.New(catalogHandler, productHandler, cartHandler, authenticator, logger)

	// Serve uploaded images when stored locally
	var root http.Handler = mux
	if !cfg.Images.S3Enabled {
		root = withImageFiles(mux, cfg.Images, logger)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// withImageFiles mounts the local image directory under the public image
// base URL, in front of the API router.
func withImageFiles(next http.Handler, cfg config.ImageConfig, logger zerolog.Logger) http.Handler {
	prefix := strings.TrimSuffix(cfg.BaseURL, "/") + "/"
	files := http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Dir)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, prefix) {
			files.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
