package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/mercadito-store/storefront-api/internal/cart"
	"github.com/mercadito-store/storefront-api/internal/catalog"
	"github.com/mercadito-store/storefront-api/internal/checkout"
	"github.com/mercadito-store/storefront-api/internal/config"
	"github.com/mercadito-store/storefront-api/internal/handlers"
	"github.com/mercadito-store/storefront-api/internal/middleware"
	"github.com/mercadito-store/storefront-api/internal/service"
	"github.com/mercadito-store/storefront-api/internal/storage"
	"github.com/mercadito-store/storefront-api/pkg/logger"
)

func main() {
	// Environment variables take precedence over the .env file
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found. Proceeding with environment variables.")
	}

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"cart_mode", cfg.Cart.Mode,
		"catalog_configured", cfg.Catalog.Token != "",
	)

	// Open the cart slot store. An empty CART_DB_PATH keeps carts in
	// memory, useful for demo runs alongside mock catalog data.
	var slots storage.SlotStore
	if cfg.Cart.DBPath == "" {
		slots = storage.NewMemoryStore()
	} else {
		sqliteStore, err := storage.NewSQLiteStore(cfg.Cart.DBPath)
		if err != nil {
			log.Error("failed to open cart storage", "path", cfg.Cart.DBPath, "error", err)
			os.Exit(1)
		}
		slots = sqliteStore
	}
	defer slots.Close()

	// Log slot mutations; the signal is best effort and purely informative
	go func() {
		for key := range slots.Subscribe() {
			log.Debug("cart slot updated", "key", key)
		}
	}()

	// Initialize catalog access
	catalogClient := catalog.NewClient(cfg.Catalog)
	catalogService := service.NewCatalogService(catalogClient, log)

	// Initialize cart store and checkout link builder
	cartStore := cart.NewStore(slots, cfg.Cart.Mode, log)
	linkBuilder := checkout.NewBuilder(cfg.Checkout, cfg.Cart.Mode)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	productsHandler := handlers.NewProductsHandler(catalogService, log)
	cartHandler := handlers.NewCartHandler(cartStore, linkBuilder, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", productsHandler.List)

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.DeviceID)
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}", cartHandler.UpdateItem)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)
			r.Get("/checkout-link", cartHandler.CheckoutLink)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
