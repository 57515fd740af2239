package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// CartMode selects which cart semantics a deployment uses. The two modes
// differ in how repeated adds, totals and checkout lines behave; a
// deployment picks one and keeps it.
type CartMode string

const (
	// CartModeQuantity tracks an integer quantity per item.
	CartModeQuantity CartMode = "quantity"
	// CartModePresence tracks membership only; a second add is a no-op.
	CartModePresence CartMode = "presence"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Cart     CartConfig
	Checkout CheckoutConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// CatalogConfig points at the external document database acting as the
// product catalog. With no token configured the service runs on the
// built-in sample set.
type CatalogConfig struct {
	Token      string
	DatabaseID string
	BaseURL    string
	Timeout    time.Duration
}

type CartConfig struct {
	Mode   CartMode
	DBPath string
}

// CheckoutConfig configures the WhatsApp deep link used in place of a
// payment flow.
type CheckoutConfig struct {
	PhoneNumber string
	Message     string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Catalog: CatalogConfig{
			Token:      getEnv("CATALOG_TOKEN", ""),
			DatabaseID: getEnv("CATALOG_DATABASE_ID", ""),
			BaseURL:    getEnv("CATALOG_BASE_URL", "https://api.notion.com/v1"),
			Timeout:    time.Duration(getEnvAsInt("CATALOG_TIMEOUT", 30)) * time.Second,
		},
		Cart: CartConfig{
			Mode:   CartMode(getEnv("CART_MODE", string(CartModeQuantity))),
			DBPath: getEnv("CART_DB_PATH", "carts.db"),
		},
		Checkout: CheckoutConfig{
			PhoneNumber: getEnv("WHATSAPP_NUMBER", "393481860784"),
			Message:     getEnv("WHATSAPP_MESSAGE", "Hola! Quiero hacer este pedido:"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Cart.Mode != CartModeQuantity && c.Cart.Mode != CartModePresence {
		return fmt.Errorf("invalid cart mode: %s (must be quantity or presence)", c.Cart.Mode)
	}

	if c.Catalog.Token != "" && c.Catalog.DatabaseID == "" {
		return fmt.Errorf("CATALOG_DATABASE_ID is required when CATALOG_TOKEN is set")
	}

	if c.Checkout.PhoneNumber == "" {
		return fmt.Errorf("WHATSAPP_NUMBER is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
