package lookapp

import (
	"log/slog"
	"time"

	"github.com/MrPergite/lookapp-sub001/shoppinglist"
	"github.com/MrPergite/lookapp-sub001/styles"
	"github.com/MrPergite/lookapp-sub001/wardrobe"
)

// Config configures the SDK instance.
type Config struct {
	// Gateway is the search gateway implementation.
	// Required.
	Gateway SearchGateway

	// ShoppingList is the saved-items backend.
	// Optional - defaults to in-memory storage.
	ShoppingList shoppinglist.Store

	// Wardrobe is the digital wardrobe backend.
	// Optional - defaults to in-memory storage.
	Wardrobe wardrobe.Store

	// TryOn is the virtual try-on proxy client.
	// Optional - try-on endpoints return 404 when unset.
	TryOn *TryOnClient

	// Styles is the registry of personalization profiles.
	// Optional.
	Styles *styles.Registry

	// Hooks is the registry for pre/post search hooks.
	// Optional.
	Hooks *HookRegistry

	// Logger is the structured logger.
	// Optional - defaults to slog.Default().
	Logger *slog.Logger

	// RequestTimeout is the maximum time for one chat request.
	// Defaults to 60 seconds.
	RequestTimeout time.Duration

	// MaxMessageLength caps the query text accepted over HTTP.
	// Defaults to 4000 characters.
	MaxMessageLength int

	// MaxRequestBodySize caps HTTP request bodies in bytes.
	// Defaults to 1 MiB.
	MaxRequestBodySize int64

	// AllowedOrigins for CORS in the HTTP layer.
	// Defaults to allowing all origins.
	AllowedOrigins []string
}

// withDefaults applies default values to the config.
func (c Config) withDefaults() Config {
	if c.ShoppingList == nil {
		c.ShoppingList = shoppinglist.NewMemoryStore()
	}
	if c.Wardrobe == nil {
		c.Wardrobe = wardrobe.NewMemoryStore()
	}
	if c.Hooks == nil {
		c.Hooks = NewHookRegistry()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 60 * time.Second
	}
	if c.MaxMessageLength <= 0 {
		c.MaxMessageLength = 4000
	}
	if c.MaxRequestBodySize <= 0 {
		c.MaxRequestBodySize = 1 << 20
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	return c
}

// validate checks that required config fields are set.
func (c Config) validate() error {
	if c.Gateway == nil {
		return NewValidationError("Gateway is required")
	}
	return nil
}
