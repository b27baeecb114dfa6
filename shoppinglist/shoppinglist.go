// Package shoppinglist holds the authoritative save state for products the
// shopper keeps. The conversation store's IsSaved flag is only a rendering
// hint; this store is what save/unsave operations consult.
package shoppinglist

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrItemNotFound indicates the saved item was not found.
var ErrItemNotFound = errors.New("shopping list item not found")

// Item is one saved product.
type Item struct {
	// UserID is the owning shopper.
	UserID string `json:"userId"`

	// ProductID is the normalized product id.
	ProductID string `json:"productId"`

	// Brand, Name, Price, Image, URL mirror the normalized product fields
	// at the time of saving.
	Brand string `json:"brand"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Image string `json:"image"`
	URL   string `json:"url"`

	// ProductInfo is the raw provider payload, carried verbatim for
	// downstream calls.
	ProductInfo json.RawMessage `json:"product_info,omitempty"`

	// SavedAt is when the item was saved.
	SavedAt time.Time `json:"savedAt"`
}

// Store persists saved items.
type Store interface {
	// Save stores an item, replacing any previous save of the same
	// product by the same user.
	Save(ctx context.Context, item Item) error

	// Remove deletes a saved item. Removing an item that was never saved
	// returns ErrItemNotFound.
	Remove(ctx context.Context, userID, productID string) error

	// List returns a user's saved items, most recent first.
	List(ctx context.Context, userID string) ([]Item, error)

	// Contains reports whether the user has saved the product.
	Contains(ctx context.Context, userID, productID string) (bool, error)
}
