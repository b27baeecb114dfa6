// Package wardrobe stores the shopper's digital wardrobe: garments they
// own or have imported, browsable by category and usable as try-on sources.
package wardrobe

import (
	"context"
	"errors"
	"time"
)

// ErrGarmentNotFound indicates the garment was not found.
var ErrGarmentNotFound = errors.New("garment not found")

// Garment is one wardrobe entry.
type Garment struct {
	// ID uniquely identifies the garment.
	ID string `json:"id"`

	// UserID is the owning shopper.
	UserID string `json:"userId"`

	// Category groups garments (e.g. "tops", "shoes").
	Category string `json:"category"`

	// Brand and Name describe the garment.
	Brand string `json:"brand"`
	Name  string `json:"name"`

	// Image is the garment image URL.
	Image string `json:"image"`

	// SourceProductID links back to the search result the garment was
	// added from, when it was.
	SourceProductID string `json:"sourceProductId,omitempty"`

	// AddedAt is when the garment entered the wardrobe.
	AddedAt time.Time `json:"addedAt"`
}

// Filter narrows wardrobe listings.
type Filter struct {
	// Category restricts results to one category. Empty matches all.
	Category string
}

// Store persists garments.
type Store interface {
	// Add stores a garment.
	Add(ctx context.Context, g Garment) error

	// Get returns a garment by id.
	Get(ctx context.Context, userID, id string) (*Garment, error)

	// List returns a user's garments matching the filter, most recent
	// first.
	List(ctx context.Context, userID string, filter Filter) ([]Garment, error)

	// Remove deletes a garment. Removing an unknown garment returns
	// ErrGarmentNotFound.
	Remove(ctx context.Context, userID, id string) error
}
