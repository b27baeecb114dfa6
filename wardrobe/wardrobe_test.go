package wardrobe

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("add and get", func(t *testing.T) {
		store := NewMemoryStore()
		err := store.Add(ctx, Garment{
			ID:       "g1",
			UserID:   "u1",
			Category: "tops",
			Brand:    "Acme",
			Name:     "Linen Shirt",
			Image:    "https://cdn.example/shirt.jpg",
			AddedAt:  time.Now(),
		})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}

		g, err := store.Get(ctx, "u1", "g1")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if g.Name != "Linen Shirt" {
			t.Errorf("garment = %+v", g)
		}

		if _, err := store.Get(ctx, "u1", "missing"); !errors.Is(err, ErrGarmentNotFound) {
			t.Errorf("err = %v, want ErrGarmentNotFound", err)
		}
	})

	t.Run("list filters by category, most recent first", func(t *testing.T) {
		store := NewMemoryStore()
		base := time.Now()
		store.Add(ctx, Garment{ID: "g1", UserID: "u1", Category: "tops", AddedAt: base.Add(-time.Hour)})
		store.Add(ctx, Garment{ID: "g2", UserID: "u1", Category: "shoes", AddedAt: base.Add(-time.Minute)})
		store.Add(ctx, Garment{ID: "g3", UserID: "u1", Category: "tops", AddedAt: base})

		all, err := store.List(ctx, "u1", Filter{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(all) != 3 || all[0].ID != "g3" || all[2].ID != "g1" {
			t.Errorf("all = %+v", all)
		}

		tops, _ := store.List(ctx, "u1", Filter{Category: "tops"})
		if len(tops) != 2 {
			t.Errorf("tops = %d, want 2", len(tops))
		}
	})

	t.Run("users are isolated", func(t *testing.T) {
		store := NewMemoryStore()
		store.Add(ctx, Garment{ID: "g1", UserID: "u1", AddedAt: time.Now()})

		garments, _ := store.List(ctx, "u2", Filter{})
		if len(garments) != 0 {
			t.Errorf("garments = %d, want 0 for another user", len(garments))
		}
	})

	t.Run("remove", func(t *testing.T) {
		store := NewMemoryStore()
		store.Add(ctx, Garment{ID: "g1", UserID: "u1", AddedAt: time.Now()})

		if err := store.Remove(ctx, "u1", "g1"); err != nil {
			t.Fatalf("Remove: %v", err)
		}
		if err := store.Remove(ctx, "u1", "g1"); !errors.Is(err, ErrGarmentNotFound) {
			t.Errorf("err = %v, want ErrGarmentNotFound", err)
		}
	})
}
