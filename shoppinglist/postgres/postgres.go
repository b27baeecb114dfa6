// Package postgres implements shoppinglist.Store with PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MrPergite/lookapp-sub001/shoppinglist"
)

// Store implements shoppinglist.Store with PostgreSQL.
type Store struct {
	pool      *pgxpool.Pool
	tableName string
}

// Option configures the store.
type Option func(*Store)

// WithTableName sets a custom table name.
func WithTableName(name string) Option {
	return func(s *Store) {
		s.tableName = name
	}
}

// New creates a new PostgreSQL shopping list store.
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	s := &Store{
		pool:      pool,
		tableName: "shopping_list_items",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Save(ctx context.Context, item shoppinglist.Item) error {
	if item.SavedAt.IsZero() {
		item.SavedAt = time.Now()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, product_id, brand, name, price, image, url, product_info, saved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, product_id) DO UPDATE SET
			brand = EXCLUDED.brand,
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			image = EXCLUDED.image,
			url = EXCLUDED.url,
			product_info = EXCLUDED.product_info,
			saved_at = EXCLUDED.saved_at
	`, s.tableName)

	_, err := s.pool.Exec(ctx, query,
		item.UserID, item.ProductID, item.Brand, item.Name, item.Price,
		item.Image, item.URL, []byte(item.ProductInfo), item.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("saving shopping list item: %w", err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, userID, productID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND product_id = $2`, s.tableName)

	tag, err := s.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("removing shopping list item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shoppinglist.ErrItemNotFound
	}
	return nil
}

func (s *Store) List(ctx context.Context, userID string) ([]shoppinglist.Item, error) {
	query := fmt.Sprintf(`
		SELECT user_id, product_id, brand, name, price, image, url, product_info, saved_at
		FROM %s
		WHERE user_id = $1
		ORDER BY saved_at DESC
	`, s.tableName)

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying shopping list: %w", err)
	}
	defer rows.Close()

	var items []shoppinglist.Item
	for rows.Next() {
		var item shoppinglist.Item
		var productInfo []byte
		if err := rows.Scan(
			&item.UserID, &item.ProductID, &item.Brand, &item.Name,
			&item.Price, &item.Image, &item.URL, &productInfo, &item.SavedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning shopping list row: %w", err)
		}
		item.ProductInfo = productInfo
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) Contains(ctx context.Context, userID, productID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE user_id = $1 AND product_id = $2)`, s.tableName)

	var exists bool
	if err := s.pool.QueryRow(ctx, query, userID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking shopping list item: %w", err)
	}
	return exists, nil
}

// Migration returns the SQL to create the shopping list table.
func Migration(tableName string) string {
	if tableName == "" {
		tableName = "shopping_list_items"
	}
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			user_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			brand TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			product_info JSONB,
			saved_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, product_id)
		);

		CREATE INDEX IF NOT EXISTS idx_%s_saved_at ON %s (user_id, saved_at DESC);
	`, tableName, tableName, tableName)
}
