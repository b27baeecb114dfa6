// Package postgres implements wardrobe.Store with PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MrPergite/lookapp-sub001/wardrobe"
)

// Store implements wardrobe.Store with PostgreSQL.
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

// New creates a new PostgreSQL wardrobe store.
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	s := &Store{
		pool:      pool,
		tableName: "wardrobe_garments",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Add(ctx context.Context, g wardrobe.Garment) error {
	if g.AddedAt.IsZero() {
		g.AddedAt = time.Now()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, category, brand, name, image, source_product_id, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, id) DO UPDATE SET
			category = EXCLUDED.category,
			brand = EXCLUDED.brand,
			name = EXCLUDED.name,
			image = EXCLUDED.image,
			source_product_id = EXCLUDED.source_product_id
	`, s.tableName)

	_, err := s.pool.Exec(ctx, query,
		g.ID, g.UserID, g.Category, g.Brand, g.Name, g.Image, g.SourceProductID, g.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("adding garment: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, userID, id string) (*wardrobe.Garment, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, category, brand, name, image, source_product_id, added_at
		FROM %s
		WHERE user_id = $1 AND id = $2
	`, s.tableName)

	var g wardrobe.Garment
	err := s.pool.QueryRow(ctx, query, userID, id).Scan(
		&g.ID, &g.UserID, &g.Category, &g.Brand, &g.Name, &g.Image,
		&g.SourceProductID, &g.AddedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, wardrobe.ErrGarmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting garment: %w", err)
	}
	return &g, nil
}

func (s *Store) List(ctx context.Context, userID string, filter wardrobe.Filter) ([]wardrobe.Garment, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, category, brand, name, image, source_product_id, added_at
		FROM %s
		WHERE user_id = $1 AND ($2 = '' OR category = $2)
		ORDER BY added_at DESC
	`, s.tableName)

	rows, err := s.pool.Query(ctx, query, userID, filter.Category)
	if err != nil {
		return nil, fmt.Errorf("querying wardrobe: %w", err)
	}
	defer rows.Close()

	var garments []wardrobe.Garment
	for rows.Next() {
		var g wardrobe.Garment
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.Category, &g.Brand, &g.Name, &g.Image,
			&g.SourceProductID, &g.AddedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning wardrobe row: %w", err)
		}
		garments = append(garments, g)
	}
	return garments, rows.Err()
}

func (s *Store) Remove(ctx context.Context, userID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND id = $2`, s.tableName)

	tag, err := s.pool.Exec(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("removing garment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return wardrobe.ErrGarmentNotFound
	}
	return nil
}

// Migration returns the SQL to create the wardrobe table.
func Migration(tableName string) string {
	if tableName == "" {
		tableName = "wardrobe_garments"
	}
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			brand TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			source_product_id TEXT NOT NULL DEFAULT '',
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, id)
		);

		CREATE INDEX IF NOT EXISTS idx_%s_added_at ON %s (user_id, added_at DESC);
	`, tableName, tableName, tableName)
}
