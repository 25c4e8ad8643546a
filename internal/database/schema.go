package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// schema is applied on startup. Statements are idempotent so repeated
// startups against the same database are harmless. Both foreign keys from
// products into categories restrict deletion: a referenced category cannot
// be removed, it must be orphaned first.
const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	slug TEXT NOT NULL,
	parent_id BIGINT REFERENCES categories(id) ON DELETE RESTRICT
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_parent_slug
	ON categories (COALESCE(parent_id, 0), slug);

CREATE INDEX IF NOT EXISTS idx_categories_parent ON categories (parent_id);

CREATE TABLE IF NOT EXISTS products (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	description TEXT NOT NULL,
	price NUMERIC(18,2) NOT NULL CHECK (price >= 0),
	stock_quantity INTEGER NOT NULL CHECK (stock_quantity >= 0),
	image_url TEXT NOT NULL DEFAULT '',
	category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
	sub_category_id BIGINT REFERENCES categories(id) ON DELETE RESTRICT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_products_category ON products (category_id);
CREATE INDEX IF NOT EXISTS idx_products_sub_category ON products (sub_category_id);
CREATE INDEX IF NOT EXISTS idx_products_name ON products (name, id);
`

// EnsureSchema creates the catalogue tables and indexes if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		logger.Error().Err(err).Msg("failed to apply database schema")
		return fmt.Errorf("failed to apply database schema: %w", err)
	}

	logger.Info().Msg("database schema ensured")
	return nil
}
