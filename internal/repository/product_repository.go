package repository

import (
	"context"
	"errors"
	"fmt"

	"paper-mart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// productColumns is the select list shared by all product queries that join
// the primary category. Ordering by name with id as tiebreak keeps pages
// stable when names collide.
const productColumns = `
	p.id, p.name, p.description, p.price, p.stock_quantity, p.image_url,
	p.category_id, p.sub_category_id, p.created_at,
	c.id, c.name, c.slug, c.parent_id
`

// scanProduct scans one joined product row.
func scanProduct(rows pgx.Rows) (model.Product, error) {
	var p model.Product
	var c model.Category
	err := rows.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.ImageURL,
		&p.CategoryID, &p.SubCategoryID, &p.CreatedAt,
		&c.ID, &c.Name, &c.Slug, &c.ParentID,
	)
	if err != nil {
		return model.Product{}, err
	}
	p.Category = &c
	return p, nil
}

// Create inserts a product and returns its id.
func (r *productRepository) Create(ctx context.Context, product *model.Product) (int64, error) {
	query := `
		INSERT INTO products (name, description, price, stock_quantity, image_url, category_id, sub_category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.StockQuantity,
		product.ImageURL,
		product.CategoryID,
		product.SubCategoryID,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return 0, fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Int64("product_id", product.ID).Str("name", product.Name).Msg("product created")

	return product.ID, nil
}

// GetByID retrieves a product with its primary category attached.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`

	var p model.Product
	var c model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.ImageURL,
		&p.CategoryID, &p.SubCategoryID, &p.CreatedAt,
		&c.ID, &c.Name, &c.Slug, &c.ParentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	p.Category = &c

	return &p, nil
}

// ListAll retrieves every product with its primary category attached.
func (r *productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		ORDER BY p.name, p.id
	`

	return r.queryProducts(ctx, query)
}

// ListByCategoryID retrieves a window of products in the category.
func (r *productRepository) ListByCategoryID(ctx context.Context, categoryID int64, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.category_id = $1
		ORDER BY p.name, p.id
		LIMIT $2 OFFSET $3
	`

	return r.queryProducts(ctx, query, categoryID, limit, offset)
}

// ListBySlug retrieves a window of products by category slug, optionally
// narrowed by subcategory slug. The subcategory join is inner, so products
// without a subcategory drop out as soon as a sub-slug filter is active.
func (r *productRepository) ListBySlug(ctx context.Context, categorySlug, subCategorySlug string, limit, offset int) ([]model.Product, error) {
	if subCategorySlug == "" {
		query := `
			SELECT ` + productColumns + `
			FROM products p
			JOIN categories c ON c.id = p.category_id
			WHERE c.slug = $1
			ORDER BY p.name, p.id
			LIMIT $2 OFFSET $3
		`
		return r.queryProducts(ctx, query, categorySlug, limit, offset)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN categories sc ON sc.id = p.sub_category_id
		WHERE c.slug = $1 AND sc.slug = $2
		ORDER BY p.name, p.id
		LIMIT $3 OFFSET $4
	`
	return r.queryProducts(ctx, query, categorySlug, subCategorySlug, limit, offset)
}

// queryProducts runs a joined product query and scans all rows.
func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
