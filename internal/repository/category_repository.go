package repository

import (
	"context"
	"errors"
	"fmt"

	"paper-mart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// foreignKeyViolation is the SQLSTATE raised when a delete is restricted.
const foreignKeyViolation = "23503"

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// GetRoots retrieves all root categories with their direct subcategories.
func (r *categoryRepository) GetRoots(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, name, slug, parent_id
		FROM categories
		ORDER BY (parent_id IS NOT NULL), name, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var roots []model.Category
	index := make(map[int64]int)
	var children []model.Category

	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if c.ParentID == nil {
			index[c.ID] = len(roots)
			roots = append(roots, c)
		} else {
			children = append(children, c)
		}
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	// Roots sort first, so every child's parent is already indexed.
	for _, c := range children {
		if i, ok := index[*c.ParentID]; ok {
			roots[i].SubCategories = append(roots[i].SubCategories, c)
		}
	}

	return roots, nil
}

// GetByID retrieves a category with its direct subcategories.
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `
		SELECT id, name, slug, parent_id
		FROM categories
		WHERE id = $1
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("category_id", id).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	if err := r.attachChildren(ctx, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

// GetBySlug retrieves a category by slug with its direct subcategories.
func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	query := `
		SELECT id, name, slug, parent_id
		FROM categories
		WHERE slug = $1
		ORDER BY (parent_id IS NOT NULL), id
		LIMIT 1
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("slug", slug).Msg("category not found by slug")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to query category by slug")
		return nil, fmt.Errorf("failed to query category by slug: %w", err)
	}

	if err := r.attachChildren(ctx, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

// attachChildren loads the direct subcategories of c, ordered by name.
func (r *categoryRepository) attachChildren(ctx context.Context, c *model.Category) error {
	query := `
		SELECT id, name, slug, parent_id
		FROM categories
		WHERE parent_id = $1
		ORDER BY name, id
	`

	rows, err := r.pool.Query(ctx, query, c.ID)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", c.ID).Msg("failed to query subcategories")
		return fmt.Errorf("failed to query subcategories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var child model.Category
		if err := rows.Scan(&child.ID, &child.Name, &child.Slug, &child.ParentID); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan subcategory row")
			return fmt.Errorf("failed to scan subcategory: %w", err)
		}
		c.SubCategories = append(c.SubCategories, child)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating subcategory rows")
		return fmt.Errorf("error iterating subcategories: %w", err)
	}

	return nil
}

// Create inserts a category, enforcing the one-level hierarchy at write time.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) (int64, error) {
	if category.ParentID != nil {
		parent, err := r.GetByID(ctx, *category.ParentID)
		if err != nil {
			return 0, err
		}
		if parent == nil {
			return 0, model.ErrCategoryNotFound
		}
		if parent.ParentID != nil {
			r.logger.Warn().
				Int64("parent_id", *category.ParentID).
				Str("name", category.Name).
				Msg("rejected category nested below a subcategory")
			return 0, model.ErrCategoryDepth
		}
	}

	if category.Slug == "" {
		category.Slug = model.Slugify(category.Name)
	}

	query := `
		INSERT INTO categories (name, slug, parent_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query, category.Name, category.Slug, category.ParentID).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Str("name", category.Name).Msg("failed to create category")
		return 0, fmt.Errorf("failed to create category: %w", err)
	}

	category.ID = id
	r.logger.Debug().Int64("category_id", id).Str("name", category.Name).Msg("category created")

	return id, nil
}

// Delete removes a category, relying on the restrict foreign keys to reject
// categories still referenced by products or subcategories.
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			r.logger.Warn().Int64("category_id", id).Msg("delete rejected, category still referenced")
			return model.ErrCategoryInUse
		}
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to delete category")
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}

	return nil
}

// CountAll returns the total number of categories.
func (r *categoryRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count categories")
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

// CountSubcategories returns the number of categories with a parent.
func (r *categoryRepository) CountSubcategories(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE parent_id IS NOT NULL`).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count subcategories")
		return 0, fmt.Errorf("failed to count subcategories: %w", err)
	}
	return count, nil
}

// ExistsByNameAndParent reports whether the name+parent pair already exists.
func (r *categoryRepository) ExistsByNameAndParent(ctx context.Context, name string, parentID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE LOWER(name) = LOWER($1) AND parent_id = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, name, parentID).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Str("name", name).Int64("parent_id", parentID).
			Msg("failed to check category existence")
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return exists, nil
}
