package repository

import (
	"context"

	"paper-mart/internal/model"
)

// CategoryRepository defines the interface for category tree data access.
type CategoryRepository interface {
	// GetRoots retrieves all root categories ordered by name, each with its
	// direct subcategories eagerly attached (also ordered by name).
	GetRoots(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a category with its direct subcategories.
	// Returns (nil, nil) when the category does not exist.
	GetByID(ctx context.Context, id int64) (*model.Category, error)

	// GetBySlug retrieves a category by its slug with its direct
	// subcategories. Returns (nil, nil) when no category has the slug.
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)

	// Create inserts a category and returns its id. The hierarchy invariants
	// are enforced here: the parent must exist and must itself be a root.
	Create(ctx context.Context, category *model.Category) (int64, error)

	// Delete removes a category. Categories referenced by products or
	// subcategories are rejected with model.ErrCategoryInUse.
	Delete(ctx context.Context, id int64) error

	// CountAll returns the total number of categories.
	CountAll(ctx context.Context) (int, error)

	// CountSubcategories returns the number of categories with a parent.
	CountSubcategories(ctx context.Context) (int, error)

	// ExistsByNameAndParent reports whether a category with the given name
	// (case-insensitive) exists under the given parent.
	ExistsByNameAndParent(ctx context.Context, name string, parentID int64) (bool, error)
}

// ProductRepository defines the interface for product catalogue data access.
type ProductRepository interface {
	// Create inserts a product and returns its id.
	Create(ctx context.Context, product *model.Product) (int64, error)

	// GetByID retrieves a product with its primary category attached.
	// Returns (nil, nil) when the product does not exist.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// ListAll retrieves every product with its primary category attached,
	// unpaginated, ordered by name then id.
	ListAll(ctx context.Context) ([]model.Product, error)

	// ListByCategoryID retrieves a window of products in the category,
	// ordered by name then id.
	ListByCategoryID(ctx context.Context, categoryID int64, limit, offset int) ([]model.Product, error)

	// ListBySlug retrieves a window of products whose category carries the
	// slug, ordered by name then id. A non-empty subCategorySlug further
	// restricts to products whose subcategory carries it; products without
	// a subcategory are then excluded. Unmatched slugs yield an empty slice.
	ListBySlug(ctx context.Context, categorySlug, subCategorySlug string, limit, offset int) ([]model.Product, error)
}
