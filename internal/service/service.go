package service

import (
	"context"

	"paper-mart/internal/model"
)

// Page sizes differ between the two addressing modes: the numeric-id pages
// grew up with a 12-item grid while the slug pages settled on 10. The two
// constants are kept separate on purpose.
const (
	// CategoryPageSize is the product window for numeric-id queries.
	CategoryPageSize = 12

	// SlugPageSize is the product window for slug queries.
	SlugPageSize = 10
)

// CatalogPage is a full catalogue page: the product window plus everything
// the surrounding page needs (current category, root navigation tree).
type CatalogPage struct {
	Products     []model.Product  `json:"products"`
	CategoryID   int64            `json:"categoryId,omitempty"`
	CategoryName string           `json:"categoryName"`
	Page         int              `json:"page"`
	Categories   []model.Category `json:"categories"`
}

// CatalogService is the category-scoped, paginated product query engine.
// It supports two addressing modes with deliberately different semantics:
// numeric id (missing category is an error) and slug (unmatched slugs
// yield an empty page).
type CatalogService interface {
	// QueryByCategoryID returns a full catalogue page for a category id.
	// A missing category yields model.ErrCategoryNotFound, never an empty
	// page. Pages below 1 are clamped to 1.
	QueryByCategoryID(ctx context.Context, categoryID int64, page int) (*CatalogPage, error)

	// QueryBySlug returns a full catalogue page for a category slug,
	// optionally narrowed by a subcategory slug. An empty categorySlug
	// yields model.ErrSlugRequired; unmatched slugs yield an empty page.
	QueryBySlug(ctx context.Context, categorySlug, subCategorySlug string, page int) (*CatalogPage, error)

	// ProductsByCategoryID returns only the product window for a category
	// id, with ordering and pagination identical to QueryByCategoryID.
	ProductsByCategoryID(ctx context.Context, categoryID int64, page int) ([]model.Product, error)

	// ProductsBySlug returns only the product window for a slug query,
	// with ordering and pagination identical to QueryBySlug.
	ProductsBySlug(ctx context.Context, categorySlug, subCategorySlug string, page int) ([]model.Product, error)

	// RootCategories returns the navigation tree: root categories with
	// their direct subcategories, ordered by name.
	RootCategories(ctx context.Context) ([]model.Category, error)

	// CreateCategory adds a category; parentID nil creates a root.
	CreateCategory(ctx context.Context, name string, parentID *int64) (*model.Category, error)

	// DeleteCategory removes a category; categories referenced by products
	// or subcategories are rejected with model.ErrCategoryInUse.
	DeleteCategory(ctx context.Context, id int64) error
}

// ProductService defines the product catalogue operations.
type ProductService interface {
	// Create validates and persists a new product with an optional image.
	// Field or image violations return model.ValidationErrors and nothing
	// is persisted.
	Create(ctx context.Context, input model.ProductInput, image *model.ImageUpload) (*model.Product, error)

	// ListAll retrieves every product with its primary category attached.
	ListAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product or model.ErrProductNotFound.
	GetByID(ctx context.Context, id int64) (*model.Product, error)
}
