package service

import (
	"context"
	"fmt"
	"strings"

	"paper-mart/internal/metrics"
	"paper-mart/internal/model"
	"paper-mart/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewCatalogService creates a new catalogue query engine.
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "catalog").Logger(),
	}
}

// clampPage normalises page numbers below 1 to the first page.
func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// fetchByCategoryID is the single fetch path for numeric-id queries; the
// full-page and fragment variants both go through it so their product
// sequences are always identical.
func (s *catalogService) fetchByCategoryID(ctx context.Context, categoryID int64, page int) ([]model.Product, int, error) {
	page = clampPage(page)
	offset := (page - 1) * CategoryPageSize

	products, err := s.productRepo.ListByCategoryID(ctx, categoryID, CategoryPageSize, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("category_id", categoryID).
			Int("page", page).
			Msg("failed to list products by category id")
		return nil, page, fmt.Errorf("failed to list products: %w", err)
	}

	return products, page, nil
}

// fetchBySlug is the single fetch path for slug queries.
func (s *catalogService) fetchBySlug(ctx context.Context, categorySlug, subCategorySlug string, page int) ([]model.Product, int, error) {
	page = clampPage(page)
	offset := (page - 1) * SlugPageSize

	products, err := s.productRepo.ListBySlug(ctx, categorySlug, subCategorySlug, SlugPageSize, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Str("category_slug", categorySlug).
			Str("sub_category_slug", subCategorySlug).
			Int("page", page).
			Msg("failed to list products by slug")
		return nil, page, fmt.Errorf("failed to list products: %w", err)
	}

	return products, page, nil
}

// QueryByCategoryID returns a full catalogue page addressed by category id.
func (s *catalogService) QueryByCategoryID(ctx context.Context, categoryID int64, page int) (*CatalogPage, error) {
	metrics.RecordCatalogQuery("id")

	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}
	if category == nil {
		s.logger.Debug().Int64("category_id", categoryID).Msg("category not found")
		return nil, model.ErrCategoryNotFound
	}

	products, page, err := s.fetchByCategoryID(ctx, categoryID, page)
	if err != nil {
		return nil, err
	}

	roots, err := s.categoryRepo.GetRoots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load navigation tree: %w", err)
	}

	return &CatalogPage{
		Products:     products,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Page:         page,
		Categories:   roots,
	}, nil
}

// QueryBySlug returns a full catalogue page addressed by slug. Unlike the
// id mode, an unmatched slug is not an error: the page simply has no
// products. Only a missing slug parameter is rejected.
func (s *catalogService) QueryBySlug(ctx context.Context, categorySlug, subCategorySlug string, page int) (*CatalogPage, error) {
	metrics.RecordCatalogQuery("slug")

	categorySlug = strings.TrimSpace(categorySlug)
	if categorySlug == "" {
		return nil, model.ErrSlugRequired
	}

	products, page, err := s.fetchBySlug(ctx, categorySlug, subCategorySlug, page)
	if err != nil {
		return nil, err
	}

	result := &CatalogPage{
		Products: products,
		Page:     page,
	}

	// Resolution failure is not an error in slug mode; the display name is
	// just left empty alongside the empty product window.
	category, err := s.categoryRepo.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}
	if category != nil {
		result.CategoryID = category.ID
		result.CategoryName = category.Name
	}

	roots, err := s.categoryRepo.GetRoots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load navigation tree: %w", err)
	}
	result.Categories = roots

	return result, nil
}

// ProductsByCategoryID returns the product window only, for partial refresh.
func (s *catalogService) ProductsByCategoryID(ctx context.Context, categoryID int64, page int) ([]model.Product, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	products, _, err := s.fetchByCategoryID(ctx, categoryID, page)
	return products, err
}

// ProductsBySlug returns the product window only, for partial refresh.
func (s *catalogService) ProductsBySlug(ctx context.Context, categorySlug, subCategorySlug string, page int) ([]model.Product, error) {
	categorySlug = strings.TrimSpace(categorySlug)
	if categorySlug == "" {
		return nil, model.ErrSlugRequired
	}

	products, _, err := s.fetchBySlug(ctx, categorySlug, subCategorySlug, page)
	return products, err
}

// RootCategories returns the navigation tree.
func (s *catalogService) RootCategories(ctx context.Context) ([]model.Category, error) {
	roots, err := s.categoryRepo.GetRoots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load root categories: %w", err)
	}
	return roots, nil
}

// CreateCategory adds a root category or a subcategory.
func (s *catalogService) CreateCategory(ctx context.Context, name string, parentID *int64) (*model.Category, error) {
	name = strings.TrimSpace(name)

	errs := model.ValidationErrors{}
	if name == "" {
		errs.Add("name", "Category name is required")
	} else if len(name) > model.MaxCategoryNameLength {
		errs.Add("name", fmt.Sprintf("Category name cannot exceed %d characters", model.MaxCategoryNameLength))
	}
	if len(errs) > 0 {
		return nil, errs
	}

	category := &model.Category{Name: name, ParentID: parentID}
	if _, err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("category_id", category.ID).
		Str("name", category.Name).
		Msg("category created")

	return category, nil
}

// DeleteCategory removes a category with restrict semantics.
func (s *catalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}
