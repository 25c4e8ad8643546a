package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"paper-mart/internal/metrics"
	"paper-mart/internal/model"
	"paper-mart/internal/repository"
	"paper-mart/internal/storage"

	"github.com/rs/zerolog"
)

// allowedImageExtensions is the upload allow-list, checked by extension.
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// productService implements ProductService.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	images       storage.ImageStore
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	images storage.ImageStore,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		images:       images,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// Create validates and persists a new product. Validation is all-or-nothing:
// any field or image violation returns the full set of field errors and
// leaves both the store and the image storage untouched.
func (s *productService) Create(ctx context.Context, input model.ProductInput, image *model.ImageUpload) (*model.Product, error) {
	errs := model.ValidationErrors{}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		errs.Add("name", "Product name is required")
	} else if len(name) > model.MaxProductNameLength {
		errs.Add("name", fmt.Sprintf("Product name cannot exceed %d characters", model.MaxProductNameLength))
	}

	if strings.TrimSpace(input.Description) == "" {
		errs.Add("description", "Product description is required")
	}

	if input.Price.IsNegative() {
		errs.Add("price", "Price cannot be negative")
	}

	if input.StockQuantity < 0 {
		errs.Add("stockQuantity", "Stock quantity cannot be negative")
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}
	if category == nil {
		errs.Add("categoryId", "Category does not exist")
	}

	if input.SubCategoryID != nil && category != nil {
		if !subcategoryOf(category, *input.SubCategoryID) {
			errs.Add("subCategoryId", "Subcategory does not belong to the selected category")
		}
	}

	if image != nil {
		validateImage(image, errs)
	}

	if len(errs) > 0 {
		s.logger.Debug().
			Int("field_errors", len(errs)).
			Str("name", name).
			Msg("product creation rejected by validation")
		return nil, errs
	}

	// The image is stored before the row so the recorded URL always points
	// at an existing file. An orphaned file after an insert failure is
	// harmless; a dangling URL is not.
	imageURL := ""
	if image != nil {
		imageURL, err = s.images.Store(ctx, image.Data, image.Filename)
		if err != nil {
			s.logger.Error().Err(err).Str("filename", image.Filename).Msg("failed to store product image")
			return nil, fmt.Errorf("failed to store product image: %w", err)
		}
	}

	product := &model.Product{
		Name:          name,
		Description:   strings.TrimSpace(input.Description),
		Price:         input.Price.Round(2),
		StockQuantity: input.StockQuantity,
		ImageURL:      imageURL,
		CategoryID:    input.CategoryID,
		SubCategoryID: input.SubCategoryID,
	}

	if _, err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	product.Category = category
	metrics.ProductsCreatedTotal.Inc()

	s.logger.Info().
		Int64("product_id", product.ID).
		Str("name", product.Name).
		Int64("category_id", product.CategoryID).
		Msg("product created")

	return product, nil
}

// validateImage applies the extension allow-list and the size ceiling.
func validateImage(image *model.ImageUpload, errs model.ValidationErrors) {
	ext := strings.ToLower(path.Ext(image.Filename))
	if !allowedImageExtensions[ext] {
		errs.Add("image", "Image must be a jpg, jpeg, png, gif or webp file")
	}
	if len(image.Data) > model.MaxImageSize {
		errs.Add("image", "Image cannot exceed 2 MiB")
	}
	if len(image.Data) == 0 {
		errs.Add("image", "Image file is empty")
	}
}

// subcategoryOf reports whether id is a direct subcategory of category.
func subcategoryOf(category *model.Category, id int64) bool {
	for _, sub := range category.SubCategories {
		if sub.ID == id {
			return true
		}
	}
	return false
}

// ListAll retrieves every product with its primary category attached.
func (s *productService) ListAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("listed all products")
	return products, nil
}

// GetByID retrieves a single product.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}
