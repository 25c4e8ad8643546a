package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalogue product. ImageURL is an empty string when
// no image was uploaded, never null, so renderers need no nil checks.
type Product struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Description   string          `json:"description" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"`
	StockQuantity int             `json:"stockQuantity" db:"stock_quantity"`
	ImageURL      string          `json:"imageUrl" db:"image_url"`
	CategoryID    int64           `json:"categoryId" db:"category_id"`
	SubCategoryID *int64          `json:"subCategoryId,omitempty" db:"sub_category_id"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`

	// Category is the primary category, attached by listing queries.
	Category *Category `json:"category,omitempty" db:"-"`
}

// ProductInput carries the product-creation form fields before validation.
type ProductInput struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	CategoryID    int64           `json:"categoryId"`
	SubCategoryID *int64          `json:"subCategoryId,omitempty"`
}

// ImageUpload carries an uploaded product image prior to the allow-list
// and size checks.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// MaxProductNameLength is the longest accepted product name.
const MaxProductNameLength = 100

// MaxImageSize is the largest accepted product image. Exactly this size
// passes, one byte more is rejected.
const MaxImageSize = 2 * 1024 * 1024
