package model

// Standard error codes for API responses
const (
	ErrCodeCategoryNotFound = "CATEGORY_NOT_FOUND"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeSlugRequired     = "SLUG_REQUIRED"
	ErrCodeCategoryInUse    = "CATEGORY_IN_USE"
	ErrCodeCategoryDepth    = "CATEGORY_DEPTH"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError carries a machine-readable code alongside the message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	// ErrCategoryNotFound is terminal: a missing category id never yields a
	// partial or empty page.
	ErrCategoryNotFound = NewDomainError(ErrCodeCategoryNotFound, "Category does not exist")

	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product does not exist")

	// ErrSlugRequired marks a caller error (missing identifying parameter),
	// distinct from a missing resource.
	ErrSlugRequired = NewDomainError(ErrCodeSlugRequired, "Category slug is required")

	// ErrCategoryInUse is returned when deleting a category still referenced
	// by products or subcategories (restrict, not cascade).
	ErrCategoryInUse = NewDomainError(ErrCodeCategoryInUse, "Category is referenced by products or subcategories")

	// ErrCategoryDepth rejects nesting below root -> subcategory.
	ErrCategoryDepth = NewDomainError(ErrCodeCategoryDepth, "Subcategories cannot have subcategories")
)

// ValidationErrors maps form field names to messages for the product
// creation workflow. The zero value is ready to use.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	return "validation failed"
}

// Add records a message for a field, keeping the first message when a field
// fails more than one check.
func (v ValidationErrors) Add(field, message string) {
	if _, ok := v[field]; !ok {
		v[field] = message
	}
}
