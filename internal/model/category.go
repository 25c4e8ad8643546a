package model

import (
	"strings"
	"unicode"
)

// Category represents a node in the two-level catalogue hierarchy.
// A root category has a nil ParentID; a subcategory points at its root.
type Category struct {
	ID            int64      `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Slug          string     `json:"slug" db:"slug"`
	ParentID      *int64     `json:"parentId,omitempty" db:"parent_id"`
	SubCategories []Category `json:"subCategories,omitempty" db:"-"`
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// MaxCategoryNameLength is the longest accepted category name.
const MaxCategoryNameLength = 100

// Slugify derives a URL-safe slug from a category name: lower-cased,
// with runs of non-alphanumeric characters collapsed to a single hyphen.
// "Planners/Agendas 2026" becomes "planners-agendas-2026".
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
