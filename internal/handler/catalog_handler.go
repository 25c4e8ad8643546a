package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"paper-mart/internal/model"
	"paper-mart/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// CatalogHandler serves the category-scoped catalogue pages in both
// addressing modes, full pages and AJAX fragments alike.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalogue handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// pageParam reads the page query parameter, defaulting to 1. Values below 1
// are passed through; the service clamps them.
func pageParam(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}

// CategoryPage handles GET /categoria/{categoryId} (numeric-id mode).
func (h *CatalogHandler) CategoryPage(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(mux.Vars(r)["categoryId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id", h.logger)
		return
	}

	page, err2 := h.service.QueryByCategoryID(r.Context(), categoryID, pageParam(r))
	if err2 != nil {
		writeDomainError(w, err2, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// ProductsFragment handles GET /categoria/products?categoryId=&page=
// (numeric-id mode, partial refresh).
func (h *CatalogHandler) ProductsFragment(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(r.URL.Query().Get("categoryId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id", h.logger)
		return
	}

	products, err := h.service.ProductsByCategoryID(r.Context(), categoryID, pageParam(r))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// SlugPage handles GET /c/{categorySlug} and /c/{categorySlug}/{subCategorySlug}
// (slug mode).
func (h *CatalogHandler) SlugPage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	page, err := h.service.QueryBySlug(r.Context(), vars["categorySlug"], vars["subCategorySlug"], pageParam(r))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// SlugProductsFragment handles GET /c/products?categorySlug=&subCategorySlug=&page=
// (slug mode, partial refresh).
func (h *CatalogHandler) SlugProductsFragment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	products, err := h.service.ProductsBySlug(r.Context(), q.Get("categorySlug"), q.Get("subCategorySlug"), pageParam(r))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Categories handles GET /api/categories (navigation tree).
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	roots, err := h.service.RootCategories(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, roots)
}

// createCategoryRequest is the payload for POST /api/categories.
type createCategoryRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId,omitempty"`
}

// CreateCategory handles POST /api/categories (admin-gated).
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), req.Name, req.ParentID)
	if err != nil {
		var verrs model.ValidationErrors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusUnprocessableEntity, ValidationResponse{
				Error:  "validation failed",
				Errors: verrs,
				Values: req,
			})
			return
		}
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// DeleteCategory handles DELETE /api/categories/{id} (admin-gated).
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id", h.logger)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
