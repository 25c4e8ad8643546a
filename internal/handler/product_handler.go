package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"paper-mart/internal/model"
	"paper-mart/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing.
const maxUploadMemory = 4 << 20

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products: the unpaginated listing with primary
// categories attached.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id", h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products (admin-gated). The body is a multipart
// form carrying the product fields and an optional image file. Validation
// failures answer 422 with field errors and the submitted values echoed
// back, so the form can be redisplayed with prior input intact.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, image, err := parseProductForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), input, image)
	if err != nil {
		var verrs model.ValidationErrors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusUnprocessableEntity, ValidationResponse{
				Error:  "validation failed",
				Errors: verrs,
				Values: input,
			})
			return
		}

		// Store or image-storage failure: generic message out, detail in
		// the log, submitted values echoed back.
		h.logger.Error().Err(err).Msg("product creation failed")
		writeJSON(w, http.StatusInternalServerError, ValidationResponse{
			Error:  "failed to create product, please try again",
			Errors: model.ValidationErrors{},
			Values: input,
		})
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// parseProductForm decodes the multipart creation form. Numeric fields that
// fail to parse are left at their zero values for the validator to report;
// only a structurally broken request is an error here.
func parseProductForm(r *http.Request) (model.ProductInput, *model.ImageUpload, error) {
	var input model.ProductInput

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return input, nil, errors.New("invalid multipart form")
	}

	input.Name = r.FormValue("name")
	input.Description = r.FormValue("description")

	if raw := r.FormValue("price"); raw != "" {
		if price, err := decimal.NewFromString(raw); err == nil {
			input.Price = price
		} else {
			input.Price = decimal.NewFromInt(-1)
		}
	}

	if raw := r.FormValue("stockQuantity"); raw != "" {
		if qty, err := strconv.Atoi(raw); err == nil {
			input.StockQuantity = qty
		} else {
			input.StockQuantity = -1
		}
	}

	if raw := r.FormValue("categoryId"); raw != "" {
		input.CategoryID, _ = strconv.ParseInt(raw, 10, 64)
	}

	if raw := r.FormValue("subCategoryId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			input.SubCategoryID = &id
		}
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return input, nil, nil
		}
		return input, nil, errors.New("invalid image upload")
	}
	defer file.Close()

	// Read one byte past the ceiling so an oversized upload is detected
	// without buffering the whole file.
	data, err := io.ReadAll(io.LimitReader(file, model.MaxImageSize+1))
	if err != nil {
		return input, nil, errors.New("failed to read image upload")
	}

	return input, &model.ImageUpload{Filename: header.Filename, Data: data}, nil
}
