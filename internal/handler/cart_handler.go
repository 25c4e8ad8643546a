package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"paper-mart/internal/cart"
	"paper-mart/internal/model"
	"paper-mart/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartCookie identifies the shopping session.
const cartCookie = "cart_session"

// CartHandler exposes the session-scoped shopping cart.
type CartHandler struct {
	carts    *cart.Manager
	products service.ProductService
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts *cart.Manager, products service.ProductService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

// cartResponse is the cart payload with the total computed on read.
type cartResponse struct {
	Items []model.CartItem `json:"items"`
	Total decimal.Decimal  `json:"total"`
}

// sessionID returns the cart session id from the cookie, minting a new one
// when absent.
func (h *CartHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(cartCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Get(h.sessionID(w, r))
	writeJSON(w, http.StatusOK, cartResponse{Items: c.Items, Total: c.Total()})
}

// addItemRequest is the payload for POST /api/cart/items.
type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// AddItem handles POST /api/cart/items. Name and unit price are taken from
// the catalogue, never from the client.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	sessionID := h.sessionID(w, r)
	h.carts.Add(sessionID, model.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  req.Quantity,
	})

	c := h.carts.Get(sessionID)
	writeJSON(w, http.StatusOK, cartResponse{Items: c.Items, Total: c.Total()})
}

// IncreaseItem handles POST /api/cart/items/{productId}/increase.
func (h *CartHandler) IncreaseItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id", h.logger)
		return
	}

	sessionID := h.sessionID(w, r)
	h.carts.Increase(sessionID, productID)

	c := h.carts.Get(sessionID)
	writeJSON(w, http.StatusOK, cartResponse{Items: c.Items, Total: c.Total()})
}

// RemoveItem handles DELETE /api/cart/items/{productId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id", h.logger)
		return
	}

	sessionID := h.sessionID(w, r)
	h.carts.Remove(sessionID, productID)

	c := h.carts.Get(sessionID)
	writeJSON(w, http.StatusOK, cartResponse{Items: c.Items, Total: c.Total()})
}
