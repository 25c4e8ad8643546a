// Package cart keeps per-session shopping carts in memory. Carts are
// scoped to a session id carried in a cookie and are never written to the
// catalogue store; totals are recomputed on every read.
package cart

import (
	"sync"

	"paper-mart/internal/model"

	"github.com/rs/zerolog"
)

// Manager owns all live session carts behind a single lock. The catalogue
// is read-mostly; cart mutation is the only cross-request state here.
type Manager struct {
	mu     sync.RWMutex
	carts  map[string]*model.Cart
	logger zerolog.Logger
}

// NewManager creates an empty cart manager.
func NewManager(logger zerolog.Logger) *Manager {
	return &Manager{
		carts:  make(map[string]*model.Cart),
		logger: logger.With().Str("component", "cart").Logger(),
	}
}

// Get returns a copy of the session's cart. An unknown session yields an
// empty cart rather than an error.
func (m *Manager) Get(sessionID string) model.Cart {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.carts[sessionID]
	if !ok {
		return model.Cart{Items: []model.CartItem{}}
	}

	items := make([]model.CartItem, len(c.Items))
	copy(items, c.Items)
	return model.Cart{Items: items}
}

// Add puts an item into the session's cart, merging quantities when the
// product is already present.
func (m *Manager) Add(sessionID string, item model.CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[sessionID]
	if !ok {
		c = &model.Cart{}
		m.carts[sessionID] = c
	}

	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}

	c.Items = append(c.Items, item)
	m.logger.Debug().
		Str("session", sessionID).
		Int64("product_id", item.ProductID).
		Msg("item added to cart")
}

// Increase bumps the quantity of a product already in the cart by one.
// Unknown products are ignored.
func (m *Manager) Increase(sessionID string, productID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[sessionID]
	if !ok {
		return
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity++
			return
		}
	}
}

// Remove deletes a product line from the session's cart.
func (m *Manager) Remove(sessionID string, productID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[sessionID]
	if !ok {
		return
	}

	items := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	c.Items = items
}
