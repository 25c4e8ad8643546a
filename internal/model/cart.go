package model

import "github.com/shopspring/decimal"

// CartItem is one product line in a session cart.
type CartItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// Cart holds the items of a single shopping session. Carts are ephemeral:
// they live in memory and are never written to the catalogue store.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Total sums unitPrice * quantity over all items. It is recomputed on every
// read rather than stored.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
