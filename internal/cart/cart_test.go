package cart

import (
	"fmt"
	"sync"
	"testing"

	"paper-mart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(productID int64, price string, qty int) model.CartItem {
	return model.CartItem{
		ProductID: productID,
		Name:      fmt.Sprintf("Product %d", productID),
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func TestManager_GetUnknownSessionIsEmpty(t *testing.T) {
	m := NewManager(zerolog.Nop())

	c := m.Get("nobody")

	assert.Empty(t, c.Items)
	assert.True(t, c.Total().IsZero())
}

func TestManager_AddMergesQuantities(t *testing.T) {
	m := NewManager(zerolog.Nop())

	m.Add("s1", item(1, "10.00", 2))
	m.Add("s1", item(1, "10.00", 3))
	m.Add("s1", item(2, "4.50", 1))

	c := m.Get("s1")
	require.Len(t, c.Items, 2)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.True(t, c.Total().Equal(decimal.RequireFromString("54.50")))
}

func TestManager_AddClampsQuantityToOne(t *testing.T) {
	m := NewManager(zerolog.Nop())

	m.Add("s1", item(1, "10.00", 0))
	m.Add("s2", item(1, "10.00", -5))

	assert.Equal(t, 1, m.Get("s1").Items[0].Quantity)
	assert.Equal(t, 1, m.Get("s2").Items[0].Quantity)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := NewManager(zerolog.Nop())

	m.Add("alice", item(1, "10.00", 1))
	m.Add("bob", item(2, "20.00", 2))

	alice := m.Get("alice")
	bob := m.Get("bob")

	require.Len(t, alice.Items, 1)
	require.Len(t, bob.Items, 1)
	assert.Equal(t, int64(1), alice.Items[0].ProductID)
	assert.Equal(t, int64(2), bob.Items[0].ProductID)
}

func TestManager_Increase(t *testing.T) {
	m := NewManager(zerolog.Nop())
	m.Add("s1", item(1, "10.00", 1))

	m.Increase("s1", 1)
	m.Increase("s1", 999) // unknown product, ignored
	m.Increase("ghost", 1)

	c := m.Get("s1")
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestManager_Remove(t *testing.T) {
	m := NewManager(zerolog.Nop())
	m.Add("s1", item(1, "10.00", 1))
	m.Add("s1", item(2, "5.00", 2))

	m.Remove("s1", 1)

	c := m.Get("s1")
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(2), c.Items[0].ProductID)
	assert.True(t, c.Total().Equal(decimal.RequireFromString("10.00")))
}

func TestManager_GetReturnsACopy(t *testing.T) {
	m := NewManager(zerolog.Nop())
	m.Add("s1", item(1, "10.00", 1))

	c := m.Get("s1")
	c.Items[0].Quantity = 100

	assert.Equal(t, 1, m.Get("s1").Items[0].Quantity)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			session := fmt.Sprintf("s%d", n%4)
			m.Add(session, item(int64(n), "1.00", 1))
			m.Increase(session, int64(n))
			m.Get(session)
		}(i)
	}
	wg.Wait()

	total := decimal.Zero
	for i := 0; i < 4; i++ {
		c := m.Get(fmt.Sprintf("s%d", i))
		total = total.Add(c.Total())
	}
	assert.True(t, total.Equal(decimal.RequireFromString("40.00")))
}
