package sales

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmanager/internal/inventory"
)

func testProduct(id, name string, price float64, stock int) *inventory.Product {
	return &inventory.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromFloat(price),
		Quantity: stock,
	}
}

func TestCartAddAndTotal(t *testing.T) {
	cart := NewCart()
	p := testProduct("p1", "Watch", 5.00, 10)

	require.NoError(t, cart.Add(p, 3))

	assert.Equal(t, "15", cart.Total().String())
	require.Len(t, cart.Lines(), 1)
	assert.Equal(t, 3, cart.Lines()[0].Quantity)
}

func TestCartAdd_InvalidQuantity(t *testing.T) {
	cart := NewCart()
	p := testProduct("p1", "Watch", 5.00, 10)

	assert.ErrorIs(t, cart.Add(p, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.Add(p, -2), ErrInvalidQuantity)
	assert.True(t, cart.Empty())
}

func TestCartAdd_InsufficientStock(t *testing.T) {
	cart := NewCart()
	p := testProduct("p1", "Watch", 5.00, 2)

	err := cart.Add(p, 5)
	require.ErrorIs(t, err, inventory.ErrInsufficientStock)
	assert.True(t, cart.Empty(), "a rejected add must leave the cart unchanged")
}

func TestCartAdd_MergeSameProduct(t *testing.T) {
	cart := NewCart()
	p := testProduct("p1", "Watch", 5.00, 10)

	require.NoError(t, cart.Add(p, 3))
	require.NoError(t, cart.Add(p, 2))

	require.Len(t, cart.Lines(), 1)
	assert.Equal(t, 5, cart.Lines()[0].Quantity)
	assert.Equal(t, "25", cart.Total().String())
}

func TestCartAdd_MergeRevalidatesStock(t *testing.T) {
	cart := NewCart()
	p := testProduct("p1", "Watch", 5.00, 4)

	require.NoError(t, cart.Add(p, 3))

	// 3 already carted, 2 more would exceed the known stock of 4
	err := cart.Add(p, 2)
	require.ErrorIs(t, err, inventory.ErrInsufficientStock)
	assert.Equal(t, 3, cart.Lines()[0].Quantity)
}

func TestCartAdd_MergeCapturesLatestPrice(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(testProduct("p1", "Watch", 5.00, 10), 2))

	// price changed mid-session; the most recently captured price wins
	require.NoError(t, cart.Add(testProduct("p1", "Watch", 6.00, 10), 1))

	require.Len(t, cart.Lines(), 1)
	assert.True(t, cart.Lines()[0].UnitPrice.Equal(decimal.NewFromFloat(6.00)))
	assert.Equal(t, "18", cart.Total().String())
}

func TestCartRemove(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(testProduct("p1", "Watch", 5.00, 10), 1))
	require.NoError(t, cart.Add(testProduct("p2", "Strap", 2.50, 10), 2))

	cart.Remove("p1")
	require.Len(t, cart.Lines(), 1)
	assert.Equal(t, "p2", cart.Lines()[0].ProductID)
	assert.Equal(t, "5", cart.Total().String())

	// removing an absent product is a no-op
	cart.Remove("p1")
	assert.Len(t, cart.Lines(), 1)
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(testProduct("p1", "Watch", 5.00, 10), 1))

	cart.Clear()
	assert.True(t, cart.Empty())
	assert.True(t, cart.Total().IsZero())
}

func TestCartStore(t *testing.T) {
	store := NewCartStore()

	cart := store.Create()
	require.NotEmpty(t, cart.ID)

	got, err := store.Get(cart.ID)
	require.NoError(t, err)
	assert.Same(t, cart, got)

	store.Delete(cart.ID)
	_, err = store.Get(cart.ID)
	assert.ErrorIs(t, err, ErrCartNotFound)
}
