package sales

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopmanager/internal/inventory"
)

// ErrInvalidQuantity is returned when a non-positive quantity is added to a cart.
var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// ErrCartNotFound is returned when a cart with the given ID is not found.
var ErrCartNotFound = errors.New("cart not found")

// CartLine is one product selection in an in-progress checkout. UnitPrice is
// the catalog price captured when the line was added.
type CartLine struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Cart accumulates the lines of one in-progress checkout. It is transient,
// single-session state; nothing in it is persisted until checkout commits.
type Cart struct {
	ID    string
	lines []CartLine
}

// NewCart creates an empty cart with a generated ID.
func NewCart() *Cart {
	return &Cart{ID: uuid.NewString()}
}

// Add appends a line for the product, or merges with an existing line for
// the same product by summing quantities. The merged quantity is validated
// against the product's known stock, and a merge re-captures the product's
// current unit price, so the most recently seen price wins.
func (c *Cart) Add(p *inventory.Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	merged := qty
	idx := -1
	for i, line := range c.lines {
		if line.ProductID == p.ID {
			merged += line.Quantity
			idx = i
			break
		}
	}

	if merged > p.Quantity {
		return &inventory.InsufficientStockError{
			ProductID: p.ID,
			Requested: merged,
			Available: p.Quantity,
		}
	}

	if idx >= 0 {
		c.lines[idx].Quantity = merged
		c.lines[idx].UnitPrice = p.Price
		c.lines[idx].ProductName = p.Name
		return nil
	}
	c.lines = append(c.lines, CartLine{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    qty,
		UnitPrice:   p.Price,
	})
	return nil
}

// Remove drops the line for the product if present; no-op otherwise.
func (c *Cart) Remove(productID string) {
	for i, line := range c.lines {
		if line.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Total returns the sum of quantity times unit price across all lines,
// recomputed fresh on each call. An empty cart totals zero.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Clear discards all lines.
func (c *Cart) Clear() {
	c.lines = nil
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// CartStore keeps the in-progress carts of active sessions, keyed by cart ID.
type CartStore struct {
	mu sync.Mutex
	m  map[string]*Cart
}

// NewCartStore instantiates an empty CartStore.
func NewCartStore() *CartStore {
	return &CartStore{m: map[string]*Cart{}}
}

// Create registers and returns a new empty cart.
func (s *CartStore) Create() *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := NewCart()
	s.m[cart.ID] = cart
	return cart
}

// Get retrieves a cart by ID. Returns ErrCartNotFound if it does not exist.
func (s *CartStore) Get(id string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.m[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	return cart, nil
}

// Delete discards the cart. Used after a successful checkout or an explicit cancel.
func (s *CartStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
}
