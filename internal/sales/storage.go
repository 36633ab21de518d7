package sales

import (
	"context"
	"errors"
	"sort"
	"sync"

	"shopmanager/internal/inventory"
)

// ErrNotFound is returned when a sale with the given ID is not found.
var ErrNotFound = errors.New("sale not found")

// ErrEmptyID is returned when trying to store a sale with an empty ID.
var ErrEmptyID = errors.New("empty sale ID")

// Storage is the main interface for the sales storage layer.
//
// Create must persist the sale, its line items, and the matching stock
// decrements as a single all-or-nothing unit: on any failure no partial
// write may remain visible. A decrement that would drive stock negative
// aborts the unit with an inventory.InsufficientStockError.
type Storage interface {
	Create(ctx context.Context, sale *Sale) error
	Read(ctx context.Context, id string) (*Sale, error)
	GetAll(ctx context.Context) ([]*Sale, error)
}

// LocalStorage provides an in-memory implementation for storing sales,
// paired with an inventory.LocalStorage so the stock decrements of a
// checkout can be applied atomically alongside the sale.
type LocalStorage struct {
	mu       sync.Mutex
	products *inventory.LocalStorage
	m        map[string]*Sale
}

// NewLocalStorage instantiates a new LocalStorage over the given product store.
func NewLocalStorage(products *inventory.LocalStorage) *LocalStorage {
	return &LocalStorage{
		products: products,
		m:        map[string]*Sale{},
	}
}

// Create validates every line's stock before touching anything, then applies
// all decrements and stores the sale. Returns ErrEmptyID if the sale has an
// empty ID.
func (l *LocalStorage) Create(ctx context.Context, sale *Sale) error {
	if sale.ID == "" {
		return ErrEmptyID
	}

	lines := make(map[string]int, len(sale.Items))
	for _, item := range sale.Items {
		lines[item.ProductID] += item.Quantity
	}
	if err := l.products.DecrementMany(ctx, lines); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *sale
	cp.Items = make([]LineItem, len(sale.Items))
	copy(cp.Items, sale.Items)
	l.m[sale.ID] = &cp
	return nil
}

// Read retrieves a sale by ID. Returns ErrNotFound if it does not exist.
func (l *LocalStorage) Read(ctx context.Context, id string) (*Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// GetAll retrieves all sales, newest first.
func (l *LocalStorage) GetAll(ctx context.Context) ([]*Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	sales := make([]*Sale, 0, len(l.m))
	for _, s := range l.m {
		sales = append(sales, s)
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].CreatedAt.After(sales[j].CreatedAt) })
	return sales, nil
}
