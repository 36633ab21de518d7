package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// ErrNotFound is returned when a product with the given ID is not found.
var ErrNotFound = errors.New("product not found")

// ErrEmptyID is returned when trying to store a product with an empty ID.
var ErrEmptyID = errors.New("empty product ID")

// ErrInsufficientStock is the sentinel all InsufficientStockError values
// unwrap to, so callers can match with errors.Is.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError reports a decrement that would drive a product's
// stock below zero, identifying the offending product.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Storage is the main interface for the product storage layer. Decrement is
// the only operation allowed to reduce stock, and it must reject any
// decrement that would leave the quantity negative.
type Storage interface {
	Create(ctx context.Context, p *Product) error
	Read(ctx context.Context, id string) (*Product, error)
	GetAll(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	Decrement(ctx context.Context, id string, qty int) error
}

// LocalStorage provides an in-memory implementation for storing products.
type LocalStorage struct {
	mu sync.Mutex
	m  map[string]*Product
}

// NewLocalStorage instantiates a new LocalStorage for products with an empty map.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		m: map[string]*Product{},
	}
}

// Returns ErrEmptyID if the product has an empty ID.
func (l *LocalStorage) Create(ctx context.Context, p *Product) error {
	if p.ID == "" {
		return ErrEmptyID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *p
	l.m[p.ID] = &cp
	return nil
}

// Read retrieves a product by ID. Returns ErrNotFound if it does not exist.
func (l *LocalStorage) Read(ctx context.Context, id string) (*Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// GetAll retrieves all products ordered by name.
func (l *LocalStorage) GetAll(ctx context.Context) ([]*Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	products := make([]*Product, 0, len(l.m))
	for _, p := range l.m {
		cp := *p
		products = append(products, &cp)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

// Update replaces the stored product. Returns ErrNotFound if it does not exist.
func (l *LocalStorage) Update(ctx context.Context, p *Product) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.m[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	l.m[p.ID] = &cp
	return nil
}

// Delete removes the product. Returns ErrNotFound if it does not exist.
func (l *LocalStorage) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.m[id]; !ok {
		return ErrNotFound
	}
	delete(l.m, id)
	return nil
}

// Decrement reduces the product's stock by qty, rejecting the whole
// operation with an InsufficientStockError when qty exceeds the current
// quantity. The check and the write happen under one lock.
func (l *LocalStorage) Decrement(ctx context.Context, id string, qty int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.decrementLocked(id, qty)
}

// DecrementMany applies a set of decrements as a single all-or-nothing unit:
// every line is validated before any stock is touched. Products are checked
// in sorted ID order so the reported failure is deterministic.
func (l *LocalStorage) DecrementMany(ctx context.Context, lines map[string]int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]string, 0, len(lines))
	for id := range lines {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p, ok := l.m[id]
		if !ok {
			return ErrNotFound
		}
		if lines[id] > p.Quantity {
			return &InsufficientStockError{ProductID: id, Requested: lines[id], Available: p.Quantity}
		}
	}
	for _, id := range ids {
		if err := l.decrementLocked(id, lines[id]); err != nil {
			return err
		}
	}
	return nil
}

func (l *LocalStorage) decrementLocked(id string, qty int) error {
	p, ok := l.m[id]
	if !ok {
		return ErrNotFound
	}
	if qty > p.Quantity {
		return &InsufficientStockError{ProductID: id, Requested: qty, Available: p.Quantity}
	}
	p.Quantity -= qty
	p.UpdatedAt = time.Now()
	return nil
}
