package repairs

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned when a repair order with the given ID is not found.
var ErrNotFound = errors.New("repair order not found")

// ErrEmptyID is returned when trying to store a repair order with an empty ID.
var ErrEmptyID = errors.New("empty repair order ID")

// Storage is the main interface for the repair order storage layer.
type Storage interface {
	Create(ctx context.Context, o *RepairOrder) error
	Read(ctx context.Context, id string) (*RepairOrder, error)
	GetAll(ctx context.Context) ([]*RepairOrder, error)
	Update(ctx context.Context, o *RepairOrder) error
}

// LocalStorage provides an in-memory implementation for storing repair orders.
type LocalStorage struct {
	mu sync.Mutex
	m  map[string]*RepairOrder
}

// NewLocalStorage instantiates a new LocalStorage for repair orders with an empty map.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{m: map[string]*RepairOrder{}}
}

func (l *LocalStorage) Create(ctx context.Context, o *RepairOrder) error {
	if o.ID == "" {
		return ErrEmptyID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *o
	l.m[o.ID] = &cp
	return nil
}

func (l *LocalStorage) Read(ctx context.Context, id string) (*RepairOrder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (l *LocalStorage) GetAll(ctx context.Context) ([]*RepairOrder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	orders := make([]*RepairOrder, 0, len(l.m))
	for _, o := range l.m {
		cp := *o
		orders = append(orders, &cp)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (l *LocalStorage) Update(ctx context.Context, o *RepairOrder) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.m[o.ID]; !ok {
		return ErrNotFound
	}
	cp := *o
	l.m[o.ID] = &cp
	return nil
}
