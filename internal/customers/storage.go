package customers

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned when a customer with the given ID is not found.
var ErrNotFound = errors.New("customer not found")

// ErrEmptyID is returned when trying to store a customer with an empty ID.
var ErrEmptyID = errors.New("empty customer ID")

// Storage is the main interface for the customer storage layer.
type Storage interface {
	Create(ctx context.Context, c *Customer) error
	Read(ctx context.Context, id string) (*Customer, error)
	GetAll(ctx context.Context) ([]*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id string) error
}

// LocalStorage provides an in-memory implementation for storing customers.
type LocalStorage struct {
	mu sync.Mutex
	m  map[string]*Customer
}

// NewLocalStorage instantiates a new LocalStorage for customers with an empty map.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{m: map[string]*Customer{}}
}

func (l *LocalStorage) Create(ctx context.Context, c *Customer) error {
	if c.ID == "" {
		return ErrEmptyID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *c
	l.m[c.ID] = &cp
	return nil
}

func (l *LocalStorage) Read(ctx context.Context, id string) (*Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (l *LocalStorage) GetAll(ctx context.Context) ([]*Customer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	customers := make([]*Customer, 0, len(l.m))
	for _, c := range l.m {
		cp := *c
		customers = append(customers, &cp)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].Name < customers[j].Name })
	return customers, nil
}

func (l *LocalStorage) Update(ctx context.Context, c *Customer) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.m[c.ID]; !ok {
		return ErrNotFound
	}
	cp := *c
	l.m[c.ID] = &cp
	return nil
}

func (l *LocalStorage) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.m[id]; !ok {
		return ErrNotFound
	}
	delete(l.m, id)
	return nil
}
