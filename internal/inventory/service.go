package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrNameRequired is returned when a product is created without a name.
var ErrNameRequired = errors.New("product name is required")

// ErrInvalidPrice is returned when a product price is negative.
var ErrInvalidPrice = errors.New("price must be greater than or equal to zero")

// ErrInvalidQuantity is returned when a quantity is out of range for the operation.
var ErrInvalidQuantity = errors.New("invalid quantity")

// Service provides high-level inventory operations on a Storage backend.
// It is the only component allowed to mutate stock levels.
type Service struct {
	storage Storage
	logger  *zap.Logger
}

// NewService creates a new Service.
func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// CreateProduct registers a new product with an initial stock level.
func (s *Service) CreateProduct(ctx context.Context, name string, price decimal.Decimal, quantity int) (*Product, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if price.LessThan(decimal.Zero) {
		return nil, ErrInvalidPrice
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	now := time.Now()
	p := &Product{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.storage.Create(ctx, p); err != nil {
		s.logger.Error("failed to save product", zap.String("product_id", p.ID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("product created", zap.String("product_id", p.ID), zap.String("name", name))
	return p, nil
}

// Product returns the product with the given ID.
func (s *Service) Product(ctx context.Context, id string) (*Product, error) {
	return s.storage.Read(ctx, id)
}

// Products returns all products ordered by name.
func (s *Service) Products(ctx context.Context) ([]*Product, error) {
	return s.storage.GetAll(ctx)
}

// UpdateProduct replaces the product's name, price, and stock level.
func (s *Service) UpdateProduct(ctx context.Context, id, name string, price decimal.Decimal, quantity int) (*Product, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if price.LessThan(decimal.Zero) {
		return nil, ErrInvalidPrice
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.storage.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = name
	p.Price = price
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	if err := s.storage.Update(ctx, p); err != nil {
		s.logger.Error("failed to update product", zap.String("product_id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

// DeleteProduct removes the product from the catalog.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.storage.Delete(ctx, id)
}

// CurrentStock returns the latest persisted quantity for the product.
func (s *Service) CurrentStock(ctx context.Context, id string) (int, error) {
	p, err := s.storage.Read(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.Quantity, nil
}

// Decrement reduces the product's stock by qty. The stock level is
// re-checked at the moment of the write, not trusted from an earlier read.
func (s *Service) Decrement(ctx context.Context, id string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if err := s.storage.Decrement(ctx, id, qty); err != nil {
		return err
	}
	s.logger.Info("stock decremented", zap.String("product_id", id), zap.Int("quantity", qty))
	return nil
}

// LowStock returns products whose quantity is at or below the threshold.
func (s *Service) LowStock(ctx context.Context, threshold int) ([]*Product, error) {
	products, err := s.storage.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]*Product, 0)
	for _, p := range products {
		if p.Quantity <= threshold {
			low = append(low, p)
		}
	}
	return low, nil
}
