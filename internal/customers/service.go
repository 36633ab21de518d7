package customers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNameRequired is returned when a customer is created without a name.
var ErrNameRequired = errors.New("customer name is required")

// Service provides customer record management on a Storage backend.
type Service struct {
	storage Storage
	logger  *zap.Logger
}

// NewService creates a new Service.
func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{storage: storage, logger: logger}
}

// Create registers a new customer. Only the name is mandatory.
func (s *Service) Create(ctx context.Context, name, contactNumber, address string) (*Customer, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	c := &Customer{
		ID:            uuid.NewString(),
		Name:          name,
		ContactNumber: contactNumber,
		Address:       address,
		CreatedAt:     time.Now(),
	}
	if err := s.storage.Create(ctx, c); err != nil {
		s.logger.Error("failed to save customer", zap.String("customer_id", c.ID), zap.Error(err))
		return nil, err
	}
	return c, nil
}

// Get returns the customer with the given ID.
func (s *Service) Get(ctx context.Context, id string) (*Customer, error) {
	return s.storage.Read(ctx, id)
}

// GetAll returns all customers ordered by name.
func (s *Service) GetAll(ctx context.Context) ([]*Customer, error) {
	return s.storage.GetAll(ctx)
}

// Update replaces the customer's contact fields.
func (s *Service) Update(ctx context.Context, id, name, contactNumber, address string) (*Customer, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	c, err := s.storage.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	c.ContactNumber = contactNumber
	c.Address = address
	if err := s.storage.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the customer record.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.storage.Delete(ctx, id)
}
