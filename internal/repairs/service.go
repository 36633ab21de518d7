package repairs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidStatus is returned for a status outside the repair order enum.
var ErrInvalidStatus = errors.New("invalid status value")

// ErrCustomerRequired is returned when a repair order is created without a customer.
var ErrCustomerRequired = errors.New("customer_id is required")

// ErrDetailsRequired is returned when a repair order has no product details.
var ErrDetailsRequired = errors.New("product details are required")

// Service provides repair order management on a Storage backend.
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

// Create opens a new repair order in pending status.
func (s *Service) Create(ctx context.Context, customerID, productDetails, issueDescription string) (*RepairOrder, error) {
	if customerID == "" {
		return nil, ErrCustomerRequired
	}
	if productDetails == "" {
		return nil, ErrDetailsRequired
	}
	o := &RepairOrder{
		ID:               uuid.NewString(),
		CustomerID:       customerID,
		ProductDetails:   productDetails,
		IssueDescription: issueDescription,
		Status:           StatusPending,
		CreatedAt:        time.Now(),
	}
	if err := s.storage.Create(ctx, o); err != nil {
		s.logger.Error("failed to save repair order", zap.String("order_id", o.ID), zap.Error(err))
		return nil, err
	}
	return o, nil
}

// Get returns the repair order with the given ID.
func (s *Service) Get(ctx context.Context, id string) (*RepairOrder, error) {
	return s.storage.Read(ctx, id)
}

// GetAll returns all repair orders, newest first.
func (s *Service) GetAll(ctx context.Context) ([]*RepairOrder, error) {
	return s.storage.GetAll(ctx)
}

// UpdateStatus moves the repair order to a new status. The status must be a
// member of the enum; no other transition rules apply.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*RepairOrder, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	o, err := s.storage.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Status = status
	if err := s.storage.Update(ctx, o); err != nil {
		return nil, err
	}
	s.logger.Info("repair order status updated", zap.String("order_id", id), zap.String("status", status))
	return o, nil
}

// StatusCounts returns the number of repair orders per status.
func (s *Service) StatusCounts(ctx context.Context) (map[string]int, error) {
	orders, err := s.storage.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{
		StatusPending:    0,
		StatusInProgress: 0,
		StatusCompleted:  0,
	}
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts, nil
}
