package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopmanager/internal/inventory"
)

// ErrEmptyCart is returned when checkout is attempted with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// ErrPersistence is returned when the checkout unit could not be committed.
// The failed attempt leaves no partial state, so the caller may retry with
// the same cart.
var ErrPersistence = errors.New("sale could not be persisted")

// Service coordinates checkout: it turns a validated cart into a durable
// sale. Stock is re-validated at commit time against the inventory service
// rather than trusted from the cart's earlier reads.
type Service struct {
	storage   Storage
	inventory *inventory.Service
	logger    *zap.Logger
}

// NewService creates a new Service.
func NewService(storage Storage, inv *inventory.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{
		storage:   storage,
		inventory: inv,
		logger:    logger,
	}
}

// Checkout persists the cart as a sale: one sale row, one line item per cart
// line, and a stock decrement per product, committed as a single unit.
//
// Every line's stock is re-checked here, covering carts that went stale
// between add-to-cart and checkout. On any failure the cart is untouched and
// no write from this attempt is visible; an ErrPersistence result is safe to
// retry. The caller clears the cart after a successful checkout.
func (s *Service) Checkout(ctx context.Context, cart *Cart, customerID *string) (*Sale, error) {
	if cart == nil || cart.Empty() {
		return nil, ErrEmptyCart
	}

	lines := cart.Lines()
	for _, line := range lines {
		available, err := s.inventory.CurrentStock(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if line.Quantity > available {
			return nil, &inventory.InsufficientStockError{
				ProductID: line.ProductID,
				Requested: line.Quantity,
				Available: available,
			}
		}
	}

	sale := &Sale{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Total:      cart.Total(),
		CreatedAt:  time.Now(),
	}
	for _, line := range lines {
		sale.Items = append(sale.Items, LineItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}

	if err := s.storage.Create(ctx, sale); err != nil {
		var stockErr *inventory.InsufficientStockError
		if errors.As(err, &stockErr) || errors.Is(err, inventory.ErrNotFound) {
			// authoritative commit-time rejection; nothing was written
			return nil, err
		}
		s.logger.Error("failed to persist sale", zap.String("sale_id", sale.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.logger.Info("sale completed",
		zap.String("sale_id", sale.ID),
		zap.Int("items", len(sale.Items)),
		zap.String("total", sale.Total.String()),
	)
	return sale, nil
}

// Find returns the persisted sale with the given ID.
func (s *Service) Find(ctx context.Context, id string) (*Sale, error) {
	return s.storage.Read(ctx, id)
}

// History returns all persisted sales, newest first.
func (s *Service) History(ctx context.Context) ([]*Sale, error) {
	return s.storage.GetAll(ctx)
}

// DailySummary aggregates revenue, items sold, and transaction counts per
// calendar day, newest day first.
func (s *Service) DailySummary(ctx context.Context) ([]DaySummary, error) {
	all, err := s.storage.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byDay := map[string]*DaySummary{}
	for _, sale := range all {
		day := sale.CreatedAt.Format("2006-01-02")
		sum, ok := byDay[day]
		if !ok {
			sum = &DaySummary{Day: day, TotalSales: decimal.Zero}
			byDay[day] = sum
		}
		sum.TotalSales = sum.TotalSales.Add(sale.Total)
		sum.Transactions++
		for _, item := range sale.Items {
			sum.ItemsSold += item.Quantity
		}
	}

	summaries := make([]DaySummary, 0, len(byDay))
	for _, sum := range byDay {
		summaries = append(summaries, *sum)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Day > summaries[j].Day })
	return summaries, nil
}
