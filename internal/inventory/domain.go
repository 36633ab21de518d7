package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item together with its current stock level.
type Product struct {
	ID        string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
