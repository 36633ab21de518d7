package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents a completed point-of-sale transaction. A sale is immutable
// once persisted; its line items carry the unit price captured at sale time
// so later catalog price changes never alter history.
type Sale struct {
	ID         string          `json:"sale_id"`
	CustomerID *string         `json:"customer_id,omitempty"`
	Total      decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"sale_date"`
	Items      []LineItem      `json:"items"`
}

// LineItem is one product position within a persisted sale.
type LineItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// DaySummary aggregates the sales of one calendar day.
type DaySummary struct {
	Day          string          `json:"day"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	ItemsSold    int             `json:"items_sold"`
	Transactions int             `json:"transactions"`
}
