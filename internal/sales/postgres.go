package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"shopmanager/internal/inventory"
)

// PostgresStorage implements Storage against the sales and sale_line_items
// tables. The checkout unit runs inside one transaction together with the
// conditional stock decrements, so a sale either commits fully or not at all.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a new PostgresStorage on the given pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) Create(ctx context.Context, sale *Sale) error {
	if sale.ID == "" {
		return ErrEmptyID
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin checkout transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO sales (sale_id, customer_id, total_price, sale_date)
         VALUES ($1, $2, $3, $4)`,
		sale.ID, sale.CustomerID, sale.Total, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	for _, item := range sale.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO sale_line_items (sale_id, product_id, product_name, quantity, unit_price, subtotal)
             VALUES ($1, $2, $3, $4, $5, $6)`,
			sale.ID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale line item for product %s: %w", item.ProductID, err)
		}

		// Conditional decrement: the stock check and the write are one
		// statement, so two concurrent checkouts can never drive the
		// quantity below zero.
		tag, err := tx.Exec(ctx,
			`UPDATE products SET quantity = quantity - $1, updated_at = NOW()
             WHERE product_id = $2 AND quantity >= $1`,
			item.Quantity, item.ProductID,
		)
		if err != nil {
			return fmt.Errorf("decrement stock for product %s: %w", item.ProductID, err)
		}
		if tag.RowsAffected() == 0 {
			var available int
			err := tx.QueryRow(ctx,
				`SELECT quantity FROM products WHERE product_id = $1`, item.ProductID,
			).Scan(&available)
			if errors.Is(err, pgx.ErrNoRows) {
				return inventory.ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("read stock after failed decrement: %w", err)
			}
			return &inventory.InsufficientStockError{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: available,
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit checkout transaction: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Read(ctx context.Context, id string) (*Sale, error) {
	var sale Sale
	err := s.pool.QueryRow(ctx,
		`SELECT sale_id, customer_id, total_price, sale_date FROM sales WHERE sale_id = $1`, id,
	).Scan(&sale.ID, &sale.CustomerID, &sale.Total, &sale.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select sale: %w", err)
	}

	items, err := s.readItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return &sale, nil
}

func (s *PostgresStorage) GetAll(ctx context.Context) ([]*Sale, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT sale_id, customer_id, total_price, sale_date FROM sales ORDER BY sale_date DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("select sales: %w", err)
	}
	defer rows.Close()

	var sales []*Sale
	for rows.Next() {
		var sale Sale
		if err := rows.Scan(&sale.ID, &sale.CustomerID, &sale.Total, &sale.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, &sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}

	for _, sale := range sales {
		items, err := s.readItems(ctx, sale.ID)
		if err != nil {
			return nil, err
		}
		sale.Items = items
	}
	return sales, nil
}

func (s *PostgresStorage) readItems(ctx context.Context, saleID string) ([]LineItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT product_id, product_name, quantity, unit_price, subtotal
         FROM sale_line_items WHERE sale_id = $1 ORDER BY id`,
		saleID,
	)
	if err != nil {
		return nil, fmt.Errorf("select sale line items: %w", err)
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		var item LineItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale line item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale line items: %w", err)
	}
	return items, nil
}
