package repairs

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PostgresStorage implements Storage against the repair_orders table.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a new PostgresStorage on the given pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) Create(ctx context.Context, o *RepairOrder) error {
	if o.ID == "" {
		return ErrEmptyID
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO repair_orders (order_id, customer_id, product_details, issue_description, status, created_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.CustomerID, o.ProductDetails, o.IssueDescription, o.Status, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert repair order: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Read(ctx context.Context, id string) (*RepairOrder, error) {
	var o RepairOrder
	err := s.pool.QueryRow(ctx,
		`SELECT order_id, customer_id, product_details, issue_description, status, created_at
         FROM repair_orders WHERE order_id = $1`, id,
	).Scan(&o.ID, &o.CustomerID, &o.ProductDetails, &o.IssueDescription, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select repair order: %w", err)
	}
	return &o, nil
}

func (s *PostgresStorage) GetAll(ctx context.Context) ([]*RepairOrder, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT order_id, customer_id, product_details, issue_description, status, created_at
         FROM repair_orders ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("select repair orders: %w", err)
	}
	defer rows.Close()

	var orders []*RepairOrder
	for rows.Next() {
		var o RepairOrder
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.ProductDetails, &o.IssueDescription, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan repair order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate repair orders: %w", err)
	}
	return orders, nil
}

func (s *PostgresStorage) Update(ctx context.Context, o *RepairOrder) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE repair_orders SET product_details = $1, issue_description = $2, status = $3
         WHERE order_id = $4`,
		o.ProductDetails, o.IssueDescription, o.Status, o.ID,
	)
	if err != nil {
		return fmt.Errorf("update repair order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
