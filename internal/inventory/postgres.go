package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PostgresStorage implements Storage against the products table. The pool is
// injected so the storage never owns connection lifecycle.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a new PostgresStorage on the given pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) Create(ctx context.Context, p *Product) error {
	if p.ID == "" {
		return ErrEmptyID
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO products (product_id, name, price, quantity, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Price, p.Quantity, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Read(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := s.pool.QueryRow(ctx,
		`SELECT product_id, name, price, quantity, created_at, updated_at
         FROM products WHERE product_id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &p, nil
}

func (s *PostgresStorage) GetAll(ctx context.Context) ([]*Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT product_id, name, price, quantity, created_at, updated_at
         FROM products ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (s *PostgresStorage) Update(ctx context.Context, p *Product) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET name = $1, price = $2, quantity = $3, updated_at = NOW()
         WHERE product_id = $4`,
		p.Name, p.Price, p.Quantity, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStorage) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Decrement applies a conditional update so the stock check and the write
// are a single atomic statement. A zero row count means either the product
// is missing or the stock is too low; a follow-up read tells the two apart.
func (s *PostgresStorage) Decrement(ctx context.Context, id string, qty int) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET quantity = quantity - $1, updated_at = NOW()
         WHERE product_id = $2 AND quantity >= $1`,
		qty, id,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var available int
		err := s.pool.QueryRow(ctx,
			`SELECT quantity FROM products WHERE product_id = $1`, id,
		).Scan(&available)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("read stock after failed decrement: %w", err)
		}
		return &InsufficientStockError{ProductID: id, Requested: qty, Available: available}
	}
	return nil
}
