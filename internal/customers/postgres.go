package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PostgresStorage implements Storage against the customers table.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a new PostgresStorage on the given pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) Create(ctx context.Context, c *Customer) error {
	if c.ID == "" {
		return ErrEmptyID
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO customers (customer_id, name, contact_number, address, created_at)
         VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.ContactNumber, c.Address, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Read(ctx context.Context, id string) (*Customer, error) {
	var c Customer
	err := s.pool.QueryRow(ctx,
		`SELECT customer_id, name, contact_number, address, created_at
         FROM customers WHERE customer_id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.ContactNumber, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select customer: %w", err)
	}
	return &c, nil
}

func (s *PostgresStorage) GetAll(ctx context.Context) ([]*Customer, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT customer_id, name, contact_number, address, created_at
         FROM customers ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	defer rows.Close()

	var customers []*Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.ContactNumber, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

func (s *PostgresStorage) Update(ctx context.Context, c *Customer) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE customers SET name = $1, contact_number = $2, address = $3
         WHERE customer_id = $4`,
		c.Name, c.ContactNumber, c.Address, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStorage) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
