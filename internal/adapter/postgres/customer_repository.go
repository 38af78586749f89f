package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/emilybakes/bakery/internal/domain"
	"github.com/emilybakes/bakery/internal/interfaces"
	"github.com/jackc/pgx/v5"
)

type customerRepository struct {
	db DB
}

func NewCustomerRepository(db DB) interfaces.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (name, email, phone, vip, total_orders, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		customer.Name, customer.Email, customer.Phone, customer.VIP, customer.TotalOrders, customer.CreatedAt,
	).Scan(&customer.ID)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id int) (*domain.Customer, error) {
	query := `SELECT id, name, email, phone, vip, total_orders, created_at FROM customers WHERE id = $1`
	return r.scanCustomer(r.db.QueryRow(ctx, query, id))
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT id, name, email, phone, vip, total_orders, created_at FROM customers WHERE email = $1`
	return r.scanCustomer(r.db.QueryRow(ctx, query, email))
}

func (r *customerRepository) scanCustomer(row Row) (*domain.Customer, error) {
	var customer domain.Customer
	err := row.Scan(
		&customer.ID, &customer.Name, &customer.Email, &customer.Phone,
		&customer.VIP, &customer.TotalOrders, &customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to scan customer: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) IncrementOrders(ctx context.Context, id int) error {
	query := `UPDATE customers SET total_orders = total_orders + 1 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment order count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
