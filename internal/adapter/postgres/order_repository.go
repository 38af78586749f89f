package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/emilybakes/bakery/internal/domain"
	"github.com/emilybakes/bakery/internal/interfaces"
	"github.com/jackc/pgx/v5"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, customer_id, order_type, occasion, design, servings, layers,
	       status, priority, total_amount, deposit_amount, amount_paid, balance_due,
	       payment_status, deposit_met, tracking_token, event_date,
	       assigned_baker, assigned_decorator, created_at, updated_at, completed_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	layers, err := json.Marshal(order.Layers)
	if err != nil {
		return fmt.Errorf("failed to encode layers: %w", err)
	}

	query := `
		INSERT INTO orders (customer_id, order_type, occasion, design, servings, layers,
		                    status, priority, total_amount, deposit_amount, amount_paid,
		                    balance_due, payment_status, deposit_met, tracking_token,
		                    event_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`
	err = tx.QueryRow(ctx, query,
		order.CustomerID, order.OrderType, order.Occasion, order.Design, order.Servings, layers,
		order.Status, order.Priority, order.TotalAmount, order.DepositAmount, order.AmountPaid,
		order.BalanceDue, order.PaymentStatus, order.DepositMet, order.TrackingToken,
		order.EventDate, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	// The pending entry opens the status history.
	logQuery := `
		INSERT INTO order_status_log (order_id, status, changed_by, changed_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(ctx, logQuery, order.ID, order.Status, "system", time.Now()); err != nil {
		return fmt.Errorf("failed to log status: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOrder(r.db.QueryRow(ctx, query, id))
}

func (r *orderRepository) FindByToken(ctx context.Context, token string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE tracking_token = $1`
	return r.scanOrder(r.db.QueryRow(ctx, query, token))
}

func (r *orderRepository) scanOrder(row Row) (*domain.Order, error) {
	var order domain.Order
	var layers []byte

	err := row.Scan(
		&order.ID, &order.CustomerID, &order.OrderType, &order.Occasion, &order.Design,
		&order.Servings, &layers, &order.Status, &order.Priority, &order.TotalAmount,
		&order.DepositAmount, &order.AmountPaid, &order.BalanceDue, &order.PaymentStatus,
		&order.DepositMet, &order.TrackingToken, &order.EventDate,
		&order.AssignedBaker, &order.AssignedDecorator,
		&order.CreatedAt, &order.UpdatedAt, &order.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	if len(layers) > 0 {
		if err := json.Unmarshal(layers, &order.Layers); err != nil {
			return nil, fmt.Errorf("failed to decode layers: %w", err)
		}
	}

	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter interfaces.OrderFilter) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`

	var conditions []string
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	layers, err := json.Marshal(order.Layers)
	if err != nil {
		return fmt.Errorf("failed to encode layers: %w", err)
	}

	query := `
		UPDATE orders
		SET order_type = $1, occasion = $2, design = $3, servings = $4, layers = $5,
		    status = $6, priority = $7, total_amount = $8, deposit_amount = $9,
		    amount_paid = $10, balance_due = $11, payment_status = $12, deposit_met = $13,
		    event_date = $14, assigned_baker = $15, assigned_decorator = $16,
		    updated_at = $17, completed_at = $18
		WHERE id = $19
	`
	tag, err := r.db.Exec(ctx, query,
		order.OrderType, order.Occasion, order.Design, order.Servings, layers,
		order.Status, order.Priority, order.TotalAmount, order.DepositAmount,
		order.AmountPaid, order.BalanceDue, order.PaymentStatus, order.DepositMet,
		order.EventDate, order.AssignedBaker, order.AssignedDecorator,
		order.UpdatedAt, order.CompletedAt, order.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

// RecordPayment writes the payment row and the rederived payment fields in
// one transaction so a crash never leaves the order out of step with its
// payment history.
func (r *orderRepository) RecordPayment(ctx context.Context, order *domain.Order, amount int64, method string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	paymentQuery := `
		INSERT INTO payments (order_id, amount, method, paid_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(ctx, paymentQuery, order.ID, amount, method, time.Now()); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	updateQuery := `
		UPDATE orders
		SET amount_paid = $1, balance_due = $2, payment_status = $3, deposit_met = $4, updated_at = $5
		WHERE id = $6
	`
	tag, err := tx.Exec(ctx, updateQuery,
		order.AmountPaid, order.BalanceDue, order.PaymentStatus, order.DepositMet,
		order.UpdatedAt, order.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) LogStatus(ctx context.Context, orderID int, status domain.Status, changedBy string) error {
	query := `
		INSERT INTO order_status_log (order_id, status, changed_by, changed_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.Exec(ctx, query, orderID, status, changedBy, time.Now()); err != nil {
		return fmt.Errorf("failed to log status: %w", err)
	}
	return nil
}

func (r *orderRepository) GetStatusHistory(ctx context.Context, orderID int) ([]*domain.StatusLog, error) {
	query := `
		SELECT id, order_id, status, changed_by, changed_at, notes
		FROM order_status_log
		WHERE order_id = $1
		ORDER BY changed_at ASC
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}
	defer rows.Close()

	var history []*domain.StatusLog
	for rows.Next() {
		var entry domain.StatusLog
		if err := rows.Scan(&entry.ID, &entry.OrderID, &entry.Status, &entry.ChangedBy, &entry.ChangedAt, &entry.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan status log: %w", err)
		}
		history = append(history, &entry)
	}

	return history, nil
}

func (r *orderRepository) Summary(ctx context.Context, filter interfaces.SummaryFilter) ([]*interfaces.SummaryRow, error) {
	query := `
		SELECT o.id, o.customer_id, c.name, c.email, c.phone, o.event_date,
		       o.status, o.total_amount, o.deposit_amount, o.balance_due, o.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
	`

	var conditions []string
	var args []any
	if !filter.Start.IsZero() {
		args = append(args, filter.Start)
		conditions = append(conditions, fmt.Sprintf("o.created_at >= $%d", len(args)))
	}
	if !filter.End.IsZero() {
		args = append(args, filter.End)
		conditions = append(conditions, fmt.Sprintf("o.created_at <= $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY o.created_at ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load order summary: %w", err)
	}
	defer rows.Close()

	var result []*interfaces.SummaryRow
	for rows.Next() {
		var row interfaces.SummaryRow
		if err := rows.Scan(
			&row.OrderID, &row.CustomerID, &row.CustomerName, &row.CustomerEmail, &row.CustomerPhone,
			&row.EventDate, &row.Status, &row.TotalAmount, &row.DepositAmount, &row.BalanceDue, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		result = append(result, &row)
	}

	return result, nil
}
