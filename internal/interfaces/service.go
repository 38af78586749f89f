package interfaces

import (
	"context"
	"time"

	"github.com/emilybakes/bakery/internal/domain"
)

// CreateOrderCommand carries the admin order-creation input. Either
// CustomerID references an existing customer or the inline contact fields
// create one.
type CreateOrderCommand struct {
	CustomerID    int
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	OrderType     string
	Occasion      string
	Design        string
	Servings      int
	Layers        []domain.Layer
	TotalAmount   int64
	DepositAmount int64
	Priority      domain.Priority
	EventDate     *time.Time
}

type UpdateStatusCommand struct {
	OrderID   int
	NewStatus domain.Status
	ChangedBy string
}

type RecordPaymentCommand struct {
	OrderID int
	Amount  int64
	Method  string
}

type AssignStaffCommand struct {
	OrderID     int
	BakerID     *int
	DecoratorID *int
}

type OrderService interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, cmd UpdateStatusCommand) (*domain.Order, error)
	RecordPayment(ctx context.Context, cmd RecordPaymentCommand) (*domain.Order, error)
	AssignStaff(ctx context.Context, cmd AssignStaffCommand) (*domain.Order, error)
	GetStatusHistory(ctx context.Context, orderID int) ([]*domain.StatusLog, error)
}

// TrackingProjection is the restricted read-only view exposed to the public
// tracking page. Nothing beyond these fields leaves the service: no staff
// assignments, no layer notes.
type TrackingProjection struct {
	OrderID    int
	Status     domain.Status
	Stage      int
	Customer   TrackingCustomer
	EventDate  *time.Time
	Payment    TrackingPayment
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type TrackingCustomer struct {
	Name  string
	Email string
	Phone string
}

type TrackingPayment struct {
	TotalAmount   int64
	DepositAmount int64
	BalanceDue    int64
	DepositMet    bool
	PaymentStatus domain.PaymentStatus
}

type TrackingService interface {
	GetOrderByToken(ctx context.Context, token string) (*TrackingProjection, error)
}

// OrderSummary is the report payload: per-day creation counts, the matching
// order rows, and aggregate totals.
type OrderSummary struct {
	ChartData []ChartPoint
	Orders    []*SummaryRow
	Totals    SummaryTotals
}

type ChartPoint struct {
	Date  string
	Count int
}

type SummaryTotals struct {
	Count   int
	Revenue int64
}

type ReportService interface {
	OrderSummary(ctx context.Context, filter SummaryFilter) (*OrderSummary, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, staff *domain.Staff, err error)
}
