package interfaces

import (
	"context"
	"time"

	"github.com/emilybakes/bakery/internal/domain"
)

// OrderFilter narrows admin order listings. Zero values mean "no filter".
type OrderFilter struct {
	Status   domain.Status
	Priority domain.Priority
}

// SummaryFilter bounds the order-summary report.
type SummaryFilter struct {
	Start  time.Time
	End    time.Time
	Status domain.Status
}

// SummaryRow is one order row of the report, joined with customer contact.
type SummaryRow struct {
	OrderID       int
	CustomerID    int
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	EventDate     *time.Time
	Status        domain.Status
	TotalAmount   int64
	DepositAmount int64
	BalanceDue    int64
	CreatedAt     time.Time
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id int) (*domain.Order, error)
	FindByToken(ctx context.Context, token string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	RecordPayment(ctx context.Context, order *domain.Order, amount int64, method string) error
	LogStatus(ctx context.Context, orderID int, status domain.Status, changedBy string) error
	GetStatusHistory(ctx context.Context, orderID int) ([]*domain.StatusLog, error)
	Summary(ctx context.Context, filter SummaryFilter) ([]*SummaryRow, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	FindByID(ctx context.Context, id int) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	IncrementOrders(ctx context.Context, id int) error
}

type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	FindByEmail(ctx context.Context, email string) (*domain.Staff, error)
	FindByID(ctx context.Context, id int) (*domain.Staff, error)
}
