package tracking

import (
	"context"

	"github.com/emilybakes/bakery/internal/adapter/logger"
	"github.com/emilybakes/bakery/internal/domain"
	"github.com/emilybakes/bakery/internal/interfaces"
	"go.uber.org/zap"
)

// Service serves the public, token-keyed order projection. It is read-only:
// the tracking token is the sole credential, so the projection exposes only
// the fields the tracking page needs.
type Service struct {
	orders    interfaces.OrderRepository
	customers interfaces.CustomerRepository
}

func NewService(orders interfaces.OrderRepository, customers interfaces.CustomerRepository) *Service {
	return &Service{orders: orders, customers: customers}
}

// GetOrderByToken resolves a tracking token to the public projection. The
// progress stage is derived from the authoritative status, not elapsed time.
func (s *Service) GetOrderByToken(ctx context.Context, token string) (*interfaces.TrackingProjection, error) {
	order, err := s.orders.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.FindByID(ctx, order.CustomerID)
	if err != nil {
		logger.FromCtx(ctx).Error("order references missing customer",
			zap.Int("order_id", order.ID), zap.Int("customer_id", order.CustomerID))
		return nil, err
	}

	return project(order, customer), nil
}

func project(order *domain.Order, customer *domain.Customer) *interfaces.TrackingProjection {
	return &interfaces.TrackingProjection{
		OrderID: order.ID,
		Status:  order.Status,
		Stage:   order.Status.Stage(),
		Customer: interfaces.TrackingCustomer{
			Name:  customer.Name,
			Email: customer.Email,
			Phone: customer.Phone,
		},
		EventDate: order.EventDate,
		Payment: interfaces.TrackingPayment{
			TotalAmount:   order.TotalAmount,
			DepositAmount: order.DepositAmount,
			BalanceDue:    order.BalanceDue,
			DepositMet:    order.DepositMet,
			PaymentStatus: order.PaymentStatus,
		},
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}
