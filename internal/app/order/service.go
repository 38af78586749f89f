package order

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/emilybakes/bakery/internal/adapter/logger"
	"github.com/emilybakes/bakery/internal/domain"
	"github.com/emilybakes/bakery/internal/interfaces"
	"go.uber.org/zap"
)

// Service owns the admin-facing order lifecycle: creation, status changes,
// payment recording and staff assignment.
type Service struct {
	orders    interfaces.OrderRepository
	customers interfaces.CustomerRepository
	publisher interfaces.MessagePublisher
}

func NewService(orders interfaces.OrderRepository, customers interfaces.CustomerRepository, publisher interfaces.MessagePublisher) *Service {
	return &Service{
		orders:    orders,
		customers: customers,
		publisher: publisher,
	}
}

func (s *Service) CreateOrder(ctx context.Context, cmd interfaces.CreateOrderCommand) (*domain.Order, error) {
	log := logger.FromCtx(ctx)

	customer, err := s.resolveCustomer(ctx, cmd)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(customer.ID, cmd.OrderType, cmd.Occasion, cmd.Design,
		cmd.Servings, cmd.Layers, cmd.TotalAmount, cmd.DepositAmount, cmd.Priority, cmd.EventDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	if err := s.customers.IncrementOrders(ctx, customer.ID); err != nil {
		log.Warn("failed to bump customer order count",
			zap.Int("customer_id", customer.ID), zap.Error(err))
	}

	log.Info("order created",
		zap.Int("order_id", order.ID),
		zap.Int("customer_id", customer.ID),
		zap.String("priority", string(order.Priority)),
	)

	msg := interfaces.OrderConfirmationMessage{
		OrderID:       order.ID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		TrackingToken: order.TrackingToken,
		Servings:      order.Servings,
		EventDate:     order.EventDate,
		HasLayers:     len(order.Layers) > 0,
		TotalAmount:   order.TotalAmount,
		DepositAmount: order.DepositAmount,
	}
	if len(order.Layers) > 0 {
		msg.Flavor = order.Layers[0].Flavor
	}

	// The order is already committed; a failed publish loses one email, not
	// the order.
	if err := s.publisher.PublishOrderConfirmation(ctx, msg); err != nil {
		log.Error("failed to publish order confirmation", zap.Int("order_id", order.ID), zap.Error(err))
	}

	return order, nil
}

func (s *Service) resolveCustomer(ctx context.Context, cmd interfaces.CreateOrderCommand) (*domain.Customer, error) {
	if cmd.CustomerID > 0 {
		return s.customers.FindByID(ctx, cmd.CustomerID)
	}

	if existing, err := s.customers.FindByEmail(ctx, cmd.CustomerEmail); err == nil {
		return existing, nil
	}

	customer, err := domain.NewCustomer(cmd.CustomerName, cmd.CustomerEmail, cmd.CustomerPhone)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// ListOrders returns orders sorted for the admin board: rush work first,
// then by lifecycle stage, newest first within a stage.
func (s *Service) ListOrders(ctx context.Context, filter interfaces.OrderFilter) ([]*domain.Order, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		pi, pj := orders[i].Priority.Meta().SortOrder, orders[j].Priority.Meta().SortOrder
		if pi != pj {
			return pi > pj
		}
		si, sj := orders[i].Status.Meta().SortOrder, orders[j].Status.Meta().SortOrder
		if si != sj {
			return si < sj
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

// UpdateStatus moves an order through the lifecycle and dispatches the
// status notification. The notification fires on every accepted update,
// including updates that set the current value again.
func (s *Service) UpdateStatus(ctx context.Context, cmd interfaces.UpdateStatusCommand) (*domain.Order, error) {
	log := logger.FromCtx(ctx)

	order, err := s.orders.FindByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	oldStatus := order.Status
	if err := order.ChangeStatus(cmd.NewStatus); err != nil {
		return nil, err
	}

	if err := s.orders.Update(ctx, order); err != nil {
		log.Error("failed to update order status", zap.Int("order_id", order.ID), zap.Error(err))
		return nil, err
	}

	if err := s.orders.LogStatus(ctx, order.ID, order.Status, cmd.ChangedBy); err != nil {
		log.Warn("failed to append status log", zap.Int("order_id", order.ID), zap.Error(err))
	}

	log.Info("order status updated",
		zap.Int("order_id", order.ID),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(order.Status)),
		zap.String("changed_by", cmd.ChangedBy),
	)

	customer, err := s.customers.FindByID(ctx, order.CustomerID)
	if err != nil {
		log.Warn("customer lookup failed, skipping notification",
			zap.Int("order_id", order.ID), zap.Error(err))
		return order, nil
	}

	msg := interfaces.StatusUpdateMessage{
		OrderID:       order.ID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		TrackingToken: order.TrackingToken,
		OldStatus:     oldStatus,
		NewStatus:     order.Status,
		EventDate:     order.EventDate,
		ChangedBy:     cmd.ChangedBy,
		Timestamp:     time.Now(),
	}
	if err := s.publisher.PublishStatusUpdate(ctx, msg); err != nil {
		log.Error("failed to publish status update", zap.Int("order_id", order.ID), zap.Error(err))
	}

	return order, nil
}

func (s *Service) RecordPayment(ctx context.Context, cmd interfaces.RecordPaymentCommand) (*domain.Order, error) {
	if cmd.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	order, err := s.orders.FindByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	order.ApplyPayment(cmd.Amount)

	if err := s.orders.RecordPayment(ctx, order, cmd.Amount, cmd.Method); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("payment recorded",
		zap.Int("order_id", order.ID),
		zap.Int64("amount", cmd.Amount),
		zap.String("payment_status", string(order.PaymentStatus)),
		zap.Int64("balance_due", order.BalanceDue),
	)

	return order, nil
}

func (s *Service) AssignStaff(ctx context.Context, cmd interfaces.AssignStaffCommand) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	order.Assign(cmd.BakerID, cmd.DecoratorID)

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (s *Service) GetStatusHistory(ctx context.Context, orderID int) ([]*domain.StatusLog, error) {
	return s.orders.GetStatusHistory(ctx, orderID)
}
