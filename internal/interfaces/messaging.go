package interfaces

import (
	"context"
	"time"

	"github.com/emilybakes/bakery/internal/domain"
)

// Typed notification payloads published to the order_notifications fanout.
// The status-update tuple is the full rendering input for the status email;
// the subscriber never reads the database.
type StatusUpdateMessage struct {
	OrderID       int           `json:"order_id"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	TrackingToken string        `json:"tracking_token"`
	OldStatus     domain.Status `json:"old_status"`
	NewStatus     domain.Status `json:"new_status"`
	EventDate     *time.Time    `json:"event_date,omitempty"`
	ChangedBy     string        `json:"changed_by"`
	Timestamp     time.Time     `json:"timestamp"`
}

type OrderConfirmationMessage struct {
	OrderID       int        `json:"order_id"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	TrackingToken string     `json:"tracking_token"`
	Flavor        string     `json:"flavor,omitempty"`
	Servings      int        `json:"servings,omitempty"`
	EventDate     *time.Time `json:"event_date,omitempty"`
	HasLayers     bool       `json:"has_layers"`
	TotalAmount   int64      `json:"total_amount"`
	DepositAmount int64      `json:"deposit_amount"`
}

// Message kinds carried in the AMQP type property so subscribers can
// dispatch without sniffing the body.
const (
	MessageTypeStatusUpdate      = "order.status_updated"
	MessageTypeOrderConfirmation = "order.confirmed"
)

type MessagePublisher interface {
	PublishStatusUpdate(ctx context.Context, msg StatusUpdateMessage) error
	PublishOrderConfirmation(ctx context.Context, msg OrderConfirmationMessage) error
}

type MessageConsumer interface {
	ConsumeNotifications(ctx context.Context, handler NotificationHandler) error
}

type NotificationHandler func(ctx context.Context, kind string, body []byte) error
