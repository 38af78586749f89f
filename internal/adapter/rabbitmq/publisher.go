package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/emilybakes/bakery/internal/interfaces"
	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationsExchange is the fanout all order notifications go through.
// Every subscriber gets every message; the AMQP type property says which
// kind it is.
const NotificationsExchange = "order_notifications"

type publisher struct {
	conn Connection
}

func NewPublisher(conn Connection) interfaces.MessagePublisher {
	return &publisher{conn: conn}
}

func (p *publisher) PublishStatusUpdate(ctx context.Context, msg interfaces.StatusUpdateMessage) error {
	return p.publish(ctx, interfaces.MessageTypeStatusUpdate, msg)
}

func (p *publisher) PublishOrderConfirmation(ctx context.Context, msg interfaces.OrderConfirmationMessage) error {
	return p.publish(ctx, interfaces.MessageTypeOrderConfirmation, msg)
}

func (p *publisher) publish(_ context.Context, kind string, msg any) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(NotificationsExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.Publish(NotificationsExchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Type:        kind,
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}
