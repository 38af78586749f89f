package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/emilybakes/bakery/internal/adapter/logger"
	"github.com/emilybakes/bakery/internal/interfaces"
	"go.uber.org/zap"
)

type consumer struct {
	conn  Connection
	delay time.Duration
}

func NewConsumer(conn Connection) interfaces.MessageConsumer {
	return &consumer{conn: conn, delay: 5 * time.Second}
}

// ConsumeNotifications subscribes to the notifications fanout and runs
// handler for every delivery. Broker disconnects trigger a reconnect after
// a short delay; the loop only exits when ctx is cancelled.
func (c *consumer) ConsumeNotifications(ctx context.Context, handler interfaces.NotificationHandler) error {
	for {
		err := c.consumeWithReconnect(ctx, handler)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			return nil
		}

		logger.L().Warn("notifications consumer disconnected, reconnecting",
			zap.Error(err), zap.Duration("delay", c.delay))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.delay):
		}

		// Reopening a channel on a dead TCP connection fails forever, so
		// re-dial the broker before the next attempt.
		if c.conn.IsClosed() {
			if err := c.conn.Reconnect(); err != nil {
				logger.L().Warn("broker redial failed", zap.Error(err))
			}
		}
	}
}

func (c *consumer) consumeWithReconnect(ctx context.Context, handler interfaces.NotificationHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	closeChan := ch.NotifyClose()

	if err := ch.ExchangeDeclare(NotificationsExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Exclusive temporary queue: each subscriber gets its own copy of the
	// fanout and the queue disappears with it.
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", NotificationsExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-closeChan:
			if err != nil {
				return fmt.Errorf("channel closed: %w", err)
			}
			return fmt.Errorf("channel closed gracefully")

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("messages channel closed")
			}

			// A notification that fails to send is logged by the handler
			// and dropped; it must never wedge the subscriber.
			_ = handler(ctx, msg.Type, msg.Body)
		}
	}
}
