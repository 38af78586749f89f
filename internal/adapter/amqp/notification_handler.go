// Package amqp holds the message-side handlers: the notification
// subscriber that turns broker messages into customer emails.
package amqp

import (
	"context"
	"encoding/json"

	"github.com/emilybakes/bakery/internal/adapter/logger"
	"github.com/emilybakes/bakery/internal/interfaces"
	"github.com/emilybakes/bakery/internal/notify"
	"go.uber.org/zap"
)

// NotificationHandler consumes the notifications fanout and sends the
// matching email. Every message carries the full rendering tuple, so the
// handler never touches the database.
type NotificationHandler struct {
	renderer *notify.Renderer
	mailer   notify.Mailer
}

func NewNotificationHandler(renderer *notify.Renderer, mailer notify.Mailer) *NotificationHandler {
	return &NotificationHandler{renderer: renderer, mailer: mailer}
}

// HandleNotification dispatches one delivery. Errors are logged and
// returned, but the consumer drops them: a bad message or failed send must
// not stall the subscriber.
func (h *NotificationHandler) HandleNotification(ctx context.Context, kind string, body []byte) error {
	log := logger.FromCtx(ctx)

	switch kind {
	case interfaces.MessageTypeStatusUpdate:
		return h.handleStatusUpdate(ctx, body)
	case interfaces.MessageTypeOrderConfirmation:
		return h.handleConfirmation(ctx, body)
	default:
		log.Warn("unknown notification kind, skipping", zap.String("kind", kind))
		return nil
	}
}

func (h *NotificationHandler) handleStatusUpdate(ctx context.Context, body []byte) error {
	log := logger.FromCtx(ctx)

	var msg interfaces.StatusUpdateMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		log.Error("failed to parse status update message", zap.Error(err))
		return err
	}

	subject, html, err := h.renderer.StatusUpdateEmail(notify.StatusUpdateData{
		CustomerName:  msg.CustomerName,
		OrderID:       msg.OrderID,
		TrackingToken: msg.TrackingToken,
		OldStatus:     msg.OldStatus,
		NewStatus:     msg.NewStatus,
		EventDate:     msg.EventDate,
	})
	if err != nil {
		log.Error("failed to render status update email",
			zap.Int("order_id", msg.OrderID), zap.Error(err))
		return err
	}

	if err := h.mailer.Send(ctx, notify.Email{To: msg.CustomerEmail, Subject: subject, HTML: html}); err != nil {
		log.Error("failed to send status update email",
			zap.Int("order_id", msg.OrderID), zap.Error(err))
		return err
	}

	log.Info("status update email sent",
		zap.Int("order_id", msg.OrderID),
		zap.String("new_status", string(msg.NewStatus)),
	)
	return nil
}

func (h *NotificationHandler) handleConfirmation(ctx context.Context, body []byte) error {
	log := logger.FromCtx(ctx)

	var msg interfaces.OrderConfirmationMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		log.Error("failed to parse confirmation message", zap.Error(err))
		return err
	}

	subject, html, err := h.renderer.ConfirmationEmail(notify.ConfirmationData{
		CustomerName:  msg.CustomerName,
		OrderID:       msg.OrderID,
		TrackingToken: msg.TrackingToken,
		Flavor:        msg.Flavor,
		Servings:      msg.Servings,
		EventDate:     msg.EventDate,
		HasLayers:     msg.HasLayers,
		TotalAmount:   msg.TotalAmount,
		DepositAmount: msg.DepositAmount,
	})
	if err != nil {
		log.Error("failed to render confirmation email",
			zap.Int("order_id", msg.OrderID), zap.Error(err))
		return err
	}

	if err := h.mailer.Send(ctx, notify.Email{To: msg.CustomerEmail, Subject: subject, HTML: html}); err != nil {
		log.Error("failed to send confirmation email",
			zap.Int("order_id", msg.OrderID), zap.Error(err))
		return err
	}

	log.Info("confirmation email sent", zap.Int("order_id", msg.OrderID))
	return nil
}
