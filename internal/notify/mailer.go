package notify

import (
	"context"

	"github.com/emilybakes/bakery/internal/adapter/logger"
	"go.uber.org/zap"
)

// Mailer delivers rendered emails. The default implementation only logs;
// real SMTP/provider delivery plugs in behind this interface.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type logMailer struct{}

func NewLogMailer() Mailer {
	return logMailer{}
}

func (logMailer) Send(ctx context.Context, email Email) error {
	logger.FromCtx(ctx).Info("email dispatched",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
		zap.Int("body_bytes", len(email.HTML)),
	)
	return nil
}
