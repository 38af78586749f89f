package staff

import (
	"context"

	"github.com/emilybakes/bakery/internal/adapter/logger"
	"github.com/emilybakes/bakery/internal/auth"
	"github.com/emilybakes/bakery/internal/domain"
	"github.com/emilybakes/bakery/internal/interfaces"
	"go.uber.org/zap"
)

// Service authenticates staff accounts for the admin console.
type Service struct {
	staff  interfaces.StaffRepository
	tokens *auth.Manager
}

func NewService(staff interfaces.StaffRepository, tokens *auth.Manager) *Service {
	return &Service{staff: staff, tokens: tokens}
}

// Login verifies credentials and issues a JWT. Wrong email and wrong
// password return the same error so the response does not leak which
// accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.Staff, error) {
	account, err := s.staff.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !account.Active || !account.CheckPassword(password) {
		logger.FromCtx(ctx).Warn("failed login attempt", zap.String("email", email))
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(account)
	if err != nil {
		return "", nil, err
	}

	return token, account, nil
}
