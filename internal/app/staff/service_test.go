package staff

import (
	"context"
	"testing"
	"time"

	"github.com/emilybakes/bakery/internal/auth"
	"github.com/emilybakes/bakery/internal/domain"
	"github.com/emilybakes/bakery/internal/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubStaffRepo struct {
	mock.Mock
	interfaces.StaffRepository
}

func (m *stubStaffRepo) FindByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func testAccount(t *testing.T) *domain.Staff {
	t.Helper()
	account, err := domain.NewStaff("emily@emilybakes.com", "sweet-secret", "Emily Chen", domain.RoleOwner)
	require.NoError(t, err)
	account.ID = 1
	return account
}

func TestLogin(t *testing.T) {
	repo := new(stubStaffRepo)
	tokens := auth.NewManager("test-secret", time.Hour)
	svc := NewService(repo, tokens)

	repo.On("FindByEmail", mock.Anything, "emily@emilybakes.com").Return(testAccount(t), nil)

	token, account, err := svc.Login(context.Background(), "emily@emilybakes.com", "sweet-secret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, account.Role)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.StaffID)
	assert.Equal(t, "emily@emilybakes.com", claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(stubStaffRepo)
	svc := NewService(repo, auth.NewManager("test-secret", time.Hour))

	repo.On("FindByEmail", mock.Anything, "emily@emilybakes.com").Return(testAccount(t), nil)

	_, _, err := svc.Login(context.Background(), "emily@emilybakes.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := new(stubStaffRepo)
	svc := NewService(repo, auth.NewManager("test-secret", time.Hour))

	repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrStaffNotFound)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "unknown email and bad password look the same")
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := new(stubStaffRepo)
	svc := NewService(repo, auth.NewManager("test-secret", time.Hour))

	account := testAccount(t)
	account.Active = false
	repo.On("FindByEmail", mock.Anything, "emily@emilybakes.com").Return(account, nil)

	_, _, err := svc.Login(context.Background(), "emily@emilybakes.com", "sweet-secret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
