package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	eventDate := time.Now().AddDate(0, 0, 14)
	order, err := NewOrder(1, "custom", "wedding", "elegant-tiered", 150,
		[]Layer{{Flavor: "vanilla", Fillings: []string{"raspberry", "buttercream"}, Notes: "Extra raspberry"}},
		45000, 22500, PriorityHigh, &eventDate)
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	order := newTestOrder(t)

	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, PaymentUnpaid, order.PaymentStatus)
	assert.Equal(t, int64(45000), order.BalanceDue)
	assert.False(t, order.DepositMet)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), order.TrackingToken)
}

func TestNewOrderDefaultsPriority(t *testing.T) {
	order, err := NewOrder(1, "custom", "birthday", "", 20, nil, 8500, 4250, "", nil)
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, order.Priority)
}

func TestNewOrderValidation(t *testing.T) {
	_, err := NewOrder(0, "custom", "", "", 0, nil, 1000, 0, PriorityLow, nil)
	assert.Error(t, err)

	_, err = NewOrder(1, "custom", "", "", 0, nil, -1, 0, PriorityLow, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewOrder(1, "custom", "", "", 0, nil, 1000, 0, Priority("urgent"), nil)
	assert.ErrorIs(t, err, ErrUnknownPriority)
}

func TestNewTrackingTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewTrackingToken()
		require.NoError(t, err)
		assert.Len(t, token, 32)
		assert.False(t, seen[token], "token collision")
		seen[token] = true
	}
}

func TestChangeStatus(t *testing.T) {
	t.Run("forward progression", func(t *testing.T) {
		order := newTestOrder(t)
		for _, s := range []Status{StatusBaking, StatusDecorating, StatusReady, StatusCompleted} {
			require.NoError(t, order.ChangeStatus(s))
			assert.Equal(t, s, order.Status)
		}
		assert.NotNil(t, order.CompletedAt)
	})

	t.Run("backwards movement allowed while active", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.ChangeStatus(StatusDecorating))
		require.NoError(t, order.ChangeStatus(StatusBaking))
		assert.Equal(t, StatusBaking, order.Status)
	})

	t.Run("cancel from any active status", func(t *testing.T) {
		for _, from := range []Status{StatusPending, StatusBaking, StatusDecorating, StatusReady} {
			order := newTestOrder(t)
			require.NoError(t, order.ChangeStatus(from))
			require.NoError(t, order.ChangeStatus(StatusCancelled))
		}
	})

	t.Run("terminal statuses are frozen", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.ChangeStatus(StatusCompleted))
		assert.ErrorIs(t, order.ChangeStatus(StatusPending), ErrTerminalStatus)
		assert.ErrorIs(t, order.ChangeStatus(StatusCancelled), ErrTerminalStatus)

		order = newTestOrder(t)
		require.NoError(t, order.ChangeStatus(StatusCancelled))
		assert.ErrorIs(t, order.ChangeStatus(StatusBaking), ErrTerminalStatus)
	})

	t.Run("setting current value is a no-op update", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.ChangeStatus(StatusBaking))
		require.NoError(t, order.ChangeStatus(StatusBaking))
		assert.Equal(t, StatusBaking, order.Status)

		// Same value is allowed even in a terminal state.
		require.NoError(t, order.ChangeStatus(StatusCancelled))
		require.NoError(t, order.ChangeStatus(StatusCancelled))
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		order := newTestOrder(t)
		assert.ErrorIs(t, order.ChangeStatus(Status("archived")), ErrUnknownStatus)
	})
}

func TestApplyPayment(t *testing.T) {
	order := newTestOrder(t)

	order.ApplyPayment(22500)
	assert.Equal(t, int64(22500), order.BalanceDue)
	assert.Equal(t, PaymentPartial, order.PaymentStatus)
	assert.True(t, order.DepositMet)

	order.ApplyPayment(22500)
	assert.Equal(t, int64(0), order.BalanceDue)
	assert.Equal(t, PaymentPaid, order.PaymentStatus)
}

func TestAssign(t *testing.T) {
	order := newTestOrder(t)
	baker, decorator := 4, 5

	order.Assign(&baker, nil)
	require.NotNil(t, order.AssignedBaker)
	assert.Equal(t, 4, *order.AssignedBaker)
	assert.Nil(t, order.AssignedDecorator)

	order.Assign(nil, &decorator)
	require.NotNil(t, order.AssignedDecorator)
	assert.Equal(t, 5, *order.AssignedDecorator)
	assert.Equal(t, 4, *order.AssignedBaker)
}
