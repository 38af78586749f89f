package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emilybakes/bakery/internal/domain"
	"github.com/emilybakes/bakery/internal/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubOrderRepo struct {
	mock.Mock
	interfaces.OrderRepository
}

func (m *stubOrderRepo) Summary(ctx context.Context, filter interfaces.SummaryFilter) ([]*interfaces.SummaryRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*interfaces.SummaryRow), args.Error(1)
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestOrderSummary(t *testing.T) {
	orders := new(stubOrderRepo)
	svc := NewService(orders)

	rows := []*interfaces.SummaryRow{
		{OrderID: 1, Status: domain.StatusCompleted, TotalAmount: 45000, CreatedAt: day("2026-08-10")},
		{OrderID: 2, Status: domain.StatusBaking, TotalAmount: 12500, CreatedAt: day("2026-08-10")},
		{OrderID: 3, Status: domain.StatusCancelled, TotalAmount: 30000, CreatedAt: day("2026-08-12")},
		{OrderID: 4, Status: domain.StatusPending, TotalAmount: 8000, CreatedAt: day("2026-08-14")},
	}
	orders.On("Summary", mock.Anything, mock.Anything).Return(rows, nil)

	summary, err := svc.OrderSummary(context.Background(), interfaces.SummaryFilter{})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Totals.Count)
	assert.Equal(t, int64(65500), summary.Totals.Revenue, "cancelled orders do not count as revenue")

	require.Len(t, summary.ChartData, 3)
	assert.Equal(t, interfaces.ChartPoint{Date: "2026-08-10", Count: 2}, summary.ChartData[0])
	assert.Equal(t, interfaces.ChartPoint{Date: "2026-08-12", Count: 1}, summary.ChartData[1])
	assert.Equal(t, interfaces.ChartPoint{Date: "2026-08-14", Count: 1}, summary.ChartData[2])
}

func TestOrderSummaryEmpty(t *testing.T) {
	orders := new(stubOrderRepo)
	svc := NewService(orders)

	orders.On("Summary", mock.Anything, mock.Anything).Return([]*interfaces.SummaryRow{}, nil)

	summary, err := svc.OrderSummary(context.Background(), interfaces.SummaryFilter{})
	require.NoError(t, err)
	assert.Zero(t, summary.Totals.Count)
	assert.Zero(t, summary.Totals.Revenue)
	assert.Empty(t, summary.ChartData)
}

func TestOrderSummaryRepoError(t *testing.T) {
	orders := new(stubOrderRepo)
	svc := NewService(orders)

	orders.On("Summary", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.OrderSummary(context.Background(), interfaces.SummaryFilter{})
	assert.Error(t, err)
}
