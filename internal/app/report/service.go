package report

import (
	"context"
	"sort"

	"github.com/emilybakes/bakery/internal/domain"
	"github.com/emilybakes/bakery/internal/interfaces"
)

// Service aggregates order data for the staff reporting screens.
type Service struct {
	orders interfaces.OrderRepository
}

func NewService(orders interfaces.OrderRepository) *Service {
	return &Service{orders: orders}
}

// OrderSummary groups matching orders by creation day and totals the
// revenue. Cancelled orders count in the rows but not in revenue.
func (s *Service) OrderSummary(ctx context.Context, filter interfaces.SummaryFilter) (*interfaces.OrderSummary, error) {
	rows, err := s.orders.Summary(ctx, filter)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]int)
	totals := interfaces.SummaryTotals{}

	for _, row := range rows {
		day := row.CreatedAt.Format("2006-01-02")
		byDay[day]++

		totals.Count++
		if row.Status != domain.StatusCancelled {
			totals.Revenue += row.TotalAmount
		}
	}

	chart := make([]interfaces.ChartPoint, 0, len(byDay))
	for day, count := range byDay {
		chart = append(chart, interfaces.ChartPoint{Date: day, Count: count})
	}
	sort.Slice(chart, func(i, j int) bool { return chart[i].Date < chart[j].Date })

	return &interfaces.OrderSummary{
		ChartData: chart,
		Orders:    rows,
		Totals:    totals,
	}, nil
}
