package http

import (
	"net/http"
	"time"

	"github.com/emilybakes/bakery/internal/adapter/logger"
	"github.com/emilybakes/bakery/internal/domain"
	"github.com/emilybakes/bakery/internal/interfaces"
	"go.uber.org/zap"
)

type ReportHandler struct {
	service interfaces.ReportService
}

func NewReportHandler(service interfaces.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type SummaryResponse struct {
	ChartData []ChartPointPayload `json:"chart_data"`
	Orders    []SummaryRowPayload `json:"orders"`
	Totals    SummaryTotals       `json:"totals"`
}

type ChartPointPayload struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type SummaryRowPayload struct {
	OrderID       int       `json:"order_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	EventDate     *string   `json:"event_date,omitempty"`
	Status        string    `json:"status"`
	TotalAmount   int64     `json:"total_amount"`
	DepositAmount int64     `json:"deposit_amount"`
	BalanceDue    int64     `json:"balance_due"`
	CreatedAt     time.Time `json:"created_at"`
}

type SummaryTotals struct {
	Count   int   `json:"count"`
	Revenue int64 `json:"revenue"`
}

// OrderSummary serves the reporting screen. Optional start/end bound the
// creation date; optional status narrows to one lifecycle state.
func (h *ReportHandler) OrderSummary(w http.ResponseWriter, r *http.Request) {
	var filter interfaces.SummaryFilter

	q := r.URL.Query()
	if v := q.Get("start"); v != "" {
		start, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondValidationErrors(w, []ValidationError{{Field: "start", Message: "must be YYYY-MM-DD"}})
			return
		}
		filter.Start = start
	}
	if v := q.Get("end"); v != "" {
		end, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondValidationErrors(w, []ValidationError{{Field: "end", Message: "must be YYYY-MM-DD"}})
			return
		}
		// Inclusive end of day.
		filter.End = end.Add(24*time.Hour - time.Nanosecond)
	}
	if v := q.Get("status"); v != "" {
		status := domain.Status(v)
		if !status.Valid() {
			respondValidationErrors(w, []ValidationError{{Field: "status", Message: "unknown status"}})
			return
		}
		filter.Status = status
	}

	summary, err := h.service.OrderSummary(r.Context(), filter)
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to build order summary", zap.Error(err))
		respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := SummaryResponse{
		ChartData: make([]ChartPointPayload, 0, len(summary.ChartData)),
		Orders:    make([]SummaryRowPayload, 0, len(summary.Orders)),
		Totals:    SummaryTotals{Count: summary.Totals.Count, Revenue: summary.Totals.Revenue},
	}
	for _, point := range summary.ChartData {
		resp.ChartData = append(resp.ChartData, ChartPointPayload{Date: point.Date, Count: point.Count})
	}
	for _, row := range summary.Orders {
		payload := SummaryRowPayload{
			OrderID:       row.OrderID,
			CustomerName:  row.CustomerName,
			CustomerEmail: row.CustomerEmail,
			CustomerPhone: row.CustomerPhone,
			Status:        string(row.Status),
			TotalAmount:   row.TotalAmount,
			DepositAmount: row.DepositAmount,
			BalanceDue:    row.BalanceDue,
			CreatedAt:     row.CreatedAt,
		}
		if row.EventDate != nil {
			d := row.EventDate.Format("2006-01-02")
			payload.EventDate = &d
		}
		resp.Orders = append(resp.Orders, payload)
	}

	respondJSON(w, http.StatusOK, resp)
}
