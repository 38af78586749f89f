package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/emilybakes/bakery/internal/adapter/logger"
	"github.com/emilybakes/bakery/internal/domain"
	"github.com/emilybakes/bakery/internal/interfaces"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TrackingHandler struct {
	service interfaces.TrackingService
}

func NewTrackingHandler(service interfaces.TrackingService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

type TrackingResponse struct {
	OrderID   int                     `json:"order_id"`
	Status    string                  `json:"status"`
	Label     string                  `json:"status_label"`
	Color     string                  `json:"status_color"`
	Stage     int                     `json:"stage"`
	Customer  TrackingCustomerPayload `json:"customer"`
	EventDate *string                 `json:"event_date,omitempty"`
	Payment   TrackingPaymentPayload  `json:"payment"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

type TrackingCustomerPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type TrackingPaymentPayload struct {
	TotalAmount   int64  `json:"total_amount"`
	DepositAmount int64  `json:"deposit_amount"`
	BalanceDue    int64  `json:"balance_due"`
	DepositMet    bool   `json:"deposit_met"`
	PaymentStatus string `json:"payment_status"`
}

// TrackOrder resolves a tracking token to the public order view. A missing
// token returns 404 with a customer-readable message; anything else is a
// generic 500 so the page can tell "bad token" from "try again later".
func (h *TrackingHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		respondError(w, "Tracking token is required", http.StatusBadRequest)
		return
	}

	view, err := h.service.GetOrderByToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			respondError(w, "Order not found. Please check your tracking token.", http.StatusNotFound)
			return
		}
		logger.FromCtx(r.Context()).Error("tracking lookup failed", zap.Error(err))
		respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	meta := view.Status.Meta()
	resp := TrackingResponse{
		OrderID: view.OrderID,
		Status:  string(view.Status),
		Label:   meta.Label,
		Color:   meta.Color,
		Stage:   view.Stage,
		Customer: TrackingCustomerPayload{
			Name:  view.Customer.Name,
			Email: view.Customer.Email,
			Phone: view.Customer.Phone,
		},
		Payment: TrackingPaymentPayload{
			TotalAmount:   view.Payment.TotalAmount,
			DepositAmount: view.Payment.DepositAmount,
			BalanceDue:    view.Payment.BalanceDue,
			DepositMet:    view.Payment.DepositMet,
			PaymentStatus: string(view.Payment.PaymentStatus),
		},
		CreatedAt: view.CreatedAt,
		UpdatedAt: view.UpdatedAt,
	}
	if view.EventDate != nil {
		d := view.EventDate.Format("2006-01-02")
		resp.EventDate = &d
	}

	respondJSON(w, http.StatusOK, resp)
}
