package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/emilybakes/bakery/internal/adapter/logger"
	"github.com/emilybakes/bakery/internal/domain"
	"github.com/emilybakes/bakery/internal/interfaces"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service interfaces.OrderService
}

func NewOrderHandler(service interfaces.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type CreateOrderRequest struct {
	CustomerID    int            `json:"customer_id,omitempty"`
	CustomerName  string         `json:"customer_name,omitempty"`
	CustomerEmail string         `json:"customer_email,omitempty"`
	CustomerPhone string         `json:"customer_phone,omitempty"`
	OrderType     string         `json:"order_type"`
	Occasion      string         `json:"occasion,omitempty"`
	Design        string         `json:"design,omitempty"`
	Servings      int            `json:"servings"`
	Layers        []domain.Layer `json:"layers,omitempty"`
	TotalAmount   int64          `json:"total_amount"`
	DepositAmount int64          `json:"deposit_amount"`
	Priority      string         `json:"priority,omitempty"`
	EventDate     string         `json:"event_date,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type RecordPaymentRequest struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
}

type AssignStaffRequest struct {
	BakerID     *int `json:"baker_id,omitempty"`
	DecoratorID *int `json:"decorator_id,omitempty"`
}

type OrderResponse struct {
	ID                int            `json:"id"`
	CustomerID        int            `json:"customer_id"`
	OrderType         string         `json:"order_type"`
	Occasion          string         `json:"occasion,omitempty"`
	Design            string         `json:"design,omitempty"`
	Servings          int            `json:"servings"`
	Layers            []domain.Layer `json:"layers,omitempty"`
	Status            string         `json:"status"`
	StatusLabel       string         `json:"status_label"`
	StatusColor       string         `json:"status_color"`
	Priority          string         `json:"priority"`
	TotalAmount       int64          `json:"total_amount"`
	DepositAmount     int64          `json:"deposit_amount"`
	AmountPaid        int64          `json:"amount_paid"`
	BalanceDue        int64          `json:"balance_due"`
	PaymentStatus     string         `json:"payment_status"`
	DepositMet        bool           `json:"deposit_met"`
	TrackingToken     string         `json:"tracking_token"`
	EventDate         *string        `json:"event_date,omitempty"`
	AssignedBaker     *int           `json:"assigned_baker,omitempty"`
	AssignedDecorator *int           `json:"assigned_decorator,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`
}

func toOrderResponse(order *domain.Order) OrderResponse {
	meta := order.Status.Meta()
	resp := OrderResponse{
		ID:                order.ID,
		CustomerID:        order.CustomerID,
		OrderType:         order.OrderType,
		Occasion:          order.Occasion,
		Design:            order.Design,
		Servings:          order.Servings,
		Layers:            order.Layers,
		Status:            string(order.Status),
		StatusLabel:       meta.Label,
		StatusColor:       meta.Color,
		Priority:          string(order.Priority),
		TotalAmount:       order.TotalAmount,
		DepositAmount:     order.DepositAmount,
		AmountPaid:        order.AmountPaid,
		BalanceDue:        order.BalanceDue,
		PaymentStatus:     string(order.PaymentStatus),
		DepositMet:        order.DepositMet,
		TrackingToken:     order.TrackingToken,
		AssignedBaker:     order.AssignedBaker,
		AssignedDecorator: order.AssignedDecorator,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
		CompletedAt:       order.CompletedAt,
	}
	if order.EventDate != nil {
		d := order.EventDate.Format("2006-01-02")
		resp.EventDate = &d
	}
	return resp
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if errs := validateCreateOrderRequest(req); len(errs) > 0 {
		respondValidationErrors(w, errs)
		return
	}

	cmd := interfaces.CreateOrderCommand{
		CustomerID:    req.CustomerID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: req.CustomerPhone,
		OrderType:     req.OrderType,
		Occasion:      req.Occasion,
		Design:        req.Design,
		Servings:      req.Servings,
		Layers:        req.Layers,
		TotalAmount:   req.TotalAmount,
		DepositAmount: req.DepositAmount,
		Priority:      domain.Priority(req.Priority),
	}
	if req.EventDate != "" {
		date, err := time.Parse("2006-01-02", req.EventDate)
		if err != nil {
			respondValidationErrors(w, []ValidationError{{Field: "event_date", Message: "must be YYYY-MM-DD"}})
			return
		}
		cmd.EventDate = &date
	}

	order, err := h.service.CreateOrder(r.Context(), cmd)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toOrderResponse(order))
}

func validateCreateOrderRequest(req CreateOrderRequest) []ValidationError {
	var errs []ValidationError

	if req.CustomerID <= 0 {
		if strings.TrimSpace(req.CustomerName) == "" {
			errs = append(errs, ValidationError{Field: "customer_name", Message: "customer name is required"})
		}
		if strings.TrimSpace(req.CustomerEmail) == "" {
			errs = append(errs, ValidationError{Field: "customer_email", Message: "customer email is required"})
		}
	}
	if req.TotalAmount < 0 {
		errs = append(errs, ValidationError{Field: "total_amount", Message: "must not be negative"})
	}
	if req.DepositAmount < 0 {
		errs = append(errs, ValidationError{Field: "deposit_amount", Message: "must not be negative"})
	}
	if req.Servings < 0 {
		errs = append(errs, ValidationError{Field: "servings", Message: "must not be negative"})
	}
	if req.Priority != "" && !domain.Priority(req.Priority).Valid() {
		errs = append(errs, ValidationError{Field: "priority", Message: "must be one of low, medium, high, rush"})
	}
	if len(req.Layers) > 10 {
		errs = append(errs, ValidationError{Field: "layers", Message: "at most 10 layers"})
	}

	return errs
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter := interfaces.OrderFilter{
		Status:   domain.Status(r.URL.Query().Get("status")),
		Priority: domain.Priority(r.URL.Query().Get("priority")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		respondValidationErrors(w, []ValidationError{{Field: "status", Message: "unknown status"}})
		return
	}

	orders, err := h.service.ListOrders(r.Context(), filter)
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to list orders", zap.Error(err))
		respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, toOrderResponse(order))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	changedBy := "staff"
	if claims := ClaimsFrom(r.Context()); claims != nil {
		changedBy = claims.Email
	}

	order, err := h.service.UpdateStatus(r.Context(), interfaces.UpdateStatusCommand{
		OrderID:   id,
		NewStatus: domain.Status(req.Status),
		ChangedBy: changedBy,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.service.RecordPayment(r.Context(), interfaces.RecordPaymentCommand{
		OrderID: id,
		Amount:  req.Amount,
		Method:  req.Method,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) AssignStaff(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	var req AssignStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.service.AssignStaff(r.Context(), interfaces.AssignStaffCommand{
		OrderID:     id,
		BakerID:     req.BakerID,
		DecoratorID: req.DecoratorID,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) GetStatusHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	history, err := h.service.GetStatusHistory(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	resp := make([]map[string]any, 0, len(history))
	for _, entry := range history {
		resp = append(resp, map[string]any{
			"status":     entry.Status,
			"changed_by": entry.ChangedBy,
			"changed_at": entry.ChangedAt,
			"notes":      entry.Notes,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func orderID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, "Invalid order id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *OrderHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		respondError(w, "Order not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrCustomerNotFound):
		respondError(w, "Customer not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrUnknownStatus):
		respondError(w, "Unknown order status", http.StatusBadRequest)
	case errors.Is(err, domain.ErrTerminalStatus):
		respondError(w, "Order is already completed or cancelled", http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidAmount):
		respondError(w, "Payment amount must be positive", http.StatusBadRequest)
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnknownPriority),
		errors.Is(err, domain.ErrInvalidPhone):
		respondError(w, err.Error(), http.StatusBadRequest)
	default:
		logger.FromCtx(r.Context()).Error("request failed", zap.Error(err))
		respondError(w, "Internal server error", http.StatusInternalServerError)
	}
}
