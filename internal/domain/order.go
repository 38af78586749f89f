package domain

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// Order represents a custom cake order.
type Order struct {
	ID                int
	CustomerID        int
	OrderType         string
	Occasion          string
	Design            string
	Servings          int
	Layers            []Layer
	Status            Status
	Priority          Priority
	TotalAmount       int64
	DepositAmount     int64
	AmountPaid        int64
	BalanceDue        int64
	PaymentStatus     PaymentStatus
	DepositMet        bool
	TrackingToken     string
	EventDate         *time.Time
	AssignedBaker     *int
	AssignedDecorator *int
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time
}

// Layer describes one tier of the cake. Fillings per layer is a soft limit
// enforced by the builder UI, not here.
type Layer struct {
	Flavor   string   `json:"flavor"`
	Fillings []string `json:"fillings"`
	Notes    string   `json:"notes"`
}

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidAmount    = errors.New("amount must be positive")

	// ErrValidation marks rejections of caller input. Handlers map it to a
	// 400 and may echo the message to the client.
	ErrValidation = errors.New("validation failed")
)

// NewOrder creates an order in the pending state with a fresh tracking token.
func NewOrder(customerID int, orderType, occasion, design string, servings int, layers []Layer, totalAmount, depositAmount int64, priority Priority, eventDate *time.Time) (*Order, error) {
	if customerID <= 0 {
		return nil, errors.New("customer is required")
	}
	if totalAmount < 0 || depositAmount < 0 {
		return nil, ErrInvalidAmount
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrUnknownPriority
	}

	token, err := NewTrackingToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &Order{
		CustomerID:    customerID,
		OrderType:     orderType,
		Occasion:      occasion,
		Design:        design,
		Servings:      servings,
		Layers:        layers,
		Status:        StatusPending,
		Priority:      priority,
		TotalAmount:   totalAmount,
		DepositAmount: depositAmount,
		TrackingToken: token,
		EventDate:     eventDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	order.ApplyPayment(0)

	return order, nil
}

// NewTrackingToken returns 16 random bytes hex-encoded. The token is the
// sole credential for the public tracking page, so it must come from
// crypto/rand.
func NewTrackingToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ChangeStatus moves the order to newStatus. Transitions out of the terminal
// states are rejected; re-setting the current value is allowed and counts as
// an update (callers still emit the status notification). Any other movement
// between known statuses is permitted; the admin board corrects mistakes by
// moving orders backwards.
func (o *Order) ChangeStatus(newStatus Status) error {
	if !newStatus.Valid() {
		return ErrUnknownStatus
	}
	if o.Status.Terminal() && newStatus != o.Status {
		return ErrTerminalStatus
	}

	o.Status = newStatus
	o.UpdatedAt = time.Now()

	if newStatus == StatusCompleted && o.CompletedAt == nil {
		now := time.Now()
		o.CompletedAt = &now
	}

	return nil
}

// ApplyPayment adds amount to the paid total and rederives the payment view.
// Call with zero to recompute after editing totals.
func (o *Order) ApplyPayment(amount int64) {
	o.AmountPaid += amount

	state := DerivePaymentState(o.TotalAmount, o.AmountPaid, o.DepositAmount)
	o.BalanceDue = state.BalanceDue
	o.PaymentStatus = state.Status
	o.DepositMet = state.DepositMet
	o.UpdatedAt = time.Now()
}

// Assign sets the staff assignments; nil leaves a side unchanged.
func (o *Order) Assign(baker, decorator *int) {
	if baker != nil {
		o.AssignedBaker = baker
	}
	if decorator != nil {
		o.AssignedDecorator = decorator
	}
	o.UpdatedAt = time.Now()
}
