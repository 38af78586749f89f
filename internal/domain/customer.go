package domain

import (
	"errors"
	"strings"
	"time"
)

// Customer is the person or company placing orders.
type Customer struct {
	ID          int
	Name        string
	Email       string
	Phone       string
	VIP         bool
	TotalOrders int
	CreatedAt   time.Time
}

var ErrInvalidPhone = errors.New("phone number must be 10 digits and not start with 0 or 1")

// NewCustomer validates and normalizes the contact fields. Phone is optional.
func NewCustomer(name, email, phone string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, errors.New("customer name must be 1-100 characters")
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("valid email is required")
	}

	formatted, err := FormatPhone(phone)
	if err != nil {
		return nil, err
	}

	return &Customer{
		Name:      name,
		Email:     email,
		Phone:     formatted,
		CreatedAt: time.Now(),
	}, nil
}

// FormatPhone normalizes a US phone number to (XXX) XXX-XXXX. Empty input is
// allowed and returns empty.
func FormatPhone(phone string) (string, error) {
	if strings.TrimSpace(phone) == "" {
		return "", nil
	}

	var digits []byte
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			digits = append(digits, phone[i])
		}
	}

	if len(digits) != 10 || digits[0] == '0' || digits[0] == '1' {
		return "", ErrInvalidPhone
	}

	return "(" + string(digits[0:3]) + ") " + string(digits[3:6]) + "-" + string(digits[6:10]), nil
}
