package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer("  Jennifer Lopez ", "jennifer.lopez@example.com", "555-123-4567")
	require.NoError(t, err)

	assert.Equal(t, "Jennifer Lopez", c.Name)
	assert.Equal(t, "(555) 123-4567", c.Phone)
	assert.False(t, c.VIP)
}

func TestNewCustomerValidation(t *testing.T) {
	_, err := NewCustomer("", "a@b.com", "")
	assert.Error(t, err)

	_, err = NewCustomer("Name", "not-an-email", "")
	assert.Error(t, err)

	_, err = NewCustomer("Name", "a@b.com", "123")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"   ", "", false},
		{"5551234567", "(555) 123-4567", false},
		{"(555) 123-4567", "(555) 123-4567", false},
		{"555.123.4567", "(555) 123-4567", false},
		{"55512345", "", true},
		{"0551234567", "", true},
		{"1551234567", "", true},
	}

	for _, tt := range tests {
		got, err := FormatPhone(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPhone, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestStaffPassword(t *testing.T) {
	s, err := NewStaff("emily@emilybakes.com", "DemoPass123!", "Emily Baker", RoleOwner)
	require.NoError(t, err)

	assert.True(t, s.CheckPassword("DemoPass123!"))
	assert.False(t, s.CheckPassword("wrong"))
	assert.NotEqual(t, "DemoPass123!", s.PasswordHash)
}

func TestNewStaffValidation(t *testing.T) {
	_, err := NewStaff("", "pw", "Name", RoleBaker)
	assert.Error(t, err)

	_, err = NewStaff("a@b.com", "pw", "Name", Role("janitor"))
	assert.Error(t, err)
}
