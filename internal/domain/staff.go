package domain

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleOwner      Role = "owner"
	RoleManager    Role = "manager"
	RoleSales      Role = "sales"
	RoleBaker      Role = "baker"
	RoleDecorator  Role = "decorator"
	RoleAccountant Role = "accountant"
)

var validRoles = map[Role]bool{
	RoleOwner:      true,
	RoleManager:    true,
	RoleSales:      true,
	RoleBaker:      true,
	RoleDecorator:  true,
	RoleAccountant: true,
}

func (r Role) Valid() bool {
	return validRoles[r]
}

// Staff is an internal account for the admin console.
type Staff struct {
	ID           int
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Active       bool
	CreatedAt    time.Time
}

var (
	ErrStaffNotFound      = errors.New("staff account not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

func NewStaff(email, password, name string, role Role) (*Staff, error) {
	if email == "" || name == "" {
		return nil, errors.New("email and name are required")
	}
	if !role.Valid() {
		return nil, errors.New("invalid staff role")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &Staff{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now(),
	}, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (s *Staff) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)) == nil
}
