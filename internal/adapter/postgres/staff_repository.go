package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/emilybakes/bakery/internal/domain"
	"github.com/emilybakes/bakery/internal/interfaces"
	"github.com/jackc/pgx/v5"
)

type staffRepository struct {
	db DB
}

func NewStaffRepository(db DB) interfaces.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	query := `
		INSERT INTO staff (email, password_hash, name, role, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		staff.Email, staff.PasswordHash, staff.Name, staff.Role, staff.Active, staff.CreatedAt,
	).Scan(&staff.ID)
	if err != nil {
		return fmt.Errorf("failed to insert staff account: %w", err)
	}
	return nil
}

func (r *staffRepository) FindByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	query := `SELECT id, email, password_hash, name, role, active, created_at FROM staff WHERE email = $1`
	return r.scanStaff(r.db.QueryRow(ctx, query, email))
}

func (r *staffRepository) FindByID(ctx context.Context, id int) (*domain.Staff, error) {
	query := `SELECT id, email, password_hash, name, role, active, created_at FROM staff WHERE id = $1`
	return r.scanStaff(r.db.QueryRow(ctx, query, id))
}

func (r *staffRepository) scanStaff(row Row) (*domain.Staff, error) {
	var staff domain.Staff
	err := row.Scan(
		&staff.ID, &staff.Email, &staff.PasswordHash, &staff.Name,
		&staff.Role, &staff.Active, &staff.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to scan staff account: %w", err)
	}
	return &staff, nil
}
