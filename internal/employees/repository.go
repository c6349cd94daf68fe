package employees

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tellerdesk/tellerdesk/internal/platform/db"
	"github.com/tellerdesk/tellerdesk/internal/shared"
)

// Repository provides PostgreSQL backed persistence for employees.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateEmployee inserts a new employee. Uniqueness of employee_id and email
// is enforced by the database, not by a racy existence check here.
func (r *Repository) CreateEmployee(ctx context.Context, e *Employee) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO employees (employee_id, name, email, password_hash, permissions, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
		e.EmployeeID, e.Name, e.Email, e.PasswordHash, e.Permissions, time.Now().UTC())
	if err != nil {
		if db.IsUniqueViolation(err) {
			return shared.ErrDuplicate
		}
		return err
	}
	return nil
}

// FindByEmail fetches an employee by email, including the password hash.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	return r.scanOne(ctx,
		`SELECT employee_id, name, email, password_hash, permissions, created_at
FROM employees WHERE email = $1`, email)
}

// FindByID fetches an employee by the caller-assigned identifier.
func (r *Repository) FindByID(ctx context.Context, employeeID string) (*Employee, error) {
	return r.scanOne(ctx,
		`SELECT employee_id, name, email, password_hash, permissions, created_at
FROM employees WHERE employee_id = $1`, employeeID)
}

func (r *Repository) scanOne(ctx context.Context, query string, arg any) (*Employee, error) {
	var e Employee
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&e.EmployeeID, &e.Name, &e.Email, &e.PasswordHash, &e.Permissions, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}
