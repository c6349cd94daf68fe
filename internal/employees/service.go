package employees

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tellerdesk/tellerdesk/internal/shared"
)

// hashCost is the fixed bcrypt cost factor for employee credentials.
const hashCost = bcrypt.DefaultCost

// RepositoryPort defines data access methods for employees.
type RepositoryPort interface {
	CreateEmployee(ctx context.Context, e *Employee) error
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindByID(ctx context.Context, employeeID string) (*Employee, error)
}

// RegisterInput carries the fields required to register an employee.
type RegisterInput struct {
	EmployeeID string
	Name       string
	Email      string
	Password   string
}

// Service handles employee business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Register creates a new employee with the default permission grant. The
// plaintext password is hashed before it touches the repository and is never
// stored or returned.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Employee, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), hashCost)
	if err != nil {
		return nil, fmt.Errorf("employees: hash password: %w", err)
	}
	e := &Employee{
		EmployeeID:   input.EmployeeID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Permissions:  shared.DefaultPermissions(),
	}
	if err := s.repo.CreateEmployee(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// FindByEmail fetches an employee by email, hash included. It exists for the
// auth service; HTTP handlers expose only summaries.
func (s *Service) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	return s.repo.FindByEmail(ctx, email)
}

// FindByID fetches an employee by identifier.
func (s *Service) FindByID(ctx context.Context, employeeID string) (*Employee, error) {
	return s.repo.FindByID(ctx, employeeID)
}
