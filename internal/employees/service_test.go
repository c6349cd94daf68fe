package employees

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tellerdesk/tellerdesk/internal/shared"
)

type memoryEmployeeRepo struct {
	byID    map[string]*Employee
	byEmail map[string]*Employee
}

func newMemoryEmployeeRepo() *memoryEmployeeRepo {
	return &memoryEmployeeRepo{
		byID:    make(map[string]*Employee),
		byEmail: make(map[string]*Employee),
	}
}

func (r *memoryEmployeeRepo) CreateEmployee(ctx context.Context, e *Employee) error {
	if _, ok := r.byID[e.EmployeeID]; ok {
		return shared.ErrDuplicate
	}
	if _, ok := r.byEmail[e.Email]; ok {
		return shared.ErrDuplicate
	}
	r.byID[e.EmployeeID] = e
	r.byEmail[e.Email] = e
	return nil
}

func (r *memoryEmployeeRepo) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	e, ok := r.byEmail[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return e, nil
}

func (r *memoryEmployeeRepo) FindByID(ctx context.Context, employeeID string) (*Employee, error) {
	e, ok := r.byID[employeeID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return e, nil
}

func TestRegisterHashesPasswordAndGrantsDefaults(t *testing.T) {
	svc := NewService(newMemoryEmployeeRepo())

	employee, err := svc.Register(context.Background(), RegisterInput{
		EmployeeID: "emp-1",
		Name:       "Dana",
		Email:      "dana@branch.local",
		Password:   "plaintext-secret",
	})
	require.NoError(t, err)

	require.NotEqual(t, "plaintext-secret", employee.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte("plaintext-secret")))
	require.Equal(t, []string{shared.PermProcessWithdrawal}, employee.Permissions)

	summary := employee.Summary()
	require.Equal(t, "emp-1", summary.EmployeeID)
}

func TestRegisterDuplicateIdentifierOrEmail(t *testing.T) {
	svc := NewService(newMemoryEmployeeRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{EmployeeID: "emp-1", Name: "A", Email: "a@branch.local", Password: "password-1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{EmployeeID: "emp-1", Name: "B", Email: "b@branch.local", Password: "password-2"})
	require.ErrorIs(t, err, shared.ErrDuplicate)

	_, err = svc.Register(ctx, RegisterInput{EmployeeID: "emp-2", Name: "C", Email: "a@branch.local", Password: "password-3"})
	require.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestFindByIDMissing(t *testing.T) {
	svc := NewService(newMemoryEmployeeRepo())

	_, err := svc.FindByID(context.Background(), "ghost")
	require.ErrorIs(t, err, shared.ErrNotFound)
}
