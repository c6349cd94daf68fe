package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tellerdesk/tellerdesk/internal/employees"
	"github.com/tellerdesk/tellerdesk/internal/shared"
)

type stubDirectory struct {
	employee *employees.Employee
}

func (s *stubDirectory) FindByEmail(ctx context.Context, email string) (*employees.Employee, error) {
	if s.employee == nil || s.employee.Email != email {
		return nil, shared.ErrNotFound
	}
	return s.employee, nil
}

func testEmployee(t *testing.T, password string) *employees.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &employees.Employee{
		EmployeeID:   "emp-7",
		Name:         "Kim",
		Email:        "kim@branch.local",
		PasswordHash: string(hash),
		Permissions:  []string{shared.PermProcessWithdrawal},
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc := NewService(&stubDirectory{employee: testEmployee(t, "correct-horse")}, "signing-secret", time.Hour)

	session, err := svc.Login(context.Background(), "kim@branch.local", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, "emp-7", session.EmployeeID)
	require.Equal(t, "Kim", session.Name)

	claims, err := svc.Verify(session.Token)
	require.NoError(t, err)
	require.Equal(t, "emp-7", claims.EmployeeID)
	require.True(t, claims.HasPermission(shared.PermProcessWithdrawal))
	require.False(t, claims.HasPermission(shared.PermProcessDeposit))
}

func TestLoginFailsUniformly(t *testing.T) {
	svc := NewService(&stubDirectory{employee: testEmployee(t, "correct-horse")}, "signing-secret", time.Hour)
	ctx := context.Background()

	// Unknown email and wrong password must be indistinguishable.
	_, unknownErr := svc.Login(ctx, "nobody@branch.local", "correct-horse")
	require.ErrorIs(t, unknownErr, shared.ErrInvalidCredentials)

	_, wrongErr := svc.Login(ctx, "kim@branch.local", "wrong-horse")
	require.ErrorIs(t, wrongErr, shared.ErrInvalidCredentials)

	require.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewService(&stubDirectory{}, "signing-secret", time.Hour)
	svc.WithNow(func() time.Time { return time.Now().Add(-2 * time.Hour) })

	token, err := svc.Issue(testEmployee(t, "x-not-used-x"))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestVerifyRejectsTampering(t *testing.T) {
	svc := NewService(&stubDirectory{}, "signing-secret", time.Hour)
	other := NewService(&stubDirectory{}, "different-secret", time.Hour)

	token, err := other.Issue(testEmployee(t, "x-not-used-x"))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.ErrorIs(t, err, shared.ErrInvalidToken)

	_, err = svc.Verify("not-even-a-token")
	require.ErrorIs(t, err, shared.ErrInvalidToken)
}
