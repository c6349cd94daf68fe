package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tellerdesk/tellerdesk/internal/employees"
	"github.com/tellerdesk/tellerdesk/internal/shared"
)

// Directory looks up employee credentials for authentication.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (*employees.Employee, error)
}

// Session is the login response payload.
type Session struct {
	Token      string `json:"token"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
}

// Service issues and verifies signed session tokens.
type Service struct {
	directory Directory
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewService constructs a new Service. The signing secret is process-wide
// configuration established once at startup.
func NewService(directory Directory, secret string, ttl time.Duration) *Service {
	return &Service{
		directory: directory,
		secret:    []byte(secret),
		ttl:       ttl,
		now:       time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Login validates email/password credentials and issues a session token.
// Unknown email and wrong password fail identically so callers cannot
// enumerate accounts.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	employee, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	token, err := s.Issue(employee)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, EmployeeID: employee.EmployeeID, Name: employee.Name}, nil
}

// Issue signs a time-limited token carrying the employee's identity and
// permission set.
func (s *Service) Issue(employee *employees.Employee) (string, error) {
	now := s.now()
	claims := Claims{
		EmployeeID:  employee.EmployeeID,
		Permissions: employee.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry. Any tampering or expiry yields a
// rejection, never partial trust.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, shared.ErrInvalidToken
	}
	return claims, nil
}
