package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tellerdesk/tellerdesk/internal/shared"
)

// Claims is the signed session token payload. It carries the employee
// identifier and the permission set granted at issue time; a token stays
// trusted until its expiry, there is no revocation list.
type Claims struct {
	EmployeeID  string   `json:"employeeId"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// HasPermission reports whether the token grants perm.
func (c *Claims) HasPermission(perm string) bool {
	return shared.HasPermission(c.Permissions, perm)
}

type contextKey struct{}

// ContextWithClaims stores verified claims on the request context.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// ClaimsFromContext returns the verified claims, or nil outside an
// authenticated request.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(contextKey{}).(*Claims)
	return claims
}
