package auth

import (
	"net/http"
	"strings"

	"github.com/tellerdesk/tellerdesk/internal/platform/httpx"
	"github.com/tellerdesk/tellerdesk/internal/shared"
)

// Middleware gates routes on bearer tokens and permissions.
type Middleware struct {
	Service *Service
}

// Authenticate verifies the Authorization header and stores the claims on
// the request context. Missing, malformed, tampered and expired tokens all
// end the request with 401.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			httpx.RespondError(w, shared.ErrInvalidToken)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httpx.RespondError(w, shared.ErrInvalidToken)
			return
		}
		claims, err := m.Service.Verify(parts[1])
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

// RequirePermission ensures the authenticated caller carries perm.
func (m Middleware) RequirePermission(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				httpx.RespondError(w, shared.ErrInvalidToken)
				return
			}
			if !claims.HasPermission(perm) {
				httpx.RespondError(w, shared.ErrPermissionDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
