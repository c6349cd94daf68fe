package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tellerdesk/tellerdesk/internal/shared"
)

func protectedEndpoint(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		require.NotNil(t, claims)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(claims.EmployeeID))
	})
}

func TestAuthenticateRejectsMissingOrMalformedHeader(t *testing.T) {
	svc := NewService(&stubDirectory{}, "signing-secret", time.Hour)
	mw := Middleware{Service: svc}
	handler := mw.Authenticate(protectedEndpoint(t))

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer bad.token.here"} {
		req := httptest.NewRequest(http.MethodGet, "/api/cards", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		require.Equal(t, http.StatusUnauthorized, res.Code, "header %q", header)
	}
}

func TestAuthenticatePassesValidToken(t *testing.T) {
	svc := NewService(&stubDirectory{}, "signing-secret", time.Hour)
	mw := Middleware{Service: svc}
	handler := mw.Authenticate(protectedEndpoint(t))

	token, err := svc.Issue(testEmployee(t, "irrelevant-pass"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/cards", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "emp-7", res.Body.String())
}

func TestRequirePermission(t *testing.T) {
	svc := NewService(&stubDirectory{}, "signing-secret", time.Hour)
	mw := Middleware{Service: svc}

	withdraw := mw.Authenticate(
		mw.RequirePermission(shared.PermProcessWithdrawal)(protectedEndpoint(t)))
	deposit := mw.Authenticate(
		mw.RequirePermission(shared.PermProcessDeposit)(protectedEndpoint(t)))

	// Default grant carries processWithdrawal only.
	token, err := svc.Issue(testEmployee(t, "irrelevant-pass"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/withdraw", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	withdraw.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/deposit", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res = httptest.NewRecorder()
	deposit.ServeHTTP(res, req)
	require.Equal(t, http.StatusForbidden, res.Code)
}
