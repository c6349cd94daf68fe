package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/tellerdesk/tellerdesk/internal/auth"
	"github.com/tellerdesk/tellerdesk/internal/branches"
	"github.com/tellerdesk/tellerdesk/internal/cards"
	"github.com/tellerdesk/tellerdesk/internal/employees"
	"github.com/tellerdesk/tellerdesk/internal/ledger"
	"github.com/tellerdesk/tellerdesk/internal/observability"
	"github.com/tellerdesk/tellerdesk/internal/shared"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AuthHandler      *auth.Handler
	AuthMiddleware   auth.Middleware
	EmployeesHandler *employees.Handler
	CardsHandler     *cards.Handler
	LedgerHandler    *ledger.Handler
	BranchesHandler  *branches.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with tellerdesk defaults. All request
// handling flows through this single router; there are no per-variant servers.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		// Public endpoints; rate-limited since these take credentials.
		r.Group(func(r chi.Router) {
			r.Use(httprate.Limit(30, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
			r.Post("/register", params.EmployeesHandler.Register)
			r.Post("/login", params.AuthHandler.Login)
		})

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(params.AuthMiddleware.Authenticate)

			r.Get("/cards", params.CardsHandler.List)
			r.Post("/cards", params.CardsHandler.Create)
			r.Get("/cards/{number}", params.CardsHandler.Get)
			r.Get("/cards/{number}/transactions", params.LedgerHandler.History)

			r.Get("/branches", params.BranchesHandler.List)
			r.Post("/branches", params.BranchesHandler.Create)

			r.Get("/employees/{id}", params.EmployeesHandler.Get)

			r.With(params.AuthMiddleware.RequirePermission(shared.PermProcessWithdrawal)).
				Post("/withdraw", params.LedgerHandler.Withdraw)
			r.With(params.AuthMiddleware.RequirePermission(shared.PermProcessDeposit)).
				Post("/deposit", params.LedgerHandler.Deposit)
		})
	})

	return r
}
