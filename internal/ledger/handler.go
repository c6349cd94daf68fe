package ledger

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/tellerdesk/tellerdesk/internal/auth"
	"github.com/tellerdesk/tellerdesk/internal/platform/httpx"
	"github.com/tellerdesk/tellerdesk/internal/shared"
)

// Handler wires HTTP endpoints for withdrawals, deposits and history.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

type transactionRequest struct {
	CardNumber string          `json:"cardNumber" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	BranchID   string          `json:"branchId" validate:"required"`
}

// Withdraw handles POST /api/withdraw.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, TypeWithdrawal)
}

// Deposit handles POST /api/deposit.
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, TypeDeposit)
}

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, txType Type) {
	var req transactionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed body", shared.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: cardNumber and branchId are required", shared.ErrValidation))
		return
	}
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		httpx.RespondError(w, shared.ErrInvalidToken)
		return
	}
	actor := Actor{EmployeeID: claims.EmployeeID, Permissions: claims.Permissions}

	var (
		receipt *Receipt
		err     error
	)
	switch txType {
	case TypeDeposit:
		receipt, err = h.service.Deposit(r.Context(), actor, req.CardNumber, req.Amount, req.BranchID)
	default:
		receipt, err = h.service.Withdraw(r.Context(), actor, req.CardNumber, req.Amount, req.BranchID)
	}
	if err != nil {
		if !shared.IsDomainError(err) {
			h.logger.Error("process transaction",
				slog.String("type", string(txType)),
				slog.String("employee", claims.EmployeeID),
				slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, receipt)
}

// History handles GET /api/cards/{number}/transactions.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.ListByCard(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		if !shared.IsDomainError(err) {
			h.logger.Error("list transactions", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	if transactions == nil {
		transactions = []Transaction{}
	}
	httpx.JSON(w, http.StatusOK, transactions)
}
