package cards

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/tellerdesk/tellerdesk/internal/platform/httpx"
	"github.com/tellerdesk/tellerdesk/internal/shared"
)

// Handler wires HTTP endpoints for card issuance and lookup.
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

type createCardRequest struct {
	CardNumber     string           `json:"cardNumber" validate:"required"`
	HolderName     string           `json:"holderName" validate:"required"`
	InitialBalance *decimal.Decimal `json:"initialBalance"`
}

// Create handles POST /api/cards.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed body", shared.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: cardNumber and holderName are required", shared.ErrValidation))
		return
	}
	initial := decimal.Zero
	if req.InitialBalance != nil {
		initial = *req.InitialBalance
	}

	card, err := h.service.Create(r.Context(), CreateInput{
		CardNumber:     req.CardNumber,
		HolderName:     req.HolderName,
		InitialBalance: initial,
	})
	if err != nil {
		if !shared.IsDomainError(err) {
			h.logger.Error("create card", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, card)
}

// List handles GET /api/cards.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list cards", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if cards == nil {
		cards = []Card{}
	}
	httpx.JSON(w, http.StatusOK, cards)
}

// Get handles GET /api/cards/{number}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	card, err := h.service.FindByNumber(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		if !shared.IsDomainError(err) {
			h.logger.Error("find card", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, card)
}
