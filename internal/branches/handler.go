package branches

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/tellerdesk/tellerdesk/internal/platform/httpx"
	"github.com/tellerdesk/tellerdesk/internal/shared"
)

// Handler wires HTTP endpoints for the branch registry.
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

type createBranchRequest struct {
	BranchID   string `json:"branchId" validate:"required"`
	BranchName string `json:"branchName" validate:"required"`
	Location   string `json:"location" validate:"required"`
}

// Create handles POST /api/branches.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBranchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: malformed body", shared.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: branchId, branchName and location are required", shared.ErrValidation))
		return
	}

	branch := Branch{BranchID: req.BranchID, BranchName: req.BranchName, Location: req.Location}
	if err := h.service.Create(r.Context(), &branch); err != nil {
		if !shared.IsDomainError(err) {
			h.logger.Error("create branch", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, branch)
}

// List handles GET /api/branches.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	branches, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list branches", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if branches == nil {
		branches = []Branch{}
	}
	httpx.JSON(w, http.StatusOK, branches)
}
