package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/oneirolab/oneiro-backend/internal/domain"
	"github.com/oneirolab/oneiro-backend/internal/service/account"
)

// accountService defines the minimal interface needed by AccountHandler.
type accountService interface {
	MergeAnonymous(ctx context.Context, input account.MergeInput) (int, error)
}

// AccountHandler serves the account merge endpoint.
type AccountHandler struct {
	svc accountService
	log *slog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(svc accountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{svc: svc, log: logger.With("handler", "account")}
}

type mergeRequest struct {
	AnonymousUserID string `json:"anonymousUserId"`
}

// Merge handles POST /api/merge-accounts.
func (h *AccountHandler) Merge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	merged, err := h.svc.MergeAnonymous(r.Context(), account.MergeInput{
		AnonymousID: req.AnonymousUserID,
		Requester:   requesterIdentity(r.Context(), ""),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"message":      fmt.Sprintf("Successfully merged %d dreams to your account", merged),
		"dreamsMerged": merged,
	})
}

func (h *AccountHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "service not configured")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
