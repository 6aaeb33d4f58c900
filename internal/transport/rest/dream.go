package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/oneirolab/oneiro-backend/internal/domain"
	"github.com/oneirolab/oneiro-backend/internal/service/analysis"
	"github.com/oneirolab/oneiro-backend/internal/service/vision"
	"github.com/oneirolab/oneiro-backend/pkg/ctxutil"
)

// analysisService defines the minimal interface needed by DreamHandler for
// interpretation and history.
type analysisService interface {
	AnalyzeDream(ctx context.Context, input analysis.AnalyzeInput) (*analysis.AnalyzeResult, error)
	ListDreams(ctx context.Context, requester domain.RequesterIdentity) ([]*domain.Dream, error)
}

// visionService defines the minimal interface needed by DreamHandler for
// visualization.
type visionService interface {
	VisualizeDream(ctx context.Context, input vision.VisualizeInput) (*domain.Dream, error)
}

// DreamHandler serves the dream analysis and visualization endpoints.
type DreamHandler struct {
	analysis analysisService
	vision   visionService
	log      *slog.Logger
}

// NewDreamHandler creates a DreamHandler.
func NewDreamHandler(analysisSvc analysisService, visionSvc visionService, logger *slog.Logger) *DreamHandler {
	return &DreamHandler{
		analysis: analysisSvc,
		vision:   visionSvc,
		log:      logger.With("handler", "dream"),
	}
}

type analyzeRequest struct {
	Dream           string `json:"dream"`
	AnonymousUserID string `json:"anonymousUserId"`
}

type visualizeRequest struct {
	DreamID         string `json:"dreamId"`
	AnonymousUserID string `json:"anonymousUserId"`
}

type dreamResponse struct {
	ID                 string                  `json:"id"`
	DreamText          string                  `json:"dream_text"`
	Title              string                  `json:"title"`
	Summary            string                  `json:"summary"`
	Interpretation     string                  `json:"interpretation"`
	ReflectionQuestion string                  `json:"reflection_question"`
	Symbols            []domain.SymbolEntry    `json:"identified_symbols"`
	Archetypes         []domain.ArchetypeEntry `json:"identified_archetypes"`
	Themes             []string                `json:"identified_themes"`
	ImageURL           *string                 `json:"image_url,omitempty"`
	IsPrivate          bool                    `json:"is_private"`
	CreatedAt          time.Time               `json:"created_at"`
}

func toDreamResponse(d *domain.Dream) dreamResponse {
	return dreamResponse{
		ID:                 d.ID.String(),
		DreamText:          d.DreamText,
		Title:              d.Title,
		Summary:            d.Summary,
		Interpretation:     d.Interpretation,
		ReflectionQuestion: d.ReflectionQuestion,
		Symbols:            d.Symbols,
		Archetypes:         d.Archetypes,
		Themes:             d.Themes,
		ImageURL:           d.ImageURL,
		IsPrivate:          d.IsPrivate,
		CreatedAt:          d.CreatedAt,
	}
}

// requesterIdentity assembles the caller's identity from the authenticated
// context user, falling back to a self-declared anonymous id.
func requesterIdentity(ctx context.Context, anonymousID string) domain.RequesterIdentity {
	identity := domain.RequesterIdentity{AnonymousID: anonymousID}
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		identity.UserID = &userID
	}
	return identity
}

// Analyze handles POST /api/analyze-dream.
func (h *DreamHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.analysis.AnalyzeDream(r.Context(), analysis.AnalyzeInput{
		DreamText: req.Dream,
		Requester: requesterIdentity(r.Context(), req.AnonymousUserID),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	// Without persistence there is no record id; the analysis alone is the
	// whole response and the client keeps it ephemeral.
	if result.Dream == nil {
		writeJSON(w, http.StatusOK, result.Analysis)
		return
	}
	writeJSON(w, http.StatusOK, toDreamResponse(result.Dream))
}

// Visualize handles POST /api/visualize-dream.
func (h *DreamHandler) Visualize(w http.ResponseWriter, r *http.Request) {
	var req visualizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dreamID, err := uuid.Parse(req.DreamID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "dreamId must be a valid id")
		return
	}

	dream, err := h.vision.VisualizeDream(r.Context(), vision.VisualizeInput{
		DreamID:   dreamID,
		Requester: requesterIdentity(r.Context(), req.AnonymousUserID),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"dream":   toDreamResponse(dream),
	})
}

// List handles GET /api/dreams.
func (h *DreamHandler) List(w http.ResponseWriter, r *http.Request) {
	requester := requesterIdentity(r.Context(), r.URL.Query().Get("anonymous_user_id"))

	dreams, err := h.analysis.ListDreams(r.Context(), requester)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]dreamResponse, 0, len(dreams))
	for _, d := range dreams {
		out = append(out, toDreamResponse(d))
	}
	writeJSON(w, http.StatusOK, map[string]any{"dreams": out})
}

func (h *DreamHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "you can only access your own dreams")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "dream not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "record already exists")
	case errors.Is(err, domain.ErrQuotaExceeded):
		writeError(w, http.StatusTooManyRequests, "provider quota exceeded")
	case errors.Is(err, domain.ErrTimeout):
		writeError(w, http.StatusServiceUnavailable, "analysis timed out")
	case errors.Is(err, domain.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "service not configured")
	case errors.Is(err, domain.ErrMalformedAnalysis), errors.Is(err, domain.ErrIncompleteAnalysis):
		h.log.ErrorContext(r.Context(), "model contract violation", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to parse analysis response")
	case errors.Is(err, domain.ErrSafetyRejected):
		writeError(w, http.StatusUnprocessableEntity, "image prompt rejected by the provider's safety system")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
