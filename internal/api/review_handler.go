package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cihanisildar/dailingo-api/internal/api/shared"
	"github.com/cihanisildar/dailingo-api/internal/domain"
	"github.com/cihanisildar/dailingo-api/internal/domain/srs"
	"github.com/cihanisildar/dailingo-api/internal/platform/logger"
	"github.com/cihanisildar/dailingo-api/internal/service/review"
)

// maxUpcomingDays caps the upcoming-review window a client may request.
const maxUpcomingDays = 365

// UpcomingResponse defines the response for the upcoming-reviews endpoint.
type UpcomingResponse struct {
	Days   int                  `json:"days"`
	Groups []*srs.UpcomingGroup `json:"groups"`
}

// HistoryResponse defines the response for the per-card review history
// endpoint. Entries are ordered newest first.
type HistoryResponse struct {
	Entries []*domain.ReviewLog `json:"entries"`
}

// ReviewHandler handles review-related HTTP requests: outcomes, test
// results, reactivation, and the upcoming view.
type ReviewHandler struct {
	reviewService review.Service
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.Service, logger *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// SubmitReview handles POST /cards/{id}/review requests. It applies a
// success/failure outcome to the card's schedule.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := requireUserAndCardID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeOutcome(w, r)
	if !ok {
		return
	}

	card, err := h.reviewService.SubmitOutcome(r.Context(), userID, cardID, *req.IsSuccess)
	if err != nil {
		HandleServiceError(w, r, err, "")
		return
	}

	log.Debug("review outcome applied",
		slog.String("card_id", cardID.String()),
		slog.Bool("is_success", *req.IsSuccess),
		slog.Int("review_step", card.ReviewStep),
		slog.String("review_status", string(card.ReviewStatus)))
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// RecordTestResult handles POST /cards/{id}/test-result requests. Counters
// and streak move; the review schedule does not.
func (h *ReviewHandler) RecordTestResult(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := requireUserAndCardID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeOutcome(w, r)
	if !ok {
		return
	}

	card, err := h.reviewService.RecordTestResult(r.Context(), userID, cardID, *req.IsSuccess)
	if err != nil {
		HandleServiceError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// Reactivate handles POST /cards/{id}/reactivate requests, the explicit
// "add back to review" override.
func (h *ReviewHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, cardID, ok := requireUserAndCardID(w, r)
	if !ok {
		return
	}

	card, err := h.reviewService.Reactivate(r.Context(), userID, cardID)
	if err != nil {
		HandleServiceError(w, r, err, "")
		return
	}

	log.Debug("card reactivated", slog.String("card_id", cardID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// GetUpcoming handles GET /reviews/upcoming?days=N requests. days defaults
// to 0, meaning "due right now".
func (h *ReviewHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > maxUpcomingDays {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid days parameter")
			return
		}
		days = parsed
	}

	groups, err := h.reviewService.GetUpcoming(r.Context(), userID, time.Duration(days)*24*time.Hour)
	if err != nil {
		HandleServiceError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UpcomingResponse{
		Days:   days,
		Groups: groups,
	})
}

// GetHistory handles GET /cards/{id}/review-logs requests, returning the
// card's review log entries newest first.
func (h *ReviewHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := requireUserAndCardID(w, r)
	if !ok {
		return
	}

	entries, err := h.reviewService.ListHistory(r.Context(), userID, cardID)
	if err != nil {
		HandleServiceError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HistoryResponse{Entries: entries})
}

// decodeOutcome parses and validates the shared outcome payload, writing an
// error response and returning false on failure.
func (h *ReviewHandler) decodeOutcome(w http.ResponseWriter, r *http.Request) (ReviewOutcomeRequest, bool) {
	var req ReviewOutcomeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return req, false
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return req, false
	}

	return req, true
}
