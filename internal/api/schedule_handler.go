package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/cihanisildar/dailingo-api/internal/api/shared"
	"github.com/cihanisildar/dailingo-api/internal/platform/logger"
	"github.com/cihanisildar/dailingo-api/internal/service/schedule"
)

// ScheduleHandler handles interval table HTTP requests.
type ScheduleHandler struct {
	scheduleService schedule.Service
	validator       *validator.Validate
	logger          *slog.Logger
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService schedule.Service, logger *slog.Logger) *ScheduleHandler {
	if scheduleService == nil {
		panic("scheduleService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ScheduleHandler{
		scheduleService: scheduleService,
		validator:       validator.New(),
		logger:          logger.With(slog.String("component", "schedule_handler")),
	}
}

// GetSchedule handles GET /review-schedule requests. First access seeds the
// default interval table.
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	s, err := h.scheduleService.GetOrCreate(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err, "Failed to get review schedule")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ScheduleResponse{Intervals: s.Intervals})
}

// UpdateSchedule handles PUT /review-schedule requests, replacing the
// caller's interval table.
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req UpdateScheduleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	s, err := h.scheduleService.Update(r.Context(), userID, req.Intervals)
	if err != nil {
		HandleServiceError(w, r, err, "")
		return
	}

	log.Debug("interval table updated",
		slog.String("user_id", userID.String()),
		slog.Int("interval_count", len(s.Intervals)))
	shared.RespondWithJSON(w, r, http.StatusOK, ScheduleResponse{Intervals: s.Intervals})
}
