package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/workout-tracker/internal/application"
)

type workoutService interface {
	RecordWorkout(ctx context.Context, principal application.Principal, date time.Time) (application.WorkoutDay, error)
	ListWorkoutDays(ctx context.Context, principal application.Principal) ([]application.WorkoutDay, error)
	WeeklySummary(ctx context.Context, principal application.Principal) (application.WeeklySummary, error)
	MonthWorkouts(ctx context.Context, principal application.Principal, year int, month time.Month) ([]application.WorkoutDay, error)
	MonthStats(ctx context.Context, principal application.Principal) (application.MonthStats, error)
	DeleteWorkout(ctx context.Context, principal application.Principal, date time.Time) error
}

// WorkoutHandler serves the authenticated /api/workouts endpoints.
type WorkoutHandler struct {
	service   workoutService
	responder responder
	logger    *slog.Logger
}

func NewWorkoutHandler(service workoutService, logger *slog.Logger) *WorkoutHandler {
	base := defaultLogger(logger)
	return &WorkoutHandler{service: service, responder: newResponder(base), logger: base}
}

// List returns every recorded workout date for the caller.
func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	days, err := h.service.ListWorkoutDays(r.Context(), principal)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toWorkoutPayloads(days))
}

// Record stores a workout entry. An empty date defaults to today and
// re-recording an existing date succeeds without duplicating.
func (h *WorkoutHandler) Record(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req recordWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	var date time.Time
	if trimmed := strings.TrimSpace(req.Date); trimmed != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, trimmed, time.UTC)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
			return
		}
		date = parsed
	}

	principal, _ := PrincipalFromContext(r.Context())

	day, err := h.service.RecordWorkout(r.Context(), principal, date)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toWorkoutPayload(day))
}

// Summary reports the number of days worked out in the current Monday-start week.
func (h *WorkoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	summary, err := h.service.WeeklySummary(r.Context(), principal)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, weeklySummaryPayload{
		WeekStart:     summary.WeekStart.Format(time.DateOnly),
		DaysWorkedOut: summary.DaysWorkedOut,
	})
}

// Month lists the entries inside a month; defaults to the current month.
func (h *WorkoutHandler) Month(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var year int
	var month time.Month
	query := r.URL.Query()
	if raw := strings.TrimSpace(query.Get("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
			return
		}
		year = parsed
	}
	if raw := strings.TrimSpace(query.Get("month")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
			return
		}
		month = time.Month(parsed)
	}

	principal, _ := PrincipalFromContext(r.Context())

	days, err := h.service.MonthWorkouts(r.Context(), principal, year, month)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toWorkoutPayloads(days))
}

// Stats reports month totals and the current streak.
func (h *WorkoutHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	stats, err := h.service.MonthStats(r.Context(), principal)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, monthStatsPayload{
		TotalDaysInMonth:  stats.TotalDaysInMonth,
		CompletedWorkouts: stats.CompletedWorkouts,
		CompletionRate:    stats.CompletionRate,
		CurrentStreak:     stats.CurrentStreak,
	})
}

// Delete removes the entry for the date in the URL path. Deletion is an
// explicit action; the daily prompt flow never reaches this handler.
func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	raw := chi.URLParam(r, "date")
	date, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	if err := h.service.DeleteWorkout(r.Context(), principal, date); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"message": "Workout deleted successfully",
	})
}

type recordWorkoutRequest struct {
	Date string `json:"date"`
}

type workoutPayload struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

type weeklySummaryPayload struct {
	WeekStart     string `json:"weekStart"`
	DaysWorkedOut int    `json:"daysWorkedOut"`
}

type monthStatsPayload struct {
	TotalDaysInMonth  int     `json:"totalDaysInMonth"`
	CompletedWorkouts int     `json:"completedWorkouts"`
	CompletionRate    float64 `json:"completionRate"`
	CurrentStreak     int     `json:"currentStreak"`
}

func toWorkoutPayload(day application.WorkoutDay) workoutPayload {
	return workoutPayload{ID: day.ID, Date: day.Date.Format(time.DateOnly)}
}

func toWorkoutPayloads(days []application.WorkoutDay) []workoutPayload {
	payloads := make([]workoutPayload, 0, len(days))
	for _, day := range days {
		payloads = append(payloads, toWorkoutPayload(day))
	}
	return payloads
}
