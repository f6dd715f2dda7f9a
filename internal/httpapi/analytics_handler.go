package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/niki241/NeuroBridge-New/internal/analytics"
	"github.com/niki241/NeuroBridge-New/pkg/auth"
)

// RegisterAnalyticsRoutes wires daily-record and trend routes onto the provided router.
func RegisterAnalyticsRoutes(r chi.Router, svc *analytics.Service) {
	h := &analyticsHandler{service: svc}

	r.Route("/v1/analytics", func(r chi.Router) {
		r.Put("/daily", h.recordDaily)
		r.Get("/daily", h.getRange)
		r.Get("/summary/weekly", h.weeklySummary)
		r.Get("/mood", h.moodDistribution)
		r.Get("/effort/weekly", h.weeklyEffort)
		r.Get("/emotion/weekly", h.weeklyEmotion)
		r.Get("/overview", h.overview)
	})
}

type analyticsHandler struct {
	service *analytics.Service
}

func (h *analyticsHandler) recordDaily(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var input analytics.RecordDailyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.service.RecordDaily(r.Context(), user.UserID, input)
	if err != nil {
		respondAnalyticsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *analyticsHandler) getRange(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	days, err := daysParam(r, 7)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.service.Range(r.Context(), user.UserID, days)
	if err != nil {
		respondAnalyticsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *analyticsHandler) weeklySummary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.service.WeeklySummary(r.Context(), user.UserID)
	if err != nil {
		respondAnalyticsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *analyticsHandler) moodDistribution(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	days, err := daysParam(r, 7)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	distribution, err := h.service.MoodDistribution(r.Context(), user.UserID, days)
	if err != nil {
		respondAnalyticsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, distribution)
}

func (h *analyticsHandler) weeklyEffort(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	series, err := h.service.WeeklyEffort(r.Context(), user.UserID)
	if err != nil {
		respondAnalyticsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (h *analyticsHandler) weeklyEmotion(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	series, err := h.service.WeeklyEmotion(r.Context(), user.UserID)
	if err != nil {
		respondAnalyticsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (h *analyticsHandler) overview(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	overview, err := h.service.Overview(r.Context(), user.UserID)
	if err != nil {
		respondAnalyticsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func daysParam(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return fallback, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return 0, errors.New("days must be a positive integer")
	}
	return days, nil
}

func respondAnalyticsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analytics.ErrMissingUserID),
		errors.Is(err, analytics.ErrInvalidRange),
		errors.Is(err, analytics.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
