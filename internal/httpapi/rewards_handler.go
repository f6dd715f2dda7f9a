package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niki241/NeuroBridge-New/internal/rewards"
	"github.com/niki241/NeuroBridge-New/pkg/auth"
)

// RegisterRewardRoutes wires progress and badge routes onto the provided router.
func RegisterRewardRoutes(r chi.Router, svc *rewards.Service) {
	h := &rewardsHandler{service: svc}

	r.Route("/v1/rewards", func(r chi.Router) {
		r.Get("/", h.get)
		r.Post("/session", h.startSession)
		r.Post("/activities", h.completeActivity)
		r.Post("/focus", h.addFocusTime)
		r.Post("/xp", h.addXP)
		r.Post("/badges/{badgeID}", h.awardBadge)
	})
}

type rewardsHandler struct {
	service *rewards.Service
}

type completeActivityRequest struct {
	ActivityType string `json:"activityType"`
}

type focusTimeRequest struct {
	Minutes int `json:"minutes"`
}

type addXPRequest struct {
	Amount int `json:"amount"`
}

func (h *rewardsHandler) get(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	snapshot, err := h.service.Get(r.Context(), user.UserID)
	if err != nil {
		respondRewardsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *rewardsHandler) startSession(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	snapshot, err := h.service.StartSession(r.Context(), user.UserID)
	if err != nil {
		respondRewardsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *rewardsHandler) completeActivity(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req completeActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ActivityType == "" {
		writeError(w, http.StatusBadRequest, "activityType is required")
		return
	}

	snapshot, err := h.service.CompleteActivity(r.Context(), user.UserID, req.ActivityType)
	if err != nil {
		respondRewardsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *rewardsHandler) addFocusTime(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req focusTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snapshot, err := h.service.AddFocusTime(r.Context(), user.UserID, req.Minutes)
	if err != nil {
		respondRewardsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *rewardsHandler) addXP(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req addXPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snapshot, err := h.service.AddXP(r.Context(), user.UserID, req.Amount)
	if err != nil {
		respondRewardsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *rewardsHandler) awardBadge(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	badgeID := chi.URLParam(r, "badgeID")
	if badgeID == "" {
		writeError(w, http.StatusBadRequest, "badge id is required")
		return
	}

	snapshot, err := h.service.AwardBadge(r.Context(), user.UserID, badgeID)
	if err != nil {
		respondRewardsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func respondRewardsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, rewards.ErrMissingUserID),
		errors.Is(err, rewards.ErrNegativeXP),
		errors.Is(err, rewards.ErrNegativeMinutes):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
