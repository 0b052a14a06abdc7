package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/habitboard/habitboard/internal/ctxkeys"
	"github.com/habitboard/habitboard/internal/model"
	"github.com/habitboard/habitboard/internal/service"
)

type StreakHandler struct {
	streakService *service.StreakService
}

func NewStreakHandler(streakService *service.StreakService) *StreakHandler {
	return &StreakHandler{streakService: streakService}
}

func (h *StreakHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	streaks, err := h.streakService.Streaks(user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, streaks)
}

// Recalculate rebuilds one domain's streak when domainId is given, otherwise
// every domain of the user. An empty body counts as "all".
func (h *StreakHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		DomainID string `json:"domainId"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.DomainID != "" {
		result, err := h.streakService.RecalculateForUser(user.ID, req.DomainID)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, []*model.Streak{result})
		return
	}

	results, err := h.streakService.RecalculateAll(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
