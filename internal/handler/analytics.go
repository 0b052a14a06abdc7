package handler

import (
	"net/http"
	"strconv"

	"github.com/habitboard/habitboard/internal/ctxkeys"
	"github.com/habitboard/habitboard/internal/service"
	"github.com/habitboard/habitboard/internal/validation"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Dashboard serves the analytics payload for ?month=&year=, defaulting to the
// current month.
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	month, err := queryInt(r, "month")
	if err != nil {
		handleError(w, r, err)
		return
	}
	year, err := queryInt(r, "year")
	if err != nil {
		handleError(w, r, err)
		return
	}

	dashboard, err := h.analyticsService.Dashboard(user.ID, year, month)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &validation.Error{Field: name, Message: "must be a number"}
	}
	return n, nil
}
