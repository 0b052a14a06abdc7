package handler

import (
	"net/http"

	"github.com/habitboard/habitboard/internal/ctxkeys"
	"github.com/habitboard/habitboard/internal/repository"
	"github.com/habitboard/habitboard/internal/service"
)

type CompletionHandler struct {
	completionService *service.CompletionService
}

func NewCompletionHandler(completionService *service.CompletionService) *CompletionHandler {
	return &CompletionHandler{completionService: completionService}
}

type completionRequest struct {
	DomainID string `json:"domainId"`
	Date     string `json:"date"`
}

func (h *CompletionHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	q := r.URL.Query()

	completions, err := h.completionService.List(user.ID, repository.CompletionFilter{
		DomainID:  q.Get("domainId"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, completions)
}

func (h *CompletionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req completionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	completion, err := h.completionService.Create(user.ID, req.DomainID, req.Date)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, completion)
}

func (h *CompletionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req completionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.completionService.Toggle(user.ID, req.DomainID, req.Date)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *CompletionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.completionService.Delete(user.ID, r.PathValue("id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
