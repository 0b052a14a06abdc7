package handler

import (
	"net/http"

	"github.com/habitboard/habitboard/internal/ctxkeys"
	"github.com/habitboard/habitboard/internal/service"
)

type DomainHandler struct {
	domainService *service.DomainService
}

func NewDomainHandler(domainService *service.DomainService) *DomainHandler {
	return &DomainHandler{domainService: domainService}
}

type domainRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type domainPatch struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

func (h *DomainHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	domains, err := h.domainService.Domains(user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domains)
}

func (h *DomainHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req domainRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	domain, err := h.domainService.Create(user.ID, req.Name, req.Color, req.Icon)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, domain)
}

func (h *DomainHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	domain, err := h.domainService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain)
}

func (h *DomainHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req domainPatch
	if !decodeJSON(w, r, &req) {
		return
	}

	domain, err := h.domainService.Update(user.ID, r.PathValue("id"), service.DomainUpdate{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, domain)
}

func (h *DomainHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.domainService.Delete(user.ID, r.PathValue("id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DomainHandler) Templates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.domainService.Templates())
}

func (h *DomainHandler) CreateFromTemplates(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Templates []string `json:"templates"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	domains, err := h.domainService.CreateFromTemplates(user.ID, req.Templates)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, domains)
}
