package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/habitboard/habitboard/internal/ctxkeys"
	"github.com/habitboard/habitboard/internal/service"
)

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	export, err := h.exportService.Export(user.ID, r.URL.Query().Get("format"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.Data); err != nil {
		slog.Warn("failed to write export", "error", err, "user_id", user.ID)
	}
}

func (h *ExportHandler) Archive(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	url, err := h.exportService.Archive(r.Context(), user.ID, r.URL.Query().Get("format"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
