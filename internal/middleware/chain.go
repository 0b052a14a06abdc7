package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Chain applies middleware so they execute in the order given:
//
//	handler := Chain(mux,
//	    Recover,        // outermost
//	    RequestLogging,
//	    CORS(origins),
//	)
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		slog.Warn("failed to encode error response", "error", err, "status", status)
	}
}
