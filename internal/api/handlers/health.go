package handlers

import (
	"net/http"
	"time"

	"github.com/codenuga/ledger-api/internal/api/middleware"
)

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
