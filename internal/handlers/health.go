package handlers

import "net/http"

// HealthResponse represents the health check payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health reports service liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
