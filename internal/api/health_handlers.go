package api

import (
	"net/http"
)

// handleHealth is a liveness probe. It reports the process is up; it does
// not check collaborators, which are allowed to be down between reviews.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
