package api

import (
	"net/http"
)

func (s *Server) handleGetLLMMode(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, s.Settings.LLMMode(r.Context()))
}

type llmModeRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) handleSetLLMMode(w http.ResponseWriter, r *http.Request) {
	var req llmModeRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	mode, err := s.Settings.SetLLMMode(r.Context(), req.Mode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, mode)
}
