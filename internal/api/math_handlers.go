package api

import (
	"net/http"

	"github.com/dwalsh/recall/internal/errors"
	"github.com/dwalsh/recall/internal/mathgen"
)

func (s *Server) handleMathTemplates(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	templates := s.Math.Templates(topic)
	respondJSON(w, r, http.StatusOK, map[string]any{
		"templates": templates,
		"count":     len(templates),
	})
}

func (s *Server) handleMathTopics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]any{"topics": s.Math.Topics()})
}

func (s *Server) handleMathNext(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	templateType := r.URL.Query().Get("template_type")

	q, err := s.Math.NextQuestion(r.Context(), topic, templateType)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, q)
}

type mathSubmitRequest struct {
	MathQuestionID string `json:"math_question_id"`
	UserAnswer     string `json:"user_answer"`
}

func (s *Server) handleMathSubmit(w http.ResponseWriter, r *http.Request) {
	var req mathSubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.MathQuestionID == "" {
		handleError(w, r, errors.NewValidationError("math_question_id", "must not be empty"))
		return
	}

	answer, err := mathgen.ParseAnswer(req.UserAnswer)
	if err != nil {
		handleError(w, r, errors.NewUnparseableAnswerError(req.UserAnswer))
		return
	}

	result, err := s.Math.SubmitAnswer(r.Context(), req.MathQuestionID, answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleMathHistory(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit")

	entries, err := s.Math.History(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"reviews": entries,
		"count":   len(entries),
	})
}

func (s *Server) handleMathStats(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")

	stats, err := s.Math.Stats(r.Context(), topic)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}
