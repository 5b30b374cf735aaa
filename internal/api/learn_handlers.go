package api

import (
	"net/http"

	"github.com/dwalsh/recall/internal/errors"
	"github.com/dwalsh/recall/internal/logger"
	"github.com/dwalsh/recall/internal/models"
)

func (s *Server) handleLearnNext(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	focus := r.URL.Query().Get("focus")

	item, err := s.Learn.Next(r.Context(), topic, focus)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, item)
}

// submitRequest is the unified review body. question_type picks the pool:
// "regular" submits against question_id, "math" against math_question_id.
type submitRequest struct {
	QuestionType   string `json:"question_type"`
	QuestionID     int64  `json:"question_id"`
	MathQuestionID string `json:"math_question_id"`
	UserAnswer     string `json:"user_answer"`
}

func (s *Server) handleLearnSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	log := logger.FromContext(r.Context())
	log.Debug("review submitted: type=%s", req.QuestionType)

	var result *models.ReviewResult
	var err error
	switch req.QuestionType {
	case models.ItemKindMath:
		if req.MathQuestionID == "" {
			handleError(w, r, errors.NewValidationError("math_question_id", "required for math submissions"))
			return
		}
		result, err = s.Learn.SubmitMath(r.Context(), req.MathQuestionID, req.UserAnswer)
	case models.ItemKindRegular:
		if req.QuestionID == 0 {
			handleError(w, r, errors.NewValidationError("question_id", "required for regular submissions"))
			return
		}
		result, err = s.Learn.SubmitRegular(r.Context(), req.QuestionID, req.UserAnswer)
	default:
		handleError(w, r, errors.NewValidationError("question_type", "must be regular or math"))
		return
	}
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleLearnStats(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	focus := r.URL.Query().Get("focus")

	stats, err := s.Learn.Stats(r.Context(), topic, focus)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}
