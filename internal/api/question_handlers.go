package api

import (
	"net/http"

	"github.com/dwalsh/recall/internal/models"
	"github.com/dwalsh/recall/internal/services"
)

type questionRequest struct {
	QuestionText string   `json:"question_text"`
	AnswerText   *string  `json:"answer_text"`
	Topic        string   `json:"topic"`
	Tags         []string `json:"tags"`
}

func (req questionRequest) input() services.QuestionInput {
	return services.QuestionInput{
		QuestionText: req.QuestionText,
		AnswerText:   req.AnswerText,
		Topic:        req.Topic,
		Tags:         req.Tags,
	}
}

func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	q, err := s.Questions.Create(r.Context(), req.input())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, q)
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	filter := models.QuestionFilter{
		Topic: r.URL.Query().Get("topic"),
		Tag:   r.URL.Query().Get("tag"),
		Limit: intQuery(r, "limit"),
	}

	questions, err := s.Questions.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"questions": questions,
		"count":     len(questions),
	})
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	q, err := s.Questions.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, q)
}

func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req questionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	q, err := s.Questions.Update(r.Context(), id, req.input())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, q)
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Questions.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"deleted": id})
}

type refineRequest struct {
	Topic    string `json:"topic"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (s *Server) handleRefineQuestion(w http.ResponseWriter, r *http.Request) {
	var req refineRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	refined, err := s.Questions.Refine(r.Context(), req.Topic, req.Question, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"question": refined.Question,
		"answer":   refined.Answer,
	})
}
