package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/learn", func(r chi.Router) {
			r.Get("/next", s.handleLearnNext)
			r.Post("/submit", s.handleLearnSubmit)
			r.Get("/stats", s.handleLearnStats)
		})

		r.Route("/questions", func(r chi.Router) {
			r.Post("/", s.handleCreateQuestion)
			r.Get("/", s.handleListQuestions)
			r.Post("/refine", s.handleRefineQuestion)
			r.Get("/{id}", s.handleGetQuestion)
			r.Put("/{id}", s.handleUpdateQuestion)
			r.Delete("/{id}", s.handleDeleteQuestion)
		})

		r.Route("/math", func(r chi.Router) {
			r.Get("/templates", s.handleMathTemplates)
			r.Get("/topics", s.handleMathTopics)
			r.Get("/next", s.handleMathNext)
			r.Post("/submit", s.handleMathSubmit)
			r.Get("/history", s.handleMathHistory)
			r.Get("/stats", s.handleMathStats)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/llm-mode", s.handleGetLLMMode)
			r.Put("/llm-mode", s.handleSetLLMMode)
		})
	})

	return r
}
