package api

import (
	"github.com/dwalsh/recall/internal/services"
)

type Server struct {
	Learn     services.LearnService
	Questions services.QuestionService
	Math      services.MathService
	Settings  services.SettingsService
}

func NewServer(
	learn services.LearnService,
	questions services.QuestionService,
	math services.MathService,
	settings services.SettingsService,
) *Server {
	return &Server{
		Learn:     learn,
		Questions: questions,
		Math:      math,
		Settings:  settings,
	}
}
