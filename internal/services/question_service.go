package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dwalsh/recall/internal/errors"
	"github.com/dwalsh/recall/internal/llm"
	"github.com/dwalsh/recall/internal/logger"
	"github.com/dwalsh/recall/internal/models"
	"github.com/dwalsh/recall/internal/repository"
	"github.com/dwalsh/recall/internal/srs"
)

// QuestionInput is the caller-supplied part of a question. Schedule state
// is owned by the system and never set through it.
type QuestionInput struct {
	QuestionText string
	AnswerText   *string
	Topic        string
	Tags         []string
}

// QuestionService handles question pool management
type QuestionService interface {
	Create(ctx context.Context, input QuestionInput) (*models.Question, error)
	Get(ctx context.Context, id int64) (*models.Question, error)
	List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	Update(ctx context.Context, id int64, input QuestionInput) (*models.Question, error)
	Delete(ctx context.Context, id int64) error
	Refine(ctx context.Context, topic, question, answer string) (*llm.RefinedQA, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	llm          llm.ClientInterface
	now          func() time.Time
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(questionRepo repository.QuestionRepository, llmClient llm.ClientInterface, now func() time.Time) QuestionService {
	return &questionService{questionRepo: questionRepo, llm: llmClient, now: now}
}

func validateQuestionInput(input QuestionInput) *errors.AppError {
	if input.QuestionText == "" {
		return errors.NewValidationError("question_text", "must not be empty")
	}
	if input.Topic == "" {
		return errors.NewValidationError("topic", "must not be empty")
	}
	return nil
}

func (s *questionService) Create(ctx context.Context, input QuestionInput) (*models.Question, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating question: topic=%s", input.Topic)

	if appErr := validateQuestionInput(input); appErr != nil {
		return nil, appErr
	}

	q := models.Question{
		QuestionText: input.QuestionText,
		AnswerText:   input.AnswerText,
		Topic:        input.Topic,
		Tags:         input.Tags,
		Schedule:     srs.NewSchedule(s.now()),
	}
	id, err := s.questionRepo.Insert(ctx, q)
	if err != nil {
		log.Error("failed to insert question: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.questionRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to load created question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if created == nil {
		return nil, errors.NewNotFoundError("question", id)
	}
	log.Info("question created: id=%d, topic=%s", id, created.Topic)
	return created, nil
}

func (s *questionService) Get(ctx context.Context, id int64) (*models.Question, error) {
	log := logger.FromContext(ctx)

	q, err := s.questionRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if q == nil {
		return nil, errors.NewNotFoundError("question", id)
	}
	return q, nil
}

func (s *questionService) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx)

	questions, err := s.questionRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return questions, nil
}

func (s *questionService) Update(ctx context.Context, id int64, input QuestionInput) (*models.Question, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating question: id=%d", id)

	if appErr := validateQuestionInput(input); appErr != nil {
		return nil, appErr
	}

	q := models.Question{
		ID:           id,
		QuestionText: input.QuestionText,
		AnswerText:   input.AnswerText,
		Topic:        input.Topic,
		Tags:         input.Tags,
	}
	if err := s.questionRepo.Update(ctx, q); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("question", id)
		}
		log.Error("failed to update question: %v", err)
		return nil, errors.NewInternalError(err)
	}

	updated, err := s.questionRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to load updated question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if updated == nil {
		return nil, errors.NewNotFoundError("question", id)
	}
	return updated, nil
}

func (s *questionService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting question: id=%d", id)

	if err := s.questionRepo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError("question", id)
		}
		log.Error("failed to delete question: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("question deleted: id=%d", id)
	return nil
}

// Refine polishes a rough question/answer pair into study material.
func (s *questionService) Refine(ctx context.Context, topic, question, answer string) (*llm.RefinedQA, error) {
	log := logger.FromContext(ctx)
	log.Debug("refining q&a: topic=%s", topic)

	if question == "" {
		return nil, errors.NewValidationError("question", "must not be empty")
	}

	refined, err := s.llm.RefineQA(ctx, topic, question, answer)
	if err != nil {
		return nil, collaboratorError("q&a refinement", err)
	}
	return refined, nil
}
