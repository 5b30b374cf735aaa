package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dwalsh/recall/internal/errors"
	"github.com/dwalsh/recall/internal/llm"
	"github.com/dwalsh/recall/internal/logger"
	"github.com/dwalsh/recall/internal/mathgen"
	"github.com/dwalsh/recall/internal/models"
	"github.com/dwalsh/recall/internal/repository"
	"github.com/dwalsh/recall/internal/srs"
)

// MathService handles math problem generation, grading and template stats
type MathService interface {
	Templates(topic string) []models.TemplateInfo
	Topics() []string
	NextQuestion(ctx context.Context, topic, templateType string) (*models.MathQuestion, error)
	GenerateFromTemplate(ctx context.Context, templateType string) (*models.MathQuestion, error)
	SubmitAnswer(ctx context.Context, mathQuestionID string, userAnswer float64) (*models.MathSubmitResult, error)
	History(ctx context.Context, limit int) ([]models.MathHistoryEntry, error)
	Stats(ctx context.Context, topic string) (*models.MathStats, error)
}

type mathService struct {
	progressRepo repository.TemplateProgressRepository
	mathRepo     repository.MathQuestionRepository
	reviewRepo   repository.ReviewRepository
	llm          llm.ClientInterface
	now          func() time.Time
	rng          mathgen.Rand
}

// NewMathService creates a new MathService
func NewMathService(
	progressRepo repository.TemplateProgressRepository,
	mathRepo repository.MathQuestionRepository,
	reviewRepo repository.ReviewRepository,
	llmClient llm.ClientInterface,
	now func() time.Time,
	rng mathgen.Rand,
) MathService {
	return &mathService{
		progressRepo: progressRepo,
		mathRepo:     mathRepo,
		reviewRepo:   reviewRepo,
		llm:          llmClient,
		now:          now,
		rng:          rng,
	}
}

func (s *mathService) Templates(topic string) []models.TemplateInfo {
	templates := mathgen.All()
	if topic != "" {
		templates = mathgen.ByTopic(topic)
	}

	infos := make([]models.TemplateInfo, 0, len(templates))
	for _, t := range templates {
		infos = append(infos, models.TemplateInfo{
			TemplateType: t.Name,
			Topic:        t.Topic,
			Concept:      t.Concept,
			AsksFor:      t.AsksFor,
		})
	}
	return infos
}

func (s *mathService) Topics() []string {
	return mathgen.Topics()
}

// NextQuestion generates a fresh problem: a requested template wins, then
// the most overdue template, then an untried one, then a random pick.
func (s *mathService) NextQuestion(ctx context.Context, topic, templateType string) (*models.MathQuestion, error) {
	log := logger.FromContext(ctx)
	log.Debug("selecting math template: topic=%s, template=%s", topic, templateType)

	if templateType != "" {
		return s.GenerateFromTemplate(ctx, templateType)
	}

	available := mathgen.Names(topic)
	if len(available) == 0 {
		return nil, errors.NewNoCandidatesError()
	}

	now := s.now()
	due, err := s.progressRepo.DueTemplateTypes(ctx, available, now)
	if err != nil {
		log.Error("failed to query due templates: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(due) > 0 {
		return s.GenerateFromTemplate(ctx, due[0])
	}

	attempted, err := s.progressRepo.AttemptedTemplateTypes(ctx, available)
	if err != nil {
		log.Error("failed to query attempted templates: %v", err)
		return nil, errors.NewInternalError(err)
	}
	tried := make(map[string]bool, len(attempted))
	for _, tt := range attempted {
		tried[tt] = true
	}
	for _, tt := range available {
		if !tried[tt] {
			return s.GenerateFromTemplate(ctx, tt)
		}
	}

	return s.GenerateFromTemplate(ctx, available[s.rng.IntN(len(available))])
}

// GenerateFromTemplate samples fresh parameters, computes the exact answer
// and persists a new question instance. The instance carries the answer in
// storage only; callers never return it before grading.
func (s *mathService) GenerateFromTemplate(ctx context.Context, templateType string) (*models.MathQuestion, error) {
	log := logger.FromContext(ctx)

	tmpl, err := mathgen.Lookup(templateType)
	if err != nil {
		return nil, errors.NewUnknownTemplateError(templateType)
	}

	params := mathgen.Sample(tmpl, s.rng)
	answer := tmpl.Compute(params)

	displayText, err := s.llm.RenderWordProblem(ctx, tmpl.Concept, params, tmpl.AsksFor, tmpl.Example)
	if err != nil {
		return nil, collaboratorError("word problem generation", err)
	}

	q := models.MathQuestion{
		ID:            uuid.NewString(),
		TemplateType:  tmpl.Name,
		Topic:         tmpl.Topic,
		Params:        params,
		CorrectAnswer: answer,
		DisplayText:   displayText,
		CreatedAt:     s.now(),
	}
	if err := s.mathRepo.Insert(ctx, q); err != nil {
		log.Error("failed to store math question: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Debug("generated math question: id=%s, template=%s", q.ID, q.TemplateType)
	return &q, nil
}

// SubmitAnswer grades against the stored instance and advances the
// template's schedule. The schedule only moves after grading and feedback
// succeed; a collaborator failure leaves it untouched.
func (s *mathService) SubmitAnswer(ctx context.Context, mathQuestionID string, userAnswer float64) (*models.MathSubmitResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting math answer: id=%s", mathQuestionID)

	q, err := s.mathRepo.Get(ctx, mathQuestionID)
	if err != nil {
		log.Error("failed to get math question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if q == nil {
		return nil, errors.NewNotFoundError("math question", mathQuestionID)
	}

	tmpl, err := mathgen.Lookup(q.TemplateType)
	if err != nil {
		return nil, errors.NewUnknownTemplateError(q.TemplateType)
	}

	isCorrect := tmpl.Grade(q.CorrectAnswer, userAnswer)
	log.Debug("graded math answer: correct=%t, template=%s", isCorrect, q.TemplateType)

	feedback, err := s.llm.MathFeedback(ctx, q.DisplayText, tmpl.Concept, q.CorrectAnswer, userAnswer, isCorrect)
	if err != nil {
		return nil, collaboratorError("math feedback", err)
	}

	now := s.now()
	quality := srs.NormalizeCorrect(isCorrect)
	if _, err := s.progressRepo.AdvanceSchedule(ctx, q.TemplateType, isCorrect, now, func(cur models.Schedule) models.Schedule {
		return srs.Advance(cur, quality, now)
	}); err != nil {
		log.Error("failed to advance template schedule: %v", err)
		return nil, errors.NewInternalError(err)
	}

	review := models.MathReview{
		MathQuestionID: q.ID,
		UserAnswer:     userAnswer,
		IsCorrect:      isCorrect,
		LLMFeedback:    feedback,
		CreatedAt:      now,
	}
	reviewID, err := s.reviewRepo.InsertMathReview(ctx, review)
	if err != nil {
		log.Error("failed to store math review: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &models.MathSubmitResult{
		ID:             reviewID,
		MathQuestionID: q.ID,
		TemplateType:   q.TemplateType,
		UserAnswer:     userAnswer,
		IsCorrect:      isCorrect,
		CorrectAnswer:  q.CorrectAnswer,
		LLMFeedback:    feedback,
		CreatedAt:      now,
	}, nil
}

func (s *mathService) History(ctx context.Context, limit int) ([]models.MathHistoryEntry, error) {
	log := logger.FromContext(ctx)

	entries, err := s.reviewRepo.MathHistory(ctx, limit)
	if err != nil {
		log.Error("failed to get math history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return entries, nil
}

// Stats reports per-template schedule state and accuracy. Templates that
// were never attempted appear with defaults and count as due.
func (s *mathService) Stats(ctx context.Context, topic string) (*models.MathStats, error) {
	log := logger.FromContext(ctx)

	progress, err := s.progressRepo.List(ctx)
	if err != nil {
		log.Error("failed to list template progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	byType := make(map[string]models.TemplateProgress, len(progress))
	for _, p := range progress {
		byType[p.TemplateType] = p
	}

	now := s.now()
	stats := &models.MathStats{Templates: []models.TemplateProgressStat{}}
	for _, tmpl := range mathgen.All() {
		if topic != "" && tmpl.Topic != topic {
			continue
		}

		stat := models.TemplateProgressStat{
			TemplateType: tmpl.Name,
			Concept:      tmpl.Concept,
			Topic:        tmpl.Topic,
			EaseFactor:   srs.InitialEase,
			IsDue:        true,
		}
		if p, ok := byType[tmpl.Name]; ok {
			next := p.NextReviewAt
			stat.EaseFactor = p.EaseFactor
			stat.IntervalDays = p.IntervalDays
			stat.NextReviewAt = &next
			stat.TotalAttempts = p.TotalAttempts
			stat.CorrectAttempts = p.CorrectAttempts
			stat.IsDue = !next.After(now)
			if p.TotalAttempts > 0 {
				stat.Accuracy = float64(p.CorrectAttempts) / float64(p.TotalAttempts)
			}
		}

		stats.Templates = append(stats.Templates, stat)
		stats.Summary.TotalTemplates++
		if stat.IsDue {
			stats.Summary.TemplatesDue++
		}
		stats.Summary.TotalAttempts += stat.TotalAttempts
	}

	totalCorrect := 0
	for _, t := range stats.Templates {
		totalCorrect += t.CorrectAttempts
	}
	if stats.Summary.TotalAttempts > 0 {
		stats.Summary.OverallAccuracy = float64(totalCorrect) / float64(stats.Summary.TotalAttempts)
	}

	// Most overdue first, never-attempted templates at the end.
	sort.SliceStable(stats.Templates, func(i, j int) bool {
		a, b := stats.Templates[i].NextReviewAt, stats.Templates[j].NextReviewAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	return stats, nil
}
