package services

import (
	"context"
	"time"

	"github.com/dwalsh/recall/internal/errors"
	"github.com/dwalsh/recall/internal/llm"
	"github.com/dwalsh/recall/internal/logger"
	"github.com/dwalsh/recall/internal/mathgen"
	"github.com/dwalsh/recall/internal/models"
	"github.com/dwalsh/recall/internal/repository"
	"github.com/dwalsh/recall/internal/scheduler"
	"github.com/dwalsh/recall/internal/srs"
)

// LearnService orchestrates the unified review session over both pools
type LearnService interface {
	Next(ctx context.Context, topic, focus string) (*models.LearnItem, error)
	SubmitRegular(ctx context.Context, questionID int64, userAnswer string) (*models.ReviewResult, error)
	SubmitMath(ctx context.Context, mathQuestionID, userAnswer string) (*models.ReviewResult, error)
	Stats(ctx context.Context, topic, focus string) (*models.LearnStats, error)
}

type learnService struct {
	questionRepo repository.QuestionRepository
	reviewRepo   repository.ReviewRepository
	math         MathService
	builder      *scheduler.Builder
	llm          llm.ClientInterface
	rephrase     bool
	now          func() time.Time
	rng          mathgen.Rand
}

// NewLearnService creates a new LearnService
func NewLearnService(
	questionRepo repository.QuestionRepository,
	progressRepo repository.TemplateProgressRepository,
	reviewRepo repository.ReviewRepository,
	math MathService,
	llmClient llm.ClientInterface,
	rephrase bool,
	now func() time.Time,
	rng mathgen.Rand,
) LearnService {
	return &learnService{
		questionRepo: questionRepo,
		reviewRepo:   reviewRepo,
		math:         math,
		builder:      scheduler.NewBuilder(questionRepo, progressRepo, rng),
		llm:          llmClient,
		rephrase:     rephrase,
		now:          now,
		rng:          rng,
	}
}

func collaboratorError(operation string, err error) *errors.AppError {
	if llm.IsTimeout(err) {
		return errors.NewCollaboratorTimeoutError(operation, err)
	}
	return errors.NewCollaboratorFailureError(operation, err)
}

func focusTag(focus string) string {
	if focus == scheduler.FocusWork {
		return "work"
	}
	return ""
}

// Next picks the next item to study. Reading never mutates schedule state;
// a learner can refresh as often as they like without burning reviews.
func (s *learnService) Next(ctx context.Context, topic, focus string) (*models.LearnItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("picking next item: topic=%s, focus=%s", topic, focus)

	filter := scheduler.Filter{Topic: topic, Focus: focus}
	candidates, err := s.builder.Build(ctx, filter, s.now())
	if err != nil {
		log.Error("failed to build candidates: %v", err)
		return nil, errors.NewInternalError(err)
	}

	selected, err := scheduler.Select(candidates, s.rng)
	if err != nil {
		log.Debug("no candidates available")
		return nil, errors.NewNoCandidatesError()
	}

	if selected.Kind == scheduler.KindTemplate {
		return s.nextMathItem(ctx, selected.TemplateType)
	}
	return s.nextRegularItem(ctx, selected.QuestionID)
}

func (s *learnService) nextRegularItem(ctx context.Context, questionID int64) (*models.LearnItem, error) {
	log := logger.FromContext(ctx)

	q, err := s.questionRepo.Get(ctx, questionID)
	if err != nil {
		log.Error("failed to get question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if q == nil {
		return nil, errors.NewNotFoundError("question", questionID)
	}

	displayText := q.QuestionText
	if s.rephrase {
		rephrased, err := s.llm.RephraseQuestion(ctx, q.QuestionText)
		if err != nil {
			// Presenting the original wording beats failing the read.
			log.Warn("rephrase failed, using original wording: %v", err)
		} else {
			displayText = rephrased
		}
	}

	return &models.LearnItem{
		QuestionType: models.ItemKindRegular,
		QuestionID:   q.ID,
		Topic:        q.Topic,
		DisplayText:  displayText,
		CreatedAt:    q.CreatedAt,
	}, nil
}

func (s *learnService) nextMathItem(ctx context.Context, templateType string) (*models.LearnItem, error) {
	q, err := s.math.GenerateFromTemplate(ctx, templateType)
	if err != nil {
		return nil, err
	}

	hint := ""
	if tmpl, lookupErr := mathgen.Lookup(templateType); lookupErr == nil {
		hint = tmpl.Hint
	}

	return &models.LearnItem{
		QuestionType:   models.ItemKindMath,
		MathQuestionID: q.ID,
		TemplateType:   q.TemplateType,
		Topic:          q.Topic,
		DisplayText:    q.DisplayText,
		Hint:           hint,
		CreatedAt:      q.CreatedAt,
	}, nil
}

// SubmitRegular grades a free-text answer through the LLM and advances the
// question's schedule. Grading must fully succeed before any state moves.
func (s *learnService) SubmitRegular(ctx context.Context, questionID int64, userAnswer string) (*models.ReviewResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting answer: question_id=%d", questionID)

	q, err := s.questionRepo.Get(ctx, questionID)
	if err != nil {
		log.Error("failed to get question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if q == nil {
		return nil, errors.NewNotFoundError("question", questionID)
	}

	fb, err := s.llm.GradeAnswer(ctx, q.QuestionText, userAnswer, q.AnswerText)
	if err != nil {
		return nil, collaboratorError("answer grading", err)
	}

	score := fb.Score
	if score == 0 {
		// The grader returned no usable score; treat as an average recall.
		score = 3
	}
	quality, err := srs.NormalizeScore(score)
	if err != nil {
		return nil, errors.NewInvalidOutcomeError(err)
	}

	now := s.now()
	updated, err := s.questionRepo.AdvanceSchedule(ctx, questionID, now, func(cur models.Schedule) models.Schedule {
		return srs.Advance(cur, quality, now)
	})
	if err != nil {
		log.Error("failed to advance question schedule: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if updated == nil {
		return nil, errors.NewNotFoundError("question", questionID)
	}
	log.Debug("question schedule advanced: id=%d, interval=%d", questionID, updated.IntervalDays)

	review := models.Review{
		QuestionID:  questionID,
		UserAnswer:  userAnswer,
		LLMFeedback: fb.Raw,
		Score:       score,
		CreatedAt:   now,
	}
	reviewID, err := s.reviewRepo.InsertReview(ctx, review)
	if err != nil {
		log.Error("failed to store review: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &models.ReviewResult{
		ID:           reviewID,
		QuestionType: models.ItemKindRegular,
		UserAnswer:   userAnswer,
		LLMFeedback:  fb.Raw,
		Score:        &score,
	}, nil
}

// SubmitMath parses the numeric answer and delegates grading to the math
// service. The exact answer is revealed only when the learner got it wrong.
func (s *learnService) SubmitMath(ctx context.Context, mathQuestionID, userAnswer string) (*models.ReviewResult, error) {
	parsed, err := mathgen.ParseAnswer(userAnswer)
	if err != nil {
		return nil, errors.NewUnparseableAnswerError(userAnswer)
	}

	result, err := s.math.SubmitAnswer(ctx, mathQuestionID, parsed)
	if err != nil {
		return nil, err
	}

	out := &models.ReviewResult{
		ID:           result.ID,
		QuestionType: models.ItemKindMath,
		UserAnswer:   userAnswer,
		LLMFeedback:  result.LLMFeedback,
		IsCorrect:    &result.IsCorrect,
	}
	if !result.IsCorrect {
		out.CorrectAnswer = &result.CorrectAnswer
	}
	return out, nil
}

func (s *learnService) Stats(ctx context.Context, topic, focus string) (*models.LearnStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing learn stats: topic=%s, focus=%s", topic, focus)

	stats, err := s.questionRepo.Stats(ctx, topic, focusTag(focus), s.now())
	if err != nil {
		log.Error("failed to compute learn stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}
