package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dwalsh/recall/internal/errors"
	"github.com/dwalsh/recall/internal/llm"
	"github.com/dwalsh/recall/internal/mathgen"
	"github.com/dwalsh/recall/internal/models"
	"github.com/dwalsh/recall/internal/services"
	"github.com/dwalsh/recall/internal/testutil/mocks"
)

func allTemplateTypes() []string {
	return mathgen.Names("")
}

type mathFixture struct {
	progress *mocks.MockTemplateProgressRepository
	math     *mocks.MockMathQuestionRepository
	reviews  *mocks.MockReviewRepository
	llm      *mocks.MockLLMClient
	svc      services.MathService
}

func newMathFixture() *mathFixture {
	f := &mathFixture{
		progress: new(mocks.MockTemplateProgressRepository),
		math:     new(mocks.MockMathQuestionRepository),
		reviews:  new(mocks.MockReviewRepository),
		llm:      new(mocks.MockLLMClient),
	}
	f.svc = services.NewMathService(f.progress, f.math, f.reviews, f.llm, fixedNow, testRand())
	return f
}

func (f *mathFixture) expectGeneration(displayText string) {
	f.llm.On("RenderWordProblem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(displayText, nil)
	f.math.On("Insert", mock.Anything, mock.Anything).Return(nil)
}

func TestTemplates_List(t *testing.T) {
	f := newMathFixture()

	all := f.svc.Templates("")
	assert.Len(t, all, 12)

	finance := f.svc.Templates("finance")
	require.Len(t, finance, 3)
	for _, info := range finance {
		assert.Equal(t, "finance", info.Topic)
		assert.NotEmpty(t, info.Concept)
		assert.NotEmpty(t, info.AsksFor)
	}

	assert.Equal(t, []string{"finance", "probability"}, f.svc.Topics())
}

func TestNextQuestion_ExplicitTemplate(t *testing.T) {
	f := newMathFixture()
	f.expectGeneration("A shop sells...")

	q, err := f.svc.NextQuestion(context.Background(), "", "compound_interest")
	require.NoError(t, err)

	assert.Equal(t, "compound_interest", q.TemplateType)
	assert.Equal(t, "finance", q.Topic)
	assert.Equal(t, "A shop sells...", q.DisplayText)
	assert.NotEmpty(t, q.ID)
	assert.NotZero(t, q.CorrectAnswer)

	f.progress.AssertNotCalled(t, "DueTemplateTypes", mock.Anything, mock.Anything, mock.Anything)
}

func TestNextQuestion_UnknownTemplate(t *testing.T) {
	f := newMathFixture()

	_, err := f.svc.NextQuestion(context.Background(), "", "cauchy_cdf")
	assert.Equal(t, apperrors.ErrCodeUnknownTemplate, appCode(t, err))
}

func TestNextQuestion_DueTemplateWins(t *testing.T) {
	f := newMathFixture()
	f.progress.On("DueTemplateTypes", mock.Anything, mathgen.Names(""), testNow).
		Return([]string{"exponential_cdf", "poisson_pmf"}, nil)
	f.expectGeneration("A machine fails...")

	q, err := f.svc.NextQuestion(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "exponential_cdf", q.TemplateType)
}

func TestNextQuestion_UntriedBeforeRandom(t *testing.T) {
	f := newMathFixture()
	names := mathgen.Names("finance")
	f.progress.On("DueTemplateTypes", mock.Anything, names, testNow).Return([]string{}, nil)
	f.progress.On("AttemptedTemplateTypes", mock.Anything, names).
		Return([]string{names[0]}, nil)
	f.expectGeneration("You invest...")

	q, err := f.svc.NextQuestion(context.Background(), "finance", "")
	require.NoError(t, err)
	assert.Equal(t, names[1], q.TemplateType)
}

func TestNextQuestion_RandomWhenAllTried(t *testing.T) {
	f := newMathFixture()
	names := mathgen.Names("finance")
	f.progress.On("DueTemplateTypes", mock.Anything, names, testNow).Return([]string{}, nil)
	f.progress.On("AttemptedTemplateTypes", mock.Anything, names).Return(names, nil)
	f.expectGeneration("You invest...")

	q, err := f.svc.NextQuestion(context.Background(), "finance", "")
	require.NoError(t, err)
	assert.Contains(t, names, q.TemplateType)
}

func TestNextQuestion_UnknownTopic(t *testing.T) {
	f := newMathFixture()

	_, err := f.svc.NextQuestion(context.Background(), "chemistry", "")
	assert.Equal(t, apperrors.ErrCodeNoCandidates, appCode(t, err))
}

func TestGenerate_CollaboratorFailureStoresNothing(t *testing.T) {
	f := newMathFixture()
	f.llm.On("RenderWordProblem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", llm.ErrTimeout)

	_, err := f.svc.GenerateFromTemplate(context.Background(), "poisson_pmf")
	assert.Equal(t, apperrors.ErrCodeCollaboratorTimeout, appCode(t, err))

	f.math.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestGenerate_FreshParamsEachCall(t *testing.T) {
	f := newMathFixture()
	f.expectGeneration("A call center...")

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		q, err := f.svc.GenerateFromTemplate(context.Background(), "normal_cdf")
		require.NoError(t, err)
		seen[q.ID] = true
		assert.Len(t, q.Params, 3)
	}
	assert.Len(t, seen, 5)
}

func TestSubmitAnswer_FeedbackFailureLeavesScheduleUntouched(t *testing.T) {
	f := newMathFixture()
	instance := &models.MathQuestion{
		ID:            "q-9",
		TemplateType:  "poisson_pmf",
		CorrectAnswer: 0.1465,
		DisplayText:   "A call center...",
	}
	f.math.On("Get", mock.Anything, "q-9").Return(instance, nil)
	f.llm.On("MathFeedback", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", assert.AnError)

	_, err := f.svc.SubmitAnswer(context.Background(), "q-9", 0.15)
	assert.Equal(t, apperrors.ErrCodeCollaboratorFailure, appCode(t, err))

	f.progress.AssertNotCalled(t, "AdvanceSchedule",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.reviews.AssertNotCalled(t, "InsertMathReview", mock.Anything, mock.Anything)
}

func TestSubmitAnswer_MissingInstance(t *testing.T) {
	f := newMathFixture()
	f.math.On("Get", mock.Anything, "gone").Return(nil, nil)

	_, err := f.svc.SubmitAnswer(context.Background(), "gone", 1.0)
	assert.Equal(t, apperrors.ErrCodeNotFound, appCode(t, err))
}

func TestSubmitAnswer_GradesWithinTolerance(t *testing.T) {
	f := newMathFixture()
	instance := &models.MathQuestion{
		ID:            "q-10",
		TemplateType:  "present_value",
		CorrectAnswer: 27919.74,
		DisplayText:   "Your aunt promises...",
	}
	f.math.On("Get", mock.Anything, "q-10").Return(instance, nil)
	f.llm.On("MathFeedback", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, true).
		Return("Nice.", nil)
	f.progress.On("AdvanceSchedule", mock.Anything, "present_value", true, testNow, mock.Anything).
		Return(&models.TemplateProgress{TemplateType: "present_value"}, nil)
	f.reviews.On("InsertMathReview", mock.Anything, mock.Anything).Return(int64(11), nil)

	// Money templates use an absolute tolerance of one unit.
	result, err := f.svc.SubmitAnswer(context.Background(), "q-10", 27919.0)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 27919.74, result.CorrectAnswer)
}

func TestStats_MergesProgressWithCatalog(t *testing.T) {
	f := newMathFixture()
	due := testNow.Add(-time.Hour)
	future := testNow.AddDate(0, 0, 3)
	f.progress.On("List", mock.Anything).Return([]models.TemplateProgress{
		{
			TemplateType:    "poisson_pmf",
			Schedule:        models.Schedule{EaseFactor: 2.6, IntervalDays: 3, NextReviewAt: future},
			TotalAttempts:   4,
			CorrectAttempts: 3,
		},
		{
			TemplateType:    "present_value",
			Schedule:        models.Schedule{EaseFactor: 2.3, IntervalDays: 0, NextReviewAt: due},
			TotalAttempts:   2,
			CorrectAttempts: 0,
		},
	}, nil)

	stats, err := f.svc.Stats(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 12, stats.Summary.TotalTemplates)
	// 10 untried templates plus the overdue one.
	assert.Equal(t, 11, stats.Summary.TemplatesDue)
	assert.Equal(t, 6, stats.Summary.TotalAttempts)
	assert.InDelta(t, 0.5, stats.Summary.OverallAccuracy, 1e-9)

	byType := map[string]models.TemplateProgressStat{}
	for _, s := range stats.Templates {
		byType[s.TemplateType] = s
	}

	tried := byType["poisson_pmf"]
	assert.False(t, tried.IsDue)
	assert.InDelta(t, 0.75, tried.Accuracy, 1e-9)
	require.NotNil(t, tried.NextReviewAt)

	untried := byType["normal_cdf"]
	assert.True(t, untried.IsDue)
	assert.Equal(t, 2.5, untried.EaseFactor)
	assert.Nil(t, untried.NextReviewAt)

	// Attempted templates sort before never-attempted ones.
	assert.Equal(t, "present_value", stats.Templates[0].TemplateType)
	assert.Equal(t, "poisson_pmf", stats.Templates[1].TemplateType)
}

func TestStats_TopicFilter(t *testing.T) {
	f := newMathFixture()
	f.progress.On("List", mock.Anything).Return([]models.TemplateProgress{}, nil)

	stats, err := f.svc.Stats(context.Background(), "finance")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Summary.TotalTemplates)
	assert.Equal(t, 3, stats.Summary.TemplatesDue)
	for _, s := range stats.Templates {
		assert.Equal(t, "finance", s.Topic)
	}
}
