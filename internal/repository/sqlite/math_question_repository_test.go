package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/dwalsh/recall/internal/models"
	"github.com/dwalsh/recall/internal/repository"
	"github.com/dwalsh/recall/internal/repository/sqlite"
	"github.com/dwalsh/recall/internal/testutil"
)

type MathQuestionRepositorySuite struct {
	suite.Suite
	db      *sql.DB
	repo    repository.MathQuestionRepository
	reviews repository.ReviewRepository
}

func (s *MathQuestionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewMathQuestionRepository(s.db)
	s.reviews = sqlite.NewReviewRepository(s.db)
}

func (s *MathQuestionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *MathQuestionRepositorySuite) insertMathQuestion(templateType string, answer float64) models.MathQuestion {
	q := models.MathQuestion{
		ID:            uuid.NewString(),
		TemplateType:  templateType,
		Topic:         "probability",
		Params:        map[string]float64{"lambda": 4, "k": 2},
		CorrectAnswer: answer,
		DisplayText:   "A call center receives 4 calls per hour on average...",
		CreatedAt:     testNow,
	}
	s.Require().NoError(s.repo.Insert(context.Background(), q))
	return q
}

func (s *MathQuestionRepositorySuite) TestInsertAndGet() {
	q := s.insertMathQuestion("poisson_pmf", 0.1465)

	got, err := s.repo.Get(context.Background(), q.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(q.TemplateType, got.TemplateType)
	s.Equal(q.Params, got.Params)
	s.Equal(q.CorrectAnswer, got.CorrectAnswer)
	s.Equal(q.DisplayText, got.DisplayText)
}

func (s *MathQuestionRepositorySuite) TestGetMissing() {
	got, err := s.repo.Get(context.Background(), uuid.NewString())
	s.NoError(err)
	s.Nil(got)
}

func (s *MathQuestionRepositorySuite) TestMathReviewAndHistory() {
	ctx := context.Background()
	q1 := s.insertMathQuestion("poisson_pmf", 0.1465)
	q2 := s.insertMathQuestion("present_value", 27919.74)

	_, err := s.reviews.InsertMathReview(ctx, models.MathReview{
		MathQuestionID: q1.ID,
		UserAnswer:     0.15,
		IsCorrect:      true,
		LLMFeedback:    "Well done.",
		CreatedAt:      testNow,
	})
	s.Require().NoError(err)

	_, err = s.reviews.InsertMathReview(ctx, models.MathReview{
		MathQuestionID: q2.ID,
		UserAnswer:     30000,
		IsCorrect:      false,
		LLMFeedback:    "Check your discounting.",
		CreatedAt:      testNow.Add(time.Minute),
	})
	s.Require().NoError(err)

	history, err := s.reviews.MathHistory(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(history, 2)

	// Most recent first.
	s.Equal("present_value", history[0].TemplateType)
	s.Equal(27919.74, history[0].CorrectAnswer)
	s.False(history[0].IsCorrect)
	s.Equal("poisson_pmf", history[1].TemplateType)
	s.True(history[1].IsCorrect)

	limited, err := s.reviews.MathHistory(ctx, 1)
	s.Require().NoError(err)
	s.Len(limited, 1)
}

func (s *MathQuestionRepositorySuite) TestRegularReview() {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO questions (question_text, topic, tags) VALUES ('what is a goroutine?', 'go', '[]')
`)
	s.Require().NoError(err)

	id, err := s.reviews.InsertReview(ctx, models.Review{
		QuestionID:  1,
		UserAnswer:  "a lightweight thread",
		LLMFeedback: "SCORE: 4\nVERDICT: Good.",
		Score:       4,
		CreatedAt:   testNow,
	})
	s.Require().NoError(err)
	s.Positive(id)
}

func TestMathQuestionRepositorySuite(t *testing.T) {
	suite.Run(t, new(MathQuestionRepositorySuite))
}
