package repository

import (
	"context"
	"time"

	"github.com/dwalsh/recall/internal/models"
)

// AdvanceFunc computes the next schedule state from the current one. It
// runs inside the repository's transaction so the read-modify-write is
// atomic per item.
type AdvanceFunc func(models.Schedule) models.Schedule

// QuestionRepository handles stored Q&A data access
type QuestionRepository interface {
	Insert(ctx context.Context, q models.Question) (int64, error)
	Get(ctx context.Context, id int64) (*models.Question, error)
	List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	Update(ctx context.Context, q models.Question) error
	Delete(ctx context.Context, id int64) error
	DueQuestionIDs(ctx context.Context, topic, tag string, now time.Time) ([]int64, error)
	RandomQuestionIDs(ctx context.Context, topic, tag string, limit int) ([]int64, error)
	AdvanceSchedule(ctx context.Context, id int64, now time.Time, advance AdvanceFunc) (*models.Question, error)
	Stats(ctx context.Context, topic, tag string, now time.Time) (*models.LearnStats, error)
}

// TemplateProgressRepository handles per-template schedule state
type TemplateProgressRepository interface {
	Get(ctx context.Context, templateType string) (*models.TemplateProgress, error)
	List(ctx context.Context) ([]models.TemplateProgress, error)
	DueTemplateTypes(ctx context.Context, templateTypes []string, now time.Time) ([]string, error)
	AttemptedTemplateTypes(ctx context.Context, templateTypes []string) ([]string, error)
	AdvanceSchedule(ctx context.Context, templateType string, correct bool, now time.Time, advance AdvanceFunc) (*models.TemplateProgress, error)
}

// MathQuestionRepository handles generated problem instances
type MathQuestionRepository interface {
	Insert(ctx context.Context, q models.MathQuestion) error
	Get(ctx context.Context, id string) (*models.MathQuestion, error)
}

// ReviewRepository handles the append-only review history
type ReviewRepository interface {
	InsertReview(ctx context.Context, r models.Review) (int64, error)
	InsertMathReview(ctx context.Context, r models.MathReview) (int64, error)
	MathHistory(ctx context.Context, limit int) ([]models.MathHistoryEntry, error)
}
