package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/dwalsh/recall/internal/logger"
	"github.com/dwalsh/recall/internal/models"
	"github.com/dwalsh/recall/internal/repository"
)

type mathQuestionRepository struct {
	db *sql.DB
}

// NewMathQuestionRepository creates a new MathQuestionRepository implementation
func NewMathQuestionRepository(db *sql.DB) repository.MathQuestionRepository {
	return &mathQuestionRepository{db: db}
}

func (r *mathQuestionRepository) Insert(ctx context.Context, q models.MathQuestion) error {
	log := logger.FromContext(ctx).WithPrefix("math_question_repo")
	log.Debug("inserting math question: id=%s, template=%s", q.ID, q.TemplateType)

	rawParams, err := json.Marshal(q.Params)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO math_questions (id, template_type, topic, params, correct_answer, display_text, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, q.ID, q.TemplateType, q.Topic, string(rawParams), q.CorrectAnswer, q.DisplayText, q.CreatedAt)
	if err != nil {
		log.Error("failed to insert math question: %v", err)
	}
	return err
}

func (r *mathQuestionRepository) Get(ctx context.Context, id string) (*models.MathQuestion, error) {
	log := logger.FromContext(ctx).WithPrefix("math_question_repo")
	log.Debug("getting math question: id=%s", id)

	var q models.MathQuestion
	var rawParams string
	err := r.db.QueryRowContext(ctx, `
SELECT id, template_type, topic, params, correct_answer, display_text, created_at
FROM math_questions
WHERE id = ?
`, id).Scan(&q.ID, &q.TemplateType, &q.Topic, &rawParams, &q.CorrectAnswer, &q.DisplayText, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("math question not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get math question: %v", err)
		return nil, err
	}
	if err := json.Unmarshal([]byte(rawParams), &q.Params); err != nil {
		log.Error("failed to decode params: %v", err)
		return nil, err
	}
	return &q, nil
}
