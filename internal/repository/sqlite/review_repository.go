package sqlite

import (
	"context"
	"database/sql"

	"github.com/dwalsh/recall/internal/logger"
	"github.com/dwalsh/recall/internal/models"
	"github.com/dwalsh/recall/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) InsertReview(ctx context.Context, rev models.Review) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("inserting review: question_id=%d, score=%d", rev.QuestionID, rev.Score)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO reviews (question_id, user_answer, llm_feedback, score, created_at)
VALUES (?, ?, ?, ?, ?)
`, rev.QuestionID, rev.UserAnswer, rev.LLMFeedback, rev.Score, rev.CreatedAt)
	if err != nil {
		log.Error("failed to insert review: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *reviewRepository) InsertMathReview(ctx context.Context, rev models.MathReview) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("inserting math review: math_question_id=%s, correct=%t", rev.MathQuestionID, rev.IsCorrect)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO math_reviews (math_question_id, template_type, user_answer, is_correct, llm_feedback, created_at)
VALUES (?, (SELECT template_type FROM math_questions WHERE id = ?), ?, ?, ?, ?)
`, rev.MathQuestionID, rev.MathQuestionID, rev.UserAnswer, rev.IsCorrect, rev.LLMFeedback, rev.CreatedAt)
	if err != nil {
		log.Error("failed to insert math review: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *reviewRepository) MathHistory(ctx context.Context, limit int) ([]models.MathHistoryEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("fetching math history: limit=%d", limit)

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT mr.id, mq.template_type, mq.topic, mq.display_text, mr.user_answer, mq.correct_answer,
       mr.is_correct, COALESCE(mr.llm_feedback, ''), mr.created_at
FROM math_reviews mr
JOIN math_questions mq ON mq.id = mr.math_question_id
ORDER BY mr.created_at DESC, mr.id DESC
LIMIT ?
`, limit)
	if err != nil {
		log.Error("failed to query math history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.MathHistoryEntry
	for rows.Next() {
		var e models.MathHistoryEntry
		if err := rows.Scan(&e.ID, &e.TemplateType, &e.Topic, &e.Question, &e.UserAnswer,
			&e.CorrectAnswer, &e.IsCorrect, &e.Feedback, &e.CreatedAt); err != nil {
			log.Error("failed to scan history row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	log.Debug("found %d history entries", len(entries))
	return entries, rows.Err()
}
