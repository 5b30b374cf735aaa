package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dwalsh/recall/internal/logger"
	"github.com/dwalsh/recall/internal/models"
	"github.com/dwalsh/recall/internal/repository"
)

type questionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new QuestionRepository implementation
func NewQuestionRepository(db *sql.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

const questionColumns = `id, question_text, answer_text, topic, tags, ease_factor, interval_days, next_review_at, review_count, created_at, updated_at`

func scanQuestion(row interface{ Scan(...any) error }) (*models.Question, error) {
	var q models.Question
	var rawTags string
	if err := row.Scan(&q.ID, &q.QuestionText, &q.AnswerText, &q.Topic, &rawTags,
		&q.EaseFactor, &q.IntervalDays, &q.NextReviewAt, &q.ReviewCount, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, err
	}
	tags, err := unmarshalTags(rawTags)
	if err != nil {
		return nil, err
	}
	q.Tags = tags
	return &q, nil
}

func (r *questionRepository) Insert(ctx context.Context, q models.Question) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("inserting question: topic=%s", q.Topic)

	rawTags, err := marshalTags(q.Tags)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO questions (question_text, answer_text, topic, tags, ease_factor, interval_days, next_review_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, q.QuestionText, q.AnswerText, q.Topic, rawTags, q.EaseFactor, q.IntervalDays, q.NextReviewAt)
	if err != nil {
		log.Error("failed to insert question: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get question id: %v", err)
		return 0, err
	}
	log.Debug("question inserted: id=%d", id)
	return id, nil
}

func (r *questionRepository) Get(ctx context.Context, id int64) (*models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("getting question: id=%d", id)

	q, err := scanQuestion(r.db.QueryRowContext(ctx, `
SELECT `+questionColumns+`
FROM questions
WHERE id = ?
`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("question not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get question: %v", err)
		return nil, err
	}
	return q, nil
}

func (r *questionRepository) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("listing questions: topic=%s, tag=%s", filter.Topic, filter.Tag)

	query := sqlBuilder.Select(
		"id", "question_text", "answer_text", "topic", "tags", "ease_factor",
		"interval_days", "next_review_at", "review_count", "created_at", "updated_at",
	).From("questions")

	if filter.Topic != "" {
		query = query.Where(squirrel.Eq{"topic": filter.Topic})
	}
	if filter.Tag != "" {
		query = query.Where(squirrel.Like{"tags": tagPattern(filter.Tag)})
	}
	query = query.OrderBy("created_at DESC", "id DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			log.Error("failed to scan question row: %v", err)
			return nil, err
		}
		questions = append(questions, *q)
	}
	log.Debug("found %d questions", len(questions))
	return questions, rows.Err()
}

func (r *questionRepository) Update(ctx context.Context, q models.Question) error {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("updating question: id=%d", q.ID)

	rawTags, err := marshalTags(q.Tags)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE questions
SET question_text = ?, answer_text = ?, topic = ?, tags = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, q.QuestionText, q.AnswerText, q.Topic, rawTags, q.ID)
	if err != nil {
		log.Error("failed to update question: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *questionRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("deleting question: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete question: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *questionRepository) DueQuestionIDs(ctx context.Context, topic, tag string, now time.Time) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("fetching due questions: topic=%s, tag=%s", topic, tag)

	query := sqlBuilder.Select("id").From("questions").
		Where(squirrel.LtOrEq{"next_review_at": now})
	if topic != "" {
		query = query.Where(squirrel.Eq{"topic": topic})
	}
	if tag != "" {
		query = query.Where(squirrel.Like{"tags": tagPattern(tag)})
	}
	query = query.OrderBy("next_review_at ASC", "ease_factor ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	ids, err := r.queryIDs(ctx, sqlStr, args)
	if err != nil {
		log.Error("failed to query due questions: %v", err)
		return nil, err
	}
	log.Debug("found %d due questions", len(ids))
	return ids, nil
}

func (r *questionRepository) RandomQuestionIDs(ctx context.Context, topic, tag string, limit int) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("fetching random questions: topic=%s, tag=%s, limit=%d", topic, tag, limit)

	query := sqlBuilder.Select("id").From("questions")
	if topic != "" {
		query = query.Where(squirrel.Eq{"topic": topic})
	}
	if tag != "" {
		query = query.Where(squirrel.Like{"tags": tagPattern(tag)})
	}
	query = query.OrderBy("RANDOM()").Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	ids, err := r.queryIDs(ctx, sqlStr, args)
	if err != nil {
		log.Error("failed to query random questions: %v", err)
		return nil, err
	}
	return ids, nil
}

func (r *questionRepository) queryIDs(ctx context.Context, sqlStr string, args []any) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AdvanceSchedule applies the schedule update as a single transactional
// read-modify-write so concurrent submissions for the same question cannot
// lose updates.
func (r *questionRepository) AdvanceSchedule(ctx context.Context, id int64, now time.Time, advance repository.AdvanceFunc) (*models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("advancing question schedule: id=%d", id)

	var updated *models.Question
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		q, err := scanQuestion(tx.QueryRowContext(ctx, `
SELECT `+questionColumns+`
FROM questions
WHERE id = ?
`, id))
		if err != nil {
			return err
		}

		next := advance(q.Schedule)
		if _, err := tx.ExecContext(ctx, `
UPDATE questions
SET ease_factor = ?, interval_days = ?, next_review_at = ?, review_count = review_count + 1, updated_at = ?
WHERE id = ?
`, next.EaseFactor, next.IntervalDays, next.NextReviewAt, now, id); err != nil {
			return err
		}

		q.Schedule = next
		q.ReviewCount++
		q.UpdatedAt = now
		updated = q
		return nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("question not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to advance question schedule: %v", err)
		return nil, err
	}
	log.Debug("question schedule advanced: id=%d, interval=%d, ease=%.2f", id, updated.IntervalDays, updated.EaseFactor)
	return updated, nil
}

func (r *questionRepository) Stats(ctx context.Context, topic, tag string, now time.Time) (*models.LearnStats, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("computing learn stats: topic=%s, tag=%s", topic, tag)

	var parts []string
	args := []any{now, now.Add(24 * time.Hour)}
	if topic != "" {
		parts = append(parts, "topic = ?")
		args = append(args, topic)
	}
	if tag != "" {
		parts = append(parts, "tags LIKE ?")
		args = append(args, tagPattern(tag))
	}

	var stats models.LearnStats
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*),
       COALESCE(SUM(CASE WHEN next_review_at <= ?1 THEN 1 ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN next_review_at > ?1 AND next_review_at <= ?2 THEN 1 ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN review_count = 0 THEN 1 ELSE 0 END), 0),
       COALESCE(AVG(ease_factor), 2.5)
FROM questions
`+whereParts(parts), args...).Scan(&stats.TotalQuestions, &stats.DueNow, &stats.DueToday, &stats.NeverReviewed, &stats.AvgEaseFactor)
	if err != nil {
		log.Error("failed to compute learn stats: %v", err)
		return nil, err
	}
	return &stats, nil
}
