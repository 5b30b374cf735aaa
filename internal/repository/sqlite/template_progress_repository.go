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

type templateProgressRepository struct {
	db *sql.DB
}

// NewTemplateProgressRepository creates a new TemplateProgressRepository implementation
func NewTemplateProgressRepository(db *sql.DB) repository.TemplateProgressRepository {
	return &templateProgressRepository{db: db}
}

const progressColumns = `template_type, ease_factor, interval_days, next_review_at, total_attempts, correct_attempts, created_at`

func scanProgress(row interface{ Scan(...any) error }) (*models.TemplateProgress, error) {
	var p models.TemplateProgress
	if err := row.Scan(&p.TemplateType, &p.EaseFactor, &p.IntervalDays, &p.NextReviewAt,
		&p.TotalAttempts, &p.CorrectAttempts, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *templateProgressRepository) Get(ctx context.Context, templateType string) (*models.TemplateProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting template progress: template=%s", templateType)

	p, err := scanProgress(r.db.QueryRowContext(ctx, `
SELECT `+progressColumns+`
FROM math_template_progress
WHERE template_type = ?
`, templateType))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no progress yet: template=%s", templateType)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get template progress: %v", err)
		return nil, err
	}
	return p, nil
}

func (r *templateProgressRepository) List(ctx context.Context) ([]models.TemplateProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT `+progressColumns+`
FROM math_template_progress
ORDER BY template_type
`)
	if err != nil {
		log.Error("failed to list template progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	var progress []models.TemplateProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		progress = append(progress, *p)
	}
	return progress, rows.Err()
}

func (r *templateProgressRepository) DueTemplateTypes(ctx context.Context, templateTypes []string, now time.Time) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("fetching due templates from %d candidates", len(templateTypes))

	if len(templateTypes) == 0 {
		return nil, nil
	}

	query := sqlBuilder.Select("template_type").From("math_template_progress").
		Where(squirrel.Eq{"template_type": templateTypes}).
		Where(squirrel.LtOrEq{"next_review_at": now}).
		OrderBy("next_review_at ASC", "ease_factor ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	types, err := r.queryTypes(ctx, sqlStr, args)
	if err != nil {
		log.Error("failed to query due templates: %v", err)
		return nil, err
	}
	log.Debug("found %d due templates", len(types))
	return types, nil
}

func (r *templateProgressRepository) AttemptedTemplateTypes(ctx context.Context, templateTypes []string) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	if len(templateTypes) == 0 {
		return nil, nil
	}

	query := sqlBuilder.Select("template_type").From("math_template_progress").
		Where(squirrel.Eq{"template_type": templateTypes})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	types, err := r.queryTypes(ctx, sqlStr, args)
	if err != nil {
		log.Error("failed to query attempted templates: %v", err)
		return nil, err
	}
	return types, nil
}

func (r *templateProgressRepository) queryTypes(ctx context.Context, sqlStr string, args []any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// AdvanceSchedule creates the progress row on first attempt, then applies
// the schedule update and bumps the lifetime counters, all in one
// transaction.
func (r *templateProgressRepository) AdvanceSchedule(ctx context.Context, templateType string, correct bool, now time.Time, advance repository.AdvanceFunc) (*models.TemplateProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("advancing template schedule: template=%s, correct=%t", templateType, correct)

	var updated *models.TemplateProgress
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO math_template_progress (template_type, next_review_at) VALUES (?, ?)
`, templateType, now); err != nil {
			return err
		}

		p, err := scanProgress(tx.QueryRowContext(ctx, `
SELECT `+progressColumns+`
FROM math_template_progress
WHERE template_type = ?
`, templateType))
		if err != nil {
			return err
		}

		next := advance(p.Schedule)
		correctDelta := 0
		if correct {
			correctDelta = 1
		}
		if _, err := tx.ExecContext(ctx, `
UPDATE math_template_progress
SET ease_factor = ?, interval_days = ?, next_review_at = ?,
    total_attempts = total_attempts + 1, correct_attempts = correct_attempts + ?
WHERE template_type = ?
`, next.EaseFactor, next.IntervalDays, next.NextReviewAt, correctDelta, templateType); err != nil {
			return err
		}

		p.Schedule = next
		p.TotalAttempts++
		p.CorrectAttempts += correctDelta
		updated = p
		return nil
	})
	if err != nil {
		log.Error("failed to advance template schedule: %v", err)
		return nil, err
	}
	log.Debug("template schedule advanced: template=%s, interval=%d, ease=%.2f",
		templateType, updated.IntervalDays, updated.EaseFactor)
	return updated, nil
}
