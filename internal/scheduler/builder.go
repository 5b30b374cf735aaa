package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/dwalsh/recall/internal/mathgen"
)

// Rand is the randomness the scheduler needs. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	IntN(n int) int
}

// QuestionSource reads the stored-question pool. Implemented by the
// question repository.
type QuestionSource interface {
	DueQuestionIDs(ctx context.Context, topic, tag string, now time.Time) ([]int64, error)
	RandomQuestionIDs(ctx context.Context, topic, tag string, limit int) ([]int64, error)
}

// TemplateSource reads math template schedule state. Implemented by the
// template progress repository.
type TemplateSource interface {
	DueTemplateTypes(ctx context.Context, templateTypes []string, now time.Time) ([]string, error)
	AttemptedTemplateTypes(ctx context.Context, templateTypes []string) ([]string, error)
}

// fallbackSampleSize bounds how many items each pool contributes when
// nothing is due and the builder falls back to a random sample.
const fallbackSampleSize = 5

// Builder assembles the unified candidate pool for one "next item"
// request. Due-ness is evaluated against the caller's clock; the builder
// itself never touches schedule state.
type Builder struct {
	questions QuestionSource
	templates TemplateSource
	rng       Rand
}

func NewBuilder(questions QuestionSource, templates TemplateSource, rng Rand) *Builder {
	return &Builder{questions: questions, templates: templates, rng: rng}
}

// Build collects candidates in priority order: due questions, due
// templates, then templates never attempted (those are always eligible so
// each gets seen at least once). When all three are empty it samples
// randomly from both pools so the learner always gets something.
func (b *Builder) Build(ctx context.Context, f Filter, now time.Time) ([]Candidate, error) {
	tag := ""
	if f.workOnly() {
		tag = "work"
	}

	var candidates []Candidate

	dueIDs, err := b.questions.DueQuestionIDs(ctx, f.Topic, tag, now)
	if err != nil {
		return nil, fmt.Errorf("due questions: %w", err)
	}
	for _, id := range dueIDs {
		candidates = append(candidates, Candidate{Kind: KindQuestion, QuestionID: id})
	}

	var templateTypes []string
	if !f.workOnly() {
		templateTypes = mathgen.Names(f.Topic)
	}

	if len(templateTypes) > 0 {
		due, err := b.templates.DueTemplateTypes(ctx, templateTypes, now)
		if err != nil {
			return nil, fmt.Errorf("due templates: %w", err)
		}
		inPool := make(map[string]bool, len(due))
		for _, tt := range due {
			candidates = append(candidates, Candidate{Kind: KindTemplate, TemplateType: tt})
			inPool[tt] = true
		}

		attempted, err := b.templates.AttemptedTemplateTypes(ctx, templateTypes)
		if err != nil {
			return nil, fmt.Errorf("attempted templates: %w", err)
		}
		tried := make(map[string]bool, len(attempted))
		for _, tt := range attempted {
			tried[tt] = true
		}
		for _, tt := range templateTypes {
			if !tried[tt] && !inPool[tt] {
				candidates = append(candidates, Candidate{Kind: KindTemplate, TemplateType: tt})
			}
		}
	}

	if len(candidates) > 0 {
		return candidates, nil
	}

	randomIDs, err := b.questions.RandomQuestionIDs(ctx, f.Topic, tag, fallbackSampleSize)
	if err != nil {
		return nil, fmt.Errorf("random questions: %w", err)
	}
	for _, id := range randomIDs {
		candidates = append(candidates, Candidate{Kind: KindQuestion, QuestionID: id})
	}
	for _, tt := range b.sampleTemplateTypes(templateTypes, fallbackSampleSize) {
		candidates = append(candidates, Candidate{Kind: KindTemplate, TemplateType: tt})
	}
	return candidates, nil
}

func (b *Builder) sampleTemplateTypes(templateTypes []string, limit int) []string {
	if len(templateTypes) <= limit {
		return templateTypes
	}
	shuffled := make([]string, len(templateTypes))
	copy(shuffled, templateTypes)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := b.rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:limit]
}
