package models

import "time"

type Question struct {
	ID           int64    `json:"id"`
	QuestionText string   `json:"question_text"`
	AnswerText   *string  `json:"answer_text,omitempty"`
	Topic        string   `json:"topic"`
	Tags         []string `json:"tags"`
	Schedule
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasTag reports whether the question carries the given tag.
func (q Question) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// QuestionFilter narrows question queries. Zero values mean "no restriction".
type QuestionFilter struct {
	Topic string
	// Tag restricts to questions carrying the tag (focus mode uses "work").
	Tag    string
	Limit  int
	Offset int
}
