package scheduler

import "errors"

// ErrNoCandidates means both pools are empty even after the random
// fallback. Callers treat it as an empty state, not a server fault.
var ErrNoCandidates = errors.New("no candidates available")

// Kind distinguishes the two schedulable pools.
type Kind string

const (
	KindQuestion Kind = "regular"
	KindTemplate Kind = "math"
)

// Candidate is one schedulable item: either a stored question or a math
// template. Exactly one of QuestionID/TemplateType is set, per Kind.
type Candidate struct {
	Kind         Kind
	QuestionID   int64
	TemplateType string
}

// Filter narrows the candidate pools for one selection.
type Filter struct {
	// Topic restricts questions to a topic; for templates it is matched
	// against the catalog topics (probability, finance).
	Topic string
	// Focus, when set to FocusWork, restricts questions to work-tagged
	// ones and drops math templates from the pool.
	Focus string
}

// FocusWork is the only recognized focus mode.
const FocusWork = "work"

func (f Filter) workOnly() bool {
	return f.Focus == FocusWork
}
