package mathgen

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownTemplate reports a template name outside the catalog.
var ErrUnknownTemplate = errors.New("unknown math template")

// ErrUnparseableAnswer reports a submission that is not a number.
// Distinct from a wrong answer: the user is asked to enter a number.
var ErrUnparseableAnswer = errors.New("answer is not numeric")

// ToleranceKind selects how a submission is compared to the exact answer.
type ToleranceKind int

const (
	// ToleranceAbsolute accepts |exact - submitted| <= Value.
	ToleranceAbsolute ToleranceKind = iota
	// ToleranceRelative accepts |exact - submitted| / |exact| <= Value,
	// falling back to an absolute comparison when the exact answer is
	// too close to zero to divide by.
	ToleranceRelative
)

// Tolerance is a per-template grading band.
type Tolerance struct {
	Kind  ToleranceKind
	Value float64
}

// Param declares one sampled parameter and its inclusive range.
type Param struct {
	Name string
	Min  float64
	Max  float64
}

// Template is one entry of the closed problem catalog: a parameter-sampling
// rule, a deterministic computation to the exact answer, and a grading band.
type Template struct {
	Name      string
	Topic     string
	Concept   string
	AsksFor   string
	Example   string
	Hint      string
	Params    []Param
	Tolerance Tolerance
	compute   func(p map[string]float64) float64
}

// Compute returns the exact answer for the given parameters.
// Deterministic: equal params always produce the equal answer.
func (t Template) Compute(params map[string]float64) float64 {
	return t.compute(params)
}

// Grade reports whether a submitted answer falls within the template's
// tolerance of the exact answer.
func (t Template) Grade(exact, submitted float64) bool {
	diff := math.Abs(exact - submitted)
	switch t.Tolerance.Kind {
	case ToleranceRelative:
		if math.Abs(exact) < 1e-4 {
			return diff <= t.Tolerance.Value
		}
		return diff/math.Abs(exact) <= t.Tolerance.Value
	default:
		return diff <= t.Tolerance.Value
	}
}

// ParseAnswer parses a submitted math answer.
func ParseAnswer(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableAnswer, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableAnswer, s)
	}
	return v, nil
}
