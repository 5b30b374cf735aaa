package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeInvalidOutcome      = "INVALID_OUTCOME"
	ErrCodeUnknownTemplate     = "UNKNOWN_TEMPLATE"
	ErrCodeUnparseableAnswer   = "UNPARSEABLE_ANSWER"
	ErrCodeNoCandidates        = "NO_CANDIDATES"
	ErrCodeCollaboratorTimeout = "COLLABORATOR_TIMEOUT"
	ErrCodeCollaboratorFailure = "COLLABORATOR_FAILURE"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "UNPARSEABLE_ANSWER")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewInvalidOutcomeError reports a grading outcome outside the 1-5 quality
// scale. This is a collaborator contract violation, not user input.
func NewInvalidOutcomeError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidOutcome,
		Message: "grading produced an out-of-range quality score",
		Status:  502,
		Err:     err,
	}
}

// NewUnknownTemplateError creates a new UNKNOWN_TEMPLATE error
func NewUnknownTemplateError(name string) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownTemplate,
		Message: fmt.Sprintf("unknown math template: %s", name),
		Status:  404,
	}
}

// NewUnparseableAnswerError reports a non-numeric submission for a math item.
// Recoverable: the user is asked to enter a number.
func NewUnparseableAnswerError(answer string) *AppError {
	return &AppError{
		Code:    ErrCodeUnparseableAnswer,
		Message: fmt.Sprintf("math answers must be numeric, got %q", answer),
		Status:  400,
	}
}

// NewNoCandidatesError signals an empty review pool. Surfaced as an empty
// state, not a server fault.
func NewNoCandidatesError() *AppError {
	return &AppError{
		Code:    ErrCodeNoCandidates,
		Message: "no questions available for review",
		Status:  404,
	}
}

// NewCollaboratorTimeoutError wraps an LLM call that exceeded its deadline.
// Retryable: the schedule state was not advanced.
func NewCollaboratorTimeoutError(operation string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeCollaboratorTimeout,
		Message: fmt.Sprintf("%s timed out, try again", operation),
		Status:  504,
		Err:     err,
	}
}

// NewCollaboratorFailureError wraps a failed LLM call.
// Retryable: the schedule state was not advanced.
func NewCollaboratorFailureError(operation string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeCollaboratorFailure,
		Message: fmt.Sprintf("%s failed, try again", operation),
		Status:  502,
		Err:     err,
	}
}
