// Package services provides the business operations behind the builders and
// the catalog, and the standardized errors they return.
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dukex/fluxo/pkg/ai"
	"github.com/dukex/fluxo/pkg/persistence"
)

// Business Logic Errors - These indicate client errors (4xx responses).
var (
	// Validation Errors (400 Bad Request).
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidSortOrder = errors.New("invalid sort order")
	ErrEmptyOwnerID     = errors.New("owner ID cannot be empty")
	ErrValidationFailed = errors.New("validation failed")

	// External helper errors (503 Service Unavailable).
	ErrAIUnavailable = ai.ErrUnavailable
)

// Not found errors are the persistence ones, re-exported for callers that
// only import services.
var (
	ErrWorkflowNotFound     = persistence.ErrWorkflowNotFound
	ErrTemplateNotFound     = persistence.ErrTemplateNotFound
	ErrFormNotFound         = persistence.ErrFormNotFound
	ErrProductNotFound      = persistence.ErrProductNotFound
	ErrTaxonomyNotFound     = persistence.ErrTaxonomyNotFound
	ErrNotificationNotFound = persistence.ErrNotificationNotFound
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// ValidationFailedError carries every problem found in a record that was
// refused. Messages are meant for the person editing the record.
type ValidationFailedError struct {
	Op       string
	Messages []string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, strings.Join(e.Messages, "; "))
}

func (e *ValidationFailedError) Is(target error) bool {
	return target == ErrValidationFailed
}

func newValidationFailed(op string, messages []string) error {
	if len(messages) == 0 {
		return nil
	}

	return &ValidationFailedError{Op: op, Messages: messages}
}

// ValidationMessages returns the messages of a ValidationFailedError in err's chain.
func ValidationMessages(err error) []string {
	var failed *ValidationFailedError
	if errors.As(err, &failed) {
		return failed.Messages
	}

	return nil
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidSortField) ||
		errors.Is(err, ErrInvalidSortOrder) ||
		errors.Is(err, ErrEmptyOwnerID) ||
		errors.Is(err, ErrValidationFailed)
}

// IsNotFoundError checks if an error should return HTTP 404.
func IsNotFoundError(err error) bool {
	return persistence.IsNotFound(err)
}

// IsUnavailableError checks if an error should return HTTP 503.
func IsUnavailableError(err error) bool {
	return errors.Is(err, ErrAIUnavailable)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
