package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	ErrWorkflowNotFound       = errors.New("workflow not found")
	ErrTemplateNotFound       = errors.New("workflow template not found")
	ErrFormNotFound           = errors.New("form not found")
	ErrProductNotFound        = errors.New("product not found")
	ErrTaxonomyNotFound       = errors.New("taxonomy not found")
	ErrProductMappingNotFound = errors.New("product mapping not found")
	ErrNotificationNotFound   = errors.New("notification not found")
	ErrSharedRecordNotFound   = errors.New("shared record not found")

	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidSortOrder = errors.New("invalid sort order")
	ErrInvalidFilter    = errors.New("invalid filter field")
)

var notFoundErrors = []error{
	ErrWorkflowNotFound,
	ErrTemplateNotFound,
	ErrFormNotFound,
	ErrProductNotFound,
	ErrTaxonomyNotFound,
	ErrProductMappingNotFound,
	ErrNotificationNotFound,
	ErrSharedRecordNotFound,
}

// EntityError wraps a storage error with the operation and record involved.
type EntityError struct {
	Op         string // Operation being performed (e.g., "GetByID", "Save", "Delete")
	Collection string
	ID         string
	Err        error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s operation failed for %s %s: %v", e.Op, e.Collection, e.ID, e.Err)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}

func NewEntityError(op string, collection Collection, id string, err error) *EntityError {
	return &EntityError{
		Op:         op,
		Collection: collection.Name,
		ID:         id,
		Err:        err,
	}
}

// NotFound builds the error returned when a record of collection is missing.
func NotFound(op string, collection Collection, id string) *EntityError {
	return NewEntityError(op, collection, id, collection.NotFound)
}

// IsNotFound reports whether err says any record was not found.
func IsNotFound(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func IsWorkflowNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}

func IsFormNotFound(err error) bool {
	return errors.Is(err, ErrFormNotFound)
}

func IsTemplateNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}

// IsInvalidListOptions reports whether err came from rejected list options.
func IsInvalidListOptions(err error) bool {
	return errors.Is(err, ErrInvalidSortField) || errors.Is(err, ErrInvalidSortOrder) || errors.Is(err, ErrInvalidFilter)
}
