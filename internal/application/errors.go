package application

import (
	"errors"
	"fmt"

	"focusboard/internal/domain"
	"focusboard/internal/ports"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = ports.ErrNotFound
	ErrInvalidID        = errors.New("invalid ID")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNoTabSelected    = errors.New("no tab selected")
	ErrNotCategorical   = errors.New("parent is not a categorical note")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ReorderError is a failed reorder persistence in a scope
type ReorderError struct {
	Scope domain.Scope
	Err   error
}

func (e *ReorderError) Error() string {
	return fmt.Sprintf("reorder %s: %v", e.Scope, e.Err)
}

func (e *ReorderError) Unwrap() error {
	return e.Err
}

// ChildError represents a rejected child note creation
type ChildError struct {
	ParentID int64
	Reason   string
}

func (e *ChildError) Error() string {
	return fmt.Sprintf("cannot add child to note %d: %s", e.ParentID, e.Reason)
}

func (e *ChildError) Is(target error) bool {
	return target == ErrNotCategorical
}
