package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Not-found errors: the referenced id does not resolve.
var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrUserNotFound        = errors.New("user not found")
)

// Authorization errors.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")
)

// Conflict errors: uniqueness violations at the store level.
var (
	ErrAlreadyApplied = errors.New("you have already applied for this task")
	ErrCategoryExists = errors.New("category with this name already exists")
	ErrUserExists     = errors.New("user with this email already exists")
)

// Business rule violations: state-dependent rules.
var (
	ErrTaskNotOpen       = errors.New("this task is not open for applications")
	ErrSelfApplication   = errors.New("you cannot apply for your own task")
	ErrSelfRoleChange    = errors.New("cannot change your own role")
	ErrSelfDelete        = errors.New("cannot delete your own account")
	ErrInvalidTransition = errors.New("invalid task status transition")
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidCategory is returned when a task references a category id that
// does not resolve. It is an input error, not a lookup miss.
var ErrInvalidCategory = errors.New("invalid category")

// ValidationError reports missing or malformed input fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// NewValidationError builds a ValidationError for the named fields.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// CategoryInUseError is returned when deleting a category that still has tasks.
// The referencing-task count is part of the contract and must be reported.
type CategoryInUseError struct {
	Count int64
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("cannot delete category: it has %d associated tasks", e.Count)
}
