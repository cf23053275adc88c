package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds. Every error returned by the service layer wraps
// exactly one of these so callers can classify failures with errors.Is
// without parsing message text.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrDependencyFailed  = errors.New("external dependency failure")
)

// NewValidationError aggregates all field violations into a single error.
func NewValidationError(violations []string) error {
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(violations, "; "))
}

// NewNotFoundError reports that an entity does not exist.
func NewNotFoundError(entity string, id any) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, entity, id)
}

// NewAccessDeniedError reports that an entity exists but belongs to a
// different tenant. Deliberately distinct from NotFound; callers get a
// stable contract at the cost of confirming cross-tenant existence.
func NewAccessDeniedError(entity string, id any) error {
	return fmt.Errorf("%w: %s %v belongs to another tenant", ErrAccessDenied, entity, id)
}

// NewTransitionError names the state rule an operation violated.
func NewTransitionError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, fmt.Sprintf(format, args...))
}

// NewDependencyError reports an upstream failure, keeping the upstream
// reason text when available.
func NewDependencyError(dependency, reason string) error {
	if reason == "" {
		return fmt.Errorf("%w: %s", ErrDependencyFailed, dependency)
	}
	return fmt.Errorf("%w: %s: %s", ErrDependencyFailed, dependency, reason)
}
