package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/epeers/investdash/internal/models"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrHoldingNotFound = errors.New("holding not found")
	ErrUnknownView     = errors.New("unknown view")
	ErrInvalidAnswer   = errors.New("invalid risk answer")
	ErrInvalidPlan     = errors.New("invalid subscription plan")
	ErrPremiumRequired = errors.New("this feature requires premium access")
	ErrEmptyQuestion   = errors.New("question is empty")
	ErrBusy            = errors.New("too many requests in flight, try again shortly")
	ErrNotRegistering  = errors.New("no registration in progress, the risk questionnaire is not open")
)

// ValidationError names the first field of a request that failed validation.
// Cause optionally narrows the failure to a more specific sentinel.
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrValidation, e.Cause}
	}
	return []error{ErrValidation}
}

// PremiumRequiredError is ErrPremiumRequired for a screen that was recorded
// as pending, so a later subscription resumes there.
type PremiumRequiredError struct {
	PendingView models.View
}

func (e *PremiumRequiredError) Error() string { return ErrPremiumRequired.Error() }

func (e *PremiumRequiredError) Unwrap() error { return ErrPremiumRequired }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Clock returns the current time. Services take one so tests can pin time.
type Clock func() time.Time
