package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when the caller is not authenticated
	ErrUnauthorized = errors.New("unauthorized")
)

// Resource errors wrap the common errors so handlers can match either
var (
	ErrHealthSystemNotFound = fmt.Errorf("health system: %w", ErrNotFound)
	ErrOpportunityNotFound  = fmt.Errorf("opportunity: %w", ErrNotFound)
	ErrContactNotFound      = fmt.Errorf("contact: %w", ErrNotFound)
	ErrAssignmentNotFound   = fmt.Errorf("assignment: %w", ErrNotFound)
	ErrOutreachNotFound     = fmt.Errorf("outreach event: %w", ErrNotFound)

	ErrDuplicateHealthSystem = fmt.Errorf("a health system with this name already exists: %w", ErrConflict)
	ErrDuplicateProduct      = fmt.Errorf("the health system already has an opportunity for this product: %w", ErrConflict)
	ErrDuplicateAssignment   = fmt.Errorf("the contact is already assigned to this opportunity: %w", ErrConflict)

	ErrHealthSystemMismatch = fmt.Errorf("contact and opportunity belong to different health systems: %w", ErrInvalidInput)
	ErrInvalidContactMethod = fmt.Errorf("contact method must be call, email or meeting: %w", ErrInvalidInput)
	ErrInvalidContactDate   = fmt.Errorf("contact date must be YYYY-MM-DD: %w", ErrInvalidInput)
	ErrInvalidStatus        = fmt.Errorf("status must be prospect, active or won: %w", ErrInvalidInput)
)

// wrapRepoError returns sentinel for a missing record and wraps anything else with the failed action
func wrapRepoError(err error, sentinel error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
