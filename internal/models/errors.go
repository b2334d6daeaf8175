package models

import "errors"

// Sentinel errors for entity lookups and state transitions.
var (
	ErrPolicyNotFound   = errors.New("meal policy not found")
	ErrEventNotFound    = errors.New("meal event not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrAlreadyVoided    = errors.New("meal event already voided")
)

// Sentinel errors for validation.
var (
	ErrMissingSubject    = errors.New("subject_id is required")
	ErrMissingMealType   = errors.New("meal_type is required")
	ErrNegativeGuests    = errors.New("guest_count must not be negative")
	ErrMissingVoidReason = errors.New("void reason is required")
	ErrInvalidPath       = errors.New("invalid entry path")
	ErrInvalidWindow     = errors.New("policy window times must be within a single day")
)
