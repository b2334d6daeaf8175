// Package models defines data types for the meal attendance engine.
package models

import (
	"time"

	"github.com/gmdcok-crypto/meal-manage/internal/clock"
)

// Policy is a configured meal window: a time-of-day interval with a meal
// category label and prices. The window [StartTime, EndTime] is inclusive
// on both ends; StartTime > EndTime means the window wraps past midnight.
type Policy struct {
	ID         int64           `json:"id"`
	CompanyID  int64           `json:"company_id"`
	MealType   string          `json:"meal_type"`
	StartTime  clock.TimeOfDay `json:"start_time"`
	EndTime    clock.TimeOfDay `json:"end_time"`
	BasePrice  int             `json:"base_price"`
	GuestPrice int             `json:"guest_price"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Wraps reports whether the policy window crosses local midnight.
func (p *Policy) Wraps() bool {
	return p.StartTime > p.EndTime
}

// CreatePolicyRequest is the payload for creating a meal policy.
type CreatePolicyRequest struct {
	CompanyID  int64           `json:"company_id"`
	MealType   string          `json:"meal_type"`
	StartTime  clock.TimeOfDay `json:"start_time"`
	EndTime    clock.TimeOfDay `json:"end_time"`
	BasePrice  int             `json:"base_price"`
	GuestPrice int             `json:"guest_price"`
	IsActive   *bool           `json:"is_active,omitempty"`
}

// Validate checks required fields on CreatePolicyRequest.
func (r *CreatePolicyRequest) Validate() error {
	if r.MealType == "" {
		return ErrMissingMealType
	}
	if !r.StartTime.Valid() || !r.EndTime.Valid() {
		return ErrInvalidWindow
	}
	return nil
}

// Active returns the requested active flag, defaulting to true.
func (r *CreatePolicyRequest) Active() bool {
	if r.IsActive == nil {
		return true
	}
	return *r.IsActive
}

// UpdatePolicyRequest is the payload for editing a meal policy.
// Nil fields are left unchanged.
type UpdatePolicyRequest struct {
	MealType   *string          `json:"meal_type,omitempty"`
	StartTime  *clock.TimeOfDay `json:"start_time,omitempty"`
	EndTime    *clock.TimeOfDay `json:"end_time,omitempty"`
	BasePrice  *int             `json:"base_price,omitempty"`
	GuestPrice *int             `json:"guest_price,omitempty"`
	IsActive   *bool            `json:"is_active,omitempty"`
}

// Validate checks supplied fields on UpdatePolicyRequest.
func (r *UpdatePolicyRequest) Validate() error {
	if r.MealType != nil && *r.MealType == "" {
		return ErrMissingMealType
	}
	if r.StartTime != nil && !r.StartTime.Valid() {
		return ErrInvalidWindow
	}
	if r.EndTime != nil && !r.EndTime.Valid() {
		return ErrInvalidWindow
	}
	return nil
}
