package models

import "time"

// EntryPath identifies how a meal event entered the system.
type EntryPath string

// Entry paths.
const (
	PathScan   EntryPath = "SCAN"   // self-service scan from the employee's device
	PathKiosk  EntryPath = "KIOSK"  // shared kiosk terminal
	PathManual EntryPath = "MANUAL" // administrative manual entry
)

// ValidPath reports whether p is a known entry path.
func ValidPath(p EntryPath) bool {
	switch p {
	case PathScan, PathKiosk, PathManual:
		return true
	}
	return false
}

// MealEvent is one recorded attendance instance. PolicyID is nil for an
// unclassified event (no policy window matched at the declared time); that
// is a valid state, not an error, and it participates in exception stats.
//
// FinalPrice is snapshotted from the matched policy's base price at
// creation and is never recomputed from later policy edits. OccurredAt is
// the declared attendance instant (editable); RecordedAt is immutable row
// provenance.
type MealEvent struct {
	ID         int64      `json:"id"`
	SubjectID  int64      `json:"subject_id"`
	PolicyID   *int64     `json:"policy_id"`
	GuestCount int        `json:"guest_count"`
	Path       EntryPath  `json:"path"`
	FinalPrice int        `json:"final_price"`
	IsVoid     bool       `json:"is_void"`
	VoidReason *string    `json:"void_reason,omitempty"`
	VoidedBy   *int64     `json:"voided_by,omitempty"`
	VoidedAt   *time.Time `json:"voided_at,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
	RecordedAt time.Time  `json:"recorded_at"`

	// Denormalized display labels, filled by range queries only.
	SubjectName    string `json:"subject_name,omitempty"`
	SubjectNumber  string `json:"subject_number,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	MealType       string `json:"meal_type,omitempty"`
}

// Headcount returns the number of meals this event represents (the subject
// plus accompanying guests). Void events contribute nothing to reports and
// are excluded by the callers, not here.
func (e *MealEvent) Headcount() int {
	return 1 + e.GuestCount
}

// Amount returns the billable amount for this event.
func (e *MealEvent) Amount() int {
	return e.FinalPrice * e.Headcount()
}

// RecordEventRequest is the payload for recording a meal event.
//
// PolicyID nil means "classify at the declared time via the window
// matcher"; a failed match is stored as an unclassified event. A non-nil
// PolicyID must reference an existing policy. OccurredAt, when set, carries
// local wall-clock meaning and defaults to now.
type RecordEventRequest struct {
	SubjectID  int64     `json:"subject_id"`
	PolicyID   *int64    `json:"policy_id,omitempty"`
	GuestCount int       `json:"guest_count"`
	Path       EntryPath `json:"path"`
	OccurredAt string    `json:"occurred_at,omitempty"`
	OperatorID int64     `json:"operator_id"`
	Reason     string    `json:"reason,omitempty"`
}

// Validate checks required fields on RecordEventRequest.
func (r *RecordEventRequest) Validate() error {
	if r.SubjectID == 0 {
		return ErrMissingSubject
	}
	if r.GuestCount < 0 {
		return ErrNegativeGuests
	}
	if r.Path == "" {
		r.Path = PathScan
	}
	if !ValidPath(r.Path) {
		return ErrInvalidPath
	}
	return nil
}

// UpdateEventRequest is the payload for editing a meal event. Nil fields
// are left unchanged. A PolicyID change is an explicit override: it
// bypasses window matching and re-snapshots FinalPrice from the new
// policy's current base price.
type UpdateEventRequest struct {
	SubjectID  *int64  `json:"subject_id,omitempty"`
	PolicyID   *int64  `json:"policy_id,omitempty"`
	GuestCount *int    `json:"guest_count,omitempty"`
	OccurredAt *string `json:"occurred_at,omitempty"`
	OperatorID int64   `json:"operator_id"`
	Reason     string  `json:"reason,omitempty"`
}

// Validate checks supplied fields on UpdateEventRequest.
func (r *UpdateEventRequest) Validate() error {
	if r.GuestCount != nil && *r.GuestCount < 0 {
		return ErrNegativeGuests
	}
	return nil
}

// VoidEventRequest is the payload for voiding a meal event.
type VoidEventRequest struct {
	Reason     string `json:"reason"`
	OperatorID int64  `json:"operator_id"`
}

// Validate checks required fields on VoidEventRequest.
func (r *VoidEventRequest) Validate() error {
	if r.Reason == "" {
		return ErrMissingVoidReason
	}
	return nil
}

// EventFilter holds filters for raw range queries. The date range carries
// local-calendar meaning; stores receive it already converted to a
// half-open instant interval.
type EventFilter struct {
	From   time.Time
	To     time.Time
	Search string // matches subject name or number, case-insensitive
	Path   EntryPath
	IsVoid *bool
	Limit  int
	Offset int
}
