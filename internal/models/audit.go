package models

import (
	"time"

	"github.com/gmdcok-crypto/meal-manage/internal/clock"
)

// AuditAction is the kind of mutation an audit record captures.
type AuditAction string

// Audit actions.
const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditVoid   AuditAction = "VOID"
	AuditDelete AuditAction = "DELETE"
)

// Audit target kinds.
const (
	TargetEvent  = "meal_events"
	TargetPolicy = "meal_policies"
)

// AuditRecord is an append-only log entry capturing who changed what,
// before/after, and why. OperatorID is nil when the operator could not be
// resolved against the registry; the mutation proceeds regardless.
type AuditRecord struct {
	ID         int64       `json:"id"`
	OperatorID *int64      `json:"operator_id"`
	Action     AuditAction `json:"action"`
	TargetKind string      `json:"target_kind"`
	TargetID   int64       `json:"target_id"`
	Change     ChangeSet   `json:"change"`
	Reason     string      `json:"reason,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`

	// Denormalized operator label, filled by queries only.
	OperatorName string `json:"operator_name,omitempty"`
}

// ChangeSet is the structured payload of an audit record: a tagged union
// with exactly one arm set, matching the record's action and target kinds.
// Only changed fields are carried in the update arms.
type ChangeSet struct {
	EventCreate  *EventCreateChange  `json:"event_create,omitempty"`
	EventUpdate  *EventUpdateChange  `json:"event_update,omitempty"`
	EventVoid    *EventVoidChange    `json:"event_void,omitempty"`
	EventDelete  *EventDeleteChange  `json:"event_delete,omitempty"`
	PolicyCreate *PolicyChange       `json:"policy_create,omitempty"`
	PolicyUpdate *PolicyUpdateChange `json:"policy_update,omitempty"`
	PolicyDelete *PolicyChange       `json:"policy_delete,omitempty"`
}

// EventCreateChange captures the state of a freshly recorded meal event.
type EventCreateChange struct {
	SubjectID  int64     `json:"subject_id"`
	PolicyID   *int64    `json:"policy_id"`
	GuestCount int       `json:"guest_count"`
	Path       EntryPath `json:"path"`
	FinalPrice int       `json:"final_price"`
}

// EventDelta holds the touched fields of an event edit. A nil field was
// not part of the edit; set fields appear in both the before and after
// halves of an EventUpdateChange.
type EventDelta struct {
	SubjectID  *int64  `json:"subject_id,omitempty"`
	PolicyID   *int64  `json:"policy_id,omitempty"`
	GuestCount *int    `json:"guest_count,omitempty"`
	FinalPrice *int    `json:"final_price,omitempty"`
	OccurredAt *string `json:"occurred_at,omitempty"`
}

// EventUpdateChange captures the before/after of the touched fields only.
type EventUpdateChange struct {
	Before EventDelta `json:"before"`
	After  EventDelta `json:"after"`
}

// EventVoidChange captures a void transition. The void flag itself is
// implied (false before, true after); only the new void metadata is recorded.
type EventVoidChange struct {
	Reason   string `json:"reason"`
	VoidedAt string `json:"voided_at"`
}

// EventDeleteChange captures the row state at the moment of hard removal,
// so the audit trail can still describe the now-gone target.
type EventDeleteChange struct {
	SubjectID  int64     `json:"subject_id"`
	PolicyID   *int64    `json:"policy_id"`
	GuestCount int       `json:"guest_count"`
	Path       EntryPath `json:"path"`
	FinalPrice int       `json:"final_price"`
	OccurredAt string    `json:"occurred_at"`
}

// PolicyChange captures a full policy snapshot (creation or deletion).
type PolicyChange struct {
	MealType   string          `json:"meal_type"`
	StartTime  clock.TimeOfDay `json:"start_time"`
	EndTime    clock.TimeOfDay `json:"end_time"`
	BasePrice  int             `json:"base_price"`
	GuestPrice int             `json:"guest_price"`
	IsActive   bool            `json:"is_active"`
}

// PolicyDelta holds the touched fields of a policy edit.
type PolicyDelta struct {
	MealType   *string          `json:"meal_type,omitempty"`
	StartTime  *clock.TimeOfDay `json:"start_time,omitempty"`
	EndTime    *clock.TimeOfDay `json:"end_time,omitempty"`
	BasePrice  *int             `json:"base_price,omitempty"`
	GuestPrice *int             `json:"guest_price,omitempty"`
	IsActive   *bool            `json:"is_active,omitempty"`
}

// PolicyUpdateChange captures the before/after of the touched fields only.
type PolicyUpdateChange struct {
	Before PolicyDelta `json:"before"`
	After  PolicyDelta `json:"after"`
}

// AuditQueryOpts holds filters for querying the audit trail.
type AuditQueryOpts struct {
	TargetKind string
	TargetID   int64
	Action     AuditAction
	Since      *time.Time
	Limit      int
	Offset     int
}
