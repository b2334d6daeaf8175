package client

import "time"

// MealEvent is one recorded attendance instance.
type MealEvent struct {
	ID         int64      `json:"id"`
	SubjectID  int64      `json:"subject_id"`
	PolicyID   *int64     `json:"policy_id"`
	GuestCount int        `json:"guest_count"`
	Path       string     `json:"path"`
	FinalPrice int        `json:"final_price"`
	IsVoid     bool       `json:"is_void"`
	VoidReason *string    `json:"void_reason,omitempty"`
	VoidedBy   *int64     `json:"voided_by,omitempty"`
	VoidedAt   *time.Time `json:"voided_at,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
	RecordedAt time.Time  `json:"recorded_at"`

	SubjectName    string `json:"subject_name,omitempty"`
	SubjectNumber  string `json:"subject_number,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	MealType       string `json:"meal_type,omitempty"`
}

// Subject is the registry view of an employee.
type Subject struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

// Policy is a configured meal window.
type Policy struct {
	ID         int64     `json:"id"`
	CompanyID  int64     `json:"company_id"`
	MealType   string    `json:"meal_type"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	BasePrice  int       `json:"base_price"`
	GuestPrice int       `json:"guest_price"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// RecordEventRequest is the payload for recording a meal event.
// OccurredAt carries local wall-clock meaning ("2006-01-02T15:04:05").
type RecordEventRequest struct {
	SubjectID  int64  `json:"subject_id"`
	PolicyID   *int64 `json:"policy_id,omitempty"`
	GuestCount int    `json:"guest_count"`
	Path       string `json:"path,omitempty"`
	OccurredAt string `json:"occurred_at,omitempty"`
	OperatorID int64  `json:"operator_id"`
	Reason     string `json:"reason,omitempty"`
}

// UpdateEventRequest is the payload for editing a meal event.
type UpdateEventRequest struct {
	SubjectID  *int64  `json:"subject_id,omitempty"`
	PolicyID   *int64  `json:"policy_id,omitempty"`
	GuestCount *int    `json:"guest_count,omitempty"`
	OccurredAt *string `json:"occurred_at,omitempty"`
	OperatorID int64   `json:"operator_id"`
	Reason     string  `json:"reason,omitempty"`
}

// VoidEventRequest is the payload for voiding a meal event.
type VoidEventRequest struct {
	Reason     string `json:"reason"`
	OperatorID int64  `json:"operator_id"`
}

// CreatePolicyRequest is the payload for creating a meal policy.
// Times are "HH:MM:SS" local time of day.
type CreatePolicyRequest struct {
	CompanyID  int64  `json:"company_id"`
	MealType   string `json:"meal_type"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BasePrice  int    `json:"base_price"`
	GuestPrice int    `json:"guest_price"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

// UpdatePolicyRequest is the payload for editing a meal policy.
type UpdatePolicyRequest struct {
	MealType   *string `json:"meal_type,omitempty"`
	StartTime  *string `json:"start_time,omitempty"`
	EndTime    *string `json:"end_time,omitempty"`
	BasePrice  *int    `json:"base_price,omitempty"`
	GuestPrice *int    `json:"guest_price,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// EventListOptions filters the raw event range query.
type EventListOptions struct {
	From   string // inclusive local date "2006-01-02"
	To     string
	Search string
	Path   string
	IsVoid *bool
	Limit  int
	Offset int
}

// PolicyBreakdown is the per-policy slice of a daily snapshot.
type PolicyBreakdown struct {
	PolicyID  int64  `json:"policy_id"`
	MealType  string `json:"meal_type"`
	Count     int    `json:"count"`
	BasePrice int    `json:"base_price"`
}

// DailySnapshot is the aggregate view of one local business day.
type DailySnapshot struct {
	Date           string            `json:"date"`
	TotalCount     int               `json:"total_count"`
	EmployeeCount  int               `json:"employee_count"`
	GuestCount     int               `json:"guest_count"`
	ExceptionCount int               `json:"exception_count"`
	PerPolicy      []PolicyBreakdown `json:"per_policy"`
}

// DailyMealRow is one row of the per-meal-type daily report.
type DailyMealRow struct {
	MealType      string `json:"meal_type"`
	EmployeeCount int    `json:"employee_count"`
	GuestCount    int    `json:"guest_count"`
}

// MonthlyDay is one local-calendar-day bucket of a monthly report.
type MonthlyDay struct {
	Date       string `json:"date"`
	Count      int    `json:"count"`
	GuestCount int    `json:"guest_count"`
	Amount     int    `json:"amount"`
}

// DepartmentTotal is one department's rollup over a date range.
type DepartmentTotal struct {
	DepartmentName string `json:"department_name"`
	Count          int    `json:"count"`
	GuestCount     int    `json:"guest_count"`
}

// AuditRecord is one entry of the audit trail. Change is left as raw JSON;
// its shape depends on the action and target kinds.
type AuditRecord struct {
	ID           int64          `json:"id"`
	OperatorID   *int64         `json:"operator_id"`
	Action       string         `json:"action"`
	TargetKind   string         `json:"target_kind"`
	TargetID     int64          `json:"target_id"`
	Change       map[string]any `json:"change"`
	Reason       string         `json:"reason,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	OperatorName string         `json:"operator_name,omitempty"`
}

// AuditQueryOptions filters the audit trail query.
type AuditQueryOptions struct {
	TargetKind string
	TargetID   int64
	Action     string
	Since      *time.Time
	Limit      int
	Offset     int
}

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	Observers     int     `json:"observers"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ScanResponse pairs the recorded event with the verified subject.
type ScanResponse struct {
	Event   MealEvent `json:"event"`
	Subject Subject   `json:"subject"`
}
