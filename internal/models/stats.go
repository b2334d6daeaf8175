package models

// PolicyBreakdown is the per-policy slice of a daily snapshot. Count sums
// 1+guests over non-void classified events for the policy.
type PolicyBreakdown struct {
	PolicyID  int64  `json:"policy_id"`
	MealType  string `json:"meal_type"`
	Count     int    `json:"count"`
	BasePrice int    `json:"base_price"`
}

// DailySnapshot is the aggregate view of one local business day.
//
// TotalCount sums 1+guests over non-void events, classified or not.
// ExceptionCount counts events that are voided or unclassified; a voided
// unclassified event still counts once.
type DailySnapshot struct {
	Date           string            `json:"date"`
	TotalCount     int               `json:"total_count"`
	EmployeeCount  int               `json:"employee_count"`
	GuestCount     int               `json:"guest_count"`
	ExceptionCount int               `json:"exception_count"`
	PerPolicy      []PolicyBreakdown `json:"per_policy"`
}

// MonthlyDay is one local-calendar-day bucket of a monthly report.
// Count is the number of non-void events on the day; Amount sums
// final_price x (1+guests) over the same events.
type MonthlyDay struct {
	Date       string `json:"date"`
	Count      int    `json:"count"`
	GuestCount int    `json:"guest_count"`
	Amount     int    `json:"amount"`
}

// DepartmentTotal is one department's rollup over a date range. Events
// whose subject has no department are omitted, not errors.
type DepartmentTotal struct {
	DepartmentName string `json:"department_name"`
	Count          int    `json:"count"`
	GuestCount     int    `json:"guest_count"`
}

// DailyMealRow is one row of the per-meal-type daily report.
type DailyMealRow struct {
	MealType      string `json:"meal_type"`
	EmployeeCount int    `json:"employee_count"`
	GuestCount    int    `json:"guest_count"`
}
