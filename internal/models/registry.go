package models

// Subject is the registry view of an employee, used for display labeling
// and operator resolution only; the engine never derives business logic
// from it.
type Subject struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Number       string `json:"number"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}

// Department is the registry view of a department.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
