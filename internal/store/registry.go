package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// RegistryStore is the engine's read-only view of the employee/department
// registry. It exists for display labeling and operator resolution; the
// registry's own CRUD lives elsewhere and is not this engine's concern.
type RegistryStore struct {
	Base
}

// NewRegistryStore creates a RegistryStore.
func NewRegistryStore(base Base) *RegistryStore {
	return &RegistryStore{Base: base}
}

// GetSubject returns an employee's display data by id.
func (s *RegistryStore) GetSubject(ctx context.Context, subjectID int64) (*models.Subject, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var sub models.Subject
	err := s.Pool.QueryRow(ctx,
		"SELECT id, name, emp_no, department_id FROM employees WHERE id = $1", subjectID,
	).Scan(&sub.ID, &sub.Name, &sub.Number, &sub.DepartmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("getting subject %d: %w", subjectID, err)
	}

	return &sub, nil
}

// GetDepartment returns a department's display data by id.
func (s *RegistryStore) GetDepartment(ctx context.Context, departmentID int64) (*models.Department, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var dep models.Department
	err := s.Pool.QueryRow(ctx,
		"SELECT id, name FROM departments WHERE id = $1", departmentID,
	).Scan(&dep.ID, &dep.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("department %d not found", departmentID)
		}
		return nil, fmt.Errorf("getting department %d: %w", departmentID, err)
	}

	return &dep, nil
}
