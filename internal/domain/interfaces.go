// Package domain defines the canonical service interfaces shared across
// consumers (REST handlers, CLI, client). Consumers should depend on these
// interfaces rather than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/gmdcok-crypto/meal-manage/internal/clock"
	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// EventService defines all meal event operations.
type EventService interface {
	Record(ctx context.Context, req models.RecordEventRequest) (*models.MealEvent, error)
	Scan(ctx context.Context, req models.RecordEventRequest) (*models.MealEvent, *models.Subject, error)
	Get(ctx context.Context, eventID int64) (*models.MealEvent, error)
	List(ctx context.Context, filter models.EventFilter) ([]models.MealEvent, bool, error)
	Update(ctx context.Context, eventID int64, req models.UpdateEventRequest) (*models.MealEvent, error)
	Void(ctx context.Context, eventID int64, req models.VoidEventRequest) (*models.MealEvent, error)
	Delete(ctx context.Context, eventID int64, operatorID int64) error
}

// PolicyService defines meal policy administration.
type PolicyService interface {
	List(ctx context.Context, activeOnly bool) ([]models.Policy, error)
	Get(ctx context.Context, policyID int64) (*models.Policy, error)
	Create(ctx context.Context, req models.CreatePolicyRequest, operatorID int64) (*models.Policy, error)
	Update(ctx context.Context, policyID int64, req models.UpdatePolicyRequest, operatorID int64) (*models.Policy, error)
	Delete(ctx context.Context, policyID int64, operatorID int64) error
}

// StatsService defines the aggregation read paths.
type StatsService interface {
	DailySnapshot(ctx context.Context, date clock.LocalDate) (*models.DailySnapshot, error)
	DailyMealRows(ctx context.Context, date clock.LocalDate) ([]models.DailyMealRow, error)
	MonthlyByDay(ctx context.Context, year int, month int) ([]models.MonthlyDay, error)
	DepartmentTotals(ctx context.Context, from, to clock.LocalDate) ([]models.DepartmentTotal, error)
}

// AuditService defines audit trail queries.
type AuditService interface {
	Query(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditRecord, bool, error)
}
