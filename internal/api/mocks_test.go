package api_test

import (
	"context"

	"github.com/gmdcok-crypto/meal-manage/internal/clock"
	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// mockEventService implements api.EventService for testing.
type mockEventService struct {
	recordFn func(ctx context.Context, req models.RecordEventRequest) (*models.MealEvent, error)
	scanFn   func(ctx context.Context, req models.RecordEventRequest) (*models.MealEvent, *models.Subject, error)
	getFn    func(ctx context.Context, eventID int64) (*models.MealEvent, error)
	listFn   func(ctx context.Context, filter models.EventFilter) ([]models.MealEvent, bool, error)
	updateFn func(ctx context.Context, eventID int64, req models.UpdateEventRequest) (*models.MealEvent, error)
	voidFn   func(ctx context.Context, eventID int64, req models.VoidEventRequest) (*models.MealEvent, error)
	deleteFn func(ctx context.Context, eventID int64, operatorID int64) error
}

func (m *mockEventService) Record(ctx context.Context, req models.RecordEventRequest) (*models.MealEvent, error) {
	return m.recordFn(ctx, req)
}

func (m *mockEventService) Scan(ctx context.Context, req models.RecordEventRequest) (*models.MealEvent, *models.Subject, error) {
	return m.scanFn(ctx, req)
}

func (m *mockEventService) Get(ctx context.Context, eventID int64) (*models.MealEvent, error) {
	return m.getFn(ctx, eventID)
}

func (m *mockEventService) List(ctx context.Context, filter models.EventFilter) ([]models.MealEvent, bool, error) {
	return m.listFn(ctx, filter)
}

func (m *mockEventService) Update(ctx context.Context, eventID int64, req models.UpdateEventRequest) (*models.MealEvent, error) {
	return m.updateFn(ctx, eventID, req)
}

func (m *mockEventService) Void(ctx context.Context, eventID int64, req models.VoidEventRequest) (*models.MealEvent, error) {
	return m.voidFn(ctx, eventID, req)
}

func (m *mockEventService) Delete(ctx context.Context, eventID int64, operatorID int64) error {
	return m.deleteFn(ctx, eventID, operatorID)
}

// mockPolicyService implements api.PolicyService for testing.
type mockPolicyService struct {
	listFn   func(ctx context.Context, activeOnly bool) ([]models.Policy, error)
	getFn    func(ctx context.Context, policyID int64) (*models.Policy, error)
	createFn func(ctx context.Context, req models.CreatePolicyRequest, operatorID int64) (*models.Policy, error)
	updateFn func(ctx context.Context, policyID int64, req models.UpdatePolicyRequest, operatorID int64) (*models.Policy, error)
	deleteFn func(ctx context.Context, policyID int64, operatorID int64) error
}

func (m *mockPolicyService) List(ctx context.Context, activeOnly bool) ([]models.Policy, error) {
	return m.listFn(ctx, activeOnly)
}

func (m *mockPolicyService) Get(ctx context.Context, policyID int64) (*models.Policy, error) {
	return m.getFn(ctx, policyID)
}

func (m *mockPolicyService) Create(ctx context.Context, req models.CreatePolicyRequest, operatorID int64) (*models.Policy, error) {
	return m.createFn(ctx, req, operatorID)
}

func (m *mockPolicyService) Update(ctx context.Context, policyID int64, req models.UpdatePolicyRequest, operatorID int64) (*models.Policy, error) {
	return m.updateFn(ctx, policyID, req, operatorID)
}

func (m *mockPolicyService) Delete(ctx context.Context, policyID int64, operatorID int64) error {
	return m.deleteFn(ctx, policyID, operatorID)
}

// mockStatsService implements api.StatsService for testing.
type mockStatsService struct {
	dailySnapshotFn    func(ctx context.Context, date clock.LocalDate) (*models.DailySnapshot, error)
	dailyMealRowsFn    func(ctx context.Context, date clock.LocalDate) ([]models.DailyMealRow, error)
	monthlyByDayFn     func(ctx context.Context, year, month int) ([]models.MonthlyDay, error)
	departmentTotalsFn func(ctx context.Context, from, to clock.LocalDate) ([]models.DepartmentTotal, error)
}

func (m *mockStatsService) DailySnapshot(ctx context.Context, date clock.LocalDate) (*models.DailySnapshot, error) {
	return m.dailySnapshotFn(ctx, date)
}

func (m *mockStatsService) DailyMealRows(ctx context.Context, date clock.LocalDate) ([]models.DailyMealRow, error) {
	return m.dailyMealRowsFn(ctx, date)
}

func (m *mockStatsService) MonthlyByDay(ctx context.Context, year, month int) ([]models.MonthlyDay, error) {
	return m.monthlyByDayFn(ctx, year, month)
}

func (m *mockStatsService) DepartmentTotals(ctx context.Context, from, to clock.LocalDate) ([]models.DepartmentTotal, error) {
	return m.departmentTotalsFn(ctx, from, to)
}

// mockAuditService implements api.AuditService for testing.
type mockAuditService struct {
	queryFn func(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditRecord, bool, error)
}

func (m *mockAuditService) Query(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditRecord, bool, error) {
	return m.queryFn(ctx, opts)
}
