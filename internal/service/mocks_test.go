package service

import (
	"context"
	"sync"
	"time"

	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// mockEventStore records calls and returns configured responses.
type mockEventStore struct {
	mu    sync.Mutex
	calls []string

	get    func(ctx context.Context, eventID int64) (*models.MealEvent, error)
	create func(ctx context.Context, ev *models.MealEvent, operatorID int64, reason string) (*models.MealEvent, error)
	update func(ctx context.Context, eventID int64, req models.UpdateEventRequest) (*models.MealEvent, error)
	void   func(ctx context.Context, eventID int64, reason string, operatorID int64) (*models.MealEvent, error)
	delete func(ctx context.Context, eventID int64, operatorID int64) error
	list   func(ctx context.Context, filter models.EventFilter) ([]models.MealEvent, bool, error)
}

func (m *mockEventStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockEventStore) Get(ctx context.Context, eventID int64) (*models.MealEvent, error) {
	m.record("Get")
	return m.get(ctx, eventID)
}

func (m *mockEventStore) Create(ctx context.Context, ev *models.MealEvent, operatorID int64, reason string) (*models.MealEvent, error) {
	m.record("Create")
	return m.create(ctx, ev, operatorID, reason)
}

func (m *mockEventStore) Update(ctx context.Context, eventID int64, req models.UpdateEventRequest) (*models.MealEvent, error) {
	m.record("Update")
	return m.update(ctx, eventID, req)
}

func (m *mockEventStore) Void(ctx context.Context, eventID int64, reason string, operatorID int64) (*models.MealEvent, error) {
	m.record("Void")
	return m.void(ctx, eventID, reason, operatorID)
}

func (m *mockEventStore) Delete(ctx context.Context, eventID int64, operatorID int64) error {
	m.record("Delete")
	return m.delete(ctx, eventID, operatorID)
}

func (m *mockEventStore) List(ctx context.Context, filter models.EventFilter) ([]models.MealEvent, bool, error) {
	m.record("List")
	return m.list(ctx, filter)
}

// mockPolicyReader serves a fixed policy set.
type mockPolicyReader struct {
	policies []models.Policy
	getErr   error
	listErr  error
}

func (m *mockPolicyReader) Get(_ context.Context, policyID int64) (*models.Policy, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for i := range m.policies {
		if m.policies[i].ID == policyID {
			return &m.policies[i], nil
		}
	}
	return nil, models.ErrPolicyNotFound
}

func (m *mockPolicyReader) ListActive(_ context.Context) ([]models.Policy, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var active []models.Policy
	for _, p := range m.policies {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

// mockSubjectReader serves a fixed registry.
type mockSubjectReader struct {
	subjects map[int64]models.Subject
}

func (m *mockSubjectReader) GetSubject(_ context.Context, subjectID int64) (*models.Subject, error) {
	s, ok := m.subjects[subjectID]
	if !ok {
		return nil, models.ErrEmployeeNotFound
	}
	return &s, nil
}

// mockNotifier captures published notifications.
type mockNotifier struct {
	mu      sync.Mutex
	notices []capturedNotice
}

type capturedNotice struct {
	eventType string
	data      any
}

func (m *mockNotifier) Notify(eventType string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, capturedNotice{eventType: eventType, data: data})
}

func (m *mockNotifier) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.notices))
	for i, n := range m.notices {
		out[i] = n.eventType
	}
	return out
}

// mockEventReader serves a fixed event list to the stats service.
type mockEventReader struct {
	events []models.MealEvent
	totals []models.DepartmentTotal
	err    error

	lastFrom, lastTo time.Time
}

func (m *mockEventReader) InRange(_ context.Context, from, to time.Time) ([]models.MealEvent, error) {
	m.lastFrom, m.lastTo = from, to
	if m.err != nil {
		return nil, m.err
	}
	var out []models.MealEvent
	for _, e := range m.events {
		if !e.OccurredAt.Before(from) && e.OccurredAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEventReader) DepartmentTotals(_ context.Context, from, to time.Time) ([]models.DepartmentTotal, error) {
	m.lastFrom, m.lastTo = from, to
	if m.err != nil {
		return nil, m.err
	}
	return m.totals, nil
}
