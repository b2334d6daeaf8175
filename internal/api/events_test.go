package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gmdcok-crypto/meal-manage/internal/api"
	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

func TestEventCreate_Valid(t *testing.T) {
	t.Parallel()

	svc := &mockEventService{
		recordFn: func(_ context.Context, req models.RecordEventRequest) (*models.MealEvent, error) {
			policyID := int64(2)
			return &models.MealEvent{
				ID:         10,
				SubjectID:  req.SubjectID,
				PolicyID:   &policyID,
				GuestCount: req.GuestCount,
				Path:       req.Path,
				FinalPrice: 8000,
				OccurredAt: time.Now().UTC(),
				RecordedAt: time.Now().UTC(),
			}, nil
		},
	}

	r := newTestRouter()
	h := api.NewEventHandler(svc, testLogger())
	r.POST("/events", h.Create)

	w := doRequest(r, http.MethodPost, "/events", `{"subject_id":7,"guest_count":1,"operator_id":3}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var ev models.MealEvent
	if err := json.Unmarshal(w.Body.Bytes(), &ev); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if ev.SubjectID != 7 {
		t.Errorf("expected subject 7, got %d", ev.SubjectID)
	}
	// An API create without an explicit path is a manual entry.
	if ev.Path != models.PathManual {
		t.Errorf("expected MANUAL path, got %q", ev.Path)
	}
}

func TestEventCreate_UnknownSubject(t *testing.T) {
	t.Parallel()

	svc := &mockEventService{
		recordFn: func(_ context.Context, _ models.RecordEventRequest) (*models.MealEvent, error) {
			return nil, models.ErrEmployeeNotFound
		},
	}

	r := newTestRouter()
	h := api.NewEventHandler(svc, testLogger())
	r.POST("/events", h.Create)

	w := doRequest(r, http.MethodPost, "/events", `{"subject_id":999}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestEventCreate_ValidationError(t *testing.T) {
	t.Parallel()

	svc := &mockEventService{
		recordFn: func(_ context.Context, _ models.RecordEventRequest) (*models.MealEvent, error) {
			return nil, models.ErrNegativeGuests
		},
	}

	r := newTestRouter()
	h := api.NewEventHandler(svc, testLogger())
	r.POST("/events", h.Create)

	w := doRequest(r, http.MethodPost, "/events", `{"subject_id":7,"guest_count":-1}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestEventScan_ReturnsSubject(t *testing.T) {
	t.Parallel()

	svc := &mockEventService{
		scanFn: func(_ context.Context, req models.RecordEventRequest) (*models.MealEvent, *models.Subject, error) {
			return &models.MealEvent{ID: 11, SubjectID: req.SubjectID, Path: models.PathScan},
				&models.Subject{ID: req.SubjectID, Name: "Kim", Number: "E007"}, nil
		},
	}

	r := newTestRouter()
	h := api.NewEventHandler(svc, testLogger())
	r.POST("/events/scan", h.Scan)

	w := doRequest(r, http.MethodPost, "/events/scan", `{"subject_id":7}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Event   models.MealEvent `json:"event"`
		Subject models.Subject   `json:"subject"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Subject.Name != "Kim" {
		t.Errorf("expected subject Kim, got %q", resp.Subject.Name)
	}
	if resp.Event.ID != 11 {
		t.Errorf("expected event 11, got %d", resp.Event.ID)
	}
}

func TestEventVoid_OK(t *testing.T) {
	t.Parallel()

	svc := &mockEventService{
		voidFn: func(_ context.Context, eventID int64, req models.VoidEventRequest) (*models.MealEvent, error) {
			return &models.MealEvent{ID: eventID, IsVoid: true, VoidReason: &req.Reason}, nil
		},
	}

	r := newTestRouter()
	h := api.NewEventHandler(svc, testLogger())
	r.PATCH("/events/:id/void", h.Void)

	w := doRequest(r, http.MethodPatch, "/events/42/void", `{"reason":"duplicate scan","operator_id":3}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var ev models.MealEvent
	if err := json.Unmarshal(w.Body.Bytes(), &ev); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !ev.IsVoid {
		t.Error("expected voided event")
	}
}

func TestEventVoid_AlreadyVoided(t *testing.T) {
	t.Parallel()

	svc := &mockEventService{
		voidFn: func(_ context.Context, _ int64, _ models.VoidEventRequest) (*models.MealEvent, error) {
			return nil, models.ErrAlreadyVoided
		},
	}

	r := newTestRouter()
	h := api.NewEventHandler(svc, testLogger())
	r.PATCH("/events/:id/void", h.Void)

	w := doRequest(r, http.MethodPatch, "/events/42/void", `{"reason":"again"}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestEventVoid_BadID(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewEventHandler(&mockEventService{}, testLogger())
	r.PATCH("/events/:id/void", h.Void)

	w := doRequest(r, http.MethodPatch, "/events/abc/void", `{"reason":"x"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestEventList_RangeFilter(t *testing.T) {
	t.Parallel()

	var gotFilter models.EventFilter
	svc := &mockEventService{
		listFn: func(_ context.Context, filter models.EventFilter) ([]models.MealEvent, bool, error) {
			gotFilter = filter
			return []models.MealEvent{{ID: 1}}, true, nil
		},
	}

	r := newTestRouter()
	h := api.NewEventHandler(svc, testLogger())
	r.GET("/events", h.List)

	w := doRequest(r, http.MethodGet, "/events?from=2026-03-01&to=2026-03-02&search=kim&is_void=false", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// 2026-03-01 local starts at 2026-02-28T15:00Z; the range covers the
	// whole of 2026-03-02 local.
	wantFrom := time.Date(2026, 2, 28, 15, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	if !gotFilter.From.Equal(wantFrom) || !gotFilter.To.Equal(wantTo) {
		t.Errorf("range = [%v, %v), want [%v, %v)", gotFilter.From, gotFilter.To, wantFrom, wantTo)
	}
	if gotFilter.Search != "kim" {
		t.Errorf("search = %q", gotFilter.Search)
	}
	if gotFilter.IsVoid == nil || *gotFilter.IsVoid {
		t.Errorf("is_void filter = %v", gotFilter.IsVoid)
	}

	var resp struct {
		Events  []models.MealEvent `json:"events"`
		HasMore bool               `json:"has_more"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.HasMore {
		t.Error("expected has_more")
	}
}

func TestEventList_BadDate(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewEventHandler(&mockEventService{}, testLogger())
	r.GET("/events", h.List)

	w := doRequest(r, http.MethodGet, "/events?from=not-a-date", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestEventDelete_OK(t *testing.T) {
	t.Parallel()

	var gotOperator int64
	svc := &mockEventService{
		deleteFn: func(_ context.Context, _ int64, operatorID int64) error {
			gotOperator = operatorID
			return nil
		},
	}

	r := newTestRouter()
	h := api.NewEventHandler(svc, testLogger())
	r.DELETE("/events/:id", h.Delete)

	w := doRequest(r, http.MethodDelete, "/events/42?operator_id=3", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotOperator != 3 {
		t.Errorf("operator = %d, want 3", gotOperator)
	}
}
