package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gmdcok-crypto/meal-manage/internal/clock"
	"github.com/gmdcok-crypto/meal-manage/internal/models"
	"github.com/gmdcok-crypto/meal-manage/internal/store"
)

func TestPolicyCreateAndGet(t *testing.T) {
	f := setupFixture(t)
	ps := store.NewPolicyStore(f.base)

	created, err := ps.Create(context.Background(), models.CreatePolicyRequest{
		CompanyID:  f.companyID,
		MealType:   "lunch",
		StartTime:  clock.MustTimeOfDay(11, 30, 0),
		EndTime:    clock.MustTimeOfDay(13, 30, 0),
		BasePrice:  8000,
		GuestPrice: 9000,
	}, f.operatorID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("ID is zero")
	}
	if !created.IsActive {
		t.Error("IsActive defaults to true")
	}

	got, err := ps.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.MealType != "lunch" {
		t.Errorf("MealType = %q, want %q", got.MealType, "lunch")
	}
	if got.StartTime != clock.MustTimeOfDay(11, 30, 0) {
		t.Errorf("StartTime = %v, want 11:30:00", got.StartTime)
	}
	if got.Wraps() {
		t.Error("Wraps = true for a same-day window")
	}
}

func TestPolicyCreateWrapping(t *testing.T) {
	f := setupFixture(t)
	ps := store.NewPolicyStore(f.base)

	created, err := ps.Create(context.Background(), models.CreatePolicyRequest{
		CompanyID: f.companyID,
		MealType:  "night",
		StartTime: clock.MustTimeOfDay(22, 0, 0),
		EndTime:   clock.MustTimeOfDay(5, 59, 59),
		BasePrice: 6000,
	}, f.operatorID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.Wraps() {
		t.Error("Wraps = false for a midnight-crossing window")
	}
}

func TestPolicyListActive(t *testing.T) {
	f := setupFixture(t)
	ps := store.NewPolicyStore(f.base)

	inactive := false
	_, err := ps.Create(context.Background(), models.CreatePolicyRequest{
		CompanyID: f.companyID,
		MealType:  "retired",
		StartTime: clock.MustTimeOfDay(0, 0, 0),
		EndTime:   clock.MustTimeOfDay(1, 0, 0),
		IsActive:  &inactive,
	}, f.operatorID)
	if err != nil {
		t.Fatalf("Create inactive: %v", err)
	}
	active, err := ps.Create(context.Background(), models.CreatePolicyRequest{
		CompanyID: f.companyID,
		MealType:  "lunch",
		StartTime: clock.MustTimeOfDay(11, 30, 0),
		EndTime:   clock.MustTimeOfDay(13, 30, 0),
	}, f.operatorID)
	if err != nil {
		t.Fatalf("Create active: %v", err)
	}

	policies, err := ps.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	for _, p := range policies {
		if p.MealType == "retired" {
			t.Error("inactive policy returned by ListActive")
		}
	}

	found := false
	for _, p := range policies {
		if p.ID == active.ID {
			found = true
		}
	}
	if !found {
		t.Error("active policy missing from ListActive")
	}
}

func TestPolicyUpdateDoesNotTouchEventSnapshots(t *testing.T) {
	f := setupFixture(t)
	ps := store.NewPolicyStore(f.base)
	es := store.NewEventStore(f.base)

	policy, err := ps.Create(context.Background(), models.CreatePolicyRequest{
		CompanyID: f.companyID,
		MealType:  "lunch",
		StartTime: clock.MustTimeOfDay(11, 30, 0),
		EndTime:   clock.MustTimeOfDay(13, 30, 0),
		BasePrice: 8000,
	}, f.operatorID)
	if err != nil {
		t.Fatalf("Create policy: %v", err)
	}

	ev := createTestEvent(t, f, es, &policy.ID)

	newPrice := 12000
	updated, err := ps.Update(context.Background(), policy.ID, models.UpdatePolicyRequest{
		BasePrice: &newPrice,
	}, f.operatorID)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.BasePrice != 12000 {
		t.Errorf("BasePrice = %d, want 12000", updated.BasePrice)
	}

	got, err := es.Get(context.Background(), ev.ID)
	if err != nil {
		t.Fatalf("Get event: %v", err)
	}
	if got.FinalPrice != 8000 {
		t.Errorf("event FinalPrice = %d after policy reprice, want 8000", got.FinalPrice)
	}
}

func TestPolicyDeleteNullsEventReference(t *testing.T) {
	f := setupFixture(t)
	ps := store.NewPolicyStore(f.base)
	es := store.NewEventStore(f.base)

	policy, err := ps.Create(context.Background(), models.CreatePolicyRequest{
		CompanyID: f.companyID,
		MealType:  "lunch",
		StartTime: clock.MustTimeOfDay(11, 30, 0),
		EndTime:   clock.MustTimeOfDay(13, 30, 0),
		BasePrice: 8000,
	}, f.operatorID)
	if err != nil {
		t.Fatalf("Create policy: %v", err)
	}
	ev := createTestEvent(t, f, es, &policy.ID)

	if err := ps.Delete(context.Background(), policy.ID, f.operatorID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := ps.Get(context.Background(), policy.ID); !errors.Is(err, models.ErrPolicyNotFound) {
		t.Fatalf("Get after delete err = %v, want ErrPolicyNotFound", err)
	}

	got, err := es.Get(context.Background(), ev.ID)
	if err != nil {
		t.Fatalf("Get event: %v", err)
	}
	if got.PolicyID != nil {
		t.Errorf("event PolicyID = %v after policy delete, want nil", got.PolicyID)
	}
	if got.FinalPrice != 8000 {
		t.Errorf("event FinalPrice = %d after policy delete, want 8000", got.FinalPrice)
	}
}

func TestPolicyUpdateNotFound(t *testing.T) {
	f := setupFixture(t)
	ps := store.NewPolicyStore(f.base)

	mt := "ghost"
	_, err := ps.Update(context.Background(), 999999999, models.UpdatePolicyRequest{
		MealType: &mt,
	}, f.operatorID)
	if !errors.Is(err, models.ErrPolicyNotFound) {
		t.Fatalf("err = %v, want ErrPolicyNotFound", err)
	}
}
