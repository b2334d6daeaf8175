package schedule

import (
	"testing"

	"github.com/gmdcok-crypto/meal-manage/internal/clock"
	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

func tod(h, m, s int) clock.TimeOfDay {
	return clock.MustTimeOfDay(h, m, s)
}

func testPolicies() []models.Policy {
	return []models.Policy{
		{ID: 1, MealType: "breakfast", StartTime: tod(6, 0, 0), EndTime: tod(9, 59, 59), BasePrice: 5000},
		{ID: 2, MealType: "lunch", StartTime: tod(11, 30, 0), EndTime: tod(13, 30, 0), BasePrice: 7000},
		{ID: 3, MealType: "dinner", StartTime: tod(17, 30, 0), EndTime: tod(19, 30, 0), BasePrice: 7000},
	}
}

func TestMatchNonWrapping(t *testing.T) {
	policies := testPolicies()

	tests := []struct {
		name   string
		t      clock.TimeOfDay
		wantID int64 // 0 means no match
	}{
		{"inside breakfast", tod(7, 0, 0), 1},
		{"start boundary inclusive", tod(6, 0, 0), 1},
		{"end boundary inclusive", tod(9, 59, 59), 1},
		{"one second before start", tod(5, 59, 59), 0},
		{"one second after end", tod(10, 0, 0), 0},
		{"inside lunch", tod(12, 0, 0), 2},
		{"between windows", tod(15, 0, 0), 0},
		{"late evening unmatched", tod(23, 0, 0), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Match(tc.t, policies)
			if tc.wantID == 0 {
				if got != nil {
					t.Errorf("Match(%v) = policy %d, want none", tc.t, got.ID)
				}
				return
			}
			if got == nil {
				t.Fatalf("Match(%v) = none, want policy %d", tc.t, tc.wantID)
			}
			if got.ID != tc.wantID {
				t.Errorf("Match(%v) = policy %d, want %d", tc.t, got.ID, tc.wantID)
			}
		})
	}
}

func TestMatchWrapping(t *testing.T) {
	policies := []models.Policy{
		{ID: 9, MealType: "night shift", StartTime: tod(22, 0, 0), EndTime: tod(5, 59, 59), BasePrice: 6000},
	}

	tests := []struct {
		name  string
		t     clock.TimeOfDay
		match bool
	}{
		{"before midnight", tod(23, 30, 0), true},
		{"after midnight", tod(5, 0, 0), true},
		{"start boundary", tod(22, 0, 0), true},
		{"end boundary", tod(5, 59, 59), true},
		{"gap before start", tod(21, 59, 59), false},
		{"gap after end", tod(6, 0, 0), false},
		{"midday", tod(12, 0, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Match(tc.t, policies)
			if (got != nil) != tc.match {
				t.Errorf("Match(%v) matched=%v, want %v", tc.t, got != nil, tc.match)
			}
		})
	}
}

func TestMatchFirstWinsOnOverlap(t *testing.T) {
	policies := []models.Policy{
		{ID: 1, MealType: "early", StartTime: tod(6, 0, 0), EndTime: tod(10, 0, 0)},
		{ID: 2, MealType: "late", StartTime: tod(9, 0, 0), EndTime: tod(11, 0, 0)},
	}

	got := Match(tod(9, 30, 0), policies)
	if got == nil || got.ID != 1 {
		t.Fatalf("overlap match = %+v, want policy 1", got)
	}
}

func TestMatchEmptySet(t *testing.T) {
	if got := Match(tod(12, 0, 0), nil); got != nil {
		t.Errorf("Match on empty set = %+v, want none", got)
	}
}

func TestSortByStart(t *testing.T) {
	policies := []models.Policy{
		{ID: 3, StartTime: tod(17, 30, 0)},
		{ID: 1, StartTime: tod(6, 0, 0)},
		{ID: 2, StartTime: tod(11, 30, 0)},
	}

	SortByStart(policies)

	for i, wantID := range []int64{1, 2, 3} {
		if policies[i].ID != wantID {
			t.Errorf("policies[%d].ID = %d, want %d", i, policies[i].ID, wantID)
		}
	}
}
