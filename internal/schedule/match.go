// Package schedule classifies a wall-clock time against the active policy
// window set. It is pure: no storage, no clock reads.
package schedule

import (
	"sort"

	"github.com/gmdcok-crypto/meal-manage/internal/clock"
	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// Match returns the first policy whose window contains t, iterating in
// start-time-ascending order, or nil when no window matches. Windows are
// inclusive on both ends; a window with start > end wraps past midnight
// and matches t >= start || t <= end.
//
// Overlapping windows are allowed; the ordering makes the earliest-starting
// match win deterministically. A nil result is the "unclassified" outcome,
// not an error.
func Match(t clock.TimeOfDay, policies []models.Policy) *models.Policy {
	for i := range policies {
		p := &policies[i]
		if Contains(p, t) {
			return p
		}
	}
	return nil
}

// Contains reports whether the policy's window contains t.
func Contains(p *models.Policy, t clock.TimeOfDay) bool {
	if p.Wraps() {
		return t >= p.StartTime || t <= p.EndTime
	}
	return t >= p.StartTime && t <= p.EndTime
}

// SortByStart orders policies by start time ascending, the order Match
// expects. Stores return rows already ordered; this exists for callers
// assembling policy sets in memory.
func SortByStart(policies []models.Policy) {
	sort.SliceStable(policies, func(i, j int) bool {
		return policies[i].StartTime < policies[j].StartTime
	})
}
