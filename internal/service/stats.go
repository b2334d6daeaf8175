package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gmdcok-crypto/meal-manage/internal/clock"
	"github.com/gmdcok-crypto/meal-manage/internal/domain"
	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// EventReader is the aggregation read path StatsService depends on.
type EventReader interface {
	InRange(ctx context.Context, from, to time.Time) ([]models.MealEvent, error)
	DepartmentTotals(ctx context.Context, from, to time.Time) ([]models.DepartmentTotal, error)
}

// Compile-time check: *StatsService must satisfy domain.StatsService.
var _ domain.StatsService = (*StatsService)(nil)

// StatsService computes live aggregates over stored events. There are no
// materialized rollups: every report is derived on demand, so a void or a
// backdated correction is reflected in the very next read. Bucketing
// happens here by projecting stored instants onto the local business
// calendar, never by string-formatting timestamps in SQL.
type StatsService struct {
	events   EventReader
	policies PolicyReader
	log      *logrus.Logger
}

// NewStatsService creates a StatsService.
func NewStatsService(events EventReader, policies PolicyReader, log *logrus.Logger) *StatsService {
	return &StatsService{events: events, policies: policies, log: log}
}

// DailySnapshot aggregates one local business day.
func (s *StatsService) DailySnapshot(
	ctx context.Context, date clock.LocalDate,
) (*models.DailySnapshot, error) {
	from, to := clock.DayRange(date)

	events, err := s.events.InRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	active, err := s.policies.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	snap := &models.DailySnapshot{Date: date.String(), PerPolicy: []models.PolicyBreakdown{}}
	perPolicy := make(map[int64]int)

	for i := range events {
		ev := &events[i]

		// An exception is a voided or unclassified event; a voided
		// unclassified event counts once.
		if ev.IsVoid || ev.PolicyID == nil {
			snap.ExceptionCount++
		}
		if ev.IsVoid {
			continue
		}

		snap.TotalCount += ev.Headcount()
		// Only classified events count as employee meals; unclassified
		// ones surface in ExceptionCount instead.
		if ev.PolicyID != nil {
			snap.EmployeeCount++
		}
		snap.GuestCount += ev.GuestCount

		if ev.PolicyID != nil {
			perPolicy[*ev.PolicyID] += ev.Headcount()
		}
	}

	// Every active policy gets a slice, zero or not, so the dashboard
	// renders a stable set of meal rows.
	for _, p := range active {
		snap.PerPolicy = append(snap.PerPolicy, models.PolicyBreakdown{
			PolicyID:  p.ID,
			MealType:  p.MealType,
			Count:     perPolicy[p.ID],
			BasePrice: p.BasePrice,
		})
	}

	return snap, nil
}

// DailyMealRows returns the per-meal-type breakdown of one local day.
func (s *StatsService) DailyMealRows(
	ctx context.Context, date clock.LocalDate,
) ([]models.DailyMealRow, error) {
	from, to := clock.DayRange(date)

	events, err := s.events.InRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	active, err := s.policies.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	mealType := make(map[int64]string, len(active))
	for _, p := range active {
		mealType[p.ID] = p.MealType
	}

	rows := make([]models.DailyMealRow, 0, len(active))
	rowIdx := make(map[string]int)

	for _, p := range active {
		if _, seen := rowIdx[p.MealType]; seen {
			continue
		}
		rows = append(rows, models.DailyMealRow{MealType: p.MealType})
		rowIdx[p.MealType] = len(rows) - 1
	}

	for i := range events {
		ev := &events[i]
		if ev.IsVoid || ev.PolicyID == nil {
			continue
		}

		mt, ok := mealType[*ev.PolicyID]
		if !ok {
			// Classified against a since-deactivated policy; it still
			// counted at creation but has no active row to land in.
			continue
		}

		row := &rows[rowIdx[mt]]
		row.EmployeeCount++
		row.GuestCount += ev.GuestCount
	}

	return rows, nil
}

// MonthlyByDay buckets one month's events by local calendar day. Every day
// of the month appears, zero or not, so chart rendering needs no gap fill.
func (s *StatsService) MonthlyByDay(
	ctx context.Context, year int, month int,
) ([]models.MonthlyDay, error) {
	from, to := clock.MonthRange(year, time.Month(month))

	events, err := s.events.InRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	days := clock.DaysInMonth(year, time.Month(month))
	result := make([]models.MonthlyDay, days)
	for d := 0; d < days; d++ {
		result[d] = models.MonthlyDay{
			Date: clock.LocalDate{Year: year, Month: time.Month(month), Day: d + 1}.String(),
		}
	}

	for i := range events {
		ev := &events[i]
		if ev.IsVoid {
			continue
		}

		day := clock.DateOf(ev.OccurredAt).Day
		bucket := &result[day-1]
		// Count is non-void events per day; guest totals are carried
		// separately in GuestCount.
		bucket.Count++
		bucket.GuestCount += ev.GuestCount
		bucket.Amount += ev.Amount()
	}

	return result, nil
}

// DepartmentTotals rolls up non-void events per department over an
// inclusive local date range.
func (s *StatsService) DepartmentTotals(
	ctx context.Context, from, to clock.LocalDate,
) ([]models.DepartmentTotal, error) {
	start, end := clock.Range(from, to)
	return s.events.DepartmentTotals(ctx, start, end)
}
