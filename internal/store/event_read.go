package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// List returns events in the filter's instant range with denormalized
// subject/policy/department labels, newest first. Returns events, hasMore
// flag, and any error.
func (s *EventStore) List(
	ctx context.Context, filter models.EventFilter,
) ([]models.MealEvent, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var conditions []string
	var args []any
	argIdx := 1

	if !filter.From.IsZero() {
		conditions = append(conditions, "ev.occurred_at >= $"+strconv.Itoa(argIdx))
		args = append(args, filter.From)
		argIdx++
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, "ev.occurred_at < $"+strconv.Itoa(argIdx))
		args = append(args, filter.To)
		argIdx++
	}
	if filter.Search != "" {
		p := "$" + strconv.Itoa(argIdx)
		conditions = append(conditions, "(e.name ILIKE "+p+" OR e.emp_no ILIKE "+p+")")
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.Path != "" {
		conditions = append(conditions, "ev.path = $"+strconv.Itoa(argIdx))
		args = append(args, filter.Path)
		argIdx++
	}
	if filter.IsVoid != nil {
		conditions = append(conditions, "ev.is_void = $"+strconv.Itoa(argIdx))
		args = append(args, *filter.IsVoid)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}

	query := fmt.Sprintf(`
		SELECT ev.id, ev.employee_id, ev.policy_id, ev.guest_count, ev.path, ev.final_price,
		       ev.is_void, ev.void_reason, ev.void_operator, ev.voided_at, ev.occurred_at, ev.recorded_at,
		       COALESCE(e.name, ''), COALESCE(e.emp_no, ''), COALESCE(d.name, ''), COALESCE(p.meal_type, '')
		FROM meal_events ev
		LEFT JOIN employees e ON e.id = ev.employee_id
		LEFT JOIN departments d ON d.id = e.department_id
		LEFT JOIN meal_policies p ON p.id = ev.policy_id
		%s ORDER BY ev.occurred_at DESC, ev.id DESC LIMIT $%d OFFSET $%d`,
		where, argIdx, argIdx+1,
	)
	args = append(args, limit+1, filter.Offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []models.MealEvent
	for rows.Next() {
		var e models.MealEvent
		if err := rows.Scan(
			&e.ID, &e.SubjectID, &e.PolicyID, &e.GuestCount, &e.Path, &e.FinalPrice,
			&e.IsVoid, &e.VoidReason, &e.VoidedBy, &e.VoidedAt, &e.OccurredAt, &e.RecordedAt,
			&e.SubjectName, &e.SubjectNumber, &e.DepartmentName, &e.MealType,
		); err != nil {
			return nil, false, fmt.Errorf("scanning event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("reading event rows: %w", err)
	}

	hasMore := len(events) > limit
	if hasMore {
		events = events[:limit]
	}

	return events, hasMore, nil
}

// InRange returns all events whose occurred_at lies in the half-open
// instant interval [from, to), oldest first, without labels. This is the
// aggregation engine's read path: it bucketing-projects instants itself
// and must never depend on pre-formatted local values.
func (s *EventStore) InRange(ctx context.Context, from, to time.Time) ([]models.MealEvent, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		"SELECT "+eventColumns+" FROM meal_events WHERE occurred_at >= $1 AND occurred_at < $2 ORDER BY occurred_at ASC, id ASC",
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("querying events in range: %w", err)
	}
	defer rows.Close()

	var events []models.MealEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading event rows: %w", err)
	}

	return events, nil
}

// DepartmentTotals sums non-void events per department over the half-open
// instant interval [from, to). Events whose subject has no department are
// omitted by the inner join, per the reporting contract.
func (s *EventStore) DepartmentTotals(
	ctx context.Context, from, to time.Time,
) ([]models.DepartmentTotal, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `
		SELECT d.name, COUNT(ev.id), COALESCE(SUM(ev.guest_count), 0)
		FROM meal_events ev
		JOIN employees e ON e.id = ev.employee_id
		JOIN departments d ON d.id = e.department_id
		WHERE ev.occurred_at >= $1 AND ev.occurred_at < $2 AND NOT ev.is_void
		GROUP BY d.name
		ORDER BY d.name`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("querying department totals: %w", err)
	}
	defer rows.Close()

	var totals []models.DepartmentTotal
	for rows.Next() {
		var t models.DepartmentTotal
		if err := rows.Scan(&t.DepartmentName, &t.Count, &t.GuestCount); err != nil {
			return nil, fmt.Errorf("scanning department total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading department totals: %w", err)
	}

	return totals, nil
}
