package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gmdcok-crypto/meal-manage/internal/clock"
	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// EventStore provides data access for the meal_events table. Every
// mutation writes exactly one audit record in the same transaction; a
// rejected operation (unknown event, double void, unknown policy) writes
// nothing at all.
type EventStore struct {
	Base
}

// NewEventStore creates an EventStore.
func NewEventStore(base Base) *EventStore {
	return &EventStore{Base: base}
}

const eventColumns = `id, employee_id, policy_id, guest_count, path, final_price,
	is_void, void_reason, void_operator, voided_at, occurred_at, recorded_at`

func scanEvent(row pgx.Row) (*models.MealEvent, error) {
	var e models.MealEvent
	err := row.Scan(
		&e.ID, &e.SubjectID, &e.PolicyID, &e.GuestCount, &e.Path, &e.FinalPrice,
		&e.IsVoid, &e.VoidReason, &e.VoidedBy, &e.VoidedAt, &e.OccurredAt, &e.RecordedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Get returns a single event by id, without display labels.
func (s *EventStore) Get(ctx context.Context, eventID int64) (*models.MealEvent, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	e, err := scanEvent(s.Pool.QueryRow(ctx,
		"SELECT "+eventColumns+" FROM meal_events WHERE id = $1", eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("getting event %d: %w", eventID, err)
	}

	return e, nil
}

// Create inserts a classified (or unclassified) event together with its
// CREATE audit record. The caller has already resolved classification and
// the price snapshot; this method owns atomicity only.
func (s *EventStore) Create(
	ctx context.Context, ev *models.MealEvent, operatorID int64, reason string,
) (*models.MealEvent, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	created, err := scanEvent(tx.QueryRow(ctx, `
		INSERT INTO meal_events (employee_id, policy_id, guest_count, path, final_price, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+eventColumns,
		ev.SubjectID, ev.PolicyID, ev.GuestCount, ev.Path, ev.FinalPrice, ev.OccurredAt,
	))
	if err != nil {
		return nil, fmt.Errorf("inserting event: %w", err)
	}

	err = insertAudit(ctx, tx, &models.AuditRecord{
		OperatorID: resolveOperator(ctx, tx, operatorID),
		Action:     models.AuditCreate,
		TargetKind: models.TargetEvent,
		TargetID:   created.ID,
		Reason:     reason,
		Change: models.ChangeSet{EventCreate: &models.EventCreateChange{
			SubjectID:  created.SubjectID,
			PolicyID:   created.PolicyID,
			GuestCount: created.GuestCount,
			Path:       created.Path,
			FinalPrice: created.FinalPrice,
		}},
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing event create: %w", err)
	}

	return created, nil
}

// Update applies the supplied fields to an event and records the touched
// fields in an UPDATE audit record, all in one transaction.
//
// A policy reassignment is an explicit override: it bypasses window
// matching and re-snapshots final_price from the new policy's current base
// price. All other edits leave the snapshot untouched.
func (s *EventStore) Update(
	ctx context.Context, eventID int64, req models.UpdateEventRequest,
) (*models.MealEvent, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	before, err := scanEvent(tx.QueryRow(ctx,
		"SELECT "+eventColumns+" FROM meal_events WHERE id = $1 FOR UPDATE", eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("locking event %d: %w", eventID, err)
	}

	after := *before
	var deltaBefore, deltaAfter models.EventDelta

	if req.SubjectID != nil && *req.SubjectID != before.SubjectID {
		deltaBefore.SubjectID, deltaAfter.SubjectID = &before.SubjectID, req.SubjectID
		after.SubjectID = *req.SubjectID
	}
	if req.PolicyID != nil && !sameID(req.PolicyID, before.PolicyID) {
		var basePrice int
		err := tx.QueryRow(ctx,
			"SELECT base_price FROM meal_policies WHERE id = $1", *req.PolicyID).Scan(&basePrice)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, models.ErrPolicyNotFound
			}
			return nil, fmt.Errorf("resolving policy %d: %w", *req.PolicyID, err)
		}

		deltaBefore.PolicyID, deltaAfter.PolicyID = before.PolicyID, req.PolicyID
		deltaBefore.FinalPrice = &before.FinalPrice
		deltaAfter.FinalPrice = &basePrice
		after.PolicyID = req.PolicyID
		after.FinalPrice = basePrice
	}
	if req.GuestCount != nil && *req.GuestCount != before.GuestCount {
		deltaBefore.GuestCount, deltaAfter.GuestCount = &before.GuestCount, req.GuestCount
		after.GuestCount = *req.GuestCount
	}
	if req.OccurredAt != nil {
		occurred, err := clock.ParseLocalDateTime(*req.OccurredAt)
		if err != nil {
			return nil, err
		}
		if !occurred.Equal(before.OccurredAt) {
			beforeStr := clock.FormatLocal(before.OccurredAt)
			afterStr := clock.FormatLocal(occurred)
			deltaBefore.OccurredAt, deltaAfter.OccurredAt = &beforeStr, &afterStr
			after.OccurredAt = occurred
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE meal_events
		SET employee_id = $2, policy_id = $3, guest_count = $4, final_price = $5, occurred_at = $6
		WHERE id = $1`,
		eventID, after.SubjectID, after.PolicyID, after.GuestCount, after.FinalPrice, after.OccurredAt,
	)
	if err != nil {
		return nil, fmt.Errorf("updating event %d: %w", eventID, err)
	}

	err = insertAudit(ctx, tx, &models.AuditRecord{
		OperatorID: resolveOperator(ctx, tx, req.OperatorID),
		Action:     models.AuditUpdate,
		TargetKind: models.TargetEvent,
		TargetID:   eventID,
		Reason:     req.Reason,
		Change: models.ChangeSet{EventUpdate: &models.EventUpdateChange{
			Before: deltaBefore,
			After:  deltaAfter,
		}},
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing event update: %w", err)
	}

	return &after, nil
}

// Void marks an event voided and records the transition, atomically.
// A second void returns ErrAlreadyVoided with the first void's metadata
// left untouched.
func (s *EventStore) Void(
	ctx context.Context, eventID int64, reason string, operatorID int64,
) (*models.MealEvent, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	before, err := scanEvent(tx.QueryRow(ctx,
		"SELECT "+eventColumns+" FROM meal_events WHERE id = $1 FOR UPDATE", eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("locking event %d: %w", eventID, err)
	}

	if before.IsVoid {
		return nil, models.ErrAlreadyVoided
	}

	voidedAt := time.Now().UTC()
	operator := resolveOperator(ctx, tx, operatorID)

	voided, err := scanEvent(tx.QueryRow(ctx, `
		UPDATE meal_events
		SET is_void = TRUE, void_reason = $2, void_operator = $3, voided_at = $4
		WHERE id = $1
		RETURNING `+eventColumns,
		eventID, reason, operator, voidedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("voiding event %d: %w", eventID, err)
	}

	err = insertAudit(ctx, tx, &models.AuditRecord{
		OperatorID: operator,
		Action:     models.AuditVoid,
		TargetKind: models.TargetEvent,
		TargetID:   eventID,
		Reason:     reason,
		Change: models.ChangeSet{EventVoid: &models.EventVoidChange{
			Reason:   reason,
			VoidedAt: clock.FormatLocal(voidedAt),
		}},
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing event void: %w", err)
	}

	return voided, nil
}

// Delete hard-removes an event. The DELETE audit record still references
// the now-gone target id and snapshots the removed row.
func (s *EventStore) Delete(ctx context.Context, eventID int64, operatorID int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	before, err := scanEvent(tx.QueryRow(ctx,
		"SELECT "+eventColumns+" FROM meal_events WHERE id = $1 FOR UPDATE", eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrEventNotFound
		}
		return fmt.Errorf("locking event %d: %w", eventID, err)
	}

	err = insertAudit(ctx, tx, &models.AuditRecord{
		OperatorID: resolveOperator(ctx, tx, operatorID),
		Action:     models.AuditDelete,
		TargetKind: models.TargetEvent,
		TargetID:   eventID,
		Change: models.ChangeSet{EventDelete: &models.EventDeleteChange{
			SubjectID:  before.SubjectID,
			PolicyID:   before.PolicyID,
			GuestCount: before.GuestCount,
			Path:       before.Path,
			FinalPrice: before.FinalPrice,
			OccurredAt: clock.FormatLocal(before.OccurredAt),
		}},
	})
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, "DELETE FROM meal_events WHERE id = $1", eventID); err != nil {
		return fmt.Errorf("deleting event %d: %w", eventID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing event delete: %w", err)
	}

	return nil
}

// sameID compares two nullable ids.
func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
