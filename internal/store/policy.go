package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// PolicyStore provides data access for the meal_policies table.
type PolicyStore struct {
	Base
}

// NewPolicyStore creates a PolicyStore.
func NewPolicyStore(base Base) *PolicyStore {
	return &PolicyStore{Base: base}
}

const policyColumns = "id, company_id, meal_type, start_time, end_time, base_price, guest_price, is_active, created_at"

func scanPolicy(row pgx.Row) (*models.Policy, error) {
	var p models.Policy
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.MealType, &p.StartTime, &p.EndTime,
		&p.BasePrice, &p.GuestPrice, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActive returns the active policy set ordered by start time ascending,
// the order the window matcher requires.
func (s *PolicyStore) ListActive(ctx context.Context) ([]models.Policy, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		"SELECT "+policyColumns+" FROM meal_policies WHERE is_active ORDER BY start_time ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing active policies: %w", err)
	}
	defer rows.Close()

	return collectPolicies(rows)
}

// List returns all policies, active or not, ordered by start time.
func (s *PolicyStore) List(ctx context.Context) ([]models.Policy, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		"SELECT "+policyColumns+" FROM meal_policies ORDER BY start_time ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing policies: %w", err)
	}
	defer rows.Close()

	return collectPolicies(rows)
}

func collectPolicies(rows pgx.Rows) ([]models.Policy, error) {
	var policies []models.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning policy: %w", err)
		}
		policies = append(policies, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading policy rows: %w", err)
	}
	return policies, nil
}

// Get returns a single policy by id.
func (s *PolicyStore) Get(ctx context.Context, policyID int64) (*models.Policy, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	p, err := scanPolicy(s.Pool.QueryRow(ctx,
		"SELECT "+policyColumns+" FROM meal_policies WHERE id = $1", policyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPolicyNotFound
		}
		return nil, fmt.Errorf("getting policy %d: %w", policyID, err)
	}

	return p, nil
}

// Create inserts a policy and its audit record in one transaction.
func (s *PolicyStore) Create(
	ctx context.Context, req models.CreatePolicyRequest, operatorID int64,
) (*models.Policy, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	p, err := scanPolicy(tx.QueryRow(ctx, `
		INSERT INTO meal_policies (company_id, meal_type, start_time, end_time, base_price, guest_price, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+policyColumns,
		req.CompanyID, req.MealType, req.StartTime, req.EndTime, req.BasePrice, req.GuestPrice, req.Active(),
	))
	if err != nil {
		return nil, fmt.Errorf("inserting policy: %w", err)
	}

	err = insertAudit(ctx, tx, &models.AuditRecord{
		OperatorID: resolveOperator(ctx, tx, operatorID),
		Action:     models.AuditCreate,
		TargetKind: models.TargetPolicy,
		TargetID:   p.ID,
		Change: models.ChangeSet{PolicyCreate: &models.PolicyChange{
			MealType:   p.MealType,
			StartTime:  p.StartTime,
			EndTime:    p.EndTime,
			BasePrice:  p.BasePrice,
			GuestPrice: p.GuestPrice,
			IsActive:   p.IsActive,
		}},
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing policy create: %w", err)
	}

	return p, nil
}

// Update applies the supplied fields to a policy and records the touched
// fields in an audit record, all in one transaction. A policy edit never
// rewrites the price snapshots of events already recorded against it.
func (s *PolicyStore) Update(
	ctx context.Context, policyID int64, req models.UpdatePolicyRequest, operatorID int64,
) (*models.Policy, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	before, err := scanPolicy(tx.QueryRow(ctx,
		"SELECT "+policyColumns+" FROM meal_policies WHERE id = $1 FOR UPDATE", policyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPolicyNotFound
		}
		return nil, fmt.Errorf("locking policy %d: %w", policyID, err)
	}

	after := *before
	var deltaBefore, deltaAfter models.PolicyDelta

	if req.MealType != nil && *req.MealType != before.MealType {
		deltaBefore.MealType, deltaAfter.MealType = &before.MealType, req.MealType
		after.MealType = *req.MealType
	}
	if req.StartTime != nil && *req.StartTime != before.StartTime {
		deltaBefore.StartTime, deltaAfter.StartTime = &before.StartTime, req.StartTime
		after.StartTime = *req.StartTime
	}
	if req.EndTime != nil && *req.EndTime != before.EndTime {
		deltaBefore.EndTime, deltaAfter.EndTime = &before.EndTime, req.EndTime
		after.EndTime = *req.EndTime
	}
	if req.BasePrice != nil && *req.BasePrice != before.BasePrice {
		deltaBefore.BasePrice, deltaAfter.BasePrice = &before.BasePrice, req.BasePrice
		after.BasePrice = *req.BasePrice
	}
	if req.GuestPrice != nil && *req.GuestPrice != before.GuestPrice {
		deltaBefore.GuestPrice, deltaAfter.GuestPrice = &before.GuestPrice, req.GuestPrice
		after.GuestPrice = *req.GuestPrice
	}
	if req.IsActive != nil && *req.IsActive != before.IsActive {
		deltaBefore.IsActive, deltaAfter.IsActive = &before.IsActive, req.IsActive
		after.IsActive = *req.IsActive
	}

	_, err = tx.Exec(ctx, `
		UPDATE meal_policies
		SET meal_type = $2, start_time = $3, end_time = $4, base_price = $5, guest_price = $6, is_active = $7
		WHERE id = $1`,
		policyID, after.MealType, after.StartTime, after.EndTime, after.BasePrice, after.GuestPrice, after.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("updating policy %d: %w", policyID, err)
	}

	err = insertAudit(ctx, tx, &models.AuditRecord{
		OperatorID: resolveOperator(ctx, tx, operatorID),
		Action:     models.AuditUpdate,
		TargetKind: models.TargetPolicy,
		TargetID:   policyID,
		Change: models.ChangeSet{PolicyUpdate: &models.PolicyUpdateChange{
			Before: deltaBefore,
			After:  deltaAfter,
		}},
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing policy update: %w", err)
	}

	return &after, nil
}

// Delete removes a policy and records the deletion in one transaction.
// Events that snapshot this policy's price keep their snapshots; the FK
// merely nulls their policy reference.
func (s *PolicyStore) Delete(ctx context.Context, policyID int64, operatorID int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	before, err := scanPolicy(tx.QueryRow(ctx,
		"SELECT "+policyColumns+" FROM meal_policies WHERE id = $1 FOR UPDATE", policyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrPolicyNotFound
		}
		return fmt.Errorf("locking policy %d: %w", policyID, err)
	}

	err = insertAudit(ctx, tx, &models.AuditRecord{
		OperatorID: resolveOperator(ctx, tx, operatorID),
		Action:     models.AuditDelete,
		TargetKind: models.TargetPolicy,
		TargetID:   policyID,
		Change: models.ChangeSet{PolicyDelete: &models.PolicyChange{
			MealType:   before.MealType,
			StartTime:  before.StartTime,
			EndTime:    before.EndTime,
			BasePrice:  before.BasePrice,
			GuestPrice: before.GuestPrice,
			IsActive:   before.IsActive,
		}},
	})
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, "DELETE FROM meal_policies WHERE id = $1", policyID); err != nil {
		return fmt.Errorf("deleting policy %d: %w", policyID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing policy delete: %w", err)
	}

	return nil
}
