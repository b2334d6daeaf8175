package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// AuditStore provides read access to the audit_log table. Writes happen
// through insertAudit inside the mutating store's transaction; there is no
// standalone write path, which is what keeps the trail and the primary
// mutation atomic.
type AuditStore struct {
	Base
}

// NewAuditStore creates an AuditStore.
func NewAuditStore(base Base) *AuditStore {
	return &AuditStore{Base: base}
}

// resolveOperator returns the operator id if the employee exists, or nil.
// An unresolved operator never fails the mutation; the audit record simply
// carries a null operator.
func resolveOperator(ctx context.Context, tx pgx.Tx, operatorID int64) *int64 {
	if operatorID == 0 {
		return nil
	}

	var id int64
	err := tx.QueryRow(ctx, "SELECT id FROM employees WHERE id = $1", operatorID).Scan(&id)
	if err != nil {
		return nil
	}

	return &id
}

// insertAudit writes one audit row within the caller's transaction.
func insertAudit(ctx context.Context, tx pgx.Tx, rec *models.AuditRecord) error {
	changeJSON, err := json.Marshal(rec.Change)
	if err != nil {
		return fmt.Errorf("marshaling audit change set: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO audit_log (operator_id, action, target_kind, target_id, change, reason)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.OperatorID, rec.Action, rec.TargetKind, rec.TargetID, changeJSON, nullIfEmpty(rec.Reason),
	)
	if err != nil {
		return fmt.Errorf("inserting audit record: %w", err)
	}

	return nil
}

// nullIfEmpty maps "" to SQL NULL for optional varchar columns.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// buildAuditFilter builds WHERE clause and args from AuditQueryOpts.
func buildAuditFilter(opts models.AuditQueryOpts) (where string, args []any, nextArg int) {
	var conditions []string
	argIdx := 1

	if opts.TargetKind != "" {
		conditions = append(conditions, "a.target_kind = $"+strconv.Itoa(argIdx))
		args = append(args, opts.TargetKind)
		argIdx++
	}
	if opts.TargetID != 0 {
		conditions = append(conditions, "a.target_id = $"+strconv.Itoa(argIdx))
		args = append(args, opts.TargetID)
		argIdx++
	}
	if opts.Action != "" {
		conditions = append(conditions, "a.action = $"+strconv.Itoa(argIdx))
		args = append(args, opts.Action)
		argIdx++
	}
	if opts.Since != nil {
		conditions = append(conditions, "a.created_at >= $"+strconv.Itoa(argIdx))
		args = append(args, *opts.Since)
		argIdx++
	}

	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	return where, args, argIdx
}

// Query returns audit records matching the given filters, newest first.
// Returns records, hasMore flag, and any error.
func (s *AuditStore) Query(
	ctx context.Context, opts models.AuditQueryOpts,
) ([]models.AuditRecord, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	where, args, argIdx := buildAuditFilter(opts)

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.operator_id, a.action, a.target_kind, a.target_id,
		       a.change, a.reason, a.created_at, COALESCE(e.name, '')
		FROM audit_log a
		LEFT JOIN employees e ON e.id = a.operator_id
		%s ORDER BY a.created_at DESC, a.id DESC LIMIT $%d OFFSET $%d`,
		where, argIdx, argIdx+1,
	)
	args = append(args, limit+1, opts.Offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var records []models.AuditRecord
	for rows.Next() {
		var rec models.AuditRecord
		var changeJSON []byte
		var reason *string

		if err := rows.Scan(
			&rec.ID, &rec.OperatorID, &rec.Action, &rec.TargetKind, &rec.TargetID,
			&changeJSON, &reason, &rec.CreatedAt, &rec.OperatorName,
		); err != nil {
			return nil, false, fmt.Errorf("scanning audit record: %w", err)
		}
		if reason != nil {
			rec.Reason = *reason
		}
		if changeJSON != nil {
			if err := json.Unmarshal(changeJSON, &rec.Change); err != nil {
				s.Log.WithError(err).Warn("failed to unmarshal audit change set")
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("reading audit rows: %w", err)
	}

	hasMore := len(records) > limit
	if hasMore {
		records = records[:limit]
	}

	return records, hasMore, nil
}
