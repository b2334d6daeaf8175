package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/gmdcok-crypto/meal-manage/internal/domain"
	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// AuditStore is the data-access interface AuditService depends on.
type AuditStore interface {
	Query(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditRecord, bool, error)
}

// Compile-time check: *AuditService must satisfy domain.AuditService.
var _ domain.AuditService = (*AuditService)(nil)

// AuditService exposes read access to the audit trail. Writing the trail is
// not a service concern; the stores append records inside their own
// mutation transactions.
type AuditService struct {
	store AuditStore
	log   *logrus.Logger
}

// NewAuditService creates an AuditService.
func NewAuditService(store AuditStore, log *logrus.Logger) *AuditService {
	return &AuditService{store: store, log: log}
}

// Query returns audit records matching the filters, newest first.
func (s *AuditService) Query(
	ctx context.Context, opts models.AuditQueryOpts,
) ([]models.AuditRecord, bool, error) {
	return s.store.Query(ctx, opts)
}
