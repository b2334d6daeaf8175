package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/gmdcok-crypto/meal-manage/internal/domain"
	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// PolicyStore is the data-access interface PolicyService depends on.
type PolicyStore interface {
	List(ctx context.Context) ([]models.Policy, error)
	ListActive(ctx context.Context) ([]models.Policy, error)
	Get(ctx context.Context, policyID int64) (*models.Policy, error)
	Create(ctx context.Context, req models.CreatePolicyRequest, operatorID int64) (*models.Policy, error)
	Update(ctx context.Context, policyID int64, req models.UpdatePolicyRequest, operatorID int64) (*models.Policy, error)
	Delete(ctx context.Context, policyID int64, operatorID int64) error
}

// Compile-time check: *PolicyService must satisfy domain.PolicyService.
var _ domain.PolicyService = (*PolicyService)(nil)

// PolicyService administers meal policies. Overlapping windows are allowed;
// the first match in start-time order wins, so ordering is the operator's
// overlap resolution tool.
type PolicyService struct {
	store PolicyStore
	log   *logrus.Logger
}

// NewPolicyService creates a PolicyService.
func NewPolicyService(store PolicyStore, log *logrus.Logger) *PolicyService {
	return &PolicyService{store: store, log: log}
}

// List returns policies, optionally only active ones.
func (s *PolicyService) List(ctx context.Context, activeOnly bool) ([]models.Policy, error) {
	if activeOnly {
		return s.store.ListActive(ctx)
	}
	return s.store.List(ctx)
}

// Get returns a single policy (pass-through).
func (s *PolicyService) Get(ctx context.Context, policyID int64) (*models.Policy, error) {
	return s.store.Get(ctx, policyID)
}

// Create validates and stores a new policy.
func (s *PolicyService) Create(
	ctx context.Context, req models.CreatePolicyRequest, operatorID int64,
) (*models.Policy, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.store.Create(ctx, req, operatorID)
}

// Update validates and applies a partial policy edit. Price edits never
// touch snapshots already taken by recorded events.
func (s *PolicyService) Update(
	ctx context.Context, policyID int64, req models.UpdatePolicyRequest, operatorID int64,
) (*models.Policy, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, policyID, req, operatorID)
}

// Delete removes a policy (pass-through).
func (s *PolicyService) Delete(ctx context.Context, policyID int64, operatorID int64) error {
	return s.store.Delete(ctx, policyID, operatorID)
}
