package api

import "github.com/gmdcok-crypto/meal-manage/internal/domain"

// Handler dependencies are the canonical domain interfaces. Aliases keep
// handler signatures short without re-declaring the method sets.
type (
	// EventService is an alias for the canonical domain.EventService interface.
	EventService = domain.EventService
	// PolicyService is an alias for the canonical domain.PolicyService interface.
	PolicyService = domain.PolicyService
	// StatsService is an alias for the canonical domain.StatsService interface.
	StatsService = domain.StatsService
	// AuditService is an alias for the canonical domain.AuditService interface.
	AuditService = domain.AuditService
)
