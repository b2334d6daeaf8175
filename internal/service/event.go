// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gmdcok-crypto/meal-manage/internal/clock"
	"github.com/gmdcok-crypto/meal-manage/internal/domain"
	"github.com/gmdcok-crypto/meal-manage/internal/metrics"
	"github.com/gmdcok-crypto/meal-manage/internal/models"
	"github.com/gmdcok-crypto/meal-manage/internal/schedule"
	"github.com/gmdcok-crypto/meal-manage/internal/ws"
)

// EventStore is the data-access interface EventService depends on.
type EventStore interface {
	Get(ctx context.Context, eventID int64) (*models.MealEvent, error)
	Create(ctx context.Context, ev *models.MealEvent, operatorID int64, reason string) (*models.MealEvent, error)
	Update(ctx context.Context, eventID int64, req models.UpdateEventRequest) (*models.MealEvent, error)
	Void(ctx context.Context, eventID int64, reason string, operatorID int64) (*models.MealEvent, error)
	Delete(ctx context.Context, eventID int64, operatorID int64) error
	List(ctx context.Context, filter models.EventFilter) ([]models.MealEvent, bool, error)
}

// PolicyReader resolves policies for classification.
type PolicyReader interface {
	Get(ctx context.Context, policyID int64) (*models.Policy, error)
	ListActive(ctx context.Context) ([]models.Policy, error)
}

// SubjectReader resolves registry subjects.
type SubjectReader interface {
	GetSubject(ctx context.Context, subjectID int64) (*models.Subject, error)
}

// Notifier publishes realtime notifications. Publishing is fire-and-forget:
// a full queue or absent observers never fail the mutation that triggered it.
type Notifier interface {
	Notify(eventType string, data any)
}

// Compile-time check: *EventService must satisfy domain.EventService.
var _ domain.EventService = (*EventService)(nil)

// EventService records, edits, and voids meal events. Classification
// happens here: the store receives events with policy and price already
// resolved.
type EventService struct {
	store    EventStore
	policies PolicyReader
	registry SubjectReader
	notifier Notifier
	log      *logrus.Logger
}

// NewEventService creates an EventService.
func NewEventService(
	store EventStore, policies PolicyReader, registry SubjectReader, notifier Notifier, log *logrus.Logger,
) *EventService {
	return &EventService{store: store, policies: policies, registry: registry, notifier: notifier, log: log}
}

// Record classifies and stores one meal event.
//
// With no explicit policy, the declared instant is projected to local
// time-of-day and matched against the active window set; a failed match
// stores an unclassified event with a zero price snapshot. An explicit
// policy id bypasses matching and must exist.
func (s *EventService) Record(ctx context.Context, req models.RecordEventRequest) (*models.MealEvent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.registry.GetSubject(ctx, req.SubjectID); err != nil {
		return nil, err
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != "" {
		t, err := clock.ParseLocalDateTime(req.OccurredAt)
		if err != nil {
			return nil, err
		}
		occurredAt = t
	}

	policyID, finalPrice, err := s.classify(ctx, req.PolicyID, occurredAt)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, &models.MealEvent{
		SubjectID:  req.SubjectID,
		PolicyID:   policyID,
		GuestCount: req.GuestCount,
		Path:       req.Path,
		FinalPrice: finalPrice,
		OccurredAt: occurredAt,
	}, req.OperatorID, req.Reason)
	if err != nil {
		return nil, err
	}

	metrics.EventsRecorded.WithLabelValues(string(created.Path)).Inc()
	if created.PolicyID == nil {
		metrics.EventsUnclassified.Inc()
	}

	s.notifier.Notify(ws.EventCreated, created)

	return created, nil
}

// classify resolves the policy reference and price snapshot for a new event.
func (s *EventService) classify(
	ctx context.Context, explicit *int64, occurredAt time.Time,
) (*int64, int, error) {
	if explicit != nil {
		p, err := s.policies.Get(ctx, *explicit)
		if err != nil {
			return nil, 0, err
		}
		return &p.ID, p.BasePrice, nil
	}

	active, err := s.policies.ListActive(ctx)
	if err != nil {
		return nil, 0, err
	}

	match := schedule.Match(clock.TimeOfDayAt(occurredAt), active)
	if match == nil {
		return nil, 0, nil
	}

	return &match.ID, match.BasePrice, nil
}

// Scan is the self-service entry path: it verifies the subject against the
// registry, records the event, and returns both so the terminal can show
// who just checked in. A SUBJECT_VERIFIED notification precedes the
// EVENT_CREATED one.
func (s *EventService) Scan(
	ctx context.Context, req models.RecordEventRequest,
) (*models.MealEvent, *models.Subject, error) {
	subject, err := s.registry.GetSubject(ctx, req.SubjectID)
	if err != nil {
		return nil, nil, err
	}

	s.notifier.Notify(ws.SubjectVerified, subject)

	if req.Path == "" {
		req.Path = models.PathScan
	}

	created, err := s.Record(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	return created, subject, nil
}

// Get returns a single event (pass-through).
func (s *EventService) Get(ctx context.Context, eventID int64) (*models.MealEvent, error) {
	return s.store.Get(ctx, eventID)
}

// List returns events matching the filter (pass-through).
func (s *EventService) List(
	ctx context.Context, filter models.EventFilter,
) ([]models.MealEvent, bool, error) {
	return s.store.List(ctx, filter)
}

// Update edits an event. Subject reassignment is validated against the
// registry before the store transaction runs.
func (s *EventService) Update(
	ctx context.Context, eventID int64, req models.UpdateEventRequest,
) (*models.MealEvent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.SubjectID != nil {
		if _, err := s.registry.GetSubject(ctx, *req.SubjectID); err != nil {
			return nil, err
		}
	}

	return s.store.Update(ctx, eventID, req)
}

// Void marks an event voided and broadcasts the transition.
func (s *EventService) Void(
	ctx context.Context, eventID int64, req models.VoidEventRequest,
) (*models.MealEvent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	voided, err := s.store.Void(ctx, eventID, req.Reason, req.OperatorID)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ws.EventVoided, voided)

	return voided, nil
}

// Delete hard-removes an event (pass-through).
func (s *EventService) Delete(ctx context.Context, eventID int64, operatorID int64) error {
	return s.store.Delete(ctx, eventID, operatorID)
}
