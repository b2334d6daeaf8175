package client

import (
	"context"
	"net/url"
	"strconv"
)

// EventService handles meal event operations.
type EventService struct {
	c *Client
}

// eventListResponse wraps the paginated event list response.
type eventListResponse struct {
	Events  []MealEvent `json:"events"`
	HasMore bool        `json:"has_more"`
}

// Scan records a self-service check-in and returns the verified subject
// alongside the event.
func (s *EventService) Scan(ctx context.Context, req *RecordEventRequest) (*ScanResponse, error) {
	var resp ScanResponse
	if err := s.c.post(ctx, "/api/v1/events/scan", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Record creates a meal event through the administrative path.
func (s *EventService) Record(ctx context.Context, req *RecordEventRequest) (*MealEvent, error) {
	var ev MealEvent
	if err := s.c.post(ctx, "/api/v1/events", req, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// Get returns a single event by id.
func (s *EventService) Get(ctx context.Context, id int64) (*MealEvent, error) {
	var ev MealEvent
	if err := s.c.get(ctx, "/api/v1/events/"+strconv.FormatInt(id, 10), nil, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// List returns events in a date range with optional filters.
func (s *EventService) List(ctx context.Context, opts *EventListOptions) ([]MealEvent, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.From != "" {
			params.Set("from", opts.From)
		}
		if opts.To != "" {
			params.Set("to", opts.To)
		}
		if opts.Search != "" {
			params.Set("search", opts.Search)
		}
		if opts.Path != "" {
			params.Set("path", opts.Path)
		}
		if opts.IsVoid != nil {
			params.Set("is_void", strconv.FormatBool(*opts.IsVoid))
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
	}
	var resp eventListResponse
	if err := s.c.get(ctx, "/api/v1/events", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Events, resp.HasMore, nil
}

// Update edits an event.
func (s *EventService) Update(ctx context.Context, id int64, req *UpdateEventRequest) (*MealEvent, error) {
	var ev MealEvent
	if err := s.c.put(ctx, "/api/v1/events/"+strconv.FormatInt(id, 10), req, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// Void marks an event voided.
func (s *EventService) Void(ctx context.Context, id int64, req *VoidEventRequest) (*MealEvent, error) {
	var ev MealEvent
	if err := s.c.patch(ctx, "/api/v1/events/"+strconv.FormatInt(id, 10)+"/void", req, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// Delete hard-removes an event.
func (s *EventService) Delete(ctx context.Context, id int64, operatorID int64) error {
	params := url.Values{}
	if operatorID != 0 {
		params.Set("operator_id", strconv.FormatInt(operatorID, 10))
	}
	return s.c.del(ctx, "/api/v1/events/"+strconv.FormatInt(id, 10), params, nil)
}
