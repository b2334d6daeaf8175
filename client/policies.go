package client

import (
	"context"
	"net/url"
	"strconv"
)

// PolicyService handles meal policy administration.
type PolicyService struct {
	c *Client
}

// policyListResponse wraps the policy list response.
type policyListResponse struct {
	Policies []Policy `json:"policies"`
}

// List returns policies; activeOnly restricts to the live window set.
func (s *PolicyService) List(ctx context.Context, activeOnly bool) ([]Policy, error) {
	params := url.Values{}
	if activeOnly {
		params.Set("active", "true")
	}
	var resp policyListResponse
	if err := s.c.get(ctx, "/api/v1/policies", params, &resp); err != nil {
		return nil, err
	}
	return resp.Policies, nil
}

// Get returns a single policy by id.
func (s *PolicyService) Get(ctx context.Context, id int64) (*Policy, error) {
	var p Policy
	if err := s.c.get(ctx, "/api/v1/policies/"+strconv.FormatInt(id, 10), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a meal policy.
func (s *PolicyService) Create(ctx context.Context, req *CreatePolicyRequest, operatorID int64) (*Policy, error) {
	var p Policy
	if err := s.c.post(ctx, "/api/v1/policies"+operatorQuery(operatorID), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update edits a meal policy.
func (s *PolicyService) Update(ctx context.Context, id int64, req *UpdatePolicyRequest, operatorID int64) (*Policy, error) {
	var p Policy
	if err := s.c.put(ctx, "/api/v1/policies/"+strconv.FormatInt(id, 10)+operatorQuery(operatorID), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a meal policy.
func (s *PolicyService) Delete(ctx context.Context, id int64, operatorID int64) error {
	params := url.Values{}
	if operatorID != 0 {
		params.Set("operator_id", strconv.FormatInt(operatorID, 10))
	}
	return s.c.del(ctx, "/api/v1/policies/"+strconv.FormatInt(id, 10), params, nil)
}

// operatorQuery builds the optional operator_id query suffix for write
// endpoints whose body is the domain payload.
func operatorQuery(operatorID int64) string {
	if operatorID == 0 {
		return ""
	}
	return "?operator_id=" + strconv.FormatInt(operatorID, 10)
}
