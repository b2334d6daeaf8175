package client

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// AuditService handles audit trail queries.
type AuditService struct {
	c *Client
}

// auditQueryResponse wraps the paginated audit query response.
type auditQueryResponse struct {
	Records []AuditRecord `json:"records"`
	HasMore bool          `json:"has_more"`
}

// Query returns audit records matching the filters, newest first.
func (s *AuditService) Query(ctx context.Context, opts *AuditQueryOptions) ([]AuditRecord, bool, error) {
	params := url.Values{}
	if opts != nil {
		if opts.TargetKind != "" {
			params.Set("target_kind", opts.TargetKind)
		}
		if opts.TargetID != 0 {
			params.Set("target_id", strconv.FormatInt(opts.TargetID, 10))
		}
		if opts.Action != "" {
			params.Set("action", opts.Action)
		}
		if opts.Since != nil {
			params.Set("since", opts.Since.Format(time.RFC3339))
		}
		if opts.Limit > 0 {
			params.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			params.Set("offset", strconv.Itoa(opts.Offset))
		}
	}
	var resp auditQueryResponse
	if err := s.c.get(ctx, "/api/v1/audit", params, &resp); err != nil {
		return nil, false, err
	}
	return resp.Records, resp.HasMore, nil
}
