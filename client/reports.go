package client

import (
	"context"
	"net/url"
	"strconv"
)

// ReportService handles the dashboard and reporting endpoints.
type ReportService struct {
	c *Client
}

// dailyReportResponse wraps the daily report payload.
type dailyReportResponse struct {
	Date  string         `json:"date"`
	Meals []DailyMealRow `json:"meals"`
}

// monthlyReportResponse wraps the monthly report payload.
type monthlyReportResponse struct {
	Year  int          `json:"year"`
	Month int          `json:"month"`
	Days  []MonthlyDay `json:"days"`
}

// departmentReportResponse wraps the department report payload.
type departmentReportResponse struct {
	Departments []DepartmentTotal `json:"departments"`
}

// Today returns the live snapshot of one local business day. An empty date
// means the current day.
func (s *ReportService) Today(ctx context.Context, date string) (*DailySnapshot, error) {
	params := url.Values{}
	if date != "" {
		params.Set("date", date)
	}
	var snap DailySnapshot
	if err := s.c.get(ctx, "/api/v1/dashboard/today", params, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Daily returns the per-meal-type breakdown of one local day.
func (s *ReportService) Daily(ctx context.Context, date string) ([]DailyMealRow, error) {
	params := url.Values{"date": {date}}
	var resp dailyReportResponse
	if err := s.c.get(ctx, "/api/v1/reports/daily", params, &resp); err != nil {
		return nil, err
	}
	return resp.Meals, nil
}

// Monthly returns per-day buckets over one local calendar month.
func (s *ReportService) Monthly(ctx context.Context, year, month int) ([]MonthlyDay, error) {
	params := url.Values{
		"year":  {strconv.Itoa(year)},
		"month": {strconv.Itoa(month)},
	}
	var resp monthlyReportResponse
	if err := s.c.get(ctx, "/api/v1/reports/monthly", params, &resp); err != nil {
		return nil, err
	}
	return resp.Days, nil
}

// Department returns per-department sums over an inclusive local date range.
func (s *ReportService) Department(ctx context.Context, from, to string) ([]DepartmentTotal, error) {
	params := url.Values{"from": {from}, "to": {to}}
	var resp departmentReportResponse
	if err := s.c.get(ctx, "/api/v1/reports/department", params, &resp); err != nil {
		return nil, err
	}
	return resp.Departments, nil
}
