package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/alanpramil7/ytstudio/internal/yt"
)

type analyticsService struct {
	client *yt.Client
}

// NewAnalyticsService creates a new analytics service instance
func NewAnalyticsService(client *yt.Client) AnalyticsService {
	return &analyticsService{client: client}
}

// Query runs a single reports.query call. The request is expected to be
// validated already.
func (a *analyticsService) Query(ctx context.Context, req yt.ReportRequest) (*yt.Report, error) {
	call := a.client.Analytics().Reports.Query().
		Ids(req.IDs).
		StartDate(req.StartDate).
		EndDate(req.EndDate).
		Metrics(strings.Join(req.Metrics, ","))
	if len(req.Dimensions) > 0 {
		call = call.Dimensions(strings.Join(req.Dimensions, ","))
	}
	if req.Filters != "" {
		call = call.Filters(req.Filters)
	}
	if req.Sort != "" {
		call = call.Sort(req.Sort)
	}
	if req.MaxResults > 0 {
		call = call.MaxResults(req.MaxResults)
	}
	if req.Currency != "" {
		call = call.Currency(req.Currency)
	}

	response, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error querying analytics: %w", yt.Classify(err))
	}

	report := &yt.Report{
		Columns: make([]yt.Column, 0, len(response.ColumnHeaders)),
		Rows:    response.Rows,
	}
	for _, header := range response.ColumnHeaders {
		report.Columns = append(report.Columns, yt.Column{
			Name:       header.Name,
			ColumnType: header.ColumnType,
			DataType:   header.DataType,
		})
	}
	if report.Rows == nil {
		report.Rows = [][]any{}
	}
	return report, nil
}
