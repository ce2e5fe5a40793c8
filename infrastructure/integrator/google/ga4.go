package google

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
)

type ga4DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type ga4Field struct {
	Name string `json:"name"`
}

type ga4RunReportRequest struct {
	DateRanges []ga4DateRange `json:"dateRanges"`
	Dimensions []ga4Field     `json:"dimensions,omitempty"`
	Metrics    []ga4Field     `json:"metrics"`
	Limit      int            `json:"limit,omitempty"`
	Offset     int            `json:"offset,omitempty"`
}

type ga4Value struct {
	Value string `json:"value"`
}

type ga4Row struct {
	DimensionValues []ga4Value `json:"dimensionValues"`
	MetricValues    []ga4Value `json:"metricValues"`
}

type ga4RunReportResponse struct {
	Rows     []ga4Row `json:"rows"`
	RowCount int      `json:"rowCount"`
}

// GA4Source consulta a Data API do GA4 (properties/{id}:runReport)
type GA4Source struct {
	baseURL  string
	pageSize int
	client   *client
}

// NewGA4Source cria o adaptador do GA4; httpClient nil usa o padrão
func NewGA4Source(cfg *config.Config, httpClient *http.Client) *GA4Source {
	pageSize := cfg.GA4.PageSize
	if pageSize <= 0 {
		pageSize = 10000
	}

	return &GA4Source{
		baseURL:  strings.TrimRight(cfg.GA4.BaseURL, "/"),
		pageSize: pageSize,
		client:   newClient(domain.SourceGA4, httpClient),
	}
}

// Fetch executa runReport paginando por offset até rowCount ou query.Limit
func (s *GA4Source) Fetch(ctx context.Context, query domain.ReportQuery) ([]domain.ReportRow, error) {
	url := fmt.Sprintf("%s/properties/%s:runReport", s.baseURL, query.Target)

	req := ga4RunReportRequest{
		DateRanges: []ga4DateRange{{StartDate: query.DateRange.StartString(), EndDate: query.DateRange.EndString()}},
		Dimensions: toGA4Fields(query.Dimensions),
		Metrics:    toGA4Fields(query.Metrics),
	}

	var rows []domain.ReportRow
	for {
		req.Offset = len(rows)
		req.Limit = s.pageLimit(query.Limit, len(rows))

		var resp ga4RunReportResponse
		if err := s.client.post(ctx, url, query.AccessToken, nil, req, &resp); err != nil {
			return nil, err
		}

		for _, r := range resp.Rows {
			rows = append(rows, domain.ReportRow{
				Dimensions: values(r.DimensionValues),
				Metrics:    values(r.MetricValues),
			})
		}

		if len(resp.Rows) == 0 || len(rows) >= resp.RowCount {
			break
		}
		if query.Limit > 0 && len(rows) >= query.Limit {
			break
		}
	}

	return rows, nil
}

func (s *GA4Source) pageLimit(limit, fetched int) int {
	if limit > 0 && limit-fetched < s.pageSize {
		return limit - fetched
	}
	return s.pageSize
}

func toGA4Fields(names []string) []ga4Field {
	fields := make([]ga4Field, len(names))
	for i, n := range names {
		fields[i] = ga4Field{Name: n}
	}
	return fields
}

func values(vs []ga4Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Value
	}
	return out
}
