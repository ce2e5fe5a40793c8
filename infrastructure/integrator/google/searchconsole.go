package google

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
)

// Limite máximo de linhas por página da searchAnalytics/query
const gscMaxRowLimit = 25000

type gscQueryRequest struct {
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Dimensions []string `json:"dimensions,omitempty"`
	RowLimit   int      `json:"rowLimit"`
	StartRow   int      `json:"startRow"`
}

type gscRow struct {
	Keys        []string `json:"keys"`
	Clicks      float64  `json:"clicks"`
	Impressions float64  `json:"impressions"`
	CTR         float64  `json:"ctr"`
	Position    float64  `json:"position"`
}

func (r gscRow) metric(name string) string {
	var v float64
	switch name {
	case "clicks":
		v = r.Clicks
	case "impressions":
		v = r.Impressions
	case "ctr":
		v = r.CTR
	case "position":
		v = r.Position
	default:
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type gscQueryResponse struct {
	Rows []gscRow `json:"rows"`
}

// GSCSource consulta a Search Analytics API do Search Console
type GSCSource struct {
	baseURL  string
	rowLimit int
	client   *client
}

// NewGSCSource cria o adaptador do Search Console; httpClient nil usa o padrão
func NewGSCSource(cfg *config.Config, httpClient *http.Client) *GSCSource {
	rowLimit := cfg.GSC.RowLimit
	if rowLimit <= 0 || rowLimit > gscMaxRowLimit {
		rowLimit = gscMaxRowLimit
	}

	return &GSCSource{
		baseURL:  strings.TrimRight(cfg.GSC.BaseURL, "/"),
		rowLimit: rowLimit,
		client:   newClient(domain.SourceGSC, httpClient),
	}
}

// Fetch executa searchAnalytics/query paginando por startRow enquanto a
// página vier cheia
func (s *GSCSource) Fetch(ctx context.Context, query domain.ReportQuery) ([]domain.ReportRow, error) {
	endpoint := fmt.Sprintf("%s/sites/%s/searchAnalytics/query", s.baseURL, url.PathEscape(query.Target))

	req := gscQueryRequest{
		StartDate:  query.DateRange.StartString(),
		EndDate:    query.DateRange.EndString(),
		Dimensions: query.Dimensions,
		RowLimit:   s.rowLimit,
	}

	var rows []domain.ReportRow
	for {
		req.StartRow = len(rows)

		var resp gscQueryResponse
		if err := s.client.post(ctx, endpoint, query.AccessToken, nil, req, &resp); err != nil {
			return nil, err
		}

		for _, r := range resp.Rows {
			metrics := make([]string, len(query.Metrics))
			for i, name := range query.Metrics {
				metrics[i] = r.metric(name)
			}
			rows = append(rows, domain.ReportRow{Dimensions: r.Keys, Metrics: metrics})
		}

		if len(resp.Rows) < s.rowLimit {
			break
		}
		if query.Limit > 0 && len(rows) >= query.Limit {
			break
		}
	}

	return rows, nil
}
