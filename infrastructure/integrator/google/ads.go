package google

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
)

type adsSearchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

type adsSearchResponse struct {
	Results       []map[string]any `json:"results"`
	NextPageToken string           `json:"nextPageToken"`
}

// AdsSource consulta a Google Ads API (customers/{id}/googleAds:search) com GAQL
type AdsSource struct {
	baseURL         string
	version         string
	developerToken  string
	loginCustomerID string
	client          *client
}

// NewAdsSource cria o adaptador do Google Ads; httpClient nil usa o padrão
func NewAdsSource(cfg *config.Config, httpClient *http.Client) *AdsSource {
	return &AdsSource{
		baseURL:         strings.TrimRight(cfg.Ads.BaseURL, "/"),
		version:         cfg.Ads.APIVersion,
		developerToken:  cfg.Ads.DeveloperToken,
		loginCustomerID: strings.ReplaceAll(cfg.Ads.LoginCustomerID, "-", ""),
		client:          newClient(domain.SourceAds, httpClient),
	}
}

// Fetch monta a consulta GAQL, segue nextPageToken e achata cada resultado
// na ordem das dimensões e métricas pedidas
func (s *AdsSource) Fetch(ctx context.Context, query domain.ReportQuery) ([]domain.ReportRow, error) {
	gaql, err := BuildGAQL(query)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/customers/%s/googleAds:search", s.baseURL, s.version, query.Target)

	headers := map[string]string{"developer-token": s.developerToken}
	if s.loginCustomerID != "" {
		headers["login-customer-id"] = s.loginCustomerID
	}

	req := adsSearchRequest{Query: gaql}

	var rows []domain.ReportRow
	for {
		var resp adsSearchResponse
		if err := s.client.post(ctx, url, query.AccessToken, headers, req, &resp); err != nil {
			return nil, err
		}

		for _, result := range resp.Results {
			rows = append(rows, domain.ReportRow{
				Dimensions: lookupAll(result, query.Dimensions),
				Metrics:    lookupAll(result, query.Metrics),
			})
		}

		if resp.NextPageToken == "" {
			break
		}
		req.PageToken = resp.NextPageToken
	}

	return rows, nil
}

// BuildGAQL monta SELECT <dimensões, métricas> FROM <recurso> WHERE
// segments.date BETWEEN ... AND <filtros> [LIMIT n]
func BuildGAQL(query domain.ReportQuery) (string, error) {
	if query.Resource == "" {
		return "", errors.New("GAQL resource is required")
	}

	fields := append(append([]string{}, query.Dimensions...), query.Metrics...)
	if len(fields) == 0 {
		return "", errors.New("GAQL query selects no fields")
	}

	builder := sq.Select(fields...).
		From(query.Resource).
		Where(fmt.Sprintf("segments.date BETWEEN '%s' AND '%s'", query.DateRange.StartString(), query.DateRange.EndString()))

	for _, filter := range query.Filters {
		builder = builder.Where(filter)
	}

	if query.Limit > 0 {
		builder = builder.Limit(uint64(query.Limit))
	}

	gaql, _, err := builder.ToSql()
	if err != nil {
		return "", errors.Wrap(err, "build GAQL")
	}

	return gaql, nil
}

func lookupAll(result map[string]any, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = lookup(result, p)
	}
	return out
}

// lookup resolve um campo GAQL (metrics.cost_micros) no JSON da resposta,
// que usa camelCase (metrics.costMicros). Campo ausente vale "".
func lookup(result map[string]any, path string) string {
	var current any = result
	for _, segment := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current, ok = obj[snakeToCamel(segment)]
		if !ok {
			return ""
		}
	}

	switch v := current.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
