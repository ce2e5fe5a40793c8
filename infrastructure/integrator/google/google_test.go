package google

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
)

func january() domain.DateRange {
	dr, _ := domain.NewDateRange(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	)
	return dr
}

func decodeBody(t *testing.T, r *http.Request, out any) {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestGA4Source_Fetch_Paginates(t *testing.T) {
	var offsets []int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/properties/42:runReport", r.URL.Path)
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))

		var req ga4RunReportRequest
		decodeBody(t, r, &req)
		offsets = append(offsets, req.Offset)

		assert.Equal(t, "2024-01-01", req.DateRanges[0].StartDate)
		assert.Equal(t, []ga4Field{{Name: "date"}}, req.Dimensions)

		if req.Offset == 0 {
			_, _ = w.Write([]byte(`{"rowCount":3,"rows":[
				{"dimensionValues":[{"value":"20240101"}],"metricValues":[{"value":"10"},{"value":"0.5"}]},
				{"dimensionValues":[{"value":"20240102"}],"metricValues":[{"value":"20"},{"value":"0.25"}]}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"rowCount":3,"rows":[
			{"dimensionValues":[{"value":"20240103"}],"metricValues":[{"value":"30"},{"value":"0"}]}]}`))
	}))
	defer srv.Close()

	source := NewGA4Source(&config.Config{GA4: config.GA4{BaseURL: srv.URL, PageSize: 2}}, srv.Client())

	rows, err := source.Fetch(context.Background(), domain.ReportQuery{
		Target:      "42",
		AccessToken: "access",
		DateRange:   january(),
		Dimensions:  []string{"date"},
		Metrics:     []string{"sessions", "bounceRate"},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2}, offsets)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.ReportRow{Dimensions: []string{"20240102"}, Metrics: []string{"20", "0.25"}}, rows[1])
}

func TestGA4Source_Fetch_QuotaExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Exhausted property tokens per day","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	source := NewGA4Source(&config.Config{GA4: config.GA4{BaseURL: srv.URL}}, srv.Client())

	_, err := source.Fetch(context.Background(), domain.ReportQuery{Target: "42", DateRange: january(), Metrics: []string{"sessions"}})

	assert.ErrorIs(t, err, domain.ErrUpstreamQuotaExceeded)

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "Exhausted property tokens per day", upstream.Message)
	assert.Equal(t, domain.SourceGA4, upstream.Source)
}

func TestGSCSource_Fetch(t *testing.T) {
	var startRows []int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/sc-domain:example.com/searchAnalytics/query", r.URL.Path)

		var req gscQueryRequest
		decodeBody(t, r, &req)
		startRows = append(startRows, req.StartRow)

		assert.Equal(t, 2, req.RowLimit)
		assert.Equal(t, []string{"query", "page"}, req.Dimensions)

		if req.StartRow == 0 {
			_, _ = w.Write([]byte(`{"rows":[
				{"keys":["shoes","https://example.com/a"],"clicks":10,"impressions":100,"ctr":0.1,"position":2.5},
				{"keys":["boots","https://example.com/b"],"clicks":5,"impressions":50,"ctr":0.1,"position":4}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"rows":[{"keys":["hats","https://example.com/c"],"clicks":1,"impressions":10,"ctr":0.1,"position":8}]}`))
	}))
	defer srv.Close()

	source := NewGSCSource(&config.Config{GSC: config.GSC{BaseURL: srv.URL, RowLimit: 2}}, srv.Client())

	rows, err := source.Fetch(context.Background(), domain.ReportQuery{
		Target:     "sc-domain:example.com",
		DateRange:  january(),
		Dimensions: []string{"query", "page"},
		Metrics:    []string{"clicks", "impressions", "ctr", "position"},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2}, startRows)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"shoes", "https://example.com/a"}, rows[0].Dimensions)
	assert.Equal(t, []string{"10", "100", "0.1", "2.5"}, rows[0].Metrics)
}

func TestGSCSource_Fetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Site not found","status":"NOT_FOUND"}}`))
	}))
	defer srv.Close()

	source := NewGSCSource(&config.Config{GSC: config.GSC{BaseURL: srv.URL}}, srv.Client())

	_, err := source.Fetch(context.Background(), domain.ReportQuery{Target: "sc-domain:example.com", DateRange: january()})
	assert.ErrorIs(t, err, domain.ErrUpstreamNotFound)
}

func TestBuildGAQL(t *testing.T) {
	gaql, err := BuildGAQL(domain.ReportQuery{
		Resource:   "campaign",
		DateRange:  january(),
		Dimensions: []string{"campaign.id", "campaign.name"},
		Metrics:    []string{"metrics.clicks", "metrics.cost_micros"},
		Filters:    []string{"campaign.status != 'REMOVED'"},
		Limit:      10,
	})
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT campaign.id, campaign.name, metrics.clicks, metrics.cost_micros FROM campaign "+
			"WHERE segments.date BETWEEN '2024-01-01' AND '2024-01-31' AND campaign.status != 'REMOVED' LIMIT 10",
		gaql)

	_, err = BuildGAQL(domain.ReportQuery{Metrics: []string{"metrics.clicks"}})
	assert.Error(t, err)
}

func TestAdsSource_Fetch(t *testing.T) {
	var pageTokens []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v17/customers/1234567890/googleAds:search", r.URL.Path)
		assert.Equal(t, "dev-token", r.Header.Get("developer-token"))
		assert.Equal(t, "1112223333", r.Header.Get("login-customer-id"))

		var req adsSearchRequest
		decodeBody(t, r, &req)
		pageTokens = append(pageTokens, req.PageToken)
		assert.Contains(t, req.Query, "FROM campaign")

		if req.PageToken == "" {
			_, _ = w.Write([]byte(`{"results":[{"campaign":{"id":"1","name":"A"},"metrics":{"clicks":"50","costMicros":"25000000","conversions":5}}],"nextPageToken":"page-2"}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"campaign":{"id":"2","name":"B"},"metrics":{"clicks":"7"}}]}`))
	}))
	defer srv.Close()

	cfg := &config.Config{Ads: config.Ads{
		BaseURL:         srv.URL,
		APIVersion:      "v17",
		DeveloperToken:  "dev-token",
		LoginCustomerID: "111-222-3333",
	}}
	source := NewAdsSource(cfg, srv.Client())

	rows, err := source.Fetch(context.Background(), domain.ReportQuery{
		Target:     "1234567890",
		Resource:   "campaign",
		DateRange:  january(),
		Dimensions: []string{"campaign.id", "campaign.name"},
		Metrics:    []string{"metrics.clicks", "metrics.cost_micros", "metrics.conversions"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "page-2"}, pageTokens)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "A"}, rows[0].Dimensions)
	assert.Equal(t, []string{"50", "25000000", "5"}, rows[0].Metrics)
	assert.Equal(t, []string{"7", "", ""}, rows[1].Metrics)
}

func TestAdsSource_Fetch_PermissionDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	source := NewAdsSource(&config.Config{Ads: config.Ads{BaseURL: srv.URL, APIVersion: "v17"}}, srv.Client())

	_, err := source.Fetch(context.Background(), domain.ReportQuery{
		Target:   "1",
		Resource: "campaign",
		Metrics:  []string{"metrics.clicks"},
	})
	assert.ErrorIs(t, err, domain.ErrUpstreamPermissionDenied)
}

func TestErrorResponse_StatusOverridesHTTP(t *testing.T) {
	var parsed errorResponse
	parsed.Error.Status = "RESOURCE_EXHAUSTED"

	assert.Equal(t, http.StatusTooManyRequests, parsed.status(http.StatusBadRequest))
	assert.Equal(t, http.StatusBadGateway, errorResponse{}.status(http.StatusBadGateway))
}

func TestSnakeToCamel(t *testing.T) {
	assert.Equal(t, "costMicros", snakeToCamel("cost_micros"))
	assert.Equal(t, "adGroupCriterion", snakeToCamel("ad_group_criterion"))
	assert.Equal(t, "metrics", snakeToCamel("metrics"))
}
