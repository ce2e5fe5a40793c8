package reporting

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/internal/pipeline"
	"github.com/vfg2006/marketing-dashboard-api/pkg/apiErrors"
)

type stubSource struct {
	calls atomic.Int32
	fetch func(context.Context, domain.ReportQuery) ([]domain.ReportRow, error)
}

func (s *stubSource) Fetch(ctx context.Context, q domain.ReportQuery) ([]domain.ReportRow, error) {
	s.calls.Add(1)
	return s.fetch(ctx, q)
}

func fixedRunner(profile Profile) runner {
	r := newRunner(profile, nil, nil, nil)
	r.now = func() time.Time { return time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC) }
	return r
}

func ptr(t time.Time) *time.Time { return &t }

func TestRunner_Window(t *testing.T) {
	day := func(s string) time.Time {
		d, _ := time.Parse(time.DateOnly, s)
		return d
	}

	tests := []struct {
		name    string
		profile Profile
		req     ReportRequest
		start   string
		end     string
	}{
		{name: "Ads sem datas usa 30 dias", profile: AdsProfile(30), start: "2024-02-15", end: "2024-03-15"},
		{name: "GSC sem datas usa 28 dias", profile: GSCProfile(28), start: "2024-02-17", end: "2024-03-15"},
		{name: "só início vai até hoje", profile: GA4Profile(30), req: ReportRequest{StartDate: ptr(day("2024-03-01"))}, start: "2024-03-01", end: "2024-03-15"},
		{name: "só fim volta a janela", profile: GA4Profile(30), req: ReportRequest{EndDate: ptr(day("2024-01-30"))}, start: "2024-01-01", end: "2024-01-30"},
		{name: "datas explícitas", profile: GA4Profile(30), req: ReportRequest{StartDate: ptr(day("2024-01-10")), EndDate: ptr(day("2024-01-12"))}, start: "2024-01-10", end: "2024-01-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fixedRunner(tt.profile)

			dr, err := r.window(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.start, dr.StartString())
			assert.Equal(t, tt.end, dr.EndString())
		})
	}
}

func TestRunner_Window_Inverted(t *testing.T) {
	r := fixedRunner(AdsProfile(30))

	_, err := r.window(ReportRequest{
		StartDate: ptr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:   ptr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	})

	var reportErr *ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, apiErrors.ErrInvalidRequest, reportErr.Code)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestRunner_AccessToken_MissingSubject(t *testing.T) {
	r := fixedRunner(AdsProfile(30))

	_, err := r.accessToken(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrAuthenticationMissing)
}

func TestCollector_SecondaryIsolation(t *testing.T) {
	source := &stubSource{fetch: func(_ context.Context, q domain.ReportQuery) ([]domain.ReportRow, error) {
		if q.Name == "secondary" {
			return nil, errors.New("boom")
		}
		return []domain.ReportRow{{Metrics: []string{"5"}}}, nil
	}}
	c := collector{source: source}
	schema := pipeline.Schema{Metrics: []pipeline.Column{{Name: "clicks"}}}

	results, err := c.collect(context.Background(), domain.SourceGSC, "token", "site", []QueryPlan{
		{Name: "primary", Schema: schema, Primary: true},
		{Name: "secondary", Schema: schema},
		{Name: "other", Schema: schema},
	})
	require.NoError(t, err)

	assert.Equal(t, int32(3), source.calls.Load())
	assert.Len(t, results.Records("primary"), 1)
	assert.Len(t, results.Records("other"), 1)
	assert.True(t, results.Failed("secondary"))
	assert.True(t, results.Empty("secondary"))
	assert.Nil(t, results.Records("secondary"))
	assert.False(t, results.Failed("other"))
}

func TestCollector_PrimaryFailureCancelsRequest(t *testing.T) {
	primaryErr := errors.New("primary down")

	source := &stubSource{fetch: func(ctx context.Context, q domain.ReportQuery) ([]domain.ReportRow, error) {
		if q.Name == "primary" {
			return nil, primaryErr
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return nil, nil
		}
	}}
	c := collector{source: source}

	started := time.Now()
	results, err := c.collect(context.Background(), domain.SourceAds, "token", "1", []QueryPlan{
		{Name: "slow"},
		{Name: "primary", Primary: true},
	})

	assert.ErrorIs(t, err, primaryErr)
	assert.Nil(t, results)
	assert.Less(t, time.Since(started), 5*time.Second)
}
