package reporting

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/internal/pipeline"
	"github.com/vfg2006/marketing-dashboard-api/pkg/metrics"
	"github.com/vfg2006/marketing-dashboard-api/pkg/utils"
)

// Consultas do relatório de Search Console
const (
	GSCQueryTotals         = "totals"
	GSCQueryTotalsPrevious = "totals_previous"
	GSCQueryDaily          = "daily"
	GSCQueryQueriesPages   = "queries_pages"
	GSCQueryDevices        = "devices"
)

// O Search Console sempre devolve as quatro métricas, nesta ordem
var gscColumns = []pipeline.Column{
	{Name: "clicks"},
	{Name: "impressions"},
	{Name: "ctr", Unit: pipeline.UnitFraction},
	{Name: "position"},
}

// GSCService monta o relatório do Search Console
type GSCService struct {
	runner
	cfg  *config.Config
	spec pipeline.MetricSpec
}

// NewGSCService cria o serviço de relatórios do Search Console
func NewGSCService(cfg *config.Config, source ReportSource, tokens TokenProvider, m *metrics.Metrics) (*GSCService, error) {
	averaging, err := pipeline.ParseAveraging(cfg.GSC.PositionAveraging)
	if err != nil {
		return nil, errors.Wrap(err, "GSC_POSITION_AVERAGING")
	}

	return &GSCService{
		runner: newRunner(GSCProfile(cfg.Pipeline.GSCDefaultWindowDays), source, tokens, m),
		cfg:    cfg,
		spec: pipeline.MetricSpec{
			Fields: []pipeline.Field{
				{Name: "clicks"},
				{Name: "impressions"},
				{Name: "position", Op: pipeline.OpAverage},
			},
			Derived:   []pipeline.Derived{pipeline.RatioOf("ctr", "clicks", "impressions", 100)},
			Averaging: averaging,
		},
	}, nil
}

// GSCReport busca totais, consultas, páginas, dispositivos e série diária e
// monta o payload do dashboard
func (s *GSCService) GSCReport(ctx context.Context, req ReportRequest) (*domain.GSCReport, error) {
	current, err := s.window(req)
	if err != nil {
		return nil, err
	}

	token, err := s.accessToken(ctx, req.Subject)
	if err != nil {
		return nil, err
	}

	siteURL, err := s.siteURL(req.Target)
	if err != nil {
		return nil, err
	}

	results, err := s.run(ctx, token, siteURL, s.plans(current))
	if err != nil {
		return nil, err
	}

	report := EmptyGSCReport(siteURL, domain.NewPeriod(current))
	s.assemble(report, results)

	return report, nil
}

// siteURL aceita propriedades de domínio (sc-domain:exemplo.com) ou prefixo de URL
func (s *GSCService) siteURL(target string) (string, error) {
	site := strings.TrimSpace(target)
	if site == "" {
		site = strings.TrimSpace(s.cfg.GSC.SiteURL)
	}
	if site == "" {
		return "", NewReportError(ErrTargetRequired, CodeFor(ErrTargetRequired), domain.SourceGSC, "Search Console site URL is not configured")
	}

	if strings.HasPrefix(site, "sc-domain:") {
		return site, nil
	}

	u, err := url.Parse(site)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", NewReportError(ErrInvalidTarget, CodeFor(ErrInvalidTarget), domain.SourceGSC, "site URL must be sc-domain:<domain> or an http(s) URL")
	}

	return site, nil
}

func (s *GSCService) plans(current domain.DateRange) []QueryPlan {
	return []QueryPlan{
		{Name: GSCQueryTotals, Range: current, Schema: pipeline.Schema{Metrics: gscColumns}, Primary: true},
		{Name: GSCQueryTotalsPrevious, Range: current.Previous(), Schema: pipeline.Schema{Metrics: gscColumns}},
		{Name: GSCQueryDaily, Range: current, Schema: pipeline.Schema{Dimensions: []string{"date"}, Metrics: gscColumns}},
		{Name: GSCQueryQueriesPages, Range: current, Schema: pipeline.Schema{Dimensions: []string{"query", "page"}, Metrics: gscColumns}},
		{Name: GSCQueryDevices, Range: current, Schema: pipeline.Schema{Dimensions: []string{"device"}, Metrics: gscColumns}},
	}
}

func (s *GSCService) assemble(report *domain.GSCReport, results *Results) {
	p := s.profile

	total := s.spec.Fold(results.Records(GSCQueryTotals))
	previous := s.spec.Fold(results.Records(GSCQueryTotalsPrevious))
	trends := pipeline.Trends(total, previous, "clicks", "impressions", "ctr", "position")

	report.Overview = domain.GSCOverview{
		TotalClicks:      utils.Round(total["clicks"], p.CountPlaces),
		TotalImpressions: utils.Round(total["impressions"], p.CountPlaces),
		AvgCTR:           utils.Round(total["ctr"], p.RatePlaces),
		AvgPosition:      utils.Round(total["position"], p.RatePlaces),
		ClicksTrend:      utils.Round(trends["clicks"], p.TrendPlaces),
		ImpressionsTrend: utils.Round(trends["impressions"], p.TrendPlaces),
		CTRTrend:         utils.Round(trends["ctr"], p.TrendPlaces),
		PositionTrend:    utils.Round(trends["position"], p.TrendPlaces),
	}

	daily := pipeline.AggregateGroups(pipeline.Group(results.Records(GSCQueryDaily), pipeline.DimensionKey("date", pipeline.DefaultDate)), s.spec)
	for _, e := range pipeline.Series(daily) {
		report.Daily = append(report.Daily, domain.GSCDailyPoint{
			Date:        e.Key,
			Clicks:      e.Get("clicks", p.CountPlaces),
			Impressions: e.Get("impressions", p.CountPlaces),
			CTR:         e.Get("ctr", p.RatePlaces),
			Position:    e.Get("position", p.RatePlaces),
		})
	}

	rows := results.Records(GSCQueryQueriesPages)

	queries := pipeline.AggregateGroups(pipeline.Group(rows, pipeline.DimensionKey("query", pipeline.DefaultQuery)), s.spec)
	for _, e := range pipeline.Breakdown(queries, "clicks", "clicks", p.Limit(SectionQueries)) {
		report.TopQueries = append(report.TopQueries, domain.GSCQuery{
			Query:       e.Key,
			Clicks:      e.Get("clicks", p.CountPlaces),
			Impressions: e.Get("impressions", p.CountPlaces),
			CTR:         e.Get("ctr", p.RatePlaces),
			Position:    e.Get("position", p.RatePlaces),
			Percentage:  utils.Round(e.Percentage, p.RatePlaces),
		})
	}

	pages := pipeline.AggregateGroups(pipeline.Group(rows, pipeline.DimensionKey("page", pipeline.DefaultPage)), s.spec)
	for _, e := range pipeline.Breakdown(pages, "clicks", "clicks", p.Limit(SectionPages)) {
		report.TopPages = append(report.TopPages, domain.GSCPage{
			Page:        e.Key,
			Clicks:      e.Get("clicks", p.CountPlaces),
			Impressions: e.Get("impressions", p.CountPlaces),
			CTR:         e.Get("ctr", p.RatePlaces),
			Position:    e.Get("position", p.RatePlaces),
			Percentage:  utils.Round(e.Percentage, p.RatePlaces),
		})
	}

	devices := pipeline.AggregateGroups(pipeline.Group(results.Records(GSCQueryDevices), pipeline.DimensionKey("device", pipeline.DefaultDevice)), s.spec)
	for _, e := range pipeline.Breakdown(devices, "clicks", "clicks", p.Limit(SectionDevices)) {
		report.Devices = append(report.Devices, domain.GSCDevice{
			Device:      e.Key,
			Clicks:      e.Get("clicks", p.CountPlaces),
			Impressions: e.Get("impressions", p.CountPlaces),
			CTR:         e.Get("ctr", p.RatePlaces),
			Percentage:  utils.Round(e.Percentage, p.RatePlaces),
		})
	}
}
