package reporting

import (
	"context"
	"strings"

	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/internal/pipeline"
	"github.com/vfg2006/marketing-dashboard-api/pkg/metrics"
	"github.com/vfg2006/marketing-dashboard-api/pkg/utils"
)

// Consultas do relatório de GA4
const (
	GA4QueryTotals         = "totals"
	GA4QueryTotalsPrevious = "totals_previous"
	GA4QueryDaily          = "daily"
	GA4QueryChannels       = "channels"
	GA4QueryDevices        = "devices"
	GA4QueryLandingPages   = "landing_pages"
	GA4QueryWeekdays       = "weekdays"
)

var ga4TotalsSchema = pipeline.Schema{
	Metrics: []pipeline.Column{
		{Name: "sessions"},
		{Name: "totalUsers"},
		{Name: "newUsers"},
		{Name: "screenPageViews"},
		{Name: "bounceRate", Unit: pipeline.UnitFraction},
		{Name: "averageSessionDuration"},
		{Name: "engagementRate", Unit: pipeline.UnitFraction},
		{Name: "conversions"},
	},
}

var ga4TotalsSpec = pipeline.MetricSpec{
	Fields: []pipeline.Field{
		{Name: "sessions"},
		{Name: "users", Source: "totalUsers"},
		{Name: "newUsers"},
		{Name: "pageViews", Source: "screenPageViews"},
		{Name: "bounceRate", Op: pipeline.OpAverage},
		{Name: "averageSessionDuration", Op: pipeline.OpAverage},
		{Name: "engagementRate", Op: pipeline.OpAverage},
		{Name: "conversions"},
	},
	Averaging: pipeline.AverageMean,
}

var ga4TrafficSpec = pipeline.MetricSpec{
	Fields: []pipeline.Field{
		{Name: "sessions"},
		{Name: "users", Source: "totalUsers"},
		{Name: "pageViews", Source: "screenPageViews"},
	},
}

var ga4LandingSpec = pipeline.MetricSpec{
	Fields: []pipeline.Field{
		{Name: "sessions"},
		{Name: "bounceRate", Op: pipeline.OpAverage},
		{Name: "engagementRate", Op: pipeline.OpAverage},
	},
	Averaging: pipeline.AverageMean,
}

// GA4Service monta o relatório do Google Analytics 4
type GA4Service struct {
	runner
	cfg *config.Config
}

// NewGA4Service cria o serviço de relatórios do GA4
func NewGA4Service(cfg *config.Config, source ReportSource, tokens TokenProvider, m *metrics.Metrics) *GA4Service {
	return &GA4Service{
		runner: newRunner(GA4Profile(cfg.Pipeline.DefaultWindowDays), source, tokens, m),
		cfg:    cfg,
	}
}

// GA4Report busca totais, canais, dispositivos, páginas de entrada e séries
// do período e monta o payload do dashboard
func (s *GA4Service) GA4Report(ctx context.Context, req ReportRequest) (*domain.GA4Report, error) {
	current, err := s.window(req)
	if err != nil {
		return nil, err
	}

	token, err := s.accessToken(ctx, req.Subject)
	if err != nil {
		return nil, err
	}

	propertyID, err := s.propertyID(req.Target)
	if err != nil {
		return nil, err
	}

	results, err := s.run(ctx, token, propertyID, s.plans(current))
	if err != nil {
		return nil, err
	}

	report := EmptyGA4Report(propertyID, domain.NewPeriod(current))
	s.assemble(report, results)

	return report, nil
}

func (s *GA4Service) propertyID(target string) (string, error) {
	id := target
	if id == "" {
		id = s.cfg.GA4.PropertyID
	}

	id = strings.TrimPrefix(strings.TrimSpace(id), "properties/")
	if id == "" {
		return "", NewReportError(ErrTargetRequired, CodeFor(ErrTargetRequired), domain.SourceGA4, "GA4 property ID is not configured")
	}
	if !isDigits(id) {
		return "", NewReportError(ErrInvalidTarget, CodeFor(ErrInvalidTarget), domain.SourceGA4, "GA4 property ID must be numeric")
	}

	return id, nil
}

func (s *GA4Service) plans(current domain.DateRange) []QueryPlan {
	traffic := []pipeline.Column{{Name: "sessions"}, {Name: "totalUsers"}}

	return []QueryPlan{
		{Name: GA4QueryTotals, Range: current, Schema: ga4TotalsSchema, Primary: true},
		{Name: GA4QueryTotalsPrevious, Range: current.Previous(), Schema: ga4TotalsSchema},
		{
			Name:  GA4QueryDaily,
			Range: current,
			Schema: pipeline.Schema{
				Dimensions: []string{"date"},
				Metrics:    []pipeline.Column{{Name: "sessions"}, {Name: "totalUsers"}, {Name: "screenPageViews"}},
			},
		},
		{
			Name:   GA4QueryChannels,
			Range:  current,
			Schema: pipeline.Schema{Dimensions: []string{"sessionDefaultChannelGroup"}, Metrics: traffic},
		},
		{
			Name:   GA4QueryDevices,
			Range:  current,
			Schema: pipeline.Schema{Dimensions: []string{"deviceCategory"}, Metrics: traffic},
		},
		{
			Name:  GA4QueryLandingPages,
			Range: current,
			Schema: pipeline.Schema{
				Dimensions: []string{"landingPage"},
				Metrics: []pipeline.Column{
					{Name: "sessions"},
					{Name: "bounceRate", Unit: pipeline.UnitFraction},
					{Name: "engagementRate", Unit: pipeline.UnitFraction},
				},
			},
		},
		{
			Name:   GA4QueryWeekdays,
			Range:  current,
			Schema: pipeline.Schema{Dimensions: []string{"dayOfWeek"}, Metrics: []pipeline.Column{{Name: "sessions"}}},
		},
	}
}

func (s *GA4Service) assemble(report *domain.GA4Report, results *Results) {
	p := s.profile

	total := ga4TotalsSpec.Fold(results.Records(GA4QueryTotals))
	previous := ga4TotalsSpec.Fold(results.Records(GA4QueryTotalsPrevious))
	trends := pipeline.Trends(total, previous, "sessions", "users", "newUsers", "pageViews", "bounceRate", "engagementRate", "conversions")

	report.Overview = domain.GA4Overview{
		Sessions:               utils.Round(total["sessions"], p.CountPlaces),
		Users:                  utils.Round(total["users"], p.CountPlaces),
		NewUsers:               utils.Round(total["newUsers"], p.CountPlaces),
		PageViews:              utils.Round(total["pageViews"], p.CountPlaces),
		BounceRate:             utils.Round(total["bounceRate"], p.RatePlaces),
		AverageSessionDuration: utils.Round(total["averageSessionDuration"], p.RatePlaces),
		EngagementRate:         utils.Round(total["engagementRate"], p.RatePlaces),
		Conversions:            utils.Round(total["conversions"], p.CountPlaces),
		SessionsTrend:          utils.Round(trends["sessions"], p.TrendPlaces),
		UsersTrend:             utils.Round(trends["users"], p.TrendPlaces),
		NewUsersTrend:          utils.Round(trends["newUsers"], p.TrendPlaces),
		PageViewsTrend:         utils.Round(trends["pageViews"], p.TrendPlaces),
		BounceRateTrend:        utils.Round(trends["bounceRate"], p.TrendPlaces),
		EngagementRateTrend:    utils.Round(trends["engagementRate"], p.TrendPlaces),
		ConversionsTrend:       utils.Round(trends["conversions"], p.TrendPlaces),
	}

	daily := pipeline.AggregateGroups(pipeline.Group(results.Records(GA4QueryDaily), ga4DateKey), ga4TrafficSpec)
	for _, e := range pipeline.Series(daily) {
		report.Daily = append(report.Daily, domain.GA4DailyPoint{
			Date:      e.Key,
			Sessions:  e.Get("sessions", p.CountPlaces),
			Users:     e.Get("users", p.CountPlaces),
			PageViews: e.Get("pageViews", p.CountPlaces),
		})
	}

	channels := pipeline.AggregateGroups(pipeline.Group(results.Records(GA4QueryChannels), pipeline.DimensionKey("sessionDefaultChannelGroup", pipeline.DefaultChannel)), ga4TrafficSpec)
	for _, e := range pipeline.Breakdown(channels, "sessions", "sessions", p.Limit(SectionChannels)) {
		report.Channels = append(report.Channels, domain.GA4Channel{
			Channel:    e.Key,
			Sessions:   e.Get("sessions", p.CountPlaces),
			Users:      e.Get("users", p.CountPlaces),
			Percentage: utils.Round(e.Percentage, p.RatePlaces),
		})
	}

	devices := pipeline.AggregateGroups(pipeline.Group(results.Records(GA4QueryDevices), pipeline.DimensionKey("deviceCategory", pipeline.DefaultDevice)), ga4TrafficSpec)
	for _, e := range pipeline.Breakdown(devices, "sessions", "sessions", p.Limit(SectionDevices)) {
		report.Devices = append(report.Devices, domain.GA4Device{
			Device:     e.Key,
			Sessions:   e.Get("sessions", p.CountPlaces),
			Users:      e.Get("users", p.CountPlaces),
			Percentage: utils.Round(e.Percentage, p.RatePlaces),
		})
	}

	pages := pipeline.AggregateGroups(pipeline.Group(results.Records(GA4QueryLandingPages), pipeline.DimensionKey("landingPage", pipeline.DefaultPage)), ga4LandingSpec)
	for _, e := range pipeline.Breakdown(pages, "sessions", "sessions", p.Limit(SectionLandingPages)) {
		report.LandingPages = append(report.LandingPages, domain.GA4LandingPage{
			Page:           e.Key,
			Sessions:       e.Get("sessions", p.CountPlaces),
			BounceRate:     e.Get("bounceRate", p.RatePlaces),
			EngagementRate: e.Get("engagementRate", p.RatePlaces),
			Percentage:     utils.Round(e.Percentage, p.RatePlaces),
		})
	}

	if !results.Empty(GA4QueryWeekdays) {
		weekdaySpec := pipeline.MetricSpec{Fields: []pipeline.Field{{Name: "sessions"}}}
		weekdays := pipeline.AggregateGroups(pipeline.Group(results.Records(GA4QueryWeekdays), pipeline.WeekdayKey("dayOfWeek", "")), weekdaySpec)

		report.Weekdays = report.Weekdays[:0]
		for _, e := range pipeline.WeekdaySeries(weekdays, "sessions") {
			report.Weekdays = append(report.Weekdays, domain.WeekdayValue{
				Day:   e.Key,
				Value: e.Get("sessions", p.CountPlaces),
			})
		}
	}
}

// ga4DateKey converte a dimensão date do GA4 (YYYYMMDD) para YYYY-MM-DD
func ga4DateKey(r pipeline.Record) pipeline.GroupKey {
	raw := r.Dimension("date")
	if len(raw) == 8 && isDigits(raw) {
		return raw[:4] + "-" + raw[4:6] + "-" + raw[6:]
	}
	if raw == "" {
		return pipeline.DefaultDate
	}
	return raw
}
