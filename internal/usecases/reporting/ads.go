package reporting

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/internal/pipeline"
	"github.com/vfg2006/marketing-dashboard-api/pkg/metrics"
	"github.com/vfg2006/marketing-dashboard-api/pkg/utils"
)

// Consultas do relatório de Ads
const (
	AdsQueryCampaigns         = "campaigns"
	AdsQueryCampaignsPrevious = "campaigns_previous"
	AdsQueryWeeklySpend       = "weekly_spend"
	AdsQueryDevices           = "devices"
	AdsQueryKeywords          = "keywords"
	AdsQueryDaily             = "daily"
)

// Campos GAQL
const (
	adsCampaignID     = "campaign.id"
	adsCampaignName   = "campaign.name"
	adsCampaignStatus = "campaign.status"
	adsDevice         = "segments.device"
	adsDayOfWeek      = "segments.day_of_week"
	adsDate           = "segments.date"
	adsKeywordText    = "ad_group_criterion.keyword.text"
	adsKeywordMatch   = "ad_group_criterion.keyword.match_type"
	adsQualityScore   = "ad_group_criterion.quality_info.quality_score"
	adsImpressions    = "metrics.impressions"
	adsClicks         = "metrics.clicks"
	adsCostMicros     = "metrics.cost_micros"
	adsConversions    = "metrics.conversions"

	adsUnknownMatchType = "UNKNOWN"
)

var adsPerformanceColumns = []pipeline.Column{
	{Name: adsImpressions},
	{Name: adsClicks},
	{Name: adsCostMicros, Unit: pipeline.UnitMicros},
	{Name: adsConversions},
}

var adsPerformanceFields = []pipeline.Field{
	{Name: "impressions", Source: adsImpressions},
	{Name: "clicks", Source: adsClicks},
	{Name: "cost", Source: adsCostMicros},
	{Name: "conversions", Source: adsConversions},
}

var adsDerived = []pipeline.Derived{
	pipeline.RatioOf("ctr", "clicks", "impressions", 100),
	pipeline.RatioOf("averageCpc", "cost", "clicks", 1),
	pipeline.RatioOf("costPerConversion", "cost", "conversions", 1),
	pipeline.RatioOf("conversionRate", "conversions", "clicks", 100),
}

// AdsService monta o relatório do Google Ads
type AdsService struct {
	runner
	cfg       *config.Config
	averaging pipeline.Averaging
}

// NewAdsService cria o serviço de relatórios do Ads
func NewAdsService(cfg *config.Config, source ReportSource, tokens TokenProvider, m *metrics.Metrics) (*AdsService, error) {
	averaging, err := pipeline.ParseAveraging(cfg.Ads.QualityScoreAveraging)
	if err != nil {
		return nil, errors.Wrap(err, "ADS_QUALITY_SCORE_AVERAGING")
	}

	return &AdsService{
		runner:    newRunner(AdsProfile(cfg.Pipeline.DefaultWindowDays), source, tokens, m),
		cfg:       cfg,
		averaging: averaging,
	}, nil
}

// AdsReport busca campanhas, dispositivos, palavras-chave e séries do período
// e do período anterior e monta o payload do dashboard
func (s *AdsService) AdsReport(ctx context.Context, req ReportRequest) (*domain.AdsReport, error) {
	current, err := s.window(req)
	if err != nil {
		return nil, err
	}

	token, err := s.accessToken(ctx, req.Subject)
	if err != nil {
		return nil, err
	}

	customerID, err := s.customerID(req.Target)
	if err != nil {
		return nil, err
	}

	results, err := s.run(ctx, token, customerID, s.plans(current))
	if err != nil {
		return nil, err
	}

	report := EmptyAdsReport(customerID, domain.NewPeriod(current))
	s.assemble(report, results)

	return report, nil
}

func (s *AdsService) customerID(target string) (string, error) {
	if s.cfg.Ads.DeveloperToken == "" {
		return "", NewReportError(domain.ErrConfigurationIncomplete, CodeFor(domain.ErrConfigurationIncomplete), domain.SourceAds, "ADS_DEVELOPER_TOKEN is not configured")
	}

	id := target
	if id == "" {
		id = s.cfg.Ads.CustomerID
	}
	if id == "" {
		return "", NewReportError(ErrTargetRequired, CodeFor(ErrTargetRequired), domain.SourceAds, "customer ID is not configured")
	}

	// 123-456-7890 -> 1234567890
	id = strings.NewReplacer("-", "", " ", "").Replace(id)
	if !isDigits(id) {
		return "", NewReportError(ErrInvalidTarget, CodeFor(ErrInvalidTarget), domain.SourceAds, "customer ID must be numeric")
	}

	return id, nil
}

func (s *AdsService) plans(current domain.DateRange) []QueryPlan {
	notRemoved := []string{"campaign.status != 'REMOVED'"}

	return []QueryPlan{
		{
			Name:     AdsQueryCampaigns,
			Resource: "campaign",
			Range:    current,
			Filters:  notRemoved,
			Primary:  true,
			Schema: pipeline.Schema{
				Dimensions: []string{adsCampaignID, adsCampaignName, adsCampaignStatus},
				Metrics:    adsPerformanceColumns,
			},
		},
		{
			Name:     AdsQueryCampaignsPrevious,
			Resource: "campaign",
			Range:    current.Previous(),
			Filters:  notRemoved,
			Schema: pipeline.Schema{
				Dimensions: []string{adsCampaignID},
				Metrics:    adsPerformanceColumns,
			},
		},
		{
			Name:     AdsQueryWeeklySpend,
			Resource: "campaign",
			Range:    current,
			Filters:  notRemoved,
			Schema: pipeline.Schema{
				Dimensions: []string{adsDayOfWeek},
				Metrics:    []pipeline.Column{{Name: adsCostMicros, Unit: pipeline.UnitMicros}},
			},
		},
		{
			Name:     AdsQueryDevices,
			Resource: "campaign",
			Range:    current,
			Filters:  notRemoved,
			Schema: pipeline.Schema{
				Dimensions: []string{adsDevice},
				Metrics:    adsPerformanceColumns,
			},
		},
		{
			Name:     AdsQueryKeywords,
			Resource: "keyword_view",
			Range:    current,
			Filters:  []string{"ad_group_criterion.status != 'REMOVED'"},
			Schema: pipeline.Schema{
				Dimensions: []string{adsKeywordText, adsKeywordMatch},
				Metrics:    append([]pipeline.Column{{Name: adsQualityScore}}, adsPerformanceColumns...),
			},
		},
		{
			Name:     AdsQueryDaily,
			Resource: "campaign",
			Range:    current,
			Filters:  notRemoved,
			Schema: pipeline.Schema{
				Dimensions: []string{adsDate},
				Metrics:    adsPerformanceColumns,
			},
		},
	}
}

func (s *AdsService) performanceSpec() pipeline.MetricSpec {
	return pipeline.MetricSpec{Fields: adsPerformanceFields, Derived: adsDerived, Averaging: s.averaging}
}

func (s *AdsService) keywordSpec() pipeline.MetricSpec {
	fields := append([]pipeline.Field{{Name: "qualityScore", Source: adsQualityScore, Op: pipeline.OpAverage}}, adsPerformanceFields...)
	return pipeline.MetricSpec{Fields: fields, Derived: adsDerived, Averaging: s.averaging}
}

func (s *AdsService) assemble(report *domain.AdsReport, results *Results) {
	p := s.profile
	spec := s.performanceSpec()

	campaignKey := pipeline.CompositeKey(
		pipeline.DimensionKey(adsCampaignID, ""),
		pipeline.DimensionKey(adsCampaignName, pipeline.DefaultCampaign),
		pipeline.DimensionKey(adsCampaignStatus, ""),
	)
	campaigns := pipeline.AggregateGroups(pipeline.Group(results.Records(AdsQueryCampaigns), campaignKey), spec)
	previous := pipeline.AggregateGroups(pipeline.Group(results.Records(AdsQueryCampaignsPrevious), pipeline.DimensionKey(adsCampaignID, "")), spec)

	total := campaigns.Total(spec)
	trends := pipeline.Trends(total, previous.Total(spec), "impressions", "clicks", "cost", "conversions", "ctr")

	report.Overview = domain.AdsOverview{
		Impressions:       utils.Round(total["impressions"], 0),
		Clicks:            utils.Round(total["clicks"], 0),
		Cost:              utils.Round(total["cost"], p.MoneyPlaces),
		Conversions:       utils.Round(total["conversions"], p.CountPlaces),
		CTR:               utils.Round(total["ctr"], p.RatePlaces),
		AverageCPC:        utils.Round(total["averageCpc"], p.MoneyPlaces),
		CostPerConversion: utils.Round(total["costPerConversion"], p.MoneyPlaces),
		ConversionRate:    utils.Round(total["conversionRate"], p.RatePlaces),
		ImpressionsTrend:  utils.Round(trends["impressions"], p.TrendPlaces),
		ClicksTrend:       utils.Round(trends["clicks"], p.TrendPlaces),
		CostTrend:         utils.Round(trends["cost"], p.TrendPlaces),
		ConversionsTrend:  utils.Round(trends["conversions"], p.TrendPlaces),
		CTRTrend:          utils.Round(trends["ctr"], p.TrendPlaces),
	}

	for _, e := range pipeline.Breakdown(campaigns, "cost", "cost", p.Limit(SectionCampaigns)) {
		parts := pipeline.SplitKey(e.Key)
		report.Campaigns = append(report.Campaigns, domain.AdsCampaign{
			ID:          parts[0],
			Name:        parts[1],
			Status:      parts[2],
			Impressions: e.Get("impressions", 0),
			Clicks:      e.Get("clicks", 0),
			Cost:        e.Get("cost", p.MoneyPlaces),
			Conversions: e.Get("conversions", p.CountPlaces),
			CTR:         e.Get("ctr", p.RatePlaces),
			AverageCPC:  e.Get("averageCpc", p.MoneyPlaces),
			Percentage:  utils.Round(e.Percentage, p.RatePlaces),
		})
	}

	devices := pipeline.AggregateGroups(pipeline.Group(results.Records(AdsQueryDevices), pipeline.DimensionKey(adsDevice, pipeline.DefaultDevice)), spec)
	for _, e := range pipeline.Breakdown(devices, "clicks", "clicks", p.Limit(SectionDevices)) {
		report.Devices = append(report.Devices, domain.AdsDevice{
			Device:      e.Key,
			Impressions: e.Get("impressions", 0),
			Clicks:      e.Get("clicks", 0),
			Cost:        e.Get("cost", p.MoneyPlaces),
			Conversions: e.Get("conversions", p.CountPlaces),
			Percentage:  utils.Round(e.Percentage, p.RatePlaces),
		})
	}

	keywordKey := pipeline.CompositeKey(
		pipeline.DimensionKey(adsKeywordText, pipeline.DefaultKeyword),
		pipeline.DimensionKey(adsKeywordMatch, adsUnknownMatchType),
	)
	kwSpec := s.keywordSpec()
	keywords := pipeline.AggregateGroups(pipeline.Group(results.Records(AdsQueryKeywords), keywordKey), kwSpec)
	for _, e := range pipeline.Breakdown(keywords, "clicks", "clicks", p.Limit(SectionKeywords)) {
		parts := pipeline.SplitKey(e.Key)
		report.Keywords = append(report.Keywords, domain.AdsKeyword{
			Keyword:      parts[0],
			MatchType:    parts[1],
			QualityScore: e.Get("qualityScore", 1),
			Impressions:  e.Get("impressions", 0),
			Clicks:       e.Get("clicks", 0),
			Cost:         e.Get("cost", p.MoneyPlaces),
			Conversions:  e.Get("conversions", p.CountPlaces),
			CTR:          e.Get("ctr", p.RatePlaces),
			AverageCPC:   e.Get("averageCpc", p.MoneyPlaces),
			Percentage:   utils.Round(e.Percentage, p.RatePlaces),
		})
	}

	if !results.Empty(AdsQueryWeeklySpend) {
		weeklySpec := pipeline.MetricSpec{Fields: []pipeline.Field{{Name: "cost", Source: adsCostMicros}}}
		weekly := pipeline.AggregateGroups(pipeline.Group(results.Records(AdsQueryWeeklySpend), pipeline.WeekdayKey(adsDayOfWeek, "")), weeklySpec)

		report.WeeklySpend = report.WeeklySpend[:0]
		for _, e := range pipeline.WeekdaySeries(weekly, "cost") {
			report.WeeklySpend = append(report.WeeklySpend, domain.WeekdaySpend{
				Day:   e.Key,
				Spend: e.Get("cost", p.MoneyPlaces),
			})
		}
	}

	daily := pipeline.AggregateGroups(pipeline.Group(results.Records(AdsQueryDaily), pipeline.DimensionKey(adsDate, pipeline.DefaultDate)), spec)
	for _, e := range pipeline.Series(daily) {
		report.Daily = append(report.Daily, domain.AdsDailyPoint{
			Date:        e.Key,
			Impressions: e.Get("impressions", 0),
			Clicks:      e.Get("clicks", 0),
			Cost:        e.Get("cost", p.MoneyPlaces),
			Conversions: e.Get("conversions", p.CountPlaces),
		})
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
