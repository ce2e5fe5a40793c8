package reporting

import (
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/internal/pipeline"
)

// Valores usados quando uma seção não tem dados ou sua consulta falhou.
// Os gráficos nunca recebem null; séries semanais sempre têm Mon..Sun.

// DefaultWeeklySpend é a série semanal zerada do Ads
func DefaultWeeklySpend() []domain.WeekdaySpend {
	out := make([]domain.WeekdaySpend, 0, len(pipeline.Weekdays))
	for _, day := range pipeline.Weekdays {
		out = append(out, domain.WeekdaySpend{Day: day, Spend: 0})
	}
	return out
}

// DefaultWeekdaySessions é a série semanal zerada do GA4
func DefaultWeekdaySessions() []domain.WeekdayValue {
	out := make([]domain.WeekdayValue, 0, len(pipeline.Weekdays))
	for _, day := range pipeline.Weekdays {
		out = append(out, domain.WeekdayValue{Day: day, Value: 0})
	}
	return out
}

// EmptyAdsReport é o payload do Ads com todas as seções vazias
func EmptyAdsReport(customerID string, period domain.Period) *domain.AdsReport {
	return &domain.AdsReport{
		CustomerID:  customerID,
		Period:      period,
		Campaigns:   []domain.AdsCampaign{},
		Keywords:    []domain.AdsKeyword{},
		Devices:     []domain.AdsDevice{},
		WeeklySpend: DefaultWeeklySpend(),
		Daily:       []domain.AdsDailyPoint{},
	}
}

// EmptyGA4Report é o payload do GA4 com todas as seções vazias
func EmptyGA4Report(propertyID string, period domain.Period) *domain.GA4Report {
	return &domain.GA4Report{
		PropertyID:   propertyID,
		Period:       period,
		Daily:        []domain.GA4DailyPoint{},
		Channels:     []domain.GA4Channel{},
		Devices:      []domain.GA4Device{},
		LandingPages: []domain.GA4LandingPage{},
		Weekdays:     DefaultWeekdaySessions(),
	}
}

// EmptyGSCReport é o payload do Search Console com todas as seções vazias
func EmptyGSCReport(siteURL string, period domain.Period) *domain.GSCReport {
	return &domain.GSCReport{
		SiteURL:    siteURL,
		Period:     period,
		Daily:      []domain.GSCDailyPoint{},
		TopQueries: []domain.GSCQuery{},
		TopPages:   []domain.GSCPage{},
		Devices:    []domain.GSCDevice{},
	}
}
