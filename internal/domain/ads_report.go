package domain

type AdsOverview struct {
	Impressions       float64 `json:"impressions"`
	Clicks            float64 `json:"clicks"`
	Cost              float64 `json:"cost"`
	Conversions       float64 `json:"conversions"`
	CTR               float64 `json:"ctr"`
	AverageCPC        float64 `json:"averageCpc"`
	CostPerConversion float64 `json:"costPerConversion"`
	ConversionRate    float64 `json:"conversionRate"`
	ImpressionsTrend  float64 `json:"impressionsTrend"`
	ClicksTrend       float64 `json:"clicksTrend"`
	CostTrend         float64 `json:"costTrend"`
	ConversionsTrend  float64 `json:"conversionsTrend"`
	CTRTrend          float64 `json:"ctrTrend"`
}

type AdsCampaign struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Cost        float64 `json:"cost"`
	Conversions float64 `json:"conversions"`
	CTR         float64 `json:"ctr"`
	AverageCPC  float64 `json:"averageCpc"`
	Percentage  float64 `json:"percentage"` // Participação no investimento total
}

type AdsKeyword struct {
	Keyword      string  `json:"keyword"`
	MatchType    string  `json:"matchType"`
	QualityScore float64 `json:"qualityScore"`
	Impressions  float64 `json:"impressions"`
	Clicks       float64 `json:"clicks"`
	Cost         float64 `json:"cost"`
	Conversions  float64 `json:"conversions"`
	CTR          float64 `json:"ctr"`
	AverageCPC   float64 `json:"averageCpc"`
	Percentage   float64 `json:"percentage"` // Participação nos cliques
}

type AdsDevice struct {
	Device      string  `json:"device"`
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Cost        float64 `json:"cost"`
	Conversions float64 `json:"conversions"`
	Percentage  float64 `json:"percentage"` // Participação nos cliques
}

type AdsDailyPoint struct {
	Date        string  `json:"date"`
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Cost        float64 `json:"cost"`
	Conversions float64 `json:"conversions"`
}

// AdsReport é o payload do widget de Google Ads
type AdsReport struct {
	CustomerID  string          `json:"customerId"`
	Period      Period          `json:"period"`
	Overview    AdsOverview     `json:"overview"`
	Campaigns   []AdsCampaign   `json:"campaigns"`
	Keywords    []AdsKeyword    `json:"keywords"`
	Devices     []AdsDevice     `json:"devices"`
	WeeklySpend []WeekdaySpend  `json:"weeklySpend"`
	Daily       []AdsDailyPoint `json:"daily"`
}
