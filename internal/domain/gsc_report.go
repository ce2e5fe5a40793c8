package domain

type GSCOverview struct {
	TotalClicks      float64 `json:"totalClicks"`
	TotalImpressions float64 `json:"totalImpressions"`
	AvgCTR           float64 `json:"avgCTR"`
	AvgPosition      float64 `json:"avgPosition"`
	ClicksTrend      float64 `json:"clicksTrend"`
	ImpressionsTrend float64 `json:"impressionsTrend"`
	CTRTrend         float64 `json:"ctrTrend"`
	PositionTrend    float64 `json:"positionTrend"`
}

type GSCDailyPoint struct {
	Date        string  `json:"date"`
	Clicks      float64 `json:"clicks"`
	Impressions float64 `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
}

type GSCQuery struct {
	Query       string  `json:"query"`
	Clicks      float64 `json:"clicks"`
	Impressions float64 `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
	Percentage  float64 `json:"percentage"`
}

type GSCPage struct {
	Page        string  `json:"page"`
	Clicks      float64 `json:"clicks"`
	Impressions float64 `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
	Percentage  float64 `json:"percentage"`
}

type GSCDevice struct {
	Device      string  `json:"device"`
	Clicks      float64 `json:"clicks"`
	Impressions float64 `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Percentage  float64 `json:"percentage"`
}

// GSCReport é o payload do widget de Search Console
type GSCReport struct {
	SiteURL    string          `json:"siteUrl"`
	Period     Period          `json:"period"`
	Overview   GSCOverview     `json:"overview"`
	Daily      []GSCDailyPoint `json:"daily"`
	TopQueries []GSCQuery      `json:"topQueries"`
	TopPages   []GSCPage       `json:"topPages"`
	Devices    []GSCDevice     `json:"devices"`
}
