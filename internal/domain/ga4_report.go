package domain

type GA4Overview struct {
	Sessions               float64 `json:"sessions"`
	Users                  float64 `json:"users"`
	NewUsers               float64 `json:"newUsers"`
	PageViews              float64 `json:"pageViews"`
	BounceRate             float64 `json:"bounceRate"`
	AverageSessionDuration float64 `json:"averageSessionDuration"`
	EngagementRate         float64 `json:"engagementRate"`
	Conversions            float64 `json:"conversions"`
	SessionsTrend          float64 `json:"sessionsTrend"`
	UsersTrend             float64 `json:"usersTrend"`
	NewUsersTrend          float64 `json:"newUsersTrend"`
	PageViewsTrend         float64 `json:"pageViewsTrend"`
	BounceRateTrend        float64 `json:"bounceRateTrend"`
	EngagementRateTrend    float64 `json:"engagementRateTrend"`
	ConversionsTrend       float64 `json:"conversionsTrend"`
}

type GA4DailyPoint struct {
	Date      string  `json:"date"`
	Sessions  float64 `json:"sessions"`
	Users     float64 `json:"users"`
	PageViews float64 `json:"pageViews"`
}

type GA4Channel struct {
	Channel    string  `json:"channel"`
	Sessions   float64 `json:"sessions"`
	Users      float64 `json:"users"`
	Percentage float64 `json:"percentage"`
}

type GA4Device struct {
	Device     string  `json:"device"`
	Sessions   float64 `json:"sessions"`
	Users      float64 `json:"users"`
	Percentage float64 `json:"percentage"`
}

type GA4LandingPage struct {
	Page           string  `json:"page"`
	Sessions       float64 `json:"sessions"`
	BounceRate     float64 `json:"bounceRate"`
	EngagementRate float64 `json:"engagementRate"`
	Percentage     float64 `json:"percentage"`
}

// GA4Report é o payload do widget de Google Analytics
type GA4Report struct {
	PropertyID   string           `json:"propertyId"`
	Period       Period           `json:"period"`
	Overview     GA4Overview      `json:"overview"`
	Daily        []GA4DailyPoint  `json:"daily"`
	Channels     []GA4Channel     `json:"channels"`
	Devices      []GA4Device      `json:"devices"`
	LandingPages []GA4LandingPage `json:"landingPages"`
	Weekdays     []WeekdayValue   `json:"weekdays"`
}
