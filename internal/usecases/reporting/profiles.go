package reporting

import "github.com/vfg2006/marketing-dashboard-api/internal/domain"

// Seções com limite de cardinalidade
const (
	SectionCampaigns    = "campaigns"
	SectionKeywords     = "keywords"
	SectionDevices      = "devices"
	SectionChannels     = "channels"
	SectionLandingPages = "landing_pages"
	SectionQueries      = "queries"
	SectionPages        = "pages"
)

// Profile parametriza o pipeline genérico para um provedor: janela padrão,
// precisão de arredondamento e limites de cada breakdown
type Profile struct {
	Source      domain.Source
	WindowDays  int
	CountPlaces int
	MoneyPlaces int
	RatePlaces  int
	TrendPlaces int
	Limits      map[string]int
}

// Limit devolve o top-N da seção; 0 não corta
func (p Profile) Limit(section string) int {
	return p.Limits[section]
}

func AdsProfile(windowDays int) Profile {
	return Profile{
		Source:      domain.SourceAds,
		WindowDays:  windowDays,
		CountPlaces: 2, // conversões do Ads podem ser fracionárias
		MoneyPlaces: 2,
		RatePlaces:  2,
		TrendPlaces: 1,
		Limits: map[string]int{
			SectionCampaigns: 10,
			SectionKeywords:  5,
			SectionDevices:   10,
		},
	}
}

func GA4Profile(windowDays int) Profile {
	return Profile{
		Source:      domain.SourceGA4,
		WindowDays:  windowDays,
		CountPlaces: 0,
		MoneyPlaces: 2,
		RatePlaces:  2,
		TrendPlaces: 1,
		Limits: map[string]int{
			SectionChannels:     10,
			SectionDevices:      10,
			SectionLandingPages: 20,
		},
	}
}

func GSCProfile(windowDays int) Profile {
	return Profile{
		Source:      domain.SourceGSC,
		WindowDays:  windowDays,
		CountPlaces: 0,
		MoneyPlaces: 2,
		RatePlaces:  2,
		TrendPlaces: 1,
		Limits: map[string]int{
			SectionQueries: 10,
			SectionPages:   10,
			SectionDevices: 10,
		},
	}
}
