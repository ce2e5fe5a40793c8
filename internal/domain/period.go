package domain

// Period descreve as janelas usadas na resposta
type Period struct {
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	PreviousStartDate string `json:"previousStartDate"`
	PreviousEndDate   string `json:"previousEndDate"`
}

func NewPeriod(current DateRange) Period {
	previous := current.Previous()
	return Period{
		StartDate:         current.StartString(),
		EndDate:           current.EndString(),
		PreviousStartDate: previous.StartString(),
		PreviousEndDate:   previous.EndString(),
	}
}

// WeekdayValue é um ponto da série semanal (Mon..Sun)
type WeekdayValue struct {
	Day   string  `json:"day"`
	Value float64 `json:"value"`
}

// WeekdaySpend é a série semanal de investimento do Ads
type WeekdaySpend struct {
	Day   string  `json:"day"`
	Spend float64 `json:"spend"`
}
