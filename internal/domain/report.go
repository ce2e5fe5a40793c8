package domain

import (
	"fmt"
	"time"

	"github.com/vfg2006/marketing-dashboard-api/pkg/utils"
)

// Source identifica o provedor de relatórios (também é a chave da credencial)
type Source string

const (
	SourceGA4 Source = "ga4"
	SourceGSC Source = "gsc"
	SourceAds Source = "ads"
)

// ParseSource valida a chave de serviço recebida na URL
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceGA4, SourceGSC, SourceAds:
		return Source(s), nil
	}
	return "", fmt.Errorf("unknown service %q", s)
}

// ReportRow é uma linha crua de um provedor. As posições de Dimensions e
// Metrics seguem a ordem declarada na ReportQuery que a produziu.
type ReportRow struct {
	Dimensions []string
	Metrics    []string
}

// ReportQuery descreve uma consulta a um provedor de relatórios
type ReportQuery struct {
	Name        string
	Source      Source
	AccessToken string
	Target      string // propertyId, customerId ou siteUrl
	DateRange   DateRange
	Resource    string // somente Ads: recurso do GAQL (campaign, keyword_view...)
	Dimensions  []string
	Metrics     []string
	Filters     []string // somente Ads: condições adicionais do WHERE
	Limit       int
}

// DateRange é um intervalo de datas inclusivo, em dias UTC
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normaliza as datas para meia-noite UTC
func NewDateRange(start, end time.Time) (DateRange, error) {
	dr := DateRange{Start: utils.StartOfDay(start), End: utils.StartOfDay(end)}
	if dr.Start.After(dr.End) {
		return DateRange{}, fmt.Errorf("start date %s is after end date %s",
			dr.Start.Format(time.DateOnly), dr.End.Format(time.DateOnly))
	}
	return dr, nil
}

// TrailingDays devolve os últimos n dias terminando em today (inclusive)
func TrailingDays(today time.Time, n int) DateRange {
	if n < 1 {
		n = 1
	}
	end := utils.StartOfDay(today)
	return DateRange{Start: end.AddDate(0, 0, -(n - 1)), End: end}
}

// Days é a quantidade de dias do intervalo, contando as duas pontas
func (d DateRange) Days() int {
	return int(d.End.Sub(d.Start).Hours()/24) + 1
}

// Previous é o intervalo anterior de mesmo tamanho, terminando um dia antes de Start
func (d DateRange) Previous() DateRange {
	end := d.Start.AddDate(0, 0, -1)
	return DateRange{Start: end.AddDate(0, 0, -(d.Days() - 1)), End: end}
}

func (d DateRange) StartString() string { return d.Start.Format(time.DateOnly) }
func (d DateRange) EndString() string   { return d.End.Format(time.DateOnly) }
