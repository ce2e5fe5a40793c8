// Package pipeline normaliza linhas de relatórios de provedores distintos em
// agregados prontos para o dashboard: decodificação posicional, agrupamento,
// soma/média de métricas, tendências e montagem de breakdowns e séries.
package pipeline

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/pkg/utils"
)

// Unit é a conversão aplicada a uma métrica no momento da decodificação
type Unit int

const (
	UnitNone     Unit = iota
	UnitMicros        // cost_micros -> moeda (÷ 1.000.000)
	UnitFraction      // 0.45 -> 45 pontos percentuais
)

// Column declara o nome semântico e a unidade de uma métrica posicional
type Column struct {
	Name string
	Unit Unit
}

// Schema fixa a ordem de dimensões e métricas de uma consulta
type Schema struct {
	Dimensions []string
	Metrics    []Column
}

// MetricNames devolve os nomes das métricas na ordem da consulta
func (s Schema) MetricNames() []string {
	names := make([]string, len(s.Metrics))
	for i, c := range s.Metrics {
		names[i] = c.Name
	}
	return names
}

// Record é uma linha já ligada a nomes e com unidades convertidas
type Record struct {
	Dimensions map[string]string
	Metrics    Values
}

// Dimension devolve a dimensão sem espaços nas pontas; ausente vale ""
func (r Record) Dimension(name string) string {
	return strings.TrimSpace(r.Dimensions[name])
}

// Metric devolve a métrica; ausente vale 0
func (r Record) Metric(name string) float64 {
	return r.Metrics[name]
}

// Decode liga as posições de cada linha aos nomes do schema. Posições
// faltantes viram "" ou 0 e valores não numéricos viram 0.
func (s Schema) Decode(rows []domain.ReportRow) []Record {
	records := make([]Record, 0, len(rows))

	for _, row := range rows {
		rec := Record{
			Dimensions: make(map[string]string, len(s.Dimensions)),
			Metrics:    make(Values, len(s.Metrics)),
		}

		for i, name := range s.Dimensions {
			if i < len(row.Dimensions) {
				rec.Dimensions[name] = row.Dimensions[i]
			} else {
				rec.Dimensions[name] = ""
			}
		}

		for i, col := range s.Metrics {
			raw := ""
			if i < len(row.Metrics) {
				raw = row.Metrics[i]
			}
			rec.Metrics[col.Name] = convert(raw, col.Unit)
		}

		records = append(records, rec)
	}

	return records
}

func convert(raw string, unit Unit) float64 {
	switch unit {
	case UnitMicros:
		return shiftDecimal(raw, -6)
	case UnitFraction:
		return shiftDecimal(raw, 2)
	default:
		return utils.ParseNumber(raw)
	}
}

// shiftDecimal move a vírgula sem erro de ponto flutuante (2500000 µ -> 2.5)
func shiftDecimal(raw string, exp int32) float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return d.Shift(exp).InexactFloat64()
}
