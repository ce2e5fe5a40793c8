package pipeline

import (
	"sort"
	"strings"

	"github.com/vfg2006/marketing-dashboard-api/pkg/utils"
)

// Entry é um grupo pronto para exibição; Percentage ainda não arredondado
type Entry struct {
	Key        GroupKey
	Values     Values
	Percentage float64
}

// Get devolve a métrica arredondada
func (e Entry) Get(name string, places int) float64 {
	return utils.Round(e.Values[name], places)
}

// Breakdown ordena os grupos por sortBy (decrescente) e calcula a
// participação de cada um em shareOf sobre o total de TODOS os grupos do
// período, antes do corte em limit. Total zero deixa todas as participações
// em zero. limit <= 0 não corta.
func Breakdown(agg Aggregate, shareOf, sortBy string, limit int) []Entry {
	total := 0.0
	for _, v := range agg {
		total += v[shareOf]
	}

	entries := make([]Entry, 0, len(agg))
	for key, v := range agg {
		entries = append(entries, Entry{
			Key:        key,
			Values:     v,
			Percentage: Ratio(v[shareOf], total, 100),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Values[sortBy], entries[j].Values[sortBy]
		if a != b {
			return a > b
		}
		return entries[i].Key < entries[j].Key
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries
}

// Series ordena os grupos pela chave em ordem crescente; com chaves
// YYYY-MM-DD isso é ordem cronológica.
func Series(agg Aggregate) []Entry {
	entries := make([]Entry, 0, len(agg))
	for key, v := range agg {
		entries = append(entries, Entry{Key: key, Values: v})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	return entries
}

// Weekdays é a ordem de exibição das séries semanais
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var weekdayAliases = map[string]string{
	"monday": "Mon", "tuesday": "Tue", "wednesday": "Wed", "thursday": "Thu",
	"friday": "Fri", "saturday": "Sat", "sunday": "Sun",
	"mon": "Mon", "tue": "Tue", "wed": "Wed", "thu": "Thu",
	"fri": "Fri", "sat": "Sat", "sun": "Sun",
	// dayOfWeek do GA4: 0 é domingo
	"0": "Sun", "1": "Mon", "2": "Tue", "3": "Wed", "4": "Thu", "5": "Fri", "6": "Sat",
}

// WeekdayLabel normaliza MONDAY, Monday, mon ou "1" para "Mon"
func WeekdayLabel(raw string) (string, bool) {
	label, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(raw))]
	return label, ok
}

// WeekdayKey agrupa pelo dia da semana normalizado; dias inválidos ficam
// sob fallback
func WeekdayKey(dimension, fallback string) KeyFunc {
	return func(r Record) GroupKey {
		if label, ok := WeekdayLabel(r.Dimension(dimension)); ok {
			return label
		}
		return fallback
	}
}

// WeekdaySeries devolve sempre sete pontos de Mon a Sun, preenchendo com zero
func WeekdaySeries(agg Aggregate, field string) []Entry {
	entries := make([]Entry, 0, len(Weekdays))
	for _, day := range Weekdays {
		v := agg[day]
		if v == nil {
			v = Values{field: 0}
		}
		entries = append(entries, Entry{Key: day, Values: v})
	}
	return entries
}
