package pipeline

// Trend é a variação percentual entre dois períodos. Com previous zero o
// resultado é 100 se houve algo no período atual, senão 0. Sem limites nem
// arredondamento; isso fica com quem monta a resposta.
func Trend(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// Trends aplica Trend às métricas de mesmo nome dos dois períodos
func Trends(current, previous Values, names ...string) Values {
	out := make(Values, len(names))
	for _, name := range names {
		out[name] = Trend(current[name], previous[name])
	}
	return out
}
