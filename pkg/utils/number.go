package utils

import (
	"math"
	"strconv"
	"strings"
)

// Round arredonda f para a quantidade de casas decimais informada.
// NaN e infinitos viram zero para nunca chegarem ao JSON de resposta.
func Round(f float64, places int) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	pow := math.Pow(10, float64(places))
	return math.Round(f*pow) / pow
}

// ParseNumber converte um valor vindo de um provedor em float64.
// Valores ausentes ou inválidos valem zero, nunca erro.
func ParseNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}
