package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 25.0, Round(25.004, 2))
	assert.Equal(t, 33.3, Round(33.333, 1))
	assert.Equal(t, -12.35, Round(-12.346, 2))
	assert.Equal(t, 0.0, Round(math.NaN(), 2))
	assert.Equal(t, 0.0, Round(math.Inf(1), 2))
	assert.Equal(t, 1.5, Round(1.499999, 2))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{raw: "1000", want: 1000},
		{raw: " 12.5 ", want: 12.5},
		{raw: "", want: 0},
		{raw: "abc", want: 0},
		{raw: "NaN", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.raw))
		})
	}
}
