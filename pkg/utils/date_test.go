package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *date)

	date, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, date.IsZero())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	assert.Equal(t,
		time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
		StartOfDay(time.Date(2024, 3, 15, 22, 30, 0, 0, saoPaulo)),
	)
	assert.Equal(t,
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		StartOfDay(time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC)),
	)
}
