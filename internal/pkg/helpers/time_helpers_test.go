package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Second, ParseDuration("90s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("not-a-duration", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}

func TestMonthStart(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	t.Run("mid-month collapses to the first", func(t *testing.T) {
		start := MonthStart(time.Date(2025, time.March, 15, 13, 45, 30, 0, loc))
		assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, loc), start)
	})

	t.Run("first instant of a month maps to itself", func(t *testing.T) {
		first := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, first, MonthStart(first))
	})

	t.Run("keeps the location", func(t *testing.T) {
		start := MonthStart(time.Date(2025, time.December, 31, 23, 59, 59, 0, loc))
		assert.Equal(t, loc, start.Location())
		assert.Equal(t, time.December, start.Month())
	})
}
