package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRainfallWindows(t *testing.T) {
	obs := baseObservation()
	obs.Rainfall30d = make([]float64, 30)
	for i := 23; i < 30; i++ {
		obs.Rainfall30d[i] = 2
	}
	obs.Rainfall30d[29] = 12

	assert.InDelta(t, 14.0, obs.Rainfall48h(), 1e-9)
	assert.InDelta(t, 24.0, obs.Rainfall7d(), 1e-9)
	assert.InDelta(t, 24.0, obs.Rainfall30dTotal(), 1e-9)
}

func TestRainfallWindows_ShortSeries(t *testing.T) {
	obs := baseObservation()
	obs.Rainfall30d = []float64{4}

	assert.InDelta(t, 4.0, obs.Rainfall48h(), 1e-9)
	assert.InDelta(t, 4.0, obs.Rainfall7d(), 1e-9)
	assert.Equal(t, 0, obs.DryDaysBeforeEvent())
}

func TestDaysSinceSignificantRain_DryThroughout(t *testing.T) {
	obs := baseObservation()

	assert.Equal(t, 30, obs.DaysSinceSignificantRain())
}

func TestSouthernHemisphere(t *testing.T) {
	obs := baseObservation()
	assert.False(t, obs.SouthernHemisphere())

	obs.Latitude = -33.9
	assert.True(t, obs.SouthernHemisphere())
}

func TestDayOfYear(t *testing.T) {
	obs := baseObservation()
	obs.Date = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, obs.DayOfYear())

	obs.Date = augustDate
	assert.Equal(t, 226, obs.DayOfYear())
}
