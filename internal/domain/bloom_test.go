package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFuseBloomProbability_UniformScoresPassThrough(t *testing.T) {
	cfg := DefaultModelConfig().Fusion

	fused := fuseBloomProbability(fullScores(50, 50, 50, 50), cfg)

	assert.InDelta(t, 50.0, fused, 1e-9)
}

func TestFuseBloomProbability_ZeroComponentDragsDown(t *testing.T) {
	cfg := DefaultModelConfig().Fusion

	// Three strong drivers cannot carry a flat-zero fourth: the floored
	// geometric mean lands at 3.44 before the x1.15 synergy bump.
	fused := fuseBloomProbability(fullScores(0, 80, 80, 80), cfg)

	assert.InDelta(t, 3.96, fused, 0.01)
	assert.Less(t, fused, 5.0)
}

func TestFuseBloomProbability_Synergy(t *testing.T) {
	cfg := DefaultModelConfig().Fusion

	weak := fuseBloomProbability(fullScores(80, 80, 60, 60), cfg)
	strong := fuseBloomProbability(fullScores(80, 80, 80, 60), cfg)

	// Two components above 70 get the weak bump, three the strong one.
	assert.InDelta(t, 74.87, weak, 0.01)
	assert.InDelta(t, 87.36, strong, 0.01)
}

func TestFuseBloomProbability_ClampsAtHundred(t *testing.T) {
	cfg := DefaultModelConfig().Fusion

	fused := fuseBloomProbability(fullScores(100, 100, 100, 100), cfg)

	assert.InDelta(t, 100.0, fused, 1e-9)
}

func TestCellsFromScore_CalibrationAnchors(t *testing.T) {
	cfg := DefaultModelConfig().Fusion

	assert.InDelta(t, 20_000, cellsFromScore(30, cfg), 1000)
	assert.InDelta(t, 10_000_000, cellsFromScore(85, cfg), 200_000)
}

func TestSeverityFromCells_WHOBands(t *testing.T) {
	assert.Equal(t, SeverityLow, severityFromCells(19_999))
	assert.Equal(t, SeverityModerate, severityFromCells(20_000))
	assert.Equal(t, SeverityHigh, severityFromCells(100_000))
	assert.Equal(t, SeverityVeryHigh, severityFromCells(10_000_000))
}

func TestPrimaryDriver(t *testing.T) {
	cfg := DefaultModelConfig().Fusion

	// 80 x 0.25 beats 50 x 0.35.
	assert.Equal(t, DriverNutrient, primaryDriver(fullScores(50, 80, 10, 10), cfg))

	// With equal scores the heaviest weight wins.
	assert.Equal(t, DriverTemperature, primaryDriver(fullScores(60, 60, 60, 60), cfg))
}

func TestDeriveConfidence(t *testing.T) {
	fresh := Provenance{
		WeatherLive:        true,
		DataAge:            2 * time.Hour,
		HistoricalYears:    10,
		SatelliteAvailable: true,
		SatelliteAge:       6 * time.Hour,
	}
	assert.Equal(t, ConfidenceHigh, deriveConfidence(fresh))

	staleSatellite := fresh
	staleSatellite.SatelliteAge = 72 * time.Hour
	assert.Equal(t, ConfidenceMedium, deriveConfidence(staleSatellite))

	noSatellite := fresh
	noSatellite.SatelliteAvailable = false
	assert.Equal(t, ConfidenceMedium, deriveConfidence(noSatellite))

	offline := Provenance{WeatherLive: false, HistoricalYears: 10}
	assert.Equal(t, ConfidenceLow, deriveConfidence(offline))
}
