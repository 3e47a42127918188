package domain

import (
	"math"
	"time"
)

// fuseBloomProbability combines the four component scores into the final
// risk score via a weighted geometric mean. The geometric mean encodes the
// biology: a bloom needs warmth, fuel, stillness, and light to co-occur,
// so any component near zero drags the whole score toward zero. Each input
// is floored at cfg.ScoreFloor first so an exact zero cannot collapse the
// product outright and mask the other three components.
func fuseBloomProbability(scores ComponentScores, cfg FusionConfig) float64 {
	drivers := []Driver{DriverTemperature, DriverNutrient, DriverStagnation, DriverLight}

	var weightSum, logSum float64
	for _, d := range drivers {
		w := cfg.Weight(d)
		weightSum += w
		logSum += w * math.Log(math.Max(scores.Value(d), cfg.ScoreFloor))
	}
	base := math.Exp(logSum / weightSum)

	// Synergy amplification: several strongly elevated components at once
	// are worse than their mean suggests.
	var elevated int
	for _, d := range drivers {
		if scores.Value(d) > cfg.SynergyThreshold {
			elevated++
		}
	}
	switch {
	case elevated >= 3:
		base *= cfg.SynergyStrong
	case elevated == 2:
		base *= cfg.SynergyWeak
	}

	return clampScore(base)
}

// cellsFromScore maps a risk score to estimated cells/mL on the
// log-linear calibration (score 30 ≈ 20k cells/mL, score 85 ≈ 10M).
func cellsFromScore(score float64, cfg FusionConfig) float64 {
	return math.Pow(10, cfg.CellsSlope*score+cfg.CellsIntercept)
}

// severityFromCells bands estimated density into WHO recreational-water
// severity classes.
func severityFromCells(cells float64) Severity {
	switch {
	case cells >= whoHighCellsPerML:
		return SeverityVeryHigh
	case cells >= whoModerateCellsPerML:
		return SeverityHigh
	case cells >= whoLowCellsPerML:
		return SeverityModerate
	default:
		return SeverityLow
	}
}

// primaryDriver picks the component with the largest weight×score
// contribution, ties broken by fixed driver order.
func primaryDriver(scores ComponentScores, cfg FusionConfig) Driver {
	drivers := []Driver{DriverTemperature, DriverNutrient, DriverStagnation, DriverLight}
	best := drivers[0]
	bestContribution := cfg.Weight(best) * scores.Value(best)
	for _, d := range drivers[1:] {
		if c := cfg.Weight(d) * scores.Value(d); c > bestContribution {
			best, bestContribution = d, c
		}
	}
	return best
}

// deriveConfidence grades the assessment by input provenance:
//
//	HIGH   - all sources present, freshest data under 24h, satellite
//	         thermal/ML cache available and current.
//	MEDIUM - weather is live but the satellite source is stale (>48h)
//	         or unavailable.
//	LOW    - everything else, including a missing historical baseline.
func deriveConfidence(p Provenance) Confidence {
	satelliteFresh := p.SatelliteAvailable && p.SatelliteAge <= 48*time.Hour
	allPresent := p.WeatherLive && p.HistoricalYears > 0

	switch {
	case allPresent && p.DataAge < 24*time.Hour && satelliteFresh:
		return ConfidenceHigh
	case p.WeatherLive:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
