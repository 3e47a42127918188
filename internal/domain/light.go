package domain

import (
	"fmt"
	"math"
)

// scoreLight computes photosynthesis availability from UV index,
// astronomical photoperiod, and cloud suppression.
func scoreLight(obs EnvironmentalObservation) ComponentScore {
	uvScore := math.Min(obs.Current.UVIndex/11.0, 1.0)

	dayLength := dayLengthHours(obs.Latitude, obs.DayOfYear())
	photoperiodScore := math.Min(dayLength/16.0, 1.0)

	// Clouds reduce but never eliminate photosynthetically active light.
	cloudFactor := 1.0 - (obs.Current.CloudCoverPct/100.0)*0.60

	score := clampScore((0.50*uvScore + 0.30*photoperiodScore + 0.20*cloudFactor) * 100)

	factors := []Factor{
		{Label: fmt.Sprintf("UV index %.1f", obs.Current.UVIndex), Contribution: 50 * uvScore},
		{Label: fmt.Sprintf("day length %.1fh", dayLength), Contribution: 30 * photoperiodScore},
		{Label: fmt.Sprintf("cloud cover %.0f%%", obs.Current.CloudCoverPct), Contribution: 20 * cloudFactor},
	}
	if obs.Current.UVIndex >= 6 {
		factors = append(factors,
			Factor{Label: fmt.Sprintf("high UV (%.0f) favoring surface bloom formation", obs.Current.UVIndex)})
	}
	if dayLength > 14 {
		factors = append(factors,
			Factor{Label: fmt.Sprintf("long days (%.1fh) - extended photosynthesis window", dayLength)})
	}

	return ComponentScore{Value: score, Factors: factors}
}

// dayLengthHours computes astronomical day length from the solar
// declination formula. The arccos argument is clamped to [-1,1] so polar
// day and polar night resolve to 24h and 0h instead of a domain error.
func dayLengthHours(latDeg float64, doy int) float64 {
	latRad := latDeg * math.Pi / 180
	declDeg := 23.45 * math.Sin(2*math.Pi/365*float64(doy-81))
	declRad := declDeg * math.Pi / 180

	cosHourAngle := clamp(-math.Tan(latRad)*math.Tan(declRad), -1, 1)
	hourAngleDeg := math.Acos(cosHourAngle) * 180 / math.Pi
	return 2 * hourAngleDeg / 15.0 // the sun sweeps 15° per hour
}
