package domain

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// windMixingRule is one band of the wind-mixing step function. Calm water
// mixes poorly, letting buoyant cyanobacteria accumulate at the surface
// (Huisman et al. 2004).
type windMixingRule struct {
	minWindKmh float64
	value      float64
}

// Ordered descending by wind; first band at or below the average wins.
var windMixingRules = []windMixingRule{
	{minWindKmh: 20, value: 0.10},
	{minWindKmh: 10, value: 0.40},
	{minWindKmh: 5, value: 0.70},
	{minWindKmh: 0, value: 1.00},
}

// stratificationRule is one entry of the thermal stratification proxy
// chain; first match wins.
type stratificationRule struct {
	name  string
	match func(diurnalRangeC, avgWindKmh, waterTempC float64) bool
	value float64
}

var stratificationRules = []stratificationRule{
	{
		name: "large diurnal swing with calm wind",
		match: func(diurnal, wind, _ float64) bool {
			return diurnal > 10 && wind < 10
		},
		value: 0.80,
	},
	{
		name: "warm surface with light wind",
		match: func(_, wind, water float64) bool {
			return water > 25 && wind < 15
		},
		value: 0.60,
	},
	{
		name:  "mixed column",
		match: func(_, _, _ float64) bool { return true },
		value: 0.20,
	},
}

// scoreStagnation blends wind mixing, hydrological rainfall deficit, and a
// thermal stratification proxy into the stagnation component.
func scoreStagnation(obs EnvironmentalObservation, waterTempC float64) ComponentScore {
	avgWind := obs.Current.WindSpeedKmh
	if winds := pastWindMaxes(obs.PastDays); len(winds) > 0 {
		avgWind = stat.Mean(winds, nil)
	}

	var windMixing float64
	for _, r := range windMixingRules {
		if avgWind > r.minWindKmh || r.minWindKmh == 0 {
			windMixing = r.value
			break
		}
	}

	// Hydrological stagnation: how far the trailing 30 days fall short of
	// the climatological median. No baseline means no deficit signal.
	var hydro float64
	if obs.ExpectedRainfall30dMM > 0 {
		hydro = clamp01(1 - obs.Rainfall30dTotal()/obs.ExpectedRainfall30dMM)
	}

	diurnal := diurnalRange(obs.PastDays)
	var strat stratificationRule
	for _, r := range stratificationRules {
		if r.match(diurnal, avgWind, waterTempC) {
			strat = r
			break
		}
	}

	score := clampScore((0.40*windMixing + 0.40*hydro + 0.20*strat.value) * 100)

	factors := []Factor{
		{Label: fmt.Sprintf("wind mixing %.2f (7-day avg %.0f km/h)", windMixing, avgWind), Contribution: 40 * windMixing},
		{Label: fmt.Sprintf("hydrological stagnation %.2f", hydro), Contribution: 40 * hydro},
		{Label: fmt.Sprintf("stratification: %s (%.2f)", strat.name, strat.value), Contribution: 20 * strat.value},
	}
	if avgWind < 10 {
		factors = append(factors,
			Factor{Label: fmt.Sprintf("low wind (%.0f km/h) - poor water mixing", avgWind)})
	}
	if days := obs.DaysSinceSignificantRain(); days >= 5 {
		factors = append(factors,
			Factor{Label: fmt.Sprintf("no significant rain for %d days", days)})
	}

	return ComponentScore{Value: score, Factors: factors}
}

// diurnalRange averages the max-min spread over the trailing window,
// defaulting to a temperate 8°C when no daily record exists.
func diurnalRange(days []DailyWeather) float64 {
	if len(days) == 0 {
		return 8.0
	}
	var maxSum, minSum float64
	for _, d := range days {
		maxSum += d.TempMaxC
		minSum += d.TempMinC
	}
	n := float64(len(days))
	return maxSum/n - minSum/n
}

func pastWindMaxes(days []DailyWeather) []float64 {
	out := make([]float64, 0, len(days))
	for _, d := range days {
		out = append(out, d.WindMaxKmh)
	}
	return out
}
