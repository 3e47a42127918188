package domain

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// temperatureDiagnostics carries intermediate temperature values consumed
// by the growth model and the factor lists of other extractors.
type temperatureDiagnostics struct {
	WaterTempC    float64
	FromSatellite bool
	ZScore        float64
	AnomalyC      float64
	Bracket       float64
	Percentile    float64
	BaselineC     float64
	TrendCPerDay  float64
	HasBaseline   bool
}

// estimateWaterTemp approximates surface water temperature from air
// temperature (Livingstone & Lotter 1998). Wind strips heat above a calm
// 5 km/h floor; humidity nudges the estimate around its 50% midpoint.
func estimateWaterTemp(airNowC, air7dC, windKmh, humidityPct float64) float64 {
	base := 0.65*airNowC + 0.35*air7dC
	windCooling := math.Max(0, (windKmh-5.0)*0.08)
	humidityCorrection := (humidityPct - 50.0) / 100.0 * 1.5
	return math.Max(base-windCooling+humidityCorrection, 0.5)
}

// scoreTemperature computes the temperature anomaly component: a sigmoid
// fusion of the historical Z-score with the absolute biological bracket,
// plus a capped warming-trend bonus.
func scoreTemperature(obs EnvironmentalObservation, cfg TemperatureConfig) (ComponentScore, temperatureDiagnostics) {
	diag := temperatureDiagnostics{Percentile: 50}

	air7d := obs.Current.AirTempC
	if temps := pastTempMeans(obs.PastDays); len(temps) > 0 {
		air7d = stat.Mean(temps, nil)
	}

	if obs.SatelliteWaterTempC != nil {
		diag.WaterTempC = *obs.SatelliteWaterTempC
		diag.FromSatellite = true
	} else {
		diag.WaterTempC = estimateWaterTemp(
			obs.Current.AirTempC, air7d, obs.Current.WindSpeedKmh, obs.Current.HumidityPct)
	}

	// Monthly anomaly distribution. Degenerate history (σ=0) yields Z=0
	// rather than a division by zero.
	monthTemps := historicalForMonth(obs.Historical, obs.Date.Month())
	if len(monthTemps) > 1 {
		mu := stat.Mean(monthTemps, nil)
		sigma := stat.StdDev(monthTemps, nil)
		if sigma > 0 {
			diag.ZScore = (obs.Current.AirTempC - mu) / sigma
			diag.AnomalyC = obs.Current.AirTempC - mu
		}
		diag.Percentile = percentileOfScore(monthTemps, obs.Current.AirTempC)
		diag.BaselineC = mu
		diag.HasBaseline = true
	}

	// Seasonal baseline via harmonic regression when at least two years of
	// history exist; otherwise the monthly mean above stands in.
	if obs.Provenance.HistoricalYears >= 2 && len(obs.Historical) >= 30 {
		if baseline, ok := harmonicBaseline(obs.Historical, obs.DayOfYear()); ok {
			diag.BaselineC = baseline
		}
	}

	diag.Bracket = temperatureBracket(diag.WaterTempC)

	// Z and bracket standardized to comparable scales before combination.
	combined := sigmoid(cfg.AnomalyWeight*diag.ZScore+
		cfg.BracketWeight*(diag.Bracket-cfg.BracketCenter)/cfg.BracketScale) * 100

	var factors []Factor
	factors = append(factors,
		Factor{Label: fmt.Sprintf("water temperature %.1f°C (bracket %.0f)", diag.WaterTempC, diag.Bracket), Contribution: combined})
	if diag.HasBaseline {
		factors = append(factors,
			Factor{Label: fmt.Sprintf("anomaly %+.1f°C vs monthly baseline (z=%.2f)", diag.AnomalyC, diag.ZScore)})
	} else {
		factors = append(factors,
			Factor{Label: "no historical baseline; anomaly component neutral"})
	}

	// 7-day warming-trend bonus, linearly interpolated by slope magnitude.
	if temps := pastTempMeans(obs.PastDays); len(temps) >= 4 {
		xs := make([]float64, len(temps))
		for i := range xs {
			xs[i] = float64(i)
		}
		_, slope := stat.LinearRegression(xs, temps, nil, false)
		diag.TrendCPerDay = slope
		if slope > cfg.TrendThresholdCPerDay {
			frac := clamp01((slope - cfg.TrendThresholdCPerDay) /
				(cfg.TrendSaturationCPerDay - cfg.TrendThresholdCPerDay))
			bonus := cfg.TrendBonusMin + frac*(cfg.TrendBonusMax-cfg.TrendBonusMin)
			combined += bonus
			factors = append(factors,
				Factor{Label: fmt.Sprintf("warming %.2f°C/day over past week", slope), Contribution: bonus})
		}
	}

	// Percentile labels are descriptive only; they never alter the score.
	switch {
	case diag.Percentile > 95:
		factors = append(factors,
			Factor{Label: fmt.Sprintf("extremely warm for the month (%.0fth percentile)", diag.Percentile)})
	case diag.Percentile > 90:
		factors = append(factors,
			Factor{Label: fmt.Sprintf("unusually warm for the month (%.0fth percentile)", diag.Percentile)})
	}
	if diag.FromSatellite {
		factors = append(factors, Factor{Label: "water temperature from satellite thermal sample"})
	}

	return ComponentScore{Value: clampScore(combined), Factors: factors}, diag
}

// temperatureBracket maps water temperature to the absolute biological
// score (Paerl & Huisman 2008): growth starts near 15°C, accelerates above
// 20°C, peaks at 28°C, and is mildly stressed above 35°C. Within each band
// the score interpolates linearly.
func temperatureBracket(t float64) float64 {
	switch {
	case t < 15:
		return 5
	case t < 20:
		return 20 + (t-15)/5*20
	case t < 25:
		return 40 + (t-20)/5*25
	case t < 28:
		return 65 + (t-25)/3*25
	case t < 35:
		return 90 + (t-28)/7*5
	default:
		return math.Max(80, 95-(t-35)*3)
	}
}

// harmonicBaseline fits T(t) = a + b·sin(2π·doy/365) + c·cos(2π·doy/365)
// by least squares and evaluates it at the observation's day of year.
func harmonicBaseline(hist []HistoricalTemperature, doy int) (float64, bool) {
	n := len(hist)
	if n < 30 {
		return 0, false
	}

	design := mat.NewDense(n, 3, nil)
	y := mat.NewVecDense(n, nil)
	for i, h := range hist {
		omega := 2 * math.Pi * float64(h.DayOfYear) / 365
		design.Set(i, 0, 1)
		design.Set(i, 1, math.Sin(omega))
		design.Set(i, 2, math.Cos(omega))
		y.SetVec(i, h.TempMeanC)
	}

	var qr mat.QR
	qr.Factorize(design)
	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, y); err != nil {
		return 0, false
	}

	omega := 2 * math.Pi * float64(doy) / 365
	return coef.AtVec(0) + coef.AtVec(1)*math.Sin(omega) + coef.AtVec(2)*math.Cos(omega), true
}

func historicalForMonth(hist []HistoricalTemperature, m time.Month) []float64 {
	var out []float64
	for _, h := range hist {
		if h.Month == m {
			out = append(out, h.TempMeanC)
		}
	}
	// Sparse archives fall back to the full record set.
	if len(out) < 10 {
		out = out[:0]
		for _, h := range hist {
			out = append(out, h.TempMeanC)
		}
	}
	return out
}

func pastTempMeans(days []DailyWeather) []float64 {
	out := make([]float64, 0, len(days))
	for _, d := range days {
		out = append(out, d.TempMeanC)
	}
	return out
}

// percentileOfScore returns the share of values at or below v, in percent.
func percentileOfScore(values []float64, v float64) float64 {
	if len(values) == 0 {
		return 50
	}
	var below int
	for _, x := range values {
		if x <= v {
			below++
		}
	}
	return float64(below) / float64(len(values)) * 100
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
