package domain

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Forecast projects the risk score forward one scoring pass per forecast
// day, wrapped in a Monte Carlo temperature ensemble. Every sample draw
// comes from a single seeded source consumed in a fixed order, so the same
// observation, configuration, and seed always produce the same band.
//
// The horizon is capped by the available forecast weather; with no
// forecast days the result is nil.
func Forecast(obs EnvironmentalObservation, cfg ModelConfig) []ForecastPoint {
	days := cfg.Forecast.Days
	if days > len(obs.Forecast) {
		days = len(obs.Forecast)
	}
	if days <= 0 {
		return nil
	}

	samples := cfg.Forecast.Samples
	if samples < 1 {
		samples = 1
	}
	workers := cfg.Forecast.Workers
	if workers < 1 {
		workers = 1
	}

	// All draws happen up front on one source so concurrency cannot change
	// the sequence. Sample-major order: offsets[s][d-1].
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(cfg.Forecast.Seed)}
	offsets := make([][]float64, samples)
	for s := range offsets {
		offsets[s] = make([]float64, days)
		for d := 1; d <= days; d++ {
			sigma := cfg.Forecast.SigmaDay1C + cfg.Forecast.SigmaStepC*float64(d-1)
			offsets[s][d-1] = normal.Rand() * sigma
		}
	}

	scores := make([][]float64, samples)
	var g errgroup.Group
	g.SetLimit(workers)
	for s := 0; s < samples; s++ {
		g.Go(func() error {
			trajectory := make([]float64, days)
			for d := 1; d <= days; d++ {
				dayObs := forecastObservation(obs, d, offsets[s][d-1])
				trajectory[d-1] = float64(Assess(dayObs, cfg).Score)
			}
			scores[s] = trajectory
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never fail

	points := make([]ForecastPoint, 0, days)
	for d := 1; d <= days; d++ {
		daily := make([]float64, samples)
		for s := range scores {
			daily[s] = scores[s][d-1]
		}
		sort.Float64s(daily)
		points = append(points, ForecastPoint{
			DayOffset:   d,
			MedianScore: roundScore(stat.Quantile(0.5, stat.Empirical, daily, nil)),
			Low90:       roundScore(stat.Quantile(0.1, stat.Empirical, daily, nil)),
			High90:      roundScore(stat.Quantile(0.9, stat.Empirical, daily, nil)),
		})
	}
	return points
}

// forecastObservation builds the synthetic snapshot for one lead day: the
// forecast day's weather stands in for both the current conditions and the
// trailing week, the rainfall window rolls forward, and the satellite
// override is dropped since it cannot see ahead.
func forecastObservation(obs EnvironmentalObservation, day int, tempOffsetC float64) EnvironmentalObservation {
	fc := obs.Forecast[day-1]
	fc.TempMeanC += tempOffsetC
	fc.TempMaxC += tempOffsetC
	fc.TempMinC += tempOffsetC

	past := make([]DailyWeather, 7)
	for i := range past {
		past[i] = fc
	}

	rainfall := rollRainfall(obs.Rainfall30d, obs.Forecast[:day])

	out := obs
	out.Date = obs.Date.AddDate(0, 0, day)
	out.Current = CurrentWeather{
		AirTempC:         fc.TempMeanC,
		WindSpeedKmh:     fc.WindMaxKmh,
		WindDirectionDeg: obs.Current.WindDirectionDeg,
		HumidityPct:      obs.Current.HumidityPct,
		UVIndex:          fc.UVIndexMax,
		CloudCoverPct:    fc.CloudCoverPct,
	}
	out.PastDays = past
	out.Forecast = obs.Forecast[day:]
	out.Rainfall30d = rainfall
	out.SatelliteWaterTempC = nil
	out.Provenance.WeatherLive = false
	out.Provenance.SatelliteAvailable = false
	return out
}

// rollRainfall advances the trailing rainfall window by the forecast days:
// the oldest entries fall off and each forecast day's precipitation joins
// the recent end.
func rollRainfall(series []float64, forecast []DailyWeather) []float64 {
	rolled := make([]float64, 0, len(series)+len(forecast))
	rolled = append(rolled, series...)
	for _, fc := range forecast {
		rolled = append(rolled, fc.PrecipitationMM)
	}
	if len(rolled) > len(series) && len(series) > 0 {
		rolled = rolled[len(rolled)-len(series):]
	}
	return rolled
}

func roundScore(v float64) int {
	return int(math.Round(clampScore(v)))
}
