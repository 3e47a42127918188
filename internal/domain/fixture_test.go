package domain

import (
	"math"
	"time"
)

var augustDate = time.Date(2026, time.August, 14, 0, 0, 0, 0, time.UTC)

// baseObservation is a neutral mid-latitude August snapshot: mild, breezy,
// recently rained, no history. Tests override the fields they exercise.
func baseObservation() EnvironmentalObservation {
	return EnvironmentalObservation{
		Date:      augustDate,
		Latitude:  41.7,
		Longitude: -82.9,
		Current: CurrentWeather{
			AirTempC:      20,
			WindSpeedKmh:  12,
			HumidityPct:   50,
			UVIndex:       5,
			CloudCoverPct: 50,
		},
		PastDays:              constantWeek(20, 12),
		Rainfall30d:           make([]float64, 30),
		ExpectedRainfall30dMM: 80,
		LandCover: LandCover{
			AgriculturalPct: 30,
			UrbanPct:        10,
			GrasslandPct:    15,
			ForestPct:       35,
			WetlandPct:      5,
		},
		Provenance: Provenance{
			WeatherLive:     true,
			DataAge:         2 * time.Hour,
			HistoricalYears: 0,
		},
	}
}

// constantWeek builds seven identical trailing days so neither the
// warming-trend bonus nor the diurnal proxy fires unexpectedly.
func constantWeek(tempC, windKmh float64) []DailyWeather {
	days := make([]DailyWeather, 7)
	for i := range days {
		days[i] = DailyWeather{
			TempMeanC:  tempC,
			TempMaxC:   tempC + 3,
			TempMinC:   tempC - 3,
			WindMaxKmh: windKmh,
		}
	}
	return days
}

// sinusoidHistory samples T = mean + amp·sin(2π·doy/365) weekly over the
// given number of years.
func sinusoidHistory(mean, amp float64, years int) []HistoricalTemperature {
	var out []HistoricalTemperature
	for y := 0; y < years; y++ {
		for doy := 4; doy <= 365; doy += 7 {
			out = append(out, HistoricalTemperature{
				Month:     time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, doy-1).Month(),
				DayOfYear: doy,
				TempMeanC: mean + amp*math.Sin(2*math.Pi*float64(doy)/365),
			})
		}
	}
	return out
}

func satTemp(t float64) *float64 { return &t }
