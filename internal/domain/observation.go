package domain

import (
	"time"
)

// CurrentWeather holds the instantaneous conditions at the observation time.
type CurrentWeather struct {
	AirTempC         float64 `json:"air_temp_c"`
	WindSpeedKmh     float64 `json:"wind_speed_kmh"`
	WindDirectionDeg float64 `json:"wind_direction_deg"` // meteorological: degrees FROM, 0=N 90=E
	HumidityPct      float64 `json:"humidity_pct"`
	UVIndex          float64 `json:"uv_index"`
	CloudCoverPct    float64 `json:"cloud_cover_pct"`
}

// DailyWeather is one day of aggregated weather, used both for the trailing
// 7-day window and for forecast days.
type DailyWeather struct {
	TempMeanC       float64 `json:"temp_mean_c"`
	TempMaxC        float64 `json:"temp_max_c"`
	TempMinC        float64 `json:"temp_min_c"`
	PrecipitationMM float64 `json:"precipitation_mm"`
	WindMaxKmh      float64 `json:"wind_max_kmh"`
	UVIndexMax      float64 `json:"uv_index_max"`
	CloudCoverPct   float64 `json:"cloud_cover_pct"`
}

// HistoricalTemperature is one daily mean from the multi-year archive used
// to fit the seasonal baseline and the monthly anomaly distribution.
type HistoricalTemperature struct {
	Month     time.Month `json:"month"`
	DayOfYear int        `json:"day_of_year"`
	TempMeanC float64    `json:"temp_mean_c"`
}

// LandCover holds catchment land-cover proportions in percent. Values need
// not sum to 100 after shoreline buffering.
type LandCover struct {
	AgriculturalPct float64 `json:"agricultural_pct" validate:"min=0,max=100"`
	UrbanPct        float64 `json:"urban_pct" validate:"min=0,max=100"`
	GrasslandPct    float64 `json:"grassland_pct" validate:"min=0,max=100"`
	ForestPct       float64 `json:"forest_pct" validate:"min=0,max=100"`
	WetlandPct      float64 `json:"wetland_pct" validate:"min=0,max=100"`
}

// Provenance describes where the observation's data came from and how fresh
// it is. The confidence rule in the bloom-probability model reads only this
// block; the engine itself never fetches anything.
type Provenance struct {
	WeatherLive        bool          `json:"weather_live"`
	DataAge            time.Duration `json:"data_age"`
	SatelliteAvailable bool          `json:"satellite_available"`
	SatelliteAge       time.Duration `json:"satellite_age"`
	HistoricalYears    int           `json:"historical_years"`
}

// EnvironmentalObservation is the immutable input snapshot for one
// location and date, assembled by external data collaborators. The engine
// treats it as read-only.
type EnvironmentalObservation struct {
	Date      time.Time `json:"date" validate:"required"`
	Latitude  float64   `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64   `json:"longitude" validate:"min=-180,max=180"`

	Current  CurrentWeather `json:"current"`
	PastDays []DailyWeather `json:"past_days"` // trailing window, oldest first
	Forecast []DailyWeather `json:"forecast"`  // next days, day+1 first

	// Rainfall30d is the daily precipitation series for the trailing 30
	// days, oldest first. ExpectedRainfall30dMM is the climatological
	// median total for the same window.
	Rainfall30d           []float64 `json:"rainfall_30d"`
	ExpectedRainfall30dMM float64   `json:"expected_rainfall_30d_mm"`

	Historical []HistoricalTemperature `json:"historical"`

	// SatelliteWaterTempC overrides the air-temperature water model when a
	// satellite thermal sample is available.
	SatelliteWaterTempC *float64 `json:"satellite_water_temp_c,omitempty"`

	LandCover  LandCover  `json:"land_cover"`
	Provenance Provenance `json:"provenance"`
}

// DayOfYear returns the observation's ordinal day (1-366).
func (o EnvironmentalObservation) DayOfYear() int {
	return o.Date.YearDay()
}

// SouthernHemisphere reports whether the site is below the equator, which
// shifts the nutrient seasonality bands by six months.
func (o EnvironmentalObservation) SouthernHemisphere() bool {
	return o.Latitude < 0
}

// Rainfall48h sums the most recent two days of the 30-day series.
func (o EnvironmentalObservation) Rainfall48h() float64 {
	return sumTail(o.Rainfall30d, 2)
}

// Rainfall7d sums the most recent seven days of the 30-day series.
func (o EnvironmentalObservation) Rainfall7d() float64 {
	return sumTail(o.Rainfall30d, 7)
}

// Rainfall30dTotal sums the full trailing 30-day series.
func (o EnvironmentalObservation) Rainfall30dTotal() float64 {
	return sumTail(o.Rainfall30d, len(o.Rainfall30d))
}

// DaysSinceSignificantRain counts days since the last daily total at or
// above significantRainMM. When no such day exists the series length is
// returned (the window has been dry throughout).
func (o EnvironmentalObservation) DaysSinceSignificantRain() int {
	return daysSinceSignificant(o.Rainfall30d)
}

// DryDaysBeforeEvent counts the dry spell preceding the most recent two
// days, so a heavy rain happening right now can still be recognized as a
// first flush after a dry stretch.
func (o EnvironmentalObservation) DryDaysBeforeEvent() int {
	if len(o.Rainfall30d) <= 2 {
		return 0
	}
	return daysSinceSignificant(o.Rainfall30d[:len(o.Rainfall30d)-2])
}

func daysSinceSignificant(series []float64) int {
	for i := len(series) - 1; i >= 0; i-- {
		if series[i] >= significantRainMM {
			return len(series) - 1 - i
		}
	}
	return len(series)
}

func sumTail(series []float64, n int) float64 {
	if n > len(series) {
		n = len(series)
	}
	var total float64
	for _, v := range series[len(series)-n:] {
		total += v
	}
	return total
}
