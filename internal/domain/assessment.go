package domain

// Factor is one labelled contribution in a component's explanation list.
// Contribution is in score points (may be zero for purely descriptive
// factors such as percentile labels).
type Factor struct {
	Label        string  `json:"label"`
	Contribution float64 `json:"contribution"`
}

// ComponentScore is the bounded output of one feature extractor.
// Value is always in [0,100] regardless of intermediate arithmetic.
type ComponentScore struct {
	Value   float64  `json:"value"`
	Factors []Factor `json:"factors,omitempty"`
}

// Driver identifies one of the four bloom risk components.
type Driver string

const (
	DriverTemperature Driver = "temperature"
	DriverNutrient    Driver = "nutrient"
	DriverStagnation  Driver = "stagnation"
	DriverLight       Driver = "light"
)

// Severity is the WHO recreational-water risk class derived from estimated
// cyanobacterial cell density.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityModerate Severity = "MODERATE"
	SeverityHigh     Severity = "HIGH"
	SeverityVeryHigh Severity = "VERY_HIGH"
)

// Confidence grades the assessment by input-data provenance, not by model
// spread. It is ordinal only.
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// GrowthRateResult is the Monod kinetics output. It explains the
// assessment but never feeds back into the risk score, which would
// double-count the same four component scores.
type GrowthRateResult struct {
	MuPerDay          float64            `json:"mu_per_day"`
	DoublingTimeHours float64            `json:"doubling_time_hours"`
	Unbounded         bool               `json:"unbounded"` // µ≈0: no meaningful doubling time
	Limitation        map[Driver]float64 `json:"limitation"`
	LimitingFactor    Driver             `json:"limiting_factor"`
	BiomassTrajectory []float64          `json:"biomass_trajectory"` // relative units, day 0..7
}

// ComponentScores groups the four extractor outputs of one scoring pass.
type ComponentScores struct {
	Temperature ComponentScore `json:"temperature"`
	Nutrient    ComponentScore `json:"nutrient"`
	Stagnation  ComponentScore `json:"stagnation"`
	Light       ComponentScore `json:"light"`
}

// Value returns the score for a driver, defaulting to zero for unknown
// drivers.
func (c ComponentScores) Value(d Driver) float64 {
	switch d {
	case DriverTemperature:
		return c.Temperature.Value
	case DriverNutrient:
		return c.Nutrient.Value
	case DriverStagnation:
		return c.Stagnation.Value
	case DriverLight:
		return c.Light.Value
	}
	return 0
}

// RiskAssessment is the terminal output of one scoring pass.
type RiskAssessment struct {
	Score         int              `json:"score"` // 0-100
	CellsPerML    float64          `json:"cells_per_ml"`
	Severity      Severity         `json:"severity"`
	Confidence    Confidence       `json:"confidence"`
	PrimaryDriver Driver           `json:"primary_driver"`
	Components    ComponentScores  `json:"components"`
	Growth        GrowthRateResult `json:"growth"`
	WaterTempC    float64          `json:"water_temp_c"`
	Advisory      string           `json:"advisory"`
}

// ForecastPoint is one day of the forward risk trajectory with its Monte
// Carlo 10th/90th percentile band.
type ForecastPoint struct {
	DayOffset   int `json:"day_offset"` // 1..7
	MedianScore int `json:"median_score"`
	Low90       int `json:"low_90"`
	High90      int `json:"high_90"`
}

// TrendDirection classifies the 30-day score series.
type TrendDirection string

const (
	TrendWorsening TrendDirection = "WORSENING"
	TrendStable    TrendDirection = "STABLE"
	TrendImproving TrendDirection = "IMPROVING"
)

// TrendResult is the Mann-Kendall / Sen's slope output over a historical
// score series.
type TrendResult struct {
	Direction TrendDirection `json:"direction"`
	PValue    float64        `json:"p_value"`
	SenSlope  float64        `json:"sen_slope"` // score points per day
	Samples   int            `json:"samples"`
}

// GridCell is one interpolated sample of the spatial risk surface.
type GridCell struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Risk float64 `json:"risk"` // 0-100
}

// SpatialGrid is an ordered (row-major) sequence of interpolated cells.
// It is derived on demand and never persisted.
type SpatialGrid []GridCell
