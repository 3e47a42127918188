package domain

// significantRainMM is the daily total that counts as a rain event when
// computing dry-spell lengths.
const significantRainMM = 5.0

// WHO cyanobacteria thresholds in cells/mL, from the WHO (2003) Guidelines
// for Safe Recreational Water Environments.
const (
	whoLowCellsPerML      = 20_000
	whoModerateCellsPerML = 100_000
	whoHighCellsPerML     = 10_000_000
)

// TemperatureConfig tunes the temperature anomaly model.
type TemperatureConfig struct {
	// AnomalyWeight (α) and BracketWeight (β) scale the Z-score and the
	// standardized bracket score inside the sigmoid combination. The
	// bracket is standardized as (bracket-BracketCenter)/BracketScale so
	// both terms live on a comparable Z-like scale.
	AnomalyWeight float64
	BracketWeight float64
	BracketCenter float64
	BracketScale  float64

	// TrendThresholdCPerDay is the 7-day warming slope above which the
	// bonus applies; the bonus interpolates TrendBonusMin..TrendBonusMax
	// as the slope climbs to TrendSaturationCPerDay.
	TrendThresholdCPerDay  float64
	TrendSaturationCPerDay float64
	TrendBonusMin          float64
	TrendBonusMax          float64
}

// MonodConfig holds the growth-kinetics constants, calibrated for
// Microcystis aeruginosa (Robarts & Zohary 1987, Reynolds 2006).
type MonodConfig struct {
	MuMax         float64 // per day
	TOptimalC     float64
	SigmaTC       float64
	KN            float64 // nutrient half-saturation, normalized 0-100 scale
	MinStagnation float64 // blooms still grow in flowing water
}

// FusionConfig tunes the bloom-probability fusion.
type FusionConfig struct {
	WeightTemperature float64
	WeightNutrient    float64
	WeightStagnation  float64
	WeightLight       float64

	// ScoreFloor is the ε applied to each component before the geometric
	// mean. Without it a single exact-zero component would collapse the
	// product and mask the other three entirely; with it a near-zero
	// component still drags the fused score to near zero.
	ScoreFloor float64

	// Synergy amplification: components above SynergyThreshold count as
	// co-occurring; 3-4 of them multiply the base by SynergyStrong,
	// exactly 2 by SynergyWeak.
	SynergyThreshold float64
	SynergyStrong    float64
	SynergyWeak      float64

	// Log-linear score→cells calibration: cells = 10^(slope·score+intercept).
	// slope=(7.0-4.3)/(85-30), intercept=4.3-slope·30, anchoring score 30
	// at 20k cells/mL and score 85 at 10M cells/mL.
	CellsSlope     float64
	CellsIntercept float64
}

// Weight returns the fusion weight for a driver.
func (c FusionConfig) Weight(d Driver) float64 {
	switch d {
	case DriverTemperature:
		return c.WeightTemperature
	case DriverNutrient:
		return c.WeightNutrient
	case DriverStagnation:
		return c.WeightStagnation
	case DriverLight:
		return c.WeightLight
	}
	return 0
}

// ForecastConfig tunes the Monte Carlo forecast.
type ForecastConfig struct {
	Days    int
	Samples int
	Seed    uint64
	Workers int

	// Temperature draw σ grows from SigmaDay1C on day 1 by SigmaStepC per
	// additional lead day (1°C on day 1, 4°C on day 7).
	SigmaDay1C float64
	SigmaStepC float64
}

// TrendConfig tunes the Mann-Kendall classification.
type TrendConfig struct {
	Alpha float64 // two-sided significance threshold
}

// SpatialConfig tunes the IDW risk surface.
type SpatialConfig struct {
	GridSize  int
	RadiusDeg float64
	ShoreRing int

	// Downwind boost: cells within the wind sector receive a
	// multiplicative 1+BoostMin..1+BoostMax scaled by wind alignment.
	BoostMin      float64
	BoostMax      float64
	SectorHalfDeg float64
}

// ModelConfig bundles all engine constants. It is read-only configuration
// passed explicitly into each component so every model stays pure and
// testable in isolation.
type ModelConfig struct {
	Temperature TemperatureConfig
	Monod       MonodConfig
	Fusion      FusionConfig
	Forecast    ForecastConfig
	Trend       TrendConfig
	Spatial     SpatialConfig
}

// DefaultModelConfig returns the published calibration.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Temperature: TemperatureConfig{
			AnomalyWeight:          0.8,
			BracketWeight:          0.8,
			BracketCenter:          50,
			BracketScale:           12.5,
			TrendThresholdCPerDay:  0.3,
			TrendSaturationCPerDay: 1.0,
			TrendBonusMin:          10,
			TrendBonusMax:          20,
		},
		Monod: MonodConfig{
			MuMax:         1.0,
			TOptimalC:     28.0,
			SigmaTC:       5.0,
			KN:            50.0,
			MinStagnation: 0.3,
		},
		Fusion: FusionConfig{
			WeightTemperature: 0.35,
			WeightNutrient:    0.25,
			WeightStagnation:  0.22,
			WeightLight:       0.18,
			ScoreFloor:        0.01,
			SynergyThreshold:  70,
			SynergyStrong:     1.15,
			SynergyWeak:       1.05,
			CellsSlope:        0.049,
			CellsIntercept:    2.83,
		},
		Forecast: ForecastConfig{
			Days:       7,
			Samples:    64,
			Seed:       42,
			Workers:    4,
			SigmaDay1C: 1.0,
			SigmaStepC: 0.5,
		},
		Trend: TrendConfig{Alpha: 0.05},
		Spatial: SpatialConfig{
			GridSize:      20,
			RadiusDeg:     0.10,
			ShoreRing:     16,
			BoostMin:      0.20,
			BoostMax:      0.40,
			SectorHalfDeg: 60,
		},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

func clampScore(v float64) float64 { return clamp(v, 0, 100) }
