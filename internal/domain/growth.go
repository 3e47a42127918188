package domain

import (
	"math"
)

// muEpsilon is the growth rate below which doubling time is reported as
// unbounded instead of dividing by near-zero.
const muEpsilon = 1e-6

// computeGrowthRate evaluates Monod kinetics over the four component
// scores: µ = µ_max·f(T)·f(N)·f(L)·f(S), each limitation factor in [0,1].
// The result explains an assessment; it never feeds the risk score.
func computeGrowthRate(scores ComponentScores, waterTempC float64, cfg MonodConfig) GrowthRateResult {
	// Gaussian temperature response (Robarts & Zohary 1987), on the
	// water temperature estimate rather than raw air temperature.
	dT := waterTempC - cfg.TOptimalC
	fT := clamp01(math.Exp(-(dT * dT) / (2 * cfg.SigmaTC * cfg.SigmaTC)))

	// Monod half-saturation nutrient limitation.
	n := scores.Nutrient.Value
	fN := clamp01(n / (n + cfg.KN))

	fL := clamp01(scores.Light.Value / 100)

	// Stagnation helps surface accumulation but blooms still grow in
	// flowing water, hence the floor.
	fS := clamp(cfg.MinStagnation+(scores.Stagnation.Value/100)*(1-cfg.MinStagnation),
		cfg.MinStagnation, 1)

	mu := clamp(cfg.MuMax*fT*fN*fL*fS, 0, cfg.MuMax)

	result := GrowthRateResult{
		MuPerDay: mu,
		Limitation: map[Driver]float64{
			DriverTemperature: fT,
			DriverNutrient:    fN,
			DriverLight:       fL,
			DriverStagnation:  fS,
		},
	}

	if mu > muEpsilon {
		result.DoublingTimeHours = math.Ln2 / mu * 24
	} else {
		result.Unbounded = true
	}

	result.LimitingFactor = limitingFactor(result.Limitation)
	result.BiomassTrajectory = biomassTrajectory(mu, 7)
	return result
}

// limitingFactor returns the driver with the smallest limitation value,
// breaking ties in a fixed driver order for determinism.
func limitingFactor(limitation map[Driver]float64) Driver {
	order := []Driver{DriverTemperature, DriverNutrient, DriverLight, DriverStagnation}
	best := order[0]
	for _, d := range order[1:] {
		if limitation[d] < limitation[best] {
			best = d
		}
	}
	return best
}

// biomassTrajectory projects relative biomass forward at constant µ using
// discrete daily growth B(t+1) = B(t)·e^µ, starting at 1.0 on day 0.
func biomassTrajectory(mu float64, days int) []float64 {
	trajectory := make([]float64, days+1)
	b := 1.0
	for i := range trajectory {
		trajectory[i] = b
		b *= math.Exp(mu)
	}
	return trajectory
}
