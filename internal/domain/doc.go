// Package domain implements the harmful-algal-bloom (HAB) risk scoring and
// forecast engine: six chained numeric models plus three derived analyses,
// all pure functions over an EnvironmentalObservation snapshot.
//
// # Scoring Pipeline
//
// One scoring pass runs four independent feature extractors, each producing
// a bounded component score in [0,100] with a contributing-factor list:
//
//	Temperature - seasonal-baseline anomaly (harmonic regression), Z-score,
//	              absolute biological bracket, 7-day warming-trend bonus.
//	Nutrient    - land-cover export coefficients × rainfall delivery rules
//	              × hemisphere-aware seasonal weight.
//	Stagnation  - wind-mixing bands + hydrological rainfall deficit +
//	              thermal stratification proxy (0.40/0.40/0.20 blend).
//	Light       - UV index, astronomical photoperiod, cloud suppression
//	              (0.50/0.30/0.20 blend).
//
// The growth-rate model combines the four scores through Monod/Gaussian
// limitation kinetics (µ = µ_max·f(T)·f(N)·f(L)·f(S)) for explanatory
// output only; the bloom-probability model fuses the four scores directly
// via a weighted geometric mean with synergy amplification, then maps the
// result to an estimated cell density and a WHO recreational-water
// severity class.
//
// # Scientific Grounding
//
// Thresholds and constants follow published sources:
//
//	WHO (2003) Guidelines for Safe Recreational Water Environments -
//	  cell-density severity bands (<20k low, <100k moderate, <10M high).
//	Paerl & Huisman (2008) "Blooms Like It Hot" - temperature brackets.
//	Robarts & Zohary (1987) - Gaussian temperature response for
//	  Microcystis (T_opt=28°C, σ=5°C).
//	Beaulac & Reckhow (1982) - land-use nutrient export coefficients.
//	Livingstone & Lotter (1998) - air-to-water temperature estimation,
//	  used only when no satellite surface-temperature sample is present.
//	Monod (1949) - half-saturation nutrient limitation (K_N=50).
//	Mann (1945), Kendall (1975), Sen (1968) - non-parametric trend test
//	  and robust slope estimator for the 30-day score series.
//
// # Numerical Guards
//
// Degenerate inputs never surface as errors: zero historical variance
// yields Z=0, zero expected rainfall yields zero hydrological stagnation,
// the photoperiod arccos argument is clamped to [-1,1], near-zero growth
// reports an unbounded doubling time, and every score is clamped to
// [0,100]. Missing mandatory series (e.g. no historical baseline) trigger
// a documented reduced-fidelity fallback and a confidence downgrade, never
// a failure.
//
// All entities are immutable values produced by one function call; the
// engine holds no state between assessments.
package domain
