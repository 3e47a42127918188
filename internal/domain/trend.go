package domain

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// AnalyzeTrend classifies a chronological score series with the
// Mann-Kendall test (tie-corrected variance, continuity-corrected Z) and
// quantifies the rate with Sen's slope. Fewer than four samples is too
// short to test and reports STABLE with p=1.
func AnalyzeTrend(scores []float64, cfg TrendConfig) TrendResult {
	n := len(scores)
	if n < 4 {
		return TrendResult{Direction: TrendStable, PValue: 1, Samples: n}
	}

	var s int
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			switch {
			case scores[j] > scores[i]:
				s++
			case scores[j] < scores[i]:
				s--
			}
		}
	}

	variance := mannKendallVariance(scores)
	z := mannKendallZ(s, variance)
	p := 2 * distuv.UnitNormal.Survival(math.Abs(z))
	slope := senSlope(scores)

	direction := TrendStable
	if p < cfg.Alpha {
		if s > 0 {
			direction = TrendWorsening
		} else if s < 0 {
			direction = TrendImproving
		}
	}

	return TrendResult{
		Direction: direction,
		PValue:    p,
		SenSlope:  slope,
		Samples:   n,
	}
}

// TrendFromObservations scores each observation in a chronological window
// and runs the Mann-Kendall classification over the resulting series.
func TrendFromObservations(window []EnvironmentalObservation, cfg ModelConfig) TrendResult {
	scores := make([]float64, len(window))
	for i, obs := range window {
		scores[i] = float64(Assess(obs, cfg).Score)
	}
	return AnalyzeTrend(scores, cfg.Trend)
}

// mannKendallVariance computes Var(S) with the tie correction
// (n(n-1)(2n+5) - Σ t(t-1)(2t+5)) / 18 over tied groups of size t.
func mannKendallVariance(scores []float64) float64 {
	n := float64(len(scores))
	variance := n * (n - 1) * (2*n + 5)

	ties := make(map[float64]int, len(scores))
	for _, v := range scores {
		ties[v]++
	}
	for _, count := range ties {
		if count > 1 {
			t := float64(count)
			variance -= t * (t - 1) * (2*t + 5)
		}
	}
	return variance / 18
}

// mannKendallZ applies the continuity correction: S shrinks toward zero by
// one before standardization, and S=0 maps to Z=0.
func mannKendallZ(s int, variance float64) float64 {
	if variance <= 0 {
		return 0
	}
	sd := math.Sqrt(variance)
	switch {
	case s > 0:
		return (float64(s) - 1) / sd
	case s < 0:
		return (float64(s) + 1) / sd
	}
	return 0
}

// senSlope returns the median of all pairwise slopes, a robust rate
// estimate unaffected by single-day spikes.
func senSlope(scores []float64) float64 {
	n := len(scores)
	slopes := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			slopes = append(slopes, (scores[j]-scores[i])/float64(j-i))
		}
	}
	if len(slopes) == 0 {
		return 0
	}
	sort.Float64s(slopes)
	mid := len(slopes) / 2
	if len(slopes)%2 == 0 {
		return (slopes[mid-1] + slopes[mid]) / 2
	}
	return slopes[mid]
}
