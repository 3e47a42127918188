package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullScores(temp, nutrient, stagnation, light float64) ComponentScores {
	return ComponentScores{
		Temperature: ComponentScore{Value: temp},
		Nutrient:    ComponentScore{Value: nutrient},
		Stagnation:  ComponentScore{Value: stagnation},
		Light:       ComponentScore{Value: light},
	}
}

func TestComputeGrowthRate_OptimalConditions(t *testing.T) {
	cfg := DefaultModelConfig().Monod

	result := computeGrowthRate(fullScores(100, 100, 100, 100), 28, cfg)

	// fT=1, fL=1, fS=1; nutrient Monod at 100 over KN=50 gives 2/3.
	assert.InDelta(t, 2.0/3.0, result.MuPerDay, 1e-9)
	assert.InDelta(t, math.Ln2/(2.0/3.0)*24, result.DoublingTimeHours, 1e-9)
	assert.False(t, result.Unbounded)
	assert.Equal(t, DriverNutrient, result.LimitingFactor)
}

func TestComputeGrowthRate_ZeroConditionsUnbounded(t *testing.T) {
	cfg := DefaultModelConfig().Monod

	result := computeGrowthRate(fullScores(0, 0, 0, 0), 28, cfg)

	assert.Zero(t, result.MuPerDay)
	assert.True(t, result.Unbounded)
	assert.Len(t, result.BiomassTrajectory, 8)
	for _, b := range result.BiomassTrajectory {
		assert.InDelta(t, 1.0, b, 1e-12)
	}
}

func TestComputeGrowthRate_TemperatureGaussian(t *testing.T) {
	cfg := DefaultModelConfig().Monod

	result := computeGrowthRate(fullScores(100, 100, 100, 100), 18, cfg)

	// Two sigma off the 28C optimum.
	assert.InDelta(t, math.Exp(-2), result.Limitation[DriverTemperature], 1e-9)
}

func TestComputeGrowthRate_StagnationFloor(t *testing.T) {
	cfg := DefaultModelConfig().Monod

	result := computeGrowthRate(fullScores(100, 100, 0, 100), 28, cfg)

	assert.InDelta(t, cfg.MinStagnation, result.Limitation[DriverStagnation], 1e-9)
	assert.Equal(t, DriverStagnation, result.LimitingFactor)
}

func TestBiomassTrajectory(t *testing.T) {
	trajectory := biomassTrajectory(math.Ln2, 7)

	assert.Len(t, trajectory, 8)
	for i, b := range trajectory {
		assert.InDelta(t, math.Pow(2, float64(i)), b, 1e-9)
	}
}

func TestLimitingFactor_TieBreaksInDriverOrder(t *testing.T) {
	limitation := map[Driver]float64{
		DriverTemperature: 0.5,
		DriverNutrient:    0.2,
		DriverLight:       0.2,
		DriverStagnation:  0.9,
	}

	assert.Equal(t, DriverNutrient, limitingFactor(limitation))
}
