package domain

import (
	"math"
)

// Assess runs one full scoring pass: four feature extractors, Monod growth
// kinetics, and the bloom-probability fusion. It is pure - the same
// observation and configuration always produce the same assessment - and
// it never fails: degenerate or missing inputs degrade confidence instead
// of returning errors.
func Assess(obs EnvironmentalObservation, cfg ModelConfig) RiskAssessment {
	tempScore, tempDiag := scoreTemperature(obs, cfg.Temperature)

	scores := ComponentScores{
		Temperature: tempScore,
		Nutrient:    scoreNutrient(obs),
		Stagnation:  scoreStagnation(obs, tempDiag.WaterTempC),
		Light:       scoreLight(obs),
	}

	growth := computeGrowthRate(scores, tempDiag.WaterTempC, cfg.Monod)

	fused := fuseBloomProbability(scores, cfg.Fusion)
	cells := cellsFromScore(fused, cfg.Fusion)
	driver := primaryDriver(scores, cfg.Fusion)

	confidence := deriveConfidence(obs.Provenance)
	if !tempDiag.HasBaseline {
		// Reduced-fidelity anomaly model: without a historical baseline the
		// Z-score is neutral and confidence cannot exceed LOW.
		confidence = ConfidenceLow
	}

	return RiskAssessment{
		Score:         int(math.Round(fused)),
		CellsPerML:    cells,
		Severity:      severityFromCells(cells),
		Confidence:    confidence,
		PrimaryDriver: driver,
		Components:    scores,
		Growth:        growth,
		WaterTempC:    tempDiag.WaterTempC,
		Advisory:      buildAdvisory(fused, driver, confidence, cells),
	}
}
