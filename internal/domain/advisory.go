package domain

import (
	"fmt"
)

// riskLevel is the coarse UI banding layered over the WHO severity.
type riskLevel string

const (
	levelSafe     riskLevel = "SAFE"
	levelLow      riskLevel = "LOW"
	levelWarning  riskLevel = "WARNING"
	levelCritical riskLevel = "CRITICAL"
)

func levelFromScore(score float64) riskLevel {
	switch {
	case score < 25:
		return levelSafe
	case score < 50:
		return levelLow
	case score < 75:
		return levelWarning
	default:
		return levelCritical
	}
}

var advisoryActions = map[riskLevel]string{
	levelSafe: "The water body shows low cyanobacteria bloom risk. " +
		"Normal recreational use is considered safe under current conditions. " +
		"Continue routine monitoring.",
	levelLow: "Low-to-moderate bloom risk detected. " +
		"Recreational use is generally safe but conditions should be monitored over the coming days. " +
		"Avoid swallowing water and watch for surface scum or discolouration.",
	levelWarning: "Elevated cyanobacteria bloom risk. " +
		"Avoid direct water contact, especially for children and pets. " +
		"Do not use for drinking without treatment. " +
		"Notify the local environmental health authority.",
	levelCritical: "CRITICAL bloom risk. Acute danger. " +
		"Do not use this water for drinking, bathing, or livestock. " +
		"Immediately notify the local health authority and post warning signs.",
}

var driverPhrases = map[Driver]string{
	DriverTemperature: "abnormally warm water temperature",
	DriverNutrient:    "high nutrient loading from agricultural or urban runoff",
	DriverStagnation:  "stagnant water and low mixing conditions",
	DriverLight:       "high light availability and UV exposure",
}

// buildAdvisory composes the plain-English health advisory attached to
// every assessment.
func buildAdvisory(score float64, driver Driver, confidence Confidence, cells float64) string {
	action := advisoryActions[levelFromScore(score)]
	return fmt.Sprintf("%s Primary driver: %s. Confidence: %s (%.0f est. cells/mL).",
		action, driverPhrases[driver], confidence, cells)
}

// WHOComparison is the display-ready WHO threshold proximity summary.
type WHOComparison struct {
	Severity       Severity `json:"severity"`
	EstimatedCells float64  `json:"estimated_cells"`
	NextThreshold  float64  `json:"next_threshold,omitempty"` // 0 when all thresholds exceeded
	NextLabel      string   `json:"next_label,omitempty"`
	Proximity      string   `json:"proximity"`
}

// CompareWHO reports how close an assessment sits to the next WHO
// cell-density threshold.
func CompareWHO(a RiskAssessment) WHOComparison {
	cmp := WHOComparison{Severity: a.Severity, EstimatedCells: a.CellsPerML}

	thresholds := []struct {
		label string
		cells float64
	}{
		{"WHO Low", whoLowCellsPerML},
		{"WHO Moderate", whoModerateCellsPerML},
		{"WHO High", whoHighCellsPerML},
	}
	for _, t := range thresholds {
		if a.CellsPerML < t.cells {
			cmp.NextThreshold = t.cells
			cmp.NextLabel = t.label
			cmp.Proximity = fmt.Sprintf("%.0f cells/mL - %.1f%% of the %s threshold (%.0f cells/mL)",
				a.CellsPerML, a.CellsPerML/t.cells*100, t.label, t.cells)
			return cmp
		}
	}
	cmp.Proximity = fmt.Sprintf("%.0f cells/mL - exceeds all WHO thresholds", a.CellsPerML)
	return cmp
}
