package domain

import (
	"fmt"
	"time"
)

// Land-use nutrient export coefficients (Beaulac & Reckhow 1982).
const (
	exportCropland  = 0.80
	exportUrban     = 0.50
	exportGrassland = 0.20
	exportForest    = 0.10
	exportWetland   = 0.05
)

// precipSummary condenses the rainfall bookkeeping the delivery rules need.
type precipSummary struct {
	Rainfall48h        float64
	Rainfall7d         float64
	DaysSinceRain      int // over the full trailing window
	DryDaysBeforeEvent int // dry spell preceding the most recent two days
}

// deliveryRule is one entry in the ordered rainfall-delivery chain.
// First match wins; the order is part of the model and unit-tested per rule.
type deliveryRule struct {
	name  string
	match func(p precipSummary) bool
	value float64
}

var deliveryRules = []deliveryRule{
	{
		name:  "first flush after dry spell",
		match: func(p precipSummary) bool { return p.DryDaysBeforeEvent > 5 && p.Rainfall48h > 10 },
		value: 0.90,
	},
	{
		name:  "heavy runoff",
		match: func(p precipSummary) bool { return p.Rainfall48h > 20 },
		value: 0.70,
	},
	{
		name:  "sustained loading",
		match: func(p precipSummary) bool { return p.Rainfall7d > 30 },
		value: 0.50,
	},
	{
		// Prolonged dry spells build a surface nutrient reservoir; the
		// load is partially bioavailable through shoreline seepage even
		// before the flushing rain arrives.
		name:  "dry-spell accumulation",
		match: func(p precipSummary) bool { return p.DaysSinceRain >= 5 && p.Rainfall48h < 5 },
		value: 0.55,
	},
	{
		name:  "moderate delivery",
		match: func(p precipSummary) bool { return p.Rainfall48h > 5 },
		value: 0.30,
	},
	{
		name:  "baseline",
		match: func(p precipSummary) bool { return true },
		value: 0.15,
	},
}

// scoreNutrient estimates nutrient loading as a proxy: land-cover export
// coefficient × rainfall delivery × seasonal weight. It cannot measure N/P
// directly; the output is relative, not a concentration.
func scoreNutrient(obs EnvironmentalObservation) ComponentScore {
	lc := obs.LandCover
	landCoeff := (lc.AgriculturalPct*exportCropland +
		lc.UrbanPct*exportUrban +
		lc.GrasslandPct*exportGrassland +
		lc.ForestPct*exportForest +
		lc.WetlandPct*exportWetland) / 100.0

	precip := precipSummary{
		Rainfall48h:        obs.Rainfall48h(),
		Rainfall7d:         obs.Rainfall7d(),
		DaysSinceRain:      obs.DaysSinceSignificantRain(),
		DryDaysBeforeEvent: obs.DryDaysBeforeEvent(),
	}
	rule := matchDeliveryRule(precip)

	weight, label := seasonalWeight(obs.Date.Month(), obs.SouthernHemisphere())

	score := clampScore(landCoeff * rule.value * weight * 100)

	factors := []Factor{
		{Label: fmt.Sprintf("land export coefficient %.3f", landCoeff), Contribution: landCoeff * 100},
		{Label: fmt.Sprintf("delivery: %s (%.2f)", rule.name, rule.value)},
		{Label: fmt.Sprintf("season: %s (weight %.1f)", label, weight)},
	}
	if lc.AgriculturalPct > 40 {
		factors = append(factors,
			Factor{Label: fmt.Sprintf("%.0f%% agricultural land - high fertilizer runoff potential", lc.AgriculturalPct)})
	}
	if lc.UrbanPct > 40 {
		factors = append(factors,
			Factor{Label: fmt.Sprintf("%.0f%% urban land - sewage and lawn fertilizer runoff", lc.UrbanPct)})
	}
	if rule.value >= 0.90 {
		factors = append(factors,
			Factor{Label: "first flush delivering accumulated nutrients to the water body"})
	}

	return ComponentScore{Value: score, Factors: factors}
}

func matchDeliveryRule(p precipSummary) deliveryRule {
	for _, r := range deliveryRules {
		if r.match(p) {
			return r
		}
	}
	return deliveryRules[len(deliveryRules)-1]
}

// seasonalWeight returns the agricultural-activity weight for a month.
// Southern-hemisphere sites shift the bands by six months.
func seasonalWeight(m time.Month, southern bool) (float64, string) {
	month := int(m)
	if southern {
		month = (month+6-1)%12 + 1
	}
	switch {
	case month >= 4 && month <= 9:
		return 1.0, "growing season"
	case month == 10 || month == 11:
		return 0.8, "post-harvest"
	default:
		return 0.3, "winter"
	}
}
