package main

import "math"

// kcalPerKG is the energy equivalent of one kilogram of body mass. The model
// is linear on purpose: no adaptive-metabolism term.
const kcalPerKG = 7700.0

// defaultProjectionDays is the horizon used when the caller gives none.
const defaultProjectionDays = 7

// projection is the energy-balance forecast for the current day's intake.
type projection struct {
	Intake            float64  `json:"intake"`
	TDEE              int      `json:"tdee"`
	DailyBalance      float64  `json:"daily_balance"`
	Days              int      `json:"days"`
	WeightChangeKG    float64  `json:"weight_change_kg"`
	CurrentWeightKG   *float64 `json:"current_weight_kg"`
	ProjectedWeightKG *float64 `json:"projected_weight_kg"`
}

// dailyBalance is intake minus expenditure. Positive is a surplus.
func dailyBalance(intake float64, tdee int) float64 {
	return intake - float64(tdee)
}

// projectedWeightChangeKg converts a constant daily balance over days into kg.
func projectedWeightChangeKg(balance float64, days int) float64 {
	return balance * float64(days) / kcalPerKG
}

func projectedWeightKg(current, change float64) float64 {
	return current + change
}

// percentOfTarget returns intake as a percentage of tdee, or 0 when there is
// no target yet.
func percentOfTarget(intake float64, tdee int) float64 {
	if tdee <= 0 {
		return 0
	}
	return intake / float64(tdee) * 100
}

// project builds the forecast. Projected weight is only set when the profile
// has a weight.
func project(intake float64, p BiometricProfile, days int) projection {
	if days <= 0 {
		days = defaultProjectionDays
	}
	tdee := computeTDEE(p)
	balance := dailyBalance(intake, tdee)
	change := projectedWeightChangeKg(balance, days)
	out := projection{
		Intake:         intake,
		TDEE:           tdee,
		DailyBalance:   balance,
		Days:           days,
		WeightChangeKG: roundTo(change, 3),
	}
	if p.WeightKG > 0 {
		current := p.WeightKG
		projected := roundTo(projectedWeightKg(current, change), 2)
		out.CurrentWeightKG = &current
		out.ProjectedWeightKG = &projected
	}
	return out
}

// roundTo rounds v to the given number of decimal places for display.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
