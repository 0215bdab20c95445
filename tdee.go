package main

import "math"

// activityMultipliers maps activity level names to their TDEE multiplier.
// These are the five standard factors; PATCH /api/profile also accepts any
// other positive factor verbatim.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// hasBodyStats reports whether the fields required by Mifflin-St Jeor are all
// present and positive.
func hasBodyStats(p BiometricProfile) bool {
	return p.Age > 0 && p.WeightKG > 0 && p.HeightCM > 0
}

// computeBMR returns the Mifflin-St Jeor basal metabolic rate in kcal/day.
// Returns 0 when age, weight or height is missing, so callers never see NaN.
func computeBMR(p BiometricProfile) float64 {
	if !hasBodyStats(p) {
		return 0
	}
	bmr := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Gender == GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr
}

// computeTDEE scales BMR by the activity factor and rounds to whole kcal.
// Returns 0 whenever BMR is 0 or the factor is not positive.
func computeTDEE(p BiometricProfile) int {
	bmr := computeBMR(p)
	if bmr == 0 || p.ActivityFactor <= 0 {
		return 0
	}
	// math.Round rather than truncation so targets aren't systematically low.
	return int(math.Round(bmr * p.ActivityFactor))
}

// computeBMI returns body-mass index (kg/m²), or 0 without height and weight.
func computeBMI(p BiometricProfile) float64 {
	if p.WeightKG <= 0 || p.HeightCM <= 0 {
		return 0
	}
	h := p.HeightCM / 100
	return p.WeightKG / (h * h)
}

// bmiCategory labels a BMI using the WHO bands. Empty for 0.
func bmiCategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// describeProfile attaches the computed fields to a profile for responses.
func describeProfile(p BiometricProfile) profileResponse {
	bmi := computeBMI(p)
	return profileResponse{
		BiometricProfile: p,
		ComputedBMR:      computeBMR(p),
		ComputedTDEE:     computeTDEE(p),
		BMI:              math.Round(bmi*10) / 10,
		BMICategory:      bmiCategory(bmi),
	}
}
