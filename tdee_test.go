package main

import (
	"math"
	"testing"
)

// makeProfile constructs a fully-populated profile for BMR/TDEE tests.
// Individual tests zero out fields to exercise the missing-field guards.
func makeProfile(gender Gender, age int, weightKG, heightCM, factor float64) BiometricProfile {
	return BiometricProfile{
		Age:            age,
		Gender:         gender,
		WeightKG:       weightKG,
		HeightCM:       heightCM,
		ActivityFactor: factor,
		Goal:           GoalMaintain,
	}
}

/* ─── Missing-field guard tests ──────────────────────────────────────── */

// TestComputeBMR_MissingFields verifies that BMR and TDEE fall back to 0 when
// any required field is zero or negative.
func TestComputeBMR_MissingFields(t *testing.T) {
	cases := []struct {
		name  string
		mutFn func(p *BiometricProfile)
	}{
		{"zero age", func(p *BiometricProfile) { p.Age = 0 }},
		{"negative age", func(p *BiometricProfile) { p.Age = -3 }},
		{"zero weight", func(p *BiometricProfile) { p.WeightKG = 0 }},
		{"negative weight", func(p *BiometricProfile) { p.WeightKG = -70 }},
		{"zero height", func(p *BiometricProfile) { p.HeightCM = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := makeProfile(GenderMale, 30, 70, 175, 1.375)
			tc.mutFn(&p)
			if bmr := computeBMR(p); bmr != 0 {
				t.Errorf("expected BMR 0 with %s, got %f", tc.name, bmr)
			}
			if tdee := computeTDEE(p); tdee != 0 {
				t.Errorf("expected TDEE 0 with %s, got %d", tc.name, tdee)
			}
		})
	}
}

// TestComputeTDEE_ZeroFactor verifies that a missing activity factor yields 0
// rather than a negative or zero-scaled target.
func TestComputeTDEE_ZeroFactor(t *testing.T) {
	p := makeProfile(GenderMale, 30, 70, 175, 0)
	if tdee := computeTDEE(p); tdee != 0 {
		t.Errorf("expected TDEE 0 with no activity factor, got %d", tdee)
	}
}

/* ─── BMR accuracy tests ─────────────────────────────────────────────── */

// TestComputeBMR_Male checks the worked example:
// 10*70 + 6.25*175 - 5*30 + 5 = 1648.75, TDEE at 1.375 = round(2267.03) = 2267.
func TestComputeBMR_Male(t *testing.T) {
	p := makeProfile(GenderMale, 30, 70, 175, 1.375)
	if bmr := computeBMR(p); bmr != 1648.75 {
		t.Errorf("male BMR = %f, want 1648.75", bmr)
	}
	if tdee := computeTDEE(p); tdee != 2267 {
		t.Errorf("male TDEE = %d, want 2267", tdee)
	}
}

// TestComputeBMR_Female uses the same inputs with the -161 offset: 1482.75.
func TestComputeBMR_Female(t *testing.T) {
	p := makeProfile(GenderFemale, 30, 70, 175, 1.2)
	if bmr := computeBMR(p); bmr != 1482.75 {
		t.Errorf("female BMR = %f, want 1482.75", bmr)
	}
	if tdee := computeTDEE(p); tdee != 1779 {
		t.Errorf("female TDEE = %d, want 1779", tdee)
	}
}

// TestComputeTDEE_MatchesRoundedBMR checks TDEE == round(BMR*factor) for every
// standard level plus a non-standard factor that must be accepted verbatim.
func TestComputeTDEE_MatchesRoundedBMR(t *testing.T) {
	factors := []float64{1.2, 1.375, 1.55, 1.725, 1.9, 1.6}
	profiles := []BiometricProfile{
		makeProfile(GenderMale, 30, 70, 175, 0),
		makeProfile(GenderFemale, 45, 62.5, 160, 0),
		makeProfile(GenderMale, 19, 101.3, 192.4, 0),
	}
	for _, base := range profiles {
		for _, f := range factors {
			p := base
			p.ActivityFactor = f
			want := int(math.Round(computeBMR(p) * f))
			if got := computeTDEE(p); got != want {
				t.Errorf("TDEE(%+v) = %d, want %d", p, got, want)
			}
		}
	}
}

/* ─── BMI tests ──────────────────────────────────────────────────────── */

func TestComputeBMI(t *testing.T) {
	p := makeProfile(GenderMale, 30, 70, 175, 1.2)
	bmi := computeBMI(p)
	if math.Abs(bmi-22.857) > 0.001 {
		t.Errorf("BMI = %f, want ~22.857", bmi)
	}
	if cat := bmiCategory(bmi); cat != "normal" {
		t.Errorf("category = %q, want normal", cat)
	}
	if computeBMI(BiometricProfile{WeightKG: 70}) != 0 {
		t.Error("expected BMI 0 without height")
	}
}

func TestDescribeProfile(t *testing.T) {
	resp := describeProfile(makeProfile(GenderMale, 30, 70, 175, 1.375))
	if resp.ComputedBMR != 1648.75 || resp.ComputedTDEE != 2267 {
		t.Errorf("computed = %f/%d, want 1648.75/2267", resp.ComputedBMR, resp.ComputedTDEE)
	}
	if resp.BMI != 22.9 {
		t.Errorf("BMI = %f, want 22.9", resp.BMI)
	}
}
