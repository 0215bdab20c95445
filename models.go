package main

import "time"

// dateLayout is the canonical YYYY-MM-DD date key. Zero-padded, so lexical
// order equals chronological order.
const dateLayout = "2006-01-02"

// validDate reports whether s is a well-formed YYYY-MM-DD date key.
func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// today returns the current local date key.
func today() string {
	return time.Now().Format(dateLayout)
}

/* ─── Enums ──────────────────────────────────────────────────────────── */

// Gender selects the Mifflin-St Jeor offset.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Goal is informational only; it never changes any computation.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// MealCategory partitions the ledger and saved records.
type MealCategory string

const (
	CategoryBreakfast MealCategory = "breakfast"
	CategoryLunch     MealCategory = "lunch"
	CategoryDinner    MealCategory = "dinner"
)

// mealCategories is the display order of categories and the set of valid values.
var mealCategories = []MealCategory{CategoryBreakfast, CategoryLunch, CategoryDinner}

func validCategory(c MealCategory) bool {
	for _, v := range mealCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Provenance records where an entry's calorie value came from.
type Provenance string

const (
	ProvenanceUser Provenance = "user"
	ProvenanceAI   Provenance = "ai"
)

/* ─── Domain structs ─────────────────────────────────────────────────── */

// BiometricProfile holds the user's body stats. Zero values mean "not set";
// BMR and TDEE are 0 until age, weight and height are all positive.
type BiometricProfile struct {
	Age            int     `json:"age"`
	Gender         Gender  `json:"gender"`
	WeightKG       float64 `json:"weight_kg"`
	HeightCM       float64 `json:"height_cm"`
	ActivityFactor float64 `json:"activity_factor"`
	Goal           Goal    `json:"goal"`
}

// defaultProfile is used when no profile slot has been saved yet.
func defaultProfile() BiometricProfile {
	return BiometricProfile{
		Gender:         GenderMale,
		ActivityFactor: activityMultipliers["sedentary"],
		Goal:           GoalMaintain,
	}
}

// FoodEntry is one line of the day being edited.
type FoodEntry struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	CaloriesPerUnit float64      `json:"calories_per_unit"`
	Unit            string       `json:"unit"`
	Quantity        float64      `json:"quantity"`
	Category        MealCategory `json:"category"`
	Provenance      Provenance   `json:"provenance"`
}

// calories is the entry's contribution to the day's intake.
func (e FoodEntry) calories() float64 {
	return e.CaloriesPerUnit * e.Quantity
}

// LibraryItem is a resolved food, keyed by Name.
type LibraryItem struct {
	Name            string  `json:"name"`
	CaloriesPerUnit float64 `json:"calories_per_unit"`
	Unit            string  `json:"unit"`
}

// MealsByCategory is the frozen copy of a ledger inside a DailyRecord.
type MealsByCategory struct {
	Breakfast []FoodEntry `json:"breakfast"`
	Lunch     []FoodEntry `json:"lunch"`
	Dinner    []FoodEntry `json:"dinner"`
}

// entries flattens the meals back into ledger order (breakfast, lunch, dinner).
func (m MealsByCategory) entries() []FoodEntry {
	out := make([]FoodEntry, 0, len(m.Breakfast)+len(m.Lunch)+len(m.Dinner))
	out = append(out, m.Breakfast...)
	out = append(out, m.Lunch...)
	return append(out, m.Dinner...)
}

// DailyRecord is one finalized day. Date is unique within the store.
// WeightKG is nil when no weight was known at save time.
type DailyRecord struct {
	Date           string          `json:"date"`
	CaloriesIntake int             `json:"calories_intake"`
	CaloriesTarget int             `json:"calories_target"`
	WeightKG       *float64        `json:"weight_kg"`
	Meals          MealsByCategory `json:"meals"`
}

/* ─── Request / response shapes ──────────────────────────────────────── */

// profileResponse is the GET/PATCH /api/profile response: the stored profile
// plus the values derived from it.
type profileResponse struct {
	BiometricProfile
	ComputedBMR  float64 `json:"computed_bmr"`
	ComputedTDEE int     `json:"computed_tdee"`
	BMI          float64 `json:"bmi"`
	BMICategory  string  `json:"bmi_category,omitempty"`
}

// patchProfileRequest is the body for PATCH /api/profile. Only non-nil fields
// are applied. ActivityLevel, when set, takes precedence over ActivityFactor.
type patchProfileRequest struct {
	Age            *int     `json:"age"`
	Gender         *string  `json:"gender"`
	WeightKG       *float64 `json:"weight_kg"`
	HeightCM       *float64 `json:"height_cm"`
	ActivityFactor *float64 `json:"activity_factor"`
	ActivityLevel  *string  `json:"activity_level"`
	Goal           *string  `json:"goal"`
}

// categoryGroup is one category's entries and subtotal in the ledger view.
type categoryGroup struct {
	Category MealCategory `json:"category"`
	Entries  []FoodEntry  `json:"entries"`
	Calories float64      `json:"calories"`
}

// ledgerSummary is the GET /api/meals response.
type ledgerSummary struct {
	Groups          []categoryGroup `json:"groups"`
	TotalCalories   float64         `json:"total_calories"`
	CaloriesTarget  int             `json:"calories_target"`
	PercentOfTarget float64         `json:"percent_of_target"`
	Projection      projection      `json:"projection"`
}

// addMealRequest is the body for POST /api/meals. Either LibraryName refers to
// an existing library item, or Item is given inline (manual entry).
type addMealRequest struct {
	Category    string       `json:"category"`
	LibraryName string       `json:"library_name"`
	Item        *LibraryItem `json:"item"`
	Provenance  string       `json:"provenance"`
}

// adjustQuantityRequest is the body for PATCH /api/meals/:id.
type adjustQuantityRequest struct {
	Delta float64 `json:"delta"`
}

// saveDayRequest is the body for POST /api/daily-records. Date defaults to today.
type saveDayRequest struct {
	Date string `json:"date"`
}

// lookupRequest is the body for POST /api/library/lookup.
type lookupRequest struct {
	Name string `json:"name"`
}
