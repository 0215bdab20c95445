package main

import (
	"math"

	"github.com/google/uuid"
)

// minQuantity is both the floor and the step for entry quantities.
const minQuantity = 0.5

// mealLedger holds the food entries of the day being edited, in insertion order.
type mealLedger struct {
	entries []FoodEntry
}

func newMealLedger(entries []FoodEntry) *mealLedger {
	l := &mealLedger{}
	l.setEntries(entries)
	return l
}

// setEntries copies entries into the ledger, snapping each quantity onto the
// 0.5 grid at or above minQuantity. Persisted slots may have been edited by hand.
func (l *mealLedger) setEntries(entries []FoodEntry) {
	l.entries = make([]FoodEntry, len(entries))
	for i, e := range entries {
		e.Quantity = max(minQuantity, math.Round(e.Quantity/minQuantity)*minQuantity)
		l.entries[i] = e
	}
}

// validStep reports whether delta moves a quantity along the 0.5 grid.
func validStep(delta float64) bool {
	return math.Mod(delta, minQuantity) == 0
}

// add appends a new entry for item with quantity 1 and returns it.
func (l *mealLedger) add(item LibraryItem, category MealCategory, provenance Provenance) FoodEntry {
	entry := FoodEntry{
		ID:              uuid.New().String(),
		Name:            item.Name,
		CaloriesPerUnit: item.CaloriesPerUnit,
		Unit:            item.Unit,
		Quantity:        1,
		Category:        category,
		Provenance:      provenance,
	}
	l.entries = append(l.entries, entry)
	return entry
}

// adjustQuantity adds delta to the entry's quantity, clamped at minQuantity.
// Unknown ids are ignored: duplicate UI events must not fail.
// Returns the updated entry and whether the id was found.
func (l *mealLedger) adjustQuantity(id string, delta float64) (FoodEntry, bool) {
	for i := range l.entries {
		if l.entries[i].ID != id {
			continue
		}
		l.entries[i].Quantity = max(minQuantity, l.entries[i].Quantity+delta)
		return l.entries[i], true
	}
	return FoodEntry{}, false
}

// remove deletes the entry with id. No-op if absent; reports whether it removed anything.
func (l *mealLedger) remove(id string) bool {
	for i, e := range l.entries {
		if e.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// totalCalories sums calories over all entries regardless of category.
func (l *mealLedger) totalCalories() float64 {
	var total float64
	for _, e := range l.entries {
		total += e.calories()
	}
	return total
}

// byCategory groups entries for display, in breakfast/lunch/dinner order.
// Every category is present, with an empty (non-nil) slice when unused.
func (l *mealLedger) byCategory() []categoryGroup {
	groups := make([]categoryGroup, len(mealCategories))
	for i, c := range mealCategories {
		groups[i] = categoryGroup{Category: c, Entries: []FoodEntry{}}
	}
	for _, e := range l.entries {
		for i := range groups {
			if groups[i].Category == e.Category {
				groups[i].Entries = append(groups[i].Entries, e)
				groups[i].Calories += e.calories()
			}
		}
	}
	return groups
}

// snapshot returns an independent copy of the ledger partitioned by category,
// for freezing into a DailyRecord.
func (l *mealLedger) snapshot() MealsByCategory {
	m := MealsByCategory{
		Breakfast: []FoodEntry{},
		Lunch:     []FoodEntry{},
		Dinner:    []FoodEntry{},
	}
	for _, e := range l.entries {
		switch e.Category {
		case CategoryBreakfast:
			m.Breakfast = append(m.Breakfast, e)
		case CategoryLunch:
			m.Lunch = append(m.Lunch, e)
		case CategoryDinner:
			m.Dinner = append(m.Dinner, e)
		}
	}
	return m
}

// load replaces the ledger contents with the meals of a saved record.
func (l *mealLedger) load(m MealsByCategory) {
	l.setEntries(m.entries())
}

func (l *mealLedger) clear() {
	l.entries = nil
}

// list returns a copy of the entries in insertion order. Never nil.
func (l *mealLedger) list() []FoodEntry {
	return append([]FoodEntry{}, l.entries...)
}
