package main

import (
	"context"
	"log"
	"math"
	"time"
)

// persistTimeout bounds each background slot write.
const persistTimeout = 5 * time.Second

// session owns the aggregates for the single active user. Handler serializes
// access with its mutex; session itself is not safe for concurrent use.
type session struct {
	profile BiometricProfile
	ledger  *mealLedger
	library *foodLibrary
	records *dailyRecordStore
	store   kvStore
}

// loadSession reads all four slots once. A slot that is missing or fails to
// decode falls back to its default and is logged, never fatal.
func loadSession(ctx context.Context, store kvStore) *session {
	profile, err := loadSlot(ctx, store, slotBiometricProfile, defaultProfile())
	if err != nil {
		log.Printf("[loadSession] profile: %v (using default)", err)
	}
	entries, err := loadSlot[[]FoodEntry](ctx, store, slotMealLedger, nil)
	if err != nil {
		log.Printf("[loadSession] meal ledger: %v (starting empty)", err)
	}
	items, err := loadSlot[[]LibraryItem](ctx, store, slotFoodLibrary, nil)
	if err != nil {
		log.Printf("[loadSession] food library: %v (starting empty)", err)
	}
	records, err := loadSlot[[]DailyRecord](ctx, store, slotDailyRecords, nil)
	if err != nil {
		log.Printf("[loadSession] daily records: %v (starting empty)", err)
	}
	return &session{
		profile: profile,
		ledger:  newMealLedger(entries),
		library: newFoodLibrary(items),
		records: newDailyRecordStore(records),
		store:   store,
	}
}

/* ─── Persistence ─────────────────────────────────────────────────────── */

// Each persist* call rewrites one slot after the in-memory transition. A failed
// write is logged and otherwise ignored: in-memory state stays authoritative
// for the rest of the session.

func (s *session) persistProfile() { s.persist(slotBiometricProfile, s.profile) }
func (s *session) persistLedger() { s.persist(slotMealLedger, s.ledger.list()) }
func (s *session) persistLibrary() { s.persist(slotFoodLibrary, s.library.list()) }
func (s *session) persistRecords() { s.persist(slotDailyRecords, s.records.all()) }

func (s *session) persist(key string, v any) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := saveSlot(ctx, s.store, key, v); err != nil {
		log.Printf("[persist] %v", err)
	}
}

/* ─── Actions ─────────────────────────────────────────────────────────── */

// saveDay freezes the current ledger, profile weight and TDEE into the record
// for date, replacing any record already saved for that date.
func (s *session) saveDay(date string) DailyRecord {
	r := DailyRecord{
		Date:           date,
		CaloriesIntake: int(math.Round(s.ledger.totalCalories())),
		CaloriesTarget: computeTDEE(s.profile),
		Meals:          s.ledger.snapshot(),
	}
	if s.profile.WeightKG > 0 {
		w := s.profile.WeightKG
		r.WeightKG = &w
	}
	s.records.upsert(r)
	s.persistRecords()
	return r
}

// summary builds the ledger view with totals and the default projection.
func (s *session) summary() ledgerSummary {
	total := s.ledger.totalCalories()
	tdee := computeTDEE(s.profile)
	return ledgerSummary{
		Groups:          s.ledger.byCategory(),
		TotalCalories:   total,
		CaloriesTarget:  tdee,
		PercentOfTarget: roundTo(percentOfTarget(total, tdee), 1),
		Projection:      project(total, s.profile, defaultProjectionDays),
	}
}
