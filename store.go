package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Persistence slot keys. Each slot holds one JSON document and is rewritten
// in full whenever its owning aggregate changes.
const (
	slotFoodLibrary      = "food_library"
	slotDailyRecords     = "daily_records"
	slotBiometricProfile = "biometric_profile"
	slotMealLedger       = "meal_ledger"
)

// kvStore is the persistence collaborator. Get returns nil, nil for a slot
// that has never been written.
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

/* ─── Slot helpers ───────────────────────────────────────────────────── */

// loadSlot reads and decodes a slot into T. A missing slot returns def.
func loadSlot[T any](ctx context.Context, store kvStore, key string, def T) (T, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return def, fmt.Errorf("get %s: %w", key, err)
	}
	if raw == nil {
		return def, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

// saveSlot encodes v and writes it to the slot.
func saveSlot[T any](ctx context.Context, store kvStore, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

/* ─── In-memory store ────────────────────────────────────────────────── */

// memoryStore keeps slots in a map. Used when DB_URL is unset and in tests.
type memoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{slots: make(map[string][]byte)}
}

func (s *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (s *memoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = append([]byte(nil), value...)
	return nil
}

/* ─── PostgreSQL store ───────────────────────────────────────────────── */

// pgStore keeps slots in the kv_slots table (see db/).
type pgStore struct {
	db *pgxpool.Pool
}

func (s *pgStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx,
		"SELECT value FROM kv_slots WHERE key = @key",
		pgx.NamedArgs{"key": key}).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set upserts the slot; the primary key on key means writing the same slot
// replaces it in place.
func (s *pgStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO kv_slots (key, value, updated_at)
		 VALUES (@key, @value::jsonb, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		pgx.NamedArgs{"key": key, "value": string(value)})
	return err
}
