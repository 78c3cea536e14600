// Package store holds the live trip state and writes it through to a record
// store, coalescing bursts of edits into single saves.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"tripsplit/internal/core"
	"tripsplit/internal/worker"
)

// RecordStore is the persistence the store writes through. Implementations
// live in internal/storage.
type RecordStore interface {
	SaveRecord(ctx context.Context, key string, payload []byte) error
	LoadRecord(ctx context.Context, key string) ([]byte, bool, error)
}

// recordKey is the single record the whole trip state lives under.
const recordKey = "trip"

// DefaultDebounce is the quiet period between the last edit and the write.
const DefaultDebounce = 500 * time.Millisecond

const saveTimeout = 5 * time.Second

// Config wires a Store. Zero fields fall back to production defaults, so
// tests can swap in deterministic ids, randomness, and timing.
type Config struct {
	Records  RecordStore
	Debounce time.Duration
	NewID    func() string
	RandInt  func(int) int
	Logger   *slog.Logger
}

// Store is the single mutable trip state. All mutation methods coerce their
// input, keep the state normalized, and schedule a debounced persist; readers
// get deep-copied snapshots.
type Store struct {
	mu   sync.Mutex
	trip core.Trip

	records RecordStore
	saver   *worker.Debouncer
	saveMu  sync.Mutex

	newID   func() string
	randInt func(int) int
	logger  *slog.Logger
}

// New builds a store and loads the persisted trip. A missing record starts
// fresh; a malformed one is discarded with a warning and the default state
// takes its place.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Records == nil {
		return nil, errors.New("store: record store is required")
	}

	s := &Store{
		records: cfg.Records,
		newID:   cfg.NewID,
		randInt: cfg.RandInt,
		logger:  cfg.Logger,
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.randInt == nil {
		s.randInt = rand.Intn
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	s.saver = worker.NewDebouncer(debounce, s.persist)

	trip, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.trip = trip

	return s, nil
}

func (s *Store) load(ctx context.Context) (core.Trip, error) {
	payload, found, err := s.records.LoadRecord(ctx, recordKey)
	if err != nil {
		return core.Trip{}, fmt.Errorf("load trip record: %w", err)
	}
	if !found {
		s.logger.InfoContext(ctx, "No stored trip found, starting fresh")
		return core.DefaultTrip(), nil
	}

	trip, err := core.RestoreTrip(payload, s.newID)
	if err != nil {
		s.logger.WarnContext(ctx, "Discarding malformed trip record", "error", err)
		return core.DefaultTrip(), nil
	}

	s.logger.InfoContext(ctx, "Trip state loaded",
		"trip_name", trip.TripName,
		"expenses", len(trip.Expenses))
	return trip, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() core.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trip.Clone()
}

// Totals computes the derived overview for the current state.
func (s *Store) Totals() core.Totals {
	return core.ComputeTotals(s.Snapshot())
}

// mutate runs fn under the state lock, re-normalizes, and schedules a
// debounced persist.
func (s *Store) mutate(fn func(t *core.Trip)) {
	s.mutateIf(func(t *core.Trip) bool {
		fn(t)
		return true
	})
}

// mutateIf is mutate for operations that can miss (unknown ids): fn reports
// whether it changed anything, and only actual changes schedule a write.
func (s *Store) mutateIf(fn func(t *core.Trip) bool) bool {
	s.mu.Lock()
	changed := fn(&s.trip)
	if changed {
		s.trip.Normalize()
	}
	s.mu.Unlock()

	if changed {
		s.saver.Trigger()
	}
	return changed
}

// persist is the debounce callback. Failures are logged, not surfaced; there
// is no caller left to report them to once the quiet period has passed.
func (s *Store) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.save(ctx); err != nil {
		s.logger.Error("Persisting trip state failed", "error", err)
	}
}

// save serializes a snapshot and writes it through. saveMu keeps concurrent
// saves (a firing debounce racing an explicit flush) in submission order.
func (s *Store) save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	payload, err := core.EncodeTrip(s.trip, false)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode trip state: %w", err)
	}

	if err := s.records.SaveRecord(ctx, recordKey, payload); err != nil {
		return fmt.Errorf("save trip record: %w", err)
	}
	s.logger.DebugContext(ctx, "Trip state persisted", "bytes", len(payload))
	return nil
}

// Flush cancels any pending debounced write and persists immediately.
func (s *Store) Flush(ctx context.Context) error {
	s.saver.Cancel()
	return s.save(ctx)
}

// Close stops the debounced saver without flushing: an edit made inside the
// final quiet period is not written. Call Flush first when that matters.
func (s *Store) Close() error {
	s.saver.Stop()
	return nil
}

// Restore replaces the whole state with an uploaded backup document. A
// document that does not decode is rejected with ErrMalformedImport and the
// current state stays untouched.
func (s *Store) Restore(data []byte) error {
	trip, err := core.RestoreTrip(data, s.newID)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrMalformedImport, err)
	}
	s.Replace(trip)
	return nil
}

// Replace swaps in a whole new state and persists it through the normal
// debounced pipeline.
func (s *Store) Replace(trip core.Trip) {
	s.mutate(func(t *core.Trip) {
		*t = trip.Clone()
	})
}
