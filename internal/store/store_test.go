package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"tripsplit/internal/core"
)

// recordingStore counts writes and replays a seeded payload on load.
type recordingStore struct {
	mu    sync.Mutex
	saves [][]byte
	seed  []byte
}

func (r *recordingStore) SaveRecord(_ context.Context, _ string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, append([]byte(nil), payload...))
	return nil
}

func (r *recordingStore) LoadRecord(_ context.Context, _ string) ([]byte, bool, error) {
	if r.seed == nil {
		return nil, false, nil
	}
	return r.seed, true, nil
}

func (r *recordingStore) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

func (r *recordingStore) lastSave() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.saves) == 0 {
		return nil
	}
	return r.saves[len(r.saves)-1]
}

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newTestStore(t *testing.T, rec *recordingStore, debounce time.Duration) *Store {
	t.Helper()
	s, err := New(context.Background(), Config{
		Records:  rec,
		Debounce: debounce,
		NewID:    seqIDs("id"),
		RandInt:  func(int) int { return 0 },
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStartsFresh(t *testing.T) {
	s := newTestStore(t, &recordingStore{}, time.Minute)

	trip := s.Snapshot()
	if trip.Persons != 2 || trip.TripName != "" || len(trip.Expenses) != 0 {
		t.Errorf("fresh state = %+v, want defaults", trip)
	}
}

func TestNewLoadsStoredTrip(t *testing.T) {
	rec := &recordingStore{seed: []byte(`{"tripName":"Ticino","persons":4}`)}
	s := newTestStore(t, rec, time.Minute)

	trip := s.Snapshot()
	if trip.TripName != "Ticino" || trip.Persons != 4 {
		t.Errorf("loaded state = %+v", trip)
	}
	// Fields absent from the record keep their defaults.
	if trip.AccommodationNights != 1 {
		t.Errorf("AccommodationNights = %d, want default 1", trip.AccommodationNights)
	}
}

func TestNewDiscardsMalformedRecord(t *testing.T) {
	rec := &recordingStore{seed: []byte(`{"tripName": not json`)}
	s := newTestStore(t, rec, time.Minute)

	trip := s.Snapshot()
	if trip.TripName != "" || trip.Persons != 2 {
		t.Errorf("state after malformed record = %+v, want defaults", trip)
	}
}

func TestDebouncedPersistCoalesces(t *testing.T) {
	rec := &recordingStore{}
	s := newTestStore(t, rec, 30*time.Millisecond)

	s.SetTripName("T")
	s.SetTripName("Ti")
	s.SetTripName("Tic")
	s.SetPersonCount(4)
	s.SetBudgetPerPerson(50)

	time.Sleep(200 * time.Millisecond)

	if got := rec.saveCount(); got != 1 {
		t.Fatalf("writes = %d, want exactly 1 for one burst", got)
	}

	var saved core.Trip
	if err := json.Unmarshal(rec.lastSave(), &saved); err != nil {
		t.Fatalf("saved payload does not decode: %v", err)
	}
	if saved.TripName != "Tic" || saved.Persons != 4 || saved.BudgetPerPerson != 50 {
		t.Errorf("saved payload = %+v, want the final state of the burst", saved)
	}
}

func TestFlushWritesImmediately(t *testing.T) {
	rec := &recordingStore{}
	s := newTestStore(t, rec, time.Minute)

	s.SetTripName("Ticino")
	if got := rec.saveCount(); got != 0 {
		t.Fatalf("writes before flush = %d, want 0", got)
	}

	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := rec.saveCount(); got != 1 {
		t.Fatalf("writes after flush = %d, want 1", got)
	}

	// The cancelled debounce must not fire a second write later.
	time.Sleep(50 * time.Millisecond)
	if got := rec.saveCount(); got != 1 {
		t.Errorf("writes after waiting = %d, want still 1", got)
	}
}

func TestCloseDropsPendingWrite(t *testing.T) {
	rec := &recordingStore{}
	s := newTestStore(t, rec, 30*time.Millisecond)

	s.SetTripName("lost edit")
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	if got := rec.saveCount(); got != 0 {
		t.Errorf("writes after close = %d, want 0 (close does not flush)", got)
	}
}

func TestAddExpenseAssignsIDAndPlaceholder(t *testing.T) {
	s := newTestStore(t, &recordingStore{}, time.Minute)

	added := s.AddExpense(core.Expense{Price: -5})

	if added.ID == "" {
		t.Error("added expense has no id")
	}
	if added.Name == "" {
		t.Error("blank name did not get a placeholder")
	}
	if added.Price != 0 {
		t.Errorf("Price = %v, want 0 (negative coerced)", added.Price)
	}

	stored := s.Snapshot().Expenses
	if len(stored) != 1 || stored[0].ID != added.ID || stored[0].Name != added.Name {
		t.Errorf("stored = %+v, returned = %+v", stored, added)
	}

	named := s.AddExpense(core.Expense{Name: "Dinner", Price: 100})
	if named.Name != "Dinner" {
		t.Errorf("explicit name replaced with %q", named.Name)
	}
	if named.ID == added.ID {
		t.Error("two expenses share an id")
	}
}

func TestUpdateExpense(t *testing.T) {
	s := newTestStore(t, &recordingStore{}, time.Minute)
	e := s.AddExpense(core.Expense{Name: "Dinner", Price: 100})

	name := "Fancy dinner"
	perPerson := true
	if !s.UpdateExpense(e.ID, core.ExpensePatch{Name: &name, IsPerPerson: &perPerson}) {
		t.Fatal("UpdateExpense() = false for existing id")
	}

	got := s.Snapshot().Expenses[0]
	if got.Name != "Fancy dinner" || !got.IsPerPerson || got.Price != 100 {
		t.Errorf("after patch = %+v", got)
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	rec := &recordingStore{}
	s := newTestStore(t, rec, 20*time.Millisecond)

	name := "x"
	if s.UpdateExpense("ghost", core.ExpensePatch{Name: &name}) {
		t.Error("UpdateExpense() = true for unknown id")
	}
	if s.RemoveExpense("ghost") {
		t.Error("RemoveExpense() = true for unknown id")
	}
	if s.UpdateTripInfoField("ghost", core.InfoFieldPatch{Value: &name}) {
		t.Error("UpdateTripInfoField() = true for unknown id")
	}
	if _, ok := s.AddExpenseInfoField("ghost", core.InfoField{Label: "L"}); ok {
		t.Error("AddExpenseInfoField() = true for unknown expense")
	}

	// Misses change nothing, so nothing gets scheduled either.
	time.Sleep(100 * time.Millisecond)
	if got := rec.saveCount(); got != 0 {
		t.Errorf("writes after no-ops = %d, want 0", got)
	}
}

func TestRemoveExpense(t *testing.T) {
	s := newTestStore(t, &recordingStore{}, time.Minute)
	first := s.AddExpense(core.Expense{Name: "A"})
	second := s.AddExpense(core.Expense{Name: "B"})

	if !s.RemoveExpense(first.ID) {
		t.Fatal("RemoveExpense() = false for existing id")
	}

	left := s.Snapshot().Expenses
	if len(left) != 1 || left[0].ID != second.ID {
		t.Errorf("remaining = %+v, want only %q", left, second.ID)
	}
}

func TestInfoFieldLifecycle(t *testing.T) {
	s := newTestStore(t, &recordingStore{}, time.Minute)

	f := s.AddTripInfoField(core.InfoField{Label: "Region", Value: "Ticino"})
	if f.ID == "" {
		t.Fatal("trip info field has no id")
	}

	value := "Wallis"
	if !s.UpdateTripInfoField(f.ID, core.InfoFieldPatch{Value: &value}) {
		t.Fatal("UpdateTripInfoField() = false")
	}
	if got := s.Snapshot().BasicInfo[0].Value; got != "Wallis" {
		t.Errorf("Value = %q, want Wallis", got)
	}

	if !s.RemoveTripInfoField(f.ID) {
		t.Fatal("RemoveTripInfoField() = false")
	}
	if got := len(s.Snapshot().BasicInfo); got != 0 {
		t.Errorf("BasicInfo length = %d after removal", got)
	}

	e := s.AddExpense(core.Expense{Name: "Hotel"})
	ef, ok := s.AddExpenseInfoField(e.ID, core.InfoField{Label: "Link", Value: "https://hotel.example"})
	if !ok || ef.ID == "" {
		t.Fatalf("AddExpenseInfoField() = %+v, %v", ef, ok)
	}

	label := "Booking"
	if !s.UpdateExpenseInfoField(e.ID, ef.ID, core.InfoFieldPatch{Label: &label}) {
		t.Fatal("UpdateExpenseInfoField() = false")
	}
	if got := s.Snapshot().Expenses[0].InfoFields[0].Label; got != "Booking" {
		t.Errorf("Label = %q, want Booking", got)
	}

	if !s.RemoveExpenseInfoField(e.ID, ef.ID) {
		t.Fatal("RemoveExpenseInfoField() = false")
	}
	if got := len(s.Snapshot().Expenses[0].InfoFields); got != 0 {
		t.Errorf("InfoFields length = %d after removal", got)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := newTestStore(t, &recordingStore{}, time.Minute)
	s.AddExpense(core.Expense{Name: "Dinner", Price: 100})

	snap := s.Snapshot()
	snap.Expenses[0].Name = "tampered"
	snap.TripName = "tampered"

	if got := s.Snapshot(); got.Expenses[0].Name != "Dinner" || got.TripName != "" {
		t.Errorf("mutating a snapshot leaked into the store: %+v", got)
	}
}

func TestRestore(t *testing.T) {
	s := newTestStore(t, &recordingStore{}, time.Minute)
	s.SetTripName("before")

	if err := s.Restore([]byte(`not json`)); err == nil {
		t.Fatal("Restore() accepted malformed input")
	} else if !errors.Is(err, core.ErrMalformedImport) {
		t.Errorf("error = %v, want ErrMalformedImport", err)
	}
	if got := s.Snapshot().TripName; got != "before" {
		t.Errorf("state changed by failed import: %q", got)
	}

	payload := []byte(`{
		"tripName": "Imported",
		"persons": 3,
		"expenses": [{"id": "e1", "name": "Hotel", "price": 200, "link": "https://hotel.example"}]
	}`)
	if err := s.Restore(payload); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	trip := s.Snapshot()
	if trip.TripName != "Imported" || trip.Persons != 3 {
		t.Errorf("state after import = %+v", trip)
	}
	fields := trip.Expenses[0].InfoFields
	if len(fields) != 1 || fields[0].Label != "Link" {
		t.Errorf("legacy link not migrated on import: %+v", fields)
	}
}

func TestTotalsFromStore(t *testing.T) {
	s := newTestStore(t, &recordingStore{}, time.Minute)
	s.SetPersonCount(4)
	s.SetBudgetPerPerson(50)
	s.AddExpense(core.Expense{Name: "Tickets", Price: 40, IsPerPerson: true})
	s.AddExpense(core.Expense{Name: "Dinner", Price: 100})

	got := s.Totals()
	if got.ExpensesCost != 260 || got.CostPerPerson != 65 || got.TotalBudget != 200 || got.Remaining != -60 {
		t.Errorf("Totals() = %+v", got)
	}
	if got.BudgetStatus != core.BudgetOver {
		t.Errorf("BudgetStatus = %v, want over", got.BudgetStatus)
	}
}
