package store

import (
	"strings"

	"tripsplit/internal/core"
)

// SetTripName updates the trip's display name.
func (s *Store) SetTripName(name string) {
	s.mutate(func(t *core.Trip) { t.TripName = name })
}

// SetPersonCount updates the number of travellers; values below 1 coerce to 1.
func (s *Store) SetPersonCount(n int) {
	s.mutate(func(t *core.Trip) { t.Persons = n })
}

// SetBudgetPerPerson updates the per-person budget; negatives coerce to 0.
func (s *Store) SetBudgetPerPerson(v float64) {
	s.mutate(func(t *core.Trip) { t.BudgetPerPerson = v })
}

// SetAccommodationEnabled toggles the accommodation block.
func (s *Store) SetAccommodationEnabled(on bool) {
	s.mutate(func(t *core.Trip) { t.HasAccommodation = on })
}

// SetAccommodationLink updates the accommodation link.
func (s *Store) SetAccommodationLink(link string) {
	s.mutate(func(t *core.Trip) { t.AccommodationLink = link })
}

// SetAccommodationPrice updates the accommodation price; negatives coerce to 0.
func (s *Store) SetAccommodationPrice(v float64) {
	s.mutate(func(t *core.Trip) { t.AccommodationPrice = v })
}

// SetAccommodationNights updates the night count; values below 1 coerce to 1.
func (s *Store) SetAccommodationNights(n int) {
	s.mutate(func(t *core.Trip) { t.AccommodationNights = n })
}

// AddExpense appends an expense with a fresh id. A blank name gets a random
// placeholder from the fixed list. Returns the expense as stored.
func (s *Store) AddExpense(e core.Expense) core.Expense {
	s.mutate(func(t *core.Trip) {
		e.ID = s.newID()
		if strings.TrimSpace(e.Name) == "" {
			e.Name = core.PlaceholderName(s.randInt)
		}
		e.Price = core.ClampAmount(e.Price)
		if e.InfoFields == nil {
			e.InfoFields = []core.InfoField{}
		}
		e.LegacyLink, e.LegacyNotes = "", ""
		t.Expenses = append(t.Expenses, e)
	})
	return e
}

// UpdateExpense applies the set fields of patch to the matching expense.
// Unknown ids are a no-op returning false.
func (s *Store) UpdateExpense(id string, patch core.ExpensePatch) bool {
	return s.mutateIf(func(t *core.Trip) bool {
		for i := range t.Expenses {
			if t.Expenses[i].ID == id {
				patch.Apply(&t.Expenses[i])
				return true
			}
		}
		return false
	})
}

// RemoveExpense deletes the matching expense. Unknown ids are a no-op
// returning false.
func (s *Store) RemoveExpense(id string) bool {
	return s.mutateIf(func(t *core.Trip) bool {
		for i := range t.Expenses {
			if t.Expenses[i].ID == id {
				t.Expenses = append(t.Expenses[:i], t.Expenses[i+1:]...)
				return true
			}
		}
		return false
	})
}

// AddTripInfoField appends a trip-level info field with a fresh id and
// returns it as stored.
func (s *Store) AddTripInfoField(f core.InfoField) core.InfoField {
	s.mutate(func(t *core.Trip) {
		f.ID = s.newID()
		t.BasicInfo = append(t.BasicInfo, f)
	})
	return f
}

// UpdateTripInfoField applies the set fields of patch to the matching
// trip-level info field. Unknown ids are a no-op returning false.
func (s *Store) UpdateTripInfoField(id string, patch core.InfoFieldPatch) bool {
	return s.mutateIf(func(t *core.Trip) bool {
		for i := range t.BasicInfo {
			if t.BasicInfo[i].ID == id {
				patch.Apply(&t.BasicInfo[i])
				return true
			}
		}
		return false
	})
}

// RemoveTripInfoField deletes the matching trip-level info field. Unknown ids
// are a no-op returning false.
func (s *Store) RemoveTripInfoField(id string) bool {
	return s.mutateIf(func(t *core.Trip) bool {
		for i := range t.BasicInfo {
			if t.BasicInfo[i].ID == id {
				t.BasicInfo = append(t.BasicInfo[:i], t.BasicInfo[i+1:]...)
				return true
			}
		}
		return false
	})
}

// AddExpenseInfoField appends an info field to the matching expense. The
// second return is false when the expense id is unknown.
func (s *Store) AddExpenseInfoField(expenseID string, f core.InfoField) (core.InfoField, bool) {
	ok := s.mutateIf(func(t *core.Trip) bool {
		for i := range t.Expenses {
			if t.Expenses[i].ID == expenseID {
				f.ID = s.newID()
				t.Expenses[i].InfoFields = append(t.Expenses[i].InfoFields, f)
				return true
			}
		}
		return false
	})
	return f, ok
}

// UpdateExpenseInfoField applies the set fields of patch to the matching info
// field of the matching expense.
func (s *Store) UpdateExpenseInfoField(expenseID, fieldID string, patch core.InfoFieldPatch) bool {
	return s.mutateIf(func(t *core.Trip) bool {
		for i := range t.Expenses {
			if t.Expenses[i].ID != expenseID {
				continue
			}
			fields := t.Expenses[i].InfoFields
			for j := range fields {
				if fields[j].ID == fieldID {
					patch.Apply(&fields[j])
					return true
				}
			}
			return false
		}
		return false
	})
}

// RemoveExpenseInfoField deletes the matching info field of the matching
// expense.
func (s *Store) RemoveExpenseInfoField(expenseID, fieldID string) bool {
	return s.mutateIf(func(t *core.Trip) bool {
		for i := range t.Expenses {
			if t.Expenses[i].ID != expenseID {
				continue
			}
			fields := t.Expenses[i].InfoFields
			for j := range fields {
				if fields[j].ID == fieldID {
					t.Expenses[i].InfoFields = append(fields[:j], fields[j+1:]...)
					return true
				}
			}
			return false
		}
		return false
	})
}
