package core

import "testing"

func TestDefaultTrip(t *testing.T) {
	trip := DefaultTrip()

	if trip.Persons != 2 {
		t.Errorf("Persons = %d, want 2", trip.Persons)
	}
	if trip.BudgetPerPerson != 0 {
		t.Errorf("BudgetPerPerson = %v, want 0", trip.BudgetPerPerson)
	}
	if trip.HasAccommodation {
		t.Error("HasAccommodation = true, want false")
	}
	if trip.AccommodationNights != 1 {
		t.Errorf("AccommodationNights = %d, want 1", trip.AccommodationNights)
	}
	if trip.BasicInfo == nil || len(trip.BasicInfo) != 0 {
		t.Errorf("BasicInfo = %v, want empty non-nil slice", trip.BasicInfo)
	}
	if trip.Expenses == nil || len(trip.Expenses) != 0 {
		t.Errorf("Expenses = %v, want empty non-nil slice", trip.Expenses)
	}
}

func TestNormalize(t *testing.T) {
	trip := Trip{
		Persons:             0,
		BudgetPerPerson:     -20,
		AccommodationPrice:  -300,
		AccommodationNights: -1,
		Expenses: []Expense{
			{ID: "e1", Name: "Dinner", Price: -5},
		},
	}

	trip.Normalize()

	if trip.Persons != 1 {
		t.Errorf("Persons = %d, want 1", trip.Persons)
	}
	if trip.AccommodationNights != 1 {
		t.Errorf("AccommodationNights = %d, want 1", trip.AccommodationNights)
	}
	if trip.BudgetPerPerson != 0 {
		t.Errorf("BudgetPerPerson = %v, want 0", trip.BudgetPerPerson)
	}
	if trip.AccommodationPrice != 0 {
		t.Errorf("AccommodationPrice = %v, want 0", trip.AccommodationPrice)
	}
	if trip.Expenses[0].Price != 0 {
		t.Errorf("expense price = %v, want 0", trip.Expenses[0].Price)
	}
	if trip.BasicInfo == nil {
		t.Error("BasicInfo stayed nil")
	}
	if trip.Expenses[0].InfoFields == nil {
		t.Error("expense InfoFields stayed nil")
	}
}

func TestCloneIsDeep(t *testing.T) {
	trip := Trip{
		TripName: "Ticino",
		Persons:  3,
		BasicInfo: []InfoField{
			{ID: "b1", Label: "Region", Value: "Ticino"},
		},
		Expenses: []Expense{
			{ID: "e1", Name: "Dinner", Price: 100, InfoFields: []InfoField{
				{ID: "f1", Label: "Link", Value: "https://example.com"},
			}},
		},
	}

	clone := trip.Clone()
	clone.BasicInfo[0].Value = "Wallis"
	clone.Expenses[0].Name = "Lunch"
	clone.Expenses[0].InfoFields[0].Value = "changed"

	if trip.BasicInfo[0].Value != "Ticino" {
		t.Error("clone shares BasicInfo backing array")
	}
	if trip.Expenses[0].Name != "Dinner" {
		t.Error("clone shares Expenses backing array")
	}
	if trip.Expenses[0].InfoFields[0].Value != "https://example.com" {
		t.Error("clone shares expense InfoFields backing array")
	}
}

func TestExpensePatchApply(t *testing.T) {
	name := "Lunch"
	price := -10.0
	perPerson := true

	e := Expense{ID: "e1", Name: "Dinner", Price: 50}
	ExpensePatch{Name: &name, Price: &price, IsPerPerson: &perPerson}.Apply(&e)

	if e.Name != "Lunch" {
		t.Errorf("Name = %q, want Lunch", e.Name)
	}
	if e.Price != 0 {
		t.Errorf("Price = %v, want 0 (negative input coerced)", e.Price)
	}
	if !e.IsPerPerson {
		t.Error("IsPerPerson not applied")
	}

	// Nil fields leave the expense alone.
	ExpensePatch{}.Apply(&e)
	if e.Name != "Lunch" || e.Price != 0 || !e.IsPerPerson {
		t.Errorf("empty patch changed the expense: %+v", e)
	}
}

func TestInfoFieldPatchApply(t *testing.T) {
	label := "Notes"
	f := InfoField{ID: "f1", Label: "Link", Value: "https://example.com"}

	InfoFieldPatch{Label: &label}.Apply(&f)

	if f.Label != "Notes" {
		t.Errorf("Label = %q, want Notes", f.Label)
	}
	if f.Value != "https://example.com" {
		t.Errorf("Value changed to %q without being patched", f.Value)
	}
}
