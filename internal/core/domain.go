package core

import "math"

type (
	// InfoField is one user-defined label/value pair. Trip-level notes and
	// per-expense details share this shape.
	InfoField struct {
		ID    string `json:"id"`
		Label string `json:"label"`
		Value string `json:"value"`
	}

	// Expense is a single cost line. Price is a flat amount unless
	// IsPerPerson is set, in which case the effective total multiplies by
	// the trip's person count.
	Expense struct {
		ID          string      `json:"id"`
		Name        string      `json:"name"`
		Price       float64     `json:"price"`
		IsPerPerson bool        `json:"isPerPerson"`
		InfoFields  []InfoField `json:"infoFields"`

		// Older payloads carried dedicated link/notes strings per expense.
		// MigrateLegacyFields turns them into InfoFields entries and clears
		// them; omitempty keeps them out of everything written since.
		LegacyLink  string `json:"link,omitempty"`
		LegacyNotes string `json:"notes,omitempty"`
	}

	// Trip is the whole shared state of one trip. The JSON tags are the
	// persisted contract: the same shape goes to the record store and to
	// backup exports, and comes back in on import.
	Trip struct {
		TripName            string      `json:"tripName"`
		Persons             int         `json:"persons"`
		BudgetPerPerson     float64     `json:"budgetPerPerson"`
		HasAccommodation    bool        `json:"hasAccommodation"`
		AccommodationLink   string      `json:"accommodationLink"`
		AccommodationPrice  float64     `json:"accommodationPrice"`
		AccommodationNights int         `json:"accommodationNights"`
		BasicInfo           []InfoField `json:"basicInfo"`
		Expenses            []Expense   `json:"expenses"`
	}
)

// DefaultTrip returns the fresh state used when nothing is persisted yet:
// two travellers, no budget, no accommodation, empty lists.
func DefaultTrip() Trip {
	return Trip{
		Persons:             2,
		AccommodationNights: 1,
		BasicInfo:           []InfoField{},
		Expenses:            []Expense{},
	}
}

// Clone returns a deep copy. Snapshots hand these out so callers never alias
// live state.
func (t Trip) Clone() Trip {
	out := t
	out.BasicInfo = cloneInfoFields(t.BasicInfo)
	out.Expenses = make([]Expense, len(t.Expenses))
	for i, e := range t.Expenses {
		e.InfoFields = cloneInfoFields(e.InfoFields)
		out.Expenses[i] = e
	}
	return out
}

func cloneInfoFields(fields []InfoField) []InfoField {
	out := make([]InfoField, len(fields))
	copy(out, fields)
	return out
}

// Normalize clamps every numeric field into its allowed range and makes all
// slices non-nil. Counts never drop below 1, amounts never below 0.
func (t *Trip) Normalize() {
	t.Persons = ClampCount(t.Persons)
	t.AccommodationNights = ClampCount(t.AccommodationNights)
	t.BudgetPerPerson = ClampAmount(t.BudgetPerPerson)
	t.AccommodationPrice = ClampAmount(t.AccommodationPrice)
	if t.BasicInfo == nil {
		t.BasicInfo = []InfoField{}
	}
	if t.Expenses == nil {
		t.Expenses = []Expense{}
	}
	for i := range t.Expenses {
		t.Expenses[i].Price = ClampAmount(t.Expenses[i].Price)
		if t.Expenses[i].InfoFields == nil {
			t.Expenses[i].InfoFields = []InfoField{}
		}
	}
}

// ClampCount coerces a count (travellers, nights) to its floor of 1.
func ClampCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// ClampAmount coerces an amount to a finite, non-negative value.
func ClampAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ExpensePatch carries a partial expense update; nil fields stay untouched.
type ExpensePatch struct {
	Name        *string
	Price       *float64
	IsPerPerson *bool
}

// Apply writes the set fields onto e, coercing the price.
func (p ExpensePatch) Apply(e *Expense) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Price != nil {
		e.Price = ClampAmount(*p.Price)
	}
	if p.IsPerPerson != nil {
		e.IsPerPerson = *p.IsPerPerson
	}
}

// InfoFieldPatch carries a partial info-field update; nil fields stay
// untouched.
type InfoFieldPatch struct {
	Label *string
	Value *string
}

// Apply writes the set fields onto f.
func (p InfoFieldPatch) Apply(f *InfoField) {
	if p.Label != nil {
		f.Label = *p.Label
	}
	if p.Value != nil {
		f.Value = *p.Value
	}
}
