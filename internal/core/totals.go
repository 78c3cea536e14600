package core

// BudgetStatus classifies the remaining budget. Only meaningful when a budget
// is set (BudgetPerPerson > 0); otherwise ComputeTotals reports BudgetNone.
type BudgetStatus string

const (
	BudgetNone    BudgetStatus = "none"
	BudgetOK      BudgetStatus = "ok"
	BudgetWarning BudgetStatus = "warning"
	BudgetOver    BudgetStatus = "over"
)

// warningShare is the fraction of the total budget under which a non-negative
// remaining amount counts as a warning.
const warningShare = 0.2

// Totals is the derived cost overview of a trip. It is never persisted;
// callers recompute it from a snapshot whenever state changes.
type Totals struct {
	ExpensesCost      float64      `json:"expensesCost"`
	AccommodationCost float64      `json:"accommodationCost"`
	TotalCost         float64      `json:"totalCost"`
	CostPerPerson     float64      `json:"costPerPerson"`
	PricePerNight     float64      `json:"pricePerNight"`
	TotalBudget       float64      `json:"totalBudget"`
	Remaining         float64      `json:"remaining"`
	BudgetStatus      BudgetStatus `json:"budgetStatus"`
}

// ExpenseTotal is the effective cost of one expense: per-person prices count
// once per traveller, flat prices count once.
func ExpenseTotal(e Expense, persons int) float64 {
	if e.IsPerPerson {
		return e.Price * float64(persons)
	}
	return e.Price
}

// ComputeTotals derives the full cost overview from a trip. Divisions guard
// against zero counts so the function stays total even on denormalized input.
func ComputeTotals(t Trip) Totals {
	var out Totals
	for _, e := range t.Expenses {
		out.ExpensesCost += ExpenseTotal(e, t.Persons)
	}
	if t.HasAccommodation {
		out.AccommodationCost = t.AccommodationPrice
	}
	out.TotalCost = out.ExpensesCost + out.AccommodationCost
	if t.Persons > 0 {
		out.CostPerPerson = out.TotalCost / float64(t.Persons)
	}
	if t.AccommodationNights > 0 {
		out.PricePerNight = t.AccommodationPrice / float64(t.AccommodationNights)
	}
	out.TotalBudget = t.BudgetPerPerson * float64(t.Persons)
	out.Remaining = out.TotalBudget - out.TotalCost
	out.BudgetStatus = budgetStatus(t.BudgetPerPerson, out.TotalBudget, out.Remaining)
	return out
}

func budgetStatus(budgetPerPerson, totalBudget, remaining float64) BudgetStatus {
	switch {
	case budgetPerPerson <= 0:
		return BudgetNone
	case remaining < 0:
		return BudgetOver
	case remaining < warningShare*totalBudget:
		return BudgetWarning
	default:
		return BudgetOK
	}
}
