// Package share builds the shareable renderings of a trip: the deterministic
// clipboard text block and the line model the PNG card draws from.
package share

import (
	"fmt"
	"strings"

	"tripsplit/internal/core"
)

// LineKind drives per-line styling. The text rendering only distinguishes
// detail lines (indented); the card renderer styles every kind.
type LineKind int

const (
	LineTitle LineKind = iota
	LineCount
	LineInfo
	LineHeading
	LineItem
	LineDetail
	LineTotal
	LineBudget
	LineOverrun
	LineBlank
)

// Line is one row of the summary.
type Line struct {
	Kind LineKind
	Text string
}

// Summary is the ordered line model of one trip overview. The same state
// always builds the same summary, so both renderings are deterministic.
type Summary struct {
	Lines []Line
}

// Build assembles the summary for a trip and its totals. Sections without
// content are omitted entirely: no empty headings, no dangling blank lines.
func Build(t core.Trip, totals core.Totals) Summary {
	var lines []Line
	add := func(kind LineKind, text string) {
		lines = append(lines, Line{Kind: kind, Text: text})
	}
	blank := func() { add(LineBlank, "") }

	name := t.TripName
	if name == "" {
		name = "Trip"
	}
	add(LineTitle, name)
	add(LineCount, travellers(t.Persons))

	if info := visibleFields(t.BasicInfo); len(info) > 0 {
		blank()
		for _, f := range info {
			add(LineInfo, fieldLine(f))
		}
	}

	if t.HasAccommodation && t.AccommodationPrice > 0 {
		blank()
		add(LineHeading, "Accommodation: "+FormatCHF(totals.AccommodationCost))
		if t.AccommodationNights >= 1 {
			add(LineDetail, fmt.Sprintf("%s × %s", nights(t.AccommodationNights), FormatCHF(totals.PricePerNight)))
		}
		if t.AccommodationLink != "" {
			add(LineDetail, t.AccommodationLink)
		}
	}

	if len(t.Expenses) > 0 {
		blank()
		add(LineHeading, "Expenses:")
		for _, e := range t.Expenses {
			total := core.ExpenseTotal(e, t.Persons)
			if e.IsPerPerson {
				add(LineItem, fmt.Sprintf("- %s: %s (%s × %d)", e.Name, FormatCHF(total), FormatCHF(e.Price), t.Persons))
			} else {
				add(LineItem, fmt.Sprintf("- %s: %s", e.Name, FormatCHF(total)))
			}
			for _, f := range visibleFields(e.InfoFields) {
				add(LineDetail, fieldLine(f))
			}
		}
	}

	blank()
	add(LineTotal, "Total: "+FormatCHF(totals.TotalCost))
	add(LineTotal, "Per person: "+FormatCHF(totals.CostPerPerson))

	if t.BudgetPerPerson > 0 {
		blank()
		add(LineBudget, "Budget: "+FormatCHF(totals.TotalBudget))
		if totals.Remaining < 0 {
			add(LineOverrun, "Over budget by "+FormatCHF(-totals.Remaining))
		} else {
			add(LineBudget, "Remaining: "+FormatCHF(totals.Remaining))
		}
	}

	return Summary{Lines: lines}
}

// Text renders the summary as the clipboard block: lines joined with \n,
// detail lines indented two spaces, no trailing newline.
func (s Summary) Text() string {
	var b strings.Builder
	for i, line := range s.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if line.Kind == LineDetail {
			b.WriteString("  ")
		}
		b.WriteString(line.Text)
	}
	return b.String()
}

// FormatCHF renders an amount as "CHF 12.34".
func FormatCHF(v float64) string {
	return fmt.Sprintf("CHF %.2f", v)
}

func travellers(n int) string {
	if n == 1 {
		return "1 traveller"
	}
	return fmt.Sprintf("%d travellers", n)
}

func nights(n int) string {
	if n == 1 {
		return "1 night"
	}
	return fmt.Sprintf("%d nights", n)
}

// visibleFields keeps the info fields worth a line: anything with a label or
// a value. Fully blank rows (both sides empty) are skipped.
func visibleFields(fields []core.InfoField) []core.InfoField {
	out := make([]core.InfoField, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f.Label) != "" || strings.TrimSpace(f.Value) != "" {
			out = append(out, f)
		}
	}
	return out
}

func fieldLine(f core.InfoField) string {
	label := strings.TrimSpace(f.Label)
	value := strings.TrimSpace(f.Value)
	switch {
	case label == "":
		return value
	case value == "":
		return label + ":"
	default:
		return label + ": " + value
	}
}
