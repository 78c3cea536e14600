package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func TestDecodeTripMergesOntoDefaults(t *testing.T) {
	// Only the name is present; everything else keeps its default.
	trip, err := DecodeTrip([]byte(`{"tripName":"Ticino"}`))
	if err != nil {
		t.Fatalf("DecodeTrip() error = %v", err)
	}

	if trip.TripName != "Ticino" {
		t.Errorf("TripName = %q, want Ticino", trip.TripName)
	}
	if trip.Persons != 2 {
		t.Errorf("Persons = %d, want default 2", trip.Persons)
	}
	if trip.AccommodationNights != 1 {
		t.Errorf("AccommodationNights = %d, want default 1", trip.AccommodationNights)
	}
	if len(trip.Expenses) != 0 {
		t.Errorf("Expenses = %v, want empty", trip.Expenses)
	}
}

func TestDecodeTripMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "truncated object", input: `{"tripName": "Tic`},
		{name: "not json at all", input: `hello`},
		{name: "wrong field type", input: `{"persons": "four"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTrip([]byte(tt.input))
			if err == nil {
				t.Fatal("DecodeTrip() expected error, got nil")
			}
			if !errors.Is(err, ErrMalformedState) {
				t.Errorf("error = %v, want ErrMalformedState", err)
			}
		})
	}
}

func TestRestoreTripMigratesLegacyFields(t *testing.T) {
	payload := []byte(`{
		"tripName": "Bern",
		"persons": 3,
		"expenses": [
			{"id": "e1", "name": "Hotel", "price": 200, "link": "https://hotel.example", "notes": "late check-in"},
			{"id": "e2", "name": "Dinner", "price": 80, "link": ""}
		]
	}`)

	trip, err := RestoreTrip(payload, seqIDs("id"))
	if err != nil {
		t.Fatalf("RestoreTrip() error = %v", err)
	}

	hotel := trip.Expenses[0]
	if len(hotel.InfoFields) != 2 {
		t.Fatalf("hotel InfoFields = %d, want 2", len(hotel.InfoFields))
	}
	if hotel.InfoFields[0].Label != "Link" || hotel.InfoFields[0].Value != "https://hotel.example" {
		t.Errorf("first field = %+v, want Link/https://hotel.example", hotel.InfoFields[0])
	}
	if hotel.InfoFields[1].Label != "Notes" || hotel.InfoFields[1].Value != "late check-in" {
		t.Errorf("second field = %+v, want Notes/late check-in", hotel.InfoFields[1])
	}
	if hotel.LegacyLink != "" || hotel.LegacyNotes != "" {
		t.Errorf("legacy fields not cleared: %+v", hotel)
	}

	// Empty legacy values produce nothing.
	if len(trip.Expenses[1].InfoFields) != 0 {
		t.Errorf("dinner InfoFields = %v, want none", trip.Expenses[1].InfoFields)
	}

	// A second pass over the already migrated state adds nothing.
	reencoded, err := EncodeTrip(trip, false)
	if err != nil {
		t.Fatalf("EncodeTrip() error = %v", err)
	}
	again, err := RestoreTrip(reencoded, seqIDs("other"))
	if err != nil {
		t.Fatalf("RestoreTrip() second pass error = %v", err)
	}
	if len(again.Expenses[0].InfoFields) != 2 {
		t.Errorf("second pass grew InfoFields to %d", len(again.Expenses[0].InfoFields))
	}
}

func TestRestoreTripSkipsMigrationWhenFieldsExist(t *testing.T) {
	// An expense that already carries info fields is left alone even when
	// legacy values are also present.
	payload := []byte(`{
		"expenses": [
			{"id": "e1", "name": "Hotel", "price": 200,
			 "infoFields": [{"id": "f1", "label": "Room", "value": "12"}],
			 "link": "https://hotel.example", "notes": "late check-in"}
		]
	}`)

	trip, err := RestoreTrip(payload, seqIDs("id"))
	if err != nil {
		t.Fatalf("RestoreTrip() error = %v", err)
	}

	hotel := trip.Expenses[0]
	if len(hotel.InfoFields) != 1 {
		t.Fatalf("InfoFields = %d, want the original 1", len(hotel.InfoFields))
	}
	if hotel.InfoFields[0].Label != "Room" {
		t.Errorf("field = %+v, want the original Room entry", hotel.InfoFields[0])
	}
	if hotel.LegacyLink != "https://hotel.example" {
		t.Errorf("LegacyLink = %q, want untouched value", hotel.LegacyLink)
	}
}

func TestRestoreTripReKeysIDs(t *testing.T) {
	payload := []byte(`{
		"expenses": [
			{"id": "dup", "name": "A"},
			{"id": "dup", "name": "B"},
			{"id": "", "name": "C"}
		],
		"basicInfo": [
			{"id": "", "label": "Region", "value": "Ticino"}
		]
	}`)

	trip, err := RestoreTrip(payload, seqIDs("fresh"))
	if err != nil {
		t.Fatalf("RestoreTrip() error = %v", err)
	}

	seen := map[string]bool{}
	for _, e := range trip.Expenses {
		if e.ID == "" {
			t.Errorf("expense %q kept an empty id", e.Name)
		}
		if seen[e.ID] {
			t.Errorf("duplicate id %q survived", e.ID)
		}
		seen[e.ID] = true
	}
	if trip.Expenses[0].ID != "dup" {
		t.Errorf("first holder of an id should keep it, got %q", trip.Expenses[0].ID)
	}
	if trip.BasicInfo[0].ID == "" {
		t.Error("basic info field kept an empty id")
	}
}

func TestEncodeTripWireShape(t *testing.T) {
	trip := DefaultTrip()
	trip.TripName = "Ticino"
	trip.Expenses = append(trip.Expenses, Expense{
		ID: "e1", Name: "Dinner", Price: 100, InfoFields: []InfoField{},
	})

	data, err := EncodeTrip(trip, true)
	if err != nil {
		t.Fatalf("EncodeTrip() error = %v", err)
	}

	out := string(data)
	for _, key := range []string{
		`"tripName"`, `"persons"`, `"budgetPerPerson"`, `"hasAccommodation"`,
		`"accommodationLink"`, `"accommodationPrice"`, `"accommodationNights"`,
		`"basicInfo"`, `"expenses"`, `"isPerPerson"`, `"infoFields"`,
	} {
		if !strings.Contains(out, key) {
			t.Errorf("encoded trip missing %s", key)
		}
	}
	if strings.Contains(out, `"link"`) || strings.Contains(out, `"notes"`) {
		t.Errorf("legacy fields leaked into encoded output:\n%s", out)
	}
	if !strings.Contains(out, "\n") {
		t.Error("indented encoding produced a single line")
	}

	// The wire shape round-trips through a plain decode.
	var back Trip
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if back.Expenses[0].Name != "Dinner" {
		t.Errorf("round trip lost expense name: %+v", back.Expenses[0])
	}
}
