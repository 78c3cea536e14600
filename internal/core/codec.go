package core

import (
	"encoding/json"
	"fmt"
)

// DecodeTrip parses persisted trip JSON merged onto the default state, so
// fields absent from older payloads keep their defaults and a missing expense
// list decodes to the empty list. Decode failures wrap ErrMalformedState.
func DecodeTrip(data []byte) (Trip, error) {
	t := DefaultTrip()
	if err := json.Unmarshal(data, &t); err != nil {
		return Trip{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return t, nil
}

// RestoreTrip is the decode pipeline shared by storage load and import:
// decode merged onto defaults, migrate legacy fields, normalize, and re-key
// missing or duplicate ids with newID.
func RestoreTrip(data []byte, newID func() string) (Trip, error) {
	t, err := DecodeTrip(data)
	if err != nil {
		return Trip{}, err
	}
	t.MigrateLegacyFields(newID)
	t.Normalize()
	t.EnsureIDs(newID)
	return t, nil
}

// EncodeTrip serializes a trip in the persisted wire shape. Indented output
// is for backup exports, compact output for the record store.
func EncodeTrip(t Trip, indent bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(t, "", "  ")
	} else {
		data, err = json.Marshal(t)
	}
	if err != nil {
		return nil, fmt.Errorf("encode trip: %w", err)
	}
	return data, nil
}
