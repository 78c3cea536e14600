package core

// MigrateLegacyFields upgrades older expense payloads that carried dedicated
// link/notes strings into the current info-field shape. The upgrade only runs
// for expenses with no info fields yet; an expense that already carries some
// is left exactly as it came in, legacy values included. Non-empty values
// become fields labeled "Link" / "Notes" with fresh ids and the legacy fields
// are cleared, so a second pass finds nothing to do.
func (t *Trip) MigrateLegacyFields(newID func() string) {
	for i := range t.Expenses {
		e := &t.Expenses[i]
		if len(e.InfoFields) > 0 {
			continue
		}
		if e.LegacyLink != "" {
			e.InfoFields = append(e.InfoFields, InfoField{ID: newID(), Label: "Link", Value: e.LegacyLink})
			e.LegacyLink = ""
		}
		if e.LegacyNotes != "" {
			e.InfoFields = append(e.InfoFields, InfoField{ID: newID(), Label: "Notes", Value: e.LegacyNotes})
			e.LegacyNotes = ""
		}
	}
}

// EnsureIDs re-keys entries whose id is empty or already taken, keeping ids
// unique within each list.
func (t *Trip) EnsureIDs(newID func() string) {
	seen := make(map[string]struct{}, len(t.BasicInfo))
	for i := range t.BasicInfo {
		t.BasicInfo[i].ID = uniqueID(t.BasicInfo[i].ID, seen, newID)
	}

	seen = make(map[string]struct{}, len(t.Expenses))
	for i := range t.Expenses {
		e := &t.Expenses[i]
		e.ID = uniqueID(e.ID, seen, newID)

		fieldSeen := make(map[string]struct{}, len(e.InfoFields))
		for j := range e.InfoFields {
			e.InfoFields[j].ID = uniqueID(e.InfoFields[j].ID, fieldSeen, newID)
		}
	}
}

func uniqueID(id string, seen map[string]struct{}, newID func() string) string {
	for {
		if id != "" {
			if _, dup := seen[id]; !dup {
				break
			}
		}
		id = newID()
	}
	seen[id] = struct{}{}
	return id
}
