package http

import (
	"log/slog"
	"net/http"

	"tripsplit/internal/core"
)

// statePayload is what GET /api/trip and every mutating handler respond with:
// the full trip, its derived totals, and whether an image capture is running.
// Add endpoints also echo the created entity so clients get its id directly.
type statePayload struct {
	Trip        core.Trip   `json:"trip"`
	Totals      core.Totals `json:"totals"`
	CaptureMode bool        `json:"captureMode"`
	Created     any         `json:"created,omitempty"`
}

func (s *Server) currentState(created any) statePayload {
	trip := s.store.Snapshot()
	return statePayload{
		Trip:        trip,
		Totals:      core.ComputeTotals(trip),
		CaptureMode: s.shares.CaptureMode(),
		Created:     created,
	}
}

func (s *Server) writeState(w http.ResponseWriter, created any) {
	NewResponse().BodyJSON(s.currentState(created)).Write(w)
}

func (s *Server) handleTrip(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeState(w, nil)
	case http.MethodPost:
		s.handleUpdateTripSettings(w, r)
	default:
		MethodNotAllowedError("GET, POST").Write(w)
	}
}

// handleUpdateTripSettings applies whichever trip-level fields the body
// carries. Absent fields stay untouched, so the view can post single-field
// edits as they happen.
func (s *Server) handleUpdateTripSettings(w http.ResponseWriter, r *http.Request) {
	p, err := ParseBody(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Parse body error", "error", err, "url", r.URL.Path)
		BadRequestError("Invalid request body").Write(w)
		return
	}

	if p.Has("tripName") {
		s.store.SetTripName(p.Get("tripName"))
	}
	if p.Has("persons") {
		s.store.SetPersonCount(p.Count("persons"))
	}
	if p.Has("budgetPerPerson") {
		s.store.SetBudgetPerPerson(p.Amount("budgetPerPerson"))
	}
	if p.Has("hasAccommodation") {
		s.store.SetAccommodationEnabled(p.Flag("hasAccommodation"))
	}
	if p.Has("accommodationLink") {
		s.store.SetAccommodationLink(p.Get("accommodationLink"))
	}
	if p.Has("accommodationPrice") {
		s.store.SetAccommodationPrice(p.Amount("accommodationPrice"))
	}
	if p.Has("accommodationNights") {
		s.store.SetAccommodationNights(p.Count("accommodationNights"))
	}

	s.writeState(w, nil)
}
