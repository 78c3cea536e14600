package http

import (
	"log/slog"
	"net/http"

	"tripsplit/internal/core"
)

// Trip-level info fields live under /api/trip/info, expense-level ones under
// /api/expenses/info with an additional expenseId key.

func (s *Server) handleAddTripInfo(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	p, err := ParseBody(r)
	if err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}

	created := s.store.AddTripInfoField(core.InfoField{
		Label: p.Get("label"),
		Value: p.Get("value"),
	})
	s.writeState(w, created)
}

func (s *Server) handleUpdateTripInfo(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	p, err := ParseBody(r)
	if err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}

	id := p.Get("id")
	if id == "" {
		BadRequestError("Missing info field id").Write(w)
		return
	}

	if !s.store.UpdateTripInfoField(id, infoPatch(p)) {
		slog.WarnContext(r.Context(), "Trip info field not found", "field_id", id)
		NotFoundError("Info field not found").Write(w)
		return
	}

	s.writeState(w, nil)
}

func (s *Server) handleDeleteTripInfo(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}
	p, err := ParseBody(r)
	if err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}

	id := p.Get("id")
	if id == "" {
		BadRequestError("Missing info field id").Write(w)
		return
	}

	if !s.store.RemoveTripInfoField(id) {
		slog.WarnContext(r.Context(), "Trip info field not found", "field_id", id)
		NotFoundError("Info field not found").Write(w)
		return
	}

	s.writeState(w, nil)
}

func (s *Server) handleAddExpenseInfo(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	p, err := ParseBody(r)
	if err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}

	expenseID := p.Get("expenseId")
	if expenseID == "" {
		BadRequestError("Missing expense id").Write(w)
		return
	}

	created, ok := s.store.AddExpenseInfoField(expenseID, core.InfoField{
		Label: p.Get("label"),
		Value: p.Get("value"),
	})
	if !ok {
		slog.WarnContext(r.Context(), "Expense not found", "expense_id", expenseID)
		NotFoundError("Expense not found").Write(w)
		return
	}

	s.writeState(w, created)
}

func (s *Server) handleUpdateExpenseInfo(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	p, err := ParseBody(r)
	if err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}

	expenseID, fieldID := p.Get("expenseId"), p.Get("id")
	if expenseID == "" || fieldID == "" {
		BadRequestError("Missing expense or info field id").Write(w)
		return
	}

	if !s.store.UpdateExpenseInfoField(expenseID, fieldID, infoPatch(p)) {
		slog.WarnContext(r.Context(), "Expense info field not found",
			"expense_id", expenseID, "field_id", fieldID)
		NotFoundError("Info field not found").Write(w)
		return
	}

	s.writeState(w, nil)
}

func (s *Server) handleDeleteExpenseInfo(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}
	p, err := ParseBody(r)
	if err != nil {
		BadRequestError("Invalid request body").Write(w)
		return
	}

	expenseID, fieldID := p.Get("expenseId"), p.Get("id")
	if expenseID == "" || fieldID == "" {
		BadRequestError("Missing expense or info field id").Write(w)
		return
	}

	if !s.store.RemoveExpenseInfoField(expenseID, fieldID) {
		slog.WarnContext(r.Context(), "Expense info field not found",
			"expense_id", expenseID, "field_id", fieldID)
		NotFoundError("Info field not found").Write(w)
		return
	}

	s.writeState(w, nil)
}

func infoPatch(p *BodyParser) core.InfoFieldPatch {
	var patch core.InfoFieldPatch
	if p.Has("label") {
		v := p.Get("label")
		patch.Label = &v
	}
	if p.Has("value") {
		v := p.Get("value")
		patch.Value = &v
	}
	return patch
}
