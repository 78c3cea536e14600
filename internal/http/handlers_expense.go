package http

import (
	"log/slog"
	"net/http"

	"tripsplit/internal/core"
)

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	p, err := ParseBody(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Parse body error", "error", err, "url", r.URL.Path)
		BadRequestError("Invalid request body").Write(w)
		return
	}

	created := s.store.AddExpense(core.Expense{
		Name:        p.Get("name"),
		Price:       p.Amount("price"),
		IsPerPerson: p.Flag("isPerPerson"),
	})

	slog.InfoContext(r.Context(), "Expense added",
		"expense_id", created.ID,
		"name", created.Name,
		"price", created.Price,
		"per_person", created.IsPerPerson)

	s.writeState(w, created)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
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
		BadRequestError("Missing expense id").Write(w)
		return
	}

	var patch core.ExpensePatch
	if p.Has("name") {
		v := p.Get("name")
		patch.Name = &v
	}
	if p.Has("price") {
		v := p.Amount("price")
		patch.Price = &v
	}
	if p.Has("isPerPerson") {
		v := p.Flag("isPerPerson")
		patch.IsPerPerson = &v
	}

	if !s.store.UpdateExpense(id, patch) {
		slog.WarnContext(r.Context(), "Expense not found", "expense_id", id)
		NotFoundError("Expense not found").Write(w)
		return
	}

	s.writeState(w, nil)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
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
		BadRequestError("Missing expense id").Write(w)
		return
	}

	if !s.store.RemoveExpense(id) {
		slog.WarnContext(r.Context(), "Expense not found", "expense_id", id)
		NotFoundError("Expense not found").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Expense removed", "expense_id", id)
	s.writeState(w, nil)
}
