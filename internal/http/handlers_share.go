package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"tripsplit/internal/core"
)

// maxImportBytes bounds uploaded backups. A trip document is a few KB; a
// megabyte leaves room without letting uploads grow unbounded.
const maxImportBytes = 1 << 20

func (s *Server) handleSummaryText(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	NewResponse().BodyText(s.shares.SummaryText()).Write(w)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	name, data, err := s.transfers.ExportJSON()
	if err != nil {
		slog.ErrorContext(r.Context(), "Trip export failed", "error", err)
		InternalServerError("Exporting the trip failed").Write(w)
		return
	}

	NewResponse().
		Header("Content-Type", "application/json; charset=utf-8").
		Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name)).
		Body(data).
		Write(w)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ErrorResponse(http.StatusRequestEntityTooLarge, "The uploaded file is too large").Write(w)
			return
		}
		BadRequestError("Could not read the uploaded file").Write(w)
		return
	}

	switch err := s.transfers.Import(r.Context(), data); {
	case errors.Is(err, core.ErrImportInFlight):
		ConflictError("An import is already running").Write(w)
	case errors.Is(err, core.ErrMalformedImport):
		slog.WarnContext(r.Context(), "Import rejected", "error", err)
		UnprocessableEntityError("The file is not a valid trip backup").Write(w)
	case err != nil:
		slog.ErrorContext(r.Context(), "Trip import failed", "error", err)
		InternalServerError("Importing the trip failed").Write(w)
	default:
		NewResponse().
			TriggerSuccessNotification("Trip imported").
			BodyJSON(s.currentState(nil)).
			Write(w)
	}
}

func (s *Server) handleExportImage(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	name, data, err := s.shares.ExportImage(r.Context())
	switch {
	case errors.Is(err, core.ErrCaptureInFlight):
		ConflictError("A capture is already running").Write(w)
	case err != nil:
		slog.ErrorContext(r.Context(), "Summary card capture failed", "error", err)
		InternalServerError("Rendering the summary card failed").Write(w)
	default:
		NewResponse().
			Header("Content-Type", "image/png").
			Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name)).
			Body(data).
			Write(w)
	}
}
