package services

import (
	"context"
	"log/slog"
	"sync/atomic"

	"tripsplit/internal/core"
	"tripsplit/internal/share"
	"tripsplit/internal/store"
)

// TransferService moves whole trip states in and out as JSON backups.
type TransferService struct {
	store *store.Store

	importing atomic.Bool
}

// NewTransferService wires a transfer service around the store.
func NewTransferService(st *store.Store) *TransferService {
	return &TransferService{store: st}
}

// ExportJSON returns the suggested backup filename and the indented JSON
// payload for the current state.
func (s *TransferService) ExportJSON() (string, []byte, error) {
	snap := s.store.Snapshot()
	data, err := core.EncodeTrip(snap, true)
	if err != nil {
		return "", nil, err
	}
	return share.BackupFilename(snap.TripName), data, nil
}

// Import replaces the current trip with the decoded payload. A malformed
// payload leaves the state untouched and returns ErrMalformedImport. Only one
// import runs at a time; a concurrent call returns ErrImportInFlight.
func (s *TransferService) Import(ctx context.Context, data []byte) error {
	if !s.importing.CompareAndSwap(false, true) {
		return core.ErrImportInFlight
	}
	defer s.importing.Store(false)

	if err := s.store.Restore(data); err != nil {
		return err
	}
	snap := s.store.Snapshot()
	slog.InfoContext(ctx, "Trip imported",
		"trip_name", snap.TripName,
		"expenses", len(snap.Expenses))
	return nil
}
