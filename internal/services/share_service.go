// Package services orchestrates the operations above the store: shareable
// renderings and whole-state import/export.
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"tripsplit/internal/core"
	"tripsplit/internal/share"
	"tripsplit/internal/store"
)

// CardRenderer turns a summary line model into PNG bytes.
type CardRenderer interface {
	RenderPNG(w io.Writer, s share.Summary) error
}

// DefaultSettleDelay is how long a capture waits before rendering, giving the
// view time to repaint without its interactive chrome.
const DefaultSettleDelay = 100 * time.Millisecond

// ShareService produces the shareable renderings of the current trip: the
// deterministic clipboard text and the PNG summary card.
type ShareService struct {
	store    *store.Store
	renderer CardRenderer
	settle   time.Duration

	capturing atomic.Bool
}

// NewShareService wires a share service. A settle of 0 or less uses
// DefaultSettleDelay.
func NewShareService(st *store.Store, renderer CardRenderer, settle time.Duration) *ShareService {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &ShareService{store: st, renderer: renderer, settle: settle}
}

// SummaryText returns the clipboard block for the current state.
func (s *ShareService) SummaryText() string {
	snap := s.store.Snapshot()
	return share.Build(snap, core.ComputeTotals(snap)).Text()
}

// CaptureMode reports whether an image capture is running. The view reads
// this flag to strip interactive chrome from the summary while it is being
// captured.
func (s *ShareService) CaptureMode() bool {
	return s.capturing.Load()
}

// ExportImage renders the summary card, returning the suggested filename and
// the PNG bytes. Only one capture runs at a time; a second call while one is
// in flight is a no-op returning ErrCaptureInFlight. The capture flag covers
// the settle delay and the render, and is always cleared, also on failure.
func (s *ShareService) ExportImage(ctx context.Context) (string, []byte, error) {
	if !s.capturing.CompareAndSwap(false, true) {
		return "", nil, core.ErrCaptureInFlight
	}
	defer s.capturing.Store(false)

	select {
	case <-time.After(s.settle):
	case <-ctx.Done():
		return "", nil, ctx.Err()
	}

	snap := s.store.Snapshot()
	summary := share.Build(snap, core.ComputeTotals(snap))

	var buf bytes.Buffer
	if err := s.renderer.RenderPNG(&buf, summary); err != nil {
		return "", nil, fmt.Errorf("%w: %v", core.ErrCaptureFailed, err)
	}

	slog.InfoContext(ctx, "Summary card rendered",
		"trip_name", snap.TripName,
		"bytes", buf.Len())
	return share.ImageFilename(snap.TripName), buf.Bytes(), nil
}
