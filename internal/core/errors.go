package core

import "errors"

// Failure modes of the tool. All of them are recoverable: callers fall back,
// refuse the single operation, or notify; none of them stops the process.
var (
	// ErrMalformedState marks a persisted trip record that no longer decodes.
	// Loading falls back to the default state and logs a warning.
	ErrMalformedState = errors.New("persisted trip data is malformed")

	// ErrMalformedImport marks an uploaded backup that does not decode. The
	// import is rejected and the current state stays untouched.
	ErrMalformedImport = errors.New("imported trip data is malformed")

	// ErrCaptureFailed marks a summary card render or encode failure.
	ErrCaptureFailed = errors.New("summary capture failed")

	// ErrCaptureInFlight rejects a capture while another one is running.
	ErrCaptureInFlight = errors.New("a capture is already running")

	// ErrImportInFlight rejects an import while another one is running.
	ErrImportInFlight = errors.New("an import is already running")
)
