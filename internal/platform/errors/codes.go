// Package errors provides structured error handling for the REAPER adapter.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeNotConnected means REAPER (or its bridge script) is unreachable.
	CodeNotConnected Code = "NOT_CONNECTED"

	// CodeNotFound means a track, item, FX, parameter, or marker index does
	// not resolve to an existing entity.
	CodeNotFound Code = "NOT_FOUND"

	// CodeInvalidArgument means a tool argument failed range or shape
	// validation before any REAPER call was made.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeTimeout means a bridge round-trip did not complete within its
	// deadline.
	CodeTimeout Code = "TIMEOUT"

	// CodeUpstreamFailure means REAPER or the bridge reported an error that
	// is not otherwise classified.
	CodeUpstreamFailure Code = "UPSTREAM_FAILURE"
)
