package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrSnapshotNotLoaded = errors.New("snapshot_not_loaded")
	ErrVenueNotFound     = errors.New("venue_not_found")
	ErrInvalidSnapshot   = errors.New("invalid_snapshot")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
