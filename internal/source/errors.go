package source

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that the requested account, channel, artist, or
// podcast does not exist upstream.
var ErrNotFound = errors.New("account not found")

// ErrEmptyResult marks an aggregation that saw zero items. Callers treat
// it as a soft condition: metrics degrade to zero and account metadata is
// still returned.
var ErrEmptyResult = errors.New("no items aggregated")

// ParseError reports a raw field that could not be converted to its
// canonical type. Normalization recovers by skipping the record.
type ParseError struct {
	Kind  Kind
	Field string
	Value string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s field %s: %q", e.Kind, e.Field, e.Value)
}

// UpstreamError reports a provider adapter failure (network, rate limit,
// auth). In batch mode it isolates to the failing account.
type UpstreamError struct {
	Platform Platform
	Op       string
	Status   int // HTTP status when available, 0 otherwise
	Err      error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s failed with status %d: %v", e.Platform, e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Platform, e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}
