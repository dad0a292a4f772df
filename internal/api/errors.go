package api

import (
	"errors"
	"fmt"

	"github.com/timahq/socialdata/internal/source"
)

// Application error codes, in the server-error range reserved by the
// JSON-RPC 2.0 spec.
const (
	ErrServerError   = -32000
	ErrAccountGone   = -32001
	ErrUpstream      = -32002
	ErrNothingToShow = -32003
)

// Error represents an API error
type Error struct {
	Code    int
	Message string
}

// NewError creates a new API error
func NewError(code int, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// classify maps a pipeline error onto its JSON-RPC code and message.
func classify(err error) (int, string) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Message
	}

	switch {
	case errors.Is(err, source.ErrNotFound):
		return ErrAccountGone, "Account not found"
	case errors.Is(err, source.ErrEmptyResult):
		return ErrNothingToShow, "No items to aggregate"
	}

	var upstream *source.UpstreamError
	if errors.As(err, &upstream) {
		return ErrUpstream, "Upstream provider error"
	}

	return ErrServerError, "Server error"
}
