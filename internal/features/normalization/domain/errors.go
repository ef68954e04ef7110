package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the request text is blank after trimming.
	ErrEmptyInput = errors.New("text cannot be empty")
	// ErrBackendNotConfigured means no generative backend credentials were provided.
	ErrBackendNotConfigured = errors.New("AI backend not configured")
	// ErrMalformedResponse means the backend output could not be repaired into a JSON object.
	ErrMalformedResponse = errors.New("malformed AI response")
)

// UnavailableError describes why the generative backend could not produce output.
type UnavailableError struct {
	Reason string
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("AI backend unavailable: %s: %v", e.Reason, e.Err)
	}
	return "AI backend unavailable: " + e.Reason
}

func (e *UnavailableError) Unwrap() error { return e.Err }
