package core

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes mission errors.
type ErrorCode string

const (
	// ErrCodeGeneric is the catch-all category, including unhandled
	// state/event combinations and wrapped load failures.
	ErrCodeGeneric ErrorCode = "GENERIC"

	// ErrCodeInvalidPlanet indicates an unparsable planet description.
	ErrCodeInvalidPlanet ErrorCode = "INVALID_PLANET"

	// ErrCodeInvalidRover indicates an unparsable rover description.
	ErrCodeInvalidRover ErrorCode = "INVALID_ROVER"

	// ErrCodeInvalidObstacle indicates an unparsable obstacle description.
	ErrCodeInvalidObstacle ErrorCode = "INVALID_OBSTACLE"
)

// Error is the typed mission error carried through events and effects.
//
// Parse and load failures are converted to an Error at the boundary and
// never travel as raw faults. RawValue and Reason are set for the
// Invalid* codes; Details carries structured context for the generic code
// (e.g. the state and event of an unhandled transition).
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// RawValue is the offending input text (Invalid* codes).
	RawValue string

	// Reason is a stable tag naming what was wrong with RawValue,
	// e.g. "InvalidSize", "InvalidPosition", "InvalidDirection".
	Reason string

	// Details contains additional structured context.
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.RawValue != "" && e.Reason != "" {
		return fmt.Sprintf("%s: %s (raw=%q, reason=%s)", e.Code, e.Message, e.RawValue, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewGenericError creates an Error with the generic code.
func NewGenericError(message string) *Error {
	return &Error{Code: ErrCodeGeneric, Message: message}
}

// NewInvalidPlanetError creates an Error for an unparsable planet input.
func NewInvalidPlanetError(rawValue, reason string) *Error {
	return &Error{
		Code:     ErrCodeInvalidPlanet,
		Message:  "invalid planet description",
		RawValue: rawValue,
		Reason:   reason,
	}
}

// NewInvalidRoverError creates an Error for an unparsable rover input.
func NewInvalidRoverError(rawValue, reason string) *Error {
	return &Error{
		Code:     ErrCodeInvalidRover,
		Message:  "invalid rover description",
		RawValue: rawValue,
		Reason:   reason,
	}
}

// NewInvalidObstacleError creates an Error for an unparsable obstacle input.
func NewInvalidObstacleError(rawValue, reason string) *Error {
	return &Error{
		Code:     ErrCodeInvalidObstacle,
		Message:  "invalid obstacle description",
		RawValue: rawValue,
		Reason:   reason,
	}
}

// WrapLoadError converts an opaque source-loader failure into a typed Error.
// The original error text is preserved in the message; the cause is kept in
// Details for diagnostics.
func WrapLoadError(err error) *Error {
	return &Error{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("mission load failed: %v", err),
		Details: map[string]string{"cause": err.Error()},
	}
}

// AsMissionError extracts an *Error from an error chain.
// Returns nil if the chain contains no mission Error.
func AsMissionError(err error) *Error {
	var me *Error
	if errors.As(err, &me) {
		return me
	}
	return nil
}
