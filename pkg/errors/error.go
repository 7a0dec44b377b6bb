// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, plot types, frame shapes
//   - Data/Resource errors (200-299): Column resolution and data loading failures
//   - Figure errors (300-399): Panel allocation and figure encoding errors
//   - Settings errors (400-499): Settings loading and validation errors
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeColumnNotFound, "no column matching %q", label)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeColumnNotFound) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// MissingColumnError represents an error when a required price-role column
// cannot be matched against a frame's column labels.
type MissingColumnError struct {
	Role    string   // Semantic role that failed to resolve (open, high, low, close)
	Label   string   // Label that was searched for
	Columns []string // Column labels that were available
}

// NewMissingColumnError creates a new MissingColumnError.
func NewMissingColumnError(role, label string, columns []string) *MissingColumnError {
	return &MissingColumnError{
		Role:    role,
		Label:   label,
		Columns: columns,
	}
}

// Error implements the error interface.
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("no column matching %q for role %q among [%s]",
		e.Label, e.Role, strings.Join(e.Columns, ", "))
}

// IsMissingColumnError checks if an error is a MissingColumnError.
// It uses errors.As to check the error chain.
func IsMissingColumnError(err error) bool {
	var missingErr *MissingColumnError

	return errors.As(err, &missingErr)
}

// InvalidPlotTypeError represents an error when a symbolic plot type name
// is outside the recognized enumeration.
type InvalidPlotTypeError struct {
	PlotType string // Name that failed to resolve
}

// NewInvalidPlotTypeError creates a new InvalidPlotTypeError.
func NewInvalidPlotTypeError(plotType string) *InvalidPlotTypeError {
	return &InvalidPlotTypeError{
		PlotType: plotType,
	}
}

// Error implements the error interface.
func (e *InvalidPlotTypeError) Error() string {
	return fmt.Sprintf("plot type can be either 'OHLC' or 'Candlestick', got %q", e.PlotType)
}

// IsInvalidPlotTypeError checks if an error is an InvalidPlotTypeError.
// It uses errors.As to check the error chain.
func IsInvalidPlotTypeError(err error) bool {
	var invalidErr *InvalidPlotTypeError

	return errors.As(err, &invalidErr)
}
