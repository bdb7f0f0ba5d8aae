// Package errors provides structured error types and exit codes for the
// conformance driver.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the driver CLI.
const (
	ExitSuccess     = 0 // All executed cases passed
	ExitTestFailure = 1 // One or more cases failed
	ExitConfigError = 2 // Exception list or flag error
	ExitCorpusError = 3 // Corpus structure error (unexpected directory entry, unreadable fixture)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindAssertion ErrorKind = iota
	KindConstruction
	KindStructural
	KindConfig
)

// DriverError is the base error type for the conformance driver.
type DriverError struct {
	Kind    ErrorKind
	Suite   string // Suite name if applicable
	ID      string // Test identifier if applicable
	Message string
	Cause   error // Underlying error
}

func (e *DriverError) Error() string {
	switch {
	case e.Suite != "" && e.ID != "":
		return fmt.Sprintf("[%s] %s: %s", e.Suite, e.ID, e.Message)
	case e.ID != "":
		return fmt.Sprintf("%s: %s", e.ID, e.Message)
	default:
		return e.Message
	}
}

func (e *DriverError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *DriverError) ExitCode() int {
	switch e.Kind {
	case KindConfig:
		return ExitConfigError
	case KindStructural:
		return ExitCorpusError
	default:
		return ExitTestFailure
	}
}

// Assertion creates an assertion-mismatch error.
func Assertion(message string) *DriverError {
	return &DriverError{
		Kind:    KindAssertion,
		Message: message,
	}
}

// Assertionf creates an assertion-mismatch error with formatting.
func Assertionf(format string, args ...interface{}) *DriverError {
	return Assertion(fmt.Sprintf(format, args...))
}

// Construction creates a schema/options construction error.
func Construction(message string) *DriverError {
	return &DriverError{
		Kind:    KindConstruction,
		Message: message,
	}
}

// Constructionf creates a construction error with formatting.
func Constructionf(format string, args ...interface{}) *DriverError {
	return Construction(fmt.Sprintf(format, args...))
}

// Structural creates a corpus-structure error.
func Structural(message string) *DriverError {
	return &DriverError{
		Kind:    KindStructural,
		Message: message,
	}
}

// Structuralf creates a corpus-structure error with formatting.
func Structuralf(format string, args ...interface{}) *DriverError {
	return Structural(fmt.Sprintf(format, args...))
}

// Config creates a configuration error.
func Config(message string) *DriverError {
	return &DriverError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a configuration error with formatting.
func Configf(format string, args ...interface{}) *DriverError {
	return Config(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context, preserving its kind when the
// wrapped error is itself a DriverError.
func Wrap(err error, message string) *DriverError {
	kind := KindAssertion
	if de, ok := err.(*DriverError); ok {
		kind = de.Kind
	}
	return &DriverError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// At attaches suite and identifier context to an error.
func At(err *DriverError, suite, id string) *DriverError {
	err.Suite = suite
	err.ID = id
	return err
}

// GetExitCode returns the exit code for an error. Wrapped and joined errors
// resolve through the first DriverError they carry.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var de *DriverError
	if errors.As(err, &de) {
		return de.ExitCode()
	}
	return ExitTestFailure
}
