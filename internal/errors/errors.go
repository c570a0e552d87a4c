package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitlog/internal/logger"
)

var (
	// ErrConstraintViolation is returned when a write breaks a schema rule:
	// duplicate habit name, non-positive minutes, malformed date or a log
	// pointing at a habit that does not exist.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrNotFound is returned when a habit or log id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable is returned when the store cannot be reached or a
	// connection/transaction fails underneath an operation.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Constraint wraps ErrConstraintViolation with a description of the rule that was broken
func Constraint(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConstraintViolation, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound with the kind and id that failed to resolve
func NotFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}

// Unavailable wraps err so that it matches ErrStoreUnavailable while keeping the cause
func Unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

// Violation marks a driver-reported constraint failure as ErrConstraintViolation, keeping the cause
func Violation(err error) error {
	return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
}
