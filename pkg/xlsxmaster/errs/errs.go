// Package errs defines the error taxonomy shared by the xlsxmaster packages.
//
// Every error returned by the library wraps exactly one of the sentinels below,
// so callers can classify failures with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat indicates a malformed anchor or cell reference.
	ErrFormat = errors.New("invalid format")
	// ErrRangeOrder indicates an anchor whose end cell precedes its start cell.
	ErrRangeOrder = errors.New("reversed range")
	// ErrArgument indicates a blank required string, a malformed color or an out-of-range value.
	ErrArgument = errors.New("invalid argument")
	// ErrNotFound indicates a series or sheet name that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState indicates a chart configuration that cannot be rendered.
	ErrInvalidState = errors.New("invalid chart state")
	// ErrStructural indicates a package missing a part or manifest entry it must have.
	ErrStructural = errors.New("malformed package")
)

// Formatf wraps ErrFormat.
func Formatf(format string, args ...any) error {
	return wrap(ErrFormat, format, args...)
}

// RangeOrderf wraps ErrRangeOrder.
func RangeOrderf(format string, args ...any) error {
	return wrap(ErrRangeOrder, format, args...)
}

// Argumentf wraps ErrArgument.
func Argumentf(format string, args ...any) error {
	return wrap(ErrArgument, format, args...)
}

// NotFoundf wraps ErrNotFound.
func NotFoundf(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

// InvalidStatef wraps ErrInvalidState.
func InvalidStatef(format string, args ...any) error {
	return wrap(ErrInvalidState, format, args...)
}

// Structuralf wraps ErrStructural.
func Structuralf(format string, args ...any) error {
	return wrap(ErrStructural, format, args...)
}

func wrap(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
