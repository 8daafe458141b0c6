package config

import (
	"strings"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
)

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Messages, "; ")
}

// Unwrap classifies validation failures as argument errors.
func (e *ValidationError) Unwrap() error {
	return errs.ErrArgument
}
