package xlsxmaster

import (
	"fmt"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
)

// Error sentinels, re-exported for callers that only import this package.
var (
	ErrFormat       = errs.ErrFormat
	ErrRangeOrder   = errs.ErrRangeOrder
	ErrArgument     = errs.ErrArgument
	ErrNotFound     = errs.ErrNotFound
	ErrInvalidState = errs.ErrInvalidState
	ErrStructural   = errs.ErrStructural
)

// ChartError tags a failure with the chart it happened on.
type ChartError struct {
	Sheet  string
	Anchor string
	Step   string // "build", "inject"
	Err    error
}

func (e *ChartError) Error() string {
	return fmt.Sprintf("chart %s on sheet %q (%s): %v", e.Anchor, e.Sheet, e.Step, e.Err)
}

func (e *ChartError) Unwrap() error {
	return e.Err
}

// NewChartError creates a new ChartError.
func NewChartError(sheet, anchor, step string, err error) *ChartError {
	return &ChartError{
		Sheet:  sheet,
		Anchor: anchor,
		Step:   step,
		Err:    err,
	}
}
