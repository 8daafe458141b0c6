// Package xlsxmaster adds native charts to xlsx packages built with excelize.
package xlsxmaster

import (
	"log/slog"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/injector"
)

// EditAs controls how a chart anchor behaves when cells are resized.
type EditAs string

const (
	// EditAsOneCell moves the chart with its top-left cell but keeps its size.
	EditAsOneCell EditAs = injector.EditAsOneCell
	// EditAsTwoCell moves and resizes the chart with its cells.
	EditAsTwoCell EditAs = injector.EditAsTwoCell
	// EditAsAbsolute pins the chart regardless of the cells.
	EditAsAbsolute EditAs = injector.EditAsAbsolute
)

// Options configures chart injection.
type Options struct {
	// Logger receives debug records. If nil, slog.Default() is used.
	Logger *slog.Logger
	// EditAs is the anchor mode of injected charts.
	EditAs EditAs
}

// DefaultOptions returns default injection options.
func DefaultOptions() Options {
	return Options{
		EditAs: EditAsOneCell,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) injectorOptions(logger *slog.Logger) injector.Options {
	return injector.Options{
		Logger: logger,
		EditAs: string(o.EditAs),
	}
}
