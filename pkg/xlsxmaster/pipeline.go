package xlsxmaster

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/injector"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/models"
)

// ApplyCharts injects every builder's chart into data with default options.
func ApplyCharts(data []byte, builders ...*ChartBuilder) ([]byte, error) {
	return ApplyChartsWithOptions(data, DefaultOptions(), builders...)
}

// ApplyChartsWithOptions injects the charts in order, each injection working
// on the previous one's output. All builders are validated before the package
// is touched. On failure nothing is returned; the error is a *ChartError
// naming the chart that failed.
func ApplyChartsWithOptions(data []byte, opts Options, builders ...*ChartBuilder) ([]byte, error) {
	logger := opts.logger().With(slog.String("run_id", uuid.NewString()))

	specs := make([]models.ChartSpec, len(builders))
	for i, b := range builders {
		spec, err := b.Build()
		if err != nil {
			return nil, NewChartError(b.sheet, b.anchor, "build", err)
		}
		specs[i] = spec
	}

	logger.Debug("applying charts", slog.Int("count", len(builders)))

	current := data
	for i, b := range builders {
		out, res, err := injector.InjectWithResult(current, b.sheet, &specs[i], opts.injectorOptions(logger))
		if err != nil {
			logger.Debug("chart injection failed",
				slog.Int("index", i),
				slog.String("sheet", b.sheet),
				slog.String("anchor", b.anchor),
				slog.String("error", err.Error()),
			)
			return nil, NewChartError(b.sheet, b.anchor, "inject", err)
		}
		logger.Debug("chart applied",
			slog.Int("index", i),
			slog.String("chart", res.ChartPart),
		)
		current = out
	}

	return current, nil
}
