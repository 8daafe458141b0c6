package xlsxmaster

import (
	"strings"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/cellref"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/injector"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/models"
)

// Style ids accepted by SetChartStyle.
const (
	MinChartStyle = 1
	MaxChartStyle = 48
)

// ChartBuilder accumulates the configuration of one chart.
//
// Setters only check their own arguments. The first failure is kept and
// returned by Err and Build; later setters still apply. Cross-field checks
// run in Build so setters can be called in any order.
type ChartBuilder struct {
	sheet  string
	anchor string

	categoryRange  string
	title          string
	showLegend     bool
	showDataLabels bool
	styleID        int

	series  []models.SeriesSpec
	scatter []models.ScatterSeriesSpec

	yAxis          models.AxisSpec
	secondaryYAxis models.AxisSpec
	xAxis          models.AxisSpec

	err error
}

// NewChartBuilder creates a builder for a chart placed on sheet at anchor
// (e.g. "E1:M20"). The legend is shown by default.
func NewChartBuilder(sheet, anchor string) *ChartBuilder {
	b := &ChartBuilder{sheet: sheet, anchor: anchor, showLegend: true}
	if strings.TrimSpace(sheet) == "" {
		b.fail(errs.Argumentf("sheet name must not be blank"))
	}
	if strings.TrimSpace(anchor) == "" {
		b.fail(errs.Argumentf("anchor must not be blank"))
	}
	return b
}

// Sheet returns the sheet the chart is placed on.
func (b *ChartBuilder) Sheet() string { return b.sheet }

// Anchor returns the anchor string the builder was created with.
func (b *ChartBuilder) Anchor() string { return b.anchor }

// Err returns the first setter failure, if any.
func (b *ChartBuilder) Err() error { return b.err }

func (b *ChartBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// SeriesOption customizes a series added with AddSeries or AddScatterSeries.
type SeriesOption func(*seriesConfig)

type seriesConfig struct {
	chartType models.ChartType
	axis      models.AxisPosition
	color     string
	marker    models.MarkerStyle
}

// AsType sets the plot type of a category series. The default is Column.
func AsType(t models.ChartType) SeriesOption {
	return func(c *seriesConfig) { c.chartType = t }
}

// OnSecondaryAxis plots a category series against the secondary value axis.
func OnSecondaryAxis() SeriesOption {
	return func(c *seriesConfig) { c.axis = models.Secondary }
}

// WithColor sets the series color ("FF0000" or "#ff0000").
func WithColor(hex string) SeriesOption {
	return func(c *seriesConfig) { c.color = hex }
}

// WithMarker sets the marker of a line series.
func WithMarker(m models.MarkerStyle) SeriesOption {
	return func(c *seriesConfig) { c.marker = m }
}

// SetCategoryRange sets the category (X axis) range, e.g. "A2:A13". It is
// converted to an absolute formula in Build.
func (b *ChartBuilder) SetCategoryRange(rng string) *ChartBuilder {
	b.categoryRange = rng
	return b
}

// AddSeries adds a category series whose values live in valuesRange on the
// builder's sheet (or on the sheet named in the range).
func (b *ChartBuilder) AddSeries(name, valuesRange string, opts ...SeriesOption) *ChartBuilder {
	if strings.TrimSpace(name) == "" {
		b.fail(errs.Argumentf("series name must not be blank"))
		return b
	}
	if strings.TrimSpace(valuesRange) == "" {
		b.fail(errs.Argumentf("values range of series %q must not be blank", name))
		return b
	}
	if b.hasSeries(name) {
		b.fail(errs.Argumentf("series %q already exists", name))
		return b
	}

	cfg := seriesConfig{chartType: models.Column, axis: models.Primary}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.chartType.IsValid() {
		b.fail(errs.Argumentf("series %q: unknown chart type %d", name, int(cfg.chartType)))
		return b
	}
	if !cfg.marker.IsValid() {
		b.fail(errs.Argumentf("series %q: unknown marker style %d", name, int(cfg.marker)))
		return b
	}

	formula, err := cellref.AbsoluteFormula(b.sheet, valuesRange)
	if err != nil {
		b.fail(err)
		return b
	}
	color, err := normalizeColor(cfg.color, true)
	if err != nil {
		b.fail(err)
		return b
	}

	b.series = append(b.series, models.SeriesSpec{
		Name:          name,
		ChartType:     cfg.chartType,
		Axis:          cfg.axis,
		ValuesFormula: formula,
		Color:         color,
		Marker:        cfg.marker,
	})
	return b
}

// AddScatterSeries adds an X/Y scatter series. Only WithColor applies.
func (b *ChartBuilder) AddScatterSeries(name, xRange, yRange string, opts ...SeriesOption) *ChartBuilder {
	switch {
	case strings.TrimSpace(name) == "":
		b.fail(errs.Argumentf("series name must not be blank"))
		return b
	case strings.TrimSpace(xRange) == "":
		b.fail(errs.Argumentf("x range of series %q must not be blank", name))
		return b
	case strings.TrimSpace(yRange) == "":
		b.fail(errs.Argumentf("y range of series %q must not be blank", name))
		return b
	case b.hasSeries(name):
		b.fail(errs.Argumentf("series %q already exists", name))
		return b
	}

	var cfg seriesConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	xFormula, err := cellref.AbsoluteFormula(b.sheet, xRange)
	if err != nil {
		b.fail(err)
		return b
	}
	yFormula, err := cellref.AbsoluteFormula(b.sheet, yRange)
	if err != nil {
		b.fail(err)
		return b
	}
	color, err := normalizeColor(cfg.color, true)
	if err != nil {
		b.fail(err)
		return b
	}

	b.scatter = append(b.scatter, models.ScatterSeriesSpec{
		Name:     name,
		XFormula: xFormula,
		YFormula: yFormula,
		Color:    color,
	})
	return b
}

// SetTitle sets the chart title. An empty title removes it.
func (b *ChartBuilder) SetTitle(title string) *ChartBuilder {
	b.title = title
	return b
}

// ShowLegend toggles the bottom legend.
func (b *ChartBuilder) ShowLegend(show bool) *ChartBuilder {
	b.showLegend = show
	return b
}

// ShowDataLabels toggles value labels on every series.
func (b *ChartBuilder) ShowDataLabels(show bool) *ChartBuilder {
	b.showDataLabels = show
	return b
}

// SetChartStyle applies a built-in chart style (1-48).
func (b *ChartBuilder) SetChartStyle(id int) *ChartBuilder {
	if id < MinChartStyle || id > MaxChartStyle {
		b.fail(errs.Argumentf("chart style %d out of range [%d, %d]", id, MinChartStyle, MaxChartStyle))
		return b
	}
	b.styleID = id
	return b
}

// SetSeriesColor sets the color of a previously added series.
func (b *ChartBuilder) SetSeriesColor(name, hex string) *ChartBuilder {
	color, err := normalizeColor(hex, false)
	if err != nil {
		b.fail(err)
		return b
	}
	for i := range b.series {
		if b.series[i].Name == name {
			b.series[i].Color = color
			return b
		}
	}
	for i := range b.scatter {
		if b.scatter[i].Name == name {
			b.scatter[i].Color = color
			return b
		}
	}
	b.fail(errs.NotFoundf("series %q has not been added", name))
	return b
}

// SetMarkerStyle sets the marker of a previously added category series.
// Markers are only drawn on line series.
func (b *ChartBuilder) SetMarkerStyle(name string, style models.MarkerStyle) *ChartBuilder {
	if !style.IsValid() {
		b.fail(errs.Argumentf("series %q: unknown marker style %d", name, int(style)))
		return b
	}
	for i := range b.series {
		if b.series[i].Name == name {
			b.series[i].Marker = style
			return b
		}
	}
	b.fail(errs.NotFoundf("series %q has not been added", name))
	return b
}

func (b *ChartBuilder) SetYAxisMin(v float64) *ChartBuilder {
	b.yAxis.Min = &v
	return b
}

func (b *ChartBuilder) SetYAxisMax(v float64) *ChartBuilder {
	b.yAxis.Max = &v
	return b
}

func (b *ChartBuilder) SetYAxisTitle(title string) *ChartBuilder {
	b.yAxis.Title = title
	return b
}

func (b *ChartBuilder) SetSecondaryYAxisMin(v float64) *ChartBuilder {
	b.secondaryYAxis.Min = &v
	return b
}

func (b *ChartBuilder) SetSecondaryYAxisMax(v float64) *ChartBuilder {
	b.secondaryYAxis.Max = &v
	return b
}

// SetXAxisTitle titles the category axis, or the X axis of a scatter chart.
func (b *ChartBuilder) SetXAxisTitle(title string) *ChartBuilder {
	b.xAxis.Title = title
	return b
}

// Build validates the configuration and returns the chart spec.
func (b *ChartBuilder) Build() (models.ChartSpec, error) {
	if b.err != nil {
		return models.ChartSpec{}, b.err
	}

	scatterMode := len(b.scatter) > 0
	if scatterMode && len(b.series) > 0 {
		return models.ChartSpec{}, errs.InvalidStatef(
			"chart %s: scatter series and category series cannot be mixed in one chart", b.anchor)
	}
	if !scatterMode {
		if len(b.series) == 0 {
			return models.ChartSpec{}, errs.InvalidStatef(
				"chart %s: call AddSeries to add at least one series before saving", b.anchor)
		}
		if strings.TrimSpace(b.categoryRange) == "" {
			return models.ChartSpec{}, errs.InvalidStatef(
				"chart %s: call SetCategoryRange to set the category axis before saving", b.anchor)
		}
	}

	anchor, err := cellref.ParseAnchor(b.anchor)
	if err != nil {
		return models.ChartSpec{}, err
	}

	spec := models.ChartSpec{
		Anchor:         anchor,
		AnchorRef:      b.anchor,
		Series:         append([]models.SeriesSpec(nil), b.series...),
		ScatterSeries:  append([]models.ScatterSeriesSpec(nil), b.scatter...),
		Title:          b.title,
		ShowLegend:     b.showLegend,
		ShowDataLabels: b.showDataLabels,
		StyleID:        b.styleID,
		YAxis:          b.yAxis,
		SecondaryYAxis: b.secondaryYAxis,
		XAxis:          b.xAxis,
	}
	if !scatterMode {
		if spec.CategoryFormula, err = cellref.AbsoluteFormula(b.sheet, b.categoryRange); err != nil {
			return models.ChartSpec{}, err
		}
	}
	return spec, nil
}

// InjectInto builds the chart and injects it into a saved package.
func (b *ChartBuilder) InjectInto(data []byte) ([]byte, error) {
	return b.injectInto(data, DefaultOptions().injectorOptions(nil))
}

func (b *ChartBuilder) injectInto(data []byte, opts injector.Options) ([]byte, error) {
	spec, err := b.Build()
	if err != nil {
		return nil, NewChartError(b.sheet, b.anchor, "build", err)
	}
	out, err := injector.Inject(data, b.sheet, &spec, opts)
	if err != nil {
		return nil, NewChartError(b.sheet, b.anchor, "inject", err)
	}
	return out, nil
}

func (b *ChartBuilder) hasSeries(name string) bool {
	for _, s := range b.series {
		if s.Name == name {
			return true
		}
	}
	for _, s := range b.scatter {
		if s.Name == name {
			return true
		}
	}
	return false
}

// normalizeColor strips a leading '#', upper-cases and checks for six hex
// digits. An empty color is accepted only when optional is set.
func normalizeColor(hex string, optional bool) (string, error) {
	if strings.TrimSpace(hex) == "" {
		if optional {
			return "", nil
		}
		return "", errs.Argumentf("color must not be blank")
	}
	clean := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	if len(clean) != 6 {
		return "", errs.Argumentf("color %q must be 6 hex digits", hex)
	}
	for _, c := range clean {
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'F') {
			return "", errs.Argumentf("color %q is not a hex color", hex)
		}
	}
	return clean, nil
}
