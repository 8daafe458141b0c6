package models

// AxisSpec holds optional bounds and title for one axis.
type AxisSpec struct {
	// Min is the lower bound (nil leaves it to the application).
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	// Max is the upper bound (nil leaves it to the application).
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	// Title is the axis title. Ignored on the secondary value axis.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// SeriesSpec describes one category-mode series.
type SeriesSpec struct {
	// Name is the series display name, unique within a chart.
	Name string `json:"name"`
	// ChartType is the plot type of this series.
	ChartType ChartType `json:"chart_type"`
	// Axis is the value axis the series is plotted against.
	Axis AxisPosition `json:"axis"`
	// ValuesFormula is the sheet-qualified absolute values range.
	ValuesFormula string `json:"values_formula"`
	// Color is a 6-digit upper-case hex color without '#', or empty.
	Color string `json:"color,omitempty"`
	// Marker is the marker shape; only line series use it.
	Marker MarkerStyle `json:"marker"`
}

// ScatterSeriesSpec describes one X/Y scatter series.
type ScatterSeriesSpec struct {
	Name     string `json:"name"`
	XFormula string `json:"x_formula"`
	YFormula string `json:"y_formula"`
	Color    string `json:"color,omitempty"`
}

// ChartSpec is the validated description of one chart, ready for XML generation.
type ChartSpec struct {
	// Anchor is the placement box on the sheet.
	Anchor Anchor `json:"anchor"`
	// AnchorRef is the anchor string the chart was created with (e.g. "E1:M20").
	AnchorRef string `json:"anchor_ref"`
	// CategoryFormula is the absolute category range; empty in scatter mode.
	CategoryFormula string `json:"category_formula,omitempty"`
	// Series lists category-mode series in draw and legend order.
	Series []SeriesSpec `json:"series,omitempty"`
	// ScatterSeries lists scatter-mode series in draw and legend order.
	ScatterSeries []ScatterSeriesSpec `json:"scatter_series,omitempty"`
	// Title is the chart title, empty for none.
	Title string `json:"title,omitempty"`
	// ShowLegend emits a bottom legend.
	ShowLegend bool `json:"show_legend"`
	// ShowDataLabels emits value labels on every series.
	ShowDataLabels bool `json:"show_data_labels"`
	// StyleID is the built-in chart style (1-48), 0 when unset.
	StyleID int `json:"style_id,omitempty"`
	// YAxis is the primary value axis.
	YAxis AxisSpec `json:"y_axis"`
	// SecondaryYAxis is the secondary value axis; its title is never rendered.
	SecondaryYAxis AxisSpec `json:"secondary_y_axis"`
	// XAxis is the category axis, or the X value axis in scatter mode. Min and max are never rendered.
	XAxis AxisSpec `json:"x_axis"`
}

// IsScatter reports whether the chart renders in scatter mode.
func (s *ChartSpec) IsScatter() bool {
	return len(s.ScatterSeries) > 0
}

// HasSecondary reports whether any series is plotted on the secondary axis.
func (s *ChartSpec) HasSecondary() bool {
	for _, ser := range s.Series {
		if ser.Axis == Secondary {
			return true
		}
	}
	return false
}

// PieOnly reports whether every category series is a pie.
func (s *ChartSpec) PieOnly() bool {
	if len(s.Series) == 0 {
		return false
	}
	for _, ser := range s.Series {
		if ser.ChartType != Pie {
			return false
		}
	}
	return true
}
