package models

// ChartSeries represents series metadata read back from a chart part.
type ChartSeries struct {
	// Name is the series display name.
	Name string `json:"name"`
	// NameRange is the range reference for the series name.
	NameRange string `json:"name_range,omitempty"`
	// PlotType is the plot element the series belongs to (e.g. barChart).
	PlotType string `json:"plot_type"`
	// CategoryRange is the category or X values reference.
	CategoryRange string `json:"category_range,omitempty"`
	// ValuesRange is the values or Y values reference.
	ValuesRange string `json:"values_range,omitempty"`
	// Color is the solid fill color, if any.
	Color string `json:"color,omitempty"`
}

// Chart represents chart metadata read back from a package.
type Chart struct {
	// Name is the graphic frame name (e.g. "Chart 1").
	Name string `json:"name"`
	// Part is the chart part path inside the package.
	Part string `json:"part"`
	// PlotTypes lists the plot elements in document order (e.g. ["barChart", "lineChart"]).
	PlotTypes []string `json:"plot_types"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// AutoTitleDeleted is the value of the autoTitleDeleted flag.
	AutoTitleDeleted bool `json:"auto_title_deleted"`
	// YAxisTitle is the primary Y-axis title.
	YAxisTitle string `json:"y_axis_title,omitempty"`
	// XAxisTitle is the category or X-axis title.
	XAxisTitle string `json:"x_axis_title,omitempty"`
	// YAxisRange is the primary Y-axis range [min, max] when both are set.
	YAxisRange []float64 `json:"y_axis_range,omitempty"`
	// CatAxes is the number of category axes.
	CatAxes int `json:"cat_axes"`
	// ValAxes is the number of value axes.
	ValAxes int `json:"val_axes"`
	// Legend reports whether a legend is present.
	Legend bool `json:"legend"`
	// StyleID is the chart style, 0 when absent.
	StyleID int `json:"style_id,omitempty"`
	// Series is the list of series included in the chart.
	Series []ChartSeries `json:"series"`
	// Anchor is the cell box from the drawing anchor.
	Anchor Anchor `json:"anchor"`
	// L is the left offset in pixels, estimated from default column widths.
	L int `json:"l"`
	// T is the top offset in pixels, estimated from default row heights.
	T int `json:"t"`
	// W is the estimated width in pixels.
	W int `json:"w"`
	// H is the estimated height in pixels.
	H int `json:"h"`
}
