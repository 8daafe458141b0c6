package models

import (
	"fmt"
	"strings"
)

// ChartType is the plot type of a category-mode series.
type ChartType int

const (
	// Column draws vertical bars.
	Column ChartType = iota
	// Bar draws horizontal bars.
	Bar
	// Line draws a line with optional markers.
	Line
	// Area draws a filled area with standard grouping.
	Area
	// AreaStacked draws filled areas stacked on each other.
	AreaStacked
	// Pie draws a pie; pie series never bind to axes.
	Pie
)

var chartTypeNames = map[ChartType]string{
	Column:      "column",
	Bar:         "bar",
	Line:        "line",
	Area:        "area",
	AreaStacked: "area_stacked",
	Pie:         "pie",
}

// IsValid reports whether t is one of the defined chart types.
func (t ChartType) IsValid() bool {
	_, ok := chartTypeNames[t]
	return ok
}

func (t ChartType) String() string {
	if name, ok := chartTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ChartType(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t ChartType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("unknown chart type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case-insensitive
// and accepts "areastacked" and "area-stacked" as spellings of area_stacked.
func (t *ChartType) UnmarshalText(text []byte) error {
	key := strings.ToLower(strings.TrimSpace(string(text)))
	key = strings.ReplaceAll(key, "-", "_")
	if key == "areastacked" {
		key = "area_stacked"
	}
	for ct, name := range chartTypeNames {
		if name == key {
			*t = ct
			return nil
		}
	}
	return fmt.Errorf("unknown chart type %q", string(text))
}

// AxisPosition selects the value axis a series is plotted against.
type AxisPosition int

const (
	// Primary is the left value axis.
	Primary AxisPosition = iota
	// Secondary is the right value axis.
	Secondary
)

func (p AxisPosition) String() string {
	if p == Secondary {
		return "secondary"
	}
	return "primary"
}

// MarkerStyle is the marker shape of a line series.
type MarkerStyle int

const (
	// MarkerAuto leaves the marker to the spreadsheet application.
	MarkerAuto MarkerStyle = iota
	MarkerNone
	MarkerCircle
	MarkerSquare
	MarkerDiamond
	MarkerTriangle
)

var markerNames = map[MarkerStyle]string{
	MarkerAuto:     "auto",
	MarkerNone:     "none",
	MarkerCircle:   "circle",
	MarkerSquare:   "square",
	MarkerDiamond:  "diamond",
	MarkerTriangle: "triangle",
}

// IsValid reports whether m is one of the defined marker styles.
func (m MarkerStyle) IsValid() bool {
	_, ok := markerNames[m]
	return ok
}

// String returns the DrawingML marker symbol name.
func (m MarkerStyle) String() string {
	if name, ok := markerNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MarkerStyle(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m MarkerStyle) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("unknown marker style %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MarkerStyle) UnmarshalText(text []byte) error {
	key := strings.ToLower(strings.TrimSpace(string(text)))
	for style, name := range markerNames {
		if name == key {
			*m = style
			return nil
		}
	}
	return fmt.Errorf("unknown marker style %q", string(text))
}
