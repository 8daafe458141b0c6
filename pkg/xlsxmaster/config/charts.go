package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/models"
	"gopkg.in/yaml.v3"
)

// File is a chart definition file.
//
//	charts:
//	  - sheet: Sales
//	    anchor: E1:M20
//	    title: Monthly sales
//	    categories: A2:A13
//	    series:
//	      - {name: Revenue, values: B2:B13}
//	      - {name: Margin, values: C2:C13, type: line, secondary: true}
type File struct {
	Charts []Chart `yaml:"charts" validate:"required,min=1,dive"`
}

// Chart defines one chart. Either Series (with Categories) or Scatter must be set.
type Chart struct {
	Sheet          string          `yaml:"sheet" validate:"required"`
	Anchor         string          `yaml:"anchor" validate:"required"`
	Title          string          `yaml:"title"`
	Categories     string          `yaml:"categories" validate:"required_with=Series"`
	Legend         *bool           `yaml:"legend"`
	DataLabels     bool            `yaml:"data_labels"`
	Style          int             `yaml:"style" validate:"omitempty,min=1,max=48"`
	YAxis          models.AxisSpec `yaml:"y_axis"`
	SecondaryYAxis models.AxisSpec `yaml:"secondary_y_axis"`
	XAxisTitle     string          `yaml:"x_axis_title"`
	Series         []Series        `yaml:"series" validate:"required_without=Scatter,excluded_with=Scatter,dive"`
	Scatter        []Scatter       `yaml:"scatter" validate:"dive"`
}

// Series is a category series.
type Series struct {
	Name      string `yaml:"name" validate:"required"`
	Values    string `yaml:"values" validate:"required"`
	Type      string `yaml:"type" validate:"omitempty,oneof=column bar line area area_stacked pie"`
	Secondary bool   `yaml:"secondary"`
	Color     string `yaml:"color"`
	Marker    string `yaml:"marker" validate:"omitempty,oneof=auto none circle square diamond triangle"`
}

// Scatter is an X/Y series.
type Scatter struct {
	Name  string `yaml:"name" validate:"required"`
	X     string `yaml:"x" validate:"required"`
	Y     string `yaml:"y" validate:"required"`
	Color string `yaml:"color"`
}

// Load reads and validates a chart definition file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a chart definition. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.Formatf("chart config: %v", err)
	}
	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Apply registers every chart of the file on wb. It stops at the first chart
// whose settings the builder rejects.
func (f *File) Apply(wb *xlsxmaster.Workbook) error {
	for i, c := range f.Charts {
		b := wb.AddChart(c.Sheet, c.Anchor)
		if err := c.Configure(b); err != nil {
			return fmt.Errorf("charts[%d]: %w", i, xlsxmaster.NewChartError(c.Sheet, c.Anchor, "config", err))
		}
	}
	return nil
}

// Builders turns the file into unregistered builders, for use with
// xlsxmaster.ApplyCharts on an existing package.
func (f *File) Builders() ([]*xlsxmaster.ChartBuilder, error) {
	builders := make([]*xlsxmaster.ChartBuilder, 0, len(f.Charts))
	for i, c := range f.Charts {
		b := xlsxmaster.NewChartBuilder(c.Sheet, c.Anchor)
		if err := c.Configure(b); err != nil {
			return nil, fmt.Errorf("charts[%d]: %w", i, xlsxmaster.NewChartError(c.Sheet, c.Anchor, "config", err))
		}
		builders = append(builders, b)
	}
	return builders, nil
}

// Configure copies the chart definition onto b and returns b's first error.
func (c *Chart) Configure(b *xlsxmaster.ChartBuilder) error {
	if c.Categories != "" {
		b.SetCategoryRange(c.Categories)
	}

	for _, s := range c.Series {
		opts, err := s.options()
		if err != nil {
			return err
		}
		b.AddSeries(s.Name, s.Values, opts...)
	}
	for _, s := range c.Scatter {
		b.AddScatterSeries(s.Name, s.X, s.Y, xlsxmaster.WithColor(s.Color))
	}

	b.SetTitle(c.Title)
	if c.Legend != nil {
		b.ShowLegend(*c.Legend)
	}
	b.ShowDataLabels(c.DataLabels)
	if c.Style != 0 {
		b.SetChartStyle(c.Style)
	}

	if c.YAxis.Min != nil {
		b.SetYAxisMin(*c.YAxis.Min)
	}
	if c.YAxis.Max != nil {
		b.SetYAxisMax(*c.YAxis.Max)
	}
	if c.YAxis.Title != "" {
		b.SetYAxisTitle(c.YAxis.Title)
	}
	if c.SecondaryYAxis.Min != nil {
		b.SetSecondaryYAxisMin(*c.SecondaryYAxis.Min)
	}
	if c.SecondaryYAxis.Max != nil {
		b.SetSecondaryYAxisMax(*c.SecondaryYAxis.Max)
	}
	if c.XAxisTitle != "" {
		b.SetXAxisTitle(c.XAxisTitle)
	}

	return b.Err()
}

func (s Series) options() ([]xlsxmaster.SeriesOption, error) {
	var opts []xlsxmaster.SeriesOption
	if s.Type != "" {
		var t models.ChartType
		if err := t.UnmarshalText([]byte(s.Type)); err != nil {
			return nil, errs.Argumentf("series %q: %v", s.Name, err)
		}
		opts = append(opts, xlsxmaster.AsType(t))
	}
	if s.Marker != "" {
		var m models.MarkerStyle
		if err := m.UnmarshalText([]byte(s.Marker)); err != nil {
			return nil, errs.Argumentf("series %q: %v", s.Name, err)
		}
		opts = append(opts, xlsxmaster.WithMarker(m))
	}
	if s.Secondary {
		opts = append(opts, xlsxmaster.OnSecondaryAxis())
	}
	if s.Color != "" {
		opts = append(opts, xlsxmaster.WithColor(s.Color))
	}
	return opts, nil
}
