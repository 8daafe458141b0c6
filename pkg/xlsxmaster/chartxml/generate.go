// Package chartxml renders DrawingML chart parts (xl/charts/chartN.xml).
package chartxml

import (
	"bytes"
	"encoding/xml"
	"strconv"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/models"
)

// Header is the XML declaration written at the top of every generated part.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Axis ids. The primary pair is shared by every primary-axis plot, the
// secondary pair by every secondary-axis plot. Scatter charts use their own pair.
const (
	PrimaryCatAxID   = 1
	PrimaryValAxID   = 2
	SecondaryCatAxID = 3
	SecondaryValAxID = 4
	ScatterXAxID     = 201
	ScatterYAxID     = 202
)

const (
	markerSize = 5
	titleLang  = "en-US"
)

// Generate renders spec as a complete chart part.
func Generate(spec *models.ChartSpec) ([]byte, error) {
	if spec == nil {
		return nil, errs.InvalidStatef("chart spec is nil")
	}
	if len(spec.Series) > 0 && len(spec.ScatterSeries) > 0 {
		return nil, errs.InvalidStatef("chart %s mixes scatter and category series", spec.AnchorRef)
	}
	if len(spec.Series) == 0 && len(spec.ScatterSeries) == 0 {
		return nil, errs.InvalidStatef("chart %s has no series", spec.AnchorRef)
	}

	for _, s := range spec.Series {
		if !s.Marker.IsValid() {
			return nil, errs.InvalidStatef("chart %s: series %q has unknown marker style %d", spec.AnchorRef, s.Name, int(s.Marker))
		}
	}

	chart, err := buildChart(spec)
	if err != nil {
		return nil, err
	}
	space := xlsxChartSpace{
		XMLNSc:         NamespaceChart,
		XMLNSa:         NamespaceDrawingML,
		XMLNSr:         NamespaceRelationships,
		Date1904:       attrBool{Val: false},
		RoundedCorners: attrBool{Val: false},
		Chart:          chart,
	}
	if spec.StyleID > 0 {
		space.Style = &attrInt{Val: spec.StyleID}
	}

	var buf bytes.Buffer
	buf.WriteString(Header)
	if err := xml.NewEncoder(&buf).Encode(space); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildChart(spec *models.ChartSpec) (xlsxChart, error) {
	chart := xlsxChart{
		Title:            buildTitle(spec.Title),
		AutoTitleDeleted: attrBool{Val: spec.Title == ""},
		PlotVisOnly:      attrBool{Val: true},
		DispBlanksAs:     attrString{Val: "gap"},
		ShowDLblsOverMax: attrBool{Val: false},
	}

	if spec.IsScatter() {
		chart.PlotArea = buildScatterPlotArea(spec)
	} else {
		area, err := buildCategoryPlotArea(spec)
		if err != nil {
			return xlsxChart{}, err
		}
		chart.PlotArea = area
	}

	if spec.ShowLegend {
		chart.Legend = &xlsxLegend{
			LegendPos: attrString{Val: "b"},
			Overlay:   attrBool{Val: false},
		}
	}
	return chart, nil
}

// buildCategoryPlotArea partitions series by (axis, chart type) and emits one
// plot per group, primary groups first, each in first-occurrence order.
func buildCategoryPlotArea(spec *models.ChartSpec) (xlsxPlotArea, error) {
	var area xlsxPlotArea

	for _, g := range groupSeries(spec.Series, models.Primary) {
		plot, err := buildPlot(g, spec, PrimaryCatAxID, PrimaryValAxID)
		if err != nil {
			return xlsxPlotArea{}, err
		}
		area.Plots = append(area.Plots, plot)
	}
	for _, g := range groupSeries(spec.Series, models.Secondary) {
		plot, err := buildPlot(g, spec, SecondaryCatAxID, SecondaryValAxID)
		if err != nil {
			return xlsxPlotArea{}, err
		}
		area.Plots = append(area.Plots, plot)
	}

	if spec.PieOnly() {
		return area, nil
	}

	area.CatAx = append(area.CatAx, buildCatAx(PrimaryCatAxID, PrimaryValAxID, spec.XAxis.Title, false))
	area.ValAx = append(area.ValAx, buildValAx(valAxOptions{
		id:      PrimaryValAxID,
		crossAx: PrimaryCatAxID,
		pos:     "l",
		min:     spec.YAxis.Min,
		max:     spec.YAxis.Max,
		title:   spec.YAxis.Title,
		crosses: "autoZero",
	}))

	if spec.HasSecondary() {
		area.CatAx = append(area.CatAx, buildCatAx(SecondaryCatAxID, SecondaryValAxID, "", true))
		area.ValAx = append(area.ValAx, buildValAx(valAxOptions{
			id:      SecondaryValAxID,
			crossAx: SecondaryCatAxID,
			pos:     "r",
			min:     spec.SecondaryYAxis.Min,
			max:     spec.SecondaryYAxis.Max,
			crosses: "max",
		}))
	}
	return area, nil
}

func buildScatterPlotArea(spec *models.ChartSpec) xlsxPlotArea {
	plot := xlsxPlot{
		XMLName:      xml.Name{Local: "c:scatterChart"},
		ScatterStyle: &attrString{Val: "lineMarker"},
		VaryColors:   attrBool{Val: false},
		AxID:         []attrInt{{Val: ScatterXAxID}, {Val: ScatterYAxID}},
	}
	for i, s := range spec.ScatterSeries {
		ser := newSeries(i, s.Name, s.Color, true, spec.ShowDataLabels)
		ser.XVal = &xlsxDataRef{NumRef: &xlsxRef{F: s.XFormula}}
		ser.YVal = &xlsxDataRef{NumRef: &xlsxRef{F: s.YFormula}}
		plot.Ser = append(plot.Ser, ser)
	}

	return xlsxPlotArea{
		Plots: []xlsxPlot{plot},
		ValAx: []xlsxValAx{
			buildValAx(valAxOptions{
				id:      ScatterXAxID,
				crossAx: ScatterYAxID,
				pos:     "b",
				title:   spec.XAxis.Title,
				crosses: "autoZero",
			}),
			buildValAx(valAxOptions{
				id:      ScatterYAxID,
				crossAx: ScatterXAxID,
				pos:     "l",
				min:     spec.YAxis.Min,
				max:     spec.YAxis.Max,
				title:   spec.YAxis.Title,
				crosses: "autoZero",
			}),
		},
	}
}

type indexedSeries struct {
	index  int
	series models.SeriesSpec
}

type seriesGroup struct {
	chartType models.ChartType
	entries   []indexedSeries
}

func groupSeries(series []models.SeriesSpec, axis models.AxisPosition) []seriesGroup {
	var groups []seriesGroup
	pos := make(map[models.ChartType]int)
	for i, s := range series {
		if s.Axis != axis {
			continue
		}
		g, ok := pos[s.ChartType]
		if !ok {
			g = len(groups)
			pos[s.ChartType] = g
			groups = append(groups, seriesGroup{chartType: s.ChartType})
		}
		groups[g].entries = append(groups[g].entries, indexedSeries{index: i, series: s})
	}
	return groups
}

func buildPlot(g seriesGroup, spec *models.ChartSpec, catAxID, valAxID int) (xlsxPlot, error) {
	var plot xlsxPlot
	switch g.chartType {
	case models.Bar, models.Column:
		dir := "col"
		if g.chartType == models.Bar {
			dir = "bar"
		}
		plot.XMLName = xml.Name{Local: "c:barChart"}
		plot.BarDir = &attrString{Val: dir}
		plot.Grouping = &attrString{Val: "clustered"}
	case models.Line:
		plot.XMLName = xml.Name{Local: "c:lineChart"}
		plot.Grouping = &attrString{Val: "standard"}
		plot.Marker = &attrBool{Val: true}
		plot.Smooth = &attrBool{Val: false}
	case models.Area:
		plot.XMLName = xml.Name{Local: "c:areaChart"}
		plot.Grouping = &attrString{Val: "standard"}
	case models.AreaStacked:
		plot.XMLName = xml.Name{Local: "c:areaChart"}
		plot.Grouping = &attrString{Val: "stacked"}
	case models.Pie:
		plot.XMLName = xml.Name{Local: "c:pieChart"}
		plot.VaryColors = attrBool{Val: true}
		plot.FirstSliceAng = &attrInt{Val: 0}
	default:
		return xlsxPlot{}, errs.InvalidStatef("chart %s: unknown chart type %d", spec.AnchorRef, int(g.chartType))
	}

	for _, e := range g.entries {
		s := e.series
		ser := newSeries(e.index, s.Name, s.Color, g.chartType == models.Line, spec.ShowDataLabels)
		if g.chartType == models.Line && s.Marker != models.MarkerAuto {
			ser.Marker = &xlsxMarker{
				Symbol: attrString{Val: s.Marker.String()},
				Size:   &attrInt{Val: markerSize},
			}
		}
		ser.Cat = &xlsxDataRef{StrRef: &xlsxRef{F: spec.CategoryFormula}}
		ser.Val = &xlsxDataRef{NumRef: &xlsxRef{F: s.ValuesFormula}}
		plot.Ser = append(plot.Ser, ser)
	}

	if g.chartType != models.Pie {
		plot.AxID = []attrInt{{Val: catAxID}, {Val: valAxID}}
	}
	return plot, nil
}

// newSeries fills the blocks shared by every series kind. Stroked series
// also get the color on their line, not only on the fill.
func newSeries(index int, name, color string, stroked, showLabels bool) xlsxSeries {
	ser := xlsxSeries{
		Idx:   attrInt{Val: index},
		Order: attrInt{Val: index},
		Tx:    xlsxSeriesTx{V: name},
	}
	if color != "" {
		fill := xlsxSolidFill{SrgbClr: attrString{Val: color}}
		ser.SpPr = &xlsxSpPr{SolidFill: fill}
		if stroked {
			ser.SpPr.Ln = &xlsxLine{SolidFill: fill}
		}
	}
	if showLabels {
		ser.DLbls = &xlsxDLbls{
			NumFmt:         generalFormat(),
			ShowLegendKey:  attrBool{Val: false},
			ShowVal:        attrBool{Val: true},
			ShowCatName:    attrBool{Val: false},
			ShowSerName:    attrBool{Val: false},
			ShowPercent:    attrBool{Val: false},
			ShowBubbleSize: attrBool{Val: false},
		}
	}
	return ser
}

func buildCatAx(id, crossAx int, title string, secondary bool) xlsxCatAx {
	pos := "b"
	if secondary {
		pos = "t"
	}
	return xlsxCatAx{
		AxID:          attrInt{Val: id},
		Scaling:       xlsxScaling{Orientation: attrString{Val: "minMax"}},
		Delete:        attrBool{Val: secondary},
		AxPos:         attrString{Val: pos},
		Title:         buildTitle(title),
		NumFmt:        generalFormat(),
		MajorTickMark: attrString{Val: "out"},
		MinorTickMark: attrString{Val: "none"},
		TickLblPos:    attrString{Val: "nextTo"},
		CrossAx:       attrInt{Val: crossAx},
		Crosses:       attrString{Val: "autoZero"},
		Auto:          attrBool{Val: true},
		LblAlgn:       attrString{Val: "ctr"},
	}
}

type valAxOptions struct {
	id       int
	crossAx  int
	pos      string
	min, max *float64
	title    string
	crosses  string
}

func buildValAx(o valAxOptions) xlsxValAx {
	scaling := xlsxScaling{Orientation: attrString{Val: "minMax"}}
	if o.max != nil {
		scaling.Max = &attrString{Val: formatFloat(*o.max)}
	}
	if o.min != nil {
		scaling.Min = &attrString{Val: formatFloat(*o.min)}
	}
	return xlsxValAx{
		AxID:          attrInt{Val: o.id},
		Scaling:       scaling,
		Delete:        attrBool{Val: false},
		AxPos:         attrString{Val: o.pos},
		Title:         buildTitle(o.title),
		NumFmt:        generalFormat(),
		MajorTickMark: attrString{Val: "out"},
		MinorTickMark: attrString{Val: "none"},
		TickLblPos:    attrString{Val: "nextTo"},
		CrossAx:       attrInt{Val: o.crossAx},
		Crosses:       attrString{Val: o.crosses},
		CrossBetween:  attrString{Val: "between"},
	}
}

func buildTitle(text string) *xlsxTitle {
	if text == "" {
		return nil
	}
	return &xlsxTitle{
		Tx: xlsxTitleTx{Rich: xlsxRich{
			P: xlsxP{R: xlsxR{RPr: xlsxRPr{Lang: titleLang}, T: text}},
		}},
		Overlay: attrBool{Val: false},
	}
}

func generalFormat() xlsxNumFmt {
	return xlsxNumFmt{FormatCode: "General", SourceLinked: true}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
