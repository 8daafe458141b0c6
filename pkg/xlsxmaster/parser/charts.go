package parser

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/cellref"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/chartxml"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/models"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/opc"
)

// PlotTypes lists the plot elements recognized inside c:plotArea.
var PlotTypes = map[string]bool{
	"areaChart":      true,
	"area3DChart":    true,
	"barChart":       true,
	"bar3DChart":     true,
	"bubbleChart":    true,
	"doughnutChart":  true,
	"lineChart":      true,
	"line3DChart":    true,
	"ofPieChart":     true,
	"pieChart":       true,
	"pie3DChart":     true,
	"radarChart":     true,
	"scatterChart":   true,
	"stockChart":     true,
	"surfaceChart":   true,
	"surface3DChart": true,
}

// ExtractCharts walks workbook, sheets, drawings and charts and reports the
// charts of every worksheet. A relationship that points at a missing part
// wraps errs.ErrStructural.
func ExtractCharts(pkg *opc.Package) (*models.WorkbookCharts, error) {
	sheets, err := pkg.Sheets()
	if err != nil {
		return nil, err
	}

	out := &models.WorkbookCharts{
		SheetOrder: make([]string, 0, len(sheets)),
		Sheets:     make(map[string]models.SheetCharts, len(sheets)),
	}
	for _, sheet := range sheets {
		out.SheetOrder = append(out.SheetOrder, sheet.Name)
		if sheet.Part == "" || !pkg.Has(sheet.Part) {
			out.Sheets[sheet.Name] = models.SheetCharts{}
			continue
		}

		sc, err := extractSheetCharts(pkg, sheet.Part)
		if err != nil {
			return nil, err
		}
		out.Sheets[sheet.Name] = sc
	}

	return out, nil
}

func extractSheetCharts(pkg *opc.Package, sheetPart string) (models.SheetCharts, error) {
	var sc models.SheetCharts

	rels, _, err := pkg.ReadRels(sheetPart)
	if err != nil {
		return sc, err
	}
	rel, ok := rels.FirstOfType(opc.RelTypeDrawing)
	if !ok || rel.External() {
		return sc, nil
	}

	sc.Drawing = opc.ResolveTarget(sheetPart, rel.Target)
	if !pkg.Has(sc.Drawing) {
		return sc, errs.Structuralf("%s: drawing %s is missing", sheetPart, sc.Drawing)
	}
	drawingXML, err := pkg.ReadPart(sc.Drawing)
	if err != nil {
		return sc, err
	}
	frames, err := parseDrawingFrames(drawingXML)
	if err != nil {
		return sc, err
	}
	if len(frames) == 0 {
		return sc, nil
	}

	drawingRels, _, err := pkg.ReadRels(sc.Drawing)
	if err != nil {
		return sc, err
	}
	for _, frame := range frames {
		chartRel, ok := drawingRels.Find(frame.relID)
		if !ok || chartRel.Type != opc.RelTypeChart {
			return sc, errs.Structuralf("%s: chart relationship %s is missing", sc.Drawing, frame.relID)
		}
		chartPart := opc.ResolveTarget(sc.Drawing, chartRel.Target)
		if !pkg.Has(chartPart) {
			return sc, errs.Structuralf("%s: chart %s is missing", sc.Drawing, chartPart)
		}
		chartXML, err := pkg.ReadPart(chartPart)
		if err != nil {
			return sc, err
		}

		chart, err := ParseChartXML(chartXML)
		if err != nil {
			return sc, errs.Structuralf("%s: %v", chartPart, err)
		}
		chart.Name = frame.name
		chart.Part = chartPart
		chart.Anchor = frame.anchor
		chart.L, chart.T, chart.W, chart.H = cellref.AnchorPixels(frame.anchor)
		sc.Charts = append(sc.Charts, *chart)
	}

	return sc, nil
}

// axisInfo is what the read-back keeps of a c:catAx or c:valAx.
type axisInfo struct {
	pos      string
	title    string
	min, max *float64
}

// ParseChartXML parses a chart part. Frame-level fields (name, part, anchor)
// are left for the caller.
func ParseChartXML(data []byte) (*models.Chart, error) {
	chart := &models.Chart{}
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Space != chartxml.NamespaceChart {
			continue
		}
		switch se.Name.Local {
		case "style":
			chart.StyleID, _ = strconv.Atoi(attrValue(se, "val"))
		case "chart":
			if err := parseChartElement(decoder, chart); err != nil {
				return nil, err
			}
		}
	}

	if len(chart.PlotTypes) == 0 {
		return nil, errs.Structuralf("chart has no plot area")
	}
	return chart, nil
}

func parseChartElement(decoder *xml.Decoder, chart *models.Chart) error {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "title":
				if chart.Title, err = parseTitle(decoder); err != nil {
					return err
				}
				depth--
			case "autoTitleDeleted":
				chart.AutoTitleDeleted = boolValue(t)
			case "legend":
				chart.Legend = true
				if err := decoder.Skip(); err != nil {
					return err
				}
				depth--
			case "plotArea":
				if err := parsePlotArea(decoder, chart); err != nil {
					return err
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// parseTitle concatenates the runs of a rich-text title.
func parseTitle(decoder *xml.Decoder) (string, error) {
	var title strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				txt, err := readElementText(decoder)
				if err != nil {
					return "", err
				}
				title.WriteString(txt)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return strings.TrimSpace(title.String()), nil
}

func parsePlotArea(decoder *xml.Decoder, chart *models.Chart) error {
	var valAxes []axisInfo
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch {
			case PlotTypes[t.Name.Local]:
				chart.PlotTypes = append(chart.PlotTypes, t.Name.Local)
				series, err := parsePlot(decoder, t.Name.Local)
				if err != nil {
					return err
				}
				chart.Series = append(chart.Series, series...)
				depth--
			case t.Name.Local == "catAx" || t.Name.Local == "dateAx":
				ax, err := parseAxis(decoder)
				if err != nil {
					return err
				}
				chart.CatAxes++
				if ax.pos == "b" && chart.XAxisTitle == "" {
					chart.XAxisTitle = ax.title
				}
				depth--
			case t.Name.Local == "valAx":
				ax, err := parseAxis(decoder)
				if err != nil {
					return err
				}
				chart.ValAxes++
				valAxes = append(valAxes, ax)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	for _, ax := range valAxes {
		switch ax.pos {
		case "l":
			chart.YAxisTitle = ax.title
			if ax.min != nil && ax.max != nil {
				chart.YAxisRange = []float64{*ax.min, *ax.max}
			}
		case "b":
			if chart.XAxisTitle == "" {
				chart.XAxisTitle = ax.title
			}
		}
	}
	return nil
}

func parsePlot(decoder *xml.Decoder, plotType string) ([]models.ChartSeries, error) {
	var series []models.ChartSeries
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "ser" {
				s, err := parseSeries(decoder)
				if err != nil {
					return nil, err
				}
				s.PlotType = plotType
				series = append(series, s)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return series, nil
}

func parseSeries(decoder *xml.Decoder) (models.ChartSeries, error) {
	var s models.ChartSeries
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return s, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "tx":
				if s.Name, s.NameRange, err = parseSeriesName(decoder); err != nil {
					return s, err
				}
				depth--
			case "spPr":
				if s.Color, err = parseFillColor(decoder); err != nil {
					return s, err
				}
				depth--
			case "cat", "xVal":
				if s.CategoryRange, err = parseFormula(decoder); err != nil {
					return s, err
				}
				depth--
			case "val", "yVal":
				if s.ValuesRange, err = parseFormula(decoder); err != nil {
					return s, err
				}
				depth--
			default:
				// Markers, labels and extensions carry their own spPr and
				// formulas; none of them describe the series itself.
				if err := decoder.Skip(); err != nil {
					return s, err
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return s, nil
}

// parseSeriesName reads c:tx, which holds either a formula with a cached
// value or a literal c:v.
func parseSeriesName(decoder *xml.Decoder) (name, nameRange string, err error) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return "", "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "f":
				txt, err := readElementText(decoder)
				if err != nil {
					return "", "", err
				}
				nameRange = strings.TrimSpace(txt)
				depth--
			case "v":
				txt, err := readElementText(decoder)
				if err != nil {
					return "", "", err
				}
				name = strings.TrimSpace(txt)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	if name == "" {
		name = nameRange
	}
	return name, nameRange, nil
}

func parseFormula(decoder *xml.Decoder) (string, error) {
	var formula string
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "f" && formula == "" {
				txt, err := readElementText(decoder)
				if err != nil {
					return "", err
				}
				formula = strings.TrimSpace(txt)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return formula, nil
}

// parseFillColor returns the sRGB color of spPr/solidFill, falling back to
// spPr/ln/solidFill for series drawn as lines only.
func parseFillColor(decoder *xml.Decoder) (string, error) {
	var fill, line string
	var path []string

	for {
		token, err := decoder.Token()
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			path = append(path, t.Name.Local)
			if t.Name.Local != "srgbClr" {
				continue
			}
			switch strings.Join(path, "/") {
			case "solidFill/srgbClr":
				fill = strings.ToUpper(attrValue(t, "val"))
			case "ln/solidFill/srgbClr":
				line = strings.ToUpper(attrValue(t, "val"))
			}
		case xml.EndElement:
			if len(path) == 0 {
				if fill == "" {
					fill = line
				}
				return fill, nil
			}
			path = path[:len(path)-1]
		}
	}
}

func parseAxis(decoder *xml.Decoder) (axisInfo, error) {
	var ax axisInfo
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return ax, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "axPos":
				ax.pos = attrValue(t, "val")
			case "title":
				if ax.title, err = parseTitle(decoder); err != nil {
					return ax, err
				}
				depth--
			case "min":
				ax.min = floatValue(t)
			case "max":
				ax.max = floatValue(t)
			case "txPr", "spPr", "extLst":
				if err := decoder.Skip(); err != nil {
					return ax, err
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return ax, nil
}
