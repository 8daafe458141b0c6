package injector

import (
	"archive/zip"
	"bytes"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/models"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/opc"
	"github.com/xuri/excelize/v2"
)

func newWorkbook(t *testing.T, prepare func(f *excelize.File)) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Month", "Sales", "Margin"},
		{"Jan", 100, 0.2},
		{"Feb", 120, 0.25},
		{"Mar", 90, 0.18},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	if prepare != nil {
		prepare(f)
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func readParts(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	parts := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		parts[f.Name] = string(content)
	}
	return parts
}

func testSpec(anchor models.Anchor, ref string) *models.ChartSpec {
	return &models.ChartSpec{
		Anchor:          anchor,
		AnchorRef:       ref,
		CategoryFormula: "Sheet1!$A$2:$A$4",
		Series: []models.SeriesSpec{
			{Name: "Sales", ChartType: models.Column, ValuesFormula: "Sheet1!$B$2:$B$4"},
			{Name: "Margin", ChartType: models.Line, Axis: models.Secondary, ValuesFormula: "Sheet1!$C$2:$C$4"},
		},
		ShowLegend: true,
	}
}

var anchorE1M20 = models.Anchor{ColFrom: 4, RowFrom: 0, ColTo: 12, RowTo: 19}

func TestInjectCreatesDrawing(t *testing.T) {
	input := newWorkbook(t, nil)
	snapshot := append([]byte(nil), input...)

	out, res, err := InjectWithResult(input, "Sheet1", testSpec(anchorE1M20, "E1:M20"), Options{})
	require.NoError(t, err)
	assert.Equal(t, snapshot, input)

	assert.Equal(t, "xl/worksheets/sheet1.xml", res.SheetPart)
	assert.Equal(t, "xl/drawings/drawing1.xml", res.DrawingPart)
	assert.True(t, res.DrawingCreated)
	assert.Equal(t, "xl/charts/chart1.xml", res.ChartPart)
	assert.Equal(t, "rId1", res.ChartRelID)
	assert.Equal(t, 2, res.FrameID)

	parts := readParts(t, out)

	sheet := parts["xl/worksheets/sheet1.xml"]
	assert.Equal(t, 1, strings.Count(sheet, "<drawing "))
	sheetRels, err := opc.ParseRels([]byte(parts["xl/worksheets/_rels/sheet1.xml.rels"]))
	require.NoError(t, err)
	drawingRel, ok := sheetRels.FirstOfType(opc.RelTypeDrawing)
	require.True(t, ok)
	assert.Equal(t, "../drawings/drawing1.xml", drawingRel.Target)
	assert.Contains(t, sheet, `r:id="`+drawingRel.ID+`"`)

	drawingRels, err := opc.ParseRels([]byte(parts["xl/drawings/_rels/drawing1.xml.rels"]))
	require.NoError(t, err)
	chartRel, ok := drawingRels.Find("rId1")
	require.True(t, ok)
	assert.Equal(t, opc.RelTypeChart, chartRel.Type)
	assert.Equal(t, "../charts/chart1.xml", chartRel.Target)

	drawing := parts["xl/drawings/drawing1.xml"]
	assert.Contains(t, drawing, `<xdr:twoCellAnchor editAs="oneCell">`)
	assert.Contains(t, drawing, `<xdr:from><xdr:col>4</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>0</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:from>`)
	assert.Contains(t, drawing, `<xdr:to><xdr:col>12</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>19</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:to>`)
	assert.Contains(t, drawing, `<xdr:cNvPr id="2" name="Chart 1"/>`)
	assert.Contains(t, drawing, `r:id="rId1"`)

	types := parts[opc.ContentTypesPart]
	assert.Contains(t, types, `PartName="/xl/drawings/drawing1.xml" ContentType="`+opc.ContentTypeDrawing+`"`)
	assert.Contains(t, types, `PartName="/xl/charts/chart1.xml" ContentType="`+opc.ContentTypeChart+`"`)

	assert.Contains(t, parts["xl/charts/chart1.xml"], "<c:chartSpace")

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	assert.Equal(t, "100", v)
}

func TestInjectTwoChartsShareDrawing(t *testing.T) {
	out, err := Inject(newWorkbook(t, nil), "Sheet1", testSpec(anchorE1M20, "E1:M20"), Options{})
	require.NoError(t, err)
	out, res, err := InjectWithResult(out, "Sheet1",
		testSpec(models.Anchor{ColFrom: 4, RowFrom: 22, ColTo: 12, RowTo: 40}, "E23:M41"), Options{})
	require.NoError(t, err)

	assert.False(t, res.DrawingCreated)
	assert.Equal(t, "xl/charts/chart2.xml", res.ChartPart)
	assert.Equal(t, "rId2", res.ChartRelID)

	parts := readParts(t, out)
	assert.Contains(t, parts, "xl/charts/chart1.xml")
	assert.Contains(t, parts, "xl/charts/chart2.xml")
	assert.NotContains(t, parts, "xl/drawings/drawing2.xml")
	assert.Equal(t, 1, strings.Count(parts["xl/worksheets/sheet1.xml"], "<drawing "))

	drawing := parts["xl/drawings/drawing1.xml"]
	assert.Equal(t, 2, strings.Count(drawing, "<xdr:twoCellAnchor "))
	assert.Contains(t, drawing, `name="Chart 2"`)

	rels, err := opc.ParseRels([]byte(parts["xl/drawings/_rels/drawing1.xml.rels"]))
	require.NoError(t, err)
	require.Len(t, rels.Relationships, 2)
	assert.Equal(t, "../charts/chart2.xml", rels.Relationships[1].Target)

	types := parts[opc.ContentTypesPart]
	assert.Equal(t, 1, strings.Count(types, `PartName="/xl/drawings/drawing1.xml"`))
	assert.Equal(t, 1, strings.Count(types, `PartName="/xl/charts/chart2.xml"`))
}

func TestInjectInsertsDrawingBeforeTableParts(t *testing.T) {
	input := newWorkbook(t, func(f *excelize.File) {
		require.NoError(t, f.AddTable("Sheet1", &excelize.Table{Range: "A1:C4", Name: "Sales"}))
	})

	out, err := Inject(input, "Sheet1", testSpec(anchorE1M20, "E1:M20"), Options{})
	require.NoError(t, err)

	sheet := readParts(t, out)["xl/worksheets/sheet1.xml"]
	drawingAt := strings.Index(sheet, "<drawing ")
	tableAt := strings.Index(sheet, "<tableParts")
	require.GreaterOrEqual(t, drawingAt, 0)
	require.GreaterOrEqual(t, tableAt, 0)
	assert.Less(t, drawingAt, tableAt)
}

func TestInjectReusesExistingDrawing(t *testing.T) {
	input := newWorkbook(t, func(f *excelize.File) {
		require.NoError(t, f.AddChart("Sheet1", "E2", &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       "Sheet1!$B$1",
				Categories: "Sheet1!$A$2:$A$4",
				Values:     "Sheet1!$B$2:$B$4",
			}},
		}))
	})
	before := readParts(t, input)
	require.Contains(t, before, "xl/charts/chart1.xml")

	out, res, err := InjectWithResult(input, "Sheet1", testSpec(anchorE1M20, "E1:M20"), Options{})
	require.NoError(t, err)

	assert.False(t, res.DrawingCreated)
	assert.Equal(t, "xl/charts/chart2.xml", res.ChartPart)

	parts := readParts(t, out)
	assert.Equal(t, before["xl/charts/chart1.xml"], parts["xl/charts/chart1.xml"])
	assert.Equal(t, 1, strings.Count(parts["xl/worksheets/sheet1.xml"], "<drawing "))

	drawing := parts[res.DrawingPart]
	assert.Equal(t, 1, strings.Count(drawing, `cNvPr id="`+strconv.Itoa(res.FrameID)+`"`))
	assert.Equal(t, 1, strings.Count(drawing, `name="`+res.FrameName+`"`))
	assert.Equal(t, 2, strings.Count(drawing, `name="Chart `))

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestInjectUnknownSheet(t *testing.T) {
	input := newWorkbook(t, func(f *excelize.File) {
		_, err := f.NewSheet("Summary")
		require.NoError(t, err)
	})

	out, err := Inject(input, "NoSuchSheet", testSpec(anchorE1M20, "E1:M20"), Options{})
	require.ErrorIs(t, err, errs.ErrNotFound)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "Sheet1")
	assert.Contains(t, err.Error(), "Summary")
}

func TestInjectInvalidSpec(t *testing.T) {
	out, err := Inject(newWorkbook(t, nil), "Sheet1", &models.ChartSpec{AnchorRef: "A1:B2"}, Options{})
	assert.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Nil(t, out)
}

func TestInjectEditAs(t *testing.T) {
	out, err := Inject(newWorkbook(t, nil), "Sheet1", testSpec(anchorE1M20, "E1:M20"), Options{EditAs: EditAsTwoCell})
	require.NoError(t, err)
	assert.Contains(t, readParts(t, out)["xl/drawings/drawing1.xml"], `editAs="twoCell"`)

	_, err = Inject(newWorkbook(t, nil), "Sheet1", testSpec(anchorE1M20, "E1:M20"), Options{EditAs: "floating"})
	assert.ErrorIs(t, err, errs.ErrArgument)
}

func TestInjectRejectsNonPackage(t *testing.T) {
	_, err := Inject([]byte("plain text"), "Sheet1", testSpec(anchorE1M20, "E1:M20"), Options{})
	assert.ErrorIs(t, err, errs.ErrStructural)
}
