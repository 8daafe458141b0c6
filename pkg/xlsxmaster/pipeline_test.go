package xlsxmaster

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/models"
	"github.com/xuri/excelize/v2"
)

func twoSheetWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	fillSales(t, f, "Sheet1")
	_, err := f.NewSheet("Q2 Data")
	require.NoError(t, err)
	fillSales(t, f, "Q2 Data")

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestApplyChartsMultipleSheets(t *testing.T) {
	input := twoSheetWorkbook(t)
	snapshot := append([]byte(nil), input...)

	out, err := ApplyCharts(input,
		NewChartBuilder("Sheet1", "E1:M20").
			SetCategoryRange("A2:A4").
			AddSeries("Sales", "B2:B4").
			SetTitle("First"),
		NewChartBuilder("Sheet1", "E22:M40").
			SetCategoryRange("A2:A4").
			AddSeries("Sales", "B2:B4", AsType(models.Pie)),
		NewChartBuilder("Q2 Data", "E1:M20").
			SetCategoryRange("A2:A4").
			AddSeries("Sales", "B2:B4").
			AddSeries("Margin", "C2:C4", AsType(models.Line), OnSecondaryAxis()),
	)
	require.NoError(t, err)
	assert.Equal(t, snapshot, input)

	wb, err := InspectCharts(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1", "Q2 Data"}, wb.SheetOrder)

	first := wb.Sheets["Sheet1"]
	require.Len(t, first.Charts, 2)
	assert.Equal(t, "First", first.Charts[0].Title)
	assert.Equal(t, []string{"barChart"}, first.Charts[0].PlotTypes)
	assert.Equal(t, []string{"pieChart"}, first.Charts[1].PlotTypes)
	assert.Equal(t, 21, first.Charts[1].Anchor.RowFrom)

	second := wb.Sheets["Q2 Data"]
	require.Len(t, second.Charts, 1)
	assert.NotEqual(t, first.Drawing, second.Drawing)
	assert.Equal(t, []string{"barChart", "lineChart"}, second.Charts[0].PlotTypes)
	assert.Equal(t, "'Q2 Data'!$C$2:$C$4", second.Charts[0].Series[1].ValuesRange)

	parts := []string{first.Charts[0].Part, first.Charts[1].Part, second.Charts[0].Part}
	assert.ElementsMatch(t, []string{"xl/charts/chart1.xml", "xl/charts/chart2.xml", "xl/charts/chart3.xml"}, parts)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	v, err := f.GetCellValue("Q2 Data", "B3")
	require.NoError(t, err)
	assert.Equal(t, "120", v)
	require.NoError(t, f.Close())
}

func TestApplyChartsNoBuilders(t *testing.T) {
	input := salesWorkbook(t)
	out, err := ApplyCharts(input)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestApplyChartsValidatesBeforeInjecting(t *testing.T) {
	var logs bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	out, err := ApplyChartsWithOptions(salesWorkbook(t), opts,
		NewChartBuilder("Sheet1", "E1:M20").SetCategoryRange("A2:A4").AddSeries("Sales", "B2:B4"),
		NewChartBuilder("Sheet1", "E22:M40").AddSeries("Sales", "B2:B4"),
	)
	assert.Nil(t, out)

	var chartErr *ChartError
	require.True(t, errors.As(err, &chartErr))
	assert.Equal(t, "build", chartErr.Step)
	assert.Equal(t, "E22:M40", chartErr.Anchor)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.NotContains(t, logs.String(), "chart applied")
}

func TestApplyChartsInjectFailure(t *testing.T) {
	out, err := ApplyCharts(salesWorkbook(t),
		NewChartBuilder("Sheet1", "E1:M20").SetCategoryRange("A2:A4").AddSeries("Sales", "B2:B4"),
		NewChartBuilder("Nope", "E1:M20").SetCategoryRange("A2:A4").AddSeries("Sales", "B2:B4"),
	)
	assert.Nil(t, out)

	var chartErr *ChartError
	require.True(t, errors.As(err, &chartErr))
	assert.Equal(t, "inject", chartErr.Step)
	assert.Equal(t, "Nope", chartErr.Sheet)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplyChartsLogsRunID(t *testing.T) {
	var logs bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := ApplyChartsWithOptions(salesWorkbook(t), opts,
		NewChartBuilder("Sheet1", "E1:M20").SetCategoryRange("A2:A4").AddSeries("Sales", "B2:B4"),
		NewChartBuilder("Sheet1", "E22:M40").SetCategoryRange("A2:A4").AddSeries("Sales", "B2:B4"),
	)
	require.NoError(t, err)

	runIDs := map[string]bool{}
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		id, ok := record["run_id"].(string)
		require.True(t, ok, "record without run_id: %s", line)
		runIDs[id] = true
	}
	assert.Len(t, runIDs, 1)
}

func TestApplyChartsEditAs(t *testing.T) {
	opts := DefaultOptions()
	opts.EditAs = EditAsTwoCell

	out, err := ApplyChartsWithOptions(salesWorkbook(t), opts,
		NewChartBuilder("Sheet1", "E1:M20").SetCategoryRange("A2:A4").AddSeries("Sales", "B2:B4"),
	)
	require.NoError(t, err)
	assert.Contains(t, readParts(t, out)["xl/drawings/drawing1.xml"], `editAs="twoCell"`)

	opts.EditAs = "sideways"
	_, err = ApplyChartsWithOptions(salesWorkbook(t), opts,
		NewChartBuilder("Sheet1", "E1:M20").SetCategoryRange("A2:A4").AddSeries("Sales", "B2:B4"),
	)
	assert.ErrorIs(t, err, ErrArgument)
}
