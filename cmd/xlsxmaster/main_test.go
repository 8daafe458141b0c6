package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/models"
	"github.com/xuri/excelize/v2"
)

const chartsYAML = `
charts:
  - sheet: Sheet1
    anchor: E1:M20
    title: Sales
    categories: A2:A4
    series:
      - {name: Sales, values: B2:B4}
`

func writeFixture(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range [][]interface{}{{"Month", "Sales"}, {"Jan", 1}, {"Feb", 2}, {"Mar", 3}} {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(dir, "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInjectAndInspect(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir)
	configPath := filepath.Join(dir, "charts.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(chartsYAML), 0o644))

	out, err := execute(t, "inject", input, "--config", configPath)
	require.NoError(t, err)
	output := filepath.Join(dir, "book.charts.xlsx")
	assert.Contains(t, out, "wrote 1 chart(s) to "+output)

	jsonPath := filepath.Join(dir, "charts.json")
	_, err = execute(t, "inspect", output, "-o", jsonPath, "--pretty")
	require.NoError(t, err)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var wb models.WorkbookCharts
	require.NoError(t, json.Unmarshal(data, &wb))
	assert.Equal(t, "book.charts.xlsx", wb.BookName)
	require.Len(t, wb.Sheets["Sheet1"].Charts, 1)
	assert.Equal(t, "Sales", wb.Sheets["Sheet1"].Charts[0].Title)
}

func TestInjectRequiresConfig(t *testing.T) {
	_, err := execute(t, "inject", "book.xlsx")
	assert.Error(t, err)
}

func TestInspectMissingFile(t *testing.T) {
	_, err := execute(t, "inspect", filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.ErrorContains(t, err, "file not found")
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, "dir/report.charts.xlsx", defaultOutputPath("dir/report.xlsx"))
	assert.Equal(t, "report.charts", defaultOutputPath("report"))
}
