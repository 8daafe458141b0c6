package models

// WorkbookCharts represents the workbook-level read-back result.
type WorkbookCharts struct {
	// BookName is the workbook file name (no path), empty for in-memory input.
	BookName string `json:"book_name,omitempty"`
	// SheetOrder lists sheet names in workbook order.
	SheetOrder []string `json:"sheet_order"`
	// Sheets maps sheet name to its charts.
	Sheets map[string]SheetCharts `json:"sheets"`
}
