package models

// SheetCharts represents the charts found on a single sheet.
type SheetCharts struct {
	// Drawing is the drawing part path, empty when the sheet has none.
	Drawing string `json:"drawing,omitempty"`
	// Charts contains charts detected on the sheet in anchor order.
	Charts []Chart `json:"charts,omitempty"`
}
