package cellref

import "github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/models"

// EMUPerPixel is the number of EMUs (English Metric Units) per pixel at 96 DPI.
// 1 inch = 914400 EMU, 1 inch = 96 pixels at 96 DPI
// Therefore: 914400 / 96 = 9525 EMU per pixel
const EMUPerPixel = 9525

const (
	// DefaultColumnWidthEMU is the width of a default-width column (64px).
	DefaultColumnWidthEMU = 609600
	// DefaultRowHeightEMU is the height of a default-height row (20px).
	DefaultRowHeightEMU = 190500
)

// EMUToPixels converts EMU to pixels at 96 DPI.
func EMUToPixels(emu int64) int {
	return int(emu / EMUPerPixel)
}

// ColumnIndexToEMU returns the left edge of a zero-based column assuming default widths.
func ColumnIndexToEMU(col int) int64 {
	return int64(col) * DefaultColumnWidthEMU
}

// RowIndexToEMU returns the top edge of a zero-based row assuming default heights.
func RowIndexToEMU(row int) int64 {
	return int64(row) * DefaultRowHeightEMU
}

// AnchorPixels estimates the pixel box of an anchor, inclusive of its end cell.
func AnchorPixels(a models.Anchor) (left, top, width, height int) {
	left = EMUToPixels(ColumnIndexToEMU(a.ColFrom))
	top = EMUToPixels(RowIndexToEMU(a.RowFrom))
	width = EMUToPixels(ColumnIndexToEMU(a.ColTo+1)) - left
	height = EMUToPixels(RowIndexToEMU(a.RowTo+1)) - top
	return left, top, width, height
}
