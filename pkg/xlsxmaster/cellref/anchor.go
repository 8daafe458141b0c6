// Package cellref parses cell anchors and builds sheet-qualified range formulas.
package cellref

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/models"
	"github.com/xuri/excelize/v2"
)

var anchorPattern = regexp.MustCompile(`^([A-Z]+)(\d+):([A-Z]+)(\d+)$`)

// ParseAnchor parses a two-cell range such as "E1:M20" into zero-based coordinates.
// Matching is case-insensitive. A malformed string wraps errs.ErrFormat and an
// end cell that precedes the start cell wraps errs.ErrRangeOrder.
func ParseAnchor(s string) (models.Anchor, error) {
	m := anchorPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return models.Anchor{}, errs.Formatf("anchor %q must look like A1:H20", s)
	}

	colFrom, err := ColumnLetterToIndex(m[1])
	if err != nil {
		return models.Anchor{}, errs.Formatf("anchor %q: %v", s, err)
	}
	colTo, err := ColumnLetterToIndex(m[3])
	if err != nil {
		return models.Anchor{}, errs.Formatf("anchor %q: %v", s, err)
	}
	rowFrom, err := rowIndex(m[2])
	if err != nil {
		return models.Anchor{}, errs.Formatf("anchor %q: %v", s, err)
	}
	rowTo, err := rowIndex(m[4])
	if err != nil {
		return models.Anchor{}, errs.Formatf("anchor %q: %v", s, err)
	}

	if colFrom > colTo || rowFrom > rowTo {
		return models.Anchor{}, errs.RangeOrderf("anchor %q is reversed: end cell precedes start cell", s)
	}

	return models.Anchor{ColFrom: colFrom, RowFrom: rowFrom, ColTo: colTo, RowTo: rowTo}, nil
}

// ColumnLetterToIndex converts column letters to a zero-based index ("A" -> 0, "AA" -> 26).
func ColumnLetterToIndex(col string) (int, error) {
	n, err := excelize.ColumnNameToNumber(col)
	if err != nil {
		return 0, errs.Formatf("column %q: %v", col, err)
	}
	return n - 1, nil
}

// ColumnIndexToLetter converts a zero-based column index back to letters.
func ColumnIndexToLetter(idx int) (string, error) {
	name, err := excelize.ColumnNumberToName(idx + 1)
	if err != nil {
		return "", errs.Argumentf("column index %d: %v", idx, err)
	}
	return name, nil
}

// FormatAnchor renders an anchor back to its "E1:M20" form.
func FormatAnchor(a models.Anchor) (string, error) {
	from, err := excelize.CoordinatesToCellName(a.ColFrom+1, a.RowFrom+1)
	if err != nil {
		return "", errs.Argumentf("anchor start: %v", err)
	}
	to, err := excelize.CoordinatesToCellName(a.ColTo+1, a.RowTo+1)
	if err != nil {
		return "", errs.Argumentf("anchor end: %v", err)
	}
	return from + ":" + to, nil
}

func rowIndex(digits string) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > excelize.TotalRows {
		return 0, errs.Formatf("row %q out of range", digits)
	}
	return n - 1, nil
}
