package cellref

import (
	"regexp"
	"strings"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
	"github.com/xuri/excelize/v2"
)

var (
	cellTokenPattern = regexp.MustCompile(`^([A-Z]+)?(\d+)?$`)
	plainSheetName   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	r1c1SheetName    = regexp.MustCompile(`(?i)^(R\d*C\d*|R\d*|C\d*)$`)
)

// QuoteSheetName quotes a sheet name for use in a formula when it contains
// anything other than letters, digits, '_' and '.', or when it reads as an
// A1 or R1C1 cell reference ("Q1", "R1C1"). Embedded quotes are doubled.
func QuoteSheetName(sheet string) string {
	if plainSheetName.MatchString(sheet) && !looksLikeCell(sheet) {
		return sheet
	}
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

func looksLikeCell(name string) bool {
	if r1c1SheetName.MatchString(name) {
		return true
	}
	_, _, err := excelize.CellNameToCoordinates(name)
	return err == nil
}

// AbsoluteFormula converts a range such as "B2:B10" into "Sheet1!$B$2:$B$10".
// A range that already carries a sheet qualifier keeps its own sheet.
func AbsoluteFormula(sheet, rng string) (string, error) {
	rng = strings.TrimSpace(rng)
	if rng == "" {
		return "", errs.Argumentf("range must not be blank")
	}

	if qualified, local, ok := SplitFormula(rng); ok {
		sheet, rng = qualified, local
	}
	if strings.TrimSpace(sheet) == "" {
		return "", errs.Argumentf("sheet name must not be blank")
	}

	parts := strings.Split(strings.ToUpper(strings.ReplaceAll(rng, "$", "")), ":")
	if len(parts) > 2 {
		return "", errs.Formatf("range %q has more than two cells", rng)
	}
	for i, p := range parts {
		abs, err := absoluteCell(p)
		if err != nil {
			return "", errs.Formatf("range %q: %v", rng, err)
		}
		parts[i] = abs
	}

	return QuoteSheetName(sheet) + "!" + strings.Join(parts, ":"), nil
}

// SplitFormula splits "'My Sheet'!$A$1:$B$2" into the sheet name and local range.
// ok is false when the formula has no sheet qualifier.
func SplitFormula(formula string) (sheet, rng string, ok bool) {
	idx := strings.LastIndex(formula, "!")
	if idx < 0 {
		return "", formula, false
	}
	sheet = formula[:idx]
	if len(sheet) >= 2 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	return sheet, formula[idx+1:], true
}

// RangeBounds returns the one-based column/row bounds of a local or qualified range.
func RangeBounds(formula string) (c1, r1, c2, r2 int, err error) {
	_, rng, _ := SplitFormula(formula)
	parts := strings.Split(strings.ReplaceAll(rng, "$", ""), ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return 0, 0, 0, 0, errs.Formatf("range %q", formula)
	}
	if c1, r1, err = excelize.CellNameToCoordinates(parts[0]); err != nil {
		return 0, 0, 0, 0, errs.Formatf("range %q: %v", formula, err)
	}
	if c2, r2, err = excelize.CellNameToCoordinates(parts[1]); err != nil {
		return 0, 0, 0, 0, errs.Formatf("range %q: %v", formula, err)
	}
	return c1, r1, c2, r2, nil
}

// absoluteCell prefixes the column and row tokens of one cell with '$'.
// Whole-column ("B") and whole-row ("3") references are accepted.
func absoluteCell(cell string) (string, error) {
	m := cellTokenPattern.FindStringSubmatch(cell)
	if m == nil || (m[1] == "" && m[2] == "") {
		return "", errs.Formatf("cell %q", cell)
	}
	var b strings.Builder
	if m[1] != "" {
		b.WriteString("$" + m[1])
	}
	if m[2] != "" {
		b.WriteString("$" + m[2])
	}
	return b.String(), nil
}
