package opc

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
)

const defaultWorkbookPart = "xl/workbook.xml"

// Sheet maps a worksheet name to its part.
type Sheet struct {
	Name  string
	RelID string
	Part  string
}

// WorkbookPart locates the main workbook part through the package root
// relationships, falling back to xl/workbook.xml.
func (p *Package) WorkbookPart() (string, error) {
	if p.Has("_rels/.rels") {
		data, err := p.ReadPart("_rels/.rels")
		if err != nil {
			return "", err
		}
		rels, err := ParseRels(data)
		if err != nil {
			return "", err
		}
		if rel, ok := rels.FirstOfType(RelTypeOfficeDocument); ok {
			return ResolveTarget("", rel.Target), nil
		}
	}
	if p.Has(defaultWorkbookPart) {
		return defaultWorkbookPart, nil
	}
	return "", errs.Structuralf("package has no workbook part")
}

// Sheets lists worksheets in workbook order with their resolved part paths.
// Sheets whose relationship is missing are reported with an empty Part.
func (p *Package) Sheets() ([]Sheet, error) {
	wbPart, err := p.WorkbookPart()
	if err != nil {
		return nil, err
	}
	data, err := p.ReadPart(wbPart)
	if err != nil {
		return nil, err
	}
	sheets, err := parseWorkbookSheets(data)
	if err != nil {
		return nil, err
	}

	rels, _, err := p.ReadRels(wbPart)
	if err != nil {
		return nil, err
	}
	for i := range sheets {
		if rel, ok := rels.Find(sheets[i].RelID); ok && !rel.External() {
			sheets[i].Part = ResolveTarget(wbPart, rel.Target)
		}
	}
	return sheets, nil
}

// SheetByName resolves one worksheet. An unknown name wraps errs.ErrNotFound
// and lists the sheets that do exist.
func (p *Package) SheetByName(name string) (Sheet, error) {
	sheets, err := p.Sheets()
	if err != nil {
		return Sheet{}, err
	}

	names := make([]string, 0, len(sheets))
	for _, s := range sheets {
		if s.Name == name {
			if s.Part == "" || !p.Has(s.Part) {
				return Sheet{}, errs.Structuralf("sheet %q has no worksheet part", name)
			}
			return s, nil
		}
		names = append(names, s.Name)
	}
	return Sheet{}, errs.NotFoundf("sheet %q does not exist; available sheets: %s", name, strings.Join(names, ", "))
}

func parseWorkbookSheets(data []byte) ([]Sheet, error) {
	var sheets []Sheet
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Structuralf("parse workbook: %v", err)
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "sheet" {
			continue
		}

		var s Sheet
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "name":
				s.Name = attr.Value
			case "id":
				s.RelID = attr.Value
			}
		}
		if s.Name != "" {
			sheets = append(sheets, s)
		}
	}

	return sheets, nil
}
