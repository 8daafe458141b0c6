package opc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
)

// Relationship and content types used by spreadsheet packages.
const (
	NamespacePackageRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	NamespaceContentTypes         = "http://schemas.openxmlformats.org/package/2006/content-types"

	RelTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelTypeWorksheet      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	RelTypeDrawing        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/drawing"
	RelTypeChart          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"

	ContentTypeRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ContentTypeDrawing       = "application/vnd.openxmlformats-officedocument.drawing+xml"
	ContentTypeChart         = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
)

const relIDPrefix = "rId"

var relIDPattern = regexp.MustCompile(`^rId(\d+)$`)

// Relationship is one entry of a relationship manifest.
type Relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

// External reports whether the target lies outside the package.
func (r Relationship) External() bool {
	return r.TargetMode == "External"
}

// Rels is a parsed relationship manifest, in document order.
type Rels struct {
	Relationships []Relationship
}

// ParseRels parses a relationship manifest. nil data yields an empty manifest.
func ParseRels(data []byte) (*Rels, error) {
	out := &Rels{}
	if len(data) == 0 {
		return out, nil
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Structuralf("parse rels: %v", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "Relationship" {
			continue
		}

		rel := Relationship{}
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "Id":
				rel.ID = attr.Value
			case "Type":
				rel.Type = attr.Value
			case "Target":
				rel.Target = attr.Value
			case "TargetMode":
				rel.TargetMode = attr.Value
			}
		}
		if rel.ID != "" {
			out.Relationships = append(out.Relationships, rel)
		}
	}

	return out, nil
}

// Find returns the relationship with the given id.
func (r *Rels) Find(id string) (Relationship, bool) {
	for _, rel := range r.Relationships {
		if rel.ID == id {
			return rel, true
		}
	}
	return Relationship{}, false
}

// FirstOfType returns the first relationship of the given type.
func (r *Rels) FirstOfType(relType string) (Relationship, bool) {
	for _, rel := range r.Relationships {
		if rel.Type == relType {
			return rel, true
		}
	}
	return Relationship{}, false
}

// NextID returns rId<max+1> over the ids matching rId<n>, or rId1.
func (r *Rels) NextID() string {
	next := 1
	for _, rel := range r.Relationships {
		m := relIDPattern.FindStringSubmatch(rel.ID)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n >= next {
			next = n + 1
		}
	}
	return relIDPrefix + strconv.Itoa(next)
}

// EmptyRels returns a relationship manifest with no entries.
func EmptyRels() []byte {
	return []byte(xml.Header + `<Relationships xmlns="` + NamespacePackageRelationships + `"></Relationships>`)
}

// AddRelationship appends rel to the manifest in data, creating the manifest
// when data is empty. Existing entries are left byte-for-byte intact.
func AddRelationship(data []byte, rel Relationship) ([]byte, error) {
	if len(data) == 0 {
		data = EmptyRels()
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("relationships: %w", err)
	}

	fragment := fmt.Sprintf(`<%s Id="%s" Type="%s" Target="%s"`,
		doc.Qualify("Relationship"), EscapeAttr(rel.ID), EscapeAttr(rel.Type), EscapeAttr(rel.Target))
	if rel.TargetMode != "" {
		fragment += fmt.Sprintf(` TargetMode="%s"`, EscapeAttr(rel.TargetMode))
	}
	fragment += "/>"

	return doc.Append(fragment), nil
}

// ReadRels reads and parses the manifest of part. A missing manifest yields
// an empty Rels and nil raw data.
func (p *Package) ReadRels(part string) (*Rels, []byte, error) {
	name := RelsPath(part)
	if !p.Has(name) {
		return &Rels{}, nil, nil
	}
	data, err := p.ReadPart(name)
	if err != nil {
		return nil, nil, err
	}
	rels, err := ParseRels(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	return rels, data, nil
}
