package opc

import (
	"fmt"
	"strings"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
)

// ContentTypesPart is the package-wide content-type manifest.
const ContentTypesPart = "[Content_Types].xml"

// EnsureOverride registers contentType for partName ("/xl/charts/chart1.xml")
// unless an Override for that part already exists.
func EnsureOverride(data []byte, partName, contentType string) ([]byte, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("content types: %w", err)
	}

	for _, c := range doc.Children {
		if c.Local == "Override" && strings.EqualFold(Attr(c.Attr, "PartName"), partName) {
			return data, nil
		}
	}

	fragment := fmt.Sprintf(`<%s PartName="%s" ContentType="%s"/>`,
		doc.Qualify("Override"), EscapeAttr(partName), EscapeAttr(contentType))
	return doc.Append(fragment), nil
}

// EnsureDefault registers contentType for an extension unless a Default for
// it already exists. Defaults are placed before the first Override.
func EnsureDefault(data []byte, extension, contentType string) ([]byte, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("content types: %w", err)
	}

	for _, c := range doc.Children {
		if c.Local == "Default" && strings.EqualFold(Attr(c.Attr, "Extension"), extension) {
			return data, nil
		}
	}

	fragment := fmt.Sprintf(`<%s Extension="%s" ContentType="%s"/>`,
		doc.Qualify("Default"), EscapeAttr(extension), EscapeAttr(contentType))
	return doc.InsertBefore(fragment, "Override"), nil
}

// RegisterPart records a part's media type in the package's content-type
// manifest, also making sure relationship manifests have their Default.
func (p *Package) RegisterPart(part, contentType string) error {
	if !p.Has(ContentTypesPart) {
		return errs.Structuralf("package has no %s", ContentTypesPart)
	}
	data, err := p.ReadPart(ContentTypesPart)
	if err != nil {
		return err
	}
	if data, err = EnsureDefault(data, "rels", ContentTypeRelationships); err != nil {
		return err
	}
	if data, err = EnsureOverride(data, PartName(part), contentType); err != nil {
		return err
	}
	p.WritePart(ContentTypesPart, data)
	return nil
}
