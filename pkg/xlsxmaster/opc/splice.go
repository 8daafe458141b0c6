package opc

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
)

// Document locates the root element and its direct children of an XML part
// by byte offset, so content can be spliced in without re-serializing the
// rest of the document.
type Document struct {
	data []byte

	// Root is the raw root start element; Name.Space holds the prefix.
	Root xml.StartElement
	// Children lists the root's direct child elements in document order.
	Children []Child

	rootOpenEnd int
	rootClose   int
	selfClosing bool
}

// Child is a direct child element of the root.
type Child struct {
	Prefix string
	Local  string
	Start  int
	Attr   []xml.Attr
}

// ParseDocument scans data once. It fails with errs.ErrStructural when data
// is not well-formed or has no root element.
func ParseDocument(data []byte) (*Document, error) {
	doc := &Document{data: data, rootClose: -1}
	dec := xml.NewDecoder(bytes.NewReader(data))

	depth := 0
	for {
		before := int(dec.InputOffset())
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Structuralf("malformed xml: %v", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 1:
				doc.Root = t.Copy()
				doc.rootOpenEnd = int(dec.InputOffset())
				doc.selfClosing = bytes.HasSuffix(data[before:doc.rootOpenEnd], []byte("/>"))
			case 2:
				doc.Children = append(doc.Children, Child{
					Prefix: t.Name.Space,
					Local:  t.Name.Local,
					Start:  before,
					Attr:   t.Copy().Attr,
				})
			}
		case xml.EndElement:
			if depth == 1 {
				if doc.selfClosing {
					doc.rootClose = doc.rootOpenEnd
				} else {
					doc.rootClose = before
				}
			}
			depth--
		}
	}

	if doc.Root.Name.Local == "" || doc.rootClose < 0 {
		return nil, errs.Structuralf("xml part has no root element")
	}
	return doc, nil
}

// Qualify returns local prefixed with the root element's prefix.
func (d *Document) Qualify(local string) string {
	if d.Root.Name.Space == "" {
		return local
	}
	return d.Root.Name.Space + ":" + local
}

// PrefixFor returns the prefix the root binds to uri; "" with ok for a
// default namespace binding.
func (d *Document) PrefixFor(uri string) (string, bool) {
	for _, a := range d.Root.Attr {
		if a.Value != uri {
			continue
		}
		if a.Name.Space == "xmlns" {
			return a.Name.Local, true
		}
		if a.Name.Space == "" && a.Name.Local == "xmlns" {
			return "", true
		}
	}
	return "", false
}

// HasChild reports whether the root has a direct child with the given local name.
func (d *Document) HasChild(local string) bool {
	for _, c := range d.Children {
		if c.Local == local {
			return true
		}
	}
	return false
}

// InsertBefore inserts fragment before the first direct child whose local
// name is in before, or before the root's closing tag when none is present.
func (d *Document) InsertBefore(fragment string, before ...string) []byte {
	for _, c := range d.Children {
		for _, name := range before {
			if c.Local == name {
				return splice(d.data, c.Start, c.Start, fragment)
			}
		}
	}
	return d.Append(fragment)
}

// Append inserts fragment as the root's last child. A self-closing root is
// expanded into an open/close pair.
func (d *Document) Append(fragment string) []byte {
	if !d.selfClosing {
		return splice(d.data, d.rootClose, d.rootClose, fragment)
	}
	qname := d.Root.Name.Local
	if d.Root.Name.Space != "" {
		qname = d.Root.Name.Space + ":" + qname
	}
	return splice(d.data, d.rootOpenEnd-2, d.rootOpenEnd, ">"+fragment+"</"+qname+">")
}

func splice(data []byte, from, to int, fragment string) []byte {
	out := make([]byte, 0, len(data)-(to-from)+len(fragment))
	out = append(out, data[:from]...)
	out = append(out, fragment...)
	return append(out, data[to:]...)
}

// Attr returns the value of the attribute with the given local name.
func Attr(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local && a.Name.Space != "xmlns" {
			return a.Value
		}
	}
	return ""
}

// EscapeAttr escapes s for use inside a double-quoted attribute value.
func EscapeAttr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
