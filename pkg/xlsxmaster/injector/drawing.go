package injector

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/chartxml"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/models"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/opc"
)

// NamespaceSpreadsheetDrawing is the xdr namespace of drawing parts.
const NamespaceSpreadsheetDrawing = "http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing"

// Elements that must follow <drawing> in a worksheet, in schema order.
var drawingSuccessors = []string{
	"legacyDrawing",
	"legacyDrawingHF",
	"drawingHF",
	"picture",
	"oleObjects",
	"controls",
	"webPublishItems",
	"tableParts",
	"extLst",
}

// emptyDrawing returns a drawing part with no anchors.
func emptyDrawing() []byte {
	return []byte(chartxml.Header + `<xdr:wsDr xmlns:xdr="` + NamespaceSpreadsheetDrawing +
		`" xmlns:a="` + chartxml.NamespaceDrawingML +
		`" xmlns:r="` + chartxml.NamespaceRelationships + `"></xdr:wsDr>`)
}

// insertDrawingRef adds <drawing r:id="..."/> to a worksheet at its schema position.
func insertDrawingRef(sheetXML []byte, relID string) ([]byte, error) {
	doc, err := opc.ParseDocument(sheetXML)
	if err != nil {
		return nil, fmt.Errorf("worksheet: %w", err)
	}
	if doc.HasChild("drawing") {
		return nil, errs.Structuralf("worksheet already has a drawing element without a drawing relationship")
	}

	idAttr := fmt.Sprintf(`r:id="%s" xmlns:r="%s"`, opc.EscapeAttr(relID), chartxml.NamespaceRelationships)
	if p, ok := doc.PrefixFor(chartxml.NamespaceRelationships); ok && p != "" {
		idAttr = fmt.Sprintf(`%s:id="%s"`, p, opc.EscapeAttr(relID))
	}

	fragment := fmt.Sprintf(`<%s %s/>`, doc.Qualify("drawing"), idAttr)
	return doc.InsertBefore(fragment, drawingSuccessors...), nil
}

// frame describes one chart anchor to append to a drawing.
type frame struct {
	anchor models.Anchor
	id     int
	name   string
	relID  string
	editAs string
}

// prefixes maps the namespaces the anchor uses to the prefixes it writes.
type prefixes struct {
	xdr, a, r string
	decls     []string
}

// resolvePrefixes reuses the drawing root's bindings and declares the rest
// on the anchor element.
func resolvePrefixes(doc *opc.Document) prefixes {
	var p prefixes

	if prefix, ok := doc.PrefixFor(NamespaceSpreadsheetDrawing); ok {
		p.xdr = prefix
	} else {
		p.xdr = "xdr"
		p.decls = append(p.decls, fmt.Sprintf(`xmlns:xdr="%s"`, NamespaceSpreadsheetDrawing))
	}

	bind := func(uri, fallback string) string {
		if prefix, ok := doc.PrefixFor(uri); ok && prefix != "" {
			return prefix
		}
		p.decls = append(p.decls, fmt.Sprintf(`xmlns:%s="%s"`, fallback, uri))
		return fallback
	}
	p.a = bind(chartxml.NamespaceDrawingML, "a")
	p.r = bind(chartxml.NamespaceRelationships, "r")
	return p
}

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

// appendChartFrame appends a two-cell anchor holding a chart graphic frame.
func appendChartFrame(drawingXML []byte, f frame) ([]byte, error) {
	doc, err := opc.ParseDocument(drawingXML)
	if err != nil {
		return nil, fmt.Errorf("drawing: %w", err)
	}
	p := resolvePrefixes(doc)
	x := func(local string) string { return qualify(p.xdr, local) }
	a := func(local string) string { return qualify(p.a, local) }

	var b strings.Builder
	fmt.Fprintf(&b, `<%s editAs="%s"`, x("twoCellAnchor"), f.editAs)
	for _, d := range p.decls {
		b.WriteString(" " + d)
	}
	b.WriteString(">")

	writeMarker := func(tag string, col, row int) {
		fmt.Fprintf(&b, `<%s><%s>%d</%s><%s>0</%s><%s>%d</%s><%s>0</%s></%s>`,
			x(tag),
			x("col"), col, x("col"),
			x("colOff"), x("colOff"),
			x("row"), row, x("row"),
			x("rowOff"), x("rowOff"),
			x(tag))
	}
	writeMarker("from", f.anchor.ColFrom, f.anchor.RowFrom)
	writeMarker("to", f.anchor.ColTo, f.anchor.RowTo)

	fmt.Fprintf(&b, `<%s macro="">`, x("graphicFrame"))
	fmt.Fprintf(&b, `<%s><%s id="%d" name="%s"/><%s><%s noGrp="1"/></%s></%s>`,
		x("nvGraphicFramePr"),
		x("cNvPr"), f.id, opc.EscapeAttr(f.name),
		x("cNvGraphicFramePr"), a("graphicFrameLocks"), x("cNvGraphicFramePr"),
		x("nvGraphicFramePr"))
	fmt.Fprintf(&b, `<%s><%s x="0" y="0"/><%s cx="0" cy="0"/></%s>`,
		x("xfrm"), a("off"), a("ext"), x("xfrm"))
	fmt.Fprintf(&b, `<%s><%s uri="%s"><c:chart xmlns:c="%s" %s:id="%s"/></%s></%s>`,
		a("graphic"), a("graphicData"), chartxml.NamespaceChart,
		chartxml.NamespaceChart, p.r, opc.EscapeAttr(f.relID),
		a("graphicData"), a("graphic"))
	fmt.Fprintf(&b, `</%s><%s/></%s>`, x("graphicFrame"), x("clientData"), x("twoCellAnchor"))

	return doc.Append(b.String()), nil
}

// frameIdentity picks the cNvPr id and name of a new chart frame. The id is
// chartNum+1 unless a shape in the drawing already uses it, in which case it
// is one past the highest id in use. The name is "Chart <chartNum>", counting
// up past names already taken.
func frameIdentity(drawingXML []byte, chartNum int) (int, string) {
	usedIDs := make(map[int]bool)
	usedNames := make(map[string]bool)
	highest := 0

	decoder := xml.NewDecoder(bytes.NewReader(drawingXML))
	for {
		token, err := decoder.RawToken()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "cNvPr" {
			continue
		}
		usedNames[opc.Attr(se.Attr, "name")] = true
		if id, err := strconv.Atoi(opc.Attr(se.Attr, "id")); err == nil {
			usedIDs[id] = true
			if id > highest {
				highest = id
			}
		}
	}

	id := chartNum + 1
	if usedIDs[id] {
		id = highest + 1
	}
	n := chartNum
	for usedNames[fmt.Sprintf("Chart %d", n)] {
		n++
	}
	return id, fmt.Sprintf("Chart %d", n)
}
