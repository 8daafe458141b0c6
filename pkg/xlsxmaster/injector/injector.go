// Package injector adds chart parts to an existing spreadsheet package.
//
// Each call works on a copy of the package: the input bytes are never
// modified and no output is returned unless every step succeeded.
package injector

import (
	"fmt"
	"log/slog"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/chartxml"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/models"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/opc"
)

const (
	drawingPrefix = "xl/drawings/drawing"
	chartPrefix   = "xl/charts/chart"
)

// Anchor edit modes accepted in Options.EditAs.
const (
	EditAsOneCell  = "oneCell"
	EditAsTwoCell  = "twoCell"
	EditAsAbsolute = "absolute"
)

// Options configures an injection.
type Options struct {
	// Logger receives debug records; nil uses slog.Default().
	Logger *slog.Logger
	// EditAs is the anchor's editAs mode; empty means oneCell.
	EditAs string
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o Options) editAs() (string, error) {
	switch o.EditAs {
	case "":
		return EditAsOneCell, nil
	case EditAsOneCell, EditAsTwoCell, EditAsAbsolute:
		return o.EditAs, nil
	default:
		return "", errs.Argumentf("editAs %q must be oneCell, twoCell or absolute", o.EditAs)
	}
}

// Result describes the parts touched by one injection.
type Result struct {
	SheetPart      string
	DrawingPart    string
	DrawingCreated bool
	ChartPart      string
	ChartRelID     string
	FrameID        int
	FrameName      string
}

// Inject renders spec and places it on sheetName at spec.Anchor, returning
// the patched package. data is left untouched.
func Inject(data []byte, sheetName string, spec *models.ChartSpec, opts Options) ([]byte, error) {
	out, _, err := InjectWithResult(data, sheetName, spec, opts)
	return out, err
}

// InjectWithResult is Inject that also reports which parts were written.
func InjectWithResult(data []byte, sheetName string, spec *models.ChartSpec, opts Options) ([]byte, *Result, error) {
	editAs, err := opts.editAs()
	if err != nil {
		return nil, nil, err
	}
	chartXML, err := chartxml.Generate(spec)
	if err != nil {
		return nil, nil, err
	}

	pkg, err := opc.Open(data)
	if err != nil {
		return nil, nil, err
	}
	sheet, err := pkg.SheetByName(sheetName)
	if err != nil {
		return nil, nil, err
	}

	res := &Result{SheetPart: sheet.Part}
	if res.DrawingPart, res.DrawingCreated, err = ensureDrawing(pkg, sheet.Part); err != nil {
		return nil, nil, err
	}

	chartPart, chartNum := pkg.NextPartName(chartPrefix)
	pkg.WritePart(chartPart, chartXML)
	if err := pkg.RegisterPart(chartPart, opc.ContentTypeChart); err != nil {
		return nil, nil, err
	}
	res.ChartPart = chartPart

	drawingRels, drawingRelsRaw, err := pkg.ReadRels(res.DrawingPart)
	if err != nil {
		return nil, nil, err
	}
	res.ChartRelID = drawingRels.NextID()
	updated, err := opc.AddRelationship(drawingRelsRaw, opc.Relationship{
		ID:     res.ChartRelID,
		Type:   opc.RelTypeChart,
		Target: opc.RelativePath(res.DrawingPart, chartPart),
	})
	if err != nil {
		return nil, nil, err
	}
	pkg.WritePart(opc.RelsPath(res.DrawingPart), updated)

	drawingXML, err := pkg.ReadPart(res.DrawingPart)
	if err != nil {
		return nil, nil, err
	}
	res.FrameID, res.FrameName = frameIdentity(drawingXML, chartNum)
	drawingXML, err = appendChartFrame(drawingXML, frame{
		anchor: spec.Anchor,
		id:     res.FrameID,
		name:   res.FrameName,
		relID:  res.ChartRelID,
		editAs: editAs,
	})
	if err != nil {
		return nil, nil, err
	}
	pkg.WritePart(res.DrawingPart, drawingXML)

	out, err := pkg.Bytes()
	if err != nil {
		return nil, nil, err
	}

	opts.logger().Debug("chart injected",
		slog.String("sheet", sheetName),
		slog.String("anchor", spec.AnchorRef),
		slog.String("chart_part", res.ChartPart),
		slog.String("drawing_part", res.DrawingPart),
		slog.Bool("drawing_created", res.DrawingCreated),
		slog.String("rel_id", res.ChartRelID),
	)
	return out, res, nil
}

// ensureDrawing returns the sheet's drawing part, creating and linking one
// when the sheet has none.
func ensureDrawing(pkg *opc.Package, sheetPart string) (string, bool, error) {
	sheetRels, sheetRelsRaw, err := pkg.ReadRels(sheetPart)
	if err != nil {
		return "", false, err
	}
	sheetXML, err := pkg.ReadPart(sheetPart)
	if err != nil {
		return "", false, err
	}

	if rel, ok := sheetRels.FirstOfType(opc.RelTypeDrawing); ok {
		drawingPart := opc.ResolveTarget(sheetPart, rel.Target)
		if !pkg.Has(drawingPart) {
			return "", false, errs.Structuralf("drawing %s referenced by %s is missing", drawingPart, sheetPart)
		}
		doc, err := opc.ParseDocument(sheetXML)
		if err != nil {
			return "", false, fmt.Errorf("worksheet: %w", err)
		}
		if !doc.HasChild("drawing") {
			if sheetXML, err = insertDrawingRef(sheetXML, rel.ID); err != nil {
				return "", false, err
			}
			pkg.WritePart(sheetPart, sheetXML)
		}
		return drawingPart, false, nil
	}

	drawingPart, _ := pkg.NextPartName(drawingPrefix)
	relID := sheetRels.NextID()

	if sheetXML, err = insertDrawingRef(sheetXML, relID); err != nil {
		return "", false, err
	}
	updated, err := opc.AddRelationship(sheetRelsRaw, opc.Relationship{
		ID:     relID,
		Type:   opc.RelTypeDrawing,
		Target: opc.RelativePath(sheetPart, drawingPart),
	})
	if err != nil {
		return "", false, err
	}

	pkg.WritePart(drawingPart, emptyDrawing())
	pkg.WritePart(opc.RelsPath(drawingPart), opc.EmptyRels())
	pkg.WritePart(opc.RelsPath(sheetPart), updated)
	pkg.WritePart(sheetPart, sheetXML)
	if err := pkg.RegisterPart(drawingPart, opc.ContentTypeDrawing); err != nil {
		return "", false, err
	}
	return drawingPart, true, nil
}
