package parser

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/errs"
	"github.com/ukaji3/xlsxmaster-go/pkg/xlsxmaster/models"
)

// chartFrame is a graphic frame in a drawing part that points at a chart.
type chartFrame struct {
	name   string
	relID  string
	anchor models.Anchor
}

// parseDrawingFrames returns the chart frames of a drawing part in document
// order. Anchors that hold pictures or shapes are skipped.
func parseDrawingFrames(data []byte) ([]chartFrame, error) {
	var frames []chartFrame
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Structuralf("drawing: %v", err)
		}

		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "twoCellAnchor", "oneCellAnchor", "absoluteAnchor":
			frame, err := parseAnchorElement(decoder)
			if err != nil {
				return nil, errs.Structuralf("drawing: %v", err)
			}
			if frame.relID != "" {
				frames = append(frames, frame)
			}
		}
	}

	return frames, nil
}

// parseAnchorElement consumes one anchor element. A oneCellAnchor has no
// "to" marker, so its box collapses onto the "from" cell.
func parseAnchorElement(decoder *xml.Decoder) (chartFrame, error) {
	var frame chartFrame
	hasTo := false
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return frame, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "from":
				col, row, err := parseMarker(decoder)
				if err != nil {
					return frame, err
				}
				frame.anchor.ColFrom, frame.anchor.RowFrom = col, row
				depth--
			case "to":
				col, row, err := parseMarker(decoder)
				if err != nil {
					return frame, err
				}
				frame.anchor.ColTo, frame.anchor.RowTo = col, row
				hasTo = true
				depth--
			case "cNvPr":
				frame.name = attrValue(t, "name")
			case "chart":
				frame.relID = attrValue(t, "id")
			}
		case xml.EndElement:
			depth--
		}
	}

	if !hasTo {
		frame.anchor.ColTo, frame.anchor.RowTo = frame.anchor.ColFrom, frame.anchor.RowFrom
	}
	return frame, nil
}

func parseMarker(decoder *xml.Decoder) (col, row int, err error) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return 0, 0, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "col", "row":
				txt, err := readElementText(decoder)
				if err != nil {
					return 0, 0, err
				}
				v, err := strconv.Atoi(strings.TrimSpace(txt))
				if err != nil {
					return 0, 0, err
				}
				if t.Name.Local == "col" {
					col = v
				} else {
					row = v
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return col, row, nil
}
