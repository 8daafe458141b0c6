// Package parser reads chart metadata back out of spreadsheet packages.
package parser

import (
	"encoding/xml"
	"strconv"
	"strings"
)

func readElementText(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}

func attrValue(se xml.StartElement, local string) string {
	for _, attr := range se.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}

// boolValue reads a CT_Boolean val attribute, which defaults to true.
func boolValue(se xml.StartElement) bool {
	switch attrValue(se, "val") {
	case "0", "false":
		return false
	default:
		return true
	}
}

func floatValue(se xml.StartElement) *float64 {
	v, err := strconv.ParseFloat(attrValue(se, "val"), 64)
	if err != nil {
		return nil
	}
	return &v
}
