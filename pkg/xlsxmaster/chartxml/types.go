package chartxml

import "encoding/xml"

// Namespaces used by chart parts.
const (
	NamespaceChart         = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	NamespaceDrawingML     = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NamespaceRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// The element names below carry their prefix literally, the same way excelize
// declares its chart structs, so the output uses c:/a: prefixes throughout.

type attrBool struct {
	Val bool `xml:"val,attr"`
}

type attrInt struct {
	Val int `xml:"val,attr"`
}

type attrString struct {
	Val string `xml:"val,attr"`
}

type xlsxChartSpace struct {
	XMLName        xml.Name  `xml:"c:chartSpace"`
	XMLNSc         string    `xml:"xmlns:c,attr"`
	XMLNSa         string    `xml:"xmlns:a,attr"`
	XMLNSr         string    `xml:"xmlns:r,attr"`
	Date1904       attrBool  `xml:"c:date1904"`
	RoundedCorners attrBool  `xml:"c:roundedCorners"`
	Style          *attrInt  `xml:"c:style"`
	Chart          xlsxChart `xml:"c:chart"`
}

type xlsxChart struct {
	Title            *xlsxTitle   `xml:"c:title"`
	AutoTitleDeleted attrBool     `xml:"c:autoTitleDeleted"`
	PlotArea         xlsxPlotArea `xml:"c:plotArea"`
	Legend           *xlsxLegend  `xml:"c:legend"`
	PlotVisOnly      attrBool     `xml:"c:plotVisOnly"`
	DispBlanksAs     attrString   `xml:"c:dispBlanksAs"`
	ShowDLblsOverMax attrBool     `xml:"c:showDLblsOverMax"`
}

// xlsxPlotArea lists plots before axes. Plots carry no tag so each takes its
// element name (c:barChart, c:lineChart, ...) from its XMLName.
type xlsxPlotArea struct {
	Layout string      `xml:"c:layout"`
	Plots  []xlsxPlot
	CatAx  []xlsxCatAx `xml:"c:catAx"`
	ValAx  []xlsxValAx `xml:"c:valAx"`
}

// xlsxPlot covers every supported plot element; unused children stay nil.
type xlsxPlot struct {
	XMLName       xml.Name
	BarDir        *attrString  `xml:"c:barDir"`
	ScatterStyle  *attrString  `xml:"c:scatterStyle"`
	Grouping      *attrString  `xml:"c:grouping"`
	VaryColors    attrBool     `xml:"c:varyColors"`
	Ser           []xlsxSeries `xml:"c:ser"`
	Overlap       *attrInt     `xml:"c:overlap"`
	Marker        *attrBool    `xml:"c:marker"`
	Smooth        *attrBool    `xml:"c:smooth"`
	FirstSliceAng *attrInt     `xml:"c:firstSliceAng"`
	AxID          []attrInt    `xml:"c:axId"`
}

type xlsxSeries struct {
	Idx    attrInt      `xml:"c:idx"`
	Order  attrInt      `xml:"c:order"`
	Tx     xlsxSeriesTx `xml:"c:tx"`
	SpPr   *xlsxSpPr    `xml:"c:spPr"`
	Marker *xlsxMarker  `xml:"c:marker"`
	DLbls  *xlsxDLbls   `xml:"c:dLbls"`
	Cat    *xlsxDataRef `xml:"c:cat"`
	Val    *xlsxDataRef `xml:"c:val"`
	XVal   *xlsxDataRef `xml:"c:xVal"`
	YVal   *xlsxDataRef `xml:"c:yVal"`
	Smooth *attrBool    `xml:"c:smooth"`
}

type xlsxSeriesTx struct {
	V string `xml:"c:v"`
}

type xlsxSpPr struct {
	SolidFill xlsxSolidFill `xml:"a:solidFill"`
	Ln        *xlsxLine     `xml:"a:ln"`
}

type xlsxLine struct {
	SolidFill xlsxSolidFill `xml:"a:solidFill"`
}

type xlsxSolidFill struct {
	SrgbClr attrString `xml:"a:srgbClr"`
}

type xlsxMarker struct {
	Symbol attrString `xml:"c:symbol"`
	Size   *attrInt   `xml:"c:size"`
}

type xlsxDLbls struct {
	NumFmt         xlsxNumFmt `xml:"c:numFmt"`
	ShowLegendKey  attrBool   `xml:"c:showLegendKey"`
	ShowVal        attrBool   `xml:"c:showVal"`
	ShowCatName    attrBool   `xml:"c:showCatName"`
	ShowSerName    attrBool   `xml:"c:showSerName"`
	ShowPercent    attrBool   `xml:"c:showPercent"`
	ShowBubbleSize attrBool   `xml:"c:showBubbleSize"`
}

type xlsxNumFmt struct {
	FormatCode   string `xml:"formatCode,attr"`
	SourceLinked bool   `xml:"sourceLinked,attr"`
}

// xlsxDataRef holds either a string reference (categories) or a number reference.
type xlsxDataRef struct {
	StrRef *xlsxRef `xml:"c:strRef"`
	NumRef *xlsxRef `xml:"c:numRef"`
}

type xlsxRef struct {
	F string `xml:"c:f"`
}

type xlsxTitle struct {
	Tx      xlsxTitleTx `xml:"c:tx"`
	Overlay attrBool    `xml:"c:overlay"`
}

type xlsxTitleTx struct {
	Rich xlsxRich `xml:"c:rich"`
}

type xlsxRich struct {
	BodyPr   string `xml:"a:bodyPr"`
	LstStyle string `xml:"a:lstStyle"`
	P        xlsxP  `xml:"a:p"`
}

type xlsxP struct {
	R xlsxR `xml:"a:r"`
}

type xlsxR struct {
	RPr xlsxRPr `xml:"a:rPr"`
	T   string  `xml:"a:t"`
}

type xlsxRPr struct {
	Lang string `xml:"lang,attr"`
}

type xlsxLegend struct {
	LegendPos attrString `xml:"c:legendPos"`
	Overlay   attrBool   `xml:"c:overlay"`
}

type xlsxScaling struct {
	Orientation attrString  `xml:"c:orientation"`
	Max         *attrString `xml:"c:max"`
	Min         *attrString `xml:"c:min"`
}

type xlsxCatAx struct {
	AxID          attrInt     `xml:"c:axId"`
	Scaling       xlsxScaling `xml:"c:scaling"`
	Delete        attrBool    `xml:"c:delete"`
	AxPos         attrString  `xml:"c:axPos"`
	Title         *xlsxTitle  `xml:"c:title"`
	NumFmt        xlsxNumFmt  `xml:"c:numFmt"`
	MajorTickMark attrString  `xml:"c:majorTickMark"`
	MinorTickMark attrString  `xml:"c:minorTickMark"`
	TickLblPos    attrString  `xml:"c:tickLblPos"`
	CrossAx       attrInt     `xml:"c:crossAx"`
	Crosses       attrString  `xml:"c:crosses"`
	Auto          attrBool    `xml:"c:auto"`
	LblAlgn       attrString  `xml:"c:lblAlgn"`
}

type xlsxValAx struct {
	AxID          attrInt     `xml:"c:axId"`
	Scaling       xlsxScaling `xml:"c:scaling"`
	Delete        attrBool    `xml:"c:delete"`
	AxPos         attrString  `xml:"c:axPos"`
	Title         *xlsxTitle  `xml:"c:title"`
	NumFmt        xlsxNumFmt  `xml:"c:numFmt"`
	MajorTickMark attrString  `xml:"c:majorTickMark"`
	MinorTickMark attrString  `xml:"c:minorTickMark"`
	TickLblPos    attrString  `xml:"c:tickLblPos"`
	CrossAx       attrInt     `xml:"c:crossAx"`
	Crosses       attrString  `xml:"c:crosses"`
	CrossBetween  attrString  `xml:"c:crossBetween"`
}
