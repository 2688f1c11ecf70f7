package godeck

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
)

func (r *PPTXReader) readSlide(files map[string]*zip.File, path string) (*Slide, error) {
	data, err := readFileFromZip(files, path)
	if err != nil {
		return nil, err
	}

	slide := newSlide()
	if err := r.parseSlideXML(xml.NewDecoder(bytes.NewReader(data)), slide); err != nil {
		return nil, err
	}
	return slide, nil
}

// pendingShape collects the properties of one <p:sp> until its end tag.
type pendingShape struct {
	base       BaseShape
	txBox      bool
	prstGeom   string
	hasTxBody  bool
	body       TextBody
	fill       *Fill
	lnNoFill   bool
	lnWidth    int64
	lnStyle    BorderStyle
	lnHasColor bool
	lnColor    Color
}

func (ps *pendingShape) build() Shape {
	ps.base.fill = ps.fill
	if ps.lnHasColor && !ps.lnNoFill {
		style := ps.lnStyle
		if style == "" {
			style = BorderSolid
		}
		ps.base.border = &Border{Style: style, Width: ps.lnWidth, Color: ps.lnColor}
	}

	if ps.txBox {
		rt := &RichTextShape{BaseShape: ps.base, TextBody: ps.body}
		if len(rt.paragraphs) == 0 {
			rt.paragraphs = []*Paragraph{NewParagraph()}
		}
		return rt
	}
	if !ps.hasTxBody {
		ps.body.wordWrap = true
	}
	as := &AutoShape{BaseShape: ps.base, TextBody: ps.body, shapeType: AutoShapeType(ps.prstGeom)}
	if as.shapeType == "" {
		as.shapeType = AutoShapeRectangle
	}
	return as
}

func (r *PPTXReader) parseSlideXML(decoder *xml.Decoder, slide *Slide) error {
	type parseState struct {
		inSp      bool
		inSpPr    bool
		inXfrm    bool
		inLn      bool
		inBg      bool
		inTxBody  bool
		inRun     bool
		inRunPr   bool
		inText    bool
		inSpcBef  bool
		inSpcAft  bool
		inExtLst  bool
		solidFill bool
	}

	state := &parseState{}
	var shape *pendingShape
	var currentParagraph *Paragraph
	var currentRun *TextRun

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if state.inExtLst {
				continue
			}
			switch t.Name.Local {
			case "extLst":
				state.inExtLst = true
			case "cSld":
				if v := attrValue(t, "name"); v != "" {
					slide.name = v
				}
			case "bg":
				state.inBg = true
			case "sp":
				state.inSp = true
				shape = &pendingShape{}
			case "cNvPr":
				if shape != nil {
					shape.base.name = attrValue(t, "name")
					shape.base.description = attrValue(t, "descr")
				}
			case "cNvSpPr":
				if shape != nil && attrValue(t, "txBox") == "1" {
					shape.txBox = true
				}
			case "spPr":
				if state.inSp {
					state.inSpPr = true
				}
			case "xfrm":
				if state.inSpPr {
					state.inXfrm = true
					if rot, ok := attrInt(t, "rot"); ok {
						shape.base.rotation = int(rot / 60000)
					}
				}
			case "off":
				if state.inXfrm {
					shape.base.offsetX, _ = attrInt(t, "x")
					shape.base.offsetY, _ = attrInt(t, "y")
				}
			case "ext":
				if state.inXfrm {
					shape.base.width, _ = attrInt(t, "cx")
					shape.base.height, _ = attrInt(t, "cy")
				}
			case "prstGeom":
				if state.inSpPr {
					shape.prstGeom = attrValue(t, "prst")
				}
			case "ln":
				if state.inSpPr {
					state.inLn = true
					shape.lnWidth, _ = attrInt(t, "w")
				}
			case "prstDash":
				if state.inLn {
					switch attrValue(t, "val") {
					case "dash":
						shape.lnStyle = BorderDash
					case "dot":
						shape.lnStyle = BorderDot
					}
				}
			case "noFill":
				if state.inLn {
					shape.lnNoFill = true
				}
			case "solidFill":
				state.solidFill = true
			case "srgbClr":
				if !state.solidFill {
					continue
				}
				c := NewColor(attrValue(t, "val"))
				switch {
				case state.inBg:
					slide.SetBackgroundColor(c)
				case state.inRunPr && currentRun != nil:
					currentRun.font.Color = c
				case state.inLn:
					shape.lnHasColor = true
					shape.lnColor = c
				case state.inSpPr:
					shape.fill = NewFill().SetSolid(c)
				}
			case "txBody":
				if state.inSp {
					state.inTxBody = true
					shape.hasTxBody = true
					shape.body.wordWrap = true
				}
			case "bodyPr":
				if state.inTxBody {
					readBodyPr(t, &shape.body)
				}
			case "p":
				if state.inTxBody {
					currentParagraph = NewParagraph()
					shape.body.paragraphs = append(shape.body.paragraphs, currentParagraph)
				}
			case "pPr":
				if currentParagraph != nil {
					if v := attrValue(t, "algn"); v != "" {
						currentParagraph.alignment.Horizontal = HorizontalAlignment(v)
					}
					if lvl, ok := attrInt(t, "lvl"); ok {
						currentParagraph.alignment.Level = int(lvl)
					}
				}
			case "spcBef":
				state.inSpcBef = true
			case "spcAft":
				state.inSpcAft = true
			case "spcPts":
				if currentParagraph != nil {
					v, _ := attrInt(t, "val")
					if state.inSpcBef {
						currentParagraph.spaceBefore = int(v)
					} else if state.inSpcAft {
						currentParagraph.spaceAfter = int(v)
					}
				}
			case "r":
				if currentParagraph != nil {
					state.inRun = true
					currentRun = currentParagraph.CreateTextRun("")
				}
			case "br":
				if currentParagraph != nil {
					currentParagraph.CreateBreak()
				}
			case "rPr":
				if state.inRun && currentRun != nil {
					state.inRunPr = true
					readRunProps(t, currentRun.font)
				}
			case "latin":
				if state.inRunPr && currentRun != nil {
					if tf := attrValue(t, "typeface"); tf != "" {
						currentRun.font.Name = tf
					}
				}
			case "t":
				if state.inRun {
					state.inText = true
				}
			}

		case xml.CharData:
			if state.inText && currentRun != nil {
				currentRun.text += string(t)
			}

		case xml.EndElement:
			if state.inExtLst {
				if t.Name.Local == "extLst" {
					state.inExtLst = false
				}
				continue
			}
			switch t.Name.Local {
			case "bg":
				state.inBg = false
			case "sp":
				if shape != nil {
					slide.shapes = append(slide.shapes, shape.build())
				}
				shape = nil
				currentParagraph = nil
				currentRun = nil
				*state = parseState{}
			case "spPr":
				state.inSpPr = false
			case "xfrm":
				state.inXfrm = false
			case "ln":
				state.inLn = false
			case "solidFill":
				state.solidFill = false
			case "txBody":
				state.inTxBody = false
			case "p":
				currentParagraph = nil
			case "spcBef":
				state.inSpcBef = false
			case "spcAft":
				state.inSpcAft = false
			case "r":
				state.inRun = false
				currentRun = nil
			case "rPr":
				state.inRunPr = false
			case "t":
				state.inText = false
			}
		}
	}
	return nil
}

func readBodyPr(t xml.StartElement, body *TextBody) {
	if attrValue(t, "wrap") == "none" {
		body.wordWrap = false
	}
	if v := attrValue(t, "anchor"); v != "" {
		body.textAnchor = TextAnchorType(v)
	}
	l, okL := attrInt(t, "lIns")
	tp, okT := attrInt(t, "tIns")
	rt, okR := attrInt(t, "rIns")
	b, okB := attrInt(t, "bIns")
	if okL || okT || okR || okB {
		dl, dt, dr, db := body.GetInsets()
		if !okL {
			l = dl
		}
		if !okT {
			tp = dt
		}
		if !okR {
			rt = dr
		}
		if !okB {
			b = db
		}
		body.SetInsets(l, tp, rt, b)
	}
}

func readRunProps(t xml.StartElement, font *Font) {
	if sz, ok := attrInt(t, "sz"); ok {
		font.Size = float64(sz) / 100
	}
	font.Bold = attrValue(t, "b") == "1"
	font.Italic = attrValue(t, "i") == "1"
}

func attrValue(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func attrInt(t xml.StartElement, name string) (int64, bool) {
	v := attrValue(t, name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
