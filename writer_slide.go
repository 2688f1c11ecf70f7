package godeck

import (
	"archive/zip"
	"fmt"
	"math"
	"strings"
)

func (w *PPTXWriter) writeSlide(zw *zip.Writer, slide *Slide, slideNum int) error {
	var shapesXML strings.Builder
	shapeID := 2 // 1 is reserved for the group shape

	for _, shape := range slide.shapes {
		switch s := shape.(type) {
		case *RichTextShape:
			shapesXML.WriteString(w.writeRichTextShapeXML(s, &shapeID))
		case *AutoShape:
			shapesXML.WriteString(w.writeAutoShapeXML(s, &shapeID))
		}
	}

	bgXML := ""
	if slide.background != nil && slide.background.Type != FillNone {
		bgXML = "    <p:bg>\n      <p:bgPr>\n"
		bgXML += w.writeFillXML(slide.background)
		bgXML += "        <a:effectLst/>\n      </p:bgPr>\n    </p:bg>\n"
	}

	nameAttr := ""
	if slide.name != "" {
		nameAttr = fmt.Sprintf(` name="%s"`, xmlEscape(slide.name))
	}

	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld%s>
%s    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, nameAttr, bgXML, shapesXML.String())

	return w.writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/slide%d.xml", slideNum), content)
}

func (w *PPTXWriter) writeSlideRels(zw *zip.Writer, slideNum int) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">
  <Relationship Id="rId1" Type="%s" Target="../slideLayouts/slideLayout1.xml"/>
</Relationships>`, nsRelationships, relTypeSlideLayout)
	return w.writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideNum), content)
}

// xfrmAttrs returns the rotation attribute for <a:xfrm>, if any.
func xfrmAttrs(b *BaseShape) string {
	if b.rotation == 0 {
		return ""
	}
	return fmt.Sprintf(` rot="%d"`, b.rotation*60000)
}

func descrAttr(b *BaseShape) string {
	if b.description == "" {
		return ""
	}
	return fmt.Sprintf(` descr="%s"`, xmlEscape(b.description))
}

func (w *PPTXWriter) writeRichTextShapeXML(s *RichTextShape, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := s.name
	if name == "" {
		name = fmt.Sprintf("TextBox %d", id)
	}

	fillXML := w.writeFillXML(s.fill)
	if fillXML == "" {
		fillXML = "          <a:noFill/>\n"
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"%s/>
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
%s%s        </p:spPr>
%s      </p:sp>
`, id, xmlEscape(name), descrAttr(&s.BaseShape), xfrmAttrs(&s.BaseShape),
		s.offsetX, s.offsetY, s.width, s.height,
		fillXML, w.writeBorderXML(s.border),
		w.writeTextBodyXML(&s.TextBody))
}

func (w *PPTXWriter) writeAutoShapeXML(s *AutoShape, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := s.name
	if name == "" {
		name = fmt.Sprintf("Shape %d", id)
	}

	fillXML := w.writeFillXML(s.fill)
	if fillXML == "" {
		fillXML = "          <a:noFill/>\n"
	}
	borderXML := w.writeBorderXML(s.border)
	if borderXML == "" {
		borderXML = "          <a:ln>\n            <a:noFill/>\n          </a:ln>\n"
	}

	textXML := ""
	if s.HasText() {
		textXML = w.writeTextBodyXML(&s.TextBody)
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"%s/>
          <p:cNvSpPr/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="%s">
            <a:avLst/>
          </a:prstGeom>
%s%s        </p:spPr>
%s      </p:sp>
`, id, xmlEscape(name), descrAttr(&s.BaseShape), xfrmAttrs(&s.BaseShape),
		s.offsetX, s.offsetY, s.width, s.height,
		s.shapeType,
		fillXML, borderXML, textXML)
}

func (w *PPTXWriter) writeTextBodyXML(tb *TextBody) string {
	attrs := fmt.Sprintf(` wrap="%s"`, boolToWrap(tb.wordWrap))
	if tb.insetsSet {
		attrs += fmt.Sprintf(` lIns="%d" tIns="%d" rIns="%d" bIns="%d"`,
			tb.insetLeft, tb.insetTop, tb.insetRight, tb.insetBottom)
	}
	attrs += textAnchorAttr(tb.textAnchor)

	var paragraphsXML strings.Builder
	for _, para := range tb.paragraphs {
		paragraphsXML.WriteString(w.writeParagraphXML(para))
	}
	if len(tb.paragraphs) == 0 {
		paragraphsXML.WriteString("          <a:p/>\n")
	}

	return fmt.Sprintf(`        <p:txBody>
          <a:bodyPr%s rtlCol="0"/>
          <a:lstStyle/>
%s        </p:txBody>
`, attrs, paragraphsXML.String())
}

func boolToWrap(wrap bool) string {
	if wrap {
		return "square"
	}
	return "none"
}

// textAnchorAttr returns the anchor attribute string for <a:bodyPr>.
func textAnchorAttr(anchor TextAnchorType) string {
	if anchor == TextAnchorNone {
		return ""
	}
	return fmt.Sprintf(` anchor="%s"`, string(anchor))
}

func (w *PPTXWriter) writeParagraphXML(para *Paragraph) string {
	algn := ""
	if align := para.alignment; align != nil {
		if align.Horizontal != "" {
			algn = fmt.Sprintf(` algn="%s"`, align.Horizontal)
		}
		if align.Level > 0 {
			algn += fmt.Sprintf(` lvl="%d"`, align.Level)
		}
	}

	var elementsXML strings.Builder
	var lastFont *Font
	for _, elem := range para.elements {
		switch e := elem.(type) {
		case *TextRun:
			elementsXML.WriteString(w.writeTextRunXML(e))
			lastFont = e.font
		case *BreakElement:
			elementsXML.WriteString("            <a:br>\n")
			elementsXML.WriteString(w.writeRunPropsXML("a:rPr", lastFont))
			elementsXML.WriteString("            </a:br>\n")
		}
	}

	spacing := ""
	if para.spaceBefore > 0 {
		spacing += fmt.Sprintf(`
              <a:spcBef><a:spcPts val="%d"/></a:spcBef>`, para.spaceBefore)
	}
	if para.spaceAfter > 0 {
		spacing += fmt.Sprintf(`
              <a:spcAft><a:spcPts val="%d"/></a:spcAft>`, para.spaceAfter)
	}
	pPr := fmt.Sprintf("            <a:pPr%s/>\n", algn)
	if spacing != "" {
		pPr = fmt.Sprintf("            <a:pPr%s>%s\n            </a:pPr>\n", algn, spacing)
	}

	return fmt.Sprintf(`          <a:p>
%s%s          </a:p>
`, pPr, elementsXML.String())
}

func (w *PPTXWriter) writeTextRunXML(tr *TextRun) string {
	return fmt.Sprintf(`            <a:r>
%s              <a:t>%s</a:t>
            </a:r>
`, w.writeRunPropsXML("a:rPr", tr.font), xmlEscape(tr.text))
}

// writeRunPropsXML renders run properties under the given element name.
// A nil font yields a bare element carrying only the language.
func (w *PPTXWriter) writeRunPropsXML(elem string, font *Font) string {
	lang := w.presentation.properties.languageTag()
	if font == nil {
		return fmt.Sprintf("              <%s lang=\"%s\" dirty=\"0\"/>\n", elem, lang)
	}
	attrs := fmt.Sprintf(` lang="%s" sz="%d"`, lang, fontSizeHundredths(font.Size))
	if font.Bold {
		attrs += ` b="1"`
	}
	if font.Italic {
		attrs += ` i="1"`
	}
	attrs += ` dirty="0"`

	solidFill := ""
	if font.Color.ARGB != "" {
		solidFill = fmt.Sprintf(`
                <a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, colorRGB(font.Color))
	}

	typeface := ""
	if font.Name != "" {
		name := xmlEscape(font.Name)
		typeface = fmt.Sprintf(`
                <a:latin typeface="%s"/>
                <a:ea typeface="%s"/>
                <a:cs typeface="%s"/>`, name, name, name)
	}

	return fmt.Sprintf(`              <%s%s>%s%s
              </%s>
`, elem, attrs, solidFill, typeface, elem)
}

// fontSizeHundredths converts a point size to the sz attribute value.
func fontSizeHundredths(size float64) int {
	return int(math.Round(size * 100))
}

func (w *PPTXWriter) writeFillXML(f *Fill) string {
	if f == nil {
		return ""
	}
	switch f.Type {
	case FillSolid:
		return fmt.Sprintf("          <a:solidFill><a:srgbClr val=\"%s\"/></a:solidFill>\n", colorRGB(f.Color))
	default:
		return ""
	}
}

func (w *PPTXWriter) writeBorderXML(b *Border) string {
	if b == nil || b.Style == BorderNone {
		return ""
	}
	var dashXML string
	switch b.Style {
	case BorderDash:
		dashXML = "<a:prstDash val=\"dash\"/>"
	case BorderDot:
		dashXML = "<a:prstDash val=\"dot\"/>"
	}
	return fmt.Sprintf("          <a:ln w=\"%d\"><a:solidFill><a:srgbClr val=\"%s\"/></a:solidFill>%s</a:ln>\n",
		b.Width, colorRGB(b.Color), dashXML)
}
