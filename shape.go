package godeck

import "strings"

// Shape is the interface that all shapes implement.
type Shape interface {
	GetType() ShapeType
	GetOffsetX() int64
	GetOffsetY() int64
	GetWidth() int64
	GetHeight() int64
	GetName() string
	// base returns the underlying BaseShape (unexported, internal use only).
	base() *BaseShape
}

// ShapeType represents the type of shape.
type ShapeType int

const (
	ShapeTypeRichText ShapeType = iota
	ShapeTypeAutoShape
)

// BaseShape contains common shape properties.
type BaseShape struct {
	name        string
	description string
	offsetX     int64 // in EMU
	offsetY     int64 // in EMU
	width       int64 // in EMU
	height      int64 // in EMU
	rotation    int   // in degrees
	fill        *Fill
	border      *Border
}

func (b *BaseShape) GetOffsetX() int64 { return b.offsetX }
func (b *BaseShape) GetOffsetY() int64 { return b.offsetY }
func (b *BaseShape) GetWidth() int64   { return b.width }
func (b *BaseShape) GetHeight() int64  { return b.height }
func (b *BaseShape) GetName() string   { return b.name }
func (b *BaseShape) GetRotation() int  { return b.rotation }
func (b *BaseShape) base() *BaseShape  { return b }

func (b *BaseShape) SetName(n string) *BaseShape  { b.name = n; return b }
func (b *BaseShape) SetRotation(r int) *BaseShape { b.rotation = ((r % 360) + 360) % 360; return b }

// SetPosition sets both offset X and Y in EMU.
func (b *BaseShape) SetPosition(x, y int64) *BaseShape {
	b.offsetX = x
	b.offsetY = y
	return b
}

// SetSize sets both width and height in EMU.
func (b *BaseShape) SetSize(w, h int64) *BaseShape {
	b.width = w
	b.height = h
	return b
}

func (b *BaseShape) GetDescription() string  { return b.description }
func (b *BaseShape) SetDescription(d string) { b.description = d }

func (b *BaseShape) GetFill() *Fill {
	if b.fill == nil {
		b.fill = NewFill()
	}
	return b.fill
}

func (b *BaseShape) SetFill(f *Fill) { b.fill = f }

func (b *BaseShape) GetBorder() *Border {
	if b.border == nil {
		b.border = NewBorder()
	}
	return b.border
}

func (b *BaseShape) SetBorder(border *Border) { b.border = border }

// TextAnchorType represents the vertical anchoring of text within a shape.
type TextAnchorType string

const (
	TextAnchorTop    TextAnchorType = "t"
	TextAnchorMiddle TextAnchorType = "ctr"
	TextAnchorBottom TextAnchorType = "b"
	TextAnchorNone   TextAnchorType = ""
)

// Default text insets in EMU, as PowerPoint applies them when bodyPr omits them.
const (
	DefaultInsetLeftRight int64 = 91440
	DefaultInsetTopBottom int64 = 45720
)

// TextBody holds the text frame shared by text boxes and auto shapes.
type TextBody struct {
	paragraphs      []*Paragraph
	activeParagraph int
	wordWrap        bool
	textAnchor      TextAnchorType
	insetLeft       int64
	insetRight      int64
	insetTop        int64
	insetBottom     int64
	insetsSet       bool
}

type textShape interface {
	Shape
	textBody() *TextBody
}

func (t *TextBody) textBody() *TextBody { return t }

// GetActiveParagraph returns the active paragraph, creating one if needed.
func (t *TextBody) GetActiveParagraph() *Paragraph {
	if len(t.paragraphs) == 0 {
		t.paragraphs = append(t.paragraphs, NewParagraph())
		t.activeParagraph = 0
	}
	return t.paragraphs[t.activeParagraph]
}

// CreateParagraph creates a new paragraph and makes it active.
func (t *TextBody) CreateParagraph() *Paragraph {
	p := NewParagraph()
	t.paragraphs = append(t.paragraphs, p)
	t.activeParagraph = len(t.paragraphs) - 1
	return p
}

// GetParagraphs returns all paragraphs.
func (t *TextBody) GetParagraphs() []*Paragraph {
	return t.paragraphs
}

// CreateTextRun creates a text run in the active paragraph.
func (t *TextBody) CreateTextRun(text string) *TextRun {
	return t.GetActiveParagraph().CreateTextRun(text)
}

// CreateBreak creates a line break in the active paragraph.
func (t *TextBody) CreateBreak() *BreakElement {
	return t.GetActiveParagraph().CreateBreak()
}

// HasText reports whether any paragraph holds a text run.
func (t *TextBody) HasText() bool {
	for _, p := range t.paragraphs {
		for _, e := range p.elements {
			if _, ok := e.(*TextRun); ok {
				return true
			}
		}
	}
	return false
}

// SetWordWrap sets word wrap.
func (t *TextBody) SetWordWrap(wrap bool) { t.wordWrap = wrap }

// GetWordWrap returns word wrap setting.
func (t *TextBody) GetWordWrap() bool { return t.wordWrap }

// SetTextAnchor sets the vertical position of text within the shape.
func (t *TextBody) SetTextAnchor(anchor TextAnchorType) { t.textAnchor = anchor }

// GetTextAnchor returns the text anchoring type.
func (t *TextBody) GetTextAnchor() TextAnchorType { return t.textAnchor }

// SetInsets sets the text insets (padding) in EMU.
func (t *TextBody) SetInsets(left, top, right, bottom int64) {
	t.insetLeft, t.insetTop, t.insetRight, t.insetBottom = left, top, right, bottom
	t.insetsSet = true
}

// GetInsets returns the effective text insets in EMU.
func (t *TextBody) GetInsets() (left, top, right, bottom int64) {
	if !t.insetsSet {
		return DefaultInsetLeftRight, DefaultInsetTopBottom, DefaultInsetLeftRight, DefaultInsetTopBottom
	}
	return t.insetLeft, t.insetTop, t.insetRight, t.insetBottom
}

// RichTextShape represents a text box.
type RichTextShape struct {
	BaseShape
	TextBody
}

func (r *RichTextShape) GetType() ShapeType { return ShapeTypeRichText }

// NewRichTextShape creates a new text box with one empty paragraph.
func NewRichTextShape() *RichTextShape {
	return &RichTextShape{
		TextBody: TextBody{
			paragraphs: []*Paragraph{NewParagraph()},
			wordWrap:   true,
		},
	}
}

// SetHeight sets the height and returns the shape for chaining.
func (r *RichTextShape) SetHeight(h int64) *RichTextShape {
	r.height = h
	return r
}

// SetWidth sets the width and returns the shape for chaining.
func (r *RichTextShape) SetWidth(w int64) *RichTextShape {
	r.width = w
	return r
}

// SetOffsetX sets the X offset and returns the shape for chaining.
func (r *RichTextShape) SetOffsetX(x int64) *RichTextShape {
	r.offsetX = x
	return r
}

// SetOffsetY sets the Y offset and returns the shape for chaining.
func (r *RichTextShape) SetOffsetY(y int64) *RichTextShape {
	r.offsetY = y
	return r
}

// Paragraph represents a text paragraph.
type Paragraph struct {
	elements    []ParagraphElement
	alignment   *Alignment
	spaceBefore int // hundredths of a point
	spaceAfter  int // hundredths of a point
}

// ParagraphElement is the interface for paragraph content.
type ParagraphElement interface {
	GetElementType() string
}

// NewParagraph creates a new paragraph.
func NewParagraph() *Paragraph {
	return &Paragraph{
		elements:  make([]ParagraphElement, 0),
		alignment: NewAlignment(),
	}
}

// GetAlignment returns the paragraph alignment.
func (p *Paragraph) GetAlignment() *Alignment {
	return p.alignment
}

// SetAlignment sets the paragraph alignment.
func (p *Paragraph) SetAlignment(a *Alignment) {
	p.alignment = a
}

// GetElements returns all paragraph elements.
func (p *Paragraph) GetElements() []ParagraphElement {
	return p.elements
}

// GetSpaceBefore returns the space before the paragraph in hundredths of a point.
func (p *Paragraph) GetSpaceBefore() int { return p.spaceBefore }

// SetSpaceBefore sets the space before the paragraph in hundredths of a point.
func (p *Paragraph) SetSpaceBefore(v int) { p.spaceBefore = v }

// GetSpaceAfter returns the space after the paragraph in hundredths of a point.
func (p *Paragraph) GetSpaceAfter() int { return p.spaceAfter }

// SetSpaceAfter sets the space after the paragraph in hundredths of a point.
func (p *Paragraph) SetSpaceAfter(v int) { p.spaceAfter = v }

// CreateTextRun creates a new text run.
func (p *Paragraph) CreateTextRun(text string) *TextRun {
	tr := &TextRun{
		text: text,
		font: NewFont(),
	}
	p.elements = append(p.elements, tr)
	return tr
}

// CreateBreak creates a line break element.
func (p *Paragraph) CreateBreak() *BreakElement {
	br := &BreakElement{}
	p.elements = append(p.elements, br)
	return br
}

// GetText returns the paragraph text with line breaks as "\n".
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case *TextRun:
			sb.WriteString(e.text)
		case *BreakElement:
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// TextRun represents a run of text with formatting.
type TextRun struct {
	text string
	font *Font
}

func (tr *TextRun) GetElementType() string { return "textrun" }

// GetText returns the text content.
func (tr *TextRun) GetText() string { return tr.text }

// SetText sets the text content.
func (tr *TextRun) SetText(text string) { tr.text = text }

// GetFont returns the font properties.
func (tr *TextRun) GetFont() *Font { return tr.font }

// SetFont sets the font properties.
func (tr *TextRun) SetFont(f *Font) { tr.font = f }

// BreakElement represents a line break.
type BreakElement struct{}

func (br *BreakElement) GetElementType() string { return "break" }

// AutoShape represents a preset geometry shape (rectangle, ellipse, arrow...)
// that may carry its own text.
type AutoShape struct {
	BaseShape
	TextBody
	shapeType AutoShapeType
}

// AutoShapeType represents the preset geometry of an auto shape.
type AutoShapeType string

const (
	AutoShapeRectangle   AutoShapeType = "rect"
	AutoShapeRoundedRect AutoShapeType = "roundRect"
	AutoShapeEllipse     AutoShapeType = "ellipse"
	AutoShapeArrowRight  AutoShapeType = "rightArrow"
	AutoShapeArrowLeft   AutoShapeType = "leftArrow"
	AutoShapeArrowUp     AutoShapeType = "upArrow"
	AutoShapeArrowDown   AutoShapeType = "downArrow"
)

func (a *AutoShape) GetType() ShapeType { return ShapeTypeAutoShape }

// NewAutoShape creates a new rectangle auto shape without text.
func NewAutoShape() *AutoShape {
	return &AutoShape{
		TextBody:  TextBody{wordWrap: true},
		shapeType: AutoShapeRectangle,
	}
}

// SetAutoShapeType sets the preset geometry.
func (a *AutoShape) SetAutoShapeType(t AutoShapeType) *AutoShape {
	a.shapeType = t
	return a
}

// GetAutoShapeType returns the preset geometry.
func (a *AutoShape) GetAutoShapeType() AutoShapeType {
	return a.shapeType
}

// SetSolidFill sets a solid fill on the auto shape.
func (a *AutoShape) SetSolidFill(c Color) *AutoShape {
	a.GetFill().SetSolid(c)
	return a
}

// SetText replaces the shape text with a single paragraph holding one run.
func (a *AutoShape) SetText(text string) *TextRun {
	a.paragraphs = []*Paragraph{NewParagraph()}
	a.activeParagraph = 0
	return a.paragraphs[0].CreateTextRun(text)
}

// GetText returns the shape text, one line per paragraph.
func (a *AutoShape) GetText() string {
	return strings.Join(extractParagraphsText(a.paragraphs), "\n")
}
