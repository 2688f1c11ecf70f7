package layout

import (
	"fmt"
	"log/slog"
	"strings"

	godeck "github.com/VantageDataChat/GoDeck"
)

// Surface receives the shapes a Renderer creates. *godeck.Slide satisfies it.
type Surface interface {
	CreateRichTextShape() *godeck.RichTextShape
	CreateAutoShape() *godeck.AutoShape
}

// Renderer draws primitives onto a Surface using a Palette.
type Renderer struct {
	palette *Palette
	logger  *slog.Logger
}

// NewRenderer returns a Renderer. A nil logger discards output.
func NewRenderer(pal *Palette, logger *slog.Logger) *Renderer {
	if pal == nil {
		pal = NewPalette(PaletteConfig{})
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{palette: pal, logger: logger}
}

// Render adds exactly one shape to s for p. Pointers to primitives render
// like the values they point to. Negative coordinates and sizes are clamped
// to zero and unknown colors fall back to the palette's text color; neither
// is an error. A nil primitive adds nothing.
func (r *Renderer) Render(s Surface, p Primitive) {
	p = deref(p)
	if p == nil {
		r.logger.Warn("skipping nil primitive")
		return
	}
	frame := r.clamp(p)
	switch p := p.(type) {
	case TextBlock:
		r.renderTextBlock(s, frame, p)
	case MultiParagraphText:
		r.renderParagraphs(s, frame, p)
	case Rectangle:
		r.renderRectangle(s, frame, p)
	case Oval:
		r.renderOval(s, frame, p)
	case Arrow:
		r.renderArrow(s, frame, p)
	case Line:
		r.renderLine(s, frame, p)
	default:
		r.logger.Warn("skipping unsupported primitive", "type", fmt.Sprintf("%T", p))
	}
}

// deref returns the value behind a primitive pointer, or nil for a nil one.
func deref(p Primitive) Primitive {
	switch v := p.(type) {
	case *TextBlock:
		if v != nil {
			return *v
		}
	case *MultiParagraphText:
		if v != nil {
			return *v
		}
	case *Rectangle:
		if v != nil {
			return *v
		}
	case *Oval:
		if v != nil {
			return *v
		}
	case *Arrow:
		if v != nil {
			return *v
		}
	case *Line:
		if v != nil {
			return *v
		}
	default:
		return p
	}
	return nil
}

func (r *Renderer) clamp(p Primitive) Frame {
	f := p.Bounds()
	c := Frame{X: max(f.X, 0), Y: max(f.Y, 0), W: max(f.W, 0), H: max(f.H, 0)}
	if c != f {
		r.logger.Debug("clamped negative geometry",
			"kind", p.Kind(), "x", f.X, "y", f.Y, "w", f.W, "h", f.H)
	}
	return c
}

// color resolves ref, falling back to the text color for unknown names.
func (r *Renderer) color(ref string) godeck.Color {
	if ref == "" {
		return r.palette.TextColor()
	}
	c, ok := r.palette.Lookup(ref)
	if !ok {
		r.logger.Debug("unknown color, using text color", "color", ref)
		return r.palette.TextColor()
	}
	return c
}

func (r *Renderer) textBox(s Surface, f Frame) *godeck.RichTextShape {
	tb := s.CreateRichTextShape()
	tb.SetPosition(f.X, f.Y)
	tb.SetSize(f.W, f.H)
	tb.SetWordWrap(true)
	return tb
}

func (r *Renderer) renderTextBlock(s Surface, f Frame, t TextBlock) {
	tb := r.textBox(s, f)
	r.fillParagraph(tb.GetActiveParagraph(), t.Text, t.Style)
}

func (r *Renderer) renderParagraphs(s Surface, f Frame, m MultiParagraphText) {
	tb := r.textBox(s, f)
	for i, para := range m.Paragraphs {
		var gp *godeck.Paragraph
		if i == 0 {
			gp = tb.GetActiveParagraph()
		} else {
			gp = tb.CreateParagraph()
		}
		r.fillParagraph(gp, para.Text, para.Style)
		if space := spaceBefore(i, para.SpaceBefore); space > 0 {
			gp.SetSpaceBefore(int(space*100 + 0.5))
		}
	}
}

func spaceBefore(index int, pt float64) float64 {
	switch {
	case pt < 0:
		return 0
	case pt == 0 && index > 0:
		return DefaultSpaceBefore
	default:
		return pt
	}
}

// fillParagraph writes text into p as runs separated by line breaks.
func (r *Renderer) fillParagraph(p *godeck.Paragraph, text string, style TextStyle) {
	p.SetAlignment(godeck.NewAlignment().SetHorizontal(style.Align.horizontal()))
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			p.CreateBreak()
		}
		if line == "" && len(lines) > 1 {
			continue
		}
		r.applyStyle(p.CreateTextRun(line).GetFont(), style)
	}
}

func (r *Renderer) applyStyle(f *godeck.Font, style TextStyle) {
	f.SetSize(style.size()).
		SetBold(style.Bold).
		SetItalic(style.Italic).
		SetColor(r.color(style.Color)).
		SetName(r.palette.Font(style.Font))
}

func (r *Renderer) autoShape(s Surface, f Frame, kind godeck.AutoShapeType, fill string) *godeck.AutoShape {
	a := s.CreateAutoShape().SetAutoShapeType(kind)
	a.SetPosition(f.X, f.Y)
	a.SetSize(f.W, f.H)
	if fill != "" {
		a.SetSolidFill(r.color(fill))
	}
	return a
}

func (r *Renderer) renderRectangle(s Surface, f Frame, rect Rectangle) {
	kind := godeck.AutoShapeRoundedRect
	if rect.Square {
		kind = godeck.AutoShapeRectangle
	}
	a := r.autoShape(s, f, kind, rect.Fill)
	if rect.Border == "" {
		return
	}
	width := rect.BorderWidth
	if width <= 0 {
		width = DefaultBorderWidth
	}
	a.GetBorder().SetSolid(r.color(rect.Border), godeck.Point(width))
}

func (r *Renderer) renderOval(s Surface, f Frame, o Oval) {
	a := r.autoShape(s, f, godeck.AutoShapeEllipse, o.Fill)
	if o.Label == "" {
		return
	}
	style := o.LabelStyle
	style.Align = AlignCenter
	a.SetText(o.Label)
	// SetText leaves a single run; restyle it and its paragraph.
	para := a.GetParagraphs()[0]
	para.SetAlignment(godeck.NewAlignment().SetHorizontal(godeck.HorizontalCenter))
	for _, el := range para.GetElements() {
		if run, ok := el.(*godeck.TextRun); ok {
			r.applyStyle(run.GetFont(), style)
		}
	}
	a.SetTextAnchor(godeck.TextAnchorMiddle)
	a.SetWordWrap(false)
	a.SetInsets(0, 0, 0, 0)
}

func (r *Renderer) renderArrow(s Surface, f Frame, arrow Arrow) {
	kind := godeck.AutoShapeArrowRight
	switch arrow.Direction {
	case Left:
		kind = godeck.AutoShapeArrowLeft
	case Up:
		kind = godeck.AutoShapeArrowUp
	case Down:
		kind = godeck.AutoShapeArrowDown
	}
	r.autoShape(s, f, kind, arrow.Fill)
}

func (r *Renderer) renderLine(s Surface, f Frame, l Line) {
	color := l.Color
	if color == "" {
		color = ColorText
	}
	r.autoShape(s, f, godeck.AutoShapeRectangle, color)
}
