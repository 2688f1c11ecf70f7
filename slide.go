package godeck

import "strings"

// Slide is one page of a presentation: an optional name, a background and
// an ordered list of shapes. Later shapes are drawn on top of earlier ones.
type Slide struct {
	name       string
	shapes     []Shape
	background *Fill
}

func newSlide() *Slide {
	return &Slide{shapes: make([]Shape, 0)}
}

// GetName returns the slide name.
func (s *Slide) GetName() string { return s.name }

// SetName sets the slide name written to the p:cSld element.
func (s *Slide) SetName(name string) { s.name = name }

// GetBackground returns the slide background fill, or nil if unset.
func (s *Slide) GetBackground() *Fill { return s.background }

// SetBackground sets the slide background fill.
func (s *Slide) SetBackground(f *Fill) { s.background = f }

// SetBackgroundColor sets a solid background.
func (s *Slide) SetBackgroundColor(c Color) {
	s.background = NewFill().SetSolid(c)
}

// CreateRichTextShape adds a new text box to the slide.
func (s *Slide) CreateRichTextShape() *RichTextShape {
	rt := NewRichTextShape()
	s.shapes = append(s.shapes, rt)
	return rt
}

// CreateAutoShape adds a new preset-geometry shape (rectangle by default).
func (s *Slide) CreateAutoShape() *AutoShape {
	as := NewAutoShape()
	s.shapes = append(s.shapes, as)
	return as
}

// AddShape appends an existing shape.
func (s *Slide) AddShape(shape Shape) {
	s.shapes = append(s.shapes, shape)
}

// GetShapes returns the shapes in drawing order.
func (s *Slide) GetShapes() []Shape {
	return s.shapes
}

// GetShapeCount returns the number of shapes on the slide.
func (s *Slide) GetShapeCount() int {
	return len(s.shapes)
}

// ExtractText joins the text of every slide, one paragraph per line.
// Slides without text contribute nothing.
func (p *Presentation) ExtractText() string {
	var parts []string
	for _, slide := range p.slides {
		if text := slide.ExtractText(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// ExtractText returns the text of every shape, one paragraph per line.
func (s *Slide) ExtractText() string {
	var parts []string
	for _, shape := range s.shapes {
		if tb, ok := shape.(textShape); ok {
			parts = append(parts, extractParagraphsText(tb.textBody().paragraphs)...)
		}
	}
	return strings.Join(parts, "\n")
}

func extractParagraphsText(paragraphs []*Paragraph) []string {
	var parts []string
	for _, para := range paragraphs {
		if text := para.GetText(); text != "" {
			parts = append(parts, text)
		}
	}
	return parts
}
