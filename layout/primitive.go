// Package layout turns declarative slide descriptions into godeck
// presentations. A slide is a background reference plus an ordered list of
// primitives placed at absolute positions; the Renderer draws each primitive
// as exactly one shape and the Assembler builds whole decks.
package layout

import godeck "github.com/VantageDataChat/GoDeck"

// Frame is an absolute position and size in EMU.
type Frame struct {
	X, Y, W, H int64
}

// Inches builds a Frame from inch values.
func Inches(x, y, w, h float64) Frame {
	return Frame{X: godeck.Inch(x), Y: godeck.Inch(y), W: godeck.Inch(w), H: godeck.Inch(h)}
}

// Offset returns f moved by dx, dy EMU.
func (f Frame) Offset(dx, dy int64) Frame {
	f.X += dx
	f.Y += dy
	return f
}

// Primitive is one positioned visual element. The set of implementations is
// closed: TextBlock, MultiParagraphText, Rectangle, Oval, Arrow and Line.
type Primitive interface {
	// Bounds returns the primitive's frame.
	Bounds() Frame
	// Kind returns a short lowercase name such as "text" or "oval".
	Kind() string
	primitive()
}

// TextBlock is a text box holding a single paragraph with word wrap on.
// Newlines in Text become line breaks inside that paragraph.
type TextBlock struct {
	Frame
	Text  string
	Style TextStyle
}

// Paragraph is one independently styled paragraph of a MultiParagraphText.
type Paragraph struct {
	Text  string
	Style TextStyle
	// SpaceBefore is the gap above the paragraph in points. Zero selects
	// DefaultSpaceBefore for every paragraph but the first; a negative value
	// removes the gap.
	SpaceBefore float64
}

// DefaultSpaceBefore is the gap in points above each paragraph after the first.
const DefaultSpaceBefore = 6.0

// MultiParagraphText is a text box with one paragraph per entry, in order.
type MultiParagraphText struct {
	Frame
	Paragraphs []Paragraph
}

// DefaultBorderWidth is the outline width in points of bordered rectangles.
const DefaultBorderWidth = 1.5

// Rectangle is a filled card. It has rounded corners unless Square is set.
// An empty Border draws no outline.
type Rectangle struct {
	Frame
	Fill        string
	Border      string
	BorderWidth float64 // points, DefaultBorderWidth when zero
	Square      bool
}

// Oval is a filled ellipse with an optional label centered on both axes.
type Oval struct {
	Frame
	Fill       string
	Label      string
	LabelStyle TextStyle
}

// Direction is the way an Arrow points.
type Direction int

const (
	Right Direction = iota
	Left
	Up
	Down
)

var directionNames = [...]string{"right", "left", "up", "down"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "right"
	}
	return directionNames[d]
}

// Arrow is a filled block arrow without an outline.
type Arrow struct {
	Frame
	Fill      string
	Direction Direction
}

// Line is a thin filled bar, used for accent lines and separators.
type Line struct {
	Frame
	Color string
}

func (t TextBlock) Bounds() Frame          { return t.Frame }
func (t MultiParagraphText) Bounds() Frame { return t.Frame }
func (r Rectangle) Bounds() Frame          { return r.Frame }
func (o Oval) Bounds() Frame               { return o.Frame }
func (a Arrow) Bounds() Frame              { return a.Frame }
func (l Line) Bounds() Frame               { return l.Frame }

func (TextBlock) Kind() string          { return "text" }
func (MultiParagraphText) Kind() string { return "paragraphs" }
func (Rectangle) Kind() string          { return "rect" }
func (Oval) Kind() string               { return "oval" }
func (Arrow) Kind() string              { return "arrow" }
func (Line) Kind() string               { return "line" }

func (TextBlock) primitive()          {}
func (MultiParagraphText) primitive() {}
func (Rectangle) primitive()          {}
func (Oval) primitive()               {}
func (Arrow) primitive()              {}
func (Line) primitive()               {}
