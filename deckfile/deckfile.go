// Package deckfile loads slide decks described in YAML or TOML files.
//
// A deck file names a palette and lists slides, each with a background color
// and primitives drawn in order:
//
//	title: Quarterly Review
//	palette:
//	  text_color: white
//	  colors: {void: "#060A13", accent: "#00D4FF", white: "#FFFFFF"}
//	  fonts: {body: Segoe UI, mono: Consolas}
//	slides:
//	  - name: Title
//	    background: void
//	    primitives:
//	      - kind: text
//	        x: 1in
//	        y: 1.5in
//	        w: 11in
//	        h: 1.5in
//	        text: HELLO
//	        style: {size: 72, color: accent, bold: true, align: center}
//
// Lengths take an "in", "pt", "cm", "mm" or "emu" suffix and default to
// inches. Unknown keys, kinds, alignments and malformed lengths are errors.
package deckfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	godeck "github.com/VantageDataChat/GoDeck"
	"github.com/VantageDataChat/GoDeck/layout"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Format is a deck file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// File is the decoded form of a deck file.
type File struct {
	Title    string      `yaml:"title" toml:"title"`
	Creator  string      `yaml:"creator" toml:"creator"`
	Language string      `yaml:"language" toml:"language"`
	Output   string      `yaml:"output" toml:"output"`
	Width    Length      `yaml:"width" toml:"width"`
	Height   Length      `yaml:"height" toml:"height"`
	Palette  PaletteFile `yaml:"palette" toml:"palette"`
	Slides   []SlideFile `yaml:"slides" toml:"slides"`
}

// PaletteFile holds named colors as hex strings and named fonts.
type PaletteFile struct {
	TextColor string            `yaml:"text_color" toml:"text_color"`
	Colors    map[string]string `yaml:"colors" toml:"colors"`
	Fonts     map[string]string `yaml:"fonts" toml:"fonts"`
}

// SlideFile is one slide.
type SlideFile struct {
	Name       string          `yaml:"name" toml:"name"`
	Background string          `yaml:"background" toml:"background"`
	Primitives []PrimitiveFile `yaml:"primitives" toml:"primitives"`
}

// PrimitiveFile is one primitive. Kind selects which other fields apply:
// "text" (Text, Style), "paragraphs" (Paragraphs), "rect" (Fill, Border,
// BorderWidth, Square), "oval" (Fill, Label, LabelStyle), "arrow" (Fill,
// Direction) and "line" (Color).
type PrimitiveFile struct {
	Kind        string          `yaml:"kind" toml:"kind"`
	X           Length          `yaml:"x" toml:"x"`
	Y           Length          `yaml:"y" toml:"y"`
	W           Length          `yaml:"w" toml:"w"`
	H           Length          `yaml:"h" toml:"h"`
	Text        string          `yaml:"text" toml:"text"`
	Style       StyleFile       `yaml:"style" toml:"style"`
	Paragraphs  []ParagraphFile `yaml:"paragraphs" toml:"paragraphs"`
	Fill        string          `yaml:"fill" toml:"fill"`
	Border      string          `yaml:"border" toml:"border"`
	BorderWidth float64         `yaml:"border_width" toml:"border_width"`
	Square      bool            `yaml:"square" toml:"square"`
	Label       string          `yaml:"label" toml:"label"`
	LabelStyle  StyleFile       `yaml:"label_style" toml:"label_style"`
	Direction   string          `yaml:"direction" toml:"direction"`
	Color       string          `yaml:"color" toml:"color"`
}

// StyleFile mirrors layout.TextStyle with a textual alignment.
type StyleFile struct {
	Size   float64 `yaml:"size" toml:"size"`
	Color  string  `yaml:"color" toml:"color"`
	Bold   bool    `yaml:"bold" toml:"bold"`
	Italic bool    `yaml:"italic" toml:"italic"`
	Align  string  `yaml:"align" toml:"align"`
	Font   string  `yaml:"font" toml:"font"`
}

// ParagraphFile is one paragraph of a "paragraphs" primitive.
type ParagraphFile struct {
	Text        string    `yaml:"text" toml:"text"`
	Style       StyleFile `yaml:"style" toml:"style"`
	SpaceBefore float64   `yaml:"space_before" toml:"space_before"`
}

// Deck is a loaded deck ready for layout.NewAssembler.
type Deck struct {
	Palette *layout.Palette
	Slides  []layout.SlideSpec
	// Options carries the title, creator, language and slide size.
	Options []layout.Option
	// Output is the path the file asks to be written to, if any.
	Output string
}

// Load reads and converts the deck file at path.
func Load(path string) (*Deck, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, &Error{File: path, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{File: path, Err: err}
	}
	return Parse(data, format, path)
}

// Parse decodes data in the given format. name labels errors.
func Parse(data []byte, format Format, name string) (*Deck, error) {
	var f File
	if err := decode(data, format, &f); err != nil {
		return nil, &Error{File: name, Err: err}
	}
	deck, err := f.convert()
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.File = name
			return nil, e
		}
		return nil, &Error{File: name, Err: err}
	}
	return deck, nil
}

func decode(data []byte, format Format, f *File) error {
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(f)
	}
	return ErrUnsupportedFormat
}

func (f *File) convert() (*Deck, error) {
	if len(f.Slides) == 0 {
		return nil, &Error{Err: fmt.Errorf("deck has no slides")}
	}
	pal, err := f.Palette.convert()
	if err != nil {
		return nil, &Error{Err: err}
	}
	opts, err := f.options()
	if err != nil {
		return nil, &Error{Err: err}
	}

	deck := &Deck{Palette: pal, Options: opts, Output: f.Output}
	for i, s := range f.Slides {
		spec := layout.SlideSpec{Name: s.Name, Background: s.Background}
		for j, p := range s.Primitives {
			prim, err := p.convert()
			if err != nil {
				return nil, &Error{Slide: i + 1, Primitive: j + 1, Err: err}
			}
			spec.Primitives = append(spec.Primitives, prim)
		}
		deck.Slides = append(deck.Slides, spec)
	}
	return deck, nil
}

func (f *File) options() ([]layout.Option, error) {
	var opts []layout.Option
	if f.Title != "" {
		opts = append(opts, layout.WithTitle(f.Title))
	}
	if f.Creator != "" {
		opts = append(opts, layout.WithCreator(f.Creator))
	}
	if f.Language != "" {
		tag, err := language.Parse(f.Language)
		if err != nil {
			return nil, fmt.Errorf("language: %w", err)
		}
		opts = append(opts, layout.WithLanguage(tag))
	}
	if !f.Width.IsZero() || !f.Height.IsZero() {
		w, err := f.Width.EMU()
		if err != nil {
			return nil, fmt.Errorf("width: %w", err)
		}
		h, err := f.Height.EMU()
		if err != nil {
			return nil, fmt.Errorf("height: %w", err)
		}
		if w == 0 {
			w = layout.DefaultSlideWidth
		}
		if h == 0 {
			h = layout.DefaultSlideHeight
		}
		opts = append(opts, layout.WithSlideSize(w, h))
	}
	return opts, nil
}

func (p PaletteFile) convert() (*layout.Palette, error) {
	colors := make(map[string]godeck.Color, len(p.Colors))
	for name, hex := range p.Colors {
		c, ok := godeck.ParseColor(hex)
		if !ok {
			return nil, fmt.Errorf("palette color %q: invalid hex value %q", name, hex)
		}
		colors[name] = c
	}
	return layout.NewPalette(layout.PaletteConfig{
		Colors:    colors,
		Fonts:     p.Fonts,
		TextColor: p.TextColor,
	}), nil
}

func (p PrimitiveFile) frame() (layout.Frame, error) {
	var f layout.Frame
	for _, field := range []struct {
		name string
		l    Length
		dst  *int64
	}{
		{"x", p.X, &f.X},
		{"y", p.Y, &f.Y},
		{"w", p.W, &f.W},
		{"h", p.H, &f.H},
	} {
		v, err := field.l.EMU()
		if err != nil {
			return f, fmt.Errorf("%s: %w", field.name, err)
		}
		*field.dst = v
	}
	return f, nil
}

func (p PrimitiveFile) convert() (layout.Primitive, error) {
	f, err := p.frame()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.TrimSpace(p.Kind)) {
	case "text":
		style, err := p.Style.convert()
		if err != nil {
			return nil, err
		}
		return layout.TextBlock{Frame: f, Text: p.Text, Style: style}, nil
	case "paragraphs":
		if len(p.Paragraphs) == 0 {
			return nil, fmt.Errorf("paragraphs: at least one paragraph is required")
		}
		m := layout.MultiParagraphText{Frame: f}
		for k, para := range p.Paragraphs {
			style, err := para.Style.convert()
			if err != nil {
				return nil, fmt.Errorf("paragraph %d: %w", k+1, err)
			}
			m.Paragraphs = append(m.Paragraphs, layout.Paragraph{Text: para.Text, Style: style, SpaceBefore: para.SpaceBefore})
		}
		return m, nil
	case "rect", "rectangle":
		if p.BorderWidth < 0 {
			return nil, fmt.Errorf("border_width must not be negative")
		}
		return layout.Rectangle{Frame: f, Fill: p.Fill, Border: p.Border, BorderWidth: p.BorderWidth, Square: p.Square}, nil
	case "oval":
		style, err := p.LabelStyle.convert()
		if err != nil {
			return nil, fmt.Errorf("label_style: %w", err)
		}
		return layout.Oval{Frame: f, Fill: p.Fill, Label: p.Label, LabelStyle: style}, nil
	case "arrow":
		dir, err := parseDirection(p.Direction)
		if err != nil {
			return nil, err
		}
		return layout.Arrow{Frame: f, Fill: p.Fill, Direction: dir}, nil
	case "line":
		return layout.Line{Frame: f, Color: p.Color}, nil
	case "":
		return nil, fmt.Errorf("missing kind")
	}
	return nil, fmt.Errorf("unknown kind %q", p.Kind)
}

func (s StyleFile) convert() (layout.TextStyle, error) {
	align, err := layout.ParseAlign(s.Align)
	if err != nil {
		return layout.TextStyle{}, err
	}
	if s.Size < 0 {
		return layout.TextStyle{}, fmt.Errorf("font size must not be negative")
	}
	return layout.TextStyle{
		Size:   s.Size,
		Color:  s.Color,
		Bold:   s.Bold,
		Italic: s.Italic,
		Align:  align,
		Font:   s.Font,
	}, nil
}

func parseDirection(s string) (layout.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "right":
		return layout.Right, nil
	case "left":
		return layout.Left, nil
	case "up":
		return layout.Up, nil
	case "down":
		return layout.Down, nil
	}
	return layout.Right, fmt.Errorf("unknown arrow direction %q", s)
}
