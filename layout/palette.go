package layout

import (
	"sort"
	"strings"

	godeck "github.com/VantageDataChat/GoDeck"
)

// Default palette references.
const (
	ColorText = "text"
	FontBody  = "body"
	FontMono  = "mono"
)

// fallbackFont is used when a palette has no body font.
const fallbackFont = "Calibri"

// PaletteConfig is the input to NewPalette.
type PaletteConfig struct {
	// Colors maps semantic names such as "accent" to colors. Names are
	// case-insensitive.
	Colors map[string]godeck.Color
	// Fonts maps font names such as "body" and "mono" to typefaces.
	Fonts map[string]string
	// TextColor names the color used when a style leaves Color empty or
	// names an unknown color. Defaults to "text".
	TextColor string
}

// Palette is an immutable set of named colors and fonts. It is safe for
// concurrent use.
type Palette struct {
	colors    map[string]godeck.Color
	fonts     map[string]string
	textColor godeck.Color
}

// NewPalette copies cfg into a new Palette. When the text color name does
// not resolve, text defaults to black.
func NewPalette(cfg PaletteConfig) *Palette {
	p := &Palette{
		colors:    make(map[string]godeck.Color, len(cfg.Colors)),
		fonts:     make(map[string]string, len(cfg.Fonts)),
		textColor: godeck.ColorBlack,
	}
	for name, c := range cfg.Colors {
		p.colors[strings.ToLower(name)] = c
	}
	for name, face := range cfg.Fonts {
		p.fonts[strings.ToLower(name)] = face
	}
	ref := cfg.TextColor
	if ref == "" {
		ref = ColorText
	}
	if c, ok := p.Lookup(ref); ok {
		p.textColor = c
	}
	return p
}

// Lookup resolves a palette name or a literal "#RRGGBB" color.
func (p *Palette) Lookup(ref string) (godeck.Color, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return godeck.Color{}, false
	}
	if strings.HasPrefix(ref, "#") {
		return godeck.ParseColor(ref)
	}
	c, ok := p.colors[strings.ToLower(ref)]
	return c, ok
}

// TextColor returns the default text color.
func (p *Palette) TextColor() godeck.Color { return p.textColor }

// Font resolves a palette font name. An empty ref selects the body font;
// a ref the palette does not know is returned unchanged as a typeface.
func (p *Palette) Font(ref string) string {
	if ref == "" {
		ref = FontBody
	}
	if face, ok := p.fonts[strings.ToLower(ref)]; ok {
		return face
	}
	if strings.EqualFold(ref, FontBody) {
		return fallbackFont
	}
	return ref
}

// ColorNames returns the palette's color names in sorted order.
func (p *Palette) ColorNames() []string {
	names := make([]string, 0, len(p.colors))
	for name := range p.colors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
