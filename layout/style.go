package layout

import (
	"fmt"
	"strings"

	godeck "github.com/VantageDataChat/GoDeck"
)

// Align is the horizontal alignment of a paragraph.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
	AlignJustify
)

var alignNames = [...]string{"left", "center", "right", "justify"}

func (a Align) String() string {
	if a < 0 || int(a) >= len(alignNames) {
		return "left"
	}
	return alignNames[a]
}

// ParseAlign accepts "left", "center", "right" or "justify" (any case).
// The empty string is AlignLeft.
func ParseAlign(s string) (Align, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return AlignLeft, nil
	}
	for i, name := range alignNames {
		if s == name {
			return Align(i), nil
		}
	}
	return AlignLeft, fmt.Errorf("unknown alignment %q", s)
}

func (a Align) horizontal() godeck.HorizontalAlignment {
	switch a {
	case AlignCenter:
		return godeck.HorizontalCenter
	case AlignRight:
		return godeck.HorizontalRight
	case AlignJustify:
		return godeck.HorizontalJustify
	default:
		return godeck.HorizontalLeft
	}
}

// DefaultTextSize is the font size in points used when TextStyle.Size is zero.
const DefaultTextSize = 18.0

// TextStyle describes how a run of text looks. The zero value is 18 pt text
// in the palette's text color and body font, left aligned.
type TextStyle struct {
	Size   float64 // points
	Color  string  // palette name or "#RRGGBB"
	Bold   bool
	Italic bool
	Align  Align
	Font   string // palette font name or literal typeface
}

func (s TextStyle) size() float64 {
	if s.Size <= 0 {
		return DefaultTextSize
	}
	return s.Size
}
