package deckfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	godeck "github.com/VantageDataChat/GoDeck"
	"github.com/VantageDataChat/GoDeck/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestParseLength(t *testing.T) {
	cases := map[string]int64{
		"":         0,
		"1":        914400,
		"0.8":      731520,
		"1in":      914400,
		"1.5 in":   1371600,
		"3pt":      38100,
		"1.5pt":    19050,
		"2cm":      720000,
		"10mm":     360000,
		"12700emu": 12700,
		" 2IN ":    1828800,
	}
	for in, want := range cases {
		got, err := ParseLength(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"abc", "1ft", "-1in", "NaN", "inf", "in"} {
		_, err := ParseLength(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor("deck.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	f, err = FormatFor("deck.toml")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)
	_, err = FormatFor("deck.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func checkLaunchDeck(t *testing.T, deck *Deck) {
	t.Helper()
	assert.Equal(t, "launch.pptx", deck.Output)
	require.Len(t, deck.Slides, 2)

	title := deck.Slides[0]
	assert.Equal(t, "Title", title.Name)
	assert.Equal(t, "void", title.Background)
	require.Len(t, title.Primitives, 2)

	tb, ok := title.Primitives[0].(layout.TextBlock)
	require.True(t, ok)
	assert.Equal(t, layout.Inches(1, 1.5, 11, 1.5), tb.Frame)
	assert.Equal(t, "LAUNCH REVIEW", tb.Text)
	assert.Equal(t, layout.TextStyle{Size: 60, Color: "accent", Bold: true, Align: layout.AlignCenter}, tb.Style)

	rect, ok := title.Primitives[1].(layout.Rectangle)
	require.True(t, ok)
	assert.Equal(t, layout.Inches(4.2, 5.5, 5, 0.7), rect.Frame)
	assert.Equal(t, "deep", rect.Fill)
	assert.Equal(t, "accent", rect.Border)

	plan := deck.Slides[1]
	require.Len(t, plan.Primitives, 4)
	line := plan.Primitives[0].(layout.Line)
	assert.Equal(t, godeck.Point(3), line.H)

	paras := plan.Primitives[1].(layout.MultiParagraphText).Paragraphs
	require.Len(t, paras, 2)
	assert.Equal(t, "2. Ship", paras[1].Text)
	assert.Equal(t, 3.0, paras[1].SpaceBefore)
	assert.Equal(t, layout.FontMono, paras[0].Style.Font)

	oval := plan.Primitives[2].(layout.Oval)
	assert.Equal(t, "1", oval.Label)
	assert.True(t, oval.LabelStyle.Bold)

	arrow := plan.Primitives[3].(layout.Arrow)
	assert.Equal(t, layout.Right, arrow.Direction)

	c, ok := deck.Palette.Lookup("accent")
	require.True(t, ok)
	assert.Equal(t, "FF00D4FF", c.ARGB)
	assert.Equal(t, "FFFFFFFF", deck.Palette.TextColor().ARGB)
	assert.Equal(t, "Consolas", deck.Palette.Font("mono"))

	built := layout.NewAssembler(deck.Palette, deck.Options...).Build(deck.Slides)
	props := built.Presentation().GetDocumentProperties()
	assert.Equal(t, "Launch Review", props.Title)
	assert.Equal(t, "Platform Team", props.Creator)
	assert.Equal(t, language.BritishEnglish, props.Language)
	assert.Equal(t, godeck.Inch(13.333), built.Presentation().GetLayout().CX)
	assert.Equal(t, 2, built.SlideCount())
}

func TestLoadYAML(t *testing.T) {
	deck, err := Load(filepath.Join("testdata", "launch.yaml"))
	require.NoError(t, err)
	checkLaunchDeck(t, deck)
}

func TestLoadTOML(t *testing.T) {
	deck, err := Load(filepath.Join("testdata", "launch.toml"))
	require.NoError(t, err)
	checkLaunchDeck(t, deck)
}

func TestYAMLAndTOMLAgree(t *testing.T) {
	y, err := Load(filepath.Join("testdata", "launch.yaml"))
	require.NoError(t, err)
	tm, err := Load(filepath.Join("testdata", "launch.toml"))
	require.NoError(t, err)
	assert.Equal(t, y.Slides, tm.Slides)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		slide     int
		primitive int
		contains  string
	}{
		{
			name:     "no slides",
			yaml:     "title: empty\n",
			contains: "no slides",
		},
		{
			name:     "empty document",
			yaml:     "",
			contains: "no slides",
		},
		{
			name:      "unknown kind",
			yaml:      "slides:\n  - primitives:\n      - kind: text\n      - kind: star\n",
			slide:     1,
			primitive: 2,
			contains:  `unknown kind "star"`,
		},
		{
			name:      "bad length",
			yaml:      "slides:\n  - {}\n  - primitives:\n      - {kind: line, w: 2ft}\n",
			slide:     2,
			primitive: 1,
			contains:  "w: invalid length",
		},
		{
			name:      "bad alignment",
			yaml:      "slides:\n  - primitives:\n      - {kind: text, style: {align: middle}}\n",
			slide:     1,
			primitive: 1,
			contains:  "unknown alignment",
		},
		{
			name:      "bad direction",
			yaml:      "slides:\n  - primitives:\n      - {kind: arrow, direction: sideways}\n",
			slide:     1,
			primitive: 1,
			contains:  "direction",
		},
		{
			name:      "missing kind",
			yaml:      "slides:\n  - primitives:\n      - {x: 1in}\n",
			slide:     1,
			primitive: 1,
			contains:  "missing kind",
		},
		{
			name:     "bad palette color",
			yaml:     "palette: {colors: {accent: blue}}\nslides: [{}]\n",
			contains: `palette color "accent"`,
		},
		{
			name:     "bad language",
			yaml:     "language: not a tag!\nslides: [{}]\n",
			contains: "language",
		},
		{
			name:     "unknown field",
			yaml:     "slides: [{}]\nsubtitle: nope\n",
			contains: "subtitle",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), FormatYAML, "deck.yaml")
			require.Error(t, err)
			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, "deck.yaml", e.File)
			assert.Equal(t, tt.slide, e.Slide)
			assert.Equal(t, tt.primitive, e.Primitive)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestTOMLUnknownField(t *testing.T) {
	_, err := Parse([]byte("subtitle = \"x\"\n[[slides]]\n"), FormatTOML, "deck.toml")
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "deck.toml", e.File)
}

func TestLoadMissingAndUnsupported(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Load("deck.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestErrorMessage(t *testing.T) {
	err := &Error{File: "d.yaml", Slide: 3, Primitive: 2, Err: errors.New("boom")}
	assert.Equal(t, "d.yaml: slide 3: primitive 2: boom", err.Error())
	assert.Equal(t, "boom", (&Error{Err: errors.New("boom")}).Error())
}
