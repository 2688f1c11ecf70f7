package layout

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	godeck "github.com/VantageDataChat/GoDeck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var fixedTime = time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)

func sampleSpecs() []SlideSpec {
	return []SlideSpec{
		{
			Name:       "Title",
			Background: "void",
			Primitives: []Primitive{
				TextBlock{Frame: Inches(1, 1.5, 11, 1.5), Text: "SUISTODY", Style: TextStyle{Size: 72, Color: "accent", Bold: true, Align: AlignCenter}},
				Rectangle{Frame: Inches(4.2, 5.5, 5, 0.7), Fill: "deep", Border: "accent"},
			},
		},
		{
			Name:       "Pipeline",
			Background: "void",
			Primitives: []Primitive{
				Line{Frame: Frame{X: godeck.Inch(0.8), Y: godeck.Inch(0.8), W: godeck.Inch(2), H: godeck.Point(3)}, Color: "accent"},
				Oval{Frame: Inches(0.75, 2.5, 0.8, 0.8), Fill: "accent", Label: "1", LabelStyle: TextStyle{Size: 28, Color: "void", Bold: true}},
				Arrow{Frame: Inches(1.65, 2.7, 0.4, 0.4), Fill: "deep"},
				MultiParagraphText{Frame: Inches(1, 3.4, 5, 3), Paragraphs: []Paragraph{{Text: "a"}, {Text: "b"}, {Text: "c"}}},
			},
		},
		{Name: "Empty"},
	}
}

func TestBuildShapeCountMatchesPrimitives(t *testing.T) {
	specs := sampleSpecs()
	deck := BuildDeck(testPalette(), specs)
	require.Equal(t, len(specs), deck.SlideCount())
	for i, spec := range specs {
		slide, err := deck.Presentation().GetSlide(i)
		require.NoError(t, err)
		assert.Equal(t, len(spec.Primitives), slide.GetShapeCount(), "slide %d", i+1)
		assert.Equal(t, spec.Name, slide.GetName())
	}
}

func TestBuildAppliesDocumentSettings(t *testing.T) {
	deck := NewAssembler(testPalette(),
		WithTitle("Suistody"),
		WithCreator("Agent Vault"),
		WithLanguage(language.BritishEnglish),
		WithTimestamp(fixedTime),
	).Build(sampleSpecs())

	pres := deck.Presentation()
	props := pres.GetDocumentProperties()
	assert.Equal(t, "Suistody", props.Title)
	assert.Equal(t, "Agent Vault", props.Creator)
	assert.Equal(t, language.BritishEnglish, props.Language)
	assert.True(t, props.Created.Equal(fixedTime))
	assert.Equal(t, DefaultSlideWidth, pres.GetLayout().CX)
	assert.Equal(t, DefaultSlideHeight, pres.GetLayout().CY)

	slide, _ := pres.GetSlide(0)
	require.NotNil(t, slide.GetBackground())
	assert.Equal(t, "FF060A13", slide.GetBackground().Color.ARGB)
	empty, _ := pres.GetSlide(2)
	assert.Nil(t, empty.GetBackground())
}

func TestWithSlideSize(t *testing.T) {
	deck := BuildDeck(testPalette(), nil, WithSlideSize(godeck.Inch(10), godeck.Inch(7.5)))
	assert.Equal(t, godeck.Inch(10), deck.Presentation().GetLayout().CX)
	assert.Equal(t, 0, deck.SlideCount())
}

func TestUnknownBackgroundIsSkipped(t *testing.T) {
	deck := BuildDeck(testPalette(), []SlideSpec{{Background: "nope"}})
	slide, _ := deck.Presentation().GetSlide(0)
	assert.Nil(t, slide.GetBackground())
}

func TestBuildIsDeterministic(t *testing.T) {
	build := func() []byte {
		deck := BuildDeck(testPalette(), sampleSpecs(), WithTimestamp(fixedTime))
		var buf bytes.Buffer
		require.NoError(t, deck.WriteTo(&buf))
		return buf.Bytes()
	}
	first := build()
	assert.NotEmpty(t, first)
	assert.Equal(t, first, build())

	a := BuildDeck(testPalette(), sampleSpecs())
	b := BuildDeck(testPalette(), sampleSpecs())
	for i := range a.SlideCount() {
		sa, _ := a.Presentation().GetSlide(i)
		sb, _ := b.Presentation().GetSlide(i)
		require.Equal(t, sa.GetShapeCount(), sb.GetShapeCount())
		for j, shape := range sa.GetShapes() {
			other := sb.GetShapes()[j]
			assert.Equal(t, shape.GetType(), other.GetType())
			assert.Equal(t, shape.GetOffsetX(), other.GetOffsetX())
			assert.Equal(t, shape.GetOffsetY(), other.GetOffsetY())
			assert.Equal(t, shape.GetWidth(), other.GetWidth())
			assert.Equal(t, shape.GetHeight(), other.GetHeight())
		}
	}
}

func TestSaveDeckWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, SaveDeck(BuildDeck(testPalette(), sampleSpecs()), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files should not be left behind")
}

func TestSaveDeckUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "deck.pptx")
	err := SaveDeck(BuildDeck(testPalette(), sampleSpecs()), path)
	require.Error(t, err)

	var owe *OutputWriteError
	require.True(t, errors.As(err, &owe))
	assert.Equal(t, path, owe.Path)
	assert.NotNil(t, errors.Unwrap(err))
	assert.Contains(t, err.Error(), path)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Dir(path))
	assert.True(t, os.IsNotExist(statErr), "directory must not be created")
}

func TestSaveDeckNil(t *testing.T) {
	err := SaveDeck(nil, "x.pptx")
	var owe *OutputWriteError
	require.True(t, errors.As(err, &owe))
	assert.ErrorIs(t, err, godeck.ErrNilPresentation)
}

func TestSaveDeckRejectsInvalidDeck(t *testing.T) {
	deck := BuildDeck(testPalette(), sampleSpecs())
	deck.Presentation().GetLayout().CX = 0
	path := filepath.Join(t.TempDir(), "bad.pptx")

	err := SaveDeck(deck, path)
	var owe *OutputWriteError
	require.True(t, errors.As(err, &owe))
	assert.Contains(t, err.Error(), "invalid deck")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEndToEndSingleTextBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "e2e.pptx")
	deck := BuildDeck(testPalette(), []SlideSpec{{
		Primitives: []Primitive{TextBlock{Frame: Inches(1, 1, 4, 1), Text: "TEST", Style: TextStyle{Size: 10}}},
	}})
	require.NoError(t, SaveDeck(deck, path))

	pres, err := godeck.Open(path)
	require.NoError(t, err)
	require.Equal(t, 1, pres.GetSlideCount())
	slide, _ := pres.GetSlide(0)
	require.Equal(t, 1, slide.GetShapeCount())
	tb, ok := slide.GetShapes()[0].(*godeck.RichTextShape)
	require.True(t, ok, "expected text shape, got %T", slide.GetShapes()[0])
	assert.Contains(t, tb.GetParagraphs()[0].GetText(), "TEST")
	assert.Equal(t, 10.0, runs(tb.GetParagraphs()[0])[0].GetFont().Size)
}

func TestEndToEndPointerPrimitives(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pointers.pptx")
	deck := BuildDeck(testPalette(), []SlideSpec{{
		Primitives: []Primitive{
			&TextBlock{Frame: Inches(1, 1, 4, 1), Text: "TEST", Style: TextStyle{Size: 10}},
			&Rectangle{Frame: Inches(1, 3, 2, 1), Fill: "#FF0000"},
		},
	}})
	require.NoError(t, SaveDeck(deck, path))

	pres, err := godeck.Open(path)
	require.NoError(t, err)
	slide, _ := pres.GetSlide(0)
	assert.Equal(t, 2, slide.GetShapeCount())
	assert.Contains(t, pres.ExtractText(), "TEST")
}

func TestDeckWriteToRejectsInvalidDeck(t *testing.T) {
	deck := BuildDeck(testPalette(), sampleSpecs())
	deck.Presentation().GetLayout().CX = 0

	var buf bytes.Buffer
	err := deck.WriteTo(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid deck")
	assert.Zero(t, buf.Len())

	var nilDeck *Deck
	assert.ErrorIs(t, nilDeck.WriteTo(&buf), godeck.ErrNilPresentation)
}
