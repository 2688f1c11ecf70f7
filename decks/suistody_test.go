package decks

import (
	"path/filepath"
	"testing"

	godeck "github.com/VantageDataChat/GoDeck"
	"github.com/VantageDataChat/GoDeck/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuistodySlideCounts(t *testing.T) {
	specs := Suistody()
	want := []int{6, 12, 19, 18, 23, 9, 17, 8, 23, 28, 20, 15, 13, 5}
	require.Len(t, specs, len(want))
	for i, spec := range specs {
		assert.Len(t, spec.Primitives, want[i], "slide %d (%s)", i+1, spec.Name)
		assert.Equal(t, Void, spec.Background)
		assert.NotEmpty(t, spec.Name)
	}
}

// colorRefs lists every color reference a primitive uses.
func colorRefs(p layout.Primitive) []string {
	switch p := p.(type) {
	case layout.TextBlock:
		return []string{p.Style.Color}
	case layout.MultiParagraphText:
		var refs []string
		for _, para := range p.Paragraphs {
			refs = append(refs, para.Style.Color)
		}
		return refs
	case layout.Rectangle:
		refs := []string{p.Fill}
		if p.Border != "" {
			refs = append(refs, p.Border)
		}
		return refs
	case layout.Oval:
		return []string{p.Fill, p.LabelStyle.Color}
	case layout.Arrow:
		return []string{p.Fill}
	case layout.Line:
		return []string{p.Color}
	}
	return nil
}

func TestSuistodyUsesOnlyPaletteColors(t *testing.T) {
	pal := SuistodyPalette()
	for i, spec := range Suistody() {
		for j, p := range spec.Primitives {
			for _, ref := range colorRefs(p) {
				if ref == "" {
					continue
				}
				_, ok := pal.Lookup(ref)
				assert.True(t, ok, "slide %d primitive %d: unknown color %q", i+1, j+1, ref)
			}
		}
	}
}

func TestSuistodyFitsOnSlide(t *testing.T) {
	for i, spec := range Suistody() {
		for j, p := range spec.Primitives {
			f := p.Bounds()
			assert.GreaterOrEqual(t, f.X, int64(0))
			assert.GreaterOrEqual(t, f.Y, int64(0))
			assert.LessOrEqual(t, f.X+f.W, layout.DefaultSlideWidth, "slide %d primitive %d (%s)", i+1, j+1, p.Kind())
			assert.LessOrEqual(t, f.Y+f.H, layout.DefaultSlideHeight, "slide %d primitive %d (%s)", i+1, j+1, p.Kind())
		}
	}
}

func TestSuistodyPipelineBadges(t *testing.T) {
	var labels []string
	for _, p := range Suistody()[4].Primitives {
		if o, ok := p.(layout.Oval); ok {
			labels = append(labels, o.Label)
			assert.Equal(t, 28.0, o.LabelStyle.Size)
			assert.True(t, o.LabelStyle.Bold)
		}
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7"}, labels)
}

func TestSuistodyOnChainChecks(t *testing.T) {
	var lists []layout.MultiParagraphText
	for _, p := range Suistody()[5].Primitives {
		if m, ok := p.(layout.MultiParagraphText); ok {
			lists = append(lists, m)
		}
	}
	require.Len(t, lists, 2)
	assert.Len(t, lists[0].Paragraphs, 7)
	onChain := lists[1].Paragraphs
	require.Len(t, onChain, 9)
	assert.Equal(t, 16.0, onChain[0].Style.Size)
	assert.Zero(t, onChain[0].SpaceBefore)
	assert.Equal(t, 15.0, onChain[1].Style.Size)
	assert.Equal(t, 3.0, onChain[1].SpaceBefore)
	assert.Equal(t, layout.FontMono, onChain[8].Style.Font)
}

func TestSuistodyPalette(t *testing.T) {
	pal := SuistodyPalette()
	assert.Equal(t, "FFFFFFFF", pal.TextColor().ARGB)
	assert.Equal(t, "Segoe UI", pal.Font(""))
	assert.Equal(t, "Consolas", pal.Font(layout.FontMono))
	warning, ok := pal.Lookup("warning")
	require.True(t, ok)
	amber, _ := pal.Lookup(Amber)
	assert.Equal(t, amber, warning)
}

func TestSuistodyRoundTrip(t *testing.T) {
	specs := Suistody()
	deck := layout.BuildDeck(SuistodyPalette(), specs, layout.WithTitle(SuistodyTitle))
	require.NoError(t, deck.Presentation().Validate())

	path := filepath.Join(t.TempDir(), SuistodyOutput)
	require.NoError(t, layout.SaveDeck(deck, path))

	pres, err := godeck.Open(path)
	require.NoError(t, err)
	require.Equal(t, len(specs), pres.GetSlideCount())
	for i, spec := range specs {
		slide, err := pres.GetSlide(i)
		require.NoError(t, err)
		assert.Equal(t, len(spec.Primitives), slide.GetShapeCount(), "slide %d", i+1)
		assert.Equal(t, spec.Name, slide.GetName())
	}
	assert.Equal(t, SuistodyTitle, pres.GetDocumentProperties().Title)

	text := pres.ExtractText()
	for _, want := range []string{"SUISTODY", "THE PROBLEM", "9. assert balance >= amount", "LIVE DEMO"} {
		assert.Contains(t, text, want)
	}
}
