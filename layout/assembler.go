package layout

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	godeck "github.com/VantageDataChat/GoDeck"
	"golang.org/x/text/language"
)

// Default slide size, 13.333 in by 7.5 in.
var (
	DefaultSlideWidth  = godeck.Inch(13.333)
	DefaultSlideHeight = godeck.Inch(7.5)
)

// SlideSpec describes one slide: a background color reference and the
// primitives drawn on it, bottom to top.
type SlideSpec struct {
	Name       string
	Background string
	Primitives []Primitive
}

// Deck is an assembled presentation.
type Deck struct {
	pres *godeck.Presentation
}

// Presentation returns the underlying document for reading, rendering
// previews and inspection. Callers must not add, remove or restyle slides
// or shapes through it.
func (d *Deck) Presentation() *godeck.Presentation { return d.pres }

// SlideCount returns the number of slides.
func (d *Deck) SlideCount() int { return d.pres.GetSlideCount() }

// WriteTo validates the deck and serializes it as PPTX to w. Nothing is
// written when validation fails.
func (d *Deck) WriteTo(w io.Writer) error {
	if d == nil || d.pres == nil {
		return godeck.ErrNilPresentation
	}
	if err := d.pres.Validate(); err != nil {
		return fmt.Errorf("invalid deck: %w", err)
	}
	return d.pres.WriteTo(w)
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithSlideSize sets the slide size in EMU.
func WithSlideSize(width, height int64) Option {
	return func(a *Assembler) {
		a.width, a.height = width, height
	}
}

// WithLogger sets the logger used by the assembler and its renderer.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithTitle sets the document title property.
func WithTitle(title string) Option {
	return func(a *Assembler) { a.title = title }
}

// WithCreator sets the document creator property.
func WithCreator(creator string) Option {
	return func(a *Assembler) { a.creator = creator }
}

// WithLanguage sets the language tag written on every text run.
func WithLanguage(tag language.Tag) Option {
	return func(a *Assembler) { a.language = tag }
}

// WithTimestamp fixes the created and modified times of built decks.
// Decks built with the same timestamp serialize to identical bytes.
func WithTimestamp(t time.Time) Option {
	return func(a *Assembler) { a.now = func() time.Time { return t } }
}

// Assembler builds decks from slide specs.
type Assembler struct {
	palette  *Palette
	renderer *Renderer
	logger   *slog.Logger
	width    int64
	height   int64
	title    string
	creator  string
	language language.Tag
	now      func() time.Time
}

// NewAssembler returns an Assembler drawing with pal.
func NewAssembler(pal *Palette, opts ...Option) *Assembler {
	a := &Assembler{
		palette:  pal,
		logger:   slog.New(slog.DiscardHandler),
		width:    DefaultSlideWidth,
		height:   DefaultSlideHeight,
		language: language.AmericanEnglish,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.palette == nil {
		a.palette = NewPalette(PaletteConfig{})
	}
	a.renderer = NewRenderer(a.palette, a.logger)
	return a
}

// Build renders specs in order into a new deck, one slide per spec.
func (a *Assembler) Build(specs []SlideSpec) *Deck {
	pres := godeck.New()
	pres.GetLayout().SetCustomLayout(a.width, a.height)

	props := pres.GetDocumentProperties()
	now := a.now()
	props.Created, props.Modified = now, now
	props.Title = a.title
	props.Language = a.language
	if a.creator != "" {
		props.Creator = a.creator
		props.LastModifiedBy = a.creator
	}

	shapes := 0
	for i, spec := range specs {
		slide := pres.CreateSlide()
		slide.SetName(spec.Name)
		if spec.Background != "" {
			if c, ok := a.palette.Lookup(spec.Background); ok {
				slide.SetBackgroundColor(c)
			} else {
				a.logger.Warn("unknown background color", "slide", i+1, "color", spec.Background)
			}
		}
		for _, p := range spec.Primitives {
			a.renderer.Render(slide, p)
		}
		shapes += slide.GetShapeCount()
		a.logger.Debug("rendered slide", "slide", i+1, "name", spec.Name, "shapes", slide.GetShapeCount())
	}
	a.logger.Info("assembled deck", "slides", len(specs), "shapes", shapes)
	return &Deck{pres: pres}
}

// BuildDeck builds specs with a default Assembler.
func BuildDeck(pal *Palette, specs []SlideSpec, opts ...Option) *Deck {
	return NewAssembler(pal, opts...).Build(specs)
}

// SaveDeck validates deck and writes it to path. The file appears only after
// a complete write; the directory must already exist. Every failure is an
// *OutputWriteError.
func SaveDeck(deck *Deck, path string) error {
	if deck == nil || deck.pres == nil {
		return &OutputWriteError{Path: path, Err: godeck.ErrNilPresentation}
	}
	if err := deck.pres.Validate(); err != nil {
		return &OutputWriteError{Path: path, Err: fmt.Errorf("invalid deck: %w", err)}
	}
	if err := deck.pres.Save(path); err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}
	return nil
}
