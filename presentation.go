// Package godeck is a small pure Go model of a PowerPoint presentation
// (.pptx, Office Open XML PresentationML) tailored to absolutely positioned
// layouts: text boxes, preset auto shapes and solid slide backgrounds.
//
// A Presentation can be written with PPTXWriter, read back with PPTXReader and
// rasterized for previews with SlideToImage.
package godeck

import (
	"errors"
	"time"

	"golang.org/x/text/language"
)

// Presentation represents an in-memory PowerPoint presentation.
type Presentation struct {
	properties *DocumentProperties
	slides     []*Slide
	layout     *DocumentLayout
}

// New creates an empty Presentation with the default 16:9 layout.
func New() *Presentation {
	return &Presentation{
		properties: NewDocumentProperties(),
		slides:     make([]*Slide, 0),
		layout:     NewDocumentLayout(),
	}
}

// GetDocumentProperties returns the document properties.
func (p *Presentation) GetDocumentProperties() *DocumentProperties {
	return p.properties
}

// SetDocumentProperties sets the document properties.
func (p *Presentation) SetDocumentProperties(props *DocumentProperties) {
	p.properties = props
}

// GetLayout returns the document layout.
func (p *Presentation) GetLayout() *DocumentLayout {
	return p.layout
}

// SetLayout sets the document layout.
func (p *Presentation) SetLayout(layout *DocumentLayout) {
	p.layout = layout
}

// CreateSlide creates a new blank slide and appends it to the presentation.
func (p *Presentation) CreateSlide() *Slide {
	slide := newSlide()
	p.slides = append(p.slides, slide)
	return slide
}

// GetSlide returns a slide by index.
func (p *Presentation) GetSlide(index int) (*Slide, error) {
	if index < 0 || index >= len(p.slides) {
		return nil, errOutOfRange
	}
	return p.slides[index], nil
}

// Slides returns all slides in order.
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// GetSlideCount returns the number of slides.
func (p *Presentation) GetSlideCount() int {
	return len(p.slides)
}

// DocumentProperties holds the core and extended document properties.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
	Title          string
	Subject        string
	Company        string
	// Language tags every text run written to the document.
	Language language.Tag
}

// NewDocumentProperties creates new document properties with defaults.
func NewDocumentProperties() *DocumentProperties {
	now := time.Now()
	return &DocumentProperties{
		Creator:        "GoDeck",
		LastModifiedBy: "GoDeck",
		Created:        now,
		Modified:       now,
		Language:       language.AmericanEnglish,
	}
}

// SetLanguage parses a BCP 47 tag such as "en-US" or "zh-Hans" and uses it
// for all text runs.
func (dp *DocumentProperties) SetLanguage(tag string) error {
	t, err := language.Parse(tag)
	if err != nil {
		return err
	}
	dp.Language = t
	return nil
}

// languageTag returns the lang attribute value for text runs.
func (dp *DocumentProperties) languageTag() string {
	if dp == nil || dp.Language == language.Und {
		return "en-US"
	}
	return dp.Language.String()
}

// DocumentLayout represents the slide dimensions.
type DocumentLayout struct {
	CX   int64 // width in EMU (English Metric Units)
	CY   int64 // height in EMU
	Name string
}

// Standard layout names.
const (
	LayoutScreen4x3  = "screen4x3"
	LayoutScreen16x9 = "screen16x9"
	LayoutWidescreen = "widescreen"
	LayoutCustom     = "custom"
)

// NewDocumentLayout creates the default 13.333 x 7.5 inch widescreen layout.
func NewDocumentLayout() *DocumentLayout {
	return &DocumentLayout{
		CX:   12192000,
		CY:   6858000,
		Name: LayoutWidescreen,
	}
}

// SetLayout sets a predefined layout. Unknown names are ignored.
func (dl *DocumentLayout) SetLayout(name string) {
	switch name {
	case LayoutScreen4x3:
		dl.CX, dl.CY = 9144000, 6858000
	case LayoutScreen16x9:
		dl.CX, dl.CY = 9144000, 5143500
	case LayoutWidescreen:
		dl.CX, dl.CY = 12192000, 6858000
	default:
		return
	}
	dl.Name = name
}

// SetCustomLayout sets custom dimensions in EMU. Non-positive values fall
// back to the widescreen defaults.
func (dl *DocumentLayout) SetCustomLayout(cx, cy int64) {
	if cx <= 0 {
		cx = 12192000
	}
	if cy <= 0 {
		cy = 6858000
	}
	dl.CX = cx
	dl.CY = cy
	dl.Name = LayoutCustom
}

// sldSzType returns the presentation.xml sldSz type attribute for the layout.
func (dl *DocumentLayout) sldSzType() string {
	switch dl.Name {
	case LayoutScreen4x3:
		return "screen4x3"
	case LayoutScreen16x9:
		return "screen16x9"
	default:
		return "custom"
	}
}

var errOutOfRange = errors.New("index out of range")
