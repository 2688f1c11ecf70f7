package godeck

import (
	"fmt"
	"strings"
)

// Validate checks the presentation for structural issues and returns an error
// describing all problems found, or nil if the presentation is valid.
// An empty presentation is valid.
func (p *Presentation) Validate() error {
	var errs []string

	if p.properties == nil {
		errs = append(errs, "document properties are nil")
	}
	if p.layout == nil {
		errs = append(errs, "document layout is nil")
	} else {
		if p.layout.CX <= 0 {
			errs = append(errs, "layout width (CX) must be positive")
		}
		if p.layout.CY <= 0 {
			errs = append(errs, "layout height (CY) must be positive")
		}
	}

	for i, slide := range p.slides {
		prefix := fmt.Sprintf("slide %d", i+1)
		if slide == nil {
			errs = append(errs, prefix+": slide is nil")
			continue
		}
		for _, e := range validateSlide(slide) {
			errs = append(errs, prefix+": "+e)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validateSlide(s *Slide) []string {
	var errs []string
	if bg := s.background; bg != nil && bg.Type == FillSolid && !isValidARGB(bg.Color.ARGB) {
		errs = append(errs, "background color is invalid ARGB")
	}
	for j, shape := range s.shapes {
		prefix := fmt.Sprintf("shape %d", j+1)
		if shape == nil {
			errs = append(errs, prefix+": shape is nil")
			continue
		}
		if shape.GetWidth() < 0 {
			errs = append(errs, prefix+": width is negative")
		}
		if shape.GetHeight() < 0 {
			errs = append(errs, prefix+": height is negative")
		}
		if shape.GetOffsetX() < 0 || shape.GetOffsetY() < 0 {
			errs = append(errs, prefix+": offset is negative")
		}

		b := shape.base()
		if b.fill != nil && b.fill.Type == FillSolid && !isValidARGB(b.fill.Color.ARGB) {
			errs = append(errs, prefix+": fill color is invalid ARGB")
		}
		if b.border != nil && b.border.Style != BorderNone {
			if !isValidARGB(b.border.Color.ARGB) {
				errs = append(errs, prefix+": border color is invalid ARGB")
			}
			if b.border.Width < 0 {
				errs = append(errs, prefix+": border width is negative")
			}
		}

		switch sh := shape.(type) {
		case *RichTextShape:
			if len(sh.paragraphs) == 0 {
				errs = append(errs, prefix+": rich text shape has no paragraphs")
			}
			errs = append(errs, validateParagraphs(sh.paragraphs, prefix)...)
		case *AutoShape:
			if !isKnownAutoShape(sh.shapeType) {
				errs = append(errs, prefix+": unsupported preset geometry: "+string(sh.shapeType))
			}
			errs = append(errs, validateParagraphs(sh.paragraphs, prefix)...)
		}
	}
	return errs
}

// validateParagraphs checks paragraph elements for common issues.
func validateParagraphs(paragraphs []*Paragraph, prefix string) []string {
	var errs []string
	for i, para := range paragraphs {
		if para == nil {
			errs = append(errs, fmt.Sprintf("%s: paragraph %d is nil", prefix, i+1))
			continue
		}
		if para.alignment == nil {
			errs = append(errs, fmt.Sprintf("%s: paragraph %d has nil alignment", prefix, i+1))
		}
		for k, elem := range para.elements {
			if elem == nil {
				errs = append(errs, fmt.Sprintf("%s: paragraph %d element %d is nil", prefix, i+1, k+1))
				continue
			}
			if tr, ok := elem.(*TextRun); ok {
				if tr.font == nil {
					errs = append(errs, fmt.Sprintf("%s: paragraph %d text run %d has nil font", prefix, i+1, k+1))
				} else if !isValidARGB(tr.font.Color.ARGB) {
					errs = append(errs, fmt.Sprintf("%s: paragraph %d text run %d has invalid color", prefix, i+1, k+1))
				}
			}
		}
	}
	return errs
}

func isKnownAutoShape(t AutoShapeType) bool {
	switch t {
	case AutoShapeRectangle, AutoShapeRoundedRect, AutoShapeEllipse,
		AutoShapeArrowRight, AutoShapeArrowLeft, AutoShapeArrowUp, AutoShapeArrowDown:
		return true
	}
	return false
}
