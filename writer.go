package godeck

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Writer is the interface for presentation writers.
type Writer interface {
	Save(path string) error
	WriteTo(w io.Writer) error
}

// WriterType represents the output format.
type WriterType string

const (
	WriterPowerPoint2007 WriterType = "PowerPoint2007"
)

// ErrNilPresentation is returned when writing a nil presentation.
var ErrNilPresentation = errors.New("presentation is nil")

// NewWriter creates a writer for the given format.
func NewWriter(p *Presentation, format WriterType) (Writer, error) {
	switch format {
	case WriterPowerPoint2007:
		return NewPPTXWriter(p), nil
	default:
		return nil, fmt.Errorf("unsupported writer format: %s", format)
	}
}

// PPTXWriter writes presentations in PPTX format.
type PPTXWriter struct {
	presentation *Presentation
	// modTime stamps every zip entry so equal presentations produce equal bytes.
	modTime time.Time
}

// NewPPTXWriter creates a PPTX writer for p.
func NewPPTXWriter(p *Presentation) *PPTXWriter {
	return &PPTXWriter{presentation: p}
}

// Save writes p to path with a PPTXWriter.
func (p *Presentation) Save(path string) error {
	return NewPPTXWriter(p).Save(path)
}

// WriteTo writes p as PPTX to w.
func (p *Presentation) WriteTo(w io.Writer) error {
	return NewPPTXWriter(p).WriteTo(w)
}

// Save writes the presentation to path. The archive is written to a
// temporary file in the destination directory and renamed into place, so a
// failed save never leaves a partial file at path. The directory must exist.
func (w *PPTXWriter) Save(path string) error {
	if w.presentation == nil {
		return ErrNilPresentation
	}
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".godeck-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmp := f.Name()

	writeErr := w.WriteTo(f)
	closeErr := f.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(tmp)
		if writeErr != nil {
			return writeErr
		}
		return fmt.Errorf("failed to close file: %w", closeErr)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// WriteTo writes the presentation to a writer.
func (w *PPTXWriter) WriteTo(writer io.Writer) error {
	if w.presentation == nil {
		return ErrNilPresentation
	}
	w.modTime = w.presentation.properties.Modified
	if w.modTime.IsZero() || w.modTime.Year() < 1980 {
		w.modTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	zw := zip.NewWriter(writer)

	parts := []func(*zip.Writer) error{
		w.writeContentTypes,
		w.writeRootRels,
		w.writeAppProperties,
		w.writeCoreProperties,
		w.writePresentation,
		w.writePresentationRels,
		w.writePresProps,
		w.writeViewProps,
		w.writeTableStyles,
		w.writeSlideMaster,
		w.writeSlideLayout,
		w.writeTheme,
	}
	for _, part := range parts {
		if err := part(zw); err != nil {
			return err
		}
	}

	for i, slide := range w.presentation.slides {
		if err := w.writeSlide(zw, slide, i+1); err != nil {
			return err
		}
		if err := w.writeSlideRels(zw, i+1); err != nil {
			return err
		}
	}

	return zw.Close()
}
