package godeck

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Reader is the interface for presentation readers.
type Reader interface {
	Read(path string) (*Presentation, error)
	ReadFromReader(r io.ReaderAt, size int64) (*Presentation, error)
}

// ReaderType represents the input format.
type ReaderType string

const (
	ReaderPowerPoint2007 ReaderType = "PowerPoint2007"
)

// NewReader creates a reader for the given format.
func NewReader(format ReaderType) (Reader, error) {
	switch format {
	case ReaderPowerPoint2007:
		return &PPTXReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported reader format: %s", format)
	}
}

// Open reads the PPTX file at path.
func Open(path string) (*Presentation, error) {
	return (&PPTXReader{}).Read(path)
}

// ReadFrom reads a PPTX archive of the given size from r.
func ReadFrom(r io.ReaderAt, size int64) (*Presentation, error) {
	return (&PPTXReader{}).ReadFromReader(r, size)
}

// PPTXReader reads the subset of PPTX written by PPTXWriter: slide size,
// core properties, solid backgrounds, text boxes and preset auto shapes.
// Other shape kinds are skipped.
type PPTXReader struct{}

// zipIndex builds a map from file name to *zip.File for O(1) lookups.
func zipIndex(zr *zip.Reader) map[string]*zip.File {
	m := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		m[f.Name] = f
	}
	return m
}

// Read reads a presentation from a file path.
func (r *PPTXReader) Read(path string) (*Presentation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return r.ReadFromReader(f, info.Size())
}

// ReadFromReader reads a presentation from an io.ReaderAt.
func (r *PPTXReader) ReadFromReader(reader io.ReaderAt, size int64) (*Presentation, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid reader size: %d", size)
	}
	if size > int64(maxZipTotalSize) {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed (%d bytes)", size, maxZipTotalSize)
	}

	zr, err := zip.NewReader(reader, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	if len(zr.File) > maxZipEntries {
		return nil, fmt.Errorf("zip archive contains too many entries (%d > %d)", len(zr.File), maxZipEntries)
	}
	files := zipIndex(zr)

	pres := New()

	// Missing core properties are acceptable.
	_ = r.readCoreProperties(files, pres)

	slideRels, err := r.readPresentation(files, pres)
	if err != nil {
		return nil, err
	}

	presRels, err := r.readRelationships(files, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(presRels))
	for _, rel := range presRels {
		targets[rel.ID] = rel.Target
	}

	for _, relID := range slideRels {
		target, ok := targets[relID]
		if !ok || target == "" {
			continue
		}
		target = resolveRelativePath("ppt", target)

		slide, err := r.readSlide(files, target)
		if err != nil {
			return nil, fmt.Errorf("failed to read slide %s: %w", target, err)
		}
		pres.slides = append(pres.slides, slide)
	}

	return pres, nil
}

// maxZipEntrySize is the maximum allowed size for a single file extracted from a ZIP.
const maxZipEntrySize = 50 << 20 // 50 MB

// maxZipTotalSize is the limit for the archive itself.
const maxZipTotalSize = 200 << 20 // 200 MB

// maxZipEntries is the maximum number of files allowed in a ZIP archive.
const maxZipEntries = 10000

func readFileFromZip(files map[string]*zip.File, name string) ([]byte, error) {
	f, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("file not found in zip: %s", name)
	}
	if f.UncompressedSize64 > maxZipEntrySize {
		return nil, fmt.Errorf("file %s exceeds maximum allowed size (%d bytes)", name, maxZipEntrySize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s in zip: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, int64(maxZipEntrySize)+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from zip: %w", name, err)
	}
	if int64(len(data)) > int64(maxZipEntrySize) {
		return nil, fmt.Errorf("file %s actual size exceeds maximum allowed size", name)
	}
	return data, nil
}

// resolveRelativePath resolves a relationship target against the directory
// of the part that owns the relationship.
func resolveRelativePath(base, rel string) string {
	if strings.HasPrefix(rel, "/") {
		return strings.TrimPrefix(rel, "/")
	}
	return path.Clean(path.Join(base, rel))
}

// --- Relationship reading ---

type xmlRelForRead struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type xmlRelsForRead struct {
	XMLName       xml.Name        `xml:"Relationships"`
	Relationships []xmlRelForRead `xml:"Relationship"`
}

func (r *PPTXReader) readRelationships(files map[string]*zip.File, path string) ([]xmlRelForRead, error) {
	data, err := readFileFromZip(files, path)
	if err != nil {
		return nil, nil // relationships file may not exist
	}

	var rels xmlRelsForRead
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships %s: %w", path, err)
	}
	return rels.Relationships, nil
}

// --- presentation.xml ---

type xmlPresentationForRead struct {
	XMLName xml.Name `xml:"presentation"`
	SldIDs  []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
	SldSz struct {
		CX   int64  `xml:"cx,attr"`
		CY   int64  `xml:"cy,attr"`
		Type string `xml:"type,attr"`
	} `xml:"sldSz"`
}

// readPresentation reads the slide size and returns slide relationship ids in order.
func (r *PPTXReader) readPresentation(files map[string]*zip.File, pres *Presentation) ([]string, error) {
	data, err := readFileFromZip(files, "ppt/presentation.xml")
	if err != nil {
		return nil, err
	}
	var doc xmlPresentationForRead
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse presentation.xml: %w", err)
	}

	if doc.SldSz.CX > 0 && doc.SldSz.CY > 0 {
		pres.layout = layoutFromSize(doc.SldSz.CX, doc.SldSz.CY, doc.SldSz.Type)
	}

	ids := make([]string, 0, len(doc.SldIDs))
	for _, s := range doc.SldIDs {
		ids = append(ids, s.RID)
	}
	return ids, nil
}

func layoutFromSize(cx, cy int64, typ string) *DocumentLayout {
	l := NewDocumentLayout()
	switch {
	case typ == LayoutScreen4x3 || typ == LayoutScreen16x9:
		l.SetLayout(typ)
	case cx == 12192000 && cy == 6858000:
		l.SetLayout(LayoutWidescreen)
	default:
		l.SetCustomLayout(cx, cy)
	}
	return l
}

// --- docProps/core.xml ---

type xmlCorePropsForRead struct {
	Creator        string `xml:"creator"`
	LastModifiedBy string `xml:"lastModifiedBy"`
	Title          string `xml:"title"`
	Subject        string `xml:"subject"`
	Language       string `xml:"language"`
	Created        string `xml:"created"`
	Modified       string `xml:"modified"`
}

func (r *PPTXReader) readCoreProperties(files map[string]*zip.File, pres *Presentation) error {
	data, err := readFileFromZip(files, "docProps/core.xml")
	if err != nil {
		return err
	}
	var cp xmlCorePropsForRead
	if err := xml.Unmarshal(data, &cp); err != nil {
		return fmt.Errorf("failed to parse core properties: %w", err)
	}

	props := pres.properties
	props.Creator = cp.Creator
	props.LastModifiedBy = cp.LastModifiedBy
	props.Title = cp.Title
	props.Subject = cp.Subject
	if tag, err := language.Parse(cp.Language); err == nil {
		props.Language = tag
	}
	if t, err := time.Parse(time.RFC3339, cp.Created); err == nil {
		props.Created = t
	}
	if t, err := time.Parse(time.RFC3339, cp.Modified); err == nil {
		props.Modified = t
	}
	return nil
}
