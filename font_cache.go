package godeck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fontKey uniquely identifies a font face by name, size, bold, and italic.
type fontKey struct {
	name   string
	size   float64
	bold   bool
	italic bool
}

// styleKey identifies one parsed font file.
type styleKey struct {
	family string
	bold   bool
	italic bool
}

// Built-in families. Any typeface that is not registered is drawn with one of
// these, chosen by whether its name suggests a monospaced design.
const (
	familySans = "go"
	familyMono = "go mono"
)

// FontCache manages font loading and face caching for the preview renderer.
// It always carries the Go font families, so rendering is identical on every
// machine. Additional TrueType/OpenType files can be registered by name or
// loaded from directories.
type FontCache struct {
	mu    sync.RWMutex
	fonts map[styleKey]*opentype.Font
	faces map[fontKey]font.Face
}

// NewFontCache creates a FontCache holding the built-in Go fonts plus every
// .ttf/.otf file found directly inside dirs. Unreadable files are skipped.
func NewFontCache(dirs ...string) *FontCache {
	fc := &FontCache{
		fonts: make(map[styleKey]*opentype.Font),
		faces: make(map[fontKey]font.Face),
	}
	builtin := []struct {
		key  styleKey
		data []byte
	}{
		{styleKey{familySans, false, false}, goregular.TTF},
		{styleKey{familySans, true, false}, gobold.TTF},
		{styleKey{familySans, false, true}, goitalic.TTF},
		{styleKey{familySans, true, true}, gobolditalic.TTF},
		{styleKey{familyMono, false, false}, gomono.TTF},
		{styleKey{familyMono, true, false}, gomonobold.TTF},
		{styleKey{familyMono, false, true}, gomonoitalic.TTF},
		{styleKey{familyMono, true, true}, gomonobolditalic.TTF},
	}
	for _, b := range builtin {
		if f, err := opentype.Parse(b.data); err == nil {
			fc.fonts[b.key] = f
		}
	}
	for _, dir := range dirs {
		fc.scanDir(dir)
	}
	return fc
}

// GetFace returns a face for the given font properties at sizePt (72 DPI).
// It never returns nil: when no TrueType face can be built it falls back to
// basicfont.Face7x13.
func (fc *FontCache) GetFace(name string, sizePt float64, bold, italic bool) font.Face {
	key := fontKey{name: strings.ToLower(name), size: sizePt, bold: bold, italic: italic}

	fc.mu.RLock()
	if face, ok := fc.faces[key]; ok {
		fc.mu.RUnlock()
		return face
	}
	fc.mu.RUnlock()

	f := fc.findFont(key.name, bold, italic)
	if f == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePt,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}

	fc.mu.Lock()
	fc.faces[key] = face
	fc.mu.Unlock()
	return face
}

// findFont resolves a lowercase family name, dropping to the regular style
// of the same family and then to the matching built-in family.
func (fc *FontCache) findFont(lower string, bold, italic bool) *opentype.Font {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	for _, family := range []string{lower, builtinFamily(lower)} {
		if f, ok := fc.fonts[styleKey{family, bold, italic}]; ok {
			return f
		}
		if f, ok := fc.fonts[styleKey{family, false, false}]; ok {
			return f
		}
	}
	return nil
}

// builtinFamily picks the Go family standing in for a typeface.
func builtinFamily(lower string) string {
	for _, hint := range []string{"mono", "consolas", "courier", "code", "menlo"} {
		if strings.Contains(lower, hint) {
			return familyMono
		}
	}
	return familySans
}

// maxFontFileSize limits the size of individual font files loaded into memory.
const maxFontFileSize = 20 << 20 // 20 MB

// LoadFont loads a TrueType/OpenType file and registers it as the regular
// style of the given family name.
func (fc *FontCache) LoadFont(name string, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxFontFileSize {
		return fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return fc.LoadFontData(name, data)
}

// LoadFontData registers a TrueType/OpenType font from raw bytes.
func (fc *FontCache) LoadFontData(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return err
	}
	fc.mu.Lock()
	fc.fonts[styleKey{family: strings.ToLower(name)}] = f
	// Drop cached faces so the new font takes effect.
	fc.faces = make(map[fontKey]font.Face)
	fc.mu.Unlock()
	return nil
}

// scanDir registers each font file in dir under its base name, with style
// taken from common file name suffixes such as "-Bold" or "bi".
func (fc *FontCache) scanDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		info, err := e.Info()
		if err != nil || info.Size() > maxFontFileSize {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		fc.fonts[parseStyleKey(strings.TrimSuffix(strings.ToLower(e.Name()), ext))] = f
	}
}

func parseStyleKey(base string) styleKey {
	suffixes := []struct {
		s            string
		bold, italic bool
	}{
		{"-bolditalic", true, true},
		{"-bold", true, false},
		{"-italic", false, true},
		{"-regular", false, false},
	}
	for _, sfx := range suffixes {
		if strings.HasSuffix(base, sfx.s) {
			return styleKey{strings.TrimSuffix(base, sfx.s), sfx.bold, sfx.italic}
		}
	}
	return styleKey{family: base}
}
