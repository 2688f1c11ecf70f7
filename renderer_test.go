package godeck

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

func rgbaAt(img image.Image, x, y int) color.RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestSlideToImage_BlankSlide(t *testing.T) {
	p := New()
	p.CreateSlide()
	img, err := p.SlideToImage(0, nil)
	if err != nil {
		t.Fatalf("SlideToImage: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 960 {
		t.Errorf("expected width 960, got %d", bounds.Dx())
	}
	// 13.333 x 7.5 in => 960 x 540
	if bounds.Dy() != 540 {
		t.Errorf("expected height 540, got %d", bounds.Dy())
	}
	if c := rgbaAt(img, 10, 10); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("expected white background, got %v", c)
	}
}

func TestSlideToImage_OutOfRange(t *testing.T) {
	p := New()
	if _, err := p.SlideToImage(0, nil); err == nil {
		t.Error("expected error for empty presentation")
	}
	p.CreateSlide()
	if _, err := p.SlideToImage(-1, nil); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestSlideToImage_Background(t *testing.T) {
	p := New()
	p.CreateSlide().SetBackgroundColor(NewColor("060A13"))
	img, err := p.SlideToImage(0, &RenderOptions{Width: 200})
	if err != nil {
		t.Fatal(err)
	}
	if c := rgbaAt(img, 5, 5); c != (color.RGBA{0x06, 0x0A, 0x13, 255}) {
		t.Errorf("background = %v", c)
	}

	override := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	img, _ = p.SlideToImage(0, &RenderOptions{Width: 200, BackgroundColor: &override})
	if c := rgbaAt(img, 5, 5); c != override {
		t.Errorf("override background = %v", c)
	}
}

func TestSlideToImage_Geometry(t *testing.T) {
	p := New()
	p.GetLayout().SetCustomLayout(Inch(10), Inch(10))
	s := p.CreateSlide()
	s.SetBackgroundColor(ColorBlack)

	rect := s.CreateAutoShape()
	rect.SetPosition(0, 0)
	rect.SetSize(Inch(4), Inch(4))
	rect.SetSolidFill(NewColor("FF0000"))

	oval := s.CreateAutoShape().SetAutoShapeType(AutoShapeEllipse)
	oval.SetPosition(Inch(5), Inch(5))
	oval.SetSize(Inch(4), Inch(4))
	oval.SetSolidFill(NewColor("00FF00"))

	arrow := s.CreateAutoShape().SetAutoShapeType(AutoShapeArrowRight)
	arrow.SetPosition(Inch(5), 0)
	arrow.SetSize(Inch(4), Inch(2))
	arrow.SetSolidFill(NewColor("0000FF"))

	img, err := p.SlideToImage(0, &RenderOptions{Width: 100})
	if err != nil {
		t.Fatal(err)
	}
	red := color.RGBA{255, 0, 0, 255}
	green := color.RGBA{0, 255, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	black := color.RGBA{0, 0, 0, 255}

	if c := rgbaAt(img, 20, 20); c != red {
		t.Errorf("rect interior = %v", c)
	}
	if c := rgbaAt(img, 70, 70); c != green {
		t.Errorf("oval center = %v", c)
	}
	if c := rgbaAt(img, 51, 51); c != black {
		t.Errorf("oval bounding-box corner should stay background, got %v", c)
	}
	// Shaft middle and arrow tip region.
	if c := rgbaAt(img, 60, 10); c != blue {
		t.Errorf("arrow shaft = %v", c)
	}
	if c := rgbaAt(img, 51, 1); c != black {
		t.Errorf("area above the shaft should stay background, got %v", c)
	}
}

func TestSlideToImage_RoundedCardBorder(t *testing.T) {
	p := New()
	p.GetLayout().SetCustomLayout(Inch(10), Inch(10))
	s := p.CreateSlide()
	card := s.CreateAutoShape().SetAutoShapeType(AutoShapeRoundedRect)
	card.SetPosition(Inch(1), Inch(1))
	card.SetSize(Inch(8), Inch(8))
	card.SetSolidFill(ColorBlack)
	card.GetBorder().SetSolid(NewColor("FF0000"), Inch(0.2))

	img, _ := p.SlideToImage(0, &RenderOptions{Width: 100})
	if c := rgbaAt(img, 50, 10); c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("top edge should be border, got %v", c)
	}
	if c := rgbaAt(img, 50, 50); c != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("interior should be fill, got %v", c)
	}
	if c := rgbaAt(img, 10, 10); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("rounded corner should stay background, got %v", c)
	}
}

func TestSlideToImage_TextIsDrawn(t *testing.T) {
	p := New()
	s := p.CreateSlide()
	s.SetBackgroundColor(ColorBlack)
	tb := s.CreateRichTextShape()
	tb.SetPosition(Inch(1), Inch(1))
	tb.SetSize(Inch(6), Inch(2))
	tb.CreateTextRun("WWWW").GetFont().SetSize(60).SetColor(ColorWhite).SetName("Segoe UI")

	img, err := p.SlideToImage(0, nil)
	if err != nil {
		t.Fatal(err)
	}
	lit := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if rgbaAt(img, x, y).R > 128 {
				lit++
			}
		}
	}
	if lit < 100 {
		t.Errorf("expected text pixels, found %d", lit)
	}
}

func TestSlidesToImages(t *testing.T) {
	p := New()
	p.CreateSlide()
	p.CreateSlide()
	images, err := p.SlidesToImages(&RenderOptions{Width: 320})
	if err != nil {
		t.Fatal(err)
	}
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	for i, img := range images {
		if img.Bounds().Dx() != 320 {
			t.Errorf("image %d width = %d", i, img.Bounds().Dx())
		}
	}
}

func TestSaveSlidesAsImages(t *testing.T) {
	p := New()
	p.CreateSlide()
	p.CreateSlide().SetBackgroundColor(NewColor("22C55E"))
	dir := filepath.Join(t.TempDir(), "preview")

	paths, err := p.SaveSlidesAsImages(filepath.Join(dir, "slide_%02d.png"), &RenderOptions{Width: 160})
	if err != nil {
		t.Fatalf("SaveSlidesAsImages: %v", err)
	}
	if len(paths) != 2 || filepath.Base(paths[1]) != "slide_02.png" {
		t.Fatalf("unexpected paths %v", paths)
	}
	data, err := os.ReadFile(paths[1])
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c := rgbaAt(img, 3, 3); c != (color.RGBA{0x22, 0xC5, 0x5E, 255}) {
		t.Errorf("slide 2 background = %v", c)
	}
}

func TestEncodeImageJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := EncodeImage(&buf, img, &RenderOptions{Format: ImageFormatJPEG, JPEGQuality: 500}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte{0xFF, 0xD8}) {
		t.Error("expected JPEG SOI marker")
	}
}

func TestFontCache_BuiltinFamilies(t *testing.T) {
	fc := NewFontCache()
	sans := fc.GetFace("Segoe UI", 20, false, false)
	mono := fc.GetFace("Consolas", 20, false, false)
	if sans == basicfont.Face7x13 || mono == basicfont.Face7x13 {
		t.Fatal("expected TrueType faces for built-in families")
	}
	// Go Mono advances every glyph equally; Go Regular does not.
	iw, _ := mono.GlyphAdvance('i')
	ww, _ := mono.GlyphAdvance('W')
	if iw != ww {
		t.Errorf("Consolas should map to a monospaced face: i=%v W=%v", iw, ww)
	}
	si, _ := sans.GlyphAdvance('i')
	sw, _ := sans.GlyphAdvance('W')
	if si == sw {
		t.Error("Segoe UI should map to a proportional face")
	}
	if fc.GetFace("Segoe UI", 20, false, false) != sans {
		t.Error("faces should be cached")
	}
}

func TestFontCache_LoadFontData(t *testing.T) {
	fc := NewFontCache()
	if err := fc.LoadFontData("My Brand", goregular.TTF); err != nil {
		t.Fatalf("LoadFontData: %v", err)
	}
	if face := fc.GetFace("my brand", 12, false, false); face == basicfont.Face7x13 {
		t.Error("registered font not found")
	}
	if err := fc.LoadFontData("broken", []byte("nope")); err == nil {
		t.Error("expected parse error")
	}
}

func TestFontCache_ScanDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "brand-Bold.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "junk.ttf"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	fc := NewFontCache(dir)
	if fc.findFont("brand", true, false) == nil {
		t.Error("expected brand bold to be registered from directory")
	}
	if _, ok := fc.fonts[styleKey{family: "junk"}]; ok {
		t.Error("unparseable font should be skipped")
	}
}

func TestArrowPolygonDirections(t *testing.T) {
	rect := image.Rect(0, 0, 100, 40)
	right := arrowPolygon(AutoShapeArrowRight, rect)
	left := arrowPolygon(AutoShapeArrowLeft, rect)
	if len(right) != 7 || len(left) != 7 {
		t.Fatalf("expected 7-point outlines")
	}
	if right[3] != (point{100, 20}) {
		t.Errorf("right arrow tip = %v", right[3])
	}
	if left[3] != (point{0, 20}) {
		t.Errorf("left arrow tip = %v", left[3])
	}
	down := arrowPolygon(AutoShapeArrowDown, image.Rect(0, 0, 40, 100))
	up := arrowPolygon(AutoShapeArrowUp, image.Rect(0, 0, 40, 100))
	if down[4] != (point{20, 100}) || up[4] != (point{20, 0}) {
		t.Errorf("vertical tips = %v / %v", down[4], up[4])
	}
}

func TestSlideToImage_Supersample(t *testing.T) {
	p := New()
	p.CreateSlide().SetBackgroundColor(NewColor("0A0E1A"))
	img, err := p.SlideToImage(0, &RenderOptions{Width: 240, Supersample: 3})
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 240 || img.Bounds().Dy() != 135 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	c := rgbaAt(img, 120, 60)
	near := func(a, b uint8) bool { return a+1 >= b && b+1 >= a }
	if !near(c.R, 0x0A) || !near(c.G, 0x0E) || !near(c.B, 0x1A) {
		t.Errorf("downscaled background = %v", c)
	}
}
