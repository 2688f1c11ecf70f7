package godeck

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// RenderOptions configures slide-to-image rendering.
type RenderOptions struct {
	// Width is the output image width in pixels. Height is calculated from slide aspect ratio.
	// Default: 960
	Width int
	// Format is the output image format (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// BackgroundColor overrides the slide background. Nil means use slide background or white.
	BackgroundColor *color.RGBA
	// FontDirs lists extra directories with .ttf/.otf files to register.
	FontDirs []string
	// FontCache allows sharing a pre-configured FontCache across multiple renders.
	// If nil, a new FontCache is created using FontDirs.
	FontCache *FontCache
	// Supersample renders at this multiple of Width and scales the result
	// down, smoothing shape edges. Values below 2 disable it.
	Supersample int
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Width:       960,
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

// SlideToImage renders a single slide to an image. The rendering is an
// approximation meant for previews: shapes, fills, outlines and wrapped text
// are drawn, but not kerning or exact PowerPoint line metrics.
func (p *Presentation) SlideToImage(slideIndex int, opts *RenderOptions) (image.Image, error) {
	if slideIndex < 0 || slideIndex >= len(p.slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", slideIndex, len(p.slides)-1)
	}
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	width := opts.Width
	if width <= 0 {
		width = 960
	}
	fc := opts.FontCache
	if fc == nil {
		fc = NewFontCache(opts.FontDirs...)
	}
	if opts.Supersample < 2 {
		return p.renderSlide(p.slides[slideIndex], width, opts.BackgroundColor, fc), nil
	}
	big := p.renderSlide(p.slides[slideIndex], width*opts.Supersample, opts.BackgroundColor, fc)
	h := int(math.Round(float64(width) * float64(p.layout.CY) / float64(p.layout.CX)))
	dst := image.NewRGBA(image.Rect(0, 0, width, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), big, big.Bounds(), draw.Src, nil)
	return dst, nil
}

func (p *Presentation) renderSlide(slide *Slide, width int, bgOverride *color.RGBA, fc *FontCache) *image.RGBA {
	layout := p.layout
	slideW := float64(layout.CX)
	slideH := float64(layout.CY)
	imgW := width
	imgH := int(math.Round(float64(imgW) * slideH / slideW))

	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))

	bgColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if bgOverride != nil {
		bgColor = *bgOverride
	} else if slide.background != nil && slide.background.Type == FillSolid {
		bgColor = argbToRGBA(slide.background.Color)
	}
	draw.Draw(img, img.Bounds(), &image.Uniform{bgColor}, image.Point{}, draw.Src)

	r := &renderer{
		img:       img,
		scale:     float64(imgW) / slideW,
		fontCache: fc,
	}
	for _, shape := range slide.shapes {
		r.renderShape(shape)
	}
	return img
}

// SlidesToImages renders all slides to images.
func (p *Presentation) SlidesToImages(opts *RenderOptions) ([]image.Image, error) {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	shared := *opts
	if shared.FontCache == nil {
		shared.FontCache = NewFontCache(opts.FontDirs...)
	}
	images := make([]image.Image, len(p.slides))
	for i := range p.slides {
		img, err := p.SlideToImage(i, &shared)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}
		images[i] = img
	}
	return images, nil
}

// SaveSlideAsImage renders a slide and saves it to a file.
func (p *Presentation) SaveSlideAsImage(slideIndex int, path string, opts *RenderOptions) error {
	img, err := p.SlideToImage(slideIndex, opts)
	if err != nil {
		return err
	}
	return saveImage(img, path, opts)
}

// SaveSlidesAsImages renders all slides and saves them to files.
// The pattern should contain %d for the slide number (1-based), e.g. "slide_%02d.png".
// It returns the written paths in slide order.
func (p *Presentation) SaveSlidesAsImages(pattern string, opts *RenderOptions) ([]string, error) {
	images, err := p.SlidesToImages(opts)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(images))
	for i, img := range images {
		path := fmt.Sprintf(pattern, i+1)
		if err := saveImage(img, path, opts); err != nil {
			return paths, fmt.Errorf("slide %d: %w", i+1, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func saveImage(img image.Image, path string, opts *RenderOptions) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := EncodeImage(f, img, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeImage writes img in the format selected by opts (PNG when nil).
func EncodeImage(w io.Writer, img image.Image, opts *RenderOptions) error {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(w, img)
	}
}

// --- renderer ---

type renderer struct {
	img       *image.RGBA
	scale     float64 // pixels per EMU
	fontCache *FontCache
}

func (r *renderer) renderShape(shape Shape) {
	switch s := shape.(type) {
	case *RichTextShape:
		rect := r.shapeRect(&s.BaseShape)
		r.fillAndStroke(AutoShapeRectangle, rect, s.fill, s.border)
		r.drawTextBody(&s.TextBody, rect)
	case *AutoShape:
		rect := r.shapeRect(&s.BaseShape)
		r.fillAndStroke(s.shapeType, rect, s.fill, s.border)
		if s.HasText() {
			r.drawTextBody(&s.TextBody, rect)
		}
	}
}

func (r *renderer) px(emu int64) int {
	return int(math.Round(float64(emu) * r.scale))
}

func (r *renderer) shapeRect(b *BaseShape) image.Rectangle {
	x, y := r.px(b.offsetX), r.px(b.offsetY)
	return image.Rect(x, y, x+r.px(b.width), y+r.px(b.height))
}

func argbToRGBA(c Color) color.RGBA {
	return color.RGBA{
		R: c.GetRed(),
		G: c.GetGreen(),
		B: c.GetBlue(),
		A: c.GetAlpha(),
	}
}

// --- Shape rendering ---

func (r *renderer) fillAndStroke(geom AutoShapeType, rect image.Rectangle, fill *Fill, border *Border) {
	if rect.Empty() {
		return
	}
	if fill != nil && fill.Type == FillSolid {
		r.fillGeometry(geom, rect, argbToRGBA(fill.Color))
	}
	if border == nil || border.Style == BorderNone {
		return
	}
	pw := r.px(border.Width)
	if pw < 1 {
		pw = 1
	}
	c := argbToRGBA(border.Color)
	switch geom {
	case AutoShapeEllipse:
		r.drawEllipse(rect, c, pw)
	case AutoShapeRoundedRect:
		r.drawRoundRect(rect, roundRectRadius(rect), c, pw)
	case AutoShapeArrowRight, AutoShapeArrowLeft, AutoShapeArrowUp, AutoShapeArrowDown:
		pts := arrowPolygon(geom, rect)
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			r.drawLine(int(a.x), int(a.y), int(b.x), int(b.y), c)
		}
	default:
		r.drawRect(rect, c, pw)
	}
}

func (r *renderer) fillGeometry(geom AutoShapeType, rect image.Rectangle, c color.RGBA) {
	switch geom {
	case AutoShapeEllipse:
		r.fillEllipse(rect, c)
	case AutoShapeRoundedRect:
		r.fillRoundRect(rect, roundRectRadius(rect), c)
	case AutoShapeArrowRight, AutoShapeArrowLeft, AutoShapeArrowUp, AutoShapeArrowDown:
		r.fillPolygon(arrowPolygon(geom, rect), c)
	default:
		draw.Draw(r.img, rect, &image.Uniform{c}, image.Point{}, draw.Over)
	}
}

// roundRectRadius matches the roundRect preset's default adjustment of 16667.
func roundRectRadius(rect image.Rectangle) int {
	return int(float64(min(rect.Dx(), rect.Dy())) * 0.16667)
}

type point struct{ x, y float64 }

// arrowPolygon returns the outline of a block arrow with the preset's default
// adjustments: a shaft half as thick as the shape and a head whose length is
// half the shorter side.
func arrowPolygon(geom AutoShapeType, rect image.Rectangle) []point {
	x0, y0 := float64(rect.Min.X), float64(rect.Min.Y)
	w, h := float64(rect.Dx()), float64(rect.Dy())
	head := math.Min(w, h) / 2

	switch geom {
	case AutoShapeArrowLeft:
		pts := arrowPolygon(AutoShapeArrowRight, rect)
		for i := range pts {
			pts[i].x = x0 + w - (pts[i].x - x0)
		}
		return pts
	case AutoShapeArrowDown:
		return []point{
			{x0 + w/4, y0}, {x0 + 3*w/4, y0}, {x0 + 3*w/4, y0 + h - head},
			{x0 + w, y0 + h - head}, {x0 + w/2, y0 + h}, {x0, y0 + h - head},
			{x0 + w/4, y0 + h - head},
		}
	case AutoShapeArrowUp:
		pts := arrowPolygon(AutoShapeArrowDown, rect)
		for i := range pts {
			pts[i].y = y0 + h - (pts[i].y - y0)
		}
		return pts
	default:
		return []point{
			{x0, y0 + h/4}, {x0 + w - head, y0 + h/4}, {x0 + w - head, y0},
			{x0 + w, y0 + h/2}, {x0 + w - head, y0 + h}, {x0 + w - head, y0 + 3*h/4},
			{x0, y0 + 3*h/4},
		}
	}
}

// --- Drawing primitives ---

func (r *renderer) drawRect(rect image.Rectangle, c color.RGBA, width int) {
	for i := 0; i < width; i++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r.setPixel(x, rect.Min.Y+i, c)
			r.setPixel(x, rect.Max.Y-1-i, c)
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			r.setPixel(rect.Min.X+i, y, c)
			r.setPixel(rect.Max.X-1-i, y, c)
		}
	}
}

// insideRoundRect reports whether the pixel center (px+0.5, py+0.5) lies in rect
// with corners of radius rad.
func insideRoundRect(rect image.Rectangle, rad, px, py int) bool {
	fx, fy := float64(px)+0.5, float64(py)+0.5
	rf := float64(rad)
	cx := math.Max(float64(rect.Min.X)+rf, math.Min(fx, float64(rect.Max.X)-rf))
	cy := math.Max(float64(rect.Min.Y)+rf, math.Min(fy, float64(rect.Max.Y)-rf))
	dx, dy := fx-cx, fy-cy
	return dx*dx+dy*dy <= rf*rf
}

func (r *renderer) fillRoundRect(rect image.Rectangle, rad int, c color.RGBA) {
	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		for px := rect.Min.X; px < rect.Max.X; px++ {
			if insideRoundRect(rect, rad, px, py) {
				r.blendPixel(px, py, c)
			}
		}
	}
}

func (r *renderer) drawRoundRect(rect image.Rectangle, rad int, c color.RGBA, width int) {
	inner := rect.Inset(width)
	innerRad := max(rad-width, 0)
	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		for px := rect.Min.X; px < rect.Max.X; px++ {
			if !insideRoundRect(rect, rad, px, py) {
				continue
			}
			if !inner.Empty() && image.Pt(px, py).In(inner) && insideRoundRect(inner, innerRad, px, py) {
				continue
			}
			r.blendPixel(px, py, c)
		}
	}
}

func (r *renderer) drawLine(x1, y1, x2, y2 int, c color.RGBA) {
	// Bresenham's line algorithm
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		r.setPixel(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (r *renderer) fillEllipse(rect image.Rectangle, c color.RGBA) {
	rx := float64(rect.Dx()) / 2
	ry := float64(rect.Dy()) / 2
	centerX := float64(rect.Min.X) + rx
	centerY := float64(rect.Min.Y) + ry

	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		for px := rect.Min.X; px < rect.Max.X; px++ {
			dx := (float64(px) + 0.5 - centerX) / rx
			dy := (float64(py) + 0.5 - centerY) / ry
			if dx*dx+dy*dy <= 1.0 {
				r.blendPixel(px, py, c)
			}
		}
	}
}

func (r *renderer) drawEllipse(rect image.Rectangle, c color.RGBA, width int) {
	rx := float64(rect.Dx()) / 2
	ry := float64(rect.Dy()) / 2
	centerX := float64(rect.Min.X) + rx
	centerY := float64(rect.Min.Y) + ry

	steps := int(math.Max(rx, ry) * 8)
	if steps < 100 {
		steps = 100
	}
	for w := 0; w < width; w++ {
		for i := 0; i < steps; i++ {
			angle := 2 * math.Pi * float64(i) / float64(steps)
			px := int(centerX + (rx-float64(w))*math.Cos(angle))
			py := int(centerY + (ry-float64(w))*math.Sin(angle))
			r.setPixel(px, py, c)
		}
	}
}

// fillPolygon fills a simple polygon using an even-odd scanline test at pixel centers.
func (r *renderer) fillPolygon(pts []point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].y, pts[0].y
	for _, p := range pts[1:] {
		minY = math.Min(minY, p.y)
		maxY = math.Max(maxY, p.y)
	}
	var xs []float64
	for py := int(math.Floor(minY)); py < int(math.Ceil(maxY)); py++ {
		fy := float64(py) + 0.5
		xs = xs[:0]
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if (a.y <= fy && b.y > fy) || (b.y <= fy && a.y > fy) {
				xs = append(xs, a.x+(fy-a.y)*(b.x-a.x)/(b.y-a.y))
			}
		}
		sortFloats(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for px := int(math.Ceil(xs[i] - 0.5)); float64(px)+0.5 <= xs[i+1]; px++ {
				r.blendPixel(px, py, c)
			}
		}
	}
}

// sortFloats is an insertion sort; scanlines cross at most a handful of edges.
func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

func (r *renderer) setPixel(x, y int, c color.RGBA) {
	if image.Pt(x, y).In(r.img.Bounds()) {
		r.img.SetRGBA(x, y, c)
	}
}

// blendPixel composites c over the existing pixel.
func (r *renderer) blendPixel(x, y int, c color.RGBA) {
	if c.A == 255 {
		r.setPixel(x, y, c)
		return
	}
	if !image.Pt(x, y).In(r.img.Bounds()) {
		return
	}
	dst := r.img.RGBAAt(x, y)
	a := uint32(c.A)
	blend := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a)) / 255)
	}
	r.img.SetRGBA(x, y, color.RGBA{
		R: blend(c.R, dst.R),
		G: blend(c.G, dst.G),
		B: blend(c.B, dst.B),
		A: 255,
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// --- Text rendering ---

// getFace returns a face sized for the output resolution.
func (r *renderer) getFace(f *Font) font.Face {
	if f == nil {
		f = NewFont()
	}
	sizePt := f.Size
	if sizePt <= 0 {
		sizePt = 10
	}
	// One point is EMUPerPoint EMU; at 72 DPI a face of N "points" is N pixels tall.
	scaledPt := sizePt * EMUPerPoint * r.scale
	return r.fontCache.GetFace(f.Name, scaledPt, f.Bold, f.Italic)
}

// textRun holds rendering info for a single text run.
type textRun struct {
	text  string
	face  font.Face
	color color.RGBA
}

// textLine holds a wrapped line of text runs.
type textLine struct {
	runs      []textRun
	width     int
	height    int
	gapBefore int
	alignment HorizontalAlignment
}

func buildTextLine(runs []textRun, align HorizontalAlignment, fallbackH int) textLine {
	totalW := 0
	maxH := 0
	for _, r := range runs {
		totalW += font.MeasureString(r.face, r.text).Ceil()
		if h := r.face.Metrics().Height.Ceil(); h > maxH {
			maxH = h
		}
	}
	if maxH <= 0 {
		maxH = fallbackH
	}
	return textLine{runs: runs, width: totalW, height: maxH, alignment: align}
}

func (r *renderer) drawTextBody(tb *TextBody, rect image.Rectangle) {
	l, t, rt, b := tb.GetInsets()
	inner := image.Rect(rect.Min.X+r.px(l), rect.Min.Y+r.px(t), rect.Max.X-r.px(rt), rect.Max.Y-r.px(b))
	lines := r.layoutParagraphs(tb.paragraphs, inner.Dx(), tb.wordWrap)

	total := 0
	for _, ln := range lines {
		total += ln.gapBefore + ln.height
	}
	curY := inner.Min.Y
	switch tb.textAnchor {
	case TextAnchorMiddle:
		curY += (inner.Dy() - total) / 2
	case TextAnchorBottom:
		curY = inner.Max.Y - total
	}

	for _, line := range lines {
		curY += line.gapBefore + line.height
		if tb.wordWrap && curY > rect.Max.Y {
			break
		}

		drawX := inner.Min.X
		switch line.alignment {
		case HorizontalCenter:
			drawX += (inner.Dx() - line.width) / 2
		case HorizontalRight:
			drawX = inner.Max.X - line.width
		}

		for _, run := range line.runs {
			d := &font.Drawer{
				Dst:  r.img,
				Src:  &image.Uniform{run.color},
				Face: run.face,
				// Baseline sits a descent above the line bottom.
				Dot: fixed.P(drawX, curY-run.face.Metrics().Descent.Ceil()),
			}
			d.DrawString(run.text)
			drawX += font.MeasureString(run.face, run.text).Ceil()
		}
	}
}

// layoutParagraphs splits paragraphs into lines at breaks and, when wrap is
// set, at word boundaries so no line exceeds width.
func (r *renderer) layoutParagraphs(paragraphs []*Paragraph, width int, wrap bool) []textLine {
	var out []textLine
	for i, para := range paragraphs {
		align := HorizontalLeft
		if para.alignment != nil {
			align = para.alignment.Horizontal
		}
		gap := 0
		if i > 0 {
			gap = r.px(int64(para.spaceBefore) * EMUPerPoint / 100)
		}

		emptyH := r.getFace(nil).Metrics().Height.Ceil()
		var lines []textLine
		var runs []textRun
		flush := func() {
			line := buildTextLine(runs, align, emptyH)
			if wrap && width > 0 && line.width > width {
				lines = append(lines, wrapRunLine(line, width, emptyH)...)
			} else {
				lines = append(lines, line)
			}
			runs = nil
		}
		for _, elem := range para.elements {
			switch e := elem.(type) {
			case *TextRun:
				face := r.getFace(e.font)
				emptyH = face.Metrics().Height.Ceil()
				tc := color.RGBA{A: 255}
				if e.font != nil {
					tc = argbToRGBA(e.font.Color)
				}
				runs = append(runs, textRun{text: e.text, face: face, color: tc})
			case *BreakElement:
				flush()
			}
		}
		flush()

		if len(lines) > 0 {
			lines[0].gapBefore = gap
		}
		out = append(out, lines...)
	}
	return out
}

// wrapRunLine wraps a textLine into multiple lines that fit within maxWidth.
func wrapRunLine(line textLine, maxWidth, fallbackH int) []textLine {
	type styledWord struct {
		word  string
		face  font.Face
		color color.RGBA
	}

	var words []styledWord
	for _, run := range line.runs {
		for i, w := range strings.Fields(run.text) {
			if i > 0 || (len(words) > 0 && strings.HasPrefix(run.text, " ")) {
				w = " " + w
			}
			words = append(words, styledWord{word: w, face: run.face, color: run.color})
		}
	}

	if len(words) == 0 {
		return []textLine{line}
	}

	var result []textLine
	var curRuns []textRun
	curWidth := 0

	for _, sw := range words {
		ww := font.MeasureString(sw.face, sw.word).Ceil()
		if curWidth+ww > maxWidth && curWidth > 0 {
			result = append(result, buildTextLine(curRuns, line.alignment, fallbackH))
			curRuns = nil
			curWidth = 0
			sw.word = strings.TrimLeft(sw.word, " ")
			ww = font.MeasureString(sw.face, sw.word).Ceil()
		}
		curRuns = append(curRuns, textRun{text: sw.word, face: sw.face, color: sw.color})
		curWidth += ww
	}
	if len(curRuns) > 0 {
		result = append(result, buildTextLine(curRuns, line.alignment, fallbackH))
	}
	return result
}
