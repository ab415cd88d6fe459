package canvas

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Raster is a Canvas that paints into an RGBA pixmap.
type Raster struct {
	stateStack

	pm    *gg.Pixmap
	dc    *gg.Context
	fonts *FontBook
	err   error
}

// NewRaster allocates a transparent surface of the given size.
func NewRaster(width, height int, fonts *FontBook) *Raster {
	pm := gg.NewPixmap(width, height)
	if fonts == nil {
		fonts = NewFontBook(nil, nil)
	}
	return &Raster{
		stateStack: newStateStack(),
		pm:         pm,
		dc:         gg.NewContext(width, height, gg.WithPixmap(pm)),
		fonts:      fonts,
	}
}

func (r *Raster) Size() (int, int) {
	return r.pm.Width(), r.pm.Height()
}

// Err returns the first drawing error encountered, if any.
func (r *Raster) Err() error {
	return r.err
}

func (r *Raster) FillRect(x, y, w, h float64) {
	r.dc.DrawRectangle(x, y, w, h)
	r.fillPath()
}

func (r *Raster) FillRoundRect(x, y, w, h, radius float64) {
	radius = math.Min(radius, math.Min(w, h)/2)
	r.dc.DrawRoundedRectangle(x, y, w, h, radius)
	r.fillPath()
}

func (r *Raster) FillCircle(x, y, radius float64) {
	r.dc.DrawCircle(x, y, radius)
	r.fillPath()
}

func (r *Raster) FillPolygon(points []Point) {
	if !r.polygon(points) {
		return
	}
	r.fillPath()
}

func (r *Raster) StrokeLine(x0, y0, x1, y1 float64) {
	r.dc.MoveTo(x0, y0)
	r.dc.LineTo(x1, y1)
	r.strokePath()
}

func (r *Raster) StrokePolygon(points []Point) {
	if !r.polygon(points) {
		return
	}
	r.strokePath()
}

// FillText draws s with its baseline at y. Text honours the current shadow.
func (r *Raster) FillText(s string, x, y float64) {
	if s == "" || r.cur.alpha <= 0 {
		return
	}
	face := r.fonts.Face(r.cur.font)
	if face == nil {
		return
	}

	left := x
	if r.cur.align == AlignCenter {
		left -= face.Advance(s) / 2
	}

	r.flush()
	if r.cur.shadow.Active() {
		r.drawTextShadow(s, face, left, y)
	}
	text.DrawWithEmoji(r.pm, s, face, left, y, r.textColor())
}

func (r *Raster) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || r.cur.alpha <= 0 {
		return
	}
	r.dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      w,
		DstHeight:     h,
		Opacity:       r.cur.alpha,
		Interpolation: gg.InterpBilinear,
	})
}

func (r *Raster) ApplyPixels(_ string, fn func(pix []uint8)) {
	r.flush()
	fn(r.pm.Data())
}

// Image returns a copy of the current pixels.
func (r *Raster) Image() *image.RGBA {
	r.flush()
	return r.pm.ToImage()
}

// EncodePNG writes the surface as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	r.flush()
	return r.dc.EncodePNG(w)
}

// Close releases the drawing context.
func (r *Raster) Close() error {
	return r.dc.Close()
}

// drawTextShadow renders the glyphs in the shadow color on a scratch image,
// blurs it with sigma blur/2 and composites it at the shadow offset.
func (r *Raster) drawTextShadow(s string, face text.Face, x, y float64) {
	sh := r.cur.shadow
	metrics := face.Metrics()
	pad := math.Ceil(sh.Blur) + 2
	width := int(math.Ceil(face.Advance(s) + 2*pad))
	height := int(math.Ceil(metrics.Ascent + metrics.Descent + 2*pad))
	if width <= 0 || height <= 0 {
		return
	}

	scratch := image.NewNRGBA(image.Rect(0, 0, width, height))
	text.DrawWithEmoji(scratch, s, face, pad, pad+metrics.Ascent, WithAlpha(sh.Color, r.cur.alpha))

	var layer image.Image = scratch
	if sh.Blur > 0 {
		layer = imaging.Blur(scratch, sh.Blur/2)
	}

	r.dc.DrawImageEx(gg.ImageBufFromImage(layer), gg.DrawImageOptions{
		X:             x - pad + sh.OffsetX,
		Y:             y - metrics.Ascent - pad + sh.OffsetY,
		Interpolation: gg.InterpNearest,
	})
	r.flush()
}

func (r *Raster) polygon(points []Point) bool {
	if len(points) < 2 {
		return false
	}
	r.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	r.dc.ClosePath()
	return true
}

func (r *Raster) fillPath() {
	r.dc.SetFillBrush(r.brush(r.cur.fill))
	r.record(r.dc.Fill())
}

func (r *Raster) strokePath() {
	r.dc.SetLineWidth(r.cur.lineWidth)
	r.dc.SetStrokeBrush(gg.Solid(toRGBA(r.cur.stroke, r.cur.alpha)))
	r.record(r.dc.Stroke())
}

func (r *Raster) brush(p Paint) gg.Brush {
	if p.Gradient == nil {
		return gg.Solid(toRGBA(p.Color, r.cur.alpha))
	}
	g := p.Gradient
	return gg.NewLinearGradientBrush(g.X0, g.Y0, g.X1, g.Y1).
		AddColorStop(0, toRGBA(g.From, r.cur.alpha)).
		AddColorStop(1, toRGBA(g.To, r.cur.alpha))
}

func (r *Raster) flush() {
	r.record(r.dc.FlushGPU())
}

func (r *Raster) record(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
}

func toRGBA(c color.NRGBA, alpha float64) gg.RGBA {
	return gg.RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255 * alpha,
	}
}
