// Package canvas defines the 2D drawing surface templates are painted on,
// with a raster implementation backed by gg and a recording implementation
// that captures draw calls.
package canvas

import (
	"fmt"
	"image"
	"image/color"
)

// Align is the horizontal anchoring of text relative to its x coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

func (a Align) String() string {
	if a == AlignCenter {
		return "center"
	}
	return "left"
}

// Point is a vertex of a polygon.
type Point struct {
	X, Y float64
}

// Gradient is a two-stop linear gradient between two points.
type Gradient struct {
	X0, Y0, X1, Y1 float64
	From, To       color.NRGBA
}

// Paint is either a solid color or, when Gradient is set, a linear gradient.
type Paint struct {
	Color    color.NRGBA
	Gradient *Gradient
}

// Solid returns a solid paint.
func Solid(c color.NRGBA) Paint {
	return Paint{Color: c}
}

// LinearGradient returns a two-stop gradient paint.
func LinearGradient(x0, y0, x1, y1 float64, from, to color.NRGBA) Paint {
	return Paint{Color: from, Gradient: &Gradient{X0: x0, Y0: y0, X1: x1, Y1: y1, From: from, To: to}}
}

func (p Paint) String() string {
	if p.Gradient != nil {
		g := p.Gradient
		return fmt.Sprintf("linear(%g,%g,%g,%g %s->%s)", g.X0, g.Y0, g.X1, g.Y1, Hex(g.From), Hex(g.To))
	}
	return Hex(p.Color)
}

// Font selects a face by family, CSS-style weight and pixel size.
type Font struct {
	Family string
	Weight int
	Size   float64
}

func (f Font) String() string {
	return fmt.Sprintf("%d %gpx %s", f.Weight, f.Size, f.Family)
}

// Shadow is applied to text fills while its color is visible and it has a
// blur or an offset.
type Shadow struct {
	Color   color.NRGBA
	Blur    float64
	OffsetX float64
	OffsetY float64
}

// Active reports whether the shadow would paint anything.
func (s Shadow) Active() bool {
	return s.Color.A > 0 && (s.Blur > 0 || s.OffsetX != 0 || s.OffsetY != 0)
}

// Canvas is a stateful drawing surface modelled on the HTML canvas 2D context.
// Save and Restore push and pop the full graphics state.
type Canvas interface {
	Size() (width, height int)

	Save()
	Restore()
	SetGlobalAlpha(alpha float64)
	GlobalAlpha() float64
	SetFill(p Paint)
	Fill() Paint
	SetStroke(c color.NRGBA, width float64)
	SetFont(f Font)
	SetTextAlign(a Align)
	SetShadow(s Shadow)
	Shadow() Shadow

	FillRect(x, y, w, h float64)
	FillRoundRect(x, y, w, h, r float64)
	FillCircle(x, y, r float64)
	FillPolygon(points []Point)
	StrokeLine(x0, y0, x1, y1 float64)
	StrokePolygon(points []Point)
	FillText(s string, x, y float64)
	DrawImage(img image.Image, x, y, w, h float64)

	// ApplyPixels hands the RGBA pixel buffer to fn for in-place mutation.
	// label names the operation for recording surfaces.
	ApplyPixels(label string, fn func(pix []uint8))
}

type state struct {
	alpha     float64
	fill      Paint
	stroke    color.NRGBA
	lineWidth float64
	font      Font
	align     Align
	shadow    Shadow
}

func defaultState() state {
	return state{
		alpha:     1,
		fill:      Solid(Black),
		stroke:    Black,
		lineWidth: 1,
		font:      Font{Family: "sans-serif", Weight: 400, Size: 10},
		align:     AlignLeft,
	}
}

// stateStack implements the state half of Canvas for both surfaces.
type stateStack struct {
	cur   state
	saved []state
}

func newStateStack() stateStack {
	return stateStack{cur: defaultState()}
}

func (s *stateStack) Save() {
	s.saved = append(s.saved, s.cur)
}

// Restore pops the last saved state. An unbalanced Restore is ignored.
func (s *stateStack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *stateStack) SetGlobalAlpha(alpha float64) {
	if alpha < 0 || alpha > 1 {
		return
	}
	s.cur.alpha = alpha
}

func (s *stateStack) GlobalAlpha() float64 { return s.cur.alpha }

func (s *stateStack) SetFill(p Paint) { s.cur.fill = p }

func (s *stateStack) Fill() Paint { return s.cur.fill }

func (s *stateStack) SetStroke(c color.NRGBA, width float64) {
	s.cur.stroke = c
	if width > 0 {
		s.cur.lineWidth = width
	}
}

func (s *stateStack) SetFont(f Font) { s.cur.font = f }

func (s *stateStack) SetTextAlign(a Align) { s.cur.align = a }

func (s *stateStack) SetShadow(sh Shadow) { s.cur.shadow = sh }

func (s *stateStack) Shadow() Shadow { return s.cur.shadow }

// textColor is the solid color text is filled with. Gradients use their first stop.
func (s *stateStack) textColor() color.NRGBA {
	return WithAlpha(s.cur.fill.Color, s.cur.alpha)
}
