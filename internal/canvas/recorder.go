package canvas

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// OpKind names a recorded draw call.
type OpKind string

const (
	OpFillRect      OpKind = "fillRect"
	OpFillRoundRect OpKind = "fillRoundRect"
	OpFillCircle    OpKind = "fillCircle"
	OpFillPolygon   OpKind = "fillPolygon"
	OpStrokeLine    OpKind = "strokeLine"
	OpStrokePolygon OpKind = "strokePolygon"
	OpFillText      OpKind = "fillText"
	OpDrawImage     OpKind = "drawImage"
	OpPixels        OpKind = "pixels"
)

// Op is one recorded draw call together with the state it was issued under.
type Op struct {
	Kind   OpKind
	Label  string
	X, Y   float64
	W, H   float64
	R      float64
	Points []Point
	Alpha  float64
	Fill   Paint
	Stroke color.NRGBA
	Font   Font
	Align  Align
	Shadow Shadow
}

func (o Op) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-14s", o.Kind)
	switch o.Kind {
	case OpFillText:
		fmt.Fprintf(&b, " %q at (%g,%g) font=%q align=%s fill=%s", o.Label, o.X, o.Y, o.Font.String(), o.Align, o.Fill)
		if o.Shadow.Active() {
			fmt.Fprintf(&b, " shadow=%s blur=%g offset=(%g,%g)", Hex(o.Shadow.Color), o.Shadow.Blur, o.Shadow.OffsetX, o.Shadow.OffsetY)
		}
	case OpStrokeLine:
		fmt.Fprintf(&b, " (%g,%g)-(%g,%g) stroke=%s", o.X, o.Y, o.W, o.H, Hex(o.Stroke))
	case OpFillPolygon, OpStrokePolygon:
		fmt.Fprintf(&b, " %d points fill=%s", len(o.Points), o.Fill)
	case OpPixels:
		fmt.Fprintf(&b, " %s", o.Label)
	case OpDrawImage:
		fmt.Fprintf(&b, " %s (%g,%g %gx%g)", o.Label, o.X, o.Y, o.W, o.H)
	default:
		fmt.Fprintf(&b, " (%g,%g %gx%g r=%g) fill=%s", o.X, o.Y, o.W, o.H, o.R, o.Fill)
	}
	if o.Alpha != 1 {
		fmt.Fprintf(&b, " alpha=%g", o.Alpha)
	}
	return b.String()
}

// Recorder is a Canvas that records draw calls instead of painting them.
// It is used to inspect what a template draws.
type Recorder struct {
	stateStack

	width, height int
	ops           []Op
}

// NewRecorder creates a recording surface of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{stateStack: newStateStack(), width: width, height: height}
}

func (r *Recorder) Size() (int, int) { return r.width, r.height }

// Ops returns the recorded calls in issue order.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Count returns how many calls of a kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns the recorded text fills whose label equals s.
func (r *Recorder) Texts(s string) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == OpFillText && op.Label == s {
			out = append(out, op)
		}
	}
	return out
}

// Reset discards the recorded calls and restores the initial state.
func (r *Recorder) Reset() {
	r.ops = nil
	r.stateStack = newStateStack()
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.push(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) FillRoundRect(x, y, w, h, radius float64) {
	r.push(Op{Kind: OpFillRoundRect, X: x, Y: y, W: w, H: h, R: radius})
}

func (r *Recorder) FillCircle(x, y, radius float64) {
	r.push(Op{Kind: OpFillCircle, X: x, Y: y, R: radius})
}

func (r *Recorder) FillPolygon(points []Point) {
	r.push(Op{Kind: OpFillPolygon, Points: append([]Point(nil), points...)})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1 float64) {
	r.push(Op{Kind: OpStrokeLine, X: x0, Y: y0, W: x1, H: y1})
}

func (r *Recorder) StrokePolygon(points []Point) {
	r.push(Op{Kind: OpStrokePolygon, Points: append([]Point(nil), points...)})
}

func (r *Recorder) FillText(s string, x, y float64) {
	r.push(Op{Kind: OpFillText, Label: s, X: x, Y: y})
}

func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) {
	label := "nil"
	if img != nil {
		b := img.Bounds()
		label = fmt.Sprintf("%dx%d", b.Dx(), b.Dy())
	}
	r.push(Op{Kind: OpDrawImage, Label: label, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) ApplyPixels(label string, fn func(pix []uint8)) {
	fn(nil)
	r.push(Op{Kind: OpPixels, Label: label})
}

func (r *Recorder) push(op Op) {
	op.Alpha = r.cur.alpha
	op.Fill = r.cur.fill
	op.Stroke = r.cur.stroke
	op.Font = r.cur.font
	op.Align = r.cur.align
	op.Shadow = r.cur.shadow
	r.ops = append(r.ops, op)
}
