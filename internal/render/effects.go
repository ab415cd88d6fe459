package render

import (
	"image"
	"math"

	"golang.org/x/text/unicode/norm"

	"github.com/alexisbeaulieu97/sportvisual/internal/canvas"
	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	"github.com/alexisbeaulieu97/sportvisual/internal/imageref"
)

const (
	patternAlpha = 0.1
	hexSize      = 30.0
)

var shadowColor = canvas.MustParseColor("rgba(0,0,0,0.5)")

// painter carries one render's surface and settings through the template code.
type painter struct {
	c       canvas.Canvas
	view    document.ViewSettings
	w, h    float64
	frame   *Frame
	resolve func(ref string) *imageref.Promise
}

func (p *painter) font(weight int, size float64) {
	p.c.SetFont(canvas.Font{Family: p.view.Font, Weight: weight, Size: size})
}

func (p *painter) fill(color string) {
	p.c.SetFill(canvas.Solid(canvas.MustParseColor(color)))
}

// fillHex sets a user supplied color. Invalid values fall back to black.
func (p *painter) fillHex(hex string) {
	c, err := canvas.ParseColor(hex)
	if err != nil {
		c = canvas.Black
	}
	p.c.SetFill(canvas.Solid(c))
}

func (p *painter) gradient(from, to string) canvas.Paint {
	c1, err := canvas.ParseColor(from)
	if err != nil {
		c1 = canvas.Black
	}
	c2, err := canvas.ParseColor(to)
	if err != nil {
		c2 = canvas.Black
	}
	return canvas.LinearGradient(0, 0, p.w, p.h, c1, c2)
}

// text draws one label with the active text effect. The shadow is always
// cleared afterwards.
func (p *painter) text(s string, x, y float64) {
	s = norm.NFC.String(s)
	intensity := float64(p.view.EffectIntensity)

	switch p.view.Effect {
	case "shadow":
		p.c.SetShadow(canvas.Shadow{Color: shadowColor, Blur: intensity * 3, OffsetX: intensity, OffsetY: intensity})
		p.c.FillText(s, x, y)
	case "glow":
		p.c.SetShadow(canvas.Shadow{Color: p.c.Fill().Color, Blur: intensity * 5})
		p.c.FillText(s, x, y)
	case "neon":
		for i := 0; i < 3; i++ {
			p.c.SetShadow(canvas.Shadow{Color: p.c.Fill().Color, Blur: intensity * 8})
			p.c.FillText(s, x, y)
		}
		p.c.SetShadow(canvas.Shadow{})
		p.c.FillText(s, x, y)
	default:
		p.c.FillText(s, x, y)
	}

	p.c.SetShadow(canvas.Shadow{})
}

// plain draws a label without any effect.
func (p *painter) plain(s string, x, y float64) {
	p.c.FillText(norm.NFC.String(s), x, y)
}

// image queues ref as a layer painted by paint once decoded. Empty refs are skipped.
func (p *painter) image(name, ref string, paint func(img image.Image)) {
	if ref == "" {
		return
	}
	p.frame.add(name, p.resolve(ref), paint)
}

func (p *painter) pattern(name string) {
	if name == "" || name == "none" {
		return
	}

	c := p.c
	c.Save()
	defer c.Restore()

	c.SetGlobalAlpha(patternAlpha)
	// Dots keep the fill that was active before the pattern.
	c.SetStroke(canvas.White, 2)

	switch name {
	case "stripes":
		for i := 0.0; i < p.w+p.h; i += 40 {
			c.StrokeLine(i, 0, i-p.h, p.h)
		}
	case "dots":
		for x := 0.0; x < p.w; x += 50 {
			for y := 0.0; y < p.h; y += 50 {
				c.FillCircle(x, y, 4)
			}
		}
	case "hexagons":
		rowStep := hexSize * 1.5
		colStep := hexSize * math.Sqrt(3)
		for row, y := 0, 0.0; y < p.h; row, y = row+1, y+rowStep {
			offset := 0.0
			if row%2 == 1 {
				offset = colStep / 2
			}
			for x := 0.0; x < p.w; x += colStep {
				c.StrokePolygon(hexagon(x+offset, y, hexSize))
			}
		}
	case "grid":
		for i := 0.0; i < p.w; i += 50 {
			c.StrokeLine(i, 0, i, p.h)
		}
		for i := 0.0; i < p.h; i += 50 {
			c.StrokeLine(0, i, p.w, i)
		}
	}
}

func hexagon(cx, cy, size float64) []canvas.Point {
	points := make([]canvas.Point, 6)
	for i := range points {
		angle := math.Pi / 3 * float64(i)
		points[i] = canvas.Point{X: cx + size*math.Cos(angle), Y: cy + size*math.Sin(angle)}
	}
	return points
}

type decoration struct {
	alpha  float64
	glyphs []string
	place  func(i int, w, h float64) [][2]float64
}

var decorations = map[string]decoration{
	"christmas": {
		alpha:  0.3,
		glyphs: []string{"🎄", "❄️", "🎁"},
		place: func(i int, w, h float64) [][2]float64 {
			return [][2]float64{{50 + float64(i)*150, 80}, {w - 200 + float64(i)*60, h - 50}}
		},
	},
	"summer": {
		alpha:  0.25,
		glyphs: []string{"☀️", "🌴", "🌊"},
		place: func(i int, _, _ float64) [][2]float64 {
			return [][2]float64{{60 + float64(i)*140, 70}}
		},
	},
	"playoffs": {
		alpha:  0.3,
		glyphs: []string{"🏆", "⭐", "🥇"},
		place: func(i int, w, _ float64) [][2]float64 {
			return [][2]float64{{w/2 - 90 + float64(i)*90, 50}}
		},
	},
	"halloween": {
		alpha:  0.25,
		glyphs: []string{"🎃", "👻", "🦇"},
		place: func(i int, _, _ float64) [][2]float64 {
			return [][2]float64{{50 + float64(i)*130, 80}}
		},
	},
	"valentine": {
		alpha:  0.3,
		glyphs: []string{"❤️", "💖", "💘"},
		place: func(i int, w, _ float64) [][2]float64 {
			return [][2]float64{{w - 200, 100 + float64(i)*100}}
		},
	},
}

// decorations places the season's glyphs. Fill and alignment are inherited
// from the template that ran before.
func (p *painter) decorations(season string) {
	deco, ok := decorations[season]
	if !ok {
		return
	}

	c := p.c
	c.Save()
	defer c.Restore()

	c.SetFont(canvas.Font{Family: canvas.EmojiFamily, Weight: 400, Size: 60})
	c.SetGlobalAlpha(deco.alpha)
	for i, glyph := range deco.glyphs {
		for _, at := range deco.place(i, p.w, p.h) {
			c.FillText(glyph, at[0], at[1])
		}
	}
}
