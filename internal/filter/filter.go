// Package filter implements the whole-surface pixel filters applied after a
// template is drawn.
package filter

import (
	"fmt"
	"image"
	"math"
)

// Name identifies a pixel filter.
type Name string

const (
	None       Name = "none"
	Grayscale  Name = "grayscale"
	Sepia      Name = "sepia"
	Contrast   Name = "contrast"
	Brightness Name = "brightness"
)

const (
	contrastFactor   = 2
	brightnessOffset = 50
)

// Names returns every filter in display order.
func Names() []Name {
	return []Name{None, Grayscale, Sepia, Contrast, Brightness}
}

// Parse converts a user supplied name into a Name.
func Parse(s string) (Name, error) {
	for _, n := range Names() {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// Apply transforms an RGBA byte buffer in place, four bytes per pixel. The
// alpha byte is never modified. None and unknown names leave pix untouched.
//
// Contrast and brightness clamp only the upper bound; values that go negative
// are stored as 0 by the byte conversion, as a clamped byte buffer would.
func Apply(name Name, pix []uint8) {
	var fn func(r, g, b float64) (float64, float64, float64)

	switch name {
	case Grayscale:
		fn = grayscale
	case Sepia:
		fn = sepia
	case Contrast:
		fn = contrast
	case Brightness:
		fn = brightness
	default:
		return
	}

	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := fn(float64(pix[i]), float64(pix[i+1]), float64(pix[i+2]))
		pix[i] = toByte(r)
		pix[i+1] = toByte(g)
		pix[i+2] = toByte(b)
	}
}

// ApplyImage runs Apply over an image's pixel buffer.
func ApplyImage(name Name, img *image.RGBA) {
	if img == nil {
		return
	}
	Apply(name, img.Pix)
}

func grayscale(r, g, b float64) (float64, float64, float64) {
	avg := (r + g + b) / 3
	return avg, avg, avg
}

func sepia(r, g, b float64) (float64, float64, float64) {
	return math.Min(255, r*0.393+g*0.769+b*0.189),
		math.Min(255, r*0.349+g*0.686+b*0.168),
		math.Min(255, r*0.272+g*0.534+b*0.131)
}

func contrast(r, g, b float64) (float64, float64, float64) {
	c := func(v float64) float64 { return math.Min(255, (v-128)*contrastFactor+128) }
	return c(r), c(g), c(b)
}

func brightness(r, g, b float64) (float64, float64, float64) {
	return math.Min(255, r+brightnessOffset), math.Min(255, g+brightnessOffset), math.Min(255, b+brightnessOffset)
}

// toByte stores a channel value the way a clamped byte array does: NaN and
// negatives become 0, values above 255 become 255, halves round to even.
func toByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}
