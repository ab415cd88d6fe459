package canvas

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

var (
	White       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Black       = color.NRGBA{A: 255}
	Transparent = color.NRGBA{}
)

// ParseColor understands #RGB, #RRGGBB, #RRGGBBAA, rgb(), rgba() and the
// names white, black and transparent.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	case "transparent":
		return Transparent, nil
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}

	if args, ok := functionArgs(s, "rgba"); ok {
		return parseRGB(s, args, 4)
	}
	if args, ok := functionArgs(s, "rgb"); ok {
		return parseRGB(s, args, 3)
	}

	return color.NRGBA{}, fmt.Errorf("unsupported color %q", s)
}

// MustParseColor is ParseColor for literals known to be valid.
func MustParseColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha scales the alpha of c by a.
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a >= 1 {
		return c
	}
	if a <= 0 {
		c.A = 0
		return c
	}
	c.A = uint8(math.Round(float64(c.A) * a))
	return c
}

// Hex formats an opaque color as #RRGGBB, appending alpha when it is not opaque.
func Hex(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

func parseHex(h string) (color.NRGBA, error) {
	expand := func(c byte) string { return string([]byte{c, c}) }

	switch len(h) {
	case 3:
		h = expand(h[0]) + expand(h[1]) + expand(h[2]) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color #%s", h)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color #%s: %w", h, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func functionArgs(s, name string) ([]string, bool) {
	if !strings.HasPrefix(s, name+"(") || !strings.HasSuffix(s, ")") {
		return nil, false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, name+"("), ")")
	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, true
}

func parseRGB(src string, args []string, want int) (color.NRGBA, error) {
	if len(args) != want {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected %d components", src, want)
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(args[i])
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: channel %q", src, args[i])
		}
		channels[i] = uint8(v)
	}

	alpha := uint8(255)
	if want == 4 {
		a, err := strconv.ParseFloat(args[3], 64)
		if err != nil || a < 0 || a > 1 {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: alpha %q", src, args[3])
		}
		alpha = uint8(math.Round(a * 255))
	}

	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}
