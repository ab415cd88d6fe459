package filter

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func pixels(rgba ...uint8) []uint8 {
	return append([]uint8(nil), rgba...)
}

func TestNoneIsIdentity(t *testing.T) {
	t.Parallel()

	pix := pixels(12, 34, 56, 78, 255, 0, 128, 10)
	want := pixels(12, 34, 56, 78, 255, 0, 128, 10)

	Apply(None, pix)
	require.Equal(t, want, pix)

	Apply(Name("vintage"), pix)
	require.Equal(t, want, pix)
}

func TestGrayscaleAveragesChannels(t *testing.T) {
	t.Parallel()

	pix := pixels(30, 60, 90, 200)
	Apply(Grayscale, pix)
	require.Equal(t, pixels(60, 60, 60, 200), pix)

	odd := pixels(1, 2, 2, 255)
	Apply(Grayscale, odd)
	require.Equal(t, pixels(2, 2, 2, 255), odd, "5/3 rounds to 2")
}

func TestSepiaWhiteClampsRedGreenOnly(t *testing.T) {
	t.Parallel()

	pix := pixels(255, 255, 255, 255)
	Apply(Sepia, pix)
	// The blue row sums to 0.937, so 238.935 rounds to 239.
	require.Equal(t, pixels(255, 255, 239, 255), pix)
}

func TestSepiaCoefficients(t *testing.T) {
	t.Parallel()

	pix := pixels(100, 50, 20, 9)
	Apply(Sepia, pix)
	// 39.3+38.45+3.78, 34.9+34.3+3.36, 27.2+26.7+2.62
	require.Equal(t, pixels(82, 73, 57, 9), pix)
}

func TestContrastUpperClampOnly(t *testing.T) {
	t.Parallel()

	pix := pixels(200, 128, 40, 77)
	Apply(Contrast, pix)
	require.Equal(t, pixels(255, 128, 0, 77), pix)

	mid := pixels(129, 127, 64, 1)
	Apply(Contrast, mid)
	require.Equal(t, pixels(130, 126, 0, 1), mid)
}

func TestBrightnessAddsOffset(t *testing.T) {
	t.Parallel()

	pix := pixels(0, 100, 220, 0)
	Apply(Brightness, pix)
	require.Equal(t, pixels(50, 150, 255, 0), pix)
}

func TestApplyImageAndParse(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(img.Pix, []uint8{10, 20, 30, 255})
	ApplyImage(Brightness, img)
	require.Equal(t, []uint8{60, 70, 80, 255}, img.Pix)
	require.NotPanics(t, func() { ApplyImage(Sepia, nil) })

	name, err := Parse("sepia")
	require.NoError(t, err)
	require.Equal(t, Sepia, name)
	_, err = Parse("blur")
	require.Error(t, err)
	require.Len(t, Names(), 5)
}

func TestPartialTrailingPixelIgnored(t *testing.T) {
	t.Parallel()

	pix := pixels(10, 10, 10, 255, 1, 2)
	Apply(Brightness, pix)
	require.Equal(t, pixels(60, 60, 60, 255, 1, 2), pix)
}
