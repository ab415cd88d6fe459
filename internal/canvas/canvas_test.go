package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	t.Parallel()

	cases := map[string]color.NRGBA{
		"#007AFF":                {R: 0x00, G: 0x7A, B: 0xFF, A: 255},
		"#1f2937":                {R: 0x1f, G: 0x29, B: 0x37, A: 255},
		"#fff":                   White,
		"#00000080":              {A: 0x80},
		"white":                  White,
		"transparent":            Transparent,
		"rgba(255,255,255,0.95)": {R: 255, G: 255, B: 255, A: 242},
		"rgba(31, 41, 55, 0.6)":  {R: 31, G: 41, B: 55, A: 153},
		"rgb(10,20,30)":          {R: 10, G: 20, B: 30, A: 255},
		"  RGBA(0,0,0,0.5)  ":    {A: 128},
	}
	for input, want := range cases {
		got, err := ParseColor(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	for _, bad := range []string{"", "blue", "#12", "#GGGGGG", "rgba(1,2,3)", "rgb(300,0,0)", "rgba(0,0,0,2)"} {
		_, err := ParseColor(bad)
		require.Error(t, err, bad)
	}

	require.Panics(t, func() { MustParseColor("nope") })
}

func TestWithAlphaAndHex(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint8(128), WithAlpha(White, 0.5).A)
	require.Equal(t, uint8(0), WithAlpha(White, 0).A)
	require.Equal(t, White, WithAlpha(White, 1))
	require.Equal(t, "#007AFF", Hex(color.NRGBA{R: 0, G: 0x7A, B: 0xFF, A: 255}))
	require.Equal(t, "#00000080", Hex(color.NRGBA{A: 0x80}))
}

func TestSaveRestoreIsolatesState(t *testing.T) {
	t.Parallel()

	rec := NewRecorder(100, 100)
	rec.SetFill(Solid(White))
	rec.Save()
	rec.SetGlobalAlpha(0.1)
	rec.SetFill(Solid(Black))
	rec.SetShadow(Shadow{Color: Black, Blur: 4})
	rec.FillRect(0, 0, 10, 10)
	rec.Restore()
	rec.FillRect(0, 0, 10, 10)
	rec.Restore()

	ops := rec.Ops()
	require.Len(t, ops, 2)
	require.InDelta(t, 0.1, ops[0].Alpha, 1e-9)
	require.True(t, ops[0].Shadow.Active())
	require.InDelta(t, 1.0, ops[1].Alpha, 1e-9)
	require.Equal(t, White, ops[1].Fill.Color)
	require.False(t, ops[1].Shadow.Active())
}

func TestGlobalAlphaIgnoresOutOfRange(t *testing.T) {
	t.Parallel()

	rec := NewRecorder(1, 1)
	rec.SetGlobalAlpha(0.3)
	rec.SetGlobalAlpha(1.5)
	rec.SetGlobalAlpha(-1)
	require.InDelta(t, 0.3, rec.GlobalAlpha(), 1e-9)
}

func TestRecorderCapturesTextState(t *testing.T) {
	t.Parallel()

	rec := NewRecorder(1080, 1080)
	rec.SetFont(Font{Family: "Inter", Weight: 700, Size: 36})
	rec.SetTextAlign(AlignCenter)
	rec.FillText("VS", 540, 540)
	rec.ApplyPixels("sepia", func(pix []uint8) { require.Nil(t, pix) })

	texts := rec.Texts("VS")
	require.Len(t, texts, 1)
	require.Equal(t, AlignCenter, texts[0].Align)
	require.InDelta(t, 36, texts[0].Font.Size, 1e-9)
	require.Equal(t, 1, rec.Count(OpPixels))
	require.Contains(t, texts[0].String(), `"VS"`)

	rec.Reset()
	require.Empty(t, rec.Ops())
}

func TestShadowActive(t *testing.T) {
	t.Parallel()

	require.False(t, Shadow{}.Active())
	require.False(t, Shadow{Color: Transparent, Blur: 10}.Active())
	require.False(t, Shadow{Color: Black}.Active())
	require.True(t, Shadow{Color: Black, OffsetX: 2}.Active())
}

func TestRasterFillsPixels(t *testing.T) {
	t.Parallel()

	r := NewRaster(40, 40, nil)
	t.Cleanup(func() { _ = r.Close() })

	r.SetFill(Solid(color.NRGBA{R: 255, A: 255}))
	r.FillRect(0, 0, 40, 40)
	r.SetFill(Solid(color.NRGBA{B: 255, A: 255}))
	r.FillRect(20, 0, 20, 40)
	require.NoError(t, r.Err())

	img := r.Image()
	require.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(5, 20))
	require.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(35, 20))

	r.ApplyPixels("invert-red", func(pix []uint8) {
		for i := 0; i < len(pix); i += 4 {
			pix[i] = 255 - pix[i]
		}
	})
	require.Equal(t, color.RGBA{A: 255}, r.Image().RGBAAt(5, 20))
}

func TestRasterDrawImageAndEncode(t *testing.T) {
	t.Parallel()

	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:], []uint8{0, 255, 0, 255})
	}

	r := NewRaster(20, 20, nil)
	t.Cleanup(func() { _ = r.Close() })
	r.SetFill(Solid(White))
	r.FillRect(0, 0, 20, 20)
	r.DrawImage(src, 0, 0, 20, 20)

	r.SetGlobalAlpha(0)
	r.DrawImage(image.NewRGBA(image.Rect(0, 0, 1, 1)), 0, 0, 20, 20)

	got := r.Image().RGBAAt(10, 10)
	require.Equal(t, uint8(255), got.G)
	require.Less(t, got.R, uint8(10))

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 20, decoded.Bounds().Dx())
}

func TestRasterTextPaintsGlyphs(t *testing.T) {
	t.Parallel()

	r := NewRaster(200, 80, NewFontBook(nil, nil))
	t.Cleanup(func() { _ = r.Close() })

	r.SetFill(Solid(Black))
	r.FillRect(0, 0, 200, 80)
	r.SetFill(Solid(White))
	r.SetFont(Font{Family: "NoSuchFamilyForTests", Weight: 700, Size: 40})
	r.SetTextAlign(AlignCenter)
	r.SetShadow(Shadow{Color: color.NRGBA{R: 255, A: 255}, Blur: 6})
	r.FillText("HI", 100, 55)

	img := r.Image()
	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+1] > 128 {
			lit++
		}
	}
	require.Positive(t, lit)
}

func TestFontBookFallsBackToEmbedded(t *testing.T) {
	t.Parallel()

	book := NewFontBook([]string{t.TempDir()}, nil)

	bold := Font{Family: "NoSuchFamilyForTests", Weight: 700, Size: 20}
	require.NotNil(t, book.Face(bold))
	require.Equal(t, "embedded:gobold", book.Origin(bold))

	semi := Font{Family: "NoSuchFamilyForTests", Weight: 600, Size: 20}
	require.NotNil(t, book.Face(semi))
	require.Equal(t, "embedded:gomedium", book.Origin(semi))

	regular := Font{Family: "sans-serif", Weight: 400, Size: 12}
	require.NotNil(t, book.Face(regular))
	require.Equal(t, "embedded:goregular", book.Origin(regular))
}

func TestCandidateFiles(t *testing.T) {
	t.Parallel()

	names := candidateFiles(sourceKey{family: "Bebas Neue", style: "Regular"})
	require.Contains(t, names, "Bebas Neue-Regular.ttf")
	require.Contains(t, names, "BebasNeue-Regular.ttf")
	require.Contains(t, names, "BebasNeue.ttf")
	require.Equal(t, emojiFiles, candidateFiles(sourceKey{family: EmojiFamily, style: "Regular"}))
	require.Nil(t, candidateFiles(sourceKey{family: "sans-serif", style: "Bold"}))
	require.Equal(t, "Black", styleName(900))
	require.Equal(t, "SemiBold", styleName(600))
}
