package render

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/sportvisual/internal/canvas"
	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

type stubDecoder struct {
	images map[string]image.Image
}

func (d stubDecoder) Decode(_ context.Context, ref string) (image.Image, error) {
	if img, ok := d.images[ref]; ok {
		return img, nil
	}
	return nil, sverrors.NewDecodeError(ref, errors.New("unknown format"))
}

type countingObserver struct {
	mu        sync.Mutex
	completed []string
	failed    []string
}

func (o *countingObserver) RenderCompleted(variant string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.completed = append(o.completed, variant)
}

func (o *countingObserver) DecodeFailed(variant string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed = append(o.failed, variant)
}

func newTestRenderer(obs Observer) *Renderer {
	return New(Options{
		Decoder: stubDecoder{images: map[string]image.Image{
			"logo.png": image.NewRGBA(image.Rect(0, 0, 4, 4)),
		}},
		Observer: obs,
	})
}

func TestNeonDrawsThreeGlowPassesAndOnePlain(t *testing.T) {
	t.Parallel()

	snap := document.New()
	snap.Data.Match.HomeTeam = "ÉQUIPE A"
	snap.Data.Match.TextSize = 80
	snap.Effect = "neon"
	snap.EffectIntensity = 5

	rec := canvas.NewRecorder(1080, 1080)
	frame := newTestRenderer(nil).Draw(context.Background(), rec, snap)
	require.NoError(t, frame.Settle(context.Background()))

	texts := rec.Texts("ÉQUIPE A")
	require.Len(t, texts, 4)
	for i, op := range texts {
		require.Equal(t, 540.0, op.X)
		require.Equal(t, 440.0, op.Y)
		require.Equal(t, 80.0, op.Font.Size)
		if i < 3 {
			require.True(t, op.Shadow.Active())
			require.Equal(t, 40.0, op.Shadow.Blur)
			require.Equal(t, canvas.White, op.Shadow.Color)
		} else {
			require.False(t, op.Shadow.Active())
		}
	}
	require.Equal(t, canvas.Shadow{}, rec.Shadow())
}

func TestShadowAndGlowEffects(t *testing.T) {
	t.Parallel()

	snap := document.New()
	snap.Template = document.VariantRanking
	snap.Effect = "shadow"
	snap.EffectIntensity = 4

	rec := canvas.NewRecorder(1080, 1080)
	newTestRenderer(nil).Draw(context.Background(), rec, snap)

	title := rec.Texts("CLASSEMENT")
	require.Len(t, title, 1)
	require.Equal(t, 12.0, title[0].Shadow.Blur)
	require.Equal(t, 4.0, title[0].Shadow.OffsetX)
	require.Equal(t, 4.0, title[0].Shadow.OffsetY)

	snap.Effect = "glow"
	rec.Reset()
	newTestRenderer(nil).Draw(context.Background(), rec, snap)

	title = rec.Texts("CLASSEMENT")
	require.Len(t, title, 1)
	require.Equal(t, 20.0, title[0].Shadow.Blur)
	require.Zero(t, title[0].Shadow.OffsetX)
}

func TestLabelsAreNormalized(t *testing.T) {
	t.Parallel()

	snap := document.New()
	snap.Data.Match.AwayTeam = "E\u0301QUIPE B"

	rec := canvas.NewRecorder(1080, 1080)
	newTestRenderer(nil).Draw(context.Background(), rec, snap)

	require.Len(t, rec.Texts("\u00c9QUIPE B"), 1)
	require.Empty(t, rec.Texts("E\u0301QUIPE B"))
}

func TestDrawIsDeterministic(t *testing.T) {
	t.Parallel()

	snap := document.New()
	snap.Pattern = "hexagons"
	snap.Effect = "glow"
	snap.Season = "summer"

	first := canvas.NewRecorder(1080, 1350)
	second := canvas.NewRecorder(1080, 1350)
	r := newTestRenderer(nil)
	r.Draw(context.Background(), first, snap)
	r.Draw(context.Background(), second, snap)

	require.NotEmpty(t, first.Ops())
	require.Equal(t, first.Ops(), second.Ops())
}

func TestDecorationsSkipUpNext(t *testing.T) {
	t.Parallel()

	emoji := func(rec *canvas.Recorder) int {
		n := 0
		for _, op := range rec.Ops() {
			if op.Kind == canvas.OpFillText && op.Font.Family == canvas.EmojiFamily {
				n++
			}
		}
		return n
	}

	snap := document.New()
	snap.Season = "christmas"

	rec := canvas.NewRecorder(1080, 1080)
	newTestRenderer(nil).Draw(context.Background(), rec, snap)
	require.Equal(t, 6, emoji(rec))
	for _, op := range rec.Ops() {
		if op.Font.Family == canvas.EmojiFamily {
			require.Equal(t, 0.3, op.Alpha)
		}
	}

	snap.Template = document.VariantUpNext
	rec.Reset()
	newTestRenderer(nil).Draw(context.Background(), rec, snap)
	require.Zero(t, emoji(rec))
}

func TestPatterns(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		kind canvas.OpKind
		want int
	}{
		"stripes": {kind: canvas.OpStrokeLine, want: 54},
		"grid":    {kind: canvas.OpStrokeLine, want: 44},
		"dots":    {kind: canvas.OpFillCircle, want: 484},
	}
	for name, tc := range cases {
		snap := document.New()
		snap.Template = document.VariantRanking
		snap.Pattern = name

		rec := canvas.NewRecorder(1080, 1080)
		newTestRenderer(nil).Draw(context.Background(), rec, snap)

		require.Equal(t, tc.want, rec.Count(tc.kind), name)
		for _, op := range rec.Ops() {
			if op.Kind == tc.kind {
				require.Equal(t, 0.1, op.Alpha, name)
			}
		}
	}
}

func TestFilterRunsAfterEveryLayer(t *testing.T) {
	t.Parallel()

	snap := document.New()
	snap.Template = document.VariantScore
	snap.Filter = "sepia"
	snap.Data.Score.HomeLogo = "logo.png"
	snap.Data.Score.AwayLogo = "logo.png"

	rec := canvas.NewRecorder(1080, 1080)
	frame := newTestRenderer(nil).Draw(context.Background(), rec, snap)
	require.Equal(t, 2, frame.Pending())
	require.Equal(t, 1, rec.Count(canvas.OpPixels))

	require.NoError(t, frame.Settle(context.Background()))
	require.Zero(t, frame.Pending())
	require.Equal(t, 2, rec.Count(canvas.OpDrawImage))
	require.Equal(t, 3, rec.Count(canvas.OpPixels))

	ops := rec.Ops()
	last := ops[len(ops)-1]
	require.Equal(t, canvas.OpPixels, last.Kind)
	require.Equal(t, "sepia", last.Label)
}

func TestFailedDecodeOmitsLayer(t *testing.T) {
	t.Parallel()

	obs := &countingObserver{}
	snap := document.New()
	snap.Template = document.VariantPlayer
	snap.Data.Player.PlayerPhoto = "broken.png"

	rec := canvas.NewRecorder(1080, 1080)
	frame := newTestRenderer(obs).Draw(context.Background(), rec, snap)
	before := len(rec.Ops())

	require.NoError(t, frame.Settle(context.Background()))
	require.Zero(t, rec.Count(canvas.OpDrawImage))
	require.Len(t, rec.Ops(), before)
	require.Equal(t, []string{"player"}, obs.failed)
}

func TestMatchBackgroundRepaintsContent(t *testing.T) {
	t.Parallel()

	emoji := func(rec *canvas.Recorder) int {
		n := 0
		for _, op := range rec.Ops() {
			if op.Kind == canvas.OpFillText && op.Font.Family == canvas.EmojiFamily {
				n++
			}
		}
		return n
	}

	snap := document.New()
	snap.Season = "christmas"
	snap.Data.Match.BgImage = "logo.png"

	rec := canvas.NewRecorder(1080, 1080)
	frame := newTestRenderer(nil).Draw(context.Background(), rec, snap)
	require.Len(t, rec.Texts("MATCH À VENIR"), 1)
	decorations := emoji(rec)
	require.Positive(t, decorations)

	require.NoError(t, frame.Settle(context.Background()))
	require.Len(t, rec.Texts("MATCH À VENIR"), 2)
	require.Equal(t, 1, rec.Count(canvas.OpDrawImage))
	require.Equal(t, decorations, emoji(rec), "the background layer covers decorations without redrawing them")
}

func TestDotsKeepBackgroundFill(t *testing.T) {
	t.Parallel()

	snap := document.New()
	snap.Pattern = "dots"

	rec := canvas.NewRecorder(1080, 1080)
	newTestRenderer(nil).Draw(context.Background(), rec, snap)

	ops := rec.Ops()
	require.Equal(t, canvas.OpFillRect, ops[0].Kind)
	background := ops[0].Fill

	circles := 0
	for _, op := range ops {
		if op.Kind == canvas.OpFillCircle {
			circles++
			require.Equal(t, background, op.Fill)
		}
	}
	require.Equal(t, 484, circles)
}

func TestUpNextRowsAndShields(t *testing.T) {
	t.Parallel()

	snap := document.New()
	snap.Template = document.VariantUpNext
	snap.Effect = "neon"

	rec := canvas.NewRecorder(1080, 1920)
	frame := newTestRenderer(nil).Draw(context.Background(), rec, snap)
	require.Zero(t, frame.Pending())

	require.Equal(t, 6, rec.Count(canvas.OpFillPolygon))
	require.Equal(t, 2, rec.Count(canvas.OpStrokeLine))
	require.Len(t, rec.Texts("UP"), 1)
	require.False(t, rec.Texts("UP")[0].Shadow.Active())

	dates := rec.Texts("DIM 15 OCT")
	require.Len(t, dates, 1)
	require.Equal(t, 420.0+140+25, dates[0].Y)

	var panel canvas.Op
	for _, op := range rec.Ops() {
		if op.Kind == canvas.OpFillRoundRect {
			panel = op
		}
	}
	require.Equal(t, 490.0, panel.H)

	snap.Data.UpNext.Matches[0].HomeLogo = "logo.png"
	rec.Reset()
	frame = newTestRenderer(nil).Draw(context.Background(), rec, snap)
	require.Equal(t, 5, rec.Count(canvas.OpFillPolygon))
	require.Equal(t, 1, frame.Pending())
	require.NoError(t, frame.Settle(context.Background()))
	require.Equal(t, 1, rec.Count(canvas.OpDrawImage))
}

func TestUpNextPanelIsClampedToCanvas(t *testing.T) {
	t.Parallel()

	snap := document.New()
	snap.Template = document.VariantUpNext
	require.NoError(t, snap.Data.SetNumMatches(5))

	rec := canvas.NewRecorder(1080, 1080)
	newTestRenderer(nil).Draw(context.Background(), rec, snap)

	var panel canvas.Op
	for _, op := range rec.Ops() {
		if op.Kind == canvas.OpFillRoundRect {
			panel = op
		}
	}
	require.Equal(t, 620.0, panel.H)
	require.Equal(t, 10, rec.Count(canvas.OpFillPolygon))
}

func TestSettleStopsAtDeadline(t *testing.T) {
	t.Parallel()

	gate := make(chan struct{})
	r := New(Options{Decoder: blockingDecoder{gate: gate}})

	snap := document.New()
	snap.Template = document.VariantScore
	snap.Data.Score.HomeLogo = "slow.png"

	rec := canvas.NewRecorder(1080, 1080)
	frame := r.Draw(context.Background(), rec, snap)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, frame.Settle(ctx), context.DeadlineExceeded)
	require.Equal(t, 1, frame.Pending())

	close(gate)
	require.NoError(t, frame.Settle(context.Background()))
	require.Equal(t, 1, rec.Count(canvas.OpDrawImage))
}

type blockingDecoder struct {
	gate chan struct{}
}

func (d blockingDecoder) Decode(ctx context.Context, _ string) (image.Image, error) {
	select {
	case <-d.gate:
		return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestRenderProducesFormatSizedRaster(t *testing.T) {
	t.Parallel()

	obs := &countingObserver{}
	snap := document.New()
	snap.Format = "portrait"
	snap.Filter = "grayscale"

	raster, err := newTestRenderer(obs).Render(context.Background(), snap)
	require.NoError(t, err)
	defer raster.Close()

	w, h := raster.Size()
	require.Equal(t, 1080, w)
	require.Equal(t, 1350, h)
	require.Equal(t, []string{"match"}, obs.completed)

	px := raster.Image().RGBAAt(5, 5)
	require.Equal(t, px.R, px.G)
	require.Equal(t, px.G, px.B)
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	snap := document.New()
	snap.Format = "banner"

	_, err := newTestRenderer(nil).Render(context.Background(), snap)
	require.Error(t, err)
}
