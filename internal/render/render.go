// Package render paints snapshots onto a canvas.
//
// Drawing is synchronous except for image references, which decode in the
// background. Their layers are queued on the returned Frame and composited in
// arrival order when the frame is settled, each followed by the filter pass.
package render

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/alexisbeaulieu97/sportvisual/internal/canvas"
	"github.com/alexisbeaulieu97/sportvisual/internal/catalog"
	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	"github.com/alexisbeaulieu97/sportvisual/internal/filter"
	"github.com/alexisbeaulieu97/sportvisual/internal/imageref"
	"github.com/alexisbeaulieu97/sportvisual/internal/logger"
)

// Observer receives render telemetry. Implementations must be safe for
// concurrent use when a Renderer is shared.
type Observer interface {
	RenderCompleted(variant string, elapsed time.Duration)
	DecodeFailed(variant string)
}

// Options configures a Renderer. Zero values select working defaults.
type Options struct {
	Fonts    *canvas.FontBook
	Decoder  imageref.Decoder
	Logger   *logger.Logger
	Observer Observer
}

// Renderer draws snapshots. It holds no per-render state and may be shared.
type Renderer struct {
	fonts    *canvas.FontBook
	decoder  imageref.Decoder
	log      *logger.Logger
	observer Observer
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	r := &Renderer{
		fonts:    opts.Fonts,
		decoder:  opts.Decoder,
		log:      opts.Logger,
		observer: opts.Observer,
	}
	if r.log == nil {
		r.log = logger.Nop()
	}
	if r.fonts == nil {
		r.fonts = canvas.NewFontBook(nil, r.log)
	}
	if r.decoder == nil {
		r.decoder = imageref.FileDecoder{}
	}
	return r
}

// Fonts returns the font book used by rasters this renderer allocates.
func (r *Renderer) Fonts() *canvas.FontBook {
	return r.fonts
}

// Draw paints snap onto c and returns the frame holding its pending image
// layers. Image decodes start immediately; nothing waits for them here.
func (r *Renderer) Draw(ctx context.Context, c canvas.Canvas, snap document.Snapshot) *Frame {
	snap = snap.Clone()
	snap.ViewSettings.Normalize()

	w, h := c.Size()
	p := &painter{
		c:    c,
		view: snap.ViewSettings,
		w:    float64(w),
		h:    float64(h),
	}
	frame := &Frame{
		canvas:   c,
		filter:   filter.Name(snap.Filter),
		variant:  string(snap.Template),
		log:      r.log.WithField("template", string(snap.Template)),
		observer: r.observer,
	}
	p.frame = frame
	p.resolve = func(ref string) *imageref.Promise {
		return imageref.Resolve(ctx, r.decoder, ref)
	}

	switch rec := snap.Active().(type) {
	case *document.MatchRecord:
		p.match(rec)
	case *document.ScoreRecord:
		p.score(rec)
	case *document.PlayerRecord:
		p.player(rec)
	case *document.RankingRecord:
		p.ranking(rec)
	case *document.UpNextRecord:
		p.upNext(rec)
	}

	if snap.Template != document.VariantUpNext {
		p.decorations(snap.Season)
	}
	frame.applyFilter()
	frame.start()

	return frame
}

// Render allocates a raster at the snapshot's format size, draws it and
// waits for every image layer. Layers still pending when ctx ends are left out.
func (r *Renderer) Render(ctx context.Context, snap document.Snapshot) (*canvas.Raster, error) {
	started := time.Now()

	format, err := catalog.LookupFormat(snap.Format)
	if err != nil {
		return nil, err
	}

	raster := canvas.NewRaster(format.Width, format.Height, r.fonts)
	frame := r.Draw(ctx, raster, snap)
	if err := frame.Settle(ctx); err != nil {
		r.log.Warn(err, fmt.Sprintf("%d image layers did not arrive in time", frame.Pending()))
	}
	if err := raster.Err(); err != nil {
		_ = raster.Close()
		return nil, err
	}

	if r.observer != nil {
		r.observer.RenderCompleted(string(snap.Template), time.Since(started))
	}
	return raster, nil
}

type layer struct {
	name    string
	promise *imageref.Promise
	paint   func(img image.Image)
}

// Frame is one drawn composition and the image layers still on their way.
// It must be settled by the goroutine that owns the canvas.
type Frame struct {
	canvas   canvas.Canvas
	filter   filter.Name
	variant  string
	log      *logger.Logger
	observer Observer

	layers   []*layer
	arrivals chan *layer
	landed   int
}

func (f *Frame) add(name string, promise *imageref.Promise, paint func(img image.Image)) {
	f.layers = append(f.layers, &layer{name: name, promise: promise, paint: paint})
}

func (f *Frame) start() {
	f.arrivals = make(chan *layer, len(f.layers))
	for _, l := range f.layers {
		go func(l *layer) {
			<-l.promise.Done()
			f.arrivals <- l
		}(l)
	}
}

// Pending returns the number of layers that have not been composited or dropped.
func (f *Frame) Pending() int {
	return len(f.layers) - f.landed
}

// Settle composites layers as their decodes finish, in arrival order, and
// re-applies the filter after each one. A layer whose decode failed is
// omitted. Settle returns ctx.Err() if ctx ends first; it can be called again
// to continue.
func (f *Frame) Settle(ctx context.Context) error {
	for f.Pending() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l := <-f.arrivals:
			f.landed++
			f.composite(l)
		}
	}
	return nil
}

func (f *Frame) composite(l *layer) {
	img, err := l.promise.Await(context.Background())
	if err != nil {
		f.log.WithField("layer", l.name).Warn(err, "image layer omitted")
		if f.observer != nil {
			f.observer.DecodeFailed(f.variant)
		}
		return
	}
	l.paint(img)
	f.applyFilter()
}

func (f *Frame) applyFilter() {
	if f.filter == filter.None || f.filter == "" {
		return
	}
	name := f.filter
	f.canvas.ApplyPixels(string(name), func(pix []uint8) {
		filter.Apply(name, pix)
	})
}
