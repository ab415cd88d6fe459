package imageref

import (
	"context"
	"image"
)

type result struct {
	img image.Image
	err error
}

// Promise is the pending result of a decode started by Resolve.
type Promise struct {
	Ref  string
	done chan struct{}
	res  result
}

// Resolve starts decoding ref immediately in its own goroutine. The decode
// runs to completion even if nobody awaits it; it is bounded by ctx only.
func Resolve(ctx context.Context, dec Decoder, ref string) *Promise {
	p := &Promise{Ref: ref, done: make(chan struct{})}
	go func() {
		defer close(p.done)
		img, err := dec.Decode(ctx, ref)
		p.res = result{img: img, err: err}
	}()
	return p
}

// Done is closed once the decode has finished.
func (p *Promise) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the decode finishes or ctx is done.
func (p *Promise) Await(ctx context.Context) (image.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return p.res.img, p.res.err
	}
}
