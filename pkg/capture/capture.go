// Package capture defines the boundary to the host's screenshot primitive.
package capture

import (
	"image"

	"golang.org/x/image/draw"
)

// Frame is one rendered frame as raw RGBA pixels.
// Stride is the byte length of one pixel row and may exceed W*4
// when the host buffer carries row padding.
type Frame struct {
	Pix    []byte
	Stride int
	W, H   int
}

// Source is the host capture primitive. Capture asynchronously delivers
// the most recently rendered frame into dst and returns immediately;
// dst is a single-slot channel owned by the caller.
type Source interface {
	Capture(dst chan<- Frame)
}

// RGBA repacks the frame into a tightly packed image. The pixel data is
// shared with the frame when the stride already matches, copied otherwise.
func (f Frame) RGBA() *image.RGBA {
	r := image.Rect(0, 0, f.W, f.H)
	if f.Stride == f.W*4 {
		return &image.RGBA{Pix: f.Pix, Stride: f.Stride, Rect: r}
	}
	src := &image.RGBA{Pix: f.Pix, Stride: f.Stride, Rect: r}
	dst := image.NewRGBA(r)
	draw.Draw(dst, r, src, image.Point{}, draw.Src)
	return dst
}
