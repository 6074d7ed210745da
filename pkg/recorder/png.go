package recorder

import (
	"bytes"
	"image/png"
	"os"
	"sync"

	"github.com/framecast/framecast/pkg/capture"
)

type pngWriter struct {
	e *png.Encoder
}

type bufPool struct{ sync.Pool }

func pngBuf() *bufPool {
	return &bufPool{sync.Pool{New: func() any { return &png.EncoderBuffer{} }}}
}
func (p *bufPool) Get() *png.EncoderBuffer  { return p.Pool.Get().(*png.EncoderBuffer) }
func (p *bufPool) Put(b *png.EncoderBuffer) { p.Pool.Put(b) }

func newPNGWriter(level int) *pngWriter {
	return &pngWriter{
		e: &png.Encoder{
			CompressionLevel: png.CompressionLevel(level),
			BufferPool:       pngBuf(),
		},
	}
}

func (p *pngWriter) Save(path string, frame capture.Frame) error {
	var buf bytes.Buffer
	buf.Grow(frame.W * frame.H * 4)
	if err := p.e.Encode(&buf, frame.RGBA()); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err = file.Write(buf.Bytes()); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
