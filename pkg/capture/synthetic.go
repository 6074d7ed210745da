package capture

import "sync/atomic"

// Synthetic generates animated gradient frames. It stands in for a real
// host when there is no render loop to capture from (demo binary, tests).
type Synthetic struct {
	W, H int
	tick atomic.Uint32
}

func NewSynthetic(w, h int) *Synthetic { return &Synthetic{W: w, H: h} }

func (s *Synthetic) Capture(dst chan<- Frame) {
	n := s.tick.Add(1)
	go func() {
		pix := make([]byte, s.W*s.H*4)
		for y := 0; y < s.H; y++ {
			for x := 0; x < s.W; x++ {
				i := (y*s.W + x) * 4
				pix[i] = byte(x + int(n))
				pix[i+1] = byte(y + int(n))
				pix[i+2] = byte(int(n))
				pix[i+3] = 255
			}
		}
		dst <- Frame{Pix: pix, Stride: s.W * 4, W: s.W, H: s.H}
	}()
}
