// Package ebiten draws voice output as an oscilloscope trace with Ebiten.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Native scope resolution. The image is scaled to the window.
const (
	ScopeWidth  = 400
	ScopeHeight = 200
)

var (
	traceColor = [4]byte{0x40, 0xE0, 0x80, 0xFF}
	axisColor  = [4]byte{0x30, 0x30, 0x30, 0xFF}
)

// Scope renders sample blocks to an offscreen image.
type Scope struct {
	pixels    []byte
	offscreen *ebiten.Image
	drawOpts  ebiten.DrawImageOptions
}

// NewScope returns a scope with a preallocated RGBA buffer.
func NewScope() *Scope {
	return &Scope{pixels: make([]byte, ScopeWidth*ScopeHeight*4)}
}

// Layout implements ebiten.Game.
func (s *Scope) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Draw rasterizes samples and draws them scaled to fit screen, keeping the
// aspect ratio.
func (s *Scope) Draw(screen *ebiten.Image, samples []int16) {
	Rasterize(s.pixels, ScopeWidth, ScopeHeight, samples)

	if s.offscreen == nil {
		s.offscreen = ebiten.NewImage(ScopeWidth, ScopeHeight)
	}
	s.offscreen.WritePixels(s.pixels)

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	scaleX := float64(screenW) / ScopeWidth
	scaleY := float64(screenH) / ScopeHeight
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}
	offsetX := (float64(screenW) - ScopeWidth*scale) / 2
	offsetY := (float64(screenH) - ScopeHeight*scale) / 2

	s.drawOpts = ebiten.DrawImageOptions{}
	s.drawOpts.GeoM.Scale(scale, scale)
	s.drawOpts.GeoM.Translate(offsetX, offsetY)
	s.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(s.offscreen, &s.drawOpts)
}

// Rasterize draws samples into an RGBA buffer of w x h pixels: a center
// axis and one trace column per x, connecting consecutive sample points.
// Samples are spread evenly across the width.
func Rasterize(pixels []byte, w, h int, samples []int16) {
	clear(pixels[:w*h*4])
	mid := h / 2
	for x := 0; x < w; x++ {
		setPixel(pixels, w, x, mid, axisColor)
	}
	if len(samples) == 0 {
		return
	}

	prev := sampleY(samples[0], h)
	for x := 0; x < w; x++ {
		y := sampleY(samples[x*len(samples)/w], h)
		lo, hi := prev, y
		if lo > hi {
			lo, hi = hi, lo
		}
		for yy := lo; yy <= hi; yy++ {
			setPixel(pixels, w, x, yy, traceColor)
		}
		prev = y
	}
}

// sampleY maps a sample to a row, positive values toward the top.
func sampleY(s int16, h int) int {
	y := (h - 1) - (int(s)+32768)*(h-1)/65535
	return y
}

func setPixel(pixels []byte, w, x, y int, c [4]byte) {
	i := (y*w + x) * 4
	copy(pixels[i:i+4], c[:])
}
