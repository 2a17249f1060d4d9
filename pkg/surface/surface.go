package surface

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Surface is a shared raster drawing target. Scene renderers draw onto it
// through Draw while the capture stream samples it through SnapshotRGBA, so
// all access goes through an internal read/write lock.
type Surface struct {
	mu     sync.RWMutex
	dc     *gg.Context
	width  int
	height int
}

// New creates a surface with the given pixel dimensions. Dimensions must be
// positive and even; the capture encoder works in yuv420p which subsamples
// chroma in 2x2 blocks.
func New(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface dimensions %dx%d", width, height)
	}
	if width%2 != 0 || height%2 != 0 {
		return nil, fmt.Errorf("surface dimensions %dx%d must be even", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	return &Surface{
		dc:     dc,
		width:  width,
		height: height,
	}, nil
}

// LoadFontFace replaces the default bitmap font with a TTF loaded from disk.
func (s *Surface) LoadFontFace(path string, points float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.dc.LoadFontFace(path, points); err != nil {
		return fmt.Errorf("failed to load font face %s: %w", path, err)
	}
	return nil
}

// Draw runs fn against the drawing context under the write lock.
func (s *Surface) Draw(fn func(dc *gg.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.dc)
}

// SnapshotRGBA returns a detached copy of the current pixels. The copy is
// safe to hand to an encoder while rendering continues.
func (s *Surface) SnapshotRGBA() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.dc.Image()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
	return dst
}

// EncodePNG writes the current pixels as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dc.EncodePNG(w)
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}
