package mandel

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap is the frame buffer: width x height opaque pixels stored as RGBA8,
// row-major, row 0 at the top of the screen.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA, 4 bytes per pixel
}

// NewPixmap creates a black pixmap with the given dimensions.
// Negative dimensions are treated as zero.
func NewPixmap(width, height int) *Pixmap {
	width, height = max(width, 0), max(height, 0)
	p := &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
	p.Clear(Black)
	return p
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int { return p.width }

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int { return p.height }

// Data returns the raw RGBA bytes. Display adapters upload this directly.
func (p *Pixmap) Data() []uint8 { return p.data }

// SetPixel sets one pixel. Out-of-range coordinates are ignored.
func (p *Pixmap) SetPixel(x, y int, c RGB) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	p.set(x, y, c)
}

func (p *Pixmap) set(x, y int, c RGB) {
	i := (y*p.width + x) * 4
	p.data[i+0] = c.r8()
	p.data[i+1] = c.g8()
	p.data[i+2] = c.b8()
	p.data[i+3] = 255
}

// GetPixel returns one pixel. Out-of-range coordinates return black.
func (p *Pixmap) GetPixel(x, y int) RGB {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Black
	}
	i := (y*p.width + x) * 4
	return RGB{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGB) {
	r, g, b := c.r8(), c.g8(), c.b8()
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = 255
	}
}

// Columns returns a writer restricted to columns [x0, x1).
// The range is clipped to the pixmap.
func (p *Pixmap) Columns(x0, x1 int) ColumnView {
	x0 = min(max(x0, 0), p.width)
	x1 = min(max(x1, x0), p.width)
	return ColumnView{pm: p, x0: x0, x1: x1}
}

// ColumnView is exclusive write access to a vertical strip of a Pixmap.
// Views over disjoint column ranges may be written from different
// goroutines without synchronization.
type ColumnView struct {
	pm     *Pixmap
	x0, x1 int
}

// Bounds returns the column range [X0, X1) and the pixmap height.
func (v ColumnView) Bounds() (x0, x1, height int) { return v.x0, v.x1, v.pm.height }

// Set writes a pixel. Writes outside the view's columns are dropped.
func (v ColumnView) Set(x, y int, c RGB) {
	if x < v.x0 || x >= v.x1 || y < 0 || y >= v.pm.height {
		return
	}
	v.pm.set(x, y, c)
}

// ToImage copies the pixmap into an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// SavePNG writes the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
