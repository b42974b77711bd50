package fireworks

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas is an offscreen ebiten image implementing Surface. Scenes paint
// into it during Update; DrawTo copies the finished frame to the screen in
// Draw, so a frame is always complete before it is shown.
type Canvas struct {
	img  *ebiten.Image
	fill color.RGBA
}

// NewCanvas allocates a width x height canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img:  ebiten.NewImage(width, height),
		fill: ColorWhite.ToRGBA(),
	}
}

// Valid reports whether the canvas still has a backing image.
func (c *Canvas) Valid() bool {
	return c != nil && c.img != nil
}

// Image returns the backing image.
func (c *Canvas) Image() *ebiten.Image {
	return c.img
}

// BeginPath starts a new shape. Shapes are filled immediately, so there is
// no path state to reset.
func (c *Canvas) BeginPath() {}

// SetFillColor sets the color used by FillCircle and FillRect.
func (c *Canvas) SetFillColor(col Color) {
	c.fill = col.ToRGBA()
}

// FillCircle paints an anti-aliased filled circle. Non-positive radii
// paint nothing.
func (c *Canvas) FillCircle(x, y, radius float64) {
	if radius <= 0 {
		return
	}
	vector.DrawFilledCircle(c.img, float32(x), float32(y), float32(radius), c.fill, true)
}

// FillRect paints an axis-aligned rectangle.
func (c *Canvas) FillRect(x, y, width, height float64) {
	vector.DrawFilledRect(c.img, float32(x), float32(y), float32(width), float32(height), c.fill, false)
}

// DrawTo copies the canvas onto dst at the origin.
func (c *Canvas) DrawTo(dst *ebiten.Image) {
	dst.DrawImage(c.img, nil)
}

// Dispose releases the backing image. The canvas is invalid afterwards.
func (c *Canvas) Dispose() {
	if c.img != nil {
		c.img.Deallocate()
		c.img = nil
	}
}
