// Package termsurface renders fireworks scenes in a terminal with tcell.
//
// Every terminal cell stands in for a block of world units, so a scene
// designed for a window keeps its proportions in any terminal size.
package termsurface

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/fireworks"
)

// Surface implements fireworks.Surface on a tcell screen. Rectangles paint
// cell backgrounds; circles paint a glyph in the fill color over the
// existing background.
type Surface struct {
	screen         tcell.Screen
	worldW, worldH float64
	scaleX, scaleY float64
	cols, rows     int
	fill           tcell.Color
}

// New creates a surface mapping a worldWidth x worldHeight scene onto the
// whole screen.
func New(screen tcell.Screen, worldWidth, worldHeight float64) *Surface {
	s := &Surface{
		screen: screen,
		worldW: worldWidth,
		worldH: worldHeight,
		fill:   tcell.ColorWhite,
	}
	s.Resize()
	return s
}

// Resize recomputes the world-to-cell mapping from the current screen size.
func (s *Surface) Resize() {
	if s.screen == nil {
		return
	}
	s.cols, s.rows = s.screen.Size()
	if s.worldW > 0 {
		s.scaleX = float64(s.cols) / s.worldW
	}
	if s.worldH > 0 {
		s.scaleY = float64(s.rows) / s.worldH
	}
}

// Valid reports whether the surface has a screen.
func (s *Surface) Valid() bool {
	return s != nil && s.screen != nil
}

// Screen returns the underlying screen.
func (s *Surface) Screen() tcell.Screen {
	return s.screen
}

func (s *Surface) BeginPath() {}

func (s *Surface) SetFillColor(c fireworks.Color) {
	s.fill = toTcell(c)
}

// FillRect paints the background of every cell whose origin lies inside
// the rectangle.
func (s *Surface) FillRect(x, y, width, height float64) {
	x0, y0 := s.cell(x, y)
	x1 := int(math.Ceil((x + width) * s.scaleX))
	y1 := int(math.Ceil((y + height) * s.scaleY))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, s.cols), min(y1, s.rows)

	style := tcell.StyleDefault.Background(s.fill)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			s.screen.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

// FillCircle paints every cell whose centre lies within radius, and always
// the cell containing the centre. Non-positive radii paint nothing.
func (s *Surface) FillCircle(x, y, radius float64) {
	if radius <= 0 || s.scaleX == 0 || s.scaleY == 0 {
		return
	}
	glyph := glyphFor(radius)
	cx, cy := s.cell(x, y)
	s.plot(cx, cy, glyph)

	minX, minY := s.cell(x-radius, y-radius)
	maxX, maxY := s.cell(x+radius, y+radius)
	for row := minY; row <= maxY; row++ {
		for col := minX; col <= maxX; col++ {
			if col == cx && row == cy {
				continue
			}
			wx := (float64(col) + 0.5) / s.scaleX
			wy := (float64(row) + 0.5) / s.scaleY
			if (wx-x)*(wx-x)+(wy-y)*(wy-y) <= radius*radius {
				s.plot(col, row, glyph)
			}
		}
	}
}

func (s *Surface) plot(col, row int, glyph rune) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	_, _, style, _ := s.screen.GetContent(col, row)
	s.screen.SetContent(col, row, glyph, nil, style.Foreground(s.fill))
}

func (s *Surface) cell(x, y float64) (int, int) {
	return int(math.Floor(x * s.scaleX)), int(math.Floor(y * s.scaleY))
}

func glyphFor(radius float64) rune {
	switch {
	case radius >= fireworks.ChargeSize:
		return '●'
	case radius >= 1:
		return '*'
	case radius >= 0.5:
		return '+'
	default:
		return '.'
	}
}

func toTcell(c fireworks.Color) tcell.Color {
	rgba := c.ToRGBA()
	return tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
}
