package fireworks

import "reflect"

// Surface is the 2D target fireworks paint onto. Implementations are the
// ebiten-backed Canvas and termsurface.Surface.
//
// A circle is painted by BeginPath, SetFillColor, FillCircle in that order.
// FillRect paints with the current fill color and is used to clear the
// background.
type Surface interface {
	BeginPath()
	SetFillColor(c Color)
	FillCircle(x, y, radius float64)
	FillRect(x, y, width, height float64)
}

// validSurface reports whether s can be drawn on. Nil interfaces and nil
// pointers are rejected; a Surface may also expose Valid() bool to report a
// released backing store.
func validSurface(s Surface) bool {
	if s == nil {
		return false
	}
	if rv := reflect.ValueOf(s); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return false
	}
	if v, ok := s.(interface{ Valid() bool }); ok {
		return v.Valid()
	}
	return true
}

// fillCircle paints a filled circle using the four surface primitives.
func fillCircle(s Surface, x, y, radius float64, c Color) {
	s.BeginPath()
	s.SetFillColor(c)
	s.FillCircle(x, y, radius)
}
