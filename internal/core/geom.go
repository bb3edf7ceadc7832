// Package core provides the small set of types shared between the game
// logic and the platform layer: runtime configuration, abstract input
// frames and a character screen buffer. It has no terminal dependencies.
package core

// Rect is an axis-aligned area on the screen, in character cells.
type Rect struct {
	X, Y int // top-left corner
	W, H int
}

// NewRect creates a rectangle with the given position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side.
// The result never has a negative size.
func (r Rect) Inset(n int) Rect {
	return Rect{
		X: r.X + n,
		Y: r.Y + n,
		W: max(0, r.W-2*n),
		H: max(0, r.H-2*n),
	}
}

// CenterIn returns a w x h rectangle centered inside an area of
// areaW x areaH. Oversized rectangles are pinned to the top-left corner.
func CenterIn(w, h, areaW, areaH int) Rect {
	return Rect{
		X: max(0, (areaW-w)/2),
		Y: max(0, (areaH-h)/2),
		W: w,
		H: h,
	}
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
