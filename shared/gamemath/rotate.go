// Package gamemath holds the pure geometry shared by the simulation.
package gamemath

import "math"

// SinCos returns the sine and cosine of deg degrees. Multiples of 90 are
// exact, so repeated quarter turns do not drift.
func SinCos(deg float64) (sin, cos float64) {
	if q := deg / 90; q == math.Trunc(q) {
		switch int(math.Mod(q, 4)+4) % 4 {
		case 0:
			return 0, 1
		case 1:
			return 1, 0
		case 2:
			return 0, -1
		case 3:
			return -1, 0
		}
	}
	return math.Sincos(deg * math.Pi / 180)
}

// RotateVector applies the world quarter turn (deg = ±90) to a vector given
// in screen coordinates (y grows downward). Positive deg turns the view
// counter-clockwise on screen: right becomes up.
func RotateVector(x, y, deg float64) (float64, float64) {
	sin, cos := SinCos(deg)
	return x*cos + y*sin, -x*sin - y*cos
}

// RotateRect turns the rectangle (x, y, w, h) by deg degrees about the
// center of a viewW x viewH viewport. For quarter turns the result has its
// width and height swapped and keeps the same center offset length.
func RotateRect(x, y, w, h, deg, viewW, viewH float64) (nx, ny, nw, nh float64) {
	hw, hh := viewW/2, viewH/2
	cx := x + w/2 - hw
	cy := y + h/2 - hh

	tx, ty := RotateVector(cx, cy, deg)

	nw, nh = h, w
	nx = tx + hw - nw/2
	ny = ty + hh - nh/2
	return nx, ny, nw, nh
}
