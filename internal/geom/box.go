package geom

import "math"

// Box is an orthogonal periodic simulation cell. A zero length along an axis
// disables periodicity on that axis, so the zero value is a fully open cell.
type Box struct {
	L Vec3
}

// NewBox returns a periodic box with the given edge lengths.
func NewBox(lx, ly, lz float64) Box {
	return Box{L: Vec3{lx, ly, lz}}
}

// MinimumImage returns the displacement a-b mapped to the nearest periodic
// image of b.
func (b Box) MinimumImage(a, v Vec3) Vec3 {
	d := a.Sub(v)
	for k := 0; k < 3; k++ {
		if b.L[k] > 0 {
			d[k] -= b.L[k] * math.Round(d[k]/b.L[k])
		}
	}
	return d
}

// ClosestImage returns the coordinates of the periodic image of x closest to
// ref.
func (b Box) ClosestImage(ref, x Vec3) Vec3 {
	return ref.Sub(b.MinimumImage(ref, x))
}
