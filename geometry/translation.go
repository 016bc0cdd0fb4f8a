package geometry

import "github.com/golang/geo/r2"

// Translation is a displacement in the plane. X is forward and Y is left in
// whatever frame the caller is working in.
type Translation r2.Point

// NewTranslation returns a Translation with the given components.
func NewTranslation(x, y float64) Translation {
	return Translation{X: x, Y: y}
}

// Add returns the vector sum of two translations.
func (t Translation) Add(other Translation) Translation {
	return Translation(r2.Point(t).Add(r2.Point(other)))
}

// Sub returns the translation from other to t.
func (t Translation) Sub(other Translation) Translation {
	return Translation(r2.Point(t).Sub(r2.Point(other)))
}

// Scale returns t scaled by the given factor.
func (t Translation) Scale(factor float64) Translation {
	return Translation(r2.Point(t).Mul(factor))
}

// RotateBy rotates t about the origin by the given rotation.
func (t Translation) RotateBy(r Rotation) Translation {
	cos := r.Cos()
	sin := r.Sin()
	return Translation{
		X: t.X*cos - t.Y*sin,
		Y: t.X*sin + t.Y*cos,
	}
}

// Norm returns the distance from the origin.
func (t Translation) Norm() float64 {
	return r2.Point(t).Norm()
}

// Distance returns the distance between two translations.
func (t Translation) Distance(other Translation) float64 {
	return r2.Point(other).Sub(r2.Point(t)).Norm()
}
