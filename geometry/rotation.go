// Package geometry provides planar geometric primitives: rotations,
// translations, poses, and twists. These are the building blocks for the
// kinematics and odometry layers.
package geometry

import (
	"math"

	"github.com/openfield-robotics/driveline/utils"
)

// Rotation represents a rotation in the plane, counter-clockwise positive.
// The zero value is the zero rotation. A Rotation is not wrapped to any
// range; composing rotations accumulates angle.
type Rotation struct {
	theta float64
}

// NewRotation returns a Rotation of the given angle in radians.
func NewRotation(radians float64) Rotation {
	return Rotation{theta: radians}
}

// NewRotationFromDegrees returns a Rotation of the given angle in degrees.
func NewRotationFromDegrees(degrees float64) Rotation {
	return Rotation{theta: utils.DegToRad(degrees)}
}

// NewRotationFromComponents returns the Rotation of the vector (x, y)
// measured from the positive x axis. The magnitude of the vector is ignored.
// The result is in (-π, π].
func NewRotationFromComponents(x, y float64) Rotation {
	return Rotation{theta: math.Atan2(y, x)}
}

// Radians returns the angle in radians.
func (r Rotation) Radians() float64 {
	return r.theta
}

// Degrees returns the angle in degrees.
func (r Rotation) Degrees() float64 {
	return utils.RadToDeg(r.theta)
}

// Cos returns the cosine of the rotation.
func (r Rotation) Cos() float64 {
	return math.Cos(r.theta)
}

// Sin returns the sine of the rotation.
func (r Rotation) Sin() float64 {
	return math.Sin(r.theta)
}

// Tan returns the tangent of the rotation.
func (r Rotation) Tan() float64 {
	return math.Tan(r.theta)
}

// RotateBy composes two rotations.
func (r Rotation) RotateBy(other Rotation) Rotation {
	return Rotation{theta: r.theta + other.theta}
}

// Add is an alias for RotateBy.
func (r Rotation) Add(other Rotation) Rotation {
	return r.RotateBy(other)
}

// Sub returns the rotation from other to r.
func (r Rotation) Sub(other Rotation) Rotation {
	return Rotation{theta: r.theta - other.theta}
}

// Inverse returns the rotation that undoes r.
func (r Rotation) Inverse() Rotation {
	return Rotation{theta: -r.theta}
}

// RotationAlmostEqual returns whether two rotations represent approximately
// the same heading. Angles that differ by a full turn compare equal.
func RotationAlmostEqual(r1, r2 Rotation, epsilon float64) bool {
	return utils.Float64AlmostEqual(r1.Cos(), r2.Cos(), epsilon) &&
		utils.Float64AlmostEqual(r1.Sin(), r2.Sin(), epsilon)
}
