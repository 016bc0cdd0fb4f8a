package geometry

import "math"

// Pose is a position and heading on the field.
type Pose struct {
	Translation Translation
	Rotation    Rotation
}

// NewPose returns a Pose at (x, y) with the given heading.
func NewPose(x, y float64, heading Rotation) Pose {
	return Pose{Translation: NewTranslation(x, y), Rotation: heading}
}

// TransformBy applies a transform expressed in p's own frame and returns the
// resulting pose.
func (p Pose) TransformBy(translation Translation, rotation Rotation) Pose {
	return Pose{
		Translation: p.Translation.Add(translation.RotateBy(p.Rotation)),
		Rotation:    p.Rotation.RotateBy(rotation),
	}
}

// RelativeTo returns p expressed in the frame of the given origin pose.
func (p Pose) RelativeTo(origin Pose) Pose {
	return Pose{
		Translation: p.Translation.Sub(origin.Translation).RotateBy(origin.Rotation.Inverse()),
		Rotation:    p.Rotation.Sub(origin.Rotation),
	}
}

// Exp integrates a constant twist over one timestep starting at p. The robot
// is assumed to follow an arc of constant curvature, which is what a chassis
// does when its velocity command is held for the step.
func (p Pose) Exp(delta Twist) Pose {
	sinTheta := math.Sin(delta.Dtheta)
	cosTheta := math.Cos(delta.Dtheta)

	var s, c float64
	if math.Abs(delta.Dtheta) < 1e-9 {
		// second-order Taylor expansion near zero curvature
		s = 1.0 - delta.Dtheta*delta.Dtheta/6.0
		c = 0.5 * delta.Dtheta
	} else {
		s = sinTheta / delta.Dtheta
		c = (1 - cosTheta) / delta.Dtheta
	}

	translation := NewTranslation(delta.Dx*s-delta.Dy*c, delta.Dx*c+delta.Dy*s)
	return p.TransformBy(translation, NewRotation(delta.Dtheta))
}

// Log returns the twist that takes p to end in one timestep, the inverse of
// Exp.
func (p Pose) Log(end Pose) Twist {
	transform := end.RelativeTo(p)
	dtheta := transform.Rotation.Radians()
	halfDtheta := dtheta / 2.0

	cosMinusOne := transform.Rotation.Cos() - 1
	var halfThetaByTanOfHalfDtheta float64
	if math.Abs(cosMinusOne) < 1e-9 {
		halfThetaByTanOfHalfDtheta = 1.0 - dtheta*dtheta/12.0
	} else {
		halfThetaByTanOfHalfDtheta = -(halfDtheta * transform.Rotation.Sin()) / cosMinusOne
	}

	translation := transform.Translation.
		RotateBy(NewRotationFromComponents(halfThetaByTanOfHalfDtheta, -halfDtheta)).
		Scale(math.Hypot(halfThetaByTanOfHalfDtheta, halfDtheta))
	return Twist{Dx: translation.X, Dy: translation.Y, Dtheta: dtheta}
}

// PoseAlmostEqual returns whether two poses are within epsilon of each other
// in both position and heading.
func PoseAlmostEqual(p1, p2 Pose, epsilon float64) bool {
	return p1.Translation.Distance(p2.Translation) <= epsilon &&
		RotationAlmostEqual(p1.Rotation, p2.Rotation, epsilon)
}
