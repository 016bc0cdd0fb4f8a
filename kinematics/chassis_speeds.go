// Package kinematics converts between chassis-level velocity commands and
// per-wheel speeds for differential, mecanum, and swerve drivetrains.
package kinematics

import "github.com/openfield-robotics/driveline/geometry"

// ChassisSpeeds is the velocity of a robot chassis expressed in its own body
// frame. Dx is forward linear velocity (forward positive), Dy is sideways
// linear velocity (left positive), and Dtheta is angular velocity
// (counter-clockwise positive). A strictly non-holonomic drivetrain such as a
// differential drive never has a Dy component; holonomic drivetrains such as
// swerve and mecanum often have all three.
//
// Although a ChassisSpeeds has the same shape as a geometry.Twist, they are
// not the same thing: a Twist is a pose delta, a ChassisSpeeds is a rate.
type ChassisSpeeds struct {
	Dx     float64
	Dy     float64
	Dtheta float64
}

// FieldSpeeds is a velocity command expressed in the fixed field frame. Vx
// and Vy follow the field's axes regardless of which way the robot is facing;
// Omega is counter-clockwise positive. Keeping field-relative commands in
// their own type means the only way to feed one to a drivetrain is through
// RobotRelative, so the two frames cannot be mixed by accident.
type FieldSpeeds struct {
	Vx    float64
	Vy    float64
	Omega float64
}

// FromFieldRelativeSpeeds converts a field-relative velocity command into the
// robot's body frame. vx and vy are the field-frame linear components, vtheta
// the angular rate, and robotAngle the robot's current heading as measured by
// a gyroscope, counter-clockwise positive.
//
// The linear components are rotated by the inverse of the heading; the
// angular rate is the same in both frames. Non-finite inputs propagate
// through the arithmetic unchecked.
func FromFieldRelativeSpeeds(vx, vy, vtheta float64, robotAngle geometry.Rotation) ChassisSpeeds {
	cos := robotAngle.Cos()
	sin := robotAngle.Sin()
	return ChassisSpeeds{
		Dx:     vx*cos + vy*sin,
		Dy:     -vx*sin + vy*cos,
		Dtheta: vtheta,
	}
}

// RobotRelative expresses f in the body frame of a robot at the given
// heading.
func (f FieldSpeeds) RobotRelative(heading geometry.Rotation) ChassisSpeeds {
	return FromFieldRelativeSpeeds(f.Vx, f.Vy, f.Omega, heading)
}
