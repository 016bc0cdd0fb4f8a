package kinematics

import "github.com/openfield-robotics/driveline/geometry"

// SwerveModuleState is the commanded state of a single swerve module: the
// signed linear speed of its wheel and the steering angle of the module. The
// zero value is a stopped wheel at the zero rotation.
//
// Nothing is clamped or normalized here. Speed may be negative (wheel driven
// backwards along the module heading) and Angle is whatever the producing
// solver emitted; the actuator layer owns any range handling.
type SwerveModuleState struct {
	Speed float64
	Angle geometry.Rotation
}
