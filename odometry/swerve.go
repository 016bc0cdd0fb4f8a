package odometry

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/openfield-robotics/driveline/geometry"
	"github.com/openfield-robotics/driveline/kinematics"
)

// Swerve tracks the pose of a swerve drive robot. Module states must be
// passed to Update in the same order the kinematics object was constructed
// with. Not safe for concurrent use.
type Swerve struct {
	kin   *kinematics.Swerve
	clock clock.Clock

	pose       geometry.Pose
	prevTime   time.Time
	prevAngle  geometry.Rotation
	gyroOffset geometry.Rotation
}

// NewSwerve returns an odometry tracker starting at the given pose.
func NewSwerve(
	kin *kinematics.Swerve,
	gyroAngle geometry.Rotation,
	initial geometry.Pose,
	c clock.Clock,
) *Swerve {
	return &Swerve{
		kin:        kin,
		clock:      c,
		pose:       initial,
		prevTime:   c.Now(),
		prevAngle:  initial.Rotation,
		gyroOffset: initial.Rotation.Sub(gyroAngle),
	}
}

// Pose returns the current pose estimate.
func (o *Swerve) Pose() geometry.Pose {
	return o.pose
}

// ResetPose discards the current estimate and restarts from the given pose.
func (o *Swerve) ResetPose(pose geometry.Pose, gyroAngle geometry.Rotation) {
	o.pose = pose
	o.prevTime = o.clock.Now()
	o.prevAngle = pose.Rotation
	o.gyroOffset = pose.Rotation.Sub(gyroAngle)
}

// Update advances the pose estimate using the current gyro angle and measured
// module states, and returns the new pose. It errors only if the number of
// states does not match the drivetrain's module count.
func (o *Swerve) Update(gyroAngle geometry.Rotation, states ...kinematics.SwerveModuleState) (geometry.Pose, error) {
	now := o.clock.Now()
	dt := now.Sub(o.prevTime).Seconds()

	speeds, err := o.kin.ToChassisSpeeds(states...)
	if err != nil {
		return o.pose, err
	}
	o.prevTime = now

	angle := gyroAngle.Add(o.gyroOffset)
	o.pose = integrate(o.pose, speeds, angle, o.prevAngle, dt)
	o.prevAngle = angle
	return o.pose, nil
}
