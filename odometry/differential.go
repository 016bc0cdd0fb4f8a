// Package odometry tracks a robot's pose on the field by integrating wheel
// speeds and a gyro heading over time. It gives the robot a position estimate
// without any external sensing; the estimate drifts as wheels slip, so
// anything needing long-term accuracy should fuse it with an absolute source.
package odometry

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/openfield-robotics/driveline/geometry"
	"github.com/openfield-robotics/driveline/kinematics"
)

// Differential tracks the pose of a differential drive robot.
//
// The gyro angle is authoritative for heading: wheel speeds determine how far
// the robot traveled, the gyro determines which way it was pointing while it
// did. Not safe for concurrent use.
type Differential struct {
	kin   *kinematics.Differential
	clock clock.Clock

	pose       geometry.Pose
	prevTime   time.Time
	prevAngle  geometry.Rotation
	gyroOffset geometry.Rotation
}

// NewDifferential returns an odometry tracker starting at the given pose.
// gyroAngle is the gyro's current reading; the tracker keeps its own offset
// so the gyro never needs to be zeroed to match the field. The clock is used
// to measure time between updates; pass clock.New() outside of tests.
func NewDifferential(
	kin *kinematics.Differential,
	gyroAngle geometry.Rotation,
	initial geometry.Pose,
	c clock.Clock,
) *Differential {
	return &Differential{
		kin:        kin,
		clock:      c,
		pose:       initial,
		prevTime:   c.Now(),
		prevAngle:  initial.Rotation,
		gyroOffset: initial.Rotation.Sub(gyroAngle),
	}
}

// Pose returns the current pose estimate.
func (o *Differential) Pose() geometry.Pose {
	return o.pose
}

// ResetPose discards the current estimate and restarts from the given pose.
func (o *Differential) ResetPose(pose geometry.Pose, gyroAngle geometry.Rotation) {
	o.pose = pose
	o.prevTime = o.clock.Now()
	o.prevAngle = pose.Rotation
	o.gyroOffset = pose.Rotation.Sub(gyroAngle)
}

// Update advances the pose estimate using the current gyro angle and wheel
// speeds, and returns the new pose. It should be called once per control
// cycle with sensor samples taken at the same instant.
func (o *Differential) Update(gyroAngle geometry.Rotation, wheelSpeeds kinematics.DifferentialWheelSpeeds) geometry.Pose {
	now := o.clock.Now()
	dt := now.Sub(o.prevTime).Seconds()
	o.prevTime = now

	angle := gyroAngle.Add(o.gyroOffset)
	speeds := o.kin.ToChassisSpeeds(wheelSpeeds)

	o.pose = integrate(o.pose, speeds, angle, o.prevAngle, dt)
	o.prevAngle = angle
	return o.pose
}

// integrate advances pose by one step of the constant-twist pose exponential.
// The twist's rotation comes from the gyro delta rather than the kinematic
// Dtheta so heading never accumulates wheel-slip error.
func integrate(
	pose geometry.Pose,
	speeds kinematics.ChassisSpeeds,
	angle, prevAngle geometry.Rotation,
	dt float64,
) geometry.Pose {
	next := pose.Exp(geometry.Twist{
		Dx:     speeds.Dx * dt,
		Dy:     speeds.Dy * dt,
		Dtheta: angle.Sub(prevAngle).Radians(),
	})
	return geometry.Pose{Translation: next.Translation, Rotation: angle}
}
