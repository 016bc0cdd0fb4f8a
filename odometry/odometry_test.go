package odometry

import (
	"math"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"

	"github.com/openfield-robotics/driveline/geometry"
	"github.com/openfield-robotics/driveline/kinematics"
)

const step = 20 * time.Millisecond

func TestDifferentialStraightLine(t *testing.T) {
	kin, err := kinematics.NewDifferential(0.5)
	test.That(t, err, test.ShouldBeNil)

	mock := clock.NewMock()
	odom := NewDifferential(kin, geometry.Rotation{}, geometry.Pose{}, mock)

	// both wheels at 1 m/s for one second
	for i := 0; i < 50; i++ {
		mock.Add(step)
		odom.Update(geometry.Rotation{}, kinematics.DifferentialWheelSpeeds{Left: 1, Right: 1})
	}

	pose := odom.Pose()
	test.That(t, pose.Translation.X, test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, pose.Translation.Y, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, pose.Rotation.Radians(), test.ShouldAlmostEqual, 0)
}

func TestDifferentialConstantArc(t *testing.T) {
	kin, err := kinematics.NewDifferential(0.5)
	test.That(t, err, test.ShouldBeNil)

	mock := clock.NewMock()
	odom := NewDifferential(kin, geometry.Rotation{}, geometry.Pose{}, mock)

	// left 0, right 2 -> dx = 1 m/s, omega = 2 rad/s
	const v, omega = 1.0, 2.0
	elapsed := 0.0
	for i := 0; i < 50; i++ {
		mock.Add(step)
		elapsed += step.Seconds()
		gyro := geometry.NewRotation(omega * elapsed)
		odom.Update(gyro, kinematics.DifferentialWheelSpeeds{Left: 0, Right: 2})
	}

	// closed form for a unicycle on a constant arc
	wantX := v / omega * math.Sin(omega*elapsed)
	wantY := v / omega * (1 - math.Cos(omega*elapsed))

	pose := odom.Pose()
	test.That(t, pose.Translation.X, test.ShouldAlmostEqual, wantX, 1e-9)
	test.That(t, pose.Translation.Y, test.ShouldAlmostEqual, wantY, 1e-9)
	test.That(t, pose.Rotation.Radians(), test.ShouldAlmostEqual, omega*elapsed, 1e-9)
}

func TestDifferentialGyroOffset(t *testing.T) {
	kin, err := kinematics.NewDifferential(0.5)
	test.That(t, err, test.ShouldBeNil)

	// the gyro reads 90 degrees but the robot starts facing downfield
	mock := clock.NewMock()
	odom := NewDifferential(kin, geometry.NewRotationFromDegrees(90), geometry.Pose{}, mock)

	mock.Add(time.Second)
	pose := odom.Update(geometry.NewRotationFromDegrees(90), kinematics.DifferentialWheelSpeeds{Left: 1, Right: 1})
	test.That(t, pose.Translation.X, test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, pose.Rotation.Radians(), test.ShouldAlmostEqual, 0, 1e-9)
}

func TestDifferentialResetPose(t *testing.T) {
	kin, err := kinematics.NewDifferential(0.5)
	test.That(t, err, test.ShouldBeNil)

	mock := clock.NewMock()
	odom := NewDifferential(kin, geometry.Rotation{}, geometry.Pose{}, mock)

	mock.Add(time.Second)
	odom.Update(geometry.Rotation{}, kinematics.DifferentialWheelSpeeds{Left: 2, Right: 2})

	start := geometry.NewPose(5, 5, geometry.NewRotationFromDegrees(45))
	odom.ResetPose(start, geometry.Rotation{})
	test.That(t, geometry.PoseAlmostEqual(odom.Pose(), start, 1e-9), test.ShouldBeTrue)
}

func TestSwerveStrafe(t *testing.T) {
	kin, err := kinematics.NewSwerve(
		geometry.NewTranslation(0.3, 0.3),
		geometry.NewTranslation(0.3, -0.3),
		geometry.NewTranslation(-0.3, 0.3),
		geometry.NewTranslation(-0.3, -0.3),
	)
	test.That(t, err, test.ShouldBeNil)

	mock := clock.NewMock()
	odom := NewSwerve(kin, geometry.Rotation{}, geometry.Pose{}, mock)

	states := kin.ToModuleStates(kinematics.ChassisSpeeds{Dy: 1})
	for i := 0; i < 50; i++ {
		mock.Add(step)
		_, err := odom.Update(geometry.Rotation{}, states...)
		test.That(t, err, test.ShouldBeNil)
	}

	pose := odom.Pose()
	test.That(t, pose.Translation.X, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, pose.Translation.Y, test.ShouldAlmostEqual, 1, 1e-9)
}

func TestSwerveWrongModuleCount(t *testing.T) {
	kin, err := kinematics.NewSwerve(
		geometry.NewTranslation(0.3, 0.3),
		geometry.NewTranslation(0.3, -0.3),
		geometry.NewTranslation(-0.3, 0.3),
		geometry.NewTranslation(-0.3, -0.3),
	)
	test.That(t, err, test.ShouldBeNil)

	mock := clock.NewMock()
	odom := NewSwerve(kin, geometry.Rotation{}, geometry.Pose{}, mock)

	mock.Add(step)
	_, err = odom.Update(geometry.Rotation{}, kinematics.SwerveModuleState{})
	test.That(t, err, test.ShouldNotBeNil)

	// a failed update must not consume the elapsed time
	states := kin.ToModuleStates(kinematics.ChassisSpeeds{Dx: 1})
	pose, err := odom.Update(geometry.Rotation{}, states...)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Translation.X, test.ShouldAlmostEqual, step.Seconds(), 1e-9)
}
