package kinematics

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/openfield-robotics/driveline/geometry"
)

func testMecanum(t *testing.T) *Mecanum {
	t.Helper()
	kin, err := NewMecanum(
		geometry.NewTranslation(1, 1),
		geometry.NewTranslation(1, -1),
		geometry.NewTranslation(-1, 1),
		geometry.NewTranslation(-1, -1),
	)
	test.That(t, err, test.ShouldBeNil)
	return kin
}

func TestMecanumInverseKinematics(t *testing.T) {
	kin := testMecanum(t)
	s := 1 / math.Sqrt2

	for _, tc := range []struct {
		name   string
		speeds ChassisSpeeds
		want   MecanumWheelSpeeds
	}{
		{"straight", ChassisSpeeds{Dx: 1}, MecanumWheelSpeeds{s, s, s, s}},
		{"strafe left", ChassisSpeeds{Dy: 1}, MecanumWheelSpeeds{-s, s, s, -s}},
		{"spin", ChassisSpeeds{Dtheta: 1}, MecanumWheelSpeeds{-math.Sqrt2, math.Sqrt2, -math.Sqrt2, math.Sqrt2}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := kin.ToWheelSpeeds(tc.speeds)
			test.That(t, got.FrontLeft, test.ShouldAlmostEqual, tc.want.FrontLeft, 1e-9)
			test.That(t, got.FrontRight, test.ShouldAlmostEqual, tc.want.FrontRight, 1e-9)
			test.That(t, got.RearLeft, test.ShouldAlmostEqual, tc.want.RearLeft, 1e-9)
			test.That(t, got.RearRight, test.ShouldAlmostEqual, tc.want.RearRight, 1e-9)
		})
	}
}

func TestMecanumRoundTrip(t *testing.T) {
	kin := testMecanum(t)

	for _, tc := range []struct {
		name   string
		speeds ChassisSpeeds
	}{
		{"straight", ChassisSpeeds{Dx: 2}},
		{"strafe", ChassisSpeeds{Dy: -1.5}},
		{"spin", ChassisSpeeds{Dtheta: 0.8}},
		{"combined", ChassisSpeeds{Dx: 1, Dy: 0.5, Dtheta: -0.4}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := kin.ToChassisSpeeds(kin.ToWheelSpeeds(tc.speeds))
			test.That(t, got.Dx, test.ShouldAlmostEqual, tc.speeds.Dx, 1e-9)
			test.That(t, got.Dy, test.ShouldAlmostEqual, tc.speeds.Dy, 1e-9)
			test.That(t, got.Dtheta, test.ShouldAlmostEqual, tc.speeds.Dtheta, 1e-9)
		})
	}
}

func TestMecanumOffCenterRotation(t *testing.T) {
	kin := testMecanum(t)

	// spinning about the front-left wheel leaves that wheel stationary
	got := kin.ToWheelSpeedsAbout(ChassisSpeeds{Dtheta: 1}, geometry.NewTranslation(1, 1))
	test.That(t, got.FrontLeft, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, got.RearRight, test.ShouldNotAlmostEqual, 0, 1e-9)

	// switching back to the center restores the centered matrix
	center := kin.ToWheelSpeeds(ChassisSpeeds{Dx: 1})
	test.That(t, center.FrontLeft, test.ShouldAlmostEqual, 1/math.Sqrt2, 1e-9)
}

func TestMecanumDesaturate(t *testing.T) {
	ws := MecanumWheelSpeeds{FrontLeft: 4, FrontRight: -2, RearLeft: 1, RearRight: 8}

	got := ws.Desaturate(2)
	test.That(t, got.RearRight, test.ShouldAlmostEqual, 2)
	test.That(t, got.FrontLeft, test.ShouldAlmostEqual, 1)
	test.That(t, got.FrontRight, test.ShouldAlmostEqual, -0.5)
	test.That(t, got.RearLeft, test.ShouldAlmostEqual, 0.25)

	// already attainable speeds come back untouched
	test.That(t, ws.Desaturate(10), test.ShouldResemble, ws)
}
