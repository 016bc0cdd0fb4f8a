package kinematics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/openfield-robotics/driveline/geometry"
)

// Mecanum converts between a chassis velocity and the four wheel velocities
// of a mecanum drive. Wheel locations are given relative to the physical
// center of the robot, X forward and Y left.
//
// Inverse kinematics supports a variable center of rotation: placing it at a
// corner of the robot and commanding a pure Dtheta spins the robot around
// that corner. Forward kinematics is overdetermined (four equations, three
// unknowns) and solved least-squares via the pseudoinverse of the matrix
// built around the physical center.
type Mecanum struct {
	frontLeft  geometry.Translation
	frontRight geometry.Translation
	rearLeft   geometry.Translation
	rearRight  geometry.Translation

	inverse *mat.Dense
	forward *mat.Dense
	prevCoR geometry.Translation
}

// MecanumWheelSpeeds holds the four wheel velocities of a mecanum drive.
type MecanumWheelSpeeds struct {
	FrontLeft  float64
	FrontRight float64
	RearLeft   float64
	RearRight  float64
}

// NewMecanum returns mecanum drive kinematics for the given wheel locations.
func NewMecanum(frontLeft, frontRight, rearLeft, rearRight geometry.Translation) (*Mecanum, error) {
	m := &Mecanum{
		frontLeft:  frontLeft,
		frontRight: frontRight,
		rearLeft:   rearLeft,
		rearRight:  rearRight,
		inverse:    mat.NewDense(4, 3, nil),
	}
	m.setInverseKinematics(frontLeft, frontRight, rearLeft, rearRight)

	forward, err := pseudoInverse(m.inverse)
	if err != nil {
		return nil, err
	}
	m.forward = forward
	return m, nil
}

// ToWheelSpeeds performs inverse kinematics about the center of the robot.
// The returned speeds are not normalized; a large enough command can exceed
// what the drivetrain can actually do. Use MecanumWheelSpeeds.Desaturate to
// rein them in.
func (m *Mecanum) ToWheelSpeeds(speeds ChassisSpeeds) MecanumWheelSpeeds {
	return m.ToWheelSpeedsAbout(speeds, geometry.Translation{})
}

// ToWheelSpeedsAbout performs inverse kinematics about an arbitrary center of
// rotation given relative to the center of the robot.
func (m *Mecanum) ToWheelSpeedsAbout(speeds ChassisSpeeds, centerOfRotation geometry.Translation) MecanumWheelSpeeds {
	if centerOfRotation != m.prevCoR {
		m.setInverseKinematics(
			m.frontLeft.Sub(centerOfRotation),
			m.frontRight.Sub(centerOfRotation),
			m.rearLeft.Sub(centerOfRotation),
			m.rearRight.Sub(centerOfRotation),
		)
		m.prevCoR = centerOfRotation
	}

	chassis := mat.NewVecDense(3, []float64{speeds.Dx, speeds.Dy, speeds.Dtheta})
	var wheels mat.VecDense
	wheels.MulVec(m.inverse, chassis)

	return MecanumWheelSpeeds{
		FrontLeft:  wheels.AtVec(0),
		FrontRight: wheels.AtVec(1),
		RearLeft:   wheels.AtVec(2),
		RearRight:  wheels.AtVec(3),
	}
}

// ToChassisSpeeds performs forward kinematics from measured wheel speeds,
// typically for odometry.
func (m *Mecanum) ToChassisSpeeds(wheelSpeeds MecanumWheelSpeeds) ChassisSpeeds {
	wheels := mat.NewVecDense(4, []float64{
		wheelSpeeds.FrontLeft,
		wheelSpeeds.FrontRight,
		wheelSpeeds.RearLeft,
		wheelSpeeds.RearRight,
	})
	var chassis mat.VecDense
	chassis.MulVec(m.forward, wheels)

	return ChassisSpeeds{
		Dx:     chassis.AtVec(0),
		Dy:     chassis.AtVec(1),
		Dtheta: chassis.AtVec(2),
	}
}

// The mecanum roller axes sit at 45 degrees, front-left and rear-right
// mirrored from front-right and rear-left, hence the sign pattern and the
// 1/sqrt(2) factor.
func (m *Mecanum) setInverseKinematics(fl, fr, rl, rr geometry.Translation) {
	m.inverse.SetRow(0, []float64{1, -1, -(fl.X + fl.Y)})
	m.inverse.SetRow(1, []float64{1, 1, fr.X - fr.Y})
	m.inverse.SetRow(2, []float64{1, 1, rl.X - rl.Y})
	m.inverse.SetRow(3, []float64{1, -1, -(rr.X + rr.Y)})
	m.inverse.Scale(1/math.Sqrt2, m.inverse)
}

// Desaturate scales all four wheel speeds down proportionally if any exceeds
// the given attainable maximum, preserving the commanded motion's shape.
func (ws MecanumWheelSpeeds) Desaturate(maxSpeed float64) MecanumWheelSpeeds {
	realMax := math.Max(
		math.Max(math.Abs(ws.FrontLeft), math.Abs(ws.FrontRight)),
		math.Max(math.Abs(ws.RearLeft), math.Abs(ws.RearRight)),
	)
	if realMax <= maxSpeed {
		return ws
	}
	scale := maxSpeed / realMax
	return MecanumWheelSpeeds{
		FrontLeft:  ws.FrontLeft * scale,
		FrontRight: ws.FrontRight * scale,
		RearLeft:   ws.RearLeft * scale,
		RearRight:  ws.RearRight * scale,
	}
}
