package kinematics

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/openfield-robotics/driveline/geometry"
)

// Swerve converts between a chassis velocity and the states of an arbitrary
// number of swerve modules. Module locations are given relative to the
// physical center of the robot, X forward and Y left; the order in which they
// are passed at construction is the order of all returned and accepted module
// state slices.
//
// Inverse kinematics supports a variable center of rotation. Forward
// kinematics is overdetermined (two equations per module, three unknowns) and
// solved least-squares via the pseudoinverse of the matrix built around the
// physical center.
type Swerve struct {
	modules []geometry.Translation
	states  []SwerveModuleState

	inverse *mat.Dense
	forward *mat.Dense
	prevCoR geometry.Translation
}

// NewSwerve returns swerve drive kinematics for the given module locations.
// At least two modules are required; fewer cannot constrain a chassis
// velocity.
func NewSwerve(modules ...geometry.Translation) (*Swerve, error) {
	if len(modules) < 2 {
		return nil, errors.Errorf("swerve drive requires at least 2 modules, got %d", len(modules))
	}

	s := &Swerve{
		modules: append([]geometry.Translation{}, modules...),
		states:  make([]SwerveModuleState, len(modules)),
		inverse: mat.NewDense(2*len(modules), 3, nil),
	}
	s.setInverseKinematics(geometry.Translation{})

	forward, err := pseudoInverse(s.inverse)
	if err != nil {
		return nil, err
	}
	s.forward = forward
	return s, nil
}

// ToModuleStates performs inverse kinematics about the center of the robot,
// returning one state per module in construction order. Speeds are not
// capped; use DesaturateWheelSpeeds before handing them to actuators.
func (s *Swerve) ToModuleStates(speeds ChassisSpeeds) []SwerveModuleState {
	return s.ToModuleStatesAbout(speeds, geometry.Translation{})
}

// ToModuleStatesAbout performs inverse kinematics about an arbitrary center
// of rotation given relative to the center of the robot.
//
// When the chassis is commanded to hold still there is no defined steering
// direction, so each module keeps the angle it was last commanded to rather
// than snapping to zero.
func (s *Swerve) ToModuleStatesAbout(speeds ChassisSpeeds, centerOfRotation geometry.Translation) []SwerveModuleState {
	if centerOfRotation != s.prevCoR {
		s.setInverseKinematics(centerOfRotation)
		s.prevCoR = centerOfRotation
	}

	chassis := mat.NewVecDense(3, []float64{speeds.Dx, speeds.Dy, speeds.Dtheta})
	var wheels mat.VecDense
	wheels.MulVec(s.inverse, chassis)

	states := make([]SwerveModuleState, len(s.modules))
	for i := range s.modules {
		vx := wheels.AtVec(2 * i)
		vy := wheels.AtVec(2*i + 1)
		speed := math.Hypot(vx, vy)
		if speed < 1e-9 {
			states[i] = SwerveModuleState{Speed: 0, Angle: s.states[i].Angle}
			continue
		}
		states[i] = SwerveModuleState{
			Speed: speed,
			Angle: geometry.NewRotationFromComponents(vx, vy),
		}
	}
	copy(s.states, states)
	return states
}

// ToChassisSpeeds performs forward kinematics from measured module states,
// typically for odometry. The number of states must match the number of
// modules the drivetrain was constructed with.
func (s *Swerve) ToChassisSpeeds(states ...SwerveModuleState) (ChassisSpeeds, error) {
	if len(states) != len(s.modules) {
		return ChassisSpeeds{}, errors.Errorf(
			"expected %d module states, got %d", len(s.modules), len(states))
	}

	wheels := mat.NewVecDense(2*len(states), nil)
	for i, state := range states {
		wheels.SetVec(2*i, state.Speed*state.Angle.Cos())
		wheels.SetVec(2*i+1, state.Speed*state.Angle.Sin())
	}

	var chassis mat.VecDense
	chassis.MulVec(s.forward, wheels)

	return ChassisSpeeds{
		Dx:     chassis.AtVec(0),
		Dy:     chassis.AtVec(1),
		Dtheta: chassis.AtVec(2),
	}, nil
}

// Each module contributes two rows: its velocity is the chassis translation
// plus the tangential velocity omega cross r.
func (s *Swerve) setInverseKinematics(centerOfRotation geometry.Translation) {
	for i, module := range s.modules {
		r := module.Sub(centerOfRotation)
		s.inverse.SetRow(2*i, []float64{1, 0, -r.Y})
		s.inverse.SetRow(2*i+1, []float64{0, 1, r.X})
	}
}

// DesaturateWheelSpeeds scales all module speeds down proportionally if any
// exceeds the given attainable maximum, preserving each module's angle and
// the shape of the commanded motion. The slice is modified in place.
func DesaturateWheelSpeeds(states []SwerveModuleState, maxSpeed float64) {
	realMax := 0.0
	for _, state := range states {
		realMax = math.Max(realMax, math.Abs(state.Speed))
	}
	if realMax <= maxSpeed {
		return
	}
	for i := range states {
		states[i].Speed = states[i].Speed / realMax * maxSpeed
	}
}
