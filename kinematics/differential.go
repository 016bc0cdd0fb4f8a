package kinematics

import "github.com/pkg/errors"

// Differential converts between a chassis velocity (Dx and Dtheta) and left
// and right wheel velocities for a differential drive. Inverse kinematics
// turns a desired chassis speed into wheel velocities; forward kinematics
// turns measured wheel velocities back into a chassis speed, which is what
// odometry consumes.
type Differential struct {
	driveRadius float64
}

// DifferentialWheelSpeeds holds the left and right wheel velocities of a
// differential drive.
type DifferentialWheelSpeeds struct {
	Left  float64
	Right float64
}

// NewDifferential returns differential drive kinematics for a drivetrain of
// the given radius. Theoretically the radius is half the distance between the
// left and right wheels, but the empirical value may be larger than the
// measured one due to wheel scrub.
func NewDifferential(driveRadius float64) (*Differential, error) {
	if driveRadius <= 0 {
		return nil, errors.Errorf("drive radius must be positive, got %v", driveRadius)
	}
	return &Differential{driveRadius: driveRadius}, nil
}

// ToWheelSpeeds performs inverse kinematics. The Dy component of the chassis
// speed is ignored; a differential drive cannot move sideways.
func (d *Differential) ToWheelSpeeds(speeds ChassisSpeeds) DifferentialWheelSpeeds {
	return DifferentialWheelSpeeds{
		Left:  speeds.Dx - d.driveRadius*speeds.Dtheta,
		Right: speeds.Dx + d.driveRadius*speeds.Dtheta,
	}
}

// ToChassisSpeeds performs forward kinematics.
func (d *Differential) ToChassisSpeeds(wheelSpeeds DifferentialWheelSpeeds) ChassisSpeeds {
	return ChassisSpeeds{
		Dx:     (wheelSpeeds.Left + wheelSpeeds.Right) / 2,
		Dy:     0,
		Dtheta: (wheelSpeeds.Right - wheelSpeeds.Left) / (2 * d.driveRadius),
	}
}
