// Package main contains a command to simulate a swerve chassis following a
// field-relative velocity command, with odometry tracking the resulting pose.
package main

import (
	"context"
	"strconv"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"go.viam.com/utils"

	"github.com/openfield-robotics/driveline/geometry"
	"github.com/openfield-robotics/driveline/kinematics"
	"github.com/openfield-robotics/driveline/odometry"
)

var logger = golog.NewDevelopmentLogger("drivesim")

const (
	tickPeriod = 20 * time.Millisecond
	logEvery   = 25 // ticks between pose logs
)

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	Vx       scalarFlag `flag:"vx,default=1,usage=field-relative x velocity (m/s)"`
	Vy       scalarFlag `flag:"vy,default=0,usage=field-relative y velocity (m/s)"`
	Omega    scalarFlag `flag:"omega,default=0.5,usage=angular velocity (rad/s)"`
	Seconds  scalarFlag `flag:"seconds,default=5,usage=how long to run the simulation (s)"`
	MaxSpeed scalarFlag `flag:"max-speed,default=3,usage=attainable wheel speed (m/s)"`
	HalfBase scalarFlag `flag:"half-base,default=0.3,usage=half the module-to-module distance (m)"`
}

type scalarFlag float64

func (sf *scalarFlag) String() string {
	return strconv.FormatFloat(float64(*sf), 'f', -1, 64)
}

func (sf *scalarFlag) Set(val string) error {
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return err
	}
	*sf = scalarFlag(parsed)
	return nil
}

func (sf *scalarFlag) Get() interface{} {
	return float64(*sf)
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	return runSim(ctx, argsParsed, logger)
}

func runSim(ctx context.Context, args Arguments, logger golog.Logger) error {
	d := float64(args.HalfBase)
	swerve, err := kinematics.NewSwerve(
		geometry.NewTranslation(d, d),   // front left
		geometry.NewTranslation(d, -d),  // front right
		geometry.NewTranslation(-d, d),  // rear left
		geometry.NewTranslation(-d, -d), // rear right
	)
	if err != nil {
		return err
	}

	gyro := geometry.Rotation{}
	odom := odometry.NewSwerve(swerve, gyro, geometry.Pose{}, clock.New())
	command := kinematics.FieldSpeeds{
		Vx:    float64(args.Vx),
		Vy:    float64(args.Vy),
		Omega: float64(args.Omega),
	}

	logger.Infow("starting simulation",
		"vx", command.Vx, "vy", command.Vy, "omega", command.Omega, "seconds", float64(args.Seconds))

	ticker := time.NewTicker(tickPeriod)
	defer ticker.Stop()

	dt := tickPeriod.Seconds()
	totalTicks := int(float64(args.Seconds) / dt)
	for tick := 0; tick < totalTicks; tick++ {
		if !utils.SelectContextOrWaitChan(ctx, ticker.C) {
			return ctx.Err()
		}

		// the gyro on a real robot measures this; here the chassis tracks the
		// command perfectly
		gyro = gyro.Add(geometry.NewRotation(command.Omega * dt))

		states := swerve.ToModuleStates(command.RobotRelative(gyro))
		kinematics.DesaturateWheelSpeeds(states, float64(args.MaxSpeed))

		pose, err := odom.Update(gyro, states...)
		if err != nil {
			return err
		}
		if tick%logEvery == 0 {
			logger.Infow("pose",
				"t", float64(tick)*dt,
				"x", pose.Translation.X,
				"y", pose.Translation.Y,
				"heading_deg", pose.Rotation.Degrees())
		}
	}

	logger.Infow("simulation complete", "pose", odom.Pose())
	return nil
}
