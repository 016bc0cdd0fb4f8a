package geometry

// Twist is a change in pose over one timestep, expressed in the frame of the
// starting pose: Dx forward, Dy left, Dtheta counter-clockwise. Although it
// has the same shape as a chassis velocity, a Twist is a pose delta, not a
// rate.
type Twist struct {
	Dx     float64
	Dy     float64
	Dtheta float64
}
