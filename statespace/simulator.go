package statespace

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Simulator steps a LinearSystem forward in time, tracking the true state of
// the plant and producing measurements, optionally corrupted with white
// noise. Each control cycle a caller sets the input, calls Update, and reads
// the simulated measurement back out as if it came from a sensor.
type Simulator struct {
	plant *LinearSystem

	x *mat.VecDense
	u *mat.VecDense
	y *mat.VecDense

	noise    []distuv.Normal
	addNoise bool
}

// NewSimulator returns a simulator for the given plant starting at the zero
// state. measurementStdDevs gives the standard deviation of the noise added
// to each measurement row; pass nil to simulate perfect sensors.
func NewSimulator(plant *LinearSystem, measurementStdDevs []float64) (*Simulator, error) {
	if measurementStdDevs != nil && len(measurementStdDevs) != plant.Outputs() {
		return nil, errors.Errorf(
			"need one standard deviation per output (%d), got %d",
			plant.Outputs(), len(measurementStdDevs))
	}

	sim := &Simulator{
		plant: plant,
		x:     mat.NewVecDense(plant.States(), nil),
		u:     mat.NewVecDense(plant.Inputs(), nil),
		y:     mat.NewVecDense(plant.Outputs(), nil),
	}
	if measurementStdDevs != nil {
		sim.addNoise = true
		sim.noise = make([]distuv.Normal, len(measurementStdDevs))
		for i, sd := range measurementStdDevs {
			sim.noise[i] = distuv.Normal{Mu: 0, Sigma: sd}
		}
	}
	return sim, nil
}

// SetAddNoise turns measurement noise on or off. Turning it on requires the
// simulator to have been constructed with standard deviations.
func (s *Simulator) SetAddNoise(addNoise bool) error {
	if addNoise && s.noise == nil {
		return errors.New("no measurement standard deviations were provided")
	}
	s.addNoise = addNoise
	return nil
}

// SetInput sets the input vector held until the next SetInput.
func (s *Simulator) SetInput(values ...float64) error {
	if len(values) != s.plant.Inputs() {
		return errors.Errorf("input must have %d entries, got %d", s.plant.Inputs(), len(values))
	}
	for i, v := range values {
		s.u.SetVec(i, v)
	}
	return nil
}

// Update advances the true state by dt seconds under the current input and
// recomputes the measurement.
func (s *Simulator) Update(dt float64) error {
	x, err := s.plant.CalculateX(s.x, s.u, dt)
	if err != nil {
		return err
	}
	s.x = x

	y, err := s.plant.CalculateY(s.x, s.u)
	if err != nil {
		return err
	}
	s.y = y

	if s.addNoise {
		for i, dist := range s.noise {
			if dist.Sigma > 0 {
				s.y.SetVec(i, s.y.AtVec(i)+dist.Rand())
			}
		}
	}
	return nil
}

// Output returns a copy of the current measurement vector.
func (s *Simulator) Output() []float64 {
	out := make([]float64, s.y.Len())
	for i := range out {
		out[i] = s.y.AtVec(i)
	}
	return out
}

// OutputAt returns one row of the current measurement vector.
func (s *Simulator) OutputAt(row int) float64 {
	return s.y.AtVec(row)
}

// State returns a copy of the true state vector. Real sensors never see this;
// it exists so tests can compare the measurement path against ground truth.
func (s *Simulator) State() []float64 {
	out := make([]float64, s.x.Len())
	for i := range out {
		out[i] = s.x.AtVec(i)
	}
	return out
}
