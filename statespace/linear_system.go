// Package statespace models continuous-time linear systems x' = Ax + Bu,
// y = Cx + Du and simulates them under a zero-order hold. It is used to stand
// in for real drivetrain hardware when exercising control code off-robot.
package statespace

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
)

// LinearSystem is a continuous-time linear system. It is immutable after
// construction and safe to share.
type LinearSystem struct {
	a, b, c, d *mat.Dense

	states  int
	inputs  int
	outputs int
}

// NewLinearSystem returns a linear system with the given state, input,
// output, and feedthrough matrices. A must be square, and the remaining
// dimensions must agree with it.
func NewLinearSystem(a, b, c, d *mat.Dense) (*LinearSystem, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	cr, cc := c.Dims()
	dr, dc := d.Dims()

	var err error
	if ar != ac {
		err = multierr.Append(err, errors.Errorf("A must be square, got %dx%d", ar, ac))
	}
	if br != ar {
		err = multierr.Append(err, errors.Errorf("B must have %d rows, got %d", ar, br))
	}
	if cc != ac {
		err = multierr.Append(err, errors.Errorf("C must have %d columns, got %d", ac, cc))
	}
	if dr != cr || dc != bc {
		err = multierr.Append(err, errors.Errorf("D must be %dx%d, got %dx%d", cr, bc, dr, dc))
	}
	if err != nil {
		return nil, err
	}

	return &LinearSystem{
		a:       mat.DenseCopyOf(a),
		b:       mat.DenseCopyOf(b),
		c:       mat.DenseCopyOf(c),
		d:       mat.DenseCopyOf(d),
		states:  ar,
		inputs:  bc,
		outputs: cr,
	}, nil
}

// States returns the number of states.
func (s *LinearSystem) States() int { return s.states }

// Inputs returns the number of inputs.
func (s *LinearSystem) Inputs() int { return s.inputs }

// Outputs returns the number of outputs.
func (s *LinearSystem) Outputs() int { return s.outputs }

// CalculateX returns the state dt seconds after x when the input is held
// constant at u, using an exact zero-order-hold discretization. Both A and B
// are discretized together by exponentiating the stacked matrix
// [[A, B], [0, 0]] * dt.
func (s *LinearSystem) CalculateX(x, u *mat.VecDense, dt float64) (*mat.VecDense, error) {
	if x.Len() != s.states {
		return nil, errors.Errorf("state vector must have %d entries, got %d", s.states, x.Len())
	}
	if u.Len() != s.inputs {
		return nil, errors.Errorf("input vector must have %d entries, got %d", s.inputs, u.Len())
	}

	n := s.states + s.inputs
	stacked := mat.NewDense(n, n, nil)
	for i := 0; i < s.states; i++ {
		for j := 0; j < s.states; j++ {
			stacked.Set(i, j, s.a.At(i, j)*dt)
		}
		for j := 0; j < s.inputs; j++ {
			stacked.Set(i, s.states+j, s.b.At(i, j)*dt)
		}
	}

	var discrete mat.Dense
	discrete.Exp(stacked)
	ad := discrete.Slice(0, s.states, 0, s.states)
	bd := discrete.Slice(0, s.states, s.states, n)

	var axTerm, buTerm mat.VecDense
	axTerm.MulVec(ad, x)
	buTerm.MulVec(bd, u)

	next := mat.NewVecDense(s.states, nil)
	next.AddVec(&axTerm, &buTerm)
	return next, nil
}

// CalculateY returns the measurement y = Cx + Du.
func (s *LinearSystem) CalculateY(x, u *mat.VecDense) (*mat.VecDense, error) {
	if x.Len() != s.states {
		return nil, errors.Errorf("state vector must have %d entries, got %d", s.states, x.Len())
	}
	if u.Len() != s.inputs {
		return nil, errors.Errorf("input vector must have %d entries, got %d", s.inputs, u.Len())
	}

	var cxTerm, duTerm mat.VecDense
	cxTerm.MulVec(s.c, x)
	duTerm.MulVec(s.d, u)

	y := mat.NewVecDense(s.outputs, nil)
	y.AddVec(&cxTerm, &duTerm)
	return y, nil
}
