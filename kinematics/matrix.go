package kinematics

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const singularValueTolerance = 1e-12

// pseudoInverse computes the Moore-Penrose pseudoinverse via a thin SVD.
// Forward kinematics for mecanum and swerve drivetrains is an overdetermined
// least-squares problem, and the pseudoinverse of the inverse-kinematics
// matrix is its solution.
func pseudoInverse(m *mat.Dense) (*mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		return nil, errors.New("SVD of kinematics matrix failed")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	values := svd.Values(nil)
	sigmaInv := mat.NewDense(len(values), len(values), nil)
	for i, sv := range values {
		if sv > singularValueTolerance {
			sigmaInv.Set(i, i, 1/sv)
		}
	}

	var pinv mat.Dense
	pinv.Product(&v, sigmaInv, u.T())
	return &pinv, nil
}
