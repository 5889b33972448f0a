package tracker

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Smoother is a constant velocity Kalman filter run over the boxes reported
// by a single object tracker to take the jitter out of them.  State is kept in
// xyah form (center x, center y, aspect ratio, height) plus the velocity of
// each component.
type Smoother struct {
	stdWeightPosition float64
	stdWeightVelocity float64
	motionMat         *mat.Dense
	updateMat         *mat.Dense
	mean              *mat.VecDense
	covariance        *mat.Dense
	initiated         bool
}

// NewSmoother returns a new Smoother.  The weights scale the process noise
// relative to the box height, eg: 1.0/20 and 1.0/160
func NewSmoother(stdWeightPosition, stdWeightVelocity float64) *Smoother {

	// motion model adds velocity to position every frame
	motionMat := mat.NewDense(8, 8, nil)

	for i := 0; i < 8; i++ {
		motionMat.Set(i, i, 1)
	}

	for i := 0; i < 4; i++ {
		motionMat.Set(i, 4+i, 1)
	}

	// measurement model observes the first four state values
	updateMat := mat.NewDense(4, 8, nil)

	for i := 0; i < 4; i++ {
		updateMat.Set(i, i, 1)
	}

	return &Smoother{
		stdWeightPosition: stdWeightPosition,
		stdWeightVelocity: stdWeightVelocity,
		motionMat:         motionMat,
		updateMat:         updateMat,
	}
}

// Reset discards the filter state, the next Smooth call starts afresh
func (s *Smoother) Reset() {
	s.initiated = false
	s.mean = nil
	s.covariance = nil
}

// Smooth feeds a measured box into the filter and returns the filtered box.
// The first measurement is returned unchanged.
func (s *Smoother) Smooth(measured Rect) (Rect, error) {

	if measured.Empty() {
		return measured, errors.New("cannot smooth an empty box")
	}

	xyah := measured.GetXyah()

	if !s.initiated {
		s.initiate(xyah)
		return measured, nil
	}

	s.predict()

	if err := s.correct(xyah); err != nil {
		// leave the filter on its prediction, report the raw measurement
		return measured, err
	}

	return GenerateRectByXyah(Xyah{
		float32(s.mean.AtVec(0)),
		float32(s.mean.AtVec(1)),
		float32(s.mean.AtVec(2)),
		float32(s.mean.AtVec(3)),
	}), nil
}

func (s *Smoother) initiate(m Xyah) {

	s.mean = mat.NewVecDense(8, []float64{
		float64(m[0]), float64(m[1]), float64(m[2]), float64(m[3]), 0, 0, 0, 0,
	})

	h := float64(m[3])
	std := []float64{
		2 * s.stdWeightPosition * h,
		2 * s.stdWeightPosition * h,
		1e-2,
		2 * s.stdWeightPosition * h,
		10 * s.stdWeightVelocity * h,
		10 * s.stdWeightVelocity * h,
		1e-5,
		10 * s.stdWeightVelocity * h,
	}

	s.covariance = mat.NewDense(8, 8, nil)

	for i, v := range std {
		s.covariance.Set(i, i, v*v)
	}

	s.initiated = true
}

func (s *Smoother) predict() {

	h := s.mean.AtVec(3)
	std := []float64{
		s.stdWeightPosition * h,
		s.stdWeightPosition * h,
		1e-2,
		s.stdWeightPosition * h,
		s.stdWeightVelocity * h,
		s.stdWeightVelocity * h,
		1e-5,
		s.stdWeightVelocity * h,
	}

	var mean mat.VecDense
	mean.MulVec(s.motionMat, s.mean)
	s.mean = &mean

	var cov mat.Dense
	cov.Product(s.motionMat, s.covariance, s.motionMat.T())

	for i, v := range std {
		cov.Set(i, i, cov.At(i, i)+v*v)
	}

	s.covariance = &cov
}

func (s *Smoother) correct(m Xyah) error {

	h := s.mean.AtVec(3)
	std := []float64{
		s.stdWeightPosition * h,
		s.stdWeightPosition * h,
		1e-1,
		s.stdWeightPosition * h,
	}

	// innovation covariance S = H P H' + R
	var projected mat.Dense
	projected.Product(s.updateMat, s.covariance, s.updateMat.T())

	innovationCov := mat.NewSymDense(4, nil)

	for i := 0; i < 4; i++ {
		for j := i; j < 4; j++ {
			v := (projected.At(i, j) + projected.At(j, i)) / 2
			if i == j {
				v += std[i] * std[i]
			}
			innovationCov.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky

	if ok := chol.Factorize(innovationCov); !ok {
		return errors.New("failed to factorize innovation covariance")
	}

	// kalman gain K' = S^-1 (H P)
	var hp mat.Dense
	hp.Mul(s.updateMat, s.covariance)

	var gainT mat.Dense

	if err := chol.SolveTo(&gainT, &hp); err != nil {
		return errors.Wrap(err, "failed to compute kalman gain")
	}

	var projMean mat.VecDense
	projMean.MulVec(s.updateMat, s.mean)

	innovation := mat.NewVecDense(4, []float64{
		float64(m[0]) - projMean.AtVec(0),
		float64(m[1]) - projMean.AtVec(1),
		float64(m[2]) - projMean.AtVec(2),
		float64(m[3]) - projMean.AtVec(3),
	})

	var delta mat.VecDense
	delta.MulVec(gainT.T(), innovation)
	s.mean.AddVec(s.mean, &delta)

	// P = P - K S K'
	var kskt mat.Dense
	kskt.Product(gainT.T(), innovationCov, &gainT)

	var cov mat.Dense
	cov.Sub(s.covariance, &kskt)
	s.covariance = &cov

	return nil
}
