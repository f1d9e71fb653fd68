package gr4j

import (
	"fmt"
	"math"
)

// UnitHydrographs derives the two finite impulse-response ordinate sequences
// governed by the time base x4. UH1 saturates at x4, UH2 at 2·x4; ordinates
// are the first differences of the S-curves SH1 and SH2 (exponent 5/2), so
// each sequence sums to one. With x4 < 1 the full mass lands on the first
// ordinate.
func UnitHydrographs(x4 float64) (uh1, uh2 []float64, err error) {
	if x4 <= 0. {
		return nil, nil, fmt.Errorf("unit hydrograph time base x4 = %g d: %w", x4, ErrInvalidParameter)
	}
	n1, n2 := int(math.Ceil(x4)), int(math.Ceil(2.*x4))
	uh1, uh2 = make([]float64, n1), make([]float64, n2)
	for t := 1; t <= n1; t++ {
		uh1[t-1] = sh1(float64(t), x4) - sh1(float64(t-1), x4)
	}
	for t := 1; t <= n2; t++ {
		uh2[t-1] = sh2(float64(t), x4) - sh2(float64(t-1), x4)
	}
	return uh1, uh2, nil
}

func sh1(t, x4 float64) float64 {
	switch {
	case t <= 0.:
		return 0.
	case t < x4:
		return math.Pow(t/x4, 2.5)
	default:
		return 1.
	}
}

func sh2(t, x4 float64) float64 {
	switch {
	case t <= 0.:
		return 0.
	case t < x4:
		return .5 * math.Pow(t/x4, 2.5)
	case t < 2.*x4:
		return 1. - .5*math.Pow(2.-t/x4, 2.5)
	default:
		return 1.
	}
}
