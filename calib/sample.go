package calib

import (
	"fmt"

	"github.com/maseology/montecarlo"
	"github.com/maseology/objfunc"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/gr4j"
)

// Sample runs a ranked Monte Carlo screen of the calibration space, useful
// for uncertainty envelopes around a fitted set. Results come back ordered
// best NSE first.
func Sample(precip, et, obs []float64, nsmpl int, opts ...Option) ([]Result, error) {
	if len(precip) != len(et) || len(precip) != len(obs) {
		return nil, fmt.Errorf("precipitation %d, evapotranspiration %d, observed %d: %w",
			len(precip), len(et), len(obs), gr4j.ErrDimensionMismatch)
	}
	if variance(obs) == 0. {
		return nil, fmt.Errorf("observed discharge variance is zero, NSE undefined: %w", ErrDegenerateInput)
	}
	o := buildOptions(opts)

	gen := func(u []float64) float64 {
		if o.hook != nil {
			o.hook()
		}
		sim, err := gr4j.Simulate(precip, et, par4(u))
		if err != nil {
			return 2.
		}
		return 1. - objfunc.NSE(obs, sim)
	}
	u, f, d := montecarlo.RankedUnBiased(gen, ndim, nsmpl)

	out := make([]Result, 0, len(d))
	for _, dd := range d {
		out = append(out, Result{Params: par4(u[dd]), NSE: 1. - f[dd]})
	}
	return out, nil
}
