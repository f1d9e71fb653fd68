package gr4j

import "fmt"

// Simulate drives the daily transition over aligned precipitation and
// evapotranspiration series [mm/d], both stores starting half full, and
// returns the simulated discharge series [mm/d], one non-negative value per
// input day. Identical inputs and parameters yield identical output.
func Simulate(precip, et []float64, par Parameters) ([]float64, error) {
	if len(precip) != len(et) {
		return nil, fmt.Errorf("precipitation length %d, evapotranspiration length %d: %w",
			len(precip), len(et), ErrDimensionMismatch)
	}
	m, err := newModel(par)
	if err != nil {
		return nil, err
	}
	st := State{S: par.X1 / 2., R: par.X3 / 2.}
	q := make([]float64, len(precip))
	for j := range precip {
		st, q[j] = m.step(st, precip[j], et[j])
	}
	return q, nil
}
