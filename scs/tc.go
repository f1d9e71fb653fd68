package scs

import (
	"fmt"
	"math"
)

// TimeOfConcentration estimates a basin's time of concentration [h] from the
// main channel length [km] and mean slope [%].
func TimeOfConcentration(lengthKm, slopePct float64, method string) (float64, error) {
	if lengthKm <= 0. || slopePct <= 0. {
		return 0., fmt.Errorf("time of concentration: length %g km, slope %g%%", lengthKm, slopePct)
	}
	slope := slopePct / 100.
	switch method {
	case "kirpich":
		// small basins (< 80 ha)
		tcMin := 0.0195 * math.Pow(lengthKm*1000., 0.77) * math.Pow(slope, -0.385)
		return tcMin / 60., nil
	case "bransby-williams":
		// large basins, area term approximated out
		return 0.06 * lengthKm / math.Pow(slope, 0.2), nil
	default:
		return 0., fmt.Errorf("time of concentration: unknown method %q", method)
	}
}
