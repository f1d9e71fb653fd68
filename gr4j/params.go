// Package gr4j implements the GR4J conceptual rainfall-runoff model
// (Perrin, Michel & Andréassian, 2003): a production store and a routing
// store linked by a pair of unit hydrographs, driven by daily precipitation
// and potential evapotranspiration.
package gr4j

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter flags a non-physical parameter value (capacity or
	// time base at or below zero).
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDimensionMismatch flags misaligned input series lengths.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Parameters is the four-parameter GR4J vector. A set is owned by a single
// simulation or calibration run and is never mutated after calibration.
type Parameters struct {
	X1 float64 // production store capacity [mm]
	X2 float64 // groundwater exchange coefficient [mm], signed
	X3 float64 // routing store capacity [mm]
	X4 float64 // unit hydrograph time base [d]
}

// Default is the uncalibrated fallback vector used for basins without an
// observed discharge record.
func Default() Parameters { return Parameters{X1: 350., X2: 0., X3: 90., X4: 1.7} }

func (p Parameters) check() error {
	if p.X1 <= 0. {
		return fmt.Errorf("production store capacity x1 = %g mm: %w", p.X1, ErrInvalidParameter)
	}
	if p.X3 <= 0. {
		return fmt.Errorf("routing store capacity x3 = %g mm: %w", p.X3, ErrInvalidParameter)
	}
	if p.X4 <= 0. {
		return fmt.Errorf("unit hydrograph time base x4 = %g d: %w", p.X4, ErrInvalidParameter)
	}
	return nil
}
