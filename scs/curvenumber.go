// Package scs implements the SCS Curve Number runoff model (USDA-SCS 1972)
// and the rational-method peak discharge, the platform's first-generation
// screening estimator kept alongside GR4J for basins without a calibration
// record.
package scs

import "fmt"

const (
	mmPerInch = 25.4
	// standard initial-abstraction ratio λ
	defaultLambda = 0.2
)

// Model is a configured curve-number basin.
type Model struct {
	CN     float64 // curve number, 30–100
	S      float64 // maximum retention [in]
	Lambda float64
}

// New validates the curve number and derives the maximum retention
// S = 1000/CN − 10 [in].
func New(cn float64) (Model, error) {
	if cn < 30. || cn > 100. {
		return Model{}, fmt.Errorf("curve number %g outside [30,100]", cn)
	}
	return Model{CN: cn, S: 1000./cn - 10., Lambda: defaultLambda}, nil
}

// Runoff applies the SCS-CN equation to a daily precipitation series [mm/d]:
// Q = (P−Ia)² / (P−Ia+S) when P exceeds the initial abstraction Ia = λ·S,
// zero otherwise.
func (m Model) Runoff(precip []float64) []float64 {
	ia := m.Lambda * m.S
	out := make([]float64, len(precip))
	for i, p := range precip {
		pin := p / mmPerInch
		if pin <= ia {
			continue
		}
		pe := pin - ia
		out[i] = pe * pe / (pe + m.S) * mmPerInch
	}
	return out
}

// PeakDischarge estimates the rational-method peak [m³/s] for a day's total
// runoff [mm] over a basin of the given area [km²] and time of
// concentration [h]. The runoff coefficient is capped at 0.95.
func (m Model) PeakDischarge(runoffMM, areaKm2, tcHours float64) float64 {
	if runoffMM <= 0. || tcHours <= 0. {
		return 0.
	}
	c := runoffMM / 100.
	if c > 0.95 {
		c = 0.95
	}
	intensity := runoffMM / tcHours // [mm/h]
	areaHa := areaKm2 * 100.
	return c * intensity * areaHa / 360.
}
