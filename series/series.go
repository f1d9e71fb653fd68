// Package series holds the daily time-series type shared by the simulation,
// threshold and forecast packages. A Daily is an ordered set of calendar-day
// values with a strictly increasing, uniform one-day step; gap filling is an
// upstream concern and is never attempted here.
package series

import (
	"fmt"
	"math"
	"time"
)

// Daily pairs calendar-day timestamps with values (mm/d for forcings,
// mm/d or m³/s for discharge; the core is unit-agnostic as long as the
// caller is consistent).
type Daily struct {
	T []time.Time
	V []float64
}

// New builds a Daily starting at start (truncated to midnight UTC) with one
// value per consecutive day.
func New(start time.Time, v []float64) Daily {
	d0 := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	t := make([]time.Time, len(v))
	for i := range v {
		t[i] = d0.AddDate(0, 0, i)
	}
	return Daily{T: t, V: v}
}

func (d Daily) Len() int { return len(d.V) }

// Check verifies the Daily invariant: equal-length arrays and a strictly
// increasing uniform one-day step.
func (d Daily) Check() error {
	if len(d.T) != len(d.V) {
		return fmt.Errorf("series: %d timestamps for %d values", len(d.T), len(d.V))
	}
	for i := 1; i < len(d.T); i++ {
		if step := d.T[i].Sub(d.T[i-1]); step != 24*time.Hour {
			return fmt.Errorf("series: non-daily step %v at %v", step, d.T[i])
		}
	}
	return nil
}

// Mean returns the arithmetic mean, zero for an empty series.
func (d Daily) Mean() float64 {
	if len(d.V) == 0 {
		return 0.
	}
	s := 0.
	for _, v := range d.V {
		s += v
	}
	return s / float64(len(d.V))
}

// Peak returns the maximum value and its day offset from the series start.
func (d Daily) Peak() (float64, int) {
	pk, at := math.Inf(-1), 0
	for i, v := range d.V {
		if v > pk {
			pk, at = v, i
		}
	}
	return pk, at
}
