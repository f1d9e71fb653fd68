// Package forecast blends the physical GR4J forecast with an externally
// supplied learned prediction and classifies the result against the basin's
// adaptive thresholds, or against mean-multiple cutoffs when none are
// available.
package forecast

import (
	"errors"
	"fmt"
	"math"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/gr4j"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/series"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/threshold"
)

// blend weights, fixed design constants
const (
	physicalWeight = 0.6
	learnedWeight  = 0.4
)

// ErrMissingCalibration flags a forecast call with neither calibrated nor
// default parameters. The combiner always carries the default vector, so
// hitting this is a programming invariant violation, not a runtime
// condition.
var ErrMissingCalibration = errors.New("missing calibration")

// Assessment is the result of one forecast call; it is produced fresh per
// call and never mutated.
type Assessment struct {
	Basin      string
	Blended    series.Daily
	Physical   []float64
	Learned    []float64
	Level      Level
	Applied    threshold.Cutoffs // the cutoffs the peak was classified against
	Peak       float64           // blended peak [mm/d]
	PeakDay    int               // day offset of the peak from the forecast start
	Confidence float64           // physical/learned agreement, in [0,1]
	Adaptive   bool              // true when an adaptive threshold set was applied
}

// Combiner orchestrates the ensemble forecast for the registered basins.
// Threshold sets are optional per basin; the zero map means every basin
// classifies against mean multiples.
type Combiner struct {
	defaults   gr4j.Parameters
	thresholds map[string]threshold.FloodSet
}

func NewCombiner() *Combiner {
	return &Combiner{defaults: gr4j.Default(), thresholds: map[string]threshold.FloodSet{}}
}

// SetThresholds registers (or refreshes) a basin's flood threshold set.
// Keeping registered sets inside their validity window is the caller's job.
func (c *Combiner) SetThresholds(basin string, fs threshold.FloodSet) {
	c.thresholds[basin] = fs
}

// Forecast runs the physical model over the forecast horizon with the given
// parameters (the default vector when nil), blends it 0.6/0.4 with the
// learned prediction, and classifies the blended peak.
func (c *Combiner) Forecast(basin string, precip, et series.Daily, par *gr4j.Parameters, learned []float64) (Assessment, error) {
	if par == nil {
		if c.defaults == (gr4j.Parameters{}) {
			return Assessment{}, fmt.Errorf("basin %s: %w", basin, ErrMissingCalibration)
		}
		def := c.defaults
		par = &def
	}
	if err := precip.Check(); err != nil {
		return Assessment{}, err
	}
	if err := et.Check(); err != nil {
		return Assessment{}, err
	}
	if len(learned) != precip.Len() {
		return Assessment{}, fmt.Errorf("learned prediction length %d for horizon %d: %w",
			len(learned), precip.Len(), gr4j.ErrDimensionMismatch)
	}

	phys, err := gr4j.Simulate(precip.V, et.V, *par)
	if err != nil {
		return Assessment{}, err
	}

	blend := make([]float64, len(phys))
	for i := range phys {
		blend[i] = physicalWeight*phys[i] + learnedWeight*learned[i]
	}
	blended := series.Daily{T: precip.T, V: blend}
	peak, at := blended.Peak()

	a := Assessment{
		Basin:      basin,
		Blended:    blended,
		Physical:   phys,
		Learned:    learned,
		Peak:       peak,
		PeakDay:    at,
		Confidence: agreement(phys, learned),
	}

	if fs, ok := c.thresholds[basin]; ok {
		a.Applied = fs.BySeason(threshold.SeasonOf(blended.T[0].Month()))
		a.Adaptive = true
	} else {
		m := blended.Mean()
		a.Applied = threshold.Cutoffs{
			Moderate: meanMultModerate * m,
			High:     meanMultHigh * m,
			Critical: meanMultCritical * m,
		}
	}
	a.Level = classify(peak, a.Applied.Moderate, a.Applied.High, a.Applied.Critical)
	return a, nil
}

func classify(peak, moderate, high, critical float64) Level {
	switch {
	case peak >= critical:
		return Critical
	case peak >= high:
		return High
	case peak >= moderate:
		return Moderate
	default:
		return Low
	}
}

// agreement scores how closely the two members track each other: one minus
// the mean absolute difference normalized by the members' joint mean,
// clipped to [0,1]. Two flat-zero members agree perfectly.
func agreement(phys, learned []float64) float64 {
	if len(phys) == 0 {
		return 0.
	}
	var mad, mp, ml float64
	for i := range phys {
		mad += math.Abs(phys[i] - learned[i])
		mp += math.Abs(phys[i])
		ml += math.Abs(learned[i])
	}
	n := float64(len(phys))
	mad, mp, ml = mad/n, mp/n, ml/n

	denom := (mp + ml) / 2.
	if denom == 0. {
		return 1.
	}
	conf := 1. - mad/denom
	if conf < 0. {
		return 0.
	}
	if conf > 1. {
		return 1.
	}
	return conf
}
