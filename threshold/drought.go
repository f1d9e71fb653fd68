package threshold

import (
	"fmt"
	"math"
	"time"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/series"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/station"
)

// DryDayCutoff is the precipitation below which a day counts as dry [mm/d].
// A fixed conceptual constant, matched to the platform's dry-streak feature.
const DryDayCutoff = 1.0

// DroughtSet holds the dry-spell duration cutoffs [whole days] for one
// station, scaled by its climatic-region factor.
type DroughtSet struct {
	Region     station.Region
	Moderate   int
	High       int
	Critical   int
	ComputedAt time.Time
	ValidUntil time.Time
}

// Expired reports whether the set's validity window has lapsed at now.
func (ds DroughtSet) Expired(now time.Time) bool { return now.After(ds.ValidUntil) }

// Drought derives the station's drought cutoffs from its historical daily
// precipitation: dry-spell run lengths across the full record, their
// 60th/75th/90th percentiles scaled by the region factor (arid ×0.7,
// humid ×1.3) and truncated to whole days.
func (c Calculator) Drought(reg station.Region, hist series.Daily) (DroughtSet, error) {
	if err := hist.Check(); err != nil {
		return DroughtSet{}, err
	}
	if hist.Len() == 0 {
		return DroughtSet{}, fmt.Errorf("drought thresholds: empty historical record")
	}

	runs := drySpells(hist.V)
	fac := reg.DroughtFactor()
	ds := DroughtSet{
		Region:   reg,
		Moderate: int(math.Trunc(percentile(runs, 60.) * fac)),
		High:     int(math.Trunc(percentile(runs, 75.) * fac)),
		Critical: int(math.Trunc(percentile(runs, 90.) * fac)),
	}
	if ds.Critical < ds.High || ds.High < ds.Moderate {
		return DroughtSet{}, fmt.Errorf("moderate %d, high %d, critical %d: %w",
			ds.Moderate, ds.High, ds.Critical, ErrInconsistentThresholds)
	}
	ds.ComputedAt, ds.ValidUntil = c.window()
	return ds, nil
}

// drySpells returns the lengths of all maximal runs of consecutive dry days.
func drySpells(v []float64) []float64 {
	var runs []float64
	run := 0
	for _, p := range v {
		if p < DryDayCutoff {
			run++
			continue
		}
		if run > 0 {
			runs = append(runs, float64(run))
			run = 0
		}
	}
	if run > 0 {
		runs = append(runs, float64(run))
	}
	return runs
}
