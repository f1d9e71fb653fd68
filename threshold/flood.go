package threshold

import (
	"fmt"
	"time"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/series"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/station"
)

// Season partitions the year for flood thresholds: the wet season spans
// May through October, the dry season the remaining months.
type Season string

const (
	Wet Season = "wet"
	Dry Season = "dry"
)

// SeasonOf returns the season containing month m.
func SeasonOf(m time.Month) Season {
	if m >= time.May && m <= time.October {
		return Wet
	}
	return Dry
}

// FloodSet holds the per-season flood cutoffs [mm/d] for one station, scaled
// by its physiographic type factor.
type FloodSet struct {
	Station    station.Type
	Wet, Dry   Cutoffs
	ComputedAt time.Time
	ValidUntil time.Time
}

// Expired reports whether the set's validity window has lapsed at now.
func (fs FloodSet) Expired(now time.Time) bool { return now.After(fs.ValidUntil) }

// BySeason returns the cutoffs for season s.
func (fs FloodSet) BySeason(s Season) Cutoffs {
	if s == Wet {
		return fs.Wet
	}
	return fs.Dry
}

// Flood derives the station's flood cutoffs from its historical daily
// precipitation: the 90th/95th/99th percentiles per season, scaled by the
// station-type factor (mountain ×1.2, plain ×0.8).
func (c Calculator) Flood(st station.Type, hist series.Daily) (FloodSet, error) {
	if err := hist.Check(); err != nil {
		return FloodSet{}, err
	}
	if hist.Len() == 0 {
		return FloodSet{}, fmt.Errorf("flood thresholds: empty historical record")
	}

	var wet, dry []float64
	for i, t := range hist.T {
		if SeasonOf(t.Month()) == Wet {
			wet = append(wet, hist.V[i])
		} else {
			dry = append(dry, hist.V[i])
		}
	}

	fac := st.FloodFactor()
	fs := FloodSet{Station: st, Wet: seasonCutoffs(wet, fac), Dry: seasonCutoffs(dry, fac)}
	if err := fs.Wet.check(); err != nil {
		return FloodSet{}, fmt.Errorf("wet season: %w", err)
	}
	if err := fs.Dry.check(); err != nil {
		return FloodSet{}, fmt.Errorf("dry season: %w", err)
	}
	fs.ComputedAt, fs.ValidUntil = c.window()
	return fs, nil
}

func seasonCutoffs(v []float64, factor float64) Cutoffs {
	return Cutoffs{
		Moderate: percentile(v, 90.) * factor,
		High:     percentile(v, 95.) * factor,
		Critical: percentile(v, 99.) * factor,
	}
}
