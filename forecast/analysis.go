package forecast

// Supplementary flood analytics derived from an assessment: critical-day
// extraction, an approximate return period, and excess-volume / flooded-area
// estimates used by the reporting layer.

// CriticalDay marks a forecast day at or above the high cutoff.
type CriticalDay struct {
	Day       int
	Discharge float64
	Severity  Level // High or Critical
}

// CriticalDays lists the forecast days whose blended discharge reaches the
// given high cutoff, tagging those past the critical cutoff.
func (a Assessment) CriticalDays(high, critical float64) []CriticalDay {
	var out []CriticalDay
	for i, q := range a.Blended.V {
		if q < high {
			continue
		}
		sev := High
		if q >= critical {
			sev = Critical
		}
		out = append(out, CriticalDay{Day: i, Discharge: q, Severity: sev})
	}
	return out
}

// ReturnPeriodYears approximates the recurrence interval of the assessment's
// peak from its ratio to the blended mean. A coarse bracket, not a frequency
// analysis.
func (a Assessment) ReturnPeriodYears() int {
	m := a.Blended.Mean()
	if m <= 0. {
		return 2
	}
	switch ratio := a.Peak / m; {
	case ratio >= 20.:
		return 100
	case ratio >= 10.:
		return 50
	case ratio >= 5.:
		return 20
	case ratio >= 2.:
		return 5
	default:
		return 2
	}
}

// FloodVolume aggregates the water carried above a threshold discharge.
type FloodVolume struct {
	ExcessM3     float64
	DurationDays int
	PeakExcess   float64
}

// VolumeAbove integrates the blended discharge [mm/d] above cutoff over the
// basin area [km²]; 1 mm over 1 km² is 1000 m³.
func (a Assessment) VolumeAbove(cutoff, areaKm2 float64) FloodVolume {
	var fv FloodVolume
	for _, q := range a.Blended.V {
		x := q - cutoff
		if x <= 0. {
			continue
		}
		fv.ExcessM3 += x * areaKm2 * 1000.
		fv.DurationDays++
		if x > fv.PeakExcess {
			fv.PeakExcess = x
		}
	}
	return fv
}

// FloodedAreaKm2 spreads an excess volume [m³] over an assumed inundation
// depth [m].
func FloodedAreaKm2(excessM3, depthM float64) float64 {
	if depthM <= 0. {
		return 0.
	}
	return excessM3 / depthM / 1e6
}

// AffectedPopulation estimates exposure from a flooded area using the
// platform's nominal rural density of 50 inhabitants per km².
func AffectedPopulation(floodedKm2 float64) int {
	return int(floodedKm2 * 50.)
}
