package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/series"
)

func assessmentOf(v []float64) Assessment {
	s := series.New(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), v)
	pk, at := s.Peak()
	return Assessment{Basin: "benoue", Blended: s, Peak: pk, PeakDay: at}
}

func TestCriticalDays(t *testing.T) {
	a := assessmentOf([]float64{5., 12., 25., 8., 14.})
	cd := a.CriticalDays(10., 20.)
	assert.Equal(t, []CriticalDay{
		{Day: 1, Discharge: 12., Severity: High},
		{Day: 2, Discharge: 25., Severity: Critical},
		{Day: 4, Discharge: 14., Severity: High},
	}, cd)

	assert.Empty(t, assessmentOf([]float64{1., 2., 3.}).CriticalDays(10., 20.))
}

func TestReturnPeriodYears(t *testing.T) {
	a := assessmentOf([]float64{2., 2., 2., 2.}) // ratio 1
	assert.Equal(t, 2, a.ReturnPeriodYears())
	a = Assessment{Blended: series.New(time.Now(), []float64{1., 1., 1., 5.}), Peak: 5.} // mean 2, ratio 2.5
	assert.Equal(t, 5, a.ReturnPeriodYears())
	a = Assessment{Blended: series.New(time.Now(), []float64{1., 1., 1., 1.}), Peak: 6.} // ratio 6
	assert.Equal(t, 20, a.ReturnPeriodYears())
	a = Assessment{Blended: series.New(time.Now(), []float64{1., 1., 1., 1.}), Peak: 12.} // ratio 12
	assert.Equal(t, 50, a.ReturnPeriodYears())
	a = Assessment{Blended: series.New(time.Now(), []float64{1., 1., 1., 1.}), Peak: 25.} // ratio 25
	assert.Equal(t, 100, a.ReturnPeriodYears())
	a = Assessment{Blended: series.New(time.Now(), []float64{0., 0.}), Peak: 9.}
	assert.Equal(t, 2, a.ReturnPeriodYears())
}

func TestVolumeAbove(t *testing.T) {
	a := assessmentOf([]float64{5., 12., 15., 8.})
	fv := a.VolumeAbove(10., 2.)
	assert.InDelta(t, 14000., fv.ExcessM3, 1e-9) // (2+5) mm over 2 km²
	assert.Equal(t, 2, fv.DurationDays)
	assert.Equal(t, 5., fv.PeakExcess)

	assert.Zero(t, a.VolumeAbove(100., 2.).ExcessM3)
}

func TestFloodedAreaAndPopulation(t *testing.T) {
	assert.InDelta(t, 0.028, FloodedAreaKm2(14000., 0.5), 1e-12)
	assert.Equal(t, 0., FloodedAreaKm2(14000., 0.))
	assert.Equal(t, 500, AffectedPopulation(10.))
}
