package pipeline

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/forecast"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/series"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/station"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/threshold"
)

func TestScreen(t *testing.T) {
	p := &Pipeline{Registry: station.Defaults(), Log: zerolog.Nop()}

	s, err := p.Screen("wouri", 100.)
	require.NoError(t, err)
	assert.Equal(t, "wouri", s.Basin)
	assert.Greater(t, s.RunoffMM, 0.)
	assert.Less(t, s.RunoffMM, 100., "runoff never exceeds the storm depth")
	assert.Greater(t, s.PeakM3s, 0.)

	t.Run("higher curve number sheds more", func(t *testing.T) {
		nyong, err := p.Screen("nyong", 100.) // CN 70 vs wouri's 82
		require.NoError(t, err)
		assert.Less(t, nyong.RunoffMM, s.RunoffMM)
	})

	t.Run("unknown basin rejected", func(t *testing.T) {
		_, err := p.Screen("niger", 100.)
		assert.Error(t, err)
	})
}

func TestAssessImpact(t *testing.T) {
	bl := series.New(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		[]float64{5., 12., 25., 8.})
	pk, at := bl.Peak()
	a := forecast.Assessment{
		Basin: "wouri", Blended: bl, Peak: pk, PeakDay: at,
		Applied: threshold.Cutoffs{Moderate: 8., High: 10., Critical: 20.},
	}

	im := assessImpact(2., a)
	assert.Equal(t, 2, im.CriticalDays, "days 1 and 2 reach the high cutoff")
	assert.Equal(t, 5, im.ReturnPeriodYears, "peak/mean ratio is exactly 2")
	assert.InDelta(t, 10000., im.ExcessM3, 1e-9) // 5 mm over 2 km²
	assert.InDelta(t, 0.02, im.FloodedKm2, 1e-12)
	assert.Equal(t, 1, im.Affected)

	t.Run("quiet forecast has no impact", func(t *testing.T) {
		calm := forecast.Assessment{
			Blended: series.New(time.Now(), []float64{1., 1., 1.}), Peak: 1.,
			Applied: threshold.Cutoffs{Moderate: 8., High: 10., Critical: 20.},
		}
		im := assessImpact(2., calm)
		assert.Zero(t, im.CriticalDays)
		assert.Zero(t, im.ExcessM3)
		assert.Zero(t, im.Affected)
	})
}
