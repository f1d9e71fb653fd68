package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/gr4j"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/series"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/station"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/threshold"
)

func horizon(start time.Time, precip []float64) (series.Daily, series.Daily) {
	et := make([]float64, len(precip))
	for i := range et {
		et[i] = 3.
	}
	return series.New(start, precip), series.New(start, et)
}

var wetStart = time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)

func TestForecastBlend(t *testing.T) {
	p, e := horizon(wetStart, []float64{40., 10., 0., 0., 0., 0., 20., 0., 0., 0.})
	learned := []float64{1., 2., 3., 4., 5., 4., 3., 2., 1., 0.}

	par := gr4j.Default()
	a, err := NewCombiner().Forecast("sanaga", p, e, &par, learned)
	require.NoError(t, err)

	phys, err := gr4j.Simulate(p.V, e.V, par)
	require.NoError(t, err)

	require.Len(t, a.Blended.V, p.Len())
	for i := range a.Blended.V {
		assert.Equal(t, 0.6*phys[i]+0.4*learned[i], a.Blended.V[i], "day %d", i)
	}
	pk, at := a.Blended.Peak()
	assert.Equal(t, pk, a.Peak)
	assert.Equal(t, at, a.PeakDay)
	assert.GreaterOrEqual(t, a.Confidence, 0.)
	assert.LessOrEqual(t, a.Confidence, 1.)
}

func TestForecastClassification(t *testing.T) {
	fs := threshold.FloodSet{
		Station: station.Plain,
		Wet:     threshold.Cutoffs{Moderate: 1., High: 2., Critical: 3.},
		Dry:     threshold.Cutoffs{Moderate: 1e6, High: 2e6, Critical: 3e6},
	}

	c := NewCombiner()
	c.SetThresholds("sanaga", fs)
	par := gr4j.Default()
	learned := make([]float64, 10)

	t.Run("adaptive cutoffs by season", func(t *testing.T) {
		p, e := horizon(wetStart, []float64{60., 0., 0., 0., 0., 0., 0., 0., 0., 0.})
		a, err := c.Forecast("sanaga", p, e, &par, learned)
		require.NoError(t, err)
		assert.True(t, a.Adaptive)
		assert.Equal(t, Critical, a.Level) // wet-season critical cutoff is 3 mm/d
		assert.Equal(t, fs.Wet, a.Applied)

		dryStart := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		p, e = horizon(dryStart, []float64{60., 0., 0., 0., 0., 0., 0., 0., 0., 0.})
		a, err = c.Forecast("sanaga", p, e, &par, learned)
		require.NoError(t, err)
		assert.True(t, a.Adaptive)
		assert.Equal(t, Low, a.Level) // dry-season cutoffs far above any peak
		assert.Equal(t, fs.Dry, a.Applied)
	})

	t.Run("mean-multiple fallback", func(t *testing.T) {
		p, e := horizon(wetStart, []float64{60., 0., 0., 0., 0., 0., 0., 0., 0., 0.})
		a, err := c.Forecast("nyong", p, e, &par, learned) // no set registered
		require.NoError(t, err)
		assert.False(t, a.Adaptive)
		m := a.Blended.Mean()
		assert.Equal(t, threshold.Cutoffs{Moderate: 5. * m, High: 10. * m, Critical: 20. * m}, a.Applied)
		assert.Equal(t, classify(a.Peak, a.Applied.Moderate, a.Applied.High, a.Applied.Critical), a.Level)
	})
}

func TestForecastErrors(t *testing.T) {
	p, e := horizon(wetStart, []float64{10., 0., 0.})
	par := gr4j.Default()

	t.Run("learned horizon mismatch", func(t *testing.T) {
		_, err := NewCombiner().Forecast("sanaga", p, e, &par, []float64{1., 2.})
		assert.ErrorIs(t, err, gr4j.ErrDimensionMismatch)
	})

	t.Run("no parameters at all", func(t *testing.T) {
		var c Combiner // zero value carries no default vector
		_, err := c.Forecast("sanaga", p, e, nil, []float64{1., 2., 3.})
		assert.ErrorIs(t, err, ErrMissingCalibration)
	})

	t.Run("nil parameters fall back to defaults", func(t *testing.T) {
		_, err := NewCombiner().Forecast("sanaga", p, e, nil, []float64{1., 2., 3.})
		assert.NoError(t, err)
	})
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Low, classify(1., 2., 5., 10.))
	assert.Equal(t, Moderate, classify(2., 2., 5., 10.))
	assert.Equal(t, High, classify(7., 2., 5., 10.))
	assert.Equal(t, Critical, classify(10., 2., 5., 10.))
}

func TestAgreement(t *testing.T) {
	x := []float64{1., 2., 3.}
	assert.Equal(t, 1., agreement(x, x))
	assert.Equal(t, 1., agreement([]float64{0., 0.}, []float64{0., 0.}))
	assert.Equal(t, 0., agreement([]float64{1.}, []float64{-1.})) // clipped
	assert.Equal(t, 0., agreement(nil, nil))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "low", Low.String())
	assert.Equal(t, "moderate", Moderate.String())
	assert.Equal(t, "high", High.String())
	assert.Equal(t, "critical", Critical.String())
}
