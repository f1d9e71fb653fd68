package calib

import (
	"math"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/gr4j"
)

func syntheticForcing(n int, seed int64) (precip, et []float64) {
	rng := rand.New(rand.NewSource(seed))
	precip, et = make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		if rng.Float64() < 0.4 {
			precip[i] = rng.ExpFloat64() * 8.
		}
		et[i] = 3. + 2.*math.Sin(2.*math.Pi*float64(i)/365.)
	}
	return
}

func TestFit(t *testing.T) {
	t.Run("recovers a synthetic record", func(t *testing.T) {
		precip, et := syntheticForcing(730, 11)
		truth := gr4j.Default()
		obs, err := gr4j.Simulate(precip, et, truth)
		require.NoError(t, err)

		res, err := Fit(precip, et, obs, WithSeed(42), WithComplexes(2))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.NSE, 0.99)
	})

	t.Run("zero-variance record rejected", func(t *testing.T) {
		precip, et := syntheticForcing(100, 12)
		obs := make([]float64, 100)
		for i := range obs {
			obs[i] = 3.5
		}
		_, err := Fit(precip, et, obs)
		assert.ErrorIs(t, err, ErrDegenerateInput)
	})

	t.Run("misaligned series rejected", func(t *testing.T) {
		precip, et := syntheticForcing(50, 13)
		_, err := Fit(precip, et, make([]float64, 49))
		assert.ErrorIs(t, err, gr4j.ErrDimensionMismatch)
	})
}

func TestPar4Bounds(t *testing.T) {
	for _, u := range [][]float64{
		{0., 0., 0., 0.},
		{1., 1., 1., 1.},
		{.5, .5, .5, .5},
	} {
		p := par4(u)
		assert.GreaterOrEqual(t, p.X1, 100.)
		assert.LessOrEqual(t, p.X1, 1200.)
		assert.GreaterOrEqual(t, p.X2, -5.)
		assert.LessOrEqual(t, p.X2, 3.)
		assert.GreaterOrEqual(t, p.X3, 20.)
		assert.LessOrEqual(t, p.X3, 300.)
		assert.GreaterOrEqual(t, p.X4, 1.)
		assert.LessOrEqual(t, p.X4, 5.)
	}
}

func TestSample(t *testing.T) {
	precip, et := syntheticForcing(365, 14)
	obs, err := gr4j.Simulate(precip, et, gr4j.Default())
	require.NoError(t, err)

	var evals int64
	res, err := Sample(precip, et, obs, 20, WithProgress(func() { atomic.AddInt64(&evals, 1) }))
	require.NoError(t, err)
	require.Len(t, res, 20)
	assert.EqualValues(t, 20, atomic.LoadInt64(&evals))
	for i := 1; i < len(res); i++ {
		assert.GreaterOrEqual(t, res[i-1].NSE, res[i].NSE, "ranked best first")
	}
}
