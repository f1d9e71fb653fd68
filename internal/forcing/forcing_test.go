package forcing

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/series"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestBasinPaths(t *testing.T) {
	p := BasinPaths("/var/onacc", "wouri")
	assert.Equal(t, filepath.Join("/var/onacc", "wouri.precip.csv"), p.Precip)
	assert.Equal(t, filepath.Join("/var/onacc", "wouri.et.csv"), p.ET)
	assert.Equal(t, filepath.Join("/var/onacc", "wouri.obs.csv"), p.Observed)
	assert.Equal(t, filepath.Join("/var/onacc", "wouri.ml.csv"), p.Learned)
}

func TestAlign(t *testing.T) {
	a := series.New(day(1), []float64{1., 2., 3., 4., 5., 6.})  // Mar 1–6
	b := series.New(day(4), []float64{40., 50., 60., 70., 80.}) // Mar 4–8

	t.Run("overlap trimmed on both sides", func(t *testing.T) {
		aa, bb, err := Align(a, b)
		require.NoError(t, err)
		assert.Equal(t, []float64{4., 5., 6.}, aa.V)
		assert.Equal(t, []float64{40., 50., 60.}, bb.V)
		assert.Equal(t, aa.T, bb.T)
		assert.NoError(t, aa.Check())
	})

	t.Run("contained span untouched", func(t *testing.T) {
		aa, bb, err := Align(a, a)
		require.NoError(t, err)
		assert.Equal(t, a.V, aa.V)
		assert.Equal(t, a.V, bb.V)
	})

	t.Run("disjoint spans rejected", func(t *testing.T) {
		c := series.New(day(20), []float64{1., 2.})
		_, _, err := Align(a, c)
		assert.Error(t, err)
	})

	t.Run("empty input rejected", func(t *testing.T) {
		_, _, err := Align(a, series.Daily{})
		assert.Error(t, err)
	})
}
