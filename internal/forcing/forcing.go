// Package forcing loads the per-basin daily CSV records the pipeline feeds
// to the numeric core, and aligns them onto a common date span. The core
// itself assumes pre-aligned series; all alignment happens here at the
// boundary.
package forcing

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/maseology/mmio"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/series"
)

// Paths locates one basin's forcing files under the data directory.
type Paths struct {
	Precip   string
	ET       string
	Observed string
	Learned  string
}

func BasinPaths(dataDir, basin string) Paths {
	return Paths{
		Precip:   filepath.Join(dataDir, basin+".precip.csv"),
		ET:       filepath.Join(dataDir, basin+".et.csv"),
		Observed: filepath.Join(dataDir, basin+".obs.csv"),
		Learned:  filepath.Join(dataDir, basin+".ml.csv"),
	}
}

// LoadDaily reads a Date,Value CSV into a Daily ordered by date.
func LoadDaily(fp string) (series.Daily, error) {
	c, err := mmio.ReadCsvDateFloat(fp)
	if err != nil {
		return series.Daily{}, fmt.Errorf("load %s: %w", fp, err)
	}
	ts := make([]time.Time, 0, len(c))
	for t := range c {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
	d := series.Daily{T: ts, V: make([]float64, len(ts))}
	for i, t := range ts {
		d.V[i] = c[t]
	}
	if err := d.Check(); err != nil {
		return series.Daily{}, fmt.Errorf("load %s: %w", fp, err)
	}
	return d, nil
}

// Align trims two dailies to their overlapping date span.
func Align(a, b series.Daily) (series.Daily, series.Daily, error) {
	if a.Len() == 0 || b.Len() == 0 {
		return series.Daily{}, series.Daily{}, fmt.Errorf("align: empty series")
	}
	start := a.T[0]
	if b.T[0].After(start) {
		start = b.T[0]
	}
	end := a.T[a.Len()-1]
	if b.T[b.Len()-1].Before(end) {
		end = b.T[b.Len()-1]
	}
	if end.Before(start) {
		return series.Daily{}, series.Daily{}, fmt.Errorf("align: no overlapping span")
	}
	return window(a, start, end), window(b, start, end), nil
}

func window(d series.Daily, start, end time.Time) series.Daily {
	i0 := int(start.Sub(d.T[0]).Hours() / 24.)
	i1 := int(end.Sub(d.T[0]).Hours()/24.) + 1
	return series.Daily{T: d.T[i0:i1], V: d.V[i0:i1]}
}
