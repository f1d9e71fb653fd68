// Package station carries the station/watershed metadata the threshold and
// screening models scale against: a physiographic type tag, a climatic
// region tag, and the per-basin defaults the national registry publishes.
package station

import "sort"

// Type is the physiographic station class driving flood-threshold scaling.
type Type string

const (
	Mountain Type = "mountain"
	Plain    Type = "plain"
	Other    Type = "other"
)

// FloodFactor is the station-type multiplier applied to flood thresholds.
func (t Type) FloodFactor() float64 {
	switch t {
	case Mountain:
		return 1.2
	case Plain:
		return 0.8
	default:
		return 1.
	}
}

// Region is the climatic region class driving drought-threshold scaling.
type Region string

const (
	Arid  Region = "arid"
	Humid Region = "humid"
	Mixed Region = "mixed"
)

// DroughtFactor is the region multiplier applied to drought thresholds:
// arid regions tolerate longer dry spells before a given severity, humid
// regions shorter.
func (r Region) DroughtFactor() float64 {
	switch r {
	case Arid:
		return 0.7
	case Humid:
		return 1.3
	default:
		return 1.
	}
}

// Watershed is one registry entry: the basin defaults used by the screening
// model when no site survey is available.
type Watershed struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	AreaKm2     float64  `yaml:"area_km2"`
	CurveNumber float64  `yaml:"curve_number"`
	TcHours     float64  `yaml:"tc_hours"`
	Type        Type     `yaml:"type"`
	Region      Region   `yaml:"region"`
	Provinces   []string `yaml:"provinces"`
}

// Registry maps basin identifiers to watershed entries.
type Registry map[string]Watershed

// Defaults is the built-in registry of the main national basins; a YAML
// station file overrides it when supplied.
func Defaults() Registry {
	return Registry{
		"sanaga": {ID: "sanaga", Name: "Sanaga", AreaKm2: 133000, CurveNumber: 72, TcHours: 48,
			Type: Plain, Region: Humid, Provinces: []string{"Centre", "Sud", "Littoral"}},
		"benoue": {ID: "benoue", Name: "Bénoué", AreaKm2: 65000, CurveNumber: 78, TcHours: 36,
			Type: Mountain, Region: Mixed, Provinces: []string{"Nord", "Adamaoua"}},
		"logone": {ID: "logone", Name: "Logone", AreaKm2: 85000, CurveNumber: 75, TcHours: 40,
			Type: Plain, Region: Arid, Provinces: []string{"Extrême-Nord"}},
		"nyong": {ID: "nyong", Name: "Nyong", AreaKm2: 27800, CurveNumber: 70, TcHours: 24,
			Type: Other, Region: Humid, Provinces: []string{"Centre", "Sud"}},
		"wouri": {ID: "wouri", Name: "Wouri", AreaKm2: 8800, CurveNumber: 82, TcHours: 12,
			Type: Plain, Region: Humid, Provinces: []string{"Littoral"}},
	}
}

// publication order of the built-in basins; ties between basins sharing a
// province resolve to the earlier entry.
var builtinOrder = []string{"sanaga", "benoue", "logone", "nyong", "wouri"}

// OrderedIDs lists the registry's basins in a stable order: the built-ins in
// publication order, then configured extras alphabetically.
func (r Registry) OrderedIDs() []string {
	ids := make([]string, 0, len(r))
	for _, id := range builtinOrder {
		if _, ok := r[id]; ok {
			ids = append(ids, id)
		}
	}
	var extras []string
	for id := range r {
		builtin := false
		for _, b := range builtinOrder {
			if id == b {
				builtin = true
				break
			}
		}
		if !builtin {
			extras = append(extras, id)
		}
	}
	sort.Strings(extras)
	return append(ids, extras...)
}

// ForProvince returns the first basin covering the given province, walking
// the registry in its stable order so provinces shared by several basins
// always resolve the same way. Falls back to a small generic basin the way
// the registry's upstream service does.
func (r Registry) ForProvince(province string) Watershed {
	for _, id := range r.OrderedIDs() {
		w := r[id]
		for _, p := range w.Provinces {
			if p == province {
				return w
			}
		}
	}
	return Watershed{ID: "default", Name: "Bassin local", AreaKm2: 100, CurveNumber: 75,
		TcHours: 6, Type: Other, Region: Mixed, Provinces: []string{province}}
}
