// Package pipeline wires the numeric core to the service boundary: forcing
// files in, recorded calibrations/thresholds/assessments out. The watch
// daemon and the CLI subcommands both drive it.
package pipeline

import (
	"fmt"
	"time"

	"github.com/maseology/mmio"
	"github.com/rs/zerolog"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/calib"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/forecast"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/gr4j"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/internal/forcing"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/internal/recorder"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/scs"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/series"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/station"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/threshold"
)

type Pipeline struct {
	DataDir  string
	Registry station.Registry
	Recorder recorder.Recorder
	Calc     threshold.Calculator
	Log      zerolog.Logger
	CalibOpt []calib.Option
}

// Calibrate fits the basin's parameters against its observed record and
// persists the result.
func (p *Pipeline) Calibrate(basin string) (calib.Result, error) {
	paths := forcing.BasinPaths(p.DataDir, basin)
	precip, et, err := p.loadForcings(paths)
	if err != nil {
		return calib.Result{}, err
	}
	obs, err := forcing.LoadDaily(paths.Observed)
	if err != nil {
		return calib.Result{}, err
	}
	precip, obs, err = forcing.Align(precip, obs)
	if err != nil {
		return calib.Result{}, err
	}
	et, obs, err = forcing.Align(et, obs)
	if err != nil {
		return calib.Result{}, err
	}
	precip, et, err = forcing.Align(precip, et)
	if err != nil {
		return calib.Result{}, err
	}

	res, err := calib.Fit(precip.V, et.V, obs.V, p.CalibOpt...)
	if err != nil {
		return calib.Result{}, fmt.Errorf("calibrate %s: %w", basin, err)
	}
	p.Log.Info().Str("basin", basin).
		Float64("nse", res.NSE).Float64("kge", res.KGE).
		Float64("x1", res.Params.X1).Float64("x2", res.Params.X2).
		Float64("x3", res.Params.X3).Float64("x4", res.Params.X4).
		Msg("calibration complete")
	if err := p.Recorder.RecordCalibration(basin, res); err != nil {
		return res, err
	}
	return res, nil
}

// RefreshThresholds recomputes and persists the basin's flood and drought
// threshold sets from its historical precipitation.
func (p *Pipeline) RefreshThresholds(basin string) error {
	w, ok := p.Registry[basin]
	if !ok {
		return fmt.Errorf("refresh thresholds: unknown basin %q", basin)
	}
	hist, err := forcing.LoadDaily(forcing.BasinPaths(p.DataDir, basin).Precip)
	if err != nil {
		return err
	}

	fs, err := p.Calc.Flood(w.Type, hist)
	if err != nil {
		return fmt.Errorf("flood thresholds %s: %w", basin, err)
	}
	if err := p.Recorder.RecordFloodThresholds(basin, fs); err != nil {
		return err
	}
	ds, err := p.Calc.Drought(w.Region, hist)
	if err != nil {
		return fmt.Errorf("drought thresholds %s: %w", basin, err)
	}
	if err := p.Recorder.RecordDroughtThresholds(basin, ds); err != nil {
		return err
	}
	p.Log.Info().Str("basin", basin).
		Float64("wet_critical", fs.Wet.Critical).Int("drought_critical", ds.Critical).
		Time("valid_until", fs.ValidUntil).Msg("thresholds refreshed")
	return nil
}

// Forecast runs the ensemble forecast for one basin: physical simulation
// with the latest calibrated parameters (default vector when none), blended
// with the learned prediction file, classified against the freshest recorded
// threshold set still inside its validity window.
func (p *Pipeline) Forecast(basin string) (forecast.Assessment, error) {
	paths := forcing.BasinPaths(p.DataDir, basin)
	precip, et, err := p.loadForcings(paths)
	if err != nil {
		return forecast.Assessment{}, err
	}
	learned, err := forcing.LoadDaily(paths.Learned)
	if err != nil {
		return forecast.Assessment{}, err
	}
	precip, learned, err = forcing.Align(precip, learned)
	if err != nil {
		return forecast.Assessment{}, err
	}
	et, learned, err = forcing.Align(et, learned)
	if err != nil {
		return forecast.Assessment{}, err
	}
	precip, et, err = forcing.Align(precip, et)
	if err != nil {
		return forecast.Assessment{}, err
	}

	var par *gr4j.Parameters
	if cp, ok, err := p.Recorder.LatestCalibration(basin); err != nil {
		return forecast.Assessment{}, err
	} else if ok {
		par = &cp
	}

	cmb := forecast.NewCombiner()
	if fs, ok, err := p.Recorder.LatestFloodThresholds(basin); err != nil {
		return forecast.Assessment{}, err
	} else if ok && !fs.Expired(time.Now().UTC()) {
		cmb.SetThresholds(basin, fs)
	}

	a, err := cmb.Forecast(basin, precip, et, par, learned.V)
	if err != nil {
		return forecast.Assessment{}, fmt.Errorf("forecast %s: %w", basin, err)
	}
	p.Log.Info().Str("basin", basin).Stringer("level", a.Level).
		Float64("peak", a.Peak).Int("peak_day", a.PeakDay).
		Float64("confidence", a.Confidence).Bool("adaptive", a.Adaptive).
		Msg("forecast complete")
	if w, ok := p.Registry[basin]; ok {
		im := assessImpact(w.AreaKm2, a)
		p.Log.Info().Str("basin", basin).
			Int("critical_days", im.CriticalDays).
			Int("return_period_y", im.ReturnPeriodYears).
			Float64("excess_m3", im.ExcessM3).
			Float64("flooded_km2", im.FloodedKm2).
			Int("affected", im.Affected).
			Msg("impact summary")
	}
	if err := p.Recorder.RecordAssessment(time.Now().UTC(), a); err != nil {
		return a, err
	}
	return a, nil
}

// assumed mean inundation depth for the flooded-area estimate
const inundationDepthM = 0.5

// Impact is the reporting summary derived from one assessment over a basin:
// forecast days past the applied high cutoff, an approximate recurrence
// interval, and the excess volume above the critical cutoff spread over the
// basin as flooded area and exposed population.
type Impact struct {
	CriticalDays      int
	ReturnPeriodYears int
	ExcessM3          float64
	FloodedKm2        float64
	Affected          int
}

func assessImpact(areaKm2 float64, a forecast.Assessment) Impact {
	fv := a.VolumeAbove(a.Applied.Critical, areaKm2)
	fla := forecast.FloodedAreaKm2(fv.ExcessM3, inundationDepthM)
	return Impact{
		CriticalDays:      len(a.CriticalDays(a.Applied.High, a.Applied.Critical)),
		ReturnPeriodYears: a.ReturnPeriodYears(),
		ExcessM3:          fv.ExcessM3,
		FloodedKm2:        fla,
		Affected:          forecast.AffectedPopulation(fla),
	}
}

// Screening is the first-generation curve-number estimate for a basin,
// serving basins that have no forcing record to calibrate or forecast with.
type Screening struct {
	Basin    string
	RunoffMM float64
	PeakM3s  float64
}

// Screen estimates runoff and peak discharge for a design storm depth [mm]
// over a registered basin, from its curve number, area and time of
// concentration.
func (p *Pipeline) Screen(basin string, stormMM float64) (Screening, error) {
	w, ok := p.Registry[basin]
	if !ok {
		return Screening{}, fmt.Errorf("screen: unknown basin %q", basin)
	}
	m, err := scs.New(w.CurveNumber)
	if err != nil {
		return Screening{}, fmt.Errorf("screen %s: %w", basin, err)
	}
	s := Screening{Basin: basin, RunoffMM: m.Runoff([]float64{stormMM})[0]}
	s.PeakM3s = m.PeakDischarge(s.RunoffMM, w.AreaKm2, w.TcHours)
	p.Log.Info().Str("basin", basin).Float64("storm_mm", stormMM).
		Float64("runoff_mm", s.RunoffMM).Float64("peak_m3s", s.PeakM3s).
		Msg("screening estimate")
	return s, nil
}

// WriteHydrograph exports an assessment's member and blended series for the
// dashboard's hydrograph viewer.
func WriteHydrograph(fp string, a forecast.Assessment) {
	mmio.WriteCsvDateFloats(fp, "date,physical,learned,blended",
		a.Blended.T, a.Physical, a.Learned, a.Blended.V)
}

func (p *Pipeline) loadForcings(paths forcing.Paths) (precip, et series.Daily, err error) {
	precip, err = forcing.LoadDaily(paths.Precip)
	if err != nil {
		return
	}
	et, err = forcing.LoadDaily(paths.ET)
	return
}
