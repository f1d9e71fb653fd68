// Command hydro drives the hydrological core of the ONACC climate-risk
// platform: parameter calibration, adaptive threshold computation and daily
// ensemble forecasts over the registered basins.
//
//	hydro calibrate  -basin sanaga
//	hydro sample     -basin sanaga -n 500
//	hydro thresholds -basin sanaga
//	hydro forecast   -basin sanaga [-hydrograph out.csv]
//	hydro screen     -basin sanaga -storm 100
//	hydro watch
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/calib"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/internal/config"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/internal/forcing"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/internal/pipeline"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/internal/recorder"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/threshold"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("ONACC_CONFIG"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	lvl, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("sqlite recorder unavailable, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	p := &pipeline.Pipeline{
		DataDir:  cfg.DataDir,
		Registry: cfg.Registry(),
		Recorder: rec,
		Calc:     threshold.New(),
		Log:      log,
	}
	if cfg.Calibration.Seed != 0 {
		p.CalibOpt = append(p.CalibOpt, calib.WithSeed(cfg.Calibration.Seed))
	}
	if cfg.Calibration.Complexes > 0 {
		p.CalibOpt = append(p.CalibOpt, calib.WithComplexes(cfg.Calibration.Complexes))
	}

	switch os.Args[1] {
	case "calibrate":
		basin := basinFlag("calibrate")
		if _, err := p.Calibrate(basin); err != nil {
			log.Fatal().Err(err).Msg("calibrate")
		}
	case "sample":
		fs := flag.NewFlagSet("sample", flag.ExitOnError)
		basin := fs.String("basin", "", "basin identifier")
		n := fs.Int("n", cfg.Calibration.Samples, "number of Monte Carlo samples")
		fs.Parse(os.Args[2:])
		if *basin == "" {
			usage()
		}
		runSample(p, cfg.DataDir, *basin, *n, log)
	case "thresholds":
		basin := basinFlag("thresholds")
		if err := p.RefreshThresholds(basin); err != nil {
			log.Fatal().Err(err).Msg("thresholds")
		}
	case "forecast":
		fs := flag.NewFlagSet("forecast", flag.ExitOnError)
		basin := fs.String("basin", "", "basin identifier")
		hyd := fs.String("hydrograph", "", "write member/blended series to CSV")
		fs.Parse(os.Args[2:])
		if *basin == "" {
			usage()
		}
		a, err := p.Forecast(*basin)
		if err != nil {
			log.Fatal().Err(err).Msg("forecast")
		}
		if *hyd != "" {
			pipeline.WriteHydrograph(*hyd, a)
		}
	case "screen":
		fs := flag.NewFlagSet("screen", flag.ExitOnError)
		basin := fs.String("basin", "", "basin identifier")
		storm := fs.Float64("storm", 100., "design storm depth [mm]")
		fs.Parse(os.Args[2:])
		if *basin == "" {
			usage()
		}
		s, err := p.Screen(*basin, *storm)
		if err != nil {
			log.Fatal().Err(err).Msg("screen")
		}
		fmt.Printf("basin,runoff_mm,peak_m3s\n%s,%f,%f\n", s.Basin, s.RunoffMM, s.PeakM3s)
	case "watch":
		watch(p, cfg, log)
	default:
		usage()
	}
}

func basinFlag(cmd string) string {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	basin := fs.String("basin", "", "basin identifier")
	fs.Parse(os.Args[2:])
	if *basin == "" {
		usage()
	}
	return *basin
}

// runSample screens the calibration space and prints the ranked table, a
// progress bar tracking objective evaluations.
func runSample(p *pipeline.Pipeline, dataDir, basin string, n int, log zerolog.Logger) {
	paths := forcing.BasinPaths(dataDir, basin)
	precip, err := forcing.LoadDaily(paths.Precip)
	if err != nil {
		log.Fatal().Err(err).Msg("sample")
	}
	et, err := forcing.LoadDaily(paths.ET)
	if err != nil {
		log.Fatal().Err(err).Msg("sample")
	}
	obs, err := forcing.LoadDaily(paths.Observed)
	if err != nil {
		log.Fatal().Err(err).Msg("sample")
	}
	precip, obs, err = forcing.Align(precip, obs)
	if err != nil {
		log.Fatal().Err(err).Msg("sample")
	}
	et, obs, err = forcing.Align(et, obs)
	if err != nil {
		log.Fatal().Err(err).Msg("sample")
	}
	precip, et, err = forcing.Align(precip, et)
	if err != nil {
		log.Fatal().Err(err).Msg("sample")
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(n).AppendCompleted().PrependElapsed()
	res, err := calib.Sample(precip.V, et.V, obs.V, n, calib.WithProgress(func() { bar.Incr() }))
	uiprogress.Stop()
	if err != nil {
		log.Fatal().Err(err).Msg("sample")
	}

	fmt.Printf("rank(of %d),nse,x1,x2,x3,x4\n", n)
	for i, r := range res {
		fmt.Printf("%d,%f,%f,%f,%f,%f\n", i+1, r.NSE, r.Params.X1, r.Params.X2, r.Params.X3, r.Params.X4)
	}
}

// watch runs the cron daemon: nightly forecasts and a weekly threshold
// refresh over every registered basin.
func watch(p *pipeline.Pipeline, cfg *config.Config, log zerolog.Logger) {
	c := cron.New()
	if _, err := c.AddFunc(cfg.Schedule.ThresholdCron, func() {
		for _, id := range p.Registry.OrderedIDs() {
			if err := p.RefreshThresholds(id); err != nil {
				log.Error().Err(err).Str("basin", id).Msg("threshold refresh failed")
			}
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("register threshold task")
	}
	if _, err := c.AddFunc(cfg.Schedule.ForecastCron, func() {
		for _, id := range p.Registry.OrderedIDs() {
			if _, err := p.Forecast(id); err != nil {
				log.Error().Err(err).Str("basin", id).Msg("forecast failed")
			}
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("register forecast task")
	}
	c.Start()
	defer c.Stop()
	log.Info().Str("forecast", cfg.Schedule.ForecastCron).
		Str("thresholds", cfg.Schedule.ThresholdCron).Msg("watch daemon started")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down")
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: hydro <calibrate|sample|thresholds|forecast|screen|watch> [flags]")
	os.Exit(2)
}
