// Package recorder persists calibration, threshold and assessment history
// for the reporting layer. The numeric core never touches it.
package recorder

import (
	"time"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/calib"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/forecast"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/gr4j"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/threshold"
)

// Recorder persists run history for analysis and serves the latest
// calibrated parameters back to the forecast pipeline.
type Recorder interface {
	RecordCalibration(basin string, res calib.Result) error
	RecordFloodThresholds(basin string, fs threshold.FloodSet) error
	RecordDroughtThresholds(basin string, ds threshold.DroughtSet) error
	RecordAssessment(at time.Time, a forecast.Assessment) error
	LatestCalibration(basin string) (gr4j.Parameters, bool, error)
	LatestFloodThresholds(basin string) (threshold.FloodSet, bool, error)
	Close() error
}
