package recorder

import (
	"time"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/calib"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/forecast"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/gr4j"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/threshold"
)

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordCalibration(string, calib.Result) error              { return nil }
func (n *NoopRecorder) RecordFloodThresholds(string, threshold.FloodSet) error    { return nil }
func (n *NoopRecorder) RecordDroughtThresholds(string, threshold.DroughtSet) error { return nil }
func (n *NoopRecorder) RecordAssessment(time.Time, forecast.Assessment) error     { return nil }
func (n *NoopRecorder) LatestCalibration(string) (gr4j.Parameters, bool, error) {
	return gr4j.Parameters{}, false, nil
}
func (n *NoopRecorder) LatestFloodThresholds(string) (threshold.FloodSet, bool, error) {
	return threshold.FloodSet{}, false, nil
}
func (n *NoopRecorder) Close() error { return nil }
