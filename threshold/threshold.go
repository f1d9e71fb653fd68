// Package threshold derives the season- and region-adaptive risk cutoffs the
// forecast combiner classifies against. Flood cutoffs are wet/dry-season
// precipitation quantiles scaled by station type; drought cutoffs are
// dry-spell run-length quantiles scaled by climatic region. Both are pure
// functions of one station's historical record; the resulting sets carry a
// validity window the caller is responsible for honouring.
package threshold

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrInconsistentThresholds flags a violated critical ≥ high ≥ moderate
// ordering after scaling. Quantiles are monotone by construction, so this
// signals corrupted historical input rather than a tuning problem.
var ErrInconsistentThresholds = errors.New("inconsistent thresholds")

// DefaultValidity is the recomputation cycle for a threshold set.
const DefaultValidity = 90 * 24 * time.Hour

// Cutoffs is one ordered triplet of risk-level cutoffs.
type Cutoffs struct {
	Moderate float64
	High     float64
	Critical float64
}

func (c Cutoffs) check() error {
	if c.Critical < c.High || c.High < c.Moderate {
		return fmt.Errorf("moderate %g, high %g, critical %g: %w",
			c.Moderate, c.High, c.Critical, ErrInconsistentThresholds)
	}
	return nil
}

// Calculator stamps computed sets with their validity window. The zero
// Calculator is not usable; construct with New.
type Calculator struct {
	Clock    clockwork.Clock
	Validity time.Duration
}

func New() Calculator {
	return Calculator{Clock: clockwork.NewRealClock(), Validity: DefaultValidity}
}

func (c Calculator) window() (computed, until time.Time) {
	now := c.Clock.Now().UTC()
	return now, now.Add(c.Validity)
}
