package forecast

// Level is the ordered discrete risk classification.
type Level int

const (
	Low Level = iota
	Moderate
	High
	Critical
)

func (l Level) String() string {
	switch l {
	case Critical:
		return "critical"
	case High:
		return "high"
	case Moderate:
		return "moderate"
	default:
		return "low"
	}
}

// mean-multiple fallback cutoffs applied when no adaptive threshold set is
// available for the basin: multiples of the blended series' mean. Anything
// below the moderate multiple classifies Low.
const (
	meanMultModerate = 5.
	meanMultHigh     = 10.
	meanMultCritical = 20.
)
