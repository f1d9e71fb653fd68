package threshold

import "sort"

// percentile returns the p-th percentile (0–100) of v with linear
// interpolation between order statistics, matching the convention the
// historical records were originally screened with. Returns 0 for an empty
// slice.
func percentile(v []float64, p float64) float64 {
	n := len(v)
	if n == 0 {
		return 0.
	}
	s := make([]float64, n)
	copy(s, v)
	sort.Float64s(s)
	if n == 1 {
		return s[0]
	}
	rank := p / 100. * float64(n-1)
	lo := int(rank)
	if lo >= n-1 {
		return s[n-1]
	}
	frac := rank - float64(lo)
	return s[lo] + frac*(s[lo+1]-s[lo])
}
