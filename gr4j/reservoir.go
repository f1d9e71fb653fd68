package gr4j

import "math"

// fraction of net production input passed to routing; the remaining tenth
// is a fixed conceptual-model loss, not a tunable.
const routedFraction = 0.9

// State carries the two reservoir levels between daily transitions:
// production store S (0 ≤ S ≤ X1) and routing store R (R ≥ 0), both in mm.
// A State is local to one simulation and is discarded at its end.
type State struct {
	S float64
	R float64
}

// model is the per-run transition machinery: the parameter vector, the two
// unit-hydrograph ordinate sets and their rolling convolution buffers.
type model struct {
	par      Parameters
	uh1, uh2 []float64
	b1, b2   []float64 // circular input arenas, one slot per ordinate
	i1, i2   int
}

func newModel(par Parameters) (*model, error) {
	if err := par.check(); err != nil {
		return nil, err
	}
	uh1, uh2, err := UnitHydrographs(par.X4)
	if err != nil {
		return nil, err
	}
	return &model{
		par: par,
		uh1: uh1, uh2: uh2,
		b1: make([]float64, len(uh1)),
		b2: make([]float64, len(uh2)),
	}, nil
}

// step advances one simulated day given precipitation p and potential
// evapotranspiration e [mm/d], returning the new state and the day's
// discharge [mm/d]. Parameters are assumed checked at simulation start.
func (m *model) step(st State, p, e float64) (State, float64) {
	x1, x3 := m.par.X1, m.par.X3

	// interception netting
	var pn, en float64
	if p >= e {
		pn = p - e
	} else {
		en = e - p
	}

	// production store: hyperbolic-tangent intake/withdrawal, so the
	// effective exchange shrinks as S approaches its bound
	s := st.S
	var ps float64
	if pn > 0. {
		tw := math.Tanh(pn / x1)
		ps = x1 * (1. - (s/x1)*(s/x1)) * tw / (1. + s/x1*tw)
		s += ps
	} else if en > 0. {
		tw := math.Tanh(en / x1)
		es := s * (2. - s/x1) * tw / (1. + (1.-s/x1)*tw)
		s -= es
	}

	// percolation leak against the quartic curve at 9/4·x1
	sr := s / (2.25 * x1)
	perc := s * (1. - math.Pow(1.+sr*sr*sr*sr, -.25))
	s -= perc

	pr := perc + routedFraction*(pn-ps)

	qd := route(m.b1, &m.i1, m.uh1, pr) // direct branch
	qs := route(m.b2, &m.i2, m.uh2, pr) // delayed branch, feeds the routing store

	r := st.R + qs
	if r < 0. {
		r = 0.
	}
	rr := r / x3
	qr := r * (1. - math.Pow(1.+rr*rr*rr*rr, -.25))
	r -= qr

	// groundwater exchange, signed; negative is a loss to the regional aquifer
	f := m.par.X2 * math.Pow(r/x3, 3.5)

	q := qd + f
	if q < 0. {
		q = 0.
	}
	return State{S: s, R: r}, q + qr
}

// route injects the day's input at the arena head and folds it against the
// ordinates, oldest slot falling off as the index wraps.
func route(buf []float64, idx *int, uh []float64, in float64) float64 {
	n := len(uh)
	*idx = (*idx + 1) % n
	buf[*idx] = in
	q := 0.
	for k := 0; k < n; k++ {
		q += uh[k] * buf[(*idx-k+n)%n]
	}
	return q
}
