// Package bands provides the ordered threshold tables used by every scorer:
// a ladder is evaluated top to bottom and the first matching rung wins.
package bands

// Rung pairs a predicate with the points awarded when it matches.
type Rung struct {
	When   func(v float64) bool
	Points float64
}

// Ladder is an ordered list of rungs. Rungs are checked in order and the
// first match wins; no match scores zero.
type Ladder []Rung

// Score evaluates the ladder against v.
func (l Ladder) Score(v float64) float64 {
	for _, r := range l {
		if r.When(v) {
			return r.Points
		}
	}
	return 0
}

// AtLeast matches values >= x.
func AtLeast(x float64) func(float64) bool {
	return func(v float64) bool { return v >= x }
}

// AtMost matches values <= x.
func AtMost(x float64) func(float64) bool {
	return func(v float64) bool { return v <= x }
}

// Between matches lo <= v < hi.
func Between(lo, hi float64) func(float64) bool {
	return func(v float64) bool { return v >= lo && v < hi }
}
