package spread

import (
	"math"
	"time"
)

// Type distinguishes the two supported spread structures.
type Type string

const (
	// Credit is an OTM credit spread: premium received at entry, max loss
	// is width minus credit.
	Credit Type = "credit"
	// Debit is a deep-ITM debit spread: premium paid at entry, max loss is
	// the debit paid.
	Debit Type = "debit"
)

// Candidate is one tradeable two-leg structure. It is input to scoring and
// never mutated.
type Candidate struct {
	Type        Type      `json:"type"`
	LongStrike  float64   `json:"long_strike"`
	ShortStrike float64   `json:"short_strike"`
	NetCredit   float64   `json:"net_credit,omitempty"` // Per share, credit spreads
	NetDebit    float64   `json:"net_debit,omitempty"`  // Per share, debit spreads
	Expiration  time.Time `json:"expiration"`
	DTE         int       `json:"dte"` // Derived from the caller-supplied as-of time
	ShortDelta  float64   `json:"short_delta"`
	IVRank      float64   `json:"iv_rank"`
}

// Width is the strike distance of the spread.
func (c Candidate) Width() float64 {
	return math.Abs(c.ShortStrike - c.LongStrike)
}

// Premium is the net credit or debit, whichever applies.
func (c Candidate) Premium() float64 {
	if c.Type == Debit {
		return c.NetDebit
	}
	return c.NetCredit
}

// MaxLossPerContract is the strategy-specific worst case in dollars for one
// contract (100 shares): width minus credit for credit spreads, the debit
// paid for debit spreads.
func (c Candidate) MaxLossPerContract() float64 {
	if c.Type == Debit {
		return c.NetDebit * 100
	}
	return (c.Width() - c.NetCredit) * 100
}

// Valid reports whether the candidate carries the numeric fields scoring
// requires. Malformed candidates are excluded from batches rather than
// crashing them.
func (c Candidate) Valid() bool {
	if c.LongStrike <= 0 || c.ShortStrike <= 0 || c.Width() <= 0 {
		return false
	}
	if c.Type == Debit {
		return c.NetDebit > 0
	}
	return c.NetCredit > 0 && c.NetCredit < c.Width()
}
