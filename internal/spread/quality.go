package spread

import (
	"math"

	"github.com/spreadscan/spreadscan/internal/bands"
)

// Rating tiers for spread quality.
const (
	RatingExcellent = "excellent"
	RatingGood      = "good"
	RatingFair      = "fair"
	RatingPoor      = "poor"
)

// QualityScore is the structural fitness of one candidate, recomputed per
// evaluation.
type QualityScore struct {
	Total     float64            `json:"total"` // 0-100
	Breakdown map[string]float64 `json:"breakdown"`
	Rating    string             `json:"rating"`
}

// QualityInput carries the stock-side context a candidate is scored against.
type QualityInput struct {
	CurrentPrice   float64 `json:"current_price"`
	SupportLevel   float64 `json:"support_level"`
	DaysToEarnings int     `json:"days_to_earnings"` // Negative when no earnings known
}

// QualityConfig holds the per-component threshold ladders. Every component
// is an independent pure function of a single candidate attribute: no
// component may read another's result.
type QualityConfig struct {
	CreditRatio      bands.Ladder // credit / width
	DebitRatio       bands.Ladder // debit / width (lower is better)
	StrikeDistancePc bands.Ladder // % from price to the traded strike
	CreditIVRank     bands.Ladder // credit spreads want rich IV
	DebitIVRank      bands.Ladder // debit spreads want cheap IV
	SupportBufferPc  bands.Ladder // % cushion between support and short strike
	DTEWindow        bands.Ladder // alignment to the target expiration window
	CreditDelta      bands.Ladder // |short delta| proximity to the ideal band
	DebitDelta       bands.Ladder
	EarningsDays     bands.Ladder // days to earnings (negative = none known)
}

// DefaultQualityConfig returns the production threshold ladders. Component
// point caps sum to 100: ratio 20, distance/IV/support/DTE/delta 15 each,
// earnings 5.
func DefaultQualityConfig() *QualityConfig {
	return &QualityConfig{
		CreditRatio: bands.Ladder{
			{When: bands.AtLeast(0.45), Points: 20},
			{When: bands.AtLeast(0.33), Points: 16},
			{When: bands.AtLeast(0.25), Points: 10},
			{When: bands.AtLeast(0.15), Points: 5},
		},
		DebitRatio: bands.Ladder{
			{When: bands.AtMost(0.55), Points: 20},
			{When: bands.AtMost(0.65), Points: 15},
			{When: bands.AtMost(0.75), Points: 10},
			{When: bands.AtMost(0.85), Points: 5},
		},
		StrikeDistancePc: bands.Ladder{
			{When: bands.AtLeast(8.0), Points: 15},
			{When: bands.AtLeast(5.0), Points: 11},
			{When: bands.AtLeast(3.0), Points: 7},
			{When: bands.AtLeast(1.5), Points: 3},
		},
		CreditIVRank: bands.Ladder{
			{When: bands.AtLeast(50), Points: 15},
			{When: bands.AtLeast(40), Points: 12},
			{When: bands.AtLeast(30), Points: 8},
			{When: bands.AtLeast(20), Points: 4},
		},
		DebitIVRank: bands.Ladder{
			{When: bands.AtMost(20), Points: 15},
			{When: bands.AtMost(30), Points: 12},
			{When: bands.AtMost(40), Points: 8},
			{When: bands.AtMost(50), Points: 4},
		},
		SupportBufferPc: bands.Ladder{
			{When: bands.AtLeast(5.0), Points: 15},
			{When: bands.AtLeast(3.0), Points: 11},
			{When: bands.AtLeast(1.0), Points: 6},
			{When: bands.AtLeast(0.0), Points: 3},
		},
		DTEWindow: bands.Ladder{
			{When: bands.Between(25, 46), Points: 15},
			{When: bands.Between(20, 56), Points: 10},
			{When: bands.Between(15, 66), Points: 5},
		},
		CreditDelta: bands.Ladder{
			{When: bands.Between(0.15, 0.30), Points: 15},
			{When: bands.Between(0.10, 0.35), Points: 10},
			{When: bands.Between(0.05, 0.40), Points: 5},
		},
		DebitDelta: bands.Ladder{
			{When: bands.Between(0.25, 0.45), Points: 15},
			{When: bands.Between(0.20, 0.55), Points: 10},
			{When: bands.Between(0.10, 0.65), Points: 5},
		},
		EarningsDays: bands.Ladder{
			{When: func(v float64) bool { return v < 0 }, Points: 5}, // No earnings known
			{When: bands.AtLeast(21), Points: 5},
			{When: bands.AtLeast(14), Points: 3},
			{When: bands.AtLeast(7), Points: 1},
		},
	}
}

// QualityScorer scores a candidate's structural fitness.
type QualityScorer struct {
	config *QualityConfig
}

// NewQualityScorer creates a scorer; nil config selects defaults.
func NewQualityScorer(config *QualityConfig) *QualityScorer {
	if config == nil {
		config = DefaultQualityConfig()
	}
	return &QualityScorer{config: config}
}

// Score computes the seven independent component scores and their total.
// Totals are always within [0,100], including for pathological candidates;
// ratio guards short-circuit to zero points instead of producing NaN.
func (qs *QualityScorer) Score(c Candidate, in QualityInput) QualityScore {
	breakdown := map[string]float64{
		"premium_ratio":   qs.premiumRatio(c),
		"strike_distance": qs.strikeDistance(c, in.CurrentPrice),
		"iv_rank":         qs.ivRank(c),
		"support_buffer":  qs.supportBuffer(c, in.SupportLevel),
		"dte":             qs.config.DTEWindow.Score(float64(c.DTE)),
		"delta":           qs.delta(c),
		"earnings_risk":   qs.config.EarningsDays.Score(float64(in.DaysToEarnings)),
	}

	total := 0.0
	for _, pts := range breakdown {
		total += pts
	}
	total = math.Max(0, math.Min(100, total))

	return QualityScore{
		Total:     total,
		Breakdown: breakdown,
		Rating:    ratingFor(total),
	}
}

func (qs *QualityScorer) premiumRatio(c Candidate) float64 {
	width := c.Width()
	if width <= 0 || c.Premium() <= 0 {
		return 0
	}
	ratio := c.Premium() / width
	if c.Type == Debit {
		return qs.config.DebitRatio.Score(ratio)
	}
	return qs.config.CreditRatio.Score(ratio)
}

func (qs *QualityScorer) strikeDistance(c Candidate, price float64) float64 {
	if price <= 0 {
		return 0
	}
	// Credit spreads are graded on short-strike cushion below price, debit
	// spreads on how deep the long strike sits in the money.
	strike := c.ShortStrike
	if c.Type == Debit {
		strike = c.LongStrike
	}
	distPc := (price - strike) / price * 100
	if distPc <= 0 {
		return 0
	}
	return qs.config.StrikeDistancePc.Score(distPc)
}

func (qs *QualityScorer) ivRank(c Candidate) float64 {
	if c.Type == Debit {
		return qs.config.DebitIVRank.Score(c.IVRank)
	}
	return qs.config.CreditIVRank.Score(c.IVRank)
}

func (qs *QualityScorer) supportBuffer(c Candidate, support float64) float64 {
	if support <= 0 {
		return 0
	}
	bufferPc := (support - c.ShortStrike) / support * 100
	if c.Type == Debit {
		// For debit spreads the cushion is the short strike's room above
		// support being irrelevant; what matters is the long strike sitting
		// below support, already paid for.
		bufferPc = (support - c.LongStrike) / support * 100
	}
	if bufferPc < 0 {
		return 0
	}
	return qs.config.SupportBufferPc.Score(bufferPc)
}

func (qs *QualityScorer) delta(c Candidate) float64 {
	d := math.Abs(c.ShortDelta)
	if c.Type == Debit {
		return qs.config.DebitDelta.Score(d)
	}
	return qs.config.CreditDelta.Score(d)
}

func ratingFor(total float64) string {
	switch {
	case total >= 80:
		return RatingExcellent
	case total >= 60:
		return RatingGood
	case total >= 40:
		return RatingFair
	default:
		return RatingPoor
	}
}
