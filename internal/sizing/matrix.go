package sizing

import (
	"fmt"
	"math"

	"github.com/spreadscan/spreadscan/internal/confidence"
	"github.com/spreadscan/spreadscan/internal/regime"
)

// Tier is the position-size bucket the matrix resolves to.
type Tier string

const (
	Full         Tier = "full"
	ThreeQuarter Tier = "three_quarter"
	Half         Tier = "half"
	Quarter      Tier = "quarter"
	Skip         Tier = "skip"
)

// Sizing is the resolved position size for one decision.
type Sizing struct {
	Size           Tier     `json:"size"`
	Percentage     float64  `json:"percentage"` // Of the per-trade risk budget
	MaxContracts   int      `json:"max_contracts"`
	MaxRiskDollars float64  `json:"max_risk_dollars"`
	Reasoning      []string `json:"reasoning"`
}

type cell struct {
	tier Tier
	pct  float64
}

// matrix is the fixed (confidence level x regime) lookup. Pure data: the
// single point of truth for risk sizing, no learned or mutable weights.
var matrix = map[confidence.Level]map[regime.Regime]cell{
	confidence.VeryHigh: {
		regime.Bull:    {Full, 100},
		regime.Neutral: {ThreeQuarter, 75},
		regime.Caution: {Half, 50},
		regime.Bear:    {Quarter, 25},
	},
	confidence.High: {
		regime.Bull:    {ThreeQuarter, 75},
		regime.Neutral: {Half, 50},
		regime.Caution: {Quarter, 25},
		regime.Bear:    {Skip, 0},
	},
	confidence.Moderate: {
		regime.Bull:    {Half, 50},
		regime.Neutral: {Quarter, 25},
		regime.Caution: {Quarter, 25},
		regime.Bear:    {Skip, 0},
	},
	confidence.Low: {
		regime.Bull:    {Quarter, 25},
		regime.Neutral: {Skip, 0},
		regime.Caution: {Skip, 0},
		regime.Bear:    {Skip, 0},
	},
	confidence.Insufficient: {
		regime.Bull:    {Skip, 0},
		regime.Neutral: {Skip, 0},
		regime.Caution: {Skip, 0},
		regime.Bear:    {Skip, 0},
	},
}

// Size resolves the matrix cell for (level, regime) and converts it into a
// contract count bounded by the account risk budget. maxLossPerContract is
// the strategy-specific dollar max loss for one contract. MaxContracts is
// never negative; a skip tier forces zero contracts regardless of
// arithmetic.
func Size(level confidence.Level, reg regime.Regime, maxLossPerContract, accountSize, maxRiskPercent float64) Sizing {
	row, ok := matrix[level]
	if !ok {
		row = matrix[confidence.Insufficient]
	}
	c, ok := row[reg]
	if !ok {
		c = cell{Skip, 0}
	}

	s := Sizing{
		Size:       c.tier,
		Percentage: c.pct,
		Reasoning: []string{
			fmt.Sprintf("%s confidence in %s regime maps to %s size (%.0f%% of risk budget)",
				level, reg, c.tier, c.pct),
		},
	}
	if c.tier == Skip {
		s.Reasoning = append(s.Reasoning, "skip tier forces zero contracts")
		return s
	}

	s.MaxRiskDollars = accountSize * (maxRiskPercent / 100) * (c.pct / 100)
	if maxLossPerContract <= 0 {
		s.MaxContracts = 0
		s.Reasoning = append(s.Reasoning, "non-positive max loss per contract, cannot size")
		return s
	}

	contracts := int(math.Floor(s.MaxRiskDollars / maxLossPerContract))
	if contracts < 0 {
		contracts = 0
	}
	s.MaxContracts = contracts
	s.Reasoning = append(s.Reasoning, fmt.Sprintf(
		"$%.0f risk budget / $%.0f max loss per contract = %d contracts",
		s.MaxRiskDollars, maxLossPerContract, contracts))
	return s
}
