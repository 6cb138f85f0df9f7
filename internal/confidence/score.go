package confidence

import (
	"math"

	"github.com/spreadscan/spreadscan/internal/regime"
	"github.com/spreadscan/spreadscan/internal/spread"
)

// Level buckets the composite confidence total.
type Level string

const (
	Insufficient Level = "insufficient"
	Low          Level = "low"
	Moderate     Level = "moderate"
	High         Level = "high"
	VeryHigh     Level = "very_high"
)

// Trend classifies a momentum or relative-strength reading.
type Trend string

const (
	Improving     Trend = "improving"
	Stable        Trend = "stable"
	Deteriorating Trend = "deteriorating"
)

// Score is the composite confidence result, recomputed per evaluation.
type Score struct {
	Total     float64            `json:"total"` // 0-100
	Level     Level              `json:"level"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// Input carries the six component readings the composite is built from.
type Input struct {
	StockScore       int           `json:"stock_score"` // 0-50 technical signal score
	ChecklistPassed  int           `json:"checklist_passed"`
	ChecklistTotal   int           `json:"checklist_total"`
	Momentum         Trend         `json:"momentum"`
	RelativeStrength Trend         `json:"relative_strength"`
	Regime           regime.Regime `json:"regime"`
	IVRank           float64       `json:"iv_rank"`
	Strategy         spread.Type   `json:"strategy"`
}

// Weights are the per-component point budgets; they sum to 100. Strategy
// variants differ: credit spreads weight regime more heavily, since adverse
// regimes are more dangerous when short premium is exposed.
type Weights struct {
	StockScore       float64 `yaml:"stock_score"`
	Checklist        float64 `yaml:"checklist"`
	Momentum         float64 `yaml:"momentum"`
	RelativeStrength float64 `yaml:"relative_strength"`
	Regime           float64 `yaml:"regime"`
	IVRank           float64 `yaml:"iv_rank"`
}

// CreditWeights is the credit-spread variant.
func CreditWeights() Weights {
	return Weights{
		StockScore:       25,
		Checklist:        20,
		Momentum:         10,
		RelativeStrength: 10,
		Regime:           25,
		IVRank:           10,
	}
}

// DebitWeights is the debit-spread variant.
func DebitWeights() Weights {
	return Weights{
		StockScore:       30,
		Checklist:        25,
		Momentum:         15,
		RelativeStrength: 10,
		Regime:           15,
		IVRank:           5,
	}
}

// Config selects the weight profile per strategy. Immutable once built, so
// multiple variants can run concurrently.
type Config struct {
	Credit Weights `yaml:"credit"`
	Debit  Weights `yaml:"debit"`

	// MaxStockScore normalizes the technical signal score component.
	MaxStockScore float64 `yaml:"max_stock_score"` // Default: 50
}

// DefaultConfig returns the production confidence configuration.
func DefaultConfig() *Config {
	return &Config{
		Credit:        CreditWeights(),
		Debit:         DebitWeights(),
		MaxStockScore: 50,
	}
}

// Scorer combines the six components into one composite confidence value.
type Scorer struct {
	config *Config
}

// NewScorer creates a confidence scorer; nil config selects defaults.
func NewScorer(config *Config) *Scorer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Scorer{config: config}
}

// Score computes the weighted composite. The total is always within [0,100].
func (s *Scorer) Score(in Input) Score {
	w := s.config.Credit
	if in.Strategy == spread.Debit {
		w = s.config.Debit
	}

	breakdown := map[string]float64{
		"stock_score":       s.stockComponent(in) * w.StockScore,
		"checklist":         checklistRate(in) * w.Checklist,
		"momentum":          trendFactor(in.Momentum) * w.Momentum,
		"relative_strength": trendFactor(in.RelativeStrength) * w.RelativeStrength,
		"regime":            regimeFactor(in.Regime) * w.Regime,
		"iv_environment":    ivFactor(in) * w.IVRank,
	}

	total := 0.0
	for _, pts := range breakdown {
		total += pts
	}
	total = math.Max(0, math.Min(100, total))

	return Score{
		Total:     total,
		Level:     levelFor(total),
		Breakdown: breakdown,
	}
}

func (s *Scorer) stockComponent(in Input) float64 {
	if s.config.MaxStockScore <= 0 {
		return 0
	}
	frac := float64(in.StockScore) / s.config.MaxStockScore
	return math.Max(0, math.Min(1, frac))
}

func checklistRate(in Input) float64 {
	if in.ChecklistTotal <= 0 {
		return 0
	}
	rate := float64(in.ChecklistPassed) / float64(in.ChecklistTotal)
	return math.Max(0, math.Min(1, rate))
}

func trendFactor(t Trend) float64 {
	switch t {
	case Improving:
		return 1.0
	case Stable:
		return 0.6
	default: // Deteriorating or unknown
		return 0.1
	}
}

func regimeFactor(r regime.Regime) float64 {
	switch r {
	case regime.Bull:
		return 1.0
	case regime.Neutral:
		return 0.7
	case regime.Caution:
		return 0.4
	default: // Bear or unknown
		return 0.1
	}
}

// ivFactor grades the IV environment for the strategy: short premium wants
// a rich IV rank, long premium wants a cheap one.
func ivFactor(in Input) float64 {
	if in.Strategy == spread.Debit {
		switch {
		case in.IVRank <= 20:
			return 1.0
		case in.IVRank <= 35:
			return 0.7
		case in.IVRank <= 50:
			return 0.4
		default:
			return 0.1
		}
	}
	switch {
	case in.IVRank >= 40:
		return 1.0
	case in.IVRank >= 30:
		return 0.7
	case in.IVRank >= 20:
		return 0.4
	default:
		return 0.1
	}
}

func levelFor(total float64) Level {
	switch {
	case total >= 85:
		return VeryHigh
	case total >= 70:
		return High
	case total >= 55:
		return Moderate
	case total >= 40:
		return Low
	default:
		return Insufficient
	}
}
