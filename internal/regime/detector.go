package regime

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/spreadscan/spreadscan/internal/indicators"
	"github.com/spreadscan/spreadscan/internal/market"
)

// Regime classifies the prevailing market condition from a benchmark index.
type Regime string

const (
	Bull    Regime = "bull"
	Neutral Regime = "neutral"
	Caution Regime = "caution"
	Bear    Regime = "bear"
)

// Signal is one weighted vote feeding the regime score.
type Signal struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Signal string  `json:"signal"` // "bullish", "bearish", "neutral"
	Weight float64 `json:"weight"`
}

// Adjustments are the fixed screening constants each regime maps to.
type Adjustments struct {
	MinScore           float64 `json:"min_score"`           // Minimum acceptable stock score
	PositionMultiplier float64 `json:"position_multiplier"` // Scales position size
	OnlyGradeA         bool    `json:"only_grade_a"`        // Restrict to top-grade setups
}

// Result contains the regime classification and its screening adjustments.
type Result struct {
	Regime      Regime      `json:"regime"`
	Confidence  float64     `json:"confidence"` // 0.0-1.0
	Signals     []Signal    `json:"signals"`
	Adjustments Adjustments `json:"adjustments"`
}

// DetectorConfig holds moving-average periods, signal weights and score
// thresholds for regime classification.
type DetectorConfig struct {
	FastMAPeriod int `yaml:"fast_ma_period"` // Default: 50
	SlowMAPeriod int `yaml:"slow_ma_period"` // Default: 200

	PriceVsSlowWeight float64 `yaml:"price_vs_slow_weight"` // Default: 0.4
	PriceVsFastWeight float64 `yaml:"price_vs_fast_weight"` // Default: 0.3
	GoldenCrossWeight float64 `yaml:"golden_cross_weight"`  // Default: 0.3

	BullThreshold    float64 `yaml:"bull_threshold"`    // score > 0.5 => bull
	BearThreshold    float64 `yaml:"bear_threshold"`    // score < -0.3 => bear
	CautionThreshold float64 `yaml:"caution_threshold"` // score < 0 => caution
}

// DefaultDetectorConfig returns the production regime configuration.
func DefaultDetectorConfig() *DetectorConfig {
	return &DetectorConfig{
		FastMAPeriod:      50,
		SlowMAPeriod:      200,
		PriceVsSlowWeight: 0.4,
		PriceVsFastWeight: 0.3,
		GoldenCrossWeight: 0.3,
		BullThreshold:     0.5,
		BearThreshold:     -0.3,
		CautionThreshold:  0.0,
	}
}

// Detector classifies market regime from benchmark moving-average structure.
type Detector struct {
	config *DetectorConfig
}

// NewDetector creates a regime detector; nil config selects defaults.
func NewDetector(config *DetectorConfig) *Detector {
	if config == nil {
		config = DefaultDetectorConfig()
	}
	return &Detector{config: config}
}

// Detect classifies the regime from benchmark bars. It never fails: on
// insufficient data or any computation problem it returns the conservative
// default (neutral, confidence 0.5, OnlyGradeA) rather than failing open
// into aggressive sizing.
func (d *Detector) Detect(bars market.Series) Result {
	if len(bars) < d.config.SlowMAPeriod {
		log.Debug().Int("bars", len(bars)).Int("required", d.config.SlowMAPeriod).
			Msg("Insufficient benchmark history, defaulting to neutral regime")
		return conservativeDefault()
	}

	closes := bars.Closes()
	price := bars.LastClose()
	fastMA, okFast := indicators.SMA(closes, d.config.FastMAPeriod)
	slowMA, okSlow := indicators.SMA(closes, d.config.SlowMAPeriod)
	if !okFast || !okSlow || price <= 0 || fastMA <= 0 || slowMA <= 0 {
		return conservativeDefault()
	}

	signals := []Signal{
		weightedVote("price_vs_ma200", price/slowMA-1, price > slowMA, d.config.PriceVsSlowWeight),
		weightedVote("price_vs_ma50", price/fastMA-1, price > fastMA, d.config.PriceVsFastWeight),
		weightedVote("golden_cross", fastMA/slowMA-1, fastMA > slowMA, d.config.GoldenCrossWeight),
	}

	score := 0.0
	for _, s := range signals {
		switch s.Signal {
		case "bullish":
			score += s.Weight
		case "bearish":
			score -= s.Weight
		}
	}

	reg := d.classify(score)
	return Result{
		Regime:      reg,
		Confidence:  confidenceFromScore(score),
		Signals:     signals,
		Adjustments: adjustmentsFor(reg),
	}
}

func (d *Detector) classify(score float64) Regime {
	switch {
	case score > d.config.BullThreshold:
		return Bull
	case score < d.config.BearThreshold:
		return Bear
	case score < d.config.CautionThreshold:
		return Caution
	default:
		return Neutral
	}
}

func weightedVote(name string, value float64, bullish bool, weight float64) Signal {
	direction := "bearish"
	if bullish {
		direction = "bullish"
	}
	return Signal{Name: name, Value: value, Signal: direction, Weight: weight}
}

// confidenceFromScore maps the [-1,1] composite score to [0.5,1]: a flat
// mixed tape is never reported as more certain than the insufficient-data
// default.
func confidenceFromScore(score float64) float64 {
	c := 0.5 + math.Abs(score)/2
	return math.Min(1.0, c)
}

func adjustmentsFor(r Regime) Adjustments {
	switch r {
	case Bull:
		return Adjustments{MinScore: 25, PositionMultiplier: 1.0, OnlyGradeA: false}
	case Neutral:
		return Adjustments{MinScore: 30, PositionMultiplier: 0.75, OnlyGradeA: false}
	case Caution:
		return Adjustments{MinScore: 35, PositionMultiplier: 0.5, OnlyGradeA: true}
	default: // Bear
		return Adjustments{MinScore: 40, PositionMultiplier: 0.25, OnlyGradeA: true}
	}
}

func conservativeDefault() Result {
	return Result{
		Regime:     Neutral,
		Confidence: 0.5,
		Signals:    nil,
		Adjustments: Adjustments{
			MinScore:           30,
			PositionMultiplier: 0.75,
			OnlyGradeA:         true,
		},
	}
}
