package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spreadscan/spreadscan/internal/confidence"
	"github.com/spreadscan/spreadscan/internal/indicators"
	"github.com/spreadscan/spreadscan/internal/market"
	"github.com/spreadscan/spreadscan/internal/metrics"
	"github.com/spreadscan/spreadscan/internal/regime"
	"github.com/spreadscan/spreadscan/internal/signals"
	"github.com/spreadscan/spreadscan/internal/sizing"
	"github.com/spreadscan/spreadscan/internal/spread"
	"github.com/spreadscan/spreadscan/internal/timing"
)

// Action is the final entry decision.
type Action string

const (
	EnterNow        Action = "enter_now"
	ScaleIn         Action = "scale_in"
	WaitForPullback Action = "wait_for_pullback"
	Pass            Action = "pass"
)

// AccountSettings bound the dollar sizing.
type AccountSettings struct {
	Size           float64 `json:"size"`
	MaxRiskPercent float64 `json:"max_risk_percent"`
}

// Checklist carries the pass/fail counts from the caller's setup checklist.
type Checklist struct {
	Passed int `json:"passed"`
	Total  int `json:"total"`
}

// Input is everything one evaluation consumes. AsOf anchors every
// calendar-derived number (DTE, earnings distance) so identical inputs give
// identical decisions; the engine never reads the wall clock for scoring.
type Input struct {
	Symbol string    `json:"symbol"`
	AsOf   time.Time `json:"as_of"`

	Bars          market.Series `json:"bars"`
	BenchmarkBars market.Series `json:"benchmark_bars"`
	// Regime, when non-nil, is a precomputed snapshot that takes precedence
	// over BenchmarkBars.
	Regime *regime.Result `json:"regime,omitempty"`

	Candidates []spread.Candidate `json:"candidates"`
	Strategy   spread.Type        `json:"strategy"`

	SupportLevel   float64 `json:"support_level"`
	DaysToEarnings int     `json:"days_to_earnings"` // Negative when none known

	Checklist        Checklist        `json:"checklist"`
	Momentum         confidence.Trend `json:"momentum"`
	RelativeStrength confidence.Trend `json:"relative_strength"`

	Account AccountSettings `json:"account"`
}

// Decision is the root aggregate produced by one evaluation.
type Decision struct {
	ID     string    `json:"id"`
	Symbol string    `json:"symbol"`
	AsOf   time.Time `json:"as_of"`

	Action      Action               `json:"action"`
	Confidence  confidence.Score     `json:"confidence"`
	Timeframe   string               `json:"timeframe"`
	Sizing      sizing.Sizing        `json:"position_sizing"`
	Spread      *spread.Candidate    `json:"recommended_spread,omitempty"`
	SpreadScore *spread.QualityScore `json:"spread_score,omitempty"`
	Timing      timing.Analysis      `json:"timing"`
	Regime      regime.Result        `json:"regime"`

	StockScore int              `json:"stock_score"`
	Signals    []signals.Signal `json:"signals"`

	Reasoning      []string `json:"reasoning"`
	EntryGuidance  []string `json:"entry_guidance"`
	RiskManagement []string `json:"risk_management"`
	Warnings       []string `json:"warnings"`
}

// Config bundles the component configurations; nil fields select defaults.
type Config struct {
	Regime     *regime.DetectorConfig
	Signals    *signals.Config
	Quality    *spread.QualityConfig
	Confidence *confidence.Config
}

// Engine orchestrates the regime detector, signal detector, quality and
// confidence scorers, sizing matrix and timing analyzer into one decision.
// It is stateless and safe for concurrent use.
type Engine struct {
	regimes   *regime.Detector
	detector  *signals.Detector
	quality   *spread.QualityScorer
	composite *confidence.Scorer
}

// New creates a decision engine; nil config (or nil fields) selects
// defaults.
func New(cfg *Config) *Engine {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Engine{
		regimes:   regime.NewDetector(cfg.Regime),
		detector:  signals.NewDetector(cfg.Signals),
		quality:   spread.NewQualityScorer(cfg.Quality),
		composite: confidence.NewScorer(cfg.Confidence),
	}
}

// EvaluateEntry is the single entry point: it scores every candidate,
// selects the best, computes confidence, sizing and timing, then applies the
// ordered override chain to pick the final action. It never fails; data
// problems degrade to conservative defaults and advisory warnings.
func (e *Engine) EvaluateEntry(in Input) Decision {
	d := Decision{
		ID:     uuid.NewString(),
		Symbol: in.Symbol,
		AsOf:   in.AsOf,
	}

	// Regime: precomputed snapshot wins, else detect from the benchmark.
	if in.Regime != nil {
		d.Regime = *in.Regime
	} else {
		d.Regime = e.regimes.Detect(in.BenchmarkBars)
	}

	d.StockScore, d.Signals = e.detector.Detect(in.Bars)

	best, bestScore := e.selectBestSpread(in)
	d.Spread = best
	d.SpreadScore = bestScore

	ivRank := 0.0
	if best != nil {
		ivRank = best.IVRank
		d.Timeframe = fmt.Sprintf("%d DTE", best.DTE)
	}

	d.Confidence = e.composite.Score(confidence.Input{
		StockScore:       d.StockScore,
		ChecklistPassed:  in.Checklist.Passed,
		ChecklistTotal:   in.Checklist.Total,
		Momentum:         in.Momentum,
		RelativeStrength: in.RelativeStrength,
		Regime:           d.Regime.Regime,
		IVRank:           ivRank,
		Strategy:         in.Strategy,
	})

	maxLoss := 0.0
	if best != nil {
		maxLoss = best.MaxLossPerContract()
	}
	d.Sizing = sizing.Size(d.Confidence.Level, d.Regime.Regime, maxLoss,
		in.Account.Size, in.Account.MaxRiskPercent)

	closes := in.Bars.Closes()
	rsi := indicators.CalculateRSI(closes, 14)
	ma50, _ := indicators.SMA(closes, 50)
	d.Timing = timing.Analyze(timing.Input{
		Price:        in.Bars.LastClose(),
		RSI:          rsi.Value,
		MA50:         ma50,
		SupportLevel: in.SupportLevel,
		IVRank:       ivRank,
		Strategy:     in.Strategy,
	})

	e.collectWarnings(&d, in)
	d.Action = e.resolveAction(&d)
	e.renderNarrative(&d, in)

	metrics.RecordEvaluation(string(d.Action), d.Confidence.Total)
	log.Debug().Str("symbol", in.Symbol).Str("action", string(d.Action)).
		Float64("confidence", d.Confidence.Total).Int("stock_score", d.StockScore).
		Msg("Entry evaluation complete")
	return d
}

// selectBestSpread scores every well-formed candidate and keeps the first
// one with the maximum quality total (stable: ties broken by encountering
// order). Malformed candidates are excluded, never fatal.
func (e *Engine) selectBestSpread(in Input) (*spread.Candidate, *spread.QualityScore) {
	qin := spread.QualityInput{
		CurrentPrice:   in.Bars.LastClose(),
		SupportLevel:   in.SupportLevel,
		DaysToEarnings: in.DaysToEarnings,
	}

	var best *spread.Candidate
	var bestScore *spread.QualityScore
	for _, c := range in.Candidates {
		c := c
		if c.DTE == 0 && !c.Expiration.IsZero() && !in.AsOf.IsZero() {
			c.DTE = int(c.Expiration.Sub(in.AsOf).Hours() / 24)
		}
		if !c.Valid() {
			log.Debug().Str("symbol", in.Symbol).Float64("short_strike", c.ShortStrike).
				Msg("Skipping malformed spread candidate")
			continue
		}
		score := e.quality.Score(c, qin)
		if bestScore == nil || score.Total > bestScore.Total {
			best, bestScore = &c, &score
		}
	}
	return best, bestScore
}

// resolveAction applies the ordered override chain. Earlier rules
// short-circuit later ones.
func (e *Engine) resolveAction(d *Decision) Action {
	switch {
	case d.Spread == nil:
		return Pass
	case d.Sizing.Size == sizing.Skip || d.Confidence.Level == confidence.Insufficient:
		return Pass
	case d.Regime.Regime == regime.Bear:
		return Pass
	case d.Timing.PriceVsMA == timing.Below && d.Timing.RSIZone == timing.Oversold:
		return Pass
	case d.Timing.Action == timing.Wait:
		return WaitForPullback
	case d.Sizing.Size == sizing.Half || d.Sizing.Size == sizing.Quarter:
		return ScaleIn
	default:
		return EnterNow
	}
}

// collectWarnings appends the advisory texts. Warnings never drive
// control flow; the override chain alone decides the action.
func (e *Engine) collectWarnings(d *Decision, in Input) {
	if in.DaysToEarnings >= 0 && in.DaysToEarnings <= 7 {
		d.Warnings = append(d.Warnings,
			fmt.Sprintf("earnings in %d days: event risk inside the trade window", in.DaysToEarnings))
	}
	if d.Regime.Regime == regime.Bear {
		d.Warnings = append(d.Warnings,
			"bear-market regime: new entries blocked until the benchmark repairs")
	}
	if in.Momentum == confidence.Deteriorating {
		d.Warnings = append(d.Warnings, "momentum deteriorating versus prior period")
	}
	if in.Strategy == spread.Credit && d.Spread != nil && d.Spread.IVRank < 25 {
		d.Warnings = append(d.Warnings,
			fmt.Sprintf("IV rank %.0f is thin for a credit spread: premium may not pay for the risk", d.Spread.IVRank))
	}
}

// renderNarrative assembles the human-readable reasoning, entry guidance
// and risk-management notes for the chosen action.
func (e *Engine) renderNarrative(d *Decision, in Input) {
	d.Reasoning = append(d.Reasoning,
		fmt.Sprintf("market regime %s (confidence %.0f%%)", d.Regime.Regime, d.Regime.Confidence*100),
		fmt.Sprintf("technical score %d with %d signals", d.StockScore, len(d.Signals)),
		fmt.Sprintf("composite confidence %.0f (%s)", d.Confidence.Total, d.Confidence.Level),
	)
	if float64(d.StockScore) < d.Regime.Adjustments.MinScore {
		d.Reasoning = append(d.Reasoning,
			fmt.Sprintf("technical score %d below the %s-regime minimum of %.0f",
				d.StockScore, d.Regime.Regime, d.Regime.Adjustments.MinScore))
	}
	if d.SpreadScore != nil {
		d.Reasoning = append(d.Reasoning,
			fmt.Sprintf("best spread scored %.0f (%s)", d.SpreadScore.Total, d.SpreadScore.Rating))
		if d.Regime.Adjustments.OnlyGradeA && d.SpreadScore.Rating != spread.RatingExcellent {
			d.Warnings = append(d.Warnings,
				fmt.Sprintf("%s regime admits only top-grade setups; spread rated %s",
					d.Regime.Regime, d.SpreadScore.Rating))
		}
	} else {
		d.Reasoning = append(d.Reasoning, "no viable spread candidates after exclusions")
	}
	d.Reasoning = append(d.Reasoning, d.Timing.Reason)

	switch d.Action {
	case EnterNow:
		d.EntryGuidance = append(d.EntryGuidance, "enter at the mid price or better; full tier size")
	case ScaleIn:
		d.EntryGuidance = append(d.EntryGuidance,
			"open half the allotted contracts now, add the rest on confirmation")
	case WaitForPullback:
		d.EntryGuidance = append(d.EntryGuidance,
			fmt.Sprintf("set an alert near %.2f and re-evaluate on the pullback", d.Timing.WaitTarget))
	default:
		d.EntryGuidance = append(d.EntryGuidance, "no entry: conditions failed the override chain")
	}

	if d.Sizing.MaxContracts > 0 {
		d.RiskManagement = append(d.RiskManagement,
			fmt.Sprintf("cap risk at $%.0f across %d contracts", d.Sizing.MaxRiskDollars, d.Sizing.MaxContracts))
	}
	if in.Strategy == spread.Credit {
		d.RiskManagement = append(d.RiskManagement,
			"take profit at 50% of max credit; exit if the short strike is breached")
	} else {
		d.RiskManagement = append(d.RiskManagement,
			"exit if the underlying closes below the long strike or loses the 200-day MA")
	}
	if in.SupportLevel > 0 {
		d.RiskManagement = append(d.RiskManagement,
			fmt.Sprintf("invalidate the setup on a close below support at %.2f", in.SupportLevel))
	}
}
