package timing

import (
	"fmt"

	"github.com/spreadscan/spreadscan/internal/spread"
)

// Action is the entry-timing guidance.
type Action string

const (
	Enter Action = "enter"
	Wait  Action = "wait"
)

// Zone is the 5-way RSI classification.
type Zone string

const (
	Oversold   Zone = "oversold"   // < 30
	Pullback   Zone = "pullback"   // 30-45
	NeutralRSI Zone = "neutral"    // 45-60
	Elevated   Zone = "elevated"   // 60-70
	Overbought Zone = "overbought" // > 70
)

// PriceVsMA relates price to the 50-bar MA with a ±1% dead band.
type PriceVsMA string

const (
	Above PriceVsMA = "above"
	Below PriceVsMA = "below"
	At    PriceVsMA = "at"
)

// Input carries the readings the analyzer evaluates. All values are
// caller-supplied; the analyzer holds no state between calls.
type Input struct {
	Price        float64     `json:"price"`
	RSI          float64     `json:"rsi"`
	MA50         float64     `json:"ma50"`
	SupportLevel float64     `json:"support_level"`
	IVRank       float64     `json:"iv_rank"`
	Strategy     spread.Type `json:"strategy"`
}

// Analysis is the timing verdict for one evaluation.
type Analysis struct {
	Action            Action    `json:"action"`
	RSIZone           Zone      `json:"rsi_zone"`
	PriceVsMA         PriceVsMA `json:"price_vs_ma"`
	DistanceToSupport float64   `json:"distance_to_support"` // Percent above support
	IVRankFavorable   bool      `json:"iv_rank_favorable"`
	WaitTarget        float64   `json:"wait_target,omitempty"` // Zero when entering
	Reason            string    `json:"reason"`
}

// Analyze classifies the inputs and counts enter- and wait-conditions.
// Three or more enter-conditions mean enter; failing that, two or more
// wait-conditions mean wait with a target price; otherwise the analyzer
// deliberately defaults to enter. The default bias toward entering is
// intentional and must not be flipped to wait.
func Analyze(in Input) Analysis {
	a := Analysis{
		RSIZone:           classifyRSI(in.RSI),
		PriceVsMA:         classifyPriceVsMA(in.Price, in.MA50),
		DistanceToSupport: supportDistancePc(in.Price, in.SupportLevel),
		IVRankFavorable:   ivFavorable(in),
	}

	enterConditions := 0
	if a.RSIZone == Pullback || a.RSIZone == NeutralRSI {
		enterConditions++
	}
	if a.PriceVsMA == Above || a.PriceVsMA == At {
		enterConditions++
	}
	if a.DistanceToSupport >= 0 && a.DistanceToSupport <= 5.0 {
		enterConditions++
	}
	if a.IVRankFavorable {
		enterConditions++
	}

	waitConditions := 0
	if a.RSIZone == Overbought {
		waitConditions++
	}
	if a.PriceVsMA == Below {
		waitConditions++
	}
	if a.DistanceToSupport > 8.0 {
		waitConditions++
	}
	if !a.IVRankFavorable {
		waitConditions++
	}

	switch {
	case enterConditions >= 3:
		a.Action = Enter
		a.Reason = fmt.Sprintf("%d of 4 entry conditions met: favorable pullback structure", enterConditions)
	case waitConditions >= 2:
		a.Action = Wait
		a.WaitTarget = waitTarget(in, a)
		a.Reason = fmt.Sprintf("%d wait conditions active; wait for pullback toward %.2f", waitConditions, a.WaitTarget)
	default:
		a.Action = Enter
		a.Reason = "no strong wait signal; conditions acceptable for entry"
	}
	return a
}

func classifyRSI(rsi float64) Zone {
	switch {
	case rsi < 30:
		return Oversold
	case rsi < 45:
		return Pullback
	case rsi < 60:
		return NeutralRSI
	case rsi <= 70:
		return Elevated
	default:
		return Overbought
	}
}

func classifyPriceVsMA(price, ma float64) PriceVsMA {
	if ma <= 0 {
		return At
	}
	diff := (price - ma) / ma
	switch {
	case diff > 0.01:
		return Above
	case diff < -0.01:
		return Below
	default:
		return At
	}
}

func supportDistancePc(price, support float64) float64 {
	if support <= 0 {
		return 0
	}
	return (price - support) / support * 100
}

func ivFavorable(in Input) bool {
	if in.Strategy == spread.Debit {
		return in.IVRank <= 35
	}
	return in.IVRank >= 30
}

// waitTarget picks the pullback target: the 50-bar MA when price sits above
// it, otherwise a fixed offset below the current price.
func waitTarget(in Input, a Analysis) float64 {
	if a.PriceVsMA == Above && in.MA50 > 0 {
		return in.MA50
	}
	return in.Price * 0.97
}
