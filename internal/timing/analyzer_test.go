package timing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spreadscan/spreadscan/internal/spread"
)

func TestAnalyze_AllEnterConditions(t *testing.T) {
	a := Analyze(Input{
		Price:        100,
		RSI:          42,
		MA50:         95,
		SupportLevel: 98,
		IVRank:       40,
		Strategy:     spread.Credit,
	})

	assert.Equal(t, Enter, a.Action)
	assert.Equal(t, Pullback, a.RSIZone)
	assert.Equal(t, Above, a.PriceVsMA)
	assert.True(t, a.IVRankFavorable)
	assert.Zero(t, a.WaitTarget)
	assert.Contains(t, a.Reason, "4 of 4")
}

func TestAnalyze_WaitWithPriceTarget(t *testing.T) {
	// Overbought, below the 50-day MA, far from support, hostile IV: every
	// wait condition fires and the target falls back to 3% below price.
	a := Analyze(Input{
		Price:        100,
		RSI:          75,
		MA50:         110,
		SupportLevel: 80,
		IVRank:       10,
		Strategy:     spread.Credit,
	})

	assert.Equal(t, Wait, a.Action)
	assert.Equal(t, Overbought, a.RSIZone)
	assert.Equal(t, Below, a.PriceVsMA)
	assert.InDelta(t, 97.0, a.WaitTarget, 1e-9)
}

func TestAnalyze_WaitTargetsMA50WhenAbove(t *testing.T) {
	a := Analyze(Input{
		Price:        120,
		RSI:          80,
		MA50:         100,
		SupportLevel: 90,
		IVRank:       40,
		Strategy:     spread.Credit,
	})

	assert.Equal(t, Wait, a.Action)
	assert.InDelta(t, 100.0, a.WaitTarget, 1e-9, "extended price above the MA should pull back to it")
}

func TestAnalyze_DefaultBiasIsEnter(t *testing.T) {
	// Two enter conditions and zero wait conditions: neither threshold is
	// met, so the analyzer enters by default.
	a := Analyze(Input{
		Price:        106.5,
		RSI:          65,
		MA50:         100,
		SupportLevel: 100,
		IVRank:       40,
		Strategy:     spread.Credit,
	})

	assert.Equal(t, Enter, a.Action)
	assert.Equal(t, "no strong wait signal; conditions acceptable for entry", a.Reason)
}

func TestAnalyze_IVFavorabilityByStrategy(t *testing.T) {
	in := Input{Price: 100, RSI: 50, MA50: 99, SupportLevel: 98, IVRank: 20}

	in.Strategy = spread.Credit
	assert.False(t, Analyze(in).IVRankFavorable, "IV rank 20 is too cheap to sell")

	in.Strategy = spread.Debit
	assert.True(t, Analyze(in).IVRankFavorable, "IV rank 20 is cheap enough to buy")
}

func TestClassifyRSI(t *testing.T) {
	assert.Equal(t, Oversold, classifyRSI(29.9))
	assert.Equal(t, Pullback, classifyRSI(30))
	assert.Equal(t, Pullback, classifyRSI(44.9))
	assert.Equal(t, NeutralRSI, classifyRSI(45))
	assert.Equal(t, Elevated, classifyRSI(60))
	assert.Equal(t, Elevated, classifyRSI(70))
	assert.Equal(t, Overbought, classifyRSI(70.1))
}

func TestClassifyPriceVsMA_DeadBand(t *testing.T) {
	assert.Equal(t, At, classifyPriceVsMA(100, 100.5))
	assert.Equal(t, At, classifyPriceVsMA(100.5, 100))
	assert.Equal(t, Above, classifyPriceVsMA(102, 100))
	assert.Equal(t, Below, classifyPriceVsMA(98, 100))
	assert.Equal(t, At, classifyPriceVsMA(100, 0), "missing MA must not classify directionally")
}
