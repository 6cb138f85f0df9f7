package scan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spreadscan/spreadscan/internal/confidence"
	"github.com/spreadscan/spreadscan/internal/engine"
	"github.com/spreadscan/spreadscan/internal/market"
	"github.com/spreadscan/spreadscan/internal/providers"
	"github.com/spreadscan/spreadscan/internal/regime"
	"github.com/spreadscan/spreadscan/internal/spread"
)

type mockBars struct {
	series map[string]market.Series
	errs   map[string]error
}

func (m *mockBars) Bars(_ context.Context, symbol string) (market.Series, error) {
	if err, ok := m.errs[symbol]; ok {
		return nil, err
	}
	return m.series[symbol], nil
}

type mockChains struct {
	candidates map[string][]spread.Candidate
}

func (m *mockChains) Candidates(_ context.Context, symbol string) ([]spread.Candidate, error) {
	return m.candidates[symbol], nil
}

type mockContexts struct {
	contexts map[string]providers.StockContext
}

func (m *mockContexts) Context(_ context.Context, symbol string) (providers.StockContext, error) {
	if sc, ok := m.contexts[symbol]; ok {
		return sc, nil
	}
	return providers.StockContext{DaysToEarnings: -1, Momentum: confidence.Stable, RelativeStrength: confidence.Stable}, nil
}

func trendingSeries(n int) market.Series {
	bars := make(market.Series, n)
	for i := range bars {
		c := 100 + 0.2*float64(i)
		bars[i] = market.PriceBar{Open: c, High: c + 0.5, Low: c - 0.5, Close: c, Volume: 1000}
	}
	return bars
}

func bullRegime() regime.Result {
	return regime.Result{
		Regime:      regime.Bull,
		Confidence:  1.0,
		Adjustments: regime.Adjustments{MinScore: 25, PositionMultiplier: 1.0},
	}
}

func TestRun_PartialResults(t *testing.T) {
	boom := errors.New("feed unavailable")
	bars := &mockBars{
		series: map[string]market.Series{
			"GOOD":  trendingSeries(250),
			"EMPTY": nil,
		},
		errs: map[string]error{"BROKEN": boom},
	}
	chains := &mockChains{candidates: map[string][]spread.Candidate{
		"GOOD": {{
			Type:        spread.Credit,
			ShortStrike: 140,
			LongStrike:  135,
			NetCredit:   1.5,
			DTE:         30,
			ShortDelta:  0.25,
			IVRank:      40,
		}},
	}}
	contexts := &mockContexts{contexts: map[string]providers.StockContext{
		"GOOD": {
			SupportLevel:     145,
			DaysToEarnings:   -1,
			ChecklistPassed:  8,
			ChecklistTotal:   10,
			Momentum:         confidence.Improving,
			RelativeStrength: confidence.Improving,
		},
	}}

	s := NewScreener(ScreenerOptions{
		Bars:     bars,
		Chains:   chains,
		Contexts: contexts,
		Strategy: spread.Credit,
		Account:  engine.AccountSettings{Size: 50000, MaxRiskPercent: 2.0},
	})

	asOf := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	results := s.Run(context.Background(), []string{"BROKEN", "EMPTY", "GOOD"}, bullRegime(), asOf)

	require.Len(t, results, 3, "every symbol gets a result even when providers fail")

	// Sorted by confidence descending: the evaluated symbol leads.
	assert.Equal(t, "GOOD", results[0].Symbol)
	require.NotNil(t, results[0].Decision)
	assert.False(t, results[0].Skipped)

	bySymbol := map[string]Result{}
	for _, r := range results {
		bySymbol[r.Symbol] = r
	}
	assert.True(t, bySymbol["BROKEN"].Skipped)
	assert.ErrorIs(t, bySymbol["BROKEN"].Err, boom)
	assert.Nil(t, bySymbol["BROKEN"].Decision)

	assert.True(t, bySymbol["EMPTY"].Skipped)
	assert.NoError(t, bySymbol["EMPTY"].Err, "empty data is a skip, not an error")
}

func TestRun_SortsByConfidence(t *testing.T) {
	bars := &mockBars{series: map[string]market.Series{
		"STRONG": trendingSeries(250),
		"WEAK":   trendingSeries(250),
	}}
	chains := &mockChains{candidates: map[string][]spread.Candidate{
		"STRONG": {{Type: spread.Credit, ShortStrike: 140, LongStrike: 135, NetCredit: 1.5, DTE: 30, ShortDelta: 0.25, IVRank: 45}},
		"WEAK":   {{Type: spread.Credit, ShortStrike: 140, LongStrike: 135, NetCredit: 1.5, DTE: 30, ShortDelta: 0.25, IVRank: 45}},
	}}
	contexts := &mockContexts{contexts: map[string]providers.StockContext{
		"STRONG": {
			SupportLevel:     145,
			DaysToEarnings:   -1,
			ChecklistPassed:  10,
			ChecklistTotal:   10,
			Momentum:         confidence.Improving,
			RelativeStrength: confidence.Improving,
		},
		"WEAK": {
			SupportLevel:     145,
			DaysToEarnings:   -1,
			ChecklistPassed:  2,
			ChecklistTotal:   10,
			Momentum:         confidence.Deteriorating,
			RelativeStrength: confidence.Deteriorating,
		},
	}}

	s := NewScreener(ScreenerOptions{
		Bars:        bars,
		Chains:      chains,
		Contexts:    contexts,
		Strategy:    spread.Credit,
		Account:     engine.AccountSettings{Size: 50000, MaxRiskPercent: 2.0},
		Concurrency: 2,
	})

	results := s.Run(context.Background(), []string{"WEAK", "STRONG"}, bullRegime(), time.Now())

	require.Len(t, results, 2)
	assert.Equal(t, "STRONG", results[0].Symbol)
	assert.Equal(t, "WEAK", results[1].Symbol)
	assert.Greater(t, results[0].Decision.Confidence.Total, results[1].Decision.Confidence.Total)
}

func TestRun_SharedRegimeSnapshot(t *testing.T) {
	bars := &mockBars{series: map[string]market.Series{"ONE": trendingSeries(250)}}
	s := NewScreener(ScreenerOptions{
		Bars:     bars,
		Chains:   &mockChains{},
		Contexts: &mockContexts{},
		Strategy: spread.Credit,
		Account:  engine.AccountSettings{Size: 25000, MaxRiskPercent: 2.0},
	})

	reg := regime.Result{Regime: regime.Caution, Confidence: 0.6,
		Adjustments: regime.Adjustments{MinScore: 35, PositionMultiplier: 0.5, OnlyGradeA: true}}
	results := s.Run(context.Background(), []string{"ONE"}, reg, time.Now())

	require.Len(t, results, 1)
	require.NotNil(t, results[0].Decision)
	assert.Equal(t, regime.Caution, results[0].Decision.Regime.Regime,
		"the batch regime snapshot feeds every evaluation")
}
