package scan

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/spreadscan/spreadscan/internal/engine"
	"github.com/spreadscan/spreadscan/internal/metrics"
	"github.com/spreadscan/spreadscan/internal/providers"
	"github.com/spreadscan/spreadscan/internal/regime"
	"github.com/spreadscan/spreadscan/internal/spread"
)

// Result is the outcome of screening one symbol. A symbol with no usable
// data carries Skipped=true; a provider failure carries Err. Neither aborts
// the rest of the batch.
type Result struct {
	Symbol   string           `json:"symbol"`
	Decision *engine.Decision `json:"decision,omitempty"`
	Skipped  bool             `json:"skipped"`
	Err      error            `json:"-"`
}

// Screener fans independent symbol evaluations out across workers. Each
// evaluation is a pure transform of its inputs, so no coordination beyond
// the concurrency bound is needed.
type Screener struct {
	engine      *engine.Engine
	bars        providers.BarProvider
	chains      providers.ChainProvider
	contexts    providers.ContextProvider
	strategy    spread.Type
	account     engine.AccountSettings
	concurrency int
}

// ScreenerOptions configures a Screener.
type ScreenerOptions struct {
	Engine      *engine.Engine
	Bars        providers.BarProvider
	Chains      providers.ChainProvider
	Contexts    providers.ContextProvider
	Strategy    spread.Type
	Account     engine.AccountSettings
	Concurrency int // Default: 8
}

// NewScreener builds a batch screener from providers and an engine.
func NewScreener(opts ScreenerOptions) *Screener {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.Engine == nil {
		opts.Engine = engine.New(nil)
	}
	return &Screener{
		engine:      opts.Engine,
		bars:        opts.Bars,
		chains:      opts.Chains,
		contexts:    opts.Contexts,
		strategy:    opts.Strategy,
		account:     opts.Account,
		concurrency: opts.Concurrency,
	}
}

// Run screens every symbol as of one timestamp, sharing one regime snapshot
// across the batch, and returns per-symbol results sorted by confidence
// descending. Provider failures are recorded per symbol; partial results
// always beat a total failure.
func (s *Screener) Run(ctx context.Context, symbols []string, reg regime.Result, asOf time.Time) []Result {
	results := make([]Result, len(symbols))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			res := s.screenOne(ctx, symbol, reg, asOf)
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil // One symbol's failure never cancels the batch
		})
	}
	_ = g.Wait()

	sort.SliceStable(results, func(a, b int) bool {
		ca, cb := 0.0, 0.0
		if results[a].Decision != nil {
			ca = results[a].Decision.Confidence.Total
		}
		if results[b].Decision != nil {
			cb = results[b].Decision.Confidence.Total
		}
		return ca > cb
	})
	return results
}

func (s *Screener) screenOne(ctx context.Context, symbol string, reg regime.Result, asOf time.Time) Result {
	bars, err := s.bars.Bars(ctx, symbol)
	if err != nil {
		metrics.RecordScanOutcome("error")
		log.Warn().Err(err).Str("symbol", symbol).Msg("Bar provider failed, skipping symbol")
		return Result{Symbol: symbol, Skipped: true, Err: err}
	}
	if len(bars) == 0 {
		metrics.RecordScanOutcome("no_data")
		return Result{Symbol: symbol, Skipped: true}
	}

	candidates, err := s.chains.Candidates(ctx, symbol)
	if err != nil {
		metrics.RecordScanOutcome("error")
		log.Warn().Err(err).Str("symbol", symbol).Msg("Chain provider failed, skipping symbol")
		return Result{Symbol: symbol, Skipped: true, Err: err}
	}

	sc, err := s.contexts.Context(ctx, symbol)
	if err != nil {
		metrics.RecordScanOutcome("error")
		log.Warn().Err(err).Str("symbol", symbol).Msg("Context provider failed, skipping symbol")
		return Result{Symbol: symbol, Skipped: true, Err: err}
	}

	decision := s.engine.EvaluateEntry(engine.Input{
		Symbol:           symbol,
		AsOf:             asOf,
		Bars:             bars,
		Regime:           &reg,
		Candidates:       candidates,
		Strategy:         s.strategy,
		SupportLevel:     sc.SupportLevel,
		DaysToEarnings:   sc.DaysToEarnings,
		Checklist:        engine.Checklist{Passed: sc.ChecklistPassed, Total: sc.ChecklistTotal},
		Momentum:         sc.Momentum,
		RelativeStrength: sc.RelativeStrength,
		Account:          s.account,
	})
	metrics.RecordScanOutcome("evaluated")
	return Result{Symbol: symbol, Decision: &decision}
}
