// Package providers defines the collaborator interfaces the decision engine
// consumes, plus file-backed implementations over exported data snapshots.
// Providers return nil data on missing sources; the engine treats nil or
// short series as insufficient data, never as an error to propagate.
package providers

import (
	"context"

	"github.com/spreadscan/spreadscan/internal/confidence"
	"github.com/spreadscan/spreadscan/internal/market"
	"github.com/spreadscan/spreadscan/internal/spread"
)

// BarProvider supplies historical price bars, oldest first.
type BarProvider interface {
	Bars(ctx context.Context, symbol string) (market.Series, error)
}

// ChainProvider supplies the candidate spreads for one underlying.
type ChainProvider interface {
	Candidates(ctx context.Context, symbol string) ([]spread.Candidate, error)
}

// StockContext is the per-symbol screening context that does not come from
// the price series itself.
type StockContext struct {
	SupportLevel     float64          `json:"support_level"`
	DaysToEarnings   int              `json:"days_to_earnings"` // Negative when none known
	ChecklistPassed  int              `json:"checklist_passed"`
	ChecklistTotal   int              `json:"checklist_total"`
	Momentum         confidence.Trend `json:"momentum"`
	RelativeStrength confidence.Trend `json:"relative_strength"`
}

// ContextProvider supplies the screening context for one symbol.
type ContextProvider interface {
	Context(ctx context.Context, symbol string) (StockContext, error)
}
